package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusNext(t *testing.T) {
	assert.Equal(t, StatusOutForDelivery, StatusPreparing.Next())
	assert.Equal(t, StatusDelivered, StatusOutForDelivery.Next())
	assert.Equal(t, StatusDelivered, StatusDelivered.Next())
}

func TestOrderStatusReachesDeliveredAfterTwoSteps(t *testing.T) {
	s := StatusPreparing
	s = s.Next().Next()
	assert.Equal(t, StatusDelivered, s)

	for i := 0; i < 5; i++ {
		s = s.Next()
	}
	assert.Equal(t, StatusDelivered, s)
}

func TestViewOf(t *testing.T) {
	p := Passenger{Seat: "12A", Order: 101}

	v := ViewOf(p, &Order{ID: 101, Status: StatusOutForDelivery, ETA: 10})
	assert.Equal(t, StatusOutForDelivery, v.Status)
	assert.Equal(t, 10, v.ETA)
	assert.False(t, v.Orphaned)

	orphan := ViewOf(p, nil)
	assert.True(t, orphan.Orphaned)
	assert.Empty(t, orphan.Status)
}

func TestItemNames(t *testing.T) {
	o := Order{Items: []LineItem{{Name: "Veg Biryani", Price: 120}, {Name: "Chai", Price: 20}}}
	assert.Equal(t, []string{"Veg Biryani", "Chai"}, o.ItemNames())
}

func TestOrderTotals(t *testing.T) {
	o := Order{Items: []LineItem{
		{Name: "Veg Biryani", Price: 120},
		{Name: "Veg Biryani", Price: 120},
		{Name: "Idli Sambhar", Price: 90},
	}}
	assert.Equal(t, 330.0, o.Subtotal())
	assert.Equal(t, 16.5, o.Tax())
	assert.Equal(t, 346.5, o.Total())

	assert.Zero(t, Order{}.Total())
}
