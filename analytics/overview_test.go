package analytics

import (
	"testing"

	"foodonbus-dashboard/models"

	"github.com/stretchr/testify/assert"
)

func order(id int, status models.OrderStatus, eta int, items ...string) models.Order {
	o := models.Order{ID: id, Status: status, ETA: eta}
	for _, name := range items {
		o.Items = append(o.Items, models.LineItem{Name: name})
	}
	return o
}

func TestOverview(t *testing.T) {
	orders := []models.Order{
		order(101, models.StatusPreparing, 10),
		order(102, models.StatusOutForDelivery, 4),
		order(103, models.StatusDelivered, 7),
	}

	m := Overview(orders)

	assert.Equal(t, 3, m.Total)
	assert.Equal(t, 1, m.Preparing)
	assert.Equal(t, 1, m.Delivered)
	assert.Equal(t, 2, m.Pending)
	assert.Equal(t, "7", m.AvgETA)
}

func TestOverviewNoOrders(t *testing.T) {
	m := Overview(nil)
	assert.Equal(t, 0, m.Total)
	assert.Equal(t, ETAPlaceholder, m.AvgETA)
}

func TestAverageETA(t *testing.T) {
	avg, ok := AverageETA([]models.Order{{ETA: 10}, {ETA: 4}})
	assert.True(t, ok)
	assert.Equal(t, 7, avg)

	avg, ok = AverageETA([]models.Order{{ETA: 10}, {ETA: 5}})
	assert.True(t, ok)
	assert.Equal(t, 7, avg)

	_, ok = AverageETA(nil)
	assert.False(t, ok)
}

func TestPopularItems(t *testing.T) {
	orders := []models.Order{
		order(1, models.StatusPreparing, 0, "Chai", "Veg Biryani"),
		order(2, models.StatusPreparing, 0, "Samosa", "Veg Biryani"),
		order(3, models.StatusPreparing, 0, "Idli", "Samosa"),
		order(4, models.StatusPreparing, 0, "Veg Biryani"),
	}

	top := PopularItems(orders, 3)

	assert.Equal(t, []ItemCount{
		{Name: "Veg Biryani", Count: 3},
		{Name: "Samosa", Count: 2},
		{Name: "Chai", Count: 1},
	}, top)
}

func TestPopularItemsTiesKeepFirstSeen(t *testing.T) {
	orders := []models.Order{
		order(1, models.StatusPreparing, 0, "B"),
		order(2, models.StatusPreparing, 0, "A"),
		order(3, models.StatusPreparing, 0, "C"),
	}

	top := PopularItems(orders, 2)

	assert.Equal(t, []ItemCount{{Name: "B", Count: 1}, {Name: "A", Count: 1}}, top)
	assert.Empty(t, PopularItems(nil, 3))
}
