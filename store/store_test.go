package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"foodonbus-dashboard/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceOrderSyncsPassengerView(t *testing.T) {
	s := NewSeeded()

	order, err := s.AdvanceOrder(101)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOutForDelivery, order.Status)

	p, err := s.PassengerByOrder(101)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOutForDelivery, p.Status)
}

func TestAdvanceOrderStopsAtDelivered(t *testing.T) {
	s := NewSeeded()

	for i := 0; i < 2; i++ {
		_, err := s.AdvanceOrder(101)
		require.NoError(t, err)
	}
	order, err := s.Order(101)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, order.Status)

	order, err = s.AdvanceOrder(101)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, order.Status)
}

func TestAdvanceOrderNotFound(t *testing.T) {
	s := NewSeeded()
	_, err := s.AdvanceOrder(999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRemoveOrderDropsLinkedPassenger(t *testing.T) {
	s := NewSeeded()

	require.NoError(t, s.RemoveOrder(102))

	_, err := s.Order(102)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = s.PassengerByOrder(102)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Len(t, s.Orders(), 1)
	assert.Len(t, s.Passengers(), 1)
}

func TestRemoveOrderNotFoundLeavesStoreUnchanged(t *testing.T) {
	s := NewSeeded()
	before := s.Snapshot()

	err := s.RemoveOrder(999)
	assert.ErrorIs(t, err, models.ErrNotFound)

	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("store changed (-before +after):\n%s", diff)
	}
}

func TestAddOrderAssignsNextID(t *testing.T) {
	s := NewSeeded()

	o, err := s.AddOrder(models.Order{Seat: "3C", Items: []models.LineItem{{Name: "Idli Sambhar", Price: 90}}, Status: models.StatusPreparing})
	require.NoError(t, err)
	assert.Equal(t, 103, o.ID)

	got, err := s.Order(103)
	require.NoError(t, err)
	assert.Equal(t, o, got)

	_, err = s.AddOrder(models.Order{ID: 101})
	assert.ErrorIs(t, err, models.ErrDuplicate)
	assert.Len(t, s.Orders(), 3)
}

func TestAddMenuItemAssignsNextID(t *testing.T) {
	s := NewSeeded()

	item := s.AddMenuItem(models.MenuItem{ID: 77, Name: "Masala Dosa", Price: 70})
	assert.Equal(t, 4, item.ID)
	assert.NotNil(t, item.Tags)
	assert.Empty(t, item.Tags)

	empty := New()
	assert.Equal(t, 1, empty.AddMenuItem(models.MenuItem{Name: "Samosa", Price: 40}).ID)
}

func TestAddMenuItemAfterGap(t *testing.T) {
	s := NewSeeded()
	require.NoError(t, s.RemoveMenuItem(2))

	item := s.AddMenuItem(models.MenuItem{Name: "Cold Drink", Price: 40})
	assert.Equal(t, 4, item.ID)
}

func TestMenuItemsAreCopies(t *testing.T) {
	s := NewSeeded()
	items := s.MenuItems()
	items[0].Tags[0] = "changed"
	items[0].Name = "changed"

	item, err := s.MenuItem(1)
	require.NoError(t, err)
	assert.Equal(t, "Veg Biryani", item.Name)
	assert.Equal(t, "veg", item.Tags[0])
}

func TestDriverRegistry(t *testing.T) {
	s := NewSeeded()

	d, err := s.AddDriver(models.Driver{Name: "Anil"})
	require.NoError(t, err)
	assert.Equal(t, 3, d.ID)

	_, err = s.AddDriver(models.Driver{ID: 1, Name: "Dup"})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	require.NoError(t, s.RemoveDriver(3))
	assert.ErrorIs(t, s.RemoveDriver(3), models.ErrNotFound)
}

func TestBusRegistry(t *testing.T) {
	s := NewSeeded()

	err := s.AddBus(models.Bus{Number: "MH12 AB 3344"})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	require.NoError(t, s.AddBus(models.Bus{Number: "TN01 AB 1234", Seats: 36}))
	b, err := s.Bus("TN01 AB 1234")
	require.NoError(t, err)
	assert.Equal(t, 36, b.Seats)

	require.NoError(t, s.RemoveBus("TN01 AB 1234"))
	_, err = s.Bus("TN01 AB 1234")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPassengerViewOrphaned(t *testing.T) {
	s := New()
	s.AddPassenger(models.Passenger{Seat: "3C", Order: 500})

	views := s.PassengerViews()
	require.Len(t, views, 1)
	assert.True(t, views[0].Orphaned)
}

func TestWriteJSON(t *testing.T) {
	s := NewSeeded()
	_, err := s.AdvanceOrder(101)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.WriteJSON(&buf))
	assert.Contains(t, buf.String(), "\n  \"orders\": [")
	assert.Contains(t, buf.String(), "Pune → Mumbai")

	var got Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got.Orders, 2)
	assert.Equal(t, models.StatusOutForDelivery, got.Passengers[0].Status)
	assert.Equal(t, 10, got.Passengers[0].ETA)
}

func TestWriteJSONEmptyStore(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().WriteJSON(&buf))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{"orders", "menu", "drivers", "buses", "passengers"} {
		assert.JSONEq(t, "[]", string(raw[key]), key)
	}
}

func TestSnapshotIsConsistentUnderRemoval(t *testing.T) {
	s := New()
	const n = 200
	for i := 1; i <= n; i++ {
		_, err := s.AddOrder(models.Order{ID: i, Status: models.StatusPreparing, ETA: 10})
		require.NoError(t, err)
		s.AddPassenger(models.Passenger{Seat: fmt.Sprintf("S%d", i), Order: i})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= n; i++ {
			_ = s.RemoveOrder(i)
		}
	}()

	for finished := false; !finished; {
		select {
		case <-done:
			finished = true
		default:
		}
		snap := s.Snapshot()
		require.Len(t, snap.Passengers, len(snap.Orders))
		ids := make(map[int]bool, len(snap.Orders))
		for _, o := range snap.Orders {
			ids[o.ID] = true
		}
		for _, p := range snap.Passengers {
			require.False(t, p.Orphaned, "passenger %s", p.Seat)
			require.True(t, ids[p.Order], "order %d", p.Order)
		}
	}
	assert.Empty(t, s.Snapshot().Orders)
}
