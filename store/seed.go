package store

import "foodonbus-dashboard/models"

// NewSeeded returns a store holding the demo fleet, menu and orders the
// dashboard starts with.
func NewSeeded() *Store {
	s := New()
	s.orders = []models.Order{
		{ID: 101, Seat: "12A", Items: []models.LineItem{{Name: "Veg Biryani", Price: 120}}, Status: models.StatusPreparing, ETA: 10},
		{ID: 102, Seat: "7B", Items: []models.LineItem{{Name: "Chicken Roll", Price: 150}}, Status: models.StatusOutForDelivery, ETA: 4},
	}
	s.menu = []models.MenuItem{
		{ID: 1, Name: "Veg Biryani", Price: 120, Tags: []string{"veg", "popular"}},
		{ID: 2, Name: "Chicken Roll", Price: 150, Tags: []string{"nonveg", "quick"}},
		{ID: 3, Name: "Idli Sambhar", Price: 90, Tags: []string{"veg", "healthy"}},
	}
	s.drivers = []models.Driver{
		{ID: 1, Name: "Raju", Phone: "9876543210", Bus: "MH12 AB 3344", Lat: 19.07, Lng: 72.87},
		{ID: 2, Name: "Kumar", Phone: "9988776655", Bus: "KA09 XY 4433", Lat: 18.52, Lng: 73.85},
	}
	s.buses = []models.Bus{
		{Number: "MH12 AB 3344", Route: "Pune → Mumbai", Seats: 42, Lat: 19.07, Lng: 72.87},
		{Number: "KA09 XY 4433", Route: "Bangalore → Mysore", Seats: 36, Lat: 18.52, Lng: 73.85},
	}
	s.passengers = []models.Passenger{
		{Seat: "12A", Order: 101},
		{Seat: "7B", Order: 102},
	}
	return s
}
