// Package store holds the dashboard's in-memory Domain Store. Every command
// handler reads and mutates the same *Store; there is no persistence.
package store

import (
	"fmt"
	"slices"
	"sync"

	"foodonbus-dashboard/models"
)

type Store struct {
	mu         sync.RWMutex
	orders     []models.Order
	menu       []models.MenuItem
	drivers    []models.Driver
	buses      []models.Bus
	passengers []models.Passenger
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Orders returns a copy of all orders in insertion order.
func (s *Store) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ordersLocked()
}

func (s *Store) ordersLocked() []models.Order {
	out := make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = cloneOrder(o)
	}
	return out
}

func (s *Store) Order(id int) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.orderIndex(id)
	if i < 0 {
		return models.Order{}, fmt.Errorf("order %d: %w", id, models.ErrNotFound)
	}
	return cloneOrder(s.orders[i]), nil
}

// AddOrder stores o. A zero id is replaced by max existing id + 1; an
// explicit id must be unused.
func (s *Store) AddOrder(o models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == 0 {
		for _, existing := range s.orders {
			o.ID = max(o.ID, existing.ID)
		}
		o.ID++
	} else if s.orderIndex(o.ID) >= 0 {
		return models.Order{}, fmt.Errorf("order %d: %w", o.ID, models.ErrDuplicate)
	}
	s.orders = append(s.orders, cloneOrder(o))
	return cloneOrder(o), nil
}

// AdvanceOrder moves the order to its next status and returns the result.
func (s *Store) AdvanceOrder(id int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.orderIndex(id)
	if i < 0 {
		return models.Order{}, fmt.Errorf("order %d: %w", id, models.ErrNotFound)
	}
	s.orders[i].Status = s.orders[i].Status.Next()
	return cloneOrder(s.orders[i]), nil
}

// RemoveOrder deletes the order and every passenger record linked to it.
func (s *Store) RemoveOrder(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.orderIndex(id)
	if i < 0 {
		return fmt.Errorf("order %d: %w", id, models.ErrNotFound)
	}
	s.orders = slices.Delete(s.orders, i, i+1)
	s.passengers = slices.DeleteFunc(s.passengers, func(p models.Passenger) bool {
		return p.Order == id
	})
	return nil
}

func (s *Store) MenuItems() []models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menuLocked()
}

func (s *Store) menuLocked() []models.MenuItem {
	out := make([]models.MenuItem, len(s.menu))
	for i, m := range s.menu {
		out[i] = cloneMenuItem(m)
	}
	return out
}

func (s *Store) MenuItem(id int) (models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.menuIndex(id)
	if i < 0 {
		return models.MenuItem{}, fmt.Errorf("menu item %d: %w", id, models.ErrNotFound)
	}
	return cloneMenuItem(s.menu[i]), nil
}

// AddMenuItem stores item under the next free id (max existing id + 1) and
// returns the stored copy. The id carried by item is ignored.
func (s *Store) AddMenuItem(item models.MenuItem) models.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := 0
	for _, m := range s.menu {
		next = max(next, m.ID)
	}
	item.ID = next + 1
	if item.Tags == nil {
		item.Tags = []string{}
	}
	s.menu = append(s.menu, cloneMenuItem(item))
	return cloneMenuItem(item)
}

func (s *Store) UpdateMenuItem(item models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.menuIndex(item.ID)
	if i < 0 {
		return fmt.Errorf("menu item %d: %w", item.ID, models.ErrNotFound)
	}
	s.menu[i] = cloneMenuItem(item)
	return nil
}

func (s *Store) RemoveMenuItem(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.menuIndex(id)
	if i < 0 {
		return fmt.Errorf("menu item %d: %w", id, models.ErrNotFound)
	}
	s.menu = slices.Delete(s.menu, i, i+1)
	return nil
}

func (s *Store) Drivers() []models.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.drivers)
}

func (s *Store) Driver(id int) (models.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.driverIndex(id)
	if i < 0 {
		return models.Driver{}, fmt.Errorf("driver %d: %w", id, models.ErrNotFound)
	}
	return s.drivers[i], nil
}

// AddDriver stores d. A zero id is replaced by max existing id + 1; an
// explicit id must be unused.
func (s *Store) AddDriver(d models.Driver) (models.Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == 0 {
		for _, existing := range s.drivers {
			d.ID = max(d.ID, existing.ID)
		}
		d.ID++
	} else if s.driverIndex(d.ID) >= 0 {
		return models.Driver{}, fmt.Errorf("driver %d: %w", d.ID, models.ErrDuplicate)
	}
	s.drivers = append(s.drivers, d)
	return d, nil
}

func (s *Store) RemoveDriver(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.driverIndex(id)
	if i < 0 {
		return fmt.Errorf("driver %d: %w", id, models.ErrNotFound)
	}
	s.drivers = slices.Delete(s.drivers, i, i+1)
	return nil
}

func (s *Store) Buses() []models.Bus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.buses)
}

func (s *Store) Bus(number string) (models.Bus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.busIndex(number)
	if i < 0 {
		return models.Bus{}, fmt.Errorf("bus %q: %w", number, models.ErrNotFound)
	}
	return s.buses[i], nil
}

func (s *Store) AddBus(b models.Bus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busIndex(b.Number) >= 0 {
		return fmt.Errorf("bus %q: %w", b.Number, models.ErrDuplicate)
	}
	s.buses = append(s.buses, b)
	return nil
}

func (s *Store) RemoveBus(number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.busIndex(number)
	if i < 0 {
		return fmt.Errorf("bus %q: %w", number, models.ErrNotFound)
	}
	s.buses = slices.Delete(s.buses, i, i+1)
	return nil
}

func (s *Store) AddPassenger(p models.Passenger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passengers = append(s.passengers, p)
}

func (s *Store) Passengers() []models.Passenger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.passengers)
}

// PassengerViews joins every passenger with its order.
func (s *Store) PassengerViews() []models.PassengerView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.passengerViewsLocked()
}

func (s *Store) passengerViewsLocked() []models.PassengerView {
	views := make([]models.PassengerView, 0, len(s.passengers))
	for _, p := range s.passengers {
		views = append(views, s.viewOf(p))
	}
	return views
}

// PassengerByOrder returns the view of the first passenger linked to orderID.
func (s *Store) PassengerByOrder(orderID int) (models.PassengerView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.passengers {
		if p.Order == orderID {
			return s.viewOf(p), nil
		}
	}
	return models.PassengerView{}, fmt.Errorf("passenger for order %d: %w", orderID, models.ErrNotFound)
}

// PassengerBySeat returns the view of the first passenger in seat.
func (s *Store) PassengerBySeat(seat string) (models.PassengerView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.passengers {
		if p.Seat == seat {
			return s.viewOf(p), nil
		}
	}
	return models.PassengerView{}, fmt.Errorf("passenger in seat %q: %w", seat, models.ErrNotFound)
}

func (s *Store) viewOf(p models.Passenger) models.PassengerView {
	if i := s.orderIndex(p.Order); i >= 0 {
		return models.ViewOf(p, &s.orders[i])
	}
	return models.ViewOf(p, nil)
}

func (s *Store) orderIndex(id int) int {
	return slices.IndexFunc(s.orders, func(o models.Order) bool { return o.ID == id })
}

func (s *Store) menuIndex(id int) int {
	return slices.IndexFunc(s.menu, func(m models.MenuItem) bool { return m.ID == id })
}

func (s *Store) driverIndex(id int) int {
	return slices.IndexFunc(s.drivers, func(d models.Driver) bool { return d.ID == id })
}

func (s *Store) busIndex(number string) int {
	return slices.IndexFunc(s.buses, func(b models.Bus) bool { return b.Number == number })
}

func cloneOrder(o models.Order) models.Order {
	o.Items = slices.Clone(o.Items)
	return o
}

func cloneMenuItem(m models.MenuItem) models.MenuItem {
	m.Tags = slices.Clone(m.Tags)
	return m
}
