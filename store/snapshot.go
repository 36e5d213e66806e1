package store

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"foodonbus-dashboard/models"
)

// Snapshot is the exported shape of the whole store. Passengers are written
// with the status and ETA of their order at the time of the snapshot.
type Snapshot struct {
	Orders     []models.Order         `json:"orders"`
	Menu       []models.MenuItem      `json:"menu"`
	Drivers    []models.Driver        `json:"drivers"`
	Buses      []models.Bus           `json:"buses"`
	Passengers []models.PassengerView `json:"passengers"`
}

// Snapshot copies every collection under one read lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Orders:     s.ordersLocked(),
		Menu:       s.menuLocked(),
		Drivers:    slices.Clone(s.drivers),
		Buses:      slices.Clone(s.buses),
		Passengers: s.passengerViewsLocked(),
	}
}

// WriteJSON writes the snapshot as JSON indented by two spaces.
func (s *Store) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(nonNil(s.Snapshot())); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// nonNil keeps empty collections as [] rather than null in the export.
func nonNil(snap Snapshot) Snapshot {
	if snap.Orders == nil {
		snap.Orders = []models.Order{}
	}
	if snap.Menu == nil {
		snap.Menu = []models.MenuItem{}
	}
	if snap.Drivers == nil {
		snap.Drivers = []models.Driver{}
	}
	if snap.Buses == nil {
		snap.Buses = []models.Bus{}
	}
	if snap.Passengers == nil {
		snap.Passengers = []models.PassengerView{}
	}
	return snap
}
