package dashboard

import (
	"foodonbus-dashboard/mapsim"
)

// MapState is the live map as polled by the client.
type MapState struct {
	View     mapsim.View     `json:"view"`
	Markers  []mapsim.Marker `json:"markers"`
	Interval int64           `json:"interval_ms"`
}

// LiveMap returns the current markers. It does not start the simulator, so
// the list stays empty until the map page is first shown.
func (d *Dashboard) LiveMap() MapState {
	sim := d.opts.Simulator
	return MapState{View: sim.View(), Markers: sim.Markers(), Interval: sim.Interval().Milliseconds()}
}

// Nearby finds markers around a point, doubling the radius up to the
// configured number of retries while nothing is found.
func (d *Dashboard) Nearby(lat, lng, radius float64) ([]mapsim.Marker, error) {
	return d.opts.Simulator.Nearby(lat, lng, radius, d.opts.MaxRetries)
}
