// Package mapsim runs the live map: one marker per bus and driver, nudged by
// a random delta on every tick to simulate motion. Markers are seeded from
// the Domain Store once and never written back to it.
package mapsim

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"sync"
	"time"

	"foodonbus-dashboard/geohash"
	"foodonbus-dashboard/metrics"
	"foodonbus-dashboard/models"

	"go.uber.org/zap"
)

type Kind string

const (
	KindBus    Kind = "bus"
	KindDriver Kind = "driver"
)

type Marker struct {
	ID    string  `json:"id"`
	Kind  Kind    `json:"kind"`
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// View is the map viewport.
type View struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Zoom    int     `json:"zoom"`
	TileURL string  `json:"tile_url"`
}

// PositionSink receives every marker after placement and after each tick.
type PositionSink interface {
	Name() string
	Publish(ctx context.Context, markers []Marker) error
}

type Options struct {
	Interval time.Duration
	// Jitter is the width of the symmetric range each coordinate moves by
	// per tick: deltas are drawn from [-Jitter/2, Jitter/2).
	Jitter float64
	View   View
	Index  geohash.Index
	Sinks  []PositionSink
	Rand   *rand.Rand
	Logger *zap.Logger
}

type Simulator struct {
	opts Options

	mu          sync.Mutex
	initialized bool
	markers     []Marker
	view        View
	done        chan struct{}
}

func New(opts Options) *Simulator {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Index == nil {
		idx, _ := geohash.NewIndex(geohash.RTreeTechnique, 0)
		opts.Index = idx
	}
	return &Simulator{opts: opts, view: opts.View}
}

func BusMarkerID(number string) string { return "bus:" + number }

func DriverMarkerID(id int) string { return "driver:" + strconv.Itoa(id) }

// BusMarker is the marker of b at its registered position.
func BusMarker(b models.Bus) Marker {
	return Marker{
		ID:    BusMarkerID(b.Number),
		Kind:  KindBus,
		Label: fmt.Sprintf("%s\n%s", b.Number, b.Route),
		Lat:   b.Lat,
		Lng:   b.Lng,
	}
}

// DriverMarker is the marker of d at its registered position.
func DriverMarker(d models.Driver) Marker {
	return Marker{
		ID:    DriverMarkerID(d.ID),
		Kind:  KindDriver,
		Label: fmt.Sprintf("%s\n%s", d.Name, d.Bus),
		Lat:   d.Lat,
		Lng:   d.Lng,
	}
}

// Init places the markers and starts the ticker. It runs at most once; later
// calls return false and change nothing. The ticker stops when ctx is done.
func (s *Simulator) Init(ctx context.Context, buses []models.Bus, drivers []models.Driver) bool {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return false
	}
	s.initialized = true
	for _, b := range buses {
		s.markers = append(s.markers, BusMarker(b))
	}
	for _, d := range drivers {
		s.markers = append(s.markers, DriverMarker(d))
	}
	s.indexLocked()
	snapshot := s.copyLocked()
	s.done = make(chan struct{})
	s.mu.Unlock()

	metrics.Markers.Set(float64(len(snapshot)))
	s.opts.Logger.Info("Live map initialised", zap.Int("markers", len(snapshot)), zap.Duration("interval", s.opts.Interval))
	s.publish(ctx, snapshot)

	go s.run(ctx)
	return true
}

func (s *Simulator) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step(ctx)
		}
	}
}

// Step moves every marker once and publishes the new positions.
func (s *Simulator) Step(ctx context.Context) {
	s.mu.Lock()
	for i := range s.markers {
		s.markers[i].Lat += (s.opts.Rand.Float64() - 0.5) * s.opts.Jitter
		s.markers[i].Lng += (s.opts.Rand.Float64() - 0.5) * s.opts.Jitter
	}
	s.indexLocked()
	snapshot := s.copyLocked()
	s.mu.Unlock()

	metrics.SimulatorTicks.Inc()
	s.publish(ctx, snapshot)
}

// Done is closed once the ticker has stopped. It is nil before Init.
func (s *Simulator) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Place adds a marker for a bus or driver registered after Init. Before Init
// it does nothing and returns false: Init seeds every marker from the store.
// An existing marker with the same id is left where it is.
func (s *Simulator) Place(m Marker) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized || s.indexOf(m.ID) >= 0 {
		return false
	}
	s.markers = append(s.markers, m)
	s.opts.Index.Upsert(geohash.Position{ID: m.ID, Lat: m.Lat, Lng: m.Lng})
	metrics.Markers.Set(float64(len(s.markers)))
	return true
}

// Remove drops the marker with id, reporting whether it existed.
func (s *Simulator) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.markers = slices.Delete(s.markers, i, i+1)
	s.opts.Index.Remove(id)
	metrics.Markers.Set(float64(len(s.markers)))
	return true
}

func (s *Simulator) indexOf(id string) int {
	return slices.IndexFunc(s.markers, func(m Marker) bool { return m.ID == id })
}

func (s *Simulator) Markers() []Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

func (s *Simulator) Marker(id string) (Marker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.markers[i], true
	}
	return Marker{}, false
}

// Interval is the time between ticks.
func (s *Simulator) Interval() time.Duration { return s.opts.Interval }

// SetView recentres the map.
func (s *Simulator) SetView(lat, lng float64, zoom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Lat, s.view.Lng, s.view.Zoom = lat, lng, zoom
}

func (s *Simulator) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Nearby returns the markers around (lat, lng), widening the radius up to
// retries times when nothing is found.
func (s *Simulator) Nearby(lat, lng, radius float64, retries int) ([]Marker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	positions, err := geohash.SearchNearbyWithRetries(s.opts.Index, lat, lng, radius, retries)
	if err != nil {
		return nil, err
	}
	out := make([]Marker, 0, len(positions))
	for _, p := range positions {
		for _, m := range s.markers {
			if m.ID == p.ID {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

func (s *Simulator) indexLocked() {
	for _, m := range s.markers {
		s.opts.Index.Upsert(geohash.Position{ID: m.ID, Lat: m.Lat, Lng: m.Lng})
	}
}

func (s *Simulator) copyLocked() []Marker {
	out := make([]Marker, len(s.markers))
	copy(out, s.markers)
	return out
}

func (s *Simulator) publish(ctx context.Context, markers []Marker) {
	for _, sink := range s.opts.Sinks {
		if err := sink.Publish(ctx, markers); err != nil {
			metrics.SinkErrors.WithLabelValues(sink.Name()).Inc()
			s.opts.Logger.Warn("Failed to publish marker positions", zap.String("sink", sink.Name()), zap.Error(err))
		}
	}
}
