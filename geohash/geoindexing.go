package geohash

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

type GeoIndexingTechnique string

const (
	GeohashingTechnique GeoIndexingTechnique = "geohashing"
	RTreeTechnique      GeoIndexingTechnique = "rtree"
	QuadtreeTechnique   GeoIndexingTechnique = "quadtree"
)

var ErrNoNearbyPoints = errors.New("no nearby points found after maximum retries")

// Position is a labelled point on the map, in degrees.
type Position struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Index answers radius queries over a set of moving positions. Upsert
// replaces any earlier position stored under the same ID. Implementations
// are not safe for concurrent use.
type Index interface {
	Upsert(p Position)
	Remove(id string)
	// Search returns the positions within radius degrees of (lat, lng),
	// nearest first.
	Search(lat, lng, radius float64) []Position
}

// NewIndex builds an empty index for the given technique. precision bounds
// the geohash cells used by the geohashing technique.
func NewIndex(technique GeoIndexingTechnique, precision uint) (Index, error) {
	switch technique {
	case GeohashingTechnique:
		if precision == 0 || precision > MaxPrecision {
			precision = MaxPrecision
		}
		return newCellIndex(precision), nil
	case RTreeTechnique, "":
		return newRTreeIndex(), nil
	case QuadtreeTechnique:
		return newQuadtreeIndex(WorldBounds), nil
	default:
		return nil, fmt.Errorf("unsupported geo-indexing technique %q", technique)
	}
}

// SearchNearbyWithRetries searches around (lat, lon) starting at radius and
// doubling it after every empty attempt, up to maxRetries attempts.
func SearchNearbyWithRetries(idx Index, lat, lon, radius float64, maxRetries int) ([]Position, error) {
	for i := 0; i < maxRetries; i++ {
		if results := idx.Search(lat, lon, radius); len(results) > 0 {
			return results, nil
		}
		radius *= 2 // Increase the search radius for the next retry
	}
	return nil, ErrNoNearbyPoints
}

// cellIndex buckets positions by their full-precision geohash and answers
// queries by prefix over the covering cells.
type cellIndex struct {
	precision uint
	hashes    map[string]string
	positions map[string]Position
}

func newCellIndex(precision uint) *cellIndex {
	return &cellIndex{
		precision: precision,
		hashes:    make(map[string]string),
		positions: make(map[string]Position),
	}
}

func (c *cellIndex) Upsert(p Position) {
	c.positions[p.ID] = p
	c.hashes[p.ID] = Encode(p.Lat, p.Lng, MaxPrecision)
}

func (c *cellIndex) Remove(id string) {
	delete(c.positions, id)
	delete(c.hashes, id)
}

func (c *cellIndex) Search(lat, lng, radius float64) []Position {
	cells := CoveringCells(lat, lng, radius, c.precision)
	var results []Position
	for id, hash := range c.hashes {
		inCell := slices.ContainsFunc(cells, func(cell string) bool {
			return len(hash) >= len(cell) && hash[:len(cell)] == cell
		})
		if !inCell {
			continue
		}
		if p := c.positions[id]; withinRadius(p, lat, lng, radius) {
			results = append(results, p)
		}
	}
	return sortByDistance(results, lat, lng)
}

func withinRadius(p Position, lat, lng, radius float64) bool {
	return distance(Point{p.Lat, p.Lng}, Point{lat, lng}) <= radius
}

func sortByDistance(ps []Position, lat, lng float64) []Position {
	center := Point{lat, lng}
	sort.SliceStable(ps, func(i, j int) bool {
		di := distance(Point{ps[i].Lat, ps[i].Lng}, center)
		dj := distance(Point{ps[j].Lat, ps[j].Lng}, center)
		if di != dj {
			return di < dj
		}
		return ps[i].ID < ps[j].ID
	})
	return ps
}

// distance calculates the Euclidean distance between two points
func distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
