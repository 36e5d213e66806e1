package geohash

import (
	"github.com/dhconnelly/rtreego"
)

// spatialPoint wraps a position to satisfy the rtreego.Spatial interface
type spatialPoint struct {
	Position
	point rtreego.Point
}

// Bounds returns a rectangle representing the spatial bounds of the point
func (p *spatialPoint) Bounds() rtreego.Rect {
	// A very small distance to represent the bounding box
	return p.point.ToRect(0.0001)
}

type rtreeIndex struct {
	tree  *rtreego.Rtree
	items map[string]*spatialPoint
}

func newRTreeIndex() *rtreeIndex {
	return &rtreeIndex{
		tree:  rtreego.NewTree(2, 25, 50),
		items: make(map[string]*spatialPoint),
	}
}

func (r *rtreeIndex) Upsert(p Position) {
	r.Remove(p.ID)
	sp := &spatialPoint{Position: p, point: rtreego.Point{p.Lat, p.Lng}}
	r.items[p.ID] = sp
	r.tree.Insert(sp)
}

func (r *rtreeIndex) Remove(id string) {
	if old, ok := r.items[id]; ok {
		r.tree.Delete(old)
		delete(r.items, id)
	}
}

// Search searches for nearby points within a given radius
func (r *rtreeIndex) Search(lat, lng, radius float64) []Position {
	point := rtreego.Point{lat, lng}
	var results []Position
	for _, item := range r.tree.SearchIntersect(point.ToRect(radius)) {
		sp := item.(*spatialPoint)
		if withinRadius(sp.Position, lat, lng, radius) {
			results = append(results, sp.Position)
		}
	}
	return sortByDistance(results, lat, lng)
}
