package geohash

import (
	"math"
)

// Point represents a point in 2D space
type Point struct {
	X, Y float64
}

// Bounds represents the boundaries of a region
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// WorldBounds covers every valid latitude (X) and longitude (Y).
var WorldBounds = Bounds{MinX: -90, MinY: -180, MaxX: 90, MaxY: 180}

const nodeCapacity = 4

// QuadtreeNode represents a node in the quadtree
type QuadtreeNode struct {
	Bounds   Bounds
	Points   []Position
	Children [4]*QuadtreeNode
}

// Quadtree represents the quadtree structure
type Quadtree struct {
	Root *QuadtreeNode
}

// NewQuadtree returns an empty Quadtree with given bounds
func NewQuadtree(bounds Bounds) *Quadtree {
	return &Quadtree{
		Root: &QuadtreeNode{Bounds: bounds},
	}
}

// Insert adds a position to the Quadtree. Positions outside the root bounds
// are dropped.
func (qt *Quadtree) Insert(p Position) {
	qt.Root.insert(p)
}

// insert adds a position to a QuadtreeNode, creating children nodes if necessary
func (node *QuadtreeNode) insert(p Position) bool {
	if !node.contains(Point{p.Lat, p.Lng}) {
		return false
	}
	if len(node.Points) < nodeCapacity && node.Children[0] == nil {
		node.Points = append(node.Points, p)
		return true
	}
	if node.Children[0] == nil {
		node.subdivide()
	}
	// Quadrants share edges; the first match owns a point on a boundary.
	for i := 0; i < 4; i++ {
		if node.Children[i].insert(p) {
			return true
		}
	}
	return false
}

// contains checks if the point is within the node's bounds
func (node *QuadtreeNode) contains(point Point) bool {
	return point.X >= node.Bounds.MinX && point.X <= node.Bounds.MaxX &&
		point.Y >= node.Bounds.MinY && point.Y <= node.Bounds.MaxY
}

// subdivide splits the node into four child nodes
func (node *QuadtreeNode) subdivide() {
	midX := (node.Bounds.MinX + node.Bounds.MaxX) / 2
	midY := (node.Bounds.MinY + node.Bounds.MaxY) / 2
	node.Children[0] = &QuadtreeNode{Bounds: Bounds{node.Bounds.MinX, node.Bounds.MinY, midX, midY}}
	node.Children[1] = &QuadtreeNode{Bounds: Bounds{midX, node.Bounds.MinY, node.Bounds.MaxX, midY}}
	node.Children[2] = &QuadtreeNode{Bounds: Bounds{node.Bounds.MinX, midY, midX, node.Bounds.MaxY}}
	node.Children[3] = &QuadtreeNode{Bounds: Bounds{midX, midY, node.Bounds.MaxX, node.Bounds.MaxY}}
}

// SearchNearby searches for nearby positions within a given radius
func (qt *Quadtree) SearchNearby(center Point, radius float64) []Position {
	return qt.Root.searchNearby(center, radius)
}

// searchNearby finds points within a radius in a QuadtreeNode
func (node *QuadtreeNode) searchNearby(center Point, radius float64) []Position {
	if !node.intersectsCircle(center, radius) {
		return nil
	}
	var result []Position
	for _, p := range node.Points {
		if distance(Point{p.Lat, p.Lng}, center) <= radius {
			result = append(result, p)
		}
	}
	if node.Children[0] != nil {
		for i := 0; i < 4; i++ {
			result = append(result, node.Children[i].searchNearby(center, radius)...)
		}
	}
	return result
}

// intersectsCircle checks if a circle intersects with the node's bounds
func (node *QuadtreeNode) intersectsCircle(center Point, radius float64) bool {
	closestX := math.Max(node.Bounds.MinX, math.Min(center.X, node.Bounds.MaxX))
	closestY := math.Max(node.Bounds.MinY, math.Min(center.Y, node.Bounds.MaxY))
	dx := closestX - center.X
	dy := closestY - center.Y
	return (dx*dx + dy*dy) <= (radius * radius)
}

// quadtreeIndex adapts Quadtree, which cannot delete, to the Index interface
// by rebuilding the tree on the first search after a change.
type quadtreeIndex struct {
	bounds    Bounds
	positions map[string]Position
	tree      *Quadtree
	dirty     bool
}

func newQuadtreeIndex(bounds Bounds) *quadtreeIndex {
	return &quadtreeIndex{
		bounds:    bounds,
		positions: make(map[string]Position),
		tree:      NewQuadtree(bounds),
	}
}

func (q *quadtreeIndex) Upsert(p Position) {
	q.positions[p.ID] = p
	q.dirty = true
}

func (q *quadtreeIndex) Remove(id string) {
	if _, ok := q.positions[id]; ok {
		delete(q.positions, id)
		q.dirty = true
	}
}

func (q *quadtreeIndex) Search(lat, lng, radius float64) []Position {
	if q.dirty {
		q.tree = NewQuadtree(q.bounds)
		for _, p := range q.positions {
			q.tree.Insert(p)
		}
		q.dirty = false
	}
	return sortByDistance(q.tree.SearchNearby(Point{lat, lng}, radius), lat, lng)
}
