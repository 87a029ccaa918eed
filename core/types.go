// Package core contains the fundamental types shared by the route planners.
package core

import "fmt"

// DefaultObstacleSize is the side length of every obstacle square unless a
// scenario overrides it.
const DefaultObstacleSize = 40

// Point represents a location on the planning plane.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Obstacle is an axis-aligned square forbidden region. The side length is
// shared by every obstacle in an ObstacleSet.
type Obstacle struct {
	Anchor Point `json:"anchor"`
}

// ObstacleSet is a list of obstacles with their common side length.
type ObstacleSet struct {
	Obstacles []Obstacle `json:"obstacles"`
	Size      int        `json:"size"`
}

// NewObstacleSet builds an obstacle set from anchor points.
func NewObstacleSet(size int, anchors ...Point) ObstacleSet {
	set := ObstacleSet{Size: size, Obstacles: make([]Obstacle, len(anchors))}
	for i, a := range anchors {
		set.Obstacles[i] = Obstacle{Anchor: a}
	}
	return set
}

// Len returns the number of obstacles.
func (s ObstacleSet) Len() int {
	return len(s.Obstacles)
}

// Anchors returns the anchor points of all obstacles in order.
func (s ObstacleSet) Anchors() []Point {
	anchors := make([]Point, len(s.Obstacles))
	for i, o := range s.Obstacles {
		anchors[i] = o.Anchor
	}
	return anchors
}

// Path represents a route from a start point to an end point.
type Path struct {
	Points []Point `json:"points"`
	Cost   float64 `json:"cost"` // search cost at the goal, or total length
}

// Len returns the number of points in the path.
func (p Path) Len() int {
	return len(p.Points)
}

// IsEmpty returns true if the path has no points.
func (p Path) IsEmpty() bool {
	return len(p.Points) == 0
}

// Start returns the first point. It panics on an empty path.
func (p Path) Start() Point {
	return p.Points[0]
}

// End returns the last point. It panics on an empty path.
func (p Path) End() Point {
	return p.Points[len(p.Points)-1]
}

// Clone returns a deep copy of the path.
func (p Path) Clone() Path {
	points := make([]Point, len(p.Points))
	copy(points, p.Points)
	return Path{Points: points, Cost: p.Cost}
}

// Bounds represents a rectangular area. Min and Max are both inclusive.
type Bounds struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Width returns the width of the bounds.
func (b Bounds) Width() int {
	return b.Max.X - b.Min.X
}

// Height returns the height of the bounds.
func (b Bounds) Height() int {
	return b.Max.Y - b.Min.Y
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// IsEmpty reports whether the bounds cover no area.
func (b Bounds) IsEmpty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y
}
