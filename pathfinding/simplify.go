package pathfinding

import (
	"fmt"

	"routeplan/core"
	"routeplan/geometry"

	"github.com/paulmach/orb/simplify"
)

// DefaultTolerance is the reduction tolerance applied to grid routes.
const DefaultTolerance = 210.0

// SimplifyMode selects the deviation measure used during reduction.
type SimplifyMode string

const (
	// SimplifyFirstPoint measures each interior point against the first
	// point of its range.
	SimplifyFirstPoint SimplifyMode = "first-point"
	// SimplifyChord measures perpendicular distance to the range's chord
	// (classical Douglas-Peucker).
	SimplifyChord SimplifyMode = "chord"
)

// ParseSimplifyMode converts a string to a SimplifyMode.
func ParseSimplifyMode(s string) (SimplifyMode, error) {
	switch s {
	case "", "first-point", "first":
		return SimplifyFirstPoint, nil
	case "chord", "rdp", "douglas-peucker":
		return SimplifyChord, nil
	default:
		return "", fmt.Errorf("unknown simplify mode: %s", s)
	}
}

// SimplifyWith reduces points with the given mode.
func SimplifyWith(mode SimplifyMode, points []core.Point, tolerance float64) []core.Point {
	if mode == SimplifyChord {
		return SimplifyChordPoints(points, tolerance)
	}
	return Simplify(points, tolerance)
}

// Simplify reduces a dense point chain by recursive maximum-deviation
// splitting. Deviation is the distance from the first point of the current
// range, not from its chord. The result always keeps the first and last
// point and is an ordered subsequence of the input.
func Simplify(points []core.Point, tolerance float64) []core.Point {
	n := len(points)
	if n <= 2 {
		out := make([]core.Point, n)
		copy(out, points)
		return out
	}

	keep := make([]bool, n)
	keep[0], keep[n-1] = true, true

	type span struct{ first, last int }
	stack := []span{{0, n - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		index := s.first
		dmax := 0.0
		for i := s.first + 1; i < s.last; i++ {
			if d := geometry.Distance(points[i], points[s.first]); d > dmax {
				index, dmax = i, d
			}
		}

		if dmax > tolerance && index > s.first {
			keep[index] = true
			stack = append(stack, span{index, s.last}, span{s.first, index})
		}
	}

	out := make([]core.Point, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

// SimplifyChordPoints runs classical Douglas-Peucker on the chain.
func SimplifyChordPoints(points []core.Point, tolerance float64) []core.Point {
	if len(points) <= 2 {
		out := make([]core.Point, len(points))
		copy(out, points)
		return out
	}

	reduced := simplify.DouglasPeucker(tolerance).LineString(geometry.LineString(RemoveCollinear(points)))
	out := make([]core.Point, len(reduced))
	for i, p := range reduced {
		out[i] = geometry.FromOrb(p)
	}
	return out
}

// IsAligned checks if three points lie on one line.
func IsAligned(p1, p2, p3 core.Point) bool {
	cross := (p2.X-p1.X)*(p3.Y-p1.Y) - (p2.Y-p1.Y)*(p3.X-p1.X)
	return cross == 0
}

// passesThrough reports whether p2 lies on the segment p1-p3 with the path
// continuing in the same direction.
func passesThrough(p1, p2, p3 core.Point) bool {
	if !IsAligned(p1, p2, p3) {
		return false
	}
	dot := (p2.X-p1.X)*(p3.X-p2.X) + (p2.Y-p1.Y)*(p3.Y-p2.Y)
	return dot > 0
}

// RemoveCollinear drops interior points that lie between their neighbours
// on one line. Grid routes shrink to their turning points; reversals are
// kept.
func RemoveCollinear(points []core.Point) []core.Point {
	if len(points) <= 2 {
		out := make([]core.Point, len(points))
		copy(out, points)
		return out
	}

	simplified := []core.Point{points[0]}
	for i := 1; i < len(points)-1; i++ {
		if !passesThrough(simplified[len(simplified)-1], points[i], points[i+1]) {
			simplified = append(simplified, points[i])
		}
	}

	// Always include the last point
	return append(simplified, points[len(points)-1])
}
