// Package geometry provides distance and length helpers for planner points.
package geometry

import (
	"routeplan/core"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ToOrb converts a planner point to an orb point.
func ToOrb(p core.Point) orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}

// FromOrb converts an orb point back to the integer plane, rounding to the
// nearest cell.
func FromOrb(p orb.Point) core.Point {
	return core.Point{X: round(p[0]), Y: round(p[1])}
}

// LineString converts a point chain to an orb line string.
func LineString(points []core.Point) orb.LineString {
	ls := make(orb.LineString, len(points))
	for i, p := range points {
		ls[i] = ToOrb(p)
	}
	return ls
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b core.Point) float64 {
	return planar.Distance(ToOrb(a), ToOrb(b))
}

// PathLength returns the summed segment length of a point chain.
// Chains with fewer than two points have length zero.
func PathLength(points []core.Point) float64 {
	if len(points) < 2 {
		return 0
	}
	return planar.Length(LineString(points))
}

func round(f float64) int {
	if f < 0 {
		return -int(-f + 0.5)
	}
	return int(f + 0.5)
}
