// Package obstacles provides collision checks against square obstacle sets.
//
// The grid planner and the evolutionary planner use different collision
// semantics. SquareChecker tests the inclusive square anchored at the
// obstacle's top-left corner. RadialChecker treats the anchor as the centre
// and rejects anything within size/2 + margin of it.
package obstacles

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"routeplan/core"
	"routeplan/geometry"
)

// DefaultMargin is the clearance added to half the obstacle width by the
// radial checker.
const DefaultMargin = 10.0

// Checker is a function that returns true if a point is blocked.
type Checker func(core.Point) bool

// SquareContains reports whether p lies in the inclusive square of side size
// anchored at o.
func SquareContains(o core.Obstacle, size int, p core.Point) bool {
	return p.X >= o.Anchor.X && p.X <= o.Anchor.X+size &&
		p.Y >= o.Anchor.Y && p.Y <= o.Anchor.Y+size
}

// RadialContains reports whether p is closer than size/2 + margin to o.
func RadialContains(o core.Obstacle, size int, margin float64, p core.Point) bool {
	return geometry.Distance(p, o.Anchor) < float64(size)/2+margin
}

// SquareChecker creates the grid-search checker for an obstacle set.
func SquareChecker(set core.ObstacleSet) Checker {
	ix := NewIndex(set)
	size := set.Size
	return func(p core.Point) bool {
		for _, o := range ix.Within(p.Add(-size, -size), p) {
			if SquareContains(o, size, p) {
				return true
			}
		}
		return false
	}
}

// RadialChecker creates the evolutionary-planner checker for an obstacle set.
func RadialChecker(set core.ObstacleSet, margin float64) Checker {
	ix := NewIndex(set)
	size := set.Size
	reach := int(math.Ceil(float64(size)/2 + margin))
	return func(p core.Point) bool {
		for _, o := range ix.Within(p.Add(-reach, -reach), p.Add(reach, reach)) {
			if RadialContains(o, size, margin, p) {
				return true
			}
		}
		return false
	}
}

// BoundsChecker creates a checker that blocks points outside bounds.
func BoundsChecker(bounds core.Bounds) Checker {
	return func(p core.Point) bool {
		return !bounds.Contains(p)
	}
}

// Combine combines multiple checkers with OR logic. Nil checkers are ignored.
func Combine(checkers ...Checker) Checker {
	active := make([]Checker, 0, len(checkers))
	for _, c := range checkers {
		if c != nil {
			active = append(active, c)
		}
	}
	return func(p core.Point) bool {
		for _, checker := range active {
			if checker(p) {
				return true
			}
		}
		return false
	}
}

// SegmentClear samples the segment a-b at unit spacing and reports whether
// no sample is blocked. Both endpoints are tested.
func SegmentClear(a, b core.Point, blocked Checker) bool {
	if blocked == nil {
		return true
	}
	steps := int(math.Ceil(geometry.Distance(a, b)))
	if steps == 0 {
		return !blocked(a)
	}
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := core.Point{
			X: a.X + int(math.Round(dx*t)),
			Y: a.Y + int(math.Round(dy*t)),
		}
		if blocked(p) {
			return false
		}
	}
	return true
}

// Hash returns a stable hash of an obstacle set, suitable as a cache key.
func Hash(set core.ObstacleSet) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	write := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}
	write(set.Size)
	for _, o := range set.Obstacles {
		write(o.Anchor.X)
		write(o.Anchor.Y)
	}
	return h.Sum64()
}
