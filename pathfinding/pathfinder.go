// Package pathfinding provides grid search between points and reduction of
// the resulting dense paths.
package pathfinding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"routeplan/core"
	"routeplan/obstacles"
)

var (
	// ErrNotFound is returned when the goal cannot be reached.
	ErrNotFound = errors.New("no path found")
	// ErrStartBlocked is returned when the start point lies in an obstacle.
	ErrStartBlocked = errors.New("start point is blocked")
	// ErrSearchLimit is returned when a search expands more nodes than allowed.
	ErrSearchLimit = errors.New("pathfinding exceeded node limit")
)

// PathFinder finds paths between points.
type PathFinder interface {
	FindPath(ctx context.Context, start, end core.Point, blocked obstacles.Checker) (core.Path, error)
}

// Weights blends the two terms of the search priority:
// f = Heuristic*distance(n, goal) + Cost*g(n).
type Weights struct {
	Heuristic float64 `json:"heuristic"`
	Cost      float64 `json:"cost"`
}

// DefaultWeights keeps both terms small and unequal so the frontier spreads
// around obstacle corners instead of beelining.
var DefaultWeights = Weights{
	Heuristic: 0.0063,
	Cost:      0.002,
}

// DefaultMaxNodes bounds the number of expansions of a single search.
const DefaultMaxNodes = 2_000_000

// offsets lists the 8-connected neighbour steps in expansion order.
var offsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// GetNeighbors returns the 8-connected neighbours of a point.
func GetNeighbors(p core.Point) []core.Point {
	neighbors := make([]core.Point, len(offsets))
	for i, o := range offsets {
		neighbors[i] = p.Add(o[0], o[1])
	}
	return neighbors
}

// PathToString converts a path to a string representation for debugging.
func PathToString(path core.Path) string {
	if path.IsEmpty() {
		return "empty path"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Path (cost=%.3f): ", path.Cost)
	for i, p := range path.Points {
		if i > 0 {
			b.WriteString(" → ")
		}
		b.WriteString(p.String())
	}
	return b.String()
}
