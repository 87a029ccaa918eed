package pathfinding

import (
	"context"
	"errors"
	"fmt"

	"routeplan/core"
	"routeplan/geometry"
	"routeplan/obstacles"
)

// SkippedSegment records a checkpoint pair that could not be connected.
type SkippedSegment struct {
	Index int        `json:"index"`
	From  core.Point `json:"from"`
	To    core.Point `json:"to"`
	Err   error      `json:"-"`
}

// RouteResult is the outcome of planning through a checkpoint list.
type RouteResult struct {
	Dense      core.Path        `json:"dense"`
	Simplified core.Path        `json:"simplified"`
	Skipped    []SkippedSegment `json:"skipped,omitempty"`
}

// RoutePlanner connects consecutive checkpoints with a PathFinder and
// reduces the joined route.
type RoutePlanner struct {
	Finder    PathFinder
	Mode      SimplifyMode
	Tolerance float64

	// StrictSegments makes an unreachable segment fail the whole route
	// instead of being skipped.
	StrictSegments bool
}

// NewRoutePlanner creates a planner with the default tolerance and mode.
func NewRoutePlanner(finder PathFinder) *RoutePlanner {
	return &RoutePlanner{
		Finder:    finder,
		Mode:      SimplifyFirstPoint,
		Tolerance: DefaultTolerance,
	}
}

// Plan routes through checkpoints in order. Each segment's first point is
// dropped when joining, and the first checkpoint is prepended, so junctions
// appear once. Unreachable segments are skipped and reported unless
// StrictSegments is set. Any other failure aborts the route.
func (rp *RoutePlanner) Plan(ctx context.Context, checkpoints []core.Point, blocked obstacles.Checker) (*RouteResult, error) {
	if len(checkpoints) < 2 {
		return nil, fmt.Errorf("route needs at least 2 checkpoints, got %d", len(checkpoints))
	}

	result := &RouteResult{}
	dense := []core.Point{checkpoints[0]}
	cost := 0.0

	for i := 0; i < len(checkpoints)-1; i++ {
		from, to := checkpoints[i], checkpoints[i+1]
		segment, err := rp.Finder.FindPath(ctx, from, to, blocked)
		if err != nil {
			if isUnreachable(err) && !rp.StrictSegments {
				result.Skipped = append(result.Skipped, SkippedSegment{Index: i, From: from, To: to, Err: err})
				continue
			}
			return nil, fmt.Errorf("segment %d %v → %v: %w", i, from, to, err)
		}
		dense = append(dense, segment.Points[1:]...)
		cost += segment.Cost
	}

	result.Dense = core.Path{Points: dense, Cost: cost}
	simplified := SimplifyWith(rp.Mode, dense, rp.Tolerance)
	result.Simplified = core.Path{Points: simplified, Cost: geometry.PathLength(simplified)}
	return result, nil
}

// isUnreachable reports whether err means the segment has no route, as
// opposed to the search giving up.
func isUnreachable(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrStartBlocked)
}
