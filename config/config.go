// Package config holds the planning scenario: window, obstacle layout,
// checkpoints and the tunable parameters of both planners.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"routeplan/core"
	"routeplan/genetic"
	"routeplan/obstacles"
	"routeplan/pathfinding"
)

// ErrInvalidConfig is returned when a scenario fails validation.
var ErrInvalidConfig = errors.New("invalid scenario")

// SearchConfig tunes the grid planner.
type SearchConfig struct {
	Weights        pathfinding.Weights `json:"weights"`
	MaxNodes       int                 `json:"max_nodes"`
	BoundToWindow  bool                `json:"bound_to_window"` // block points outside the window
	CacheSize      int                 `json:"cache_size"`
	StrictSegments bool                `json:"strict_segments"`
}

// SimplifyConfig tunes route reduction.
type SimplifyConfig struct {
	Tolerance float64                  `json:"tolerance"`
	Mode      pathfinding.SimplifyMode `json:"mode"`
}

// Scenario is a complete planning setup.
type Scenario struct {
	Window       core.Bounds    `json:"window"`
	ObstacleSize int            `json:"obstacle_size"`
	Obstacles    []core.Point   `json:"obstacles"`
	Checkpoints  []core.Point   `json:"checkpoints"`
	Start        core.Point     `json:"start"`
	End          core.Point     `json:"end"`
	Margin       float64        `json:"margin"`
	Search       SearchConfig   `json:"search"`
	Simplify     SimplifyConfig `json:"simplify"`
	Evolution    genetic.Config `json:"evolution"`
}

// Default returns the reference scenario: an 800x600 window with five
// 40-wide obstacles.
func Default() Scenario {
	return Scenario{
		Window:       core.Bounds{Min: core.Point{X: 0, Y: 0}, Max: core.Point{X: 800, Y: 600}},
		ObstacleSize: core.DefaultObstacleSize,
		Obstacles: []core.Point{
			{X: 300, Y: 300}, {X: 200, Y: 200}, {X: 400, Y: 400}, {X: 500, Y: 200}, {X: 600, Y: 300},
		},
		Checkpoints: []core.Point{
			{X: 100, Y: 100}, {X: 158, Y: 81}, {X: 210, Y: 259}, {X: 409, Y: 324}, {X: 516, Y: 327}, {X: 700, Y: 500},
		},
		Start:  core.Point{X: 100, Y: 100},
		End:    core.Point{X: 700, Y: 500},
		Margin: obstacles.DefaultMargin,
		Search: SearchConfig{
			Weights:       pathfinding.DefaultWeights,
			MaxNodes:      pathfinding.DefaultMaxNodes,
			BoundToWindow: true,
			CacheSize:     64,
		},
		Simplify: SimplifyConfig{
			Tolerance: pathfinding.DefaultTolerance,
			Mode:      pathfinding.SimplifyFirstPoint,
		},
		Evolution: genetic.DefaultConfig(),
	}
}

// Load reads a JSON scenario. Fields absent from the file keep their
// default values.
func Load(path string) (Scenario, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read scenario: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	if mode, err := pathfinding.ParseSimplifyMode(string(s.Simplify.Mode)); err == nil {
		s.Simplify.Mode = mode
	}
	return s, s.Validate()
}

// Validate checks the scenario for consistency.
func (s Scenario) Validate() error {
	switch {
	case s.Window.IsEmpty():
		return fmt.Errorf("%w: empty window %v", ErrInvalidConfig, s.Window)
	case s.ObstacleSize <= 0:
		return fmt.Errorf("%w: obstacle size must be positive, got %d", ErrInvalidConfig, s.ObstacleSize)
	case len(s.Checkpoints) < 2:
		return fmt.Errorf("%w: need at least 2 checkpoints, got %d", ErrInvalidConfig, len(s.Checkpoints))
	case s.Start == s.End:
		return fmt.Errorf("%w: start and end are both %v", ErrInvalidConfig, s.Start)
	case s.Margin < 0:
		return fmt.Errorf("%w: margin must not be negative", ErrInvalidConfig)
	case s.Simplify.Tolerance < 0:
		return fmt.Errorf("%w: tolerance must not be negative", ErrInvalidConfig)
	case s.Search.MaxNodes < 0:
		return fmt.Errorf("%w: max nodes must not be negative", ErrInvalidConfig)
	}
	if _, err := pathfinding.ParseSimplifyMode(string(s.Simplify.Mode)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := s.Evolution.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ObstacleSet returns the scenario's obstacles.
func (s Scenario) ObstacleSet() core.ObstacleSet {
	return core.NewObstacleSet(s.ObstacleSize, s.Obstacles...)
}

// GridChecker returns the collision test for the grid planner.
func (s Scenario) GridChecker() obstacles.Checker {
	square := obstacles.SquareChecker(s.ObstacleSet())
	if !s.Search.BoundToWindow {
		return square
	}
	return obstacles.Combine(obstacles.BoundsChecker(s.Window), square)
}

// EvolutionChecker returns the collision test for the evolutionary planner.
func (s Scenario) EvolutionChecker() obstacles.Checker {
	return obstacles.RadialChecker(s.ObstacleSet(), s.Margin)
}

// PathFinder builds the cached grid search for this scenario.
func (s Scenario) PathFinder() pathfinding.PathFinder {
	finder := pathfinding.NewAStarPathFinder(s.Search.Weights)
	finder.SetMaxNodes(s.Search.MaxNodes)
	if s.Search.CacheSize <= 0 {
		return finder
	}
	return pathfinding.NewCachedPathFinder(finder, s.ObstacleSet(), s.Search.CacheSize)
}

// RoutePlanner builds the checkpoint route planner for this scenario.
func (s Scenario) RoutePlanner() *pathfinding.RoutePlanner {
	planner := pathfinding.NewRoutePlanner(s.PathFinder())
	planner.Tolerance = s.Simplify.Tolerance
	planner.Mode = s.Simplify.Mode
	planner.StrictSegments = s.Search.StrictSegments
	return planner
}

// EvolutionPlanner builds the evolutionary planner for this scenario.
func (s Scenario) EvolutionPlanner() (*genetic.Planner, error) {
	return genetic.NewPlanner(s.Evolution, s.EvolutionChecker(), s.Window)
}
