// Package server exposes the route planners over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"routeplan/config"
	"routeplan/core"
	"routeplan/export"
	"routeplan/genetic"
	"routeplan/pathfinding"
)

// Server serves planning requests against a base scenario. Requests may
// override parts of the scenario; the base is never modified.
type Server struct {
	scenario config.Scenario
	finder   pathfinding.PathFinder
	engine   *gin.Engine
}

// New creates a server for the scenario.
func New(scenario config.Scenario) (*Server, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		scenario: scenario,
		finder:   scenario.PathFinder(),
		engine:   gin.Default(),
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"*"}
	s.engine.Use(cors.New(corsConfig))

	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	api := s.engine.Group("/api")
	api.GET("/scenario", s.handleScenario)
	api.GET("/stats", s.handleStats)
	api.DELETE("/cache", s.handleClearCache)
	api.POST("/route/grid", s.handleGridRoute)
	api.POST("/route/evolve", s.handleEvolve)

	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return err
		}
		return nil
	}
}

// GridRequest overrides parts of the scenario for a grid route. Each
// checkpoint segment is a full grid search, so the count is capped.
type GridRequest struct {
	Checkpoints []core.Point `json:"checkpoints" binding:"omitempty,min=2,max=256"`
	Obstacles   []core.Point `json:"obstacles" binding:"omitempty,max=1024"`
	Tolerance   *float64     `json:"tolerance" binding:"omitempty,gte=0"`
	Mode        string       `json:"mode"`
	Strict      *bool        `json:"strict"`
}

// EvolveRequest overrides parts of the scenario for an evolutionary route.
// Generations and population bound the work of one request.
type EvolveRequest struct {
	Start       *core.Point  `json:"start"`
	End         *core.Point  `json:"end"`
	Obstacles   []core.Point `json:"obstacles" binding:"omitempty,max=1024"`
	Seed        *uint64      `json:"seed"`
	Generations *int         `json:"generations" binding:"omitempty,gte=0,lte=1000"`
	Population  *int         `json:"population" binding:"omitempty,gte=1,lte=10000"`
	Acceptance  string       `json:"acceptance"`
}

func (s *Server) handleScenario(c *gin.Context) {
	c.JSON(http.StatusOK, s.scenario)
}

func (s *Server) handleStats(c *gin.Context) {
	stats := "cache disabled"
	if cached, ok := s.finder.(*pathfinding.CachedPathFinder); ok {
		stats = cached.CacheStats()
	}
	c.JSON(http.StatusOK, gin.H{"cache": stats})
}

func (s *Server) handleClearCache(c *gin.Context) {
	cached, ok := s.finder.(*pathfinding.CachedPathFinder)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"cache": "cache disabled"})
		return
	}
	cached.ClearCache()
	c.JSON(http.StatusOK, gin.H{"cache": cached.CacheStats()})
}

func (s *Server) handleGridRoute(c *gin.Context) {
	var req GridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc := s.scenario
	finder := s.finder
	if len(req.Checkpoints) > 0 {
		sc.Checkpoints = req.Checkpoints
	}
	if req.Obstacles != nil {
		sc.Obstacles = req.Obstacles
		finder = nil
	}
	if req.Tolerance != nil {
		sc.Simplify.Tolerance = *req.Tolerance
	}
	if req.Mode != "" {
		mode, err := pathfinding.ParseSimplifyMode(req.Mode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sc.Simplify.Mode = mode
	}
	if req.Strict != nil {
		sc.Search.StrictSegments = *req.Strict
	}
	if err := sc.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	planner := sc.RoutePlanner()
	if finder != nil {
		planner.Finder = finder
	}

	result, err := planner.Plan(c.Request.Context(), sc.Checkpoints, sc.GridChecker())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	report := export.NewReport(sc.Window, sc.ObstacleSet())
	report.Checkpoints = sc.Checkpoints
	report.AddGridRoute(result)
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleEvolve(c *gin.Context) {
	var req EvolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc := s.scenario
	if req.Start != nil {
		sc.Start = *req.Start
	}
	if req.End != nil {
		sc.End = *req.End
	}
	if req.Obstacles != nil {
		sc.Obstacles = req.Obstacles
	}
	if req.Seed != nil {
		sc.Evolution.Seed = *req.Seed
	}
	if req.Generations != nil {
		sc.Evolution.Generations = *req.Generations
	}
	if req.Population != nil {
		sc.Evolution.PopulationSize = *req.Population
	}
	if req.Acceptance != "" {
		sc.Evolution.Acceptance = genetic.AcceptancePolicy(req.Acceptance)
	}
	if err := sc.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	planner, err := sc.EvolutionPlanner()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := planner.Run(c.Request.Context(), sc.Start, sc.End)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	report := export.NewReport(sc.Window, sc.ObstacleSet())
	report.AddEvolvedRoute(result)
	c.JSON(http.StatusOK, report)
}

// statusFor maps planner errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pathfinding.ErrNotFound), errors.Is(err, pathfinding.ErrStartBlocked):
		return http.StatusNotFound
	case errors.Is(err, genetic.ErrDegenerate), errors.Is(err, genetic.ErrInvalidConfig),
		errors.Is(err, config.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, pathfinding.ErrSearchLimit), errors.Is(err, genetic.ErrResampleExhausted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
