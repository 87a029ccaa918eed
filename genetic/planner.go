// Package genetic implements an evolutionary route planner. A population of
// fixed-length waypoint chains is evolved toward shorter routes by elitism,
// roulette-wheel selection, uniform crossover and resampling mutation.
package genetic

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"routeplan/core"
	"routeplan/obstacles"
)

var (
	// ErrResampleExhausted is returned when rejection sampling or child
	// acceptance exceeds its attempt limit.
	ErrResampleExhausted = errors.New("resample attempts exhausted")
	// ErrDegenerate is returned when start and end coincide.
	ErrDegenerate = errors.New("start and end are the same point")
	// ErrInvalidConfig is returned for out-of-range parameters.
	ErrInvalidConfig = errors.New("invalid planner configuration")
)

// Observer is called with every generation, including the initial one.
// The population must not be modified.
type Observer func(pop *Population)

// Result is the outcome of an evolutionary run.
type Result struct {
	Best       Candidate
	Population *Population
	History    []Stats
}

// Path returns the best candidate as a path.
func (r *Result) Path() core.Path {
	return r.Best.Path()
}

// Planner evolves routes between two points. A Planner holds no run state
// and may be reused; each Run allocates its own population and RNG.
type Planner struct {
	config   Config
	blocked  obstacles.Checker
	bounds   core.Bounds
	observer Observer
}

// NewPlanner creates an evolutionary planner. Random waypoints are drawn
// from bounds and must not be blocked.
func NewPlanner(config Config, blocked obstacles.Checker, bounds core.Bounds) (*Planner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Acceptance == "" {
		config.Acceptance = AcceptAllGenes
	}
	if bounds.IsEmpty() {
		return nil, fmt.Errorf("%w: empty sampling bounds", ErrInvalidConfig)
	}
	if blocked == nil {
		blocked = func(core.Point) bool { return false }
	}
	return &Planner{config: config, blocked: blocked, bounds: bounds}, nil
}

// SetObserver sets a callback invoked once per generation.
func (p *Planner) SetObserver(observer Observer) {
	p.observer = observer
}

// Run evolves a population from start to end for the configured number of
// generations and returns the best candidate of the final generation. On
// context cancellation the best result so far is returned with the error.
func (p *Planner) Run(ctx context.Context, start, end core.Point) (*Result, error) {
	if start == end {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, start)
	}

	r := &run{
		Planner: p,
		rng:     newRNG(p.config.Seed),
		start:   start,
		end:     end,
	}

	pop, err := r.initialize()
	if err != nil {
		return nil, err
	}
	history := []Stats{pop.Stats}
	p.notify(pop)

	for gen := 0; gen < p.config.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return newResult(pop, history), err
		}

		pop, err = r.evolve(pop)
		if err != nil {
			return nil, err
		}
		history = append(history, pop.Stats)
		p.notify(pop)
	}

	return newResult(pop, history), nil
}

func (p *Planner) notify(pop *Population) {
	if p.observer != nil {
		p.observer(pop)
	}
}

func newResult(pop *Population, history []Stats) *Result {
	return &Result{Best: pop.Best(), Population: pop, History: history}
}

func newRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// run is the state of a single Run call.
type run struct {
	*Planner
	rng        *rand.Rand
	start, end core.Point
}

// initialize creates the first generation.
func (r *run) initialize() (*Population, error) {
	genomes := make([]Genome, 0, r.config.PopulationSize)
	rejected := 0
	for len(genomes) < r.config.PopulationSize {
		g, err := r.randomGenome()
		if err != nil {
			return nil, err
		}
		if !r.accept(g) {
			rejected++
			if rejected > r.config.MaxAcceptAttempts {
				return nil, fmt.Errorf("%w: %d initial genomes rejected", ErrResampleExhausted, rejected)
			}
			continue
		}
		rejected = 0
		genomes = append(genomes, g)
	}

	members := r.evaluate(genomes)
	return &Population{
		Members:    members,
		Generation: 0,
		Stats:      calculateStats(0, members),
	}, nil
}

// evolve produces the next generation from pop.
func (r *run) evolve(pop *Population) (*Population, error) {
	size := r.config.PopulationSize

	ranked := make([]Candidate, len(pop.Members))
	copy(ranked, pop.Members)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})

	eliteCount := r.config.EliteCount()
	genomes := make([]Genome, 0, size)
	for _, c := range ranked[:eliteCount] {
		genomes = append(genomes, c.Genome.Clone())
	}

	pool := ranked[eliteCount:]
	if len(pool) == 0 {
		pool = ranked
	}
	wheel := newRouletteWheel(pool)

	rejected := 0
	for len(genomes) < size {
		parent1 := wheel.spin(r.rng)
		parent2 := wheel.spin(r.rng)

		child := r.crossover(parent1.Genome, parent2.Genome)
		if err := r.mutate(child); err != nil {
			return nil, err
		}

		if !r.accept(child) {
			rejected++
			if rejected > r.config.MaxAcceptAttempts {
				return nil, fmt.Errorf("%w: %d children rejected in generation %d",
					ErrResampleExhausted, rejected, pop.Generation+1)
			}
			continue
		}
		rejected = 0
		genomes = append(genomes, child)
	}

	members := r.evaluate(genomes)
	return &Population{
		Members:    members,
		Generation: pop.Generation + 1,
		Stats:      calculateStats(pop.Generation+1, members),
	}, nil
}

// evaluate scores genomes concurrently. Results keep the input order.
func (r *run) evaluate(genomes []Genome) []Candidate {
	members := make([]Candidate, len(genomes))
	semaphore := make(chan struct{}, r.config.Parallelism)

	var wg sync.WaitGroup
	for i, g := range genomes {
		wg.Add(1)
		semaphore <- struct{}{} // Acquire semaphore

		go func(idx int, g Genome) {
			defer wg.Done()
			defer func() { <-semaphore }() // Release semaphore

			length := g.Length()
			members[idx] = Candidate{Genome: g, Fitness: 1 / length, Length: length}
		}(i, g)
	}
	wg.Wait()

	return members
}
