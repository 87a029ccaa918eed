package genetic

import (
	"fmt"
	"math/rand/v2"

	"routeplan/core"
	"routeplan/obstacles"
)

// randomFreePoint draws uniformly over the bounds (inclusive) until the point
// is not blocked.
func (r *run) randomFreePoint() (core.Point, error) {
	w := r.bounds.Width() + 1
	h := r.bounds.Height() + 1
	for attempt := 0; attempt < r.config.MaxResampleAttempts; attempt++ {
		p := core.Point{
			X: r.bounds.Min.X + r.rng.IntN(w),
			Y: r.bounds.Min.Y + r.rng.IntN(h),
		}
		if !r.blocked(p) {
			return p, nil
		}
	}
	return core.Point{}, fmt.Errorf("%w: no free point after %d draws", ErrResampleExhausted, r.config.MaxResampleAttempts)
}

// randomGenome builds [start, free points..., end].
func (r *run) randomGenome() (Genome, error) {
	n := r.config.GenomeLength
	g := make(Genome, n)
	g[0], g[n-1] = r.start, r.end
	for i := 1; i < n-1; i++ {
		p, err := r.randomFreePoint()
		if err != nil {
			return nil, err
		}
		g[i] = p
	}
	return g, nil
}

// crossover takes each interior gene from either parent with equal
// probability. Endpoints are fixed.
func (r *run) crossover(parent1, parent2 Genome) Genome {
	n := len(parent1)
	child := make(Genome, n)
	child[0], child[n-1] = r.start, r.end
	for i := 1; i < n-1; i++ {
		if r.rng.Float64() < 0.5 {
			child[i] = parent1[i]
		} else {
			child[i] = parent2[i]
		}
	}
	return child
}

// mutate resamples each interior gene with probability MutationRate.
func (r *run) mutate(g Genome) error {
	for i := 1; i < len(g)-1; i++ {
		if r.rng.Float64() < r.config.MutationRate {
			p, err := r.randomFreePoint()
			if err != nil {
				return err
			}
			g[i] = p
		}
	}
	return nil
}

// accept applies the configured acceptance policy.
func (r *run) accept(g Genome) bool {
	n := len(g)
	switch r.config.Acceptance {
	case AcceptPenultimate:
		return n < 3 || !r.blocked(g[n-2])
	case AcceptSegments:
		for i := 0; i < n-1; i++ {
			if !obstacles.SegmentClear(g[i], g[i+1], r.blocked) {
				return false
			}
		}
		return true
	default:
		for _, p := range g[1 : n-1] {
			if r.blocked(p) {
				return false
			}
		}
		return true
	}
}

// rouletteWheel samples candidates proportionally to their fitness.
type rouletteWheel struct {
	members    []Candidate
	cumulative []float64
}

func newRouletteWheel(members []Candidate) *rouletteWheel {
	total := 0.0
	for _, c := range members {
		total += c.Fitness
	}

	cumulative := make([]float64, len(members))
	running := 0.0
	for i, c := range members {
		running += c.Fitness / total
		cumulative[i] = running
	}

	return &rouletteWheel{members: members, cumulative: cumulative}
}

func (w *rouletteWheel) spin(rng *rand.Rand) Candidate {
	spin := rng.Float64()
	for i, cum := range w.cumulative {
		if spin <= cum {
			return w.members[i]
		}
	}
	// Rounding can leave the last boundary just below 1
	return w.members[len(w.members)-1]
}
