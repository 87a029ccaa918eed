package genetic

import (
	"routeplan/core"
	"routeplan/geometry"
)

// Genome is a candidate route: a fixed-length waypoint chain whose first
// and last genes are the planner's start and end.
type Genome []core.Point

// Clone returns a copy of the genome.
func (g Genome) Clone() Genome {
	out := make(Genome, len(g))
	copy(out, g)
	return out
}

// Length returns the total segment length of the genome.
func (g Genome) Length() float64 {
	return geometry.PathLength(g)
}

// Fitness returns 1 / Length. Higher is better.
func Fitness(g Genome) float64 {
	return 1 / g.Length()
}

// Candidate is a genome with its evaluated score.
type Candidate struct {
	Genome  Genome  `json:"genome"`
	Fitness float64 `json:"fitness"`
	Length  float64 `json:"length"`
}

// Path returns the candidate as a path whose cost is its length.
func (c Candidate) Path() core.Path {
	return core.Path{Points: []core.Point(c.Genome.Clone()), Cost: c.Length}
}

// Stats contains statistical information about a population.
type Stats struct {
	Generation   int     `json:"generation"`
	BestFitness  float64 `json:"best_fitness"`
	WorstFitness float64 `json:"worst_fitness"`
	MeanFitness  float64 `json:"mean_fitness"`
	BestLength   float64 `json:"best_length"`
}

// Population is one generation of candidates.
type Population struct {
	Members    []Candidate
	Generation int
	Stats      Stats
}

// Best returns the fittest member. The first one wins ties.
func (p *Population) Best() Candidate {
	best := p.Members[0]
	for _, c := range p.Members[1:] {
		if c.Fitness > best.Fitness {
			best = c
		}
	}
	return best
}

func calculateStats(generation int, members []Candidate) Stats {
	stats := Stats{
		Generation:   generation,
		BestFitness:  members[0].Fitness,
		WorstFitness: members[0].Fitness,
		BestLength:   members[0].Length,
	}

	total := 0.0
	for _, c := range members {
		if c.Fitness > stats.BestFitness {
			stats.BestFitness = c.Fitness
			stats.BestLength = c.Length
		}
		if c.Fitness < stats.WorstFitness {
			stats.WorstFitness = c.Fitness
		}
		total += c.Fitness
	}
	stats.MeanFitness = total / float64(len(members))

	return stats
}
