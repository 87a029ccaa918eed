package genetic

import (
	"fmt"
	"math"
)

// AcceptancePolicy decides which children are admitted to the next generation.
type AcceptancePolicy string

const (
	// AcceptPenultimate checks only the second-to-last gene.
	AcceptPenultimate AcceptancePolicy = "penultimate"
	// AcceptAllGenes checks every interior gene.
	AcceptAllGenes AcceptancePolicy = "all-genes"
	// AcceptSegments checks every interior gene and samples every segment.
	AcceptSegments AcceptancePolicy = "segments"
)

// ParseAcceptancePolicy converts a string to an AcceptancePolicy.
func ParseAcceptancePolicy(s string) (AcceptancePolicy, error) {
	switch AcceptancePolicy(s) {
	case "":
		return AcceptAllGenes, nil
	case AcceptPenultimate, AcceptAllGenes, AcceptSegments:
		return AcceptancePolicy(s), nil
	default:
		return "", fmt.Errorf("%w: unknown acceptance policy %q", ErrInvalidConfig, s)
	}
}

// Config holds the parameters of the evolutionary planner.
type Config struct {
	// PopulationSize is the number of genomes in every generation
	PopulationSize int `json:"population_size"`
	// ElitismRate is the share of the population carried over unchanged
	ElitismRate float64 `json:"elitism_rate"`
	// MutationRate is the per-gene probability of resampling
	MutationRate float64 `json:"mutation_rate"`
	// Generations is the number of reproduction rounds
	Generations int `json:"generations"`
	// GenomeLength is the number of waypoints including start and end
	GenomeLength int `json:"genome_length"`
	// MaxResampleAttempts bounds the draws for one free point
	MaxResampleAttempts int `json:"max_resample_attempts"`
	// MaxAcceptAttempts bounds consecutive rejected children
	MaxAcceptAttempts int `json:"max_accept_attempts"`
	// Parallelism controls the number of concurrent fitness evaluations
	Parallelism int `json:"parallelism"`
	// Seed for random number generation (0 for random seed)
	Seed uint64 `json:"seed"`
	// Acceptance selects the child admission check
	Acceptance AcceptancePolicy `json:"acceptance"`
}

// DefaultConfig returns the default planner configuration.
func DefaultConfig() Config {
	return Config{
		PopulationSize:      60,
		ElitismRate:         0.2,
		MutationRate:        0.1,
		Generations:         5,
		GenomeLength:        7,
		MaxResampleAttempts: 10000,
		MaxAcceptAttempts:   10000,
		Parallelism:         4,
		Acceptance:          AcceptAllGenes,
	}
}

// eliteEpsilon absorbs float error in ElitismRate*PopulationSize so exact
// products such as 0.07*100 do not round up past the whole number.
const eliteEpsilon = 1e-9

// EliteCount returns the number of genomes preserved each generation.
func (c Config) EliteCount() int {
	n := int(math.Ceil(c.ElitismRate*float64(c.PopulationSize) - eliteEpsilon))
	return min(n, c.PopulationSize)
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.PopulationSize < 1:
		return fmt.Errorf("%w: population size must be positive, got %d", ErrInvalidConfig, c.PopulationSize)
	case c.ElitismRate < 0 || c.ElitismRate > 1:
		return fmt.Errorf("%w: elitism rate must be in [0,1], got %v", ErrInvalidConfig, c.ElitismRate)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("%w: mutation rate must be in [0,1], got %v", ErrInvalidConfig, c.MutationRate)
	case c.Generations < 0:
		return fmt.Errorf("%w: generations must not be negative, got %d", ErrInvalidConfig, c.Generations)
	case c.GenomeLength < 2:
		return fmt.Errorf("%w: genome length must be at least 2, got %d", ErrInvalidConfig, c.GenomeLength)
	case c.MaxResampleAttempts < 1 || c.MaxAcceptAttempts < 1:
		return fmt.Errorf("%w: attempt limits must be positive", ErrInvalidConfig)
	case c.Parallelism < 1:
		return fmt.Errorf("%w: parallelism must be positive, got %d", ErrInvalidConfig, c.Parallelism)
	}
	_, err := ParseAcceptancePolicy(string(c.Acceptance))
	return err
}
