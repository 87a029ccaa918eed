package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"routeplan/genetic"
	"routeplan/pathfinding"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "ROUTEPLAN_"

// Lookup returns the value of an environment variable and whether it is set.
type Lookup func(key string) (string, bool)

// LoadEnv loads variables from .env files into the process environment.
// Variables that are already set are not overridden.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// MapLookup adapts a map, such as one returned by godotenv.Read, to a Lookup.
func MapLookup(m map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// ApplyEnv applies ROUTEPLAN_* overrides to s. A nil lookup reads the
// process environment.
func ApplyEnv(s *Scenario, lookup Lookup) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	ints := map[string]*int{
		"GENERATIONS":   &s.Evolution.Generations,
		"POPULATION":    &s.Evolution.PopulationSize,
		"GENOME_LENGTH": &s.Evolution.GenomeLength,
		"PARALLELISM":   &s.Evolution.Parallelism,
		"MAX_NODES":     &s.Search.MaxNodes,
	}
	for name, dst := range ints {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
	}

	floats := map[string]*float64{
		"MUTATION_RATE": &s.Evolution.MutationRate,
		"ELITISM_RATE":  &s.Evolution.ElitismRate,
		"TOLERANCE":     &s.Simplify.Tolerance,
		"MARGIN":        &s.Margin,
	}
	for name, dst := range floats {
		if v, ok := lookup(EnvPrefix + name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = f
		}
	}

	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		s.Evolution.Seed = seed
	}

	if v, ok := lookup(EnvPrefix + "SIMPLIFY_MODE"); ok {
		mode, err := pathfinding.ParseSimplifyMode(v)
		if err != nil {
			return fmt.Errorf("%sSIMPLIFY_MODE: %w", EnvPrefix, err)
		}
		s.Simplify.Mode = mode
	}

	if v, ok := lookup(EnvPrefix + "ACCEPTANCE"); ok {
		policy, err := genetic.ParseAcceptancePolicy(v)
		if err != nil {
			return fmt.Errorf("%sACCEPTANCE: %w", EnvPrefix, err)
		}
		s.Evolution.Acceptance = policy
	}

	return nil
}
