// The single pluggable search-driver abstraction. Every metaheuristic in
// this package is one Driver: it consumes an initial State plus an
// ObjectiveFunction and returns a best State with run diagnostics.

package search

import "fmt"

// Driver runs one search to completion. Implementations are single-use for
// determinism: construct a fresh Driver per run.
type Driver interface {
	// Name returns the driver's algorithm name (one of the Algorithm* constants).
	Name() string

	// Search runs the driver from initial and returns the result bundle.
	// The initial State is never mutated. Termination by budget or local
	// optimum is a normal Result, not an error.
	Search(initial *State) (*Result, error)
}

// NewDriver constructs the driver selected by bundle.Algorithm. The bundle
// must be normalized and valid (LoadSearchBundle does both).
func NewDriver(bundle *SearchBundle, obj *ObjectiveFunction) (Driver, error) {
	if obj == nil {
		obj = DefaultObjective()
	}
	key := NewSearchKey(bundle.Seed)

	switch bundle.Algorithm {
	case AlgorithmSteepest:
		return NewSteepestAscent(obj, bundle.HillClimb, key), nil
	case AlgorithmStochastic:
		return NewStochastic(obj, bundle.HillClimb, key), nil
	case AlgorithmSideways:
		return NewSidewaysMove(obj, bundle.HillClimb, key), nil
	case AlgorithmRandomRestart:
		return NewRandomRestart(obj, bundle.HillClimb, key)
	case AlgorithmAnnealing:
		return NewSimulatedAnnealing(obj, bundle.Annealing, key), nil
	case AlgorithmGenetic:
		return NewGeneticAlgorithm(obj, bundle.Genetic, key), nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", bundle.Algorithm)
	}
}
