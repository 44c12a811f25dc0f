// Simulated annealing. One random neighbor per iteration, Boltzmann
// acceptance for worsening moves, geometric cooling, and a diagnostic
// stagnation counter that never terminates the run — only the iteration
// budget does.

package search

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Proposal mix: most iterations relocate one item, the rest swap a pair.
const annealingMoveProbability = 0.8

// Stagnation episodes are logged every time this many consecutive
// non-improving iterations accumulate.
const stuckEpisodeLength = 10

// SimulatedAnnealing is the annealing driver.
type SimulatedAnnealing struct {
	obj *ObjectiveFunction
	cfg AnnealingConfig
	key SearchKey
}

// NewSimulatedAnnealing creates an annealing driver with the given
// parameters. All stochastic draws come from the key's annealing subsystem.
func NewSimulatedAnnealing(obj *ObjectiveFunction, cfg AnnealingConfig, key SearchKey) *SimulatedAnnealing {
	return &SimulatedAnnealing{obj: obj, cfg: cfg, key: key}
}

// Name returns the driver name.
func (a *SimulatedAnnealing) Name() string { return AlgorithmAnnealing }

// Search runs the annealing loop for exactly cfg.MaxIterations iterations.
func (a *SimulatedAnnealing) Search(initial *State) (*Result, error) {
	if initial == nil {
		return nil, fmt.Errorf("%s: initial state is nil", AlgorithmAnnealing)
	}

	rng := NewPartitionedRNG(a.key).ForSubsystem(SubsystemAnnealing)

	current := initial.Clone()
	currentValue := a.obj.Calculate(current)
	best := current.Clone()
	bestValue := currentValue
	history := []float64{currentValue}

	temperature := a.cfg.InitialTemperature
	stats := &AnnealingStats{
		InitialTemperature: a.cfg.InitialTemperature,
		CoolingRate:        a.cfg.CoolingRate,
		AcceptanceProbs:    make([]float64, 0, a.cfg.MaxIterations),
		Temperatures:       make([]float64, 0, a.cfg.MaxIterations),
	}
	stagnation := 0

	for iteration := 0; iteration < a.cfg.MaxIterations; iteration++ {
		neighbor := a.randomNeighbor(current, rng)
		neighborValue := a.obj.Calculate(neighbor)
		delta := neighborValue - currentValue

		accepted := false
		acceptanceProb := 0.0
		if delta <= 0 {
			acceptanceProb = 1.0
			accepted = true
		} else {
			if temperature > 0 {
				acceptanceProb = math.Exp(-delta / temperature)
			}
			if rng.Float64() < acceptanceProb {
				accepted = true
				stats.AcceptedWorse++
			}
		}

		if accepted {
			current = neighbor
			currentValue = neighborValue
		}

		// Stagnation is diagnostic only: count consecutive iterations that
		// fail to push below the best seen so far, log an episode per run of
		// stuckEpisodeLength, and keep going.
		if accepted && currentValue < bestValue {
			stagnation = 0
		} else {
			stagnation++
			if stagnation >= stuckEpisodeLength {
				stats.StuckEpisodes++
				stagnation = 0
				logrus.Debugf("%s iter=%d stuck episode %d (temperature=%.4f)",
					AlgorithmAnnealing, iteration, stats.StuckEpisodes, temperature)
			}
		}

		if currentValue < bestValue {
			best = current.Clone()
			bestValue = currentValue
		}

		history = append(history, currentValue)
		stats.AcceptanceProbs = append(stats.AcceptanceProbs, acceptanceProb)
		stats.Temperatures = append(stats.Temperatures, temperature)
		logrus.Tracef("%s iter=%d value=%.2f accepted=%t prob=%.4f temperature=%.4f",
			AlgorithmAnnealing, iteration, currentValue, accepted, acceptanceProb, temperature)

		temperature *= a.cfg.CoolingRate
	}

	stats.FinalTemperature = temperature
	result := newResult(AlgorithmAnnealing, int64(a.key), StopMaxIterations, a.cfg.MaxIterations, initial, best, a.obj, history)
	result.Annealing = stats
	return result, nil
}

// randomNeighbor proposes one candidate: usually a single-item relocation,
// sometimes a cross-container swap. Degenerate picks (no legal target)
// degrade to a no-op clone rather than an error.
func (a *SimulatedAnnealing) randomNeighbor(s *State, rng *rand.Rand) *State {
	if rng.Float64() < annealingMoveProbability {
		return randomMove(s, rng)
	}
	return randomSwap(s, rng)
}

// randomMove relocates a random item from a random non-empty container to a
// random other existing container.
func randomMove(s *State, rng *rand.Rand) *State {
	nonEmpty := nonEmptyContainers(s)
	if len(nonEmpty) == 0 {
		return s.Clone()
	}
	from := nonEmpty[rng.Intn(len(nonEmpty))]
	container := s.Containers()[from]
	itemID := container[rng.Intn(len(container))]

	var targets []int
	for i := range s.Containers() {
		if i != from {
			targets = append(targets, i)
		}
	}
	if len(targets) == 0 {
		return s.Clone()
	}
	return s.MoveItem(itemID, from, targets[rng.Intn(len(targets))])
}

// randomSwap exchanges one random item each between two distinct non-empty
// containers.
func randomSwap(s *State, rng *rand.Rand) *State {
	nonEmpty := nonEmptyContainers(s)
	if len(nonEmpty) < 2 {
		return s.Clone()
	}
	i := rng.Intn(len(nonEmpty))
	j := rng.Intn(len(nonEmpty) - 1)
	if j >= i {
		j++
	}
	c1, c2 := nonEmpty[i], nonEmpty[j]
	item1 := s.Containers()[c1][rng.Intn(len(s.Containers()[c1]))]
	item2 := s.Containers()[c2][rng.Intn(len(s.Containers()[c2]))]
	return s.SwapItems(item1, c1, item2, c2)
}

func nonEmptyContainers(s *State) []int {
	var idx []int
	for i, c := range s.Containers() {
		if len(c) > 0 {
			idx = append(idx, i)
		}
	}
	return idx
}
