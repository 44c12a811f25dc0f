// Genetic algorithm over packing States. Chromosomes are partitions; the
// crossover rebuilds children from the deduplicated union of both parents'
// items so the partition invariant survives recombination by construction.

package search

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// GeneticAlgorithm is the population-based driver.
type GeneticAlgorithm struct {
	obj *ObjectiveFunction
	cfg GeneticConfig
	key SearchKey
}

// NewGeneticAlgorithm creates a genetic driver. Population seeding,
// tournament sampling, crossover shuffles, and mutation draws each use their
// own RNG subsystem under the key.
func NewGeneticAlgorithm(obj *ObjectiveFunction, cfg GeneticConfig, key SearchKey) *GeneticAlgorithm {
	return &GeneticAlgorithm{obj: obj, cfg: cfg, key: key}
}

// Name returns the driver name.
func (g *GeneticAlgorithm) Name() string { return AlgorithmGenetic }

// Search evolves a population seeded from initial plus a heuristic mix and
// returns the global best-ever individual. The returned result is never
// worse than initial: generational fitness can regress, so if nothing beat
// the caller's state the caller's state wins.
func (g *GeneticAlgorithm) Search(initial *State) (*Result, error) {
	if initial == nil {
		return nil, fmt.Errorf("%s: initial state is nil", AlgorithmGenetic)
	}

	prng := NewPartitionedRNG(g.key)
	population, err := g.seedPopulation(initial, prng.ForSubsystem(SubsystemPopulation))
	if err != nil {
		return nil, fmt.Errorf("seeding population: %w", err)
	}
	fitness := g.evaluate(population)

	initialValue := g.obj.Calculate(initial)
	history := []float64{initialValue}
	stats := &GeneticStats{
		PopulationSize:      g.cfg.PopulationSize,
		TournamentSize:      g.cfg.TournamentSize,
		MutationProbability: *g.cfg.MutationProbability,
	}

	globalBest := initial.Clone()
	globalBestValue := initialValue

	tournamentRNG := prng.ForSubsystem(SubsystemTournament)
	crossoverRNG := prng.ForSubsystem(SubsystemCrossover)
	mutationRNG := prng.ForSubsystem(SubsystemMutation)

	for gen := 0; gen < g.cfg.MaxGenerations; gen++ {
		// Breed a full replacement population, two children per tournament.
		children := make([]*State, 0, g.cfg.PopulationSize)
		for len(children) < g.cfg.PopulationSize {
			p1, p2 := g.tournament(fitness, tournamentRNG)
			c1, c2 := g.crossover(population[p1], population[p2], crossoverRNG)
			children = append(children, g.mutate(c1, mutationRNG))
			if len(children) < g.cfg.PopulationSize {
				children = append(children, g.mutate(c2, mutationRNG))
			}
		}

		population = children
		fitness = g.evaluate(population)

		bestIdx := 0
		for i, f := range fitness {
			if f < fitness[bestIdx] {
				bestIdx = i
			}
		}
		bestFitness := fitness[bestIdx]
		avg, std := stat.MeanStdDev(fitness, nil)

		if bestFitness < globalBestValue {
			globalBest = population[bestIdx].Clone()
			globalBestValue = bestFitness
		}

		stats.Generations = append(stats.Generations, GenerationPoint{
			Generation:  gen + 1,
			BestFitness: bestFitness,
			AvgFitness:  avg,
			StdFitness:  std,
		})
		history = append(history, bestFitness)
		logrus.Debugf("%s generation=%d best=%.2f avg=%.2f global=%.2f",
			AlgorithmGenetic, gen+1, bestFitness, avg, globalBestValue)
	}

	best := globalBest
	if globalBestValue > initialValue {
		// Monotonic-improvement guarantee on output.
		best = initial.Clone()
		stats.ReturnedInitial = true
	}

	result := newResult(AlgorithmGenetic, int64(g.key), StopMaxGenerations, g.cfg.MaxGenerations, initial, best, g.obj, history)
	result.Genetic = stats
	return result, nil
}

// seedPopulation builds the generation-zero population: the caller's state
// first, then a mix of constructive heuristics for diversity.
func (g *GeneticAlgorithm) seedPopulation(initial *State, rng *rand.Rand) ([]*State, error) {
	catalog, capacity := initial.Catalog(), initial.Capacity()
	population := []*State{initial.Clone()}
	for len(population) < g.cfg.PopulationSize {
		var (
			s   *State
			err error
		)
		switch rng.Intn(4) {
		case 0:
			s, err = BestFit(catalog, capacity, false)
		case 1:
			s, err = GreedyFit(catalog, capacity)
		case 2:
			s, err = FirstFit(catalog, capacity, false)
		default:
			s, err = RandomFit(catalog, capacity, rng)
		}
		if err != nil {
			return nil, err
		}
		population = append(population, s)
	}
	return population, nil
}

func (g *GeneticAlgorithm) evaluate(population []*State) []float64 {
	fitness := make([]float64, len(population))
	for i, s := range population {
		fitness[i] = g.obj.Calculate(s)
	}
	return fitness
}

// tournament samples cfg.TournamentSize individuals with replacement and
// returns the indices of the two lowest-fitness samples.
func (g *GeneticAlgorithm) tournament(fitness []float64, rng *rand.Rand) (int, int) {
	first, second := -1, -1
	for i := 0; i < g.cfg.TournamentSize; i++ {
		idx := rng.Intn(len(fitness))
		switch {
		case first < 0 || fitness[idx] < fitness[first]:
			first, second = idx, first
		case second < 0 || fitness[idx] < fitness[second]:
			second = idx
		}
	}
	if second < 0 {
		second = first
	}
	return first, second
}

// crossover rebuilds two children from the deduplicated union of both
// parents' items, each shuffled independently and greedily first-fit
// repacked. Parents partition the same catalog, so the union is the whole
// item set and each child is a valid partition by construction.
func (g *GeneticAlgorithm) crossover(p1, p2 *State, rng *rand.Rand) (*State, *State) {
	seen := make(map[string]bool, p1.ItemCount())
	var union []string
	for _, parent := range []*State{p1, p2} {
		for _, container := range parent.Containers() {
			for _, id := range container {
				if !seen[id] {
					seen[id] = true
					union = append(union, id)
				}
			}
		}
	}
	return g.repack(p1, union, rng), g.repack(p1, union, rng)
}

// repack shuffles the item ids and packs them first-fit into a child State.
func (g *GeneticAlgorithm) repack(template *State, ids []string, rng *rand.Rand) *State {
	shuffled := append([]string(nil), ids...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	catalog, capacity := template.Catalog(), template.Capacity()
	var containers [][]string
	var loads []int
	for _, id := range shuffled {
		placed := false
		for i := range containers {
			if loads[i]+catalog[id] <= capacity {
				containers[i] = append(containers[i], id)
				loads[i] += catalog[id]
				placed = true
				break
			}
		}
		if !placed {
			containers = append(containers, []string{id})
			loads = append(loads, catalog[id])
		}
	}
	return template.newDerivedState(containers)
}

// mutate applies one of three operators with the configured probability:
// relocate one item to a container with room (a new one if none has),
// dissolve a whole container and redistribute its items, or isolate one item
// into its own container. Empties are pruned afterward.
func (g *GeneticAlgorithm) mutate(child *State, rng *rand.Rand) *State {
	if rng.Float64() >= *g.cfg.MutationProbability {
		return child
	}
	next := child.Clone()
	containers := next.containers
	if len(containers) == 0 {
		return child
	}

	catalog, capacity := next.catalog, next.capacity
	src := rng.Intn(len(containers))
	if len(containers[src]) == 0 {
		return child
	}

	switch rng.Intn(3) {
	case 0:
		// Relocate one item to a container that still has room.
		itemID := containers[src][rng.Intn(len(containers[src]))]
		containers[src] = removeItem("mutate", containers[src], itemID)
		containers = placeWithRoom(containers, catalog, capacity, itemID, rng)

	case 1:
		// Dissolve the whole container and redistribute its items.
		dissolved := containers[src]
		containers = append(containers[:src], containers[src+1:]...)
		for _, itemID := range dissolved {
			containers = placeWithRoom(containers, catalog, capacity, itemID, rng)
		}

	default:
		// Isolate one item into its own container.
		itemID := containers[src][rng.Intn(len(containers[src]))]
		containers[src] = removeItem("mutate", containers[src], itemID)
		containers = append(containers, []string{itemID})
	}

	next.containers = pruneEmpty(containers)
	return next
}

// placeWithRoom appends itemID to a random container that can fit it,
// opening a new container when none can.
func placeWithRoom(containers [][]string, catalog Catalog, capacity int, itemID string, rng *rand.Rand) [][]string {
	var fits []int
	for i, c := range containers {
		load := 0
		for _, id := range c {
			load += catalog[id]
		}
		if load+catalog[itemID] <= capacity {
			fits = append(fits, i)
		}
	}
	if len(fits) > 0 {
		idx := fits[rng.Intn(len(fits))]
		containers[idx] = append(containers[idx], itemID)
		return containers
	}
	return append(containers, []string{itemID})
}
