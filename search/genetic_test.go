package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultGA() GeneticConfig {
	cfg := GeneticConfig{PopulationSize: 20, MaxGenerations: 30}
	cfg.Normalize()
	return cfg
}

func runGenetic(t *testing.T, cfg GeneticConfig, seed int64) *Result {
	t.Helper()
	initial := spreadState(t)
	driver := NewGeneticAlgorithm(DefaultObjective(), cfg, NewSearchKey(seed))
	result, err := driver.Search(initial)
	require.NoError(t, err)
	return result
}

func TestGenetic_NeverWorseThanInitial(t *testing.T) {
	result := runGenetic(t, defaultGA(), 42)

	assert.LessOrEqual(t, result.BestValue, result.InitialValue)
	assertPartition(t, result.Best)
}

func TestGenetic_ReturnsInitialWhenNothingBeatIt(t *testing.T) {
	// Greedy fit on this catalog is already optimal at 2 containers with
	// perfectly full loads; the GA cannot beat it and must hand the caller's
	// state back.
	catalog := Catalog{"A": 60, "B": 40, "C": 55, "D": 45}
	initial, err := GreedyFit(catalog, 100)
	require.NoError(t, err)
	require.Equal(t, 2, initial.NumContainers())

	cfg := defaultGA()
	driver := NewGeneticAlgorithm(DefaultObjective(), cfg, NewSearchKey(42))
	result, err := driver.Search(initial)
	require.NoError(t, err)

	assert.LessOrEqual(t, result.BestValue, result.InitialValue)
	if result.Genetic.ReturnedInitial {
		assert.Equal(t, initial.Containers(), result.Best.Containers())
	}
}

func TestGenetic_RecordsEveryGeneration(t *testing.T) {
	cfg := defaultGA()
	result := runGenetic(t, cfg, 42)

	assert.Equal(t, StopMaxGenerations, result.StopReason)
	require.NotNil(t, result.Genetic)
	require.Len(t, result.Genetic.Generations, cfg.MaxGenerations)
	assert.Len(t, result.History, cfg.MaxGenerations+1)

	for i, gen := range result.Genetic.Generations {
		assert.Equal(t, i+1, gen.Generation)
		// A generation's best can never exceed its average.
		assert.LessOrEqual(t, gen.BestFitness, gen.AvgFitness)
		assert.GreaterOrEqual(t, gen.StdFitness, 0.0)
	}
}

func TestGenetic_SeededDeterminism(t *testing.T) {
	r1 := runGenetic(t, defaultGA(), 777)
	r2 := runGenetic(t, defaultGA(), 777)

	assert.Equal(t, r1.History, r2.History)
	assert.Equal(t, r1.BestValue, r2.BestValue)
	assert.Equal(t, r1.Best.Containers(), r2.Best.Containers())
}

func TestGenetic_TournamentSelectsTwoLowest(t *testing.T) {
	g := NewGeneticAlgorithm(DefaultObjective(), defaultGA(), NewSearchKey(42))
	fitness := []float64{50, 10, 90, 30, 70}

	// The two winners are the two lowest-fitness samples, so the first is
	// never worse than the second, and across many tournaments the winners
	// average well below the population mean (selection pressure).
	rng := rand.New(rand.NewSource(1))
	sum := 0.0
	for i := 0; i < 200; i++ {
		p1, p2 := g.tournament(fitness, rng)
		assert.LessOrEqual(t, fitness[p1], fitness[p2], "first parent must be the tournament minimum")
		sum += fitness[p1]
	}
	assert.Less(t, sum/200, 50.0, "tournament winners must beat the population mean")
}

func TestGenetic_CrossoverPreservesPartition(t *testing.T) {
	catalog := testCatalog()
	p1 := mustState(t, catalog, 100, [][]string{{"A", "B"}, {"C", "D"}})
	p2 := mustState(t, catalog, 100, [][]string{{"A"}, {"B", "C"}, {"D"}})

	g := NewGeneticAlgorithm(DefaultObjective(), defaultGA(), NewSearchKey(42))
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		c1, c2 := g.crossover(p1, p2, rng)
		assertPartition(t, c1)
		assertPartition(t, c2)
		// First-fit repacking never overloads.
		assert.True(t, c1.IsValid())
		assert.True(t, c2.IsValid())
	}
}

func TestGenetic_MutatePreservesPartition(t *testing.T) {
	cfg := defaultGA()
	always := 1.0
	cfg.MutationProbability = &always

	g := NewGeneticAlgorithm(DefaultObjective(), cfg, NewSearchKey(42))
	rng := rand.New(rand.NewSource(3))
	child := mustState(t, testCatalog(), 100, [][]string{{"A", "B"}, {"C", "D"}})

	for i := 0; i < 100; i++ {
		mutated := g.mutate(child, rng)
		assertPartition(t, mutated)
		// The input child is never touched.
		assert.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, child.Containers())
	}
}

func TestGenetic_ZeroMutationProbabilityIsLegal(t *testing.T) {
	cfg := defaultGA()
	never := 0.0
	cfg.MutationProbability = &never
	require.NoError(t, cfg.Validate())

	result := runGenetic(t, cfg, 42)
	assert.LessOrEqual(t, result.BestValue, result.InitialValue)
}

func TestGenetic_NilInitial(t *testing.T) {
	driver := NewGeneticAlgorithm(DefaultObjective(), defaultGA(), NewSearchKey(42))
	_, err := driver.Search(nil)
	assert.Error(t, err)
}
