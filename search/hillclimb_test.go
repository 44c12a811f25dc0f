package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultHC() HillClimbConfig {
	cfg := HillClimbConfig{}
	cfg.Normalize()
	return cfg
}

// spreadState returns a deliberately wasteful packing the climbers can
// improve: one container per item.
func spreadState(t *testing.T) *State {
	t.Helper()
	catalog := Catalog{"A": 40, "B": 55, "C": 25, "D": 60, "E": 30, "F": 45, "G": 50}
	s, err := SingleItemPerContainer(catalog, 100)
	require.NoError(t, err)
	return s
}

func TestSteepestAscent_ReferenceScenario(t *testing.T) {
	// From the first-fit packing [A,B],[C,D] no move or swap can reduce the
	// container count below the theoretical minimum of 2 without overloading,
	// so the climb must stop immediately at the local optimum and return the
	// starting state unchanged.
	initial, err := FirstFit(testCatalog(), 100, false)
	require.NoError(t, err)

	driver := NewSteepestAscent(DefaultObjective(), defaultHC(), NewSearchKey(42))
	result, err := driver.Search(initial)
	require.NoError(t, err)

	assert.Equal(t, StopLocalOptimum, result.StopReason)
	assert.Equal(t, 0, result.Iterations)
	assert.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, result.Best.Containers())
	assert.InDelta(t, 216.25, result.BestValue, 1e-9)
	assert.Equal(t, []float64{216.25}, result.History)
}

func TestSteepestAscent_ImprovesSpreadPacking(t *testing.T) {
	initial := spreadState(t)
	initialValue := DefaultObjective().Calculate(initial)

	driver := NewSteepestAscent(DefaultObjective(), defaultHC(), NewSearchKey(42))
	result, err := driver.Search(initial)
	require.NoError(t, err)

	assert.Less(t, result.BestValue, initialValue)
	assert.Less(t, result.FinalContainers, result.InitialContainers)
	assert.True(t, result.IsValid)
	assert.Equal(t, StopLocalOptimum, result.StopReason)
	assertPartition(t, result.Best)

	// Strictly decreasing history: steepest ascent only accepts improvers.
	for i := 1; i < len(result.History); i++ {
		assert.Less(t, result.History[i], result.History[i-1])
	}
}

func TestSteepestAscent_Deterministic(t *testing.T) {
	run := func() *Result {
		initial := spreadState(t)
		driver := NewSteepestAscent(DefaultObjective(), defaultHC(), NewSearchKey(42))
		result, err := driver.Search(initial)
		require.NoError(t, err)
		return result
	}

	r1, r2 := run(), run()
	assert.Equal(t, r1.History, r2.History)
	assert.Equal(t, r1.Best.Containers(), r2.Best.Containers())
}

func TestSteepestAscent_DoesNotMutateInitial(t *testing.T) {
	initial := spreadState(t)
	before := initial.Clone()

	driver := NewSteepestAscent(DefaultObjective(), defaultHC(), NewSearchKey(42))
	_, err := driver.Search(initial)
	require.NoError(t, err)

	assert.Equal(t, before.Containers(), initial.Containers())
}

func TestStochastic_SeededDeterminism(t *testing.T) {
	run := func(seed int64) *Result {
		initial := spreadState(t)
		driver := NewStochastic(DefaultObjective(), defaultHC(), NewSearchKey(seed))
		result, err := driver.Search(initial)
		require.NoError(t, err)
		return result
	}

	r1, r2 := run(42), run(42)
	assert.Equal(t, r1.History, r2.History)
	assert.Equal(t, r1.Best.Containers(), r2.Best.Containers())
}

func TestStochastic_TerminatesAtLocalOptimum(t *testing.T) {
	initial := spreadState(t)
	initialValue := DefaultObjective().Calculate(initial)

	driver := NewStochastic(DefaultObjective(), defaultHC(), NewSearchKey(7))
	result, err := driver.Search(initial)
	require.NoError(t, err)

	assert.Equal(t, StopLocalOptimum, result.StopReason)
	assert.LessOrEqual(t, result.BestValue, initialValue)
	assertPartition(t, result.Best)
}

func TestSidewaysMove_BoundNeverExceeded(t *testing.T) {
	cfg := defaultHC()
	cfg.MaxSidewaysMoves = 5

	initial := spreadState(t)
	driver := NewSidewaysMove(DefaultObjective(), cfg, NewSearchKey(42))
	result, err := driver.Search(initial)
	require.NoError(t, err)

	require.NotNil(t, result.Sideways)
	assert.Equal(t, 5, result.Sideways.MaxSidewaysMoves)
	assert.LessOrEqual(t, result.Sideways.TotalSidewaysMoves, 5)
	assert.Contains(t, []StopReason{StopLocalOptimum, StopMaxSideways, StopMaxIterations}, result.StopReason)
	assert.LessOrEqual(t, result.BestValue, result.InitialValue)
}

func TestSidewaysMove_ReferenceScenarioIsLocalOptimum(t *testing.T) {
	// From [A,B],[C,D] the best neighbor is strictly worse, so even with a
	// sideways allowance the stop reason is local_optimum, not max_sideways.
	initial, err := FirstFit(testCatalog(), 100, false)
	require.NoError(t, err)

	driver := NewSidewaysMove(DefaultObjective(), defaultHC(), NewSearchKey(42))
	result, err := driver.Search(initial)
	require.NoError(t, err)

	assert.Equal(t, StopLocalOptimum, result.StopReason)
	assert.Equal(t, 0, result.Iterations)
}

func TestHillClimb_IterationBudget(t *testing.T) {
	cfg := defaultHC()
	cfg.MaxIterations = 1

	initial := spreadState(t)
	driver := NewSteepestAscent(DefaultObjective(), cfg, NewSearchKey(42))
	result, err := driver.Search(initial)
	require.NoError(t, err)

	assert.Equal(t, StopMaxIterations, result.StopReason)
	assert.Equal(t, 1, result.Iterations)
	assert.Len(t, result.History, 2)
}

func TestHillClimb_NilInitial(t *testing.T) {
	driver := NewSteepestAscent(DefaultObjective(), defaultHC(), NewSearchKey(42))
	_, err := driver.Search(nil)
	assert.Error(t, err)
}

func TestRandomRestart_KeepsBestAcrossRestarts(t *testing.T) {
	cfg := defaultHC()
	cfg.MaxRestarts = 4
	cfg.RestartVariant = AlgorithmSteepest

	initial := spreadState(t)
	driver, err := NewRandomRestart(DefaultObjective(), cfg, NewSearchKey(42))
	require.NoError(t, err)

	result, err := driver.Search(initial)
	require.NoError(t, err)

	assert.Equal(t, StopMaxRestarts, result.StopReason)
	require.NotNil(t, result.Restarts)
	require.Len(t, result.Restarts.Outcomes, 4)

	// The returned best matches the minimum over all restart outcomes.
	for _, outcome := range result.Restarts.Outcomes {
		assert.LessOrEqual(t, result.BestValue, outcome.BestValue)
	}
	best := result.Restarts.Outcomes[result.Restarts.BestRestart]
	assert.InDelta(t, best.BestValue, result.BestValue, 1e-9)

	assert.LessOrEqual(t, result.BestValue, result.InitialValue)
	assertPartition(t, result.Best)
}

func TestRandomRestart_SeededDeterminism(t *testing.T) {
	run := func() *Result {
		cfg := defaultHC()
		cfg.MaxRestarts = 3
		cfg.RestartVariant = AlgorithmStochastic

		initial := spreadState(t)
		driver, err := NewRandomRestart(DefaultObjective(), cfg, NewSearchKey(99))
		require.NoError(t, err)
		result, err := driver.Search(initial)
		require.NoError(t, err)
		return result
	}

	r1, r2 := run(), run()
	assert.Equal(t, r1.History, r2.History)
	assert.Equal(t, r1.BestValue, r2.BestValue)
	assert.Equal(t, r1.Restarts.Outcomes, r2.Restarts.Outcomes)
}

func TestRandomRestart_RejectsUnknownVariant(t *testing.T) {
	cfg := defaultHC()
	cfg.RestartVariant = "tabu"
	_, err := NewRandomRestart(DefaultObjective(), cfg, NewSearchKey(1))
	assert.Error(t, err)
}
