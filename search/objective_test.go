package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjective_ReferenceScenario(t *testing.T) {
	// {A:40, B:55, C:25, D:60}, capacity 100, containers [A,B] and [C,D]:
	// 0*10000 + 2*100 + (-(0.95^2+0.85^2))*(-10) = 200 + 16.25 = 216.25.
	s := mustState(t, testCatalog(), 100, [][]string{{"A", "B"}, {"C", "D"}})

	value := DefaultObjective().Calculate(s)
	assert.InDelta(t, 216.25, value, 1e-9)
}

func TestObjective_OverloadPenaltyIsQuadratic(t *testing.T) {
	catalog := Catalog{"A": 110, "B": 150}
	obj := DefaultObjective()

	small := mustState(t, catalog, 100, [][]string{{"A"}, {"B"}})
	// A overloads by 10, B by 50: penalty 100 + 2500.
	components := obj.Components(small)
	assert.InDelta(t, 2600.0, components.OverloadPenalty, 1e-9)
	assert.InDelta(t, 26000000.0, components.OverloadPenaltyWeighted, 1e-9)
	assert.False(t, components.IsValid)
}

func TestObjective_ValidAlwaysBeatsInvalid(t *testing.T) {
	obj := DefaultObjective()

	valid := mustState(t, testCatalog(), 100, [][]string{{"A", "B"}, {"C", "D"}})
	invalid := mustState(t, testCatalog(), 100, [][]string{{"A", "B", "C"}, {"D"}})

	require.True(t, valid.IsValid())
	require.False(t, invalid.IsValid())
	assert.Less(t, obj.Calculate(valid), obj.Calculate(invalid))
}

func TestObjective_ContainerCountDominatesDensity(t *testing.T) {
	catalog := Catalog{"A": 30, "B": 30, "C": 30}
	obj := DefaultObjective()

	two := mustState(t, catalog, 100, [][]string{{"A", "B"}, {"C"}})
	three := mustState(t, catalog, 100, [][]string{{"A"}, {"B"}, {"C"}})

	assert.Less(t, obj.Calculate(two), obj.Calculate(three))
}

func TestObjective_ComponentsBreakdown(t *testing.T) {
	s := mustState(t, testCatalog(), 100, [][]string{{"A", "B"}, {"C", "D"}})
	obj := DefaultObjective()

	components := obj.Components(s)
	assert.Equal(t, 2, components.NumContainers)
	assert.InDelta(t, 200.0, components.NumContainersWeighted, 1e-9)
	assert.InDelta(t, 0.0, components.OverloadPenalty, 1e-9)
	assert.InDelta(t, 1.625, components.DensityScore, 1e-9)
	assert.InDelta(t, 16.25, components.DensityScoreWeighted, 1e-9)
	assert.InDelta(t, 216.25, components.Total, 1e-9)
	assert.True(t, components.IsValid)

	// Components must agree with Calculate and have no side effects.
	assert.InDelta(t, obj.Calculate(s), components.Total, 1e-9)
	assert.Equal(t, [][]string{{"A", "B"}, {"C", "D"}}, s.Containers())
}

func TestObjective_CustomWeights(t *testing.T) {
	s := mustState(t, testCatalog(), 100, [][]string{{"A", "B"}, {"C", "D"}})

	obj := NewObjectiveFunction(0, 1, 0)
	assert.InDelta(t, 2.0, obj.Calculate(s), 1e-9)
}
