package search

import (
	"hash/fnv"
	"math/rand"
)

// === SearchKey ===

// SearchKey uniquely identifies a reproducible search run. Two runs with the
// same SearchKey and identical configuration MUST produce identical results:
// randomness is the only non-determinism source in this package, and every
// stochastic draw goes through a PartitionedRNG derived from the key.
type SearchKey int64

// NewSearchKey creates a SearchKey from a seed value.
func NewSearchKey(seed int64) SearchKey {
	return SearchKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemSelection draws the stochastic hill-climbing neighbor choice.
	SubsystemSelection = "selection"

	// SubsystemRestart drives the shuffled reconstruction between restarts.
	SubsystemRestart = "restart"

	// SubsystemAnnealing draws neighbor proposals and acceptance in SA.
	SubsystemAnnealing = "annealing"

	// SubsystemPopulation seeds the genetic population heuristics mix.
	SubsystemPopulation = "population"

	// SubsystemTournament samples tournament participants.
	SubsystemTournament = "tournament"

	// SubsystemCrossover shuffles the item union during crossover.
	SubsystemCrossover = "crossover"

	// SubsystemMutation drives mutation operator choice and targets.
	SubsystemMutation = "mutation"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, so drawing from one stochastic component never perturbs the
// sequence another component sees.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Each run is single-threaded.
type PartitionedRNG struct {
	key        SearchKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SearchKey.
func NewPartitionedRNG(key SearchKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SearchKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SearchKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
