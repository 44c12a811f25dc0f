// Package search provides the core local-search engine for bin packing:
// the packing State model, the objective function, and six metaheuristic
// drivers that look for low-container packings of a fixed item set.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - state.go: the Catalog and the value-like State partition, with its pure
//     MoveItem/SwapItems transformations
//   - objective.go: how a State is scalarized into the minimization target
//   - driver.go: the Driver abstraction every metaheuristic implements
//
// # Architecture
//
// All drivers share the same shape: consume an initial State plus an
// ObjectiveFunction, iterate synchronously to a budget or a natural stop,
// and return a Result bundle (best state, value history, stop reason,
// driver-specific diagnostics). The drivers are:
//   - hillclimb.go: steepest-ascent, stochastic, and sideways-move variants
//     over one shared loop parameterized by a selection policy, plus the
//     random-restart wrapper
//   - annealing.go: simulated annealing with geometric cooling
//   - genetic.go: a generational GA over partition chromosomes
//
// Initial States come from the constructive heuristics in heuristic.go
// (first/best/worst/next/random/greedy fit); parameters load from YAML via
// config.go.
//
// # Determinism
//
// Randomness is the only non-determinism source. Every stochastic draw goes
// through a PartitionedRNG (rng.go) derived from a single SearchKey, so two
// runs with the same key and configuration produce identical results.
package search
