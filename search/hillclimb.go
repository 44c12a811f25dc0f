// The hill-climbing family. One shared loop enumerates the full
// neighborhood each iteration and delegates the accept/stop decision to a
// selection policy; the four variants differ only in that policy (and, for
// random-restart, in rerunning the loop from fresh reconstructions).

package search

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// climbPolicy decides, for one scored neighborhood, which neighbor the loop
// moves to — or why it stops. values[i] scores neighbors[i]; a returned
// empty StopReason means "continue at index idx".
type climbPolicy interface {
	reset()
	choose(values []float64, currentValue float64) (idx int, stop StopReason)
}

// HillClimb is the shared driver for the steepest-ascent, stochastic, and
// sideways-move variants.
type HillClimb struct {
	name   string
	obj    *ObjectiveFunction
	cfg    HillClimbConfig
	seed   int64
	policy climbPolicy
}

// NewSteepestAscent creates the greedy variant: accept only the strict
// minimum neighbor. Deterministic for identical inputs.
func NewSteepestAscent(obj *ObjectiveFunction, cfg HillClimbConfig, key SearchKey) *HillClimb {
	return &HillClimb{
		name:   AlgorithmSteepest,
		obj:    obj,
		cfg:    cfg,
		seed:   int64(key),
		policy: &steepestPolicy{},
	}
}

// NewStochastic creates the variant that moves to a uniformly random strict
// improver. Deterministic given the same key.
func NewStochastic(obj *ObjectiveFunction, cfg HillClimbConfig, key SearchKey) *HillClimb {
	return &HillClimb{
		name:   AlgorithmStochastic,
		obj:    obj,
		cfg:    cfg,
		seed:   int64(key),
		policy: &stochasticPolicy{rng: NewPartitionedRNG(key).ForSubsystem(SubsystemSelection)},
	}
}

// NewSidewaysMove creates the plateau-tolerant variant: accept the minimum
// neighbor under <=, allowing up to cfg.MaxSidewaysMoves consecutive
// equal-value moves.
func NewSidewaysMove(obj *ObjectiveFunction, cfg HillClimbConfig, key SearchKey) *HillClimb {
	return &HillClimb{
		name:   AlgorithmSideways,
		obj:    obj,
		cfg:    cfg,
		seed:   int64(key),
		policy: &sidewaysPolicy{max: cfg.MaxSidewaysMoves},
	}
}

// Name returns the variant name.
func (h *HillClimb) Name() string { return h.name }

// Search runs the climb from initial. Each iteration scores the complete
// move+swap neighborhood, then the policy either picks the next state or
// names the stop reason. The best state seen is tracked without aliasing the
// current one.
func (h *HillClimb) Search(initial *State) (*Result, error) {
	if initial == nil {
		return nil, fmt.Errorf("%s: initial state is nil", h.name)
	}

	current := initial.Clone()
	currentValue := h.obj.Calculate(current)
	best := current.Clone()
	bestValue := currentValue
	history := []float64{currentValue}

	h.policy.reset()
	reason := StopMaxIterations
	iterations := 0

	for iterations < h.cfg.MaxIterations {
		neighbors := EnumerateNeighbors(current)
		if len(neighbors) == 0 {
			reason = StopLocalOptimum
			break
		}
		values := make([]float64, len(neighbors))
		for i := range neighbors {
			values[i] = h.obj.Calculate(neighbors[i].State)
		}

		idx, stop := h.policy.choose(values, currentValue)
		if stop != "" {
			reason = stop
			break
		}

		logrus.Debugf("%s iter=%d %s value=%.2f", h.name, iterations, neighbors[idx].Move, values[idx])
		current = neighbors[idx].State
		currentValue = values[idx]
		if currentValue < bestValue {
			best = current.Clone()
			bestValue = currentValue
		}
		history = append(history, currentValue)
		iterations++
	}

	result := newResult(h.name, h.seed, reason, iterations, initial, best, h.obj, history)
	if sp, ok := h.policy.(*sidewaysPolicy); ok {
		result.Sideways = &SidewaysStats{
			MaxSidewaysMoves:   sp.max,
			TotalSidewaysMoves: sp.count,
		}
	}
	return result, nil
}

// === Selection policies ===

type steepestPolicy struct{}

func (p *steepestPolicy) reset() {}

func (p *steepestPolicy) choose(values []float64, currentValue float64) (int, StopReason) {
	best, bestValue := -1, currentValue
	for i, v := range values {
		if v < bestValue {
			best, bestValue = i, v
		}
	}
	if best < 0 {
		return 0, StopLocalOptimum
	}
	return best, ""
}

type stochasticPolicy struct {
	rng *rand.Rand
}

func (p *stochasticPolicy) reset() {}

func (p *stochasticPolicy) choose(values []float64, currentValue float64) (int, StopReason) {
	var improving []int
	for i, v := range values {
		if v < currentValue {
			improving = append(improving, i)
		}
	}
	if len(improving) == 0 {
		return 0, StopLocalOptimum
	}
	return improving[p.rng.Intn(len(improving))], ""
}

// sidewaysPolicy takes the minimum neighbor under <=. An improving move
// resets the consecutive-sideways counter; an equal-value move increments
// it, stopping once the allowance is spent.
type sidewaysPolicy struct {
	max   int
	count int
}

func (p *sidewaysPolicy) reset() { p.count = 0 }

func (p *sidewaysPolicy) choose(values []float64, currentValue float64) (int, StopReason) {
	best, bestValue := -1, values[0]
	for i, v := range values {
		if best < 0 || v < bestValue {
			best, bestValue = i, v
		}
	}
	switch {
	case bestValue < currentValue:
		p.count = 0
		return best, ""
	case bestValue == currentValue:
		p.count++
		if p.count >= p.max {
			return 0, StopMaxSideways
		}
		return best, ""
	default:
		return 0, StopLocalOptimum
	}
}

// === Random restart ===

// RandomRestart reruns a base hill-climbing variant to termination from a
// fresh shuffled reconstruction each restart, keeping the best result across
// all restarts. Restarts are statistically independent: the reconstruction
// draws come from their own RNG subsystem.
type RandomRestart struct {
	obj  *ObjectiveFunction
	cfg  HillClimbConfig
	key  SearchKey
	rng  *PartitionedRNG
	base func() *HillClimb
}

// NewRandomRestart creates a random-restart driver wrapping the base variant
// named by cfg.RestartVariant.
func NewRandomRestart(obj *ObjectiveFunction, cfg HillClimbConfig, key SearchKey) (*RandomRestart, error) {
	r := &RandomRestart{obj: obj, cfg: cfg, key: key, rng: NewPartitionedRNG(key)}

	switch cfg.RestartVariant {
	case AlgorithmSteepest:
		r.base = func() *HillClimb { return NewSteepestAscent(obj, cfg, key) }
	case AlgorithmStochastic:
		// Share one selection RNG across restarts so the whole run is a
		// single deterministic sequence under the key.
		selection := r.rng.ForSubsystem(SubsystemSelection)
		r.base = func() *HillClimb {
			h := NewSteepestAscent(obj, cfg, key)
			h.name = AlgorithmStochastic
			h.policy = &stochasticPolicy{rng: selection}
			return h
		}
	case AlgorithmSideways:
		r.base = func() *HillClimb { return NewSidewaysMove(obj, cfg, key) }
	default:
		return nil, fmt.Errorf("unknown restart variant %q", cfg.RestartVariant)
	}
	return r, nil
}

// Name returns the driver name.
func (r *RandomRestart) Name() string { return AlgorithmRandomRestart }

// Search runs cfg.MaxRestarts independent climbs. The first restart reuses
// the caller's state; later restarts regenerate via a seeded shuffled
// RandomFit reconstruction over the same catalog.
func (r *RandomRestart) Search(initial *State) (*Result, error) {
	if initial == nil {
		return nil, fmt.Errorf("%s: initial state is nil", AlgorithmRandomRestart)
	}

	restartRNG := r.rng.ForSubsystem(SubsystemRestart)
	history := []float64{r.obj.Calculate(initial)}
	stats := &RestartStats{MaxRestarts: r.cfg.MaxRestarts}

	var best *State
	bestValue := 0.0
	iterations := 0

	for restart := 0; restart < r.cfg.MaxRestarts; restart++ {
		start := initial
		if restart > 0 {
			reconstructed, err := RandomFit(initial.Catalog(), initial.Capacity(), restartRNG)
			if err != nil {
				return nil, fmt.Errorf("restart %d reconstruction: %w", restart, err)
			}
			start = reconstructed
		}

		res, err := r.base().Search(start)
		if err != nil {
			return nil, fmt.Errorf("restart %d: %w", restart, err)
		}

		history = append(history, res.History[1:]...)
		iterations += res.Iterations
		stats.Outcomes = append(stats.Outcomes, RestartOutcome{
			Restart:    restart,
			BestValue:  res.BestValue,
			Iterations: res.Iterations,
			StopReason: res.StopReason,
		})
		logrus.Debugf("%s restart=%d best=%.2f stop=%s", AlgorithmRandomRestart, restart, res.BestValue, res.StopReason)

		if best == nil || res.BestValue < bestValue {
			best = res.Best
			bestValue = res.BestValue
			stats.BestRestart = restart
		}
	}

	result := newResult(AlgorithmRandomRestart, int64(r.key), StopMaxRestarts, iterations, initial, best, r.obj, history)
	result.Restarts = stats
	return result, nil
}
