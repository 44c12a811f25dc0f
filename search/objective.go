// Scalarizes a State into the single minimization target shared by every
// driver: quadratic overload penalty, container count, and a density bonus.

package search

import "math"

// Default objective weights. The magnitudes enforce a near-lexicographic
// priority: any valid state beats any invalid one, and a one-container
// reduction beats any density gain.
const (
	DefaultOverloadWeight  = 10000.0
	DefaultContainerWeight = 100.0
	DefaultDensityWeight   = -10.0
)

// ObjectiveFunction scores a State; lower is better. The zero value is not
// usable — construct with NewObjectiveFunction or DefaultObjective.
type ObjectiveFunction struct {
	OverloadWeight  float64 // weight on the quadratic overload penalty
	ContainerWeight float64 // weight on the non-empty container count
	DensityWeight   float64 // weight on the density score (negative = bonus)
}

// NewObjectiveFunction creates an ObjectiveFunction with explicit weights.
func NewObjectiveFunction(overload, container, density float64) *ObjectiveFunction {
	return &ObjectiveFunction{
		OverloadWeight:  overload,
		ContainerWeight: container,
		DensityWeight:   density,
	}
}

// DefaultObjective returns the objective with the standard weights.
func DefaultObjective() *ObjectiveFunction {
	return NewObjectiveFunction(DefaultOverloadWeight, DefaultContainerWeight, DefaultDensityWeight)
}

// Calculate returns the scalar objective value of s.
func (f *ObjectiveFunction) Calculate(s *State) float64 {
	return f.overloadPenalty(s)*f.OverloadWeight +
		float64(s.NumContainers())*f.ContainerWeight +
		f.densityScore(s)*f.DensityWeight
}

// overloadPenalty sums squared capacity excess over all containers. Squaring
// makes one large violation worse than several small ones.
func (f *ObjectiveFunction) overloadPenalty(s *State) float64 {
	total := 0.0
	for i := range s.Containers() {
		if over := s.Load(i) - s.Capacity(); over > 0 {
			total += float64(over) * float64(over)
		}
	}
	return total
}

// densityScore returns the negated sum of squared container densities, so a
// tighter packing lowers the minimization target.
func (f *ObjectiveFunction) densityScore(s *State) float64 {
	total := 0.0
	for i, c := range s.Containers() {
		if len(c) == 0 {
			continue
		}
		d := float64(s.Load(i)) / float64(s.Capacity())
		total += d * d
	}
	return -total
}

// Components is the unweighted/weighted breakdown of one evaluation,
// returned by the Components method for diagnostics and export.
type Components struct {
	OverloadPenalty         float64 `json:"overload_penalty" yaml:"overload_penalty"`
	OverloadPenaltyWeighted float64 `json:"overload_penalty_weighted" yaml:"overload_penalty_weighted"`
	NumContainers           int     `json:"num_containers" yaml:"num_containers"`
	NumContainersWeighted   float64 `json:"num_containers_weighted" yaml:"num_containers_weighted"`
	DensityScore            float64 `json:"density_score" yaml:"density_score"`
	DensityScoreWeighted    float64 `json:"density_score_weighted" yaml:"density_score_weighted"`
	Total                   float64 `json:"total" yaml:"total"`
	IsValid                 bool    `json:"is_valid" yaml:"is_valid"`
}

// Components evaluates s and returns the per-term breakdown. DensityScore is
// reported as the positive density sum; its weighted form carries the sign
// the Total actually uses. No side effects.
func (f *ObjectiveFunction) Components(s *State) Components {
	penalty := f.overloadPenalty(s)
	density := f.densityScore(s)
	return Components{
		OverloadPenalty:         penalty,
		OverloadPenaltyWeighted: penalty * f.OverloadWeight,
		NumContainers:           s.NumContainers(),
		NumContainersWeighted:   float64(s.NumContainers()) * f.ContainerWeight,
		DensityScore:            math.Abs(density),
		DensityScoreWeighted:    density * f.DensityWeight,
		Total:                   f.Calculate(s),
		IsValid:                 s.IsValid(),
	}
}
