// Aggregates run statistics for final reporting: the best packing found,
// the per-iteration value history, and driver-specific diagnostics. Encoding
// and rendering belong to consumers; everything here is plain data.

package search

// StopReason records why a driver run terminated. Termination is a normal
// outcome, never an error.
type StopReason string

const (
	// StopLocalOptimum: no acceptable neighbor existed.
	StopLocalOptimum StopReason = "local_optimum"

	// StopMaxSideways: the sideways-move allowance was exhausted on a plateau.
	StopMaxSideways StopReason = "max_sideways_reached"

	// StopMaxIterations: the iteration budget ran out.
	StopMaxIterations StopReason = "max_iterations_reached"

	// StopMaxRestarts: the restart budget ran out.
	StopMaxRestarts StopReason = "max_restarts_reached"

	// StopMaxGenerations: the generation budget ran out.
	StopMaxGenerations StopReason = "max_generations_reached"
)

// Result is the structured bundle every driver returns: best state, values,
// history, and diagnostics. It is serialization-ready; the Best handle is
// excluded from encoding (Solution carries the layout instead).
type Result struct {
	Algorithm  string     `json:"algorithm" yaml:"algorithm"`
	Seed       int64      `json:"seed" yaml:"seed"`
	StopReason StopReason `json:"stop_reason" yaml:"stop_reason"`
	Iterations int        `json:"iterations" yaml:"iterations"`

	InitialValue       float64 `json:"initial_objective" yaml:"initial_objective"`
	BestValue          float64 `json:"final_objective" yaml:"final_objective"`
	Improvement        float64 `json:"improvement" yaml:"improvement"`
	ImprovementPercent float64 `json:"improvement_percent" yaml:"improvement_percent"`

	InitialContainers int  `json:"num_containers_initial" yaml:"num_containers_initial"`
	FinalContainers   int  `json:"num_containers_final" yaml:"num_containers_final"`
	IsValid           bool `json:"is_valid" yaml:"is_valid"`

	// History holds the objective value per iteration, index 0 being the
	// initial state's value.
	History []float64 `json:"history" yaml:"history"`

	Solution   []Layout   `json:"solution" yaml:"solution"`
	Components Components `json:"objective_components" yaml:"objective_components"`

	Sideways  *SidewaysStats  `json:"sideways,omitempty" yaml:"sideways,omitempty"`
	Restarts  *RestartStats   `json:"restarts,omitempty" yaml:"restarts,omitempty"`
	Annealing *AnnealingStats `json:"annealing,omitempty" yaml:"annealing,omitempty"`
	Genetic   *GeneticStats   `json:"genetic,omitempty" yaml:"genetic,omitempty"`

	// Best is the winning State for programmatic consumers.
	Best *State `json:"-" yaml:"-"`
}

// SidewaysStats reports plateau traversal in the sideways-move variant.
type SidewaysStats struct {
	MaxSidewaysMoves   int `json:"max_sideways_moves" yaml:"max_sideways_moves"`
	TotalSidewaysMoves int `json:"total_sideways_moves" yaml:"total_sideways_moves"`
}

// RestartOutcome summarizes one restart of the random-restart driver.
type RestartOutcome struct {
	Restart    int        `json:"restart" yaml:"restart"`
	BestValue  float64    `json:"best_objective" yaml:"best_objective"`
	Iterations int        `json:"iterations" yaml:"iterations"`
	StopReason StopReason `json:"stop_reason" yaml:"stop_reason"`
}

// RestartStats reports per-restart outcomes and which restart won.
type RestartStats struct {
	MaxRestarts int              `json:"max_restarts" yaml:"max_restarts"`
	BestRestart int              `json:"best_restart" yaml:"best_restart"`
	Outcomes    []RestartOutcome `json:"outcomes" yaml:"outcomes"`
}

// AnnealingStats reports the acceptance and temperature trajectory of a
// simulated-annealing run.
type AnnealingStats struct {
	InitialTemperature float64 `json:"initial_temperature" yaml:"initial_temperature"`
	CoolingRate        float64 `json:"cooling_rate" yaml:"cooling_rate"`
	FinalTemperature   float64 `json:"final_temperature" yaml:"final_temperature"`
	AcceptedWorse      int     `json:"accepted_worse_count" yaml:"accepted_worse_count"`
	StuckEpisodes      int     `json:"stuck_episodes" yaml:"stuck_episodes"`

	// Per-iteration series, parallel to Result.History[1:].
	AcceptanceProbs []float64 `json:"acceptance_probabilities" yaml:"acceptance_probabilities"`
	Temperatures    []float64 `json:"temperatures" yaml:"temperatures"`
}

// GenerationPoint is one generation's fitness summary.
type GenerationPoint struct {
	Generation  int     `json:"generation" yaml:"generation"`
	BestFitness float64 `json:"best_fitness" yaml:"best_fitness"`
	AvgFitness  float64 `json:"avg_fitness" yaml:"avg_fitness"`
	StdFitness  float64 `json:"std_fitness" yaml:"std_fitness"`
}

// GeneticStats reports per-generation fitness and the run parameters.
type GeneticStats struct {
	PopulationSize      int               `json:"population_size" yaml:"population_size"`
	TournamentSize      int               `json:"tournament_size" yaml:"tournament_size"`
	MutationProbability float64           `json:"mutation_probability" yaml:"mutation_probability"`
	Generations         []GenerationPoint `json:"generations" yaml:"generations"`

	// ReturnedInitial is set when the global best never beat the caller's
	// initial state and the initial state was returned instead.
	ReturnedInitial bool `json:"returned_initial" yaml:"returned_initial"`
}

// newResult fills the fields every driver shares. history[0] must be the
// initial value; iterations is the number of loop iterations actually run.
func newResult(algorithm string, seed int64, reason StopReason, iterations int,
	initial, best *State, obj *ObjectiveFunction, history []float64) *Result {

	initialValue := history[0]
	bestValue := obj.Calculate(best)
	improvement := initialValue - bestValue
	percent := 0.0
	if initialValue != 0 {
		percent = improvement / abs(initialValue) * 100
	}
	return &Result{
		Algorithm:          algorithm,
		Seed:               seed,
		StopReason:         reason,
		Iterations:         iterations,
		InitialValue:       initialValue,
		BestValue:          bestValue,
		Improvement:        improvement,
		ImprovementPercent: percent,
		InitialContainers:  initial.NumContainers(),
		FinalContainers:    best.NumContainers(),
		IsValid:            best.IsValid(),
		History:            history,
		Solution:           best.Snapshot(),
		Components:         obj.Components(best),
		Best:               best,
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
