package search

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default driver parameters.
const (
	DefaultMaxIterations       = 1000
	DefaultMaxSidewaysMoves    = 100
	DefaultMaxRestarts         = 5
	DefaultInitialTemperature  = 100.0
	DefaultCoolingRate         = 0.99
	DefaultPopulationSize      = 50
	DefaultTournamentSize      = 5
	DefaultMutationProbability = 0.5
	DefaultMaxGenerations      = 1000
)

// HillClimbConfig groups parameters shared by the hill-climbing family.
type HillClimbConfig struct {
	MaxIterations    int    `yaml:"max_iterations"`
	MaxSidewaysMoves int    `yaml:"max_sideways_moves"` // sideways-move variant only
	MaxRestarts      int    `yaml:"max_restarts"`       // random-restart variant only
	RestartVariant   string `yaml:"restart_variant"`    // base variant under random-restart
}

// Normalize fills zero-valued fields with defaults.
func (c *HillClimbConfig) Normalize() {
	if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.MaxSidewaysMoves == 0 {
		c.MaxSidewaysMoves = DefaultMaxSidewaysMoves
	}
	if c.MaxRestarts == 0 {
		c.MaxRestarts = DefaultMaxRestarts
	}
	if c.RestartVariant == "" {
		c.RestartVariant = AlgorithmSteepest
	}
}

// Validate checks parameter ranges after normalization.
func (c *HillClimbConfig) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be >= 1, got %d", c.MaxIterations)
	}
	if c.MaxSidewaysMoves < 1 {
		return fmt.Errorf("max_sideways_moves must be >= 1, got %d", c.MaxSidewaysMoves)
	}
	if c.MaxRestarts < 1 {
		return fmt.Errorf("max_restarts must be >= 1, got %d", c.MaxRestarts)
	}
	if !validRestartVariants[c.RestartVariant] {
		return fmt.Errorf("unknown restart variant %q", c.RestartVariant)
	}
	return nil
}

// AnnealingConfig groups simulated-annealing parameters.
type AnnealingConfig struct {
	MaxIterations      int     `yaml:"max_iterations"`
	InitialTemperature float64 `yaml:"initial_temperature"`
	CoolingRate        float64 `yaml:"cooling_rate"`
}

// Normalize fills zero-valued fields with defaults.
func (c *AnnealingConfig) Normalize() {
	if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.InitialTemperature == 0 {
		c.InitialTemperature = DefaultInitialTemperature
	}
	if c.CoolingRate == 0 {
		c.CoolingRate = DefaultCoolingRate
	}
}

// Validate checks parameter ranges after normalization.
func (c *AnnealingConfig) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be >= 1, got %d", c.MaxIterations)
	}
	if c.InitialTemperature <= 0 {
		return fmt.Errorf("initial_temperature must be positive, got %v", c.InitialTemperature)
	}
	if c.CoolingRate <= 0 || c.CoolingRate >= 1 {
		return fmt.Errorf("cooling_rate must be in (0,1), got %v", c.CoolingRate)
	}
	return nil
}

// GeneticConfig groups genetic-algorithm parameters.
type GeneticConfig struct {
	PopulationSize      int      `yaml:"population_size"`
	TournamentSize      int      `yaml:"tournament_size"`
	MutationProbability *float64 `yaml:"mutation_probability"` // nil = default; 0 is a legal value
	MaxGenerations      int      `yaml:"max_generations"`
}

// Normalize fills unset fields with defaults.
func (c *GeneticConfig) Normalize() {
	if c.PopulationSize == 0 {
		c.PopulationSize = DefaultPopulationSize
	}
	if c.TournamentSize == 0 {
		c.TournamentSize = DefaultTournamentSize
	}
	if c.MutationProbability == nil {
		p := DefaultMutationProbability
		c.MutationProbability = &p
	}
	if c.MaxGenerations == 0 {
		c.MaxGenerations = DefaultMaxGenerations
	}
}

// Validate checks parameter ranges after normalization.
func (c *GeneticConfig) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("population_size must be >= 2, got %d", c.PopulationSize)
	}
	if c.TournamentSize < 2 {
		return fmt.Errorf("tournament_size must be >= 2, got %d", c.TournamentSize)
	}
	if p := *c.MutationProbability; p < 0 || p > 1 {
		return fmt.Errorf("mutation_probability must be in [0,1], got %v", p)
	}
	if c.MaxGenerations < 1 {
		return fmt.Errorf("max_generations must be >= 1, got %d", c.MaxGenerations)
	}
	return nil
}

// Algorithm names accepted by NewDriver and the CLI.
const (
	AlgorithmSteepest      = "steepest-ascent"
	AlgorithmStochastic    = "stochastic"
	AlgorithmSideways      = "sideways-move"
	AlgorithmRandomRestart = "random-restart"
	AlgorithmAnnealing     = "simulated-annealing"
	AlgorithmGenetic       = "genetic"
)

// ValidAlgorithms is the set of recognized driver names.
var ValidAlgorithms = map[string]bool{
	AlgorithmSteepest:      true,
	AlgorithmStochastic:    true,
	AlgorithmSideways:      true,
	AlgorithmRandomRestart: true,
	AlgorithmAnnealing:     true,
	AlgorithmGenetic:       true,
}

// validRestartVariants is the set of base variants random-restart may wrap.
// Wrapping random-restart in itself is not allowed.
var validRestartVariants = map[string]bool{
	AlgorithmSteepest:   true,
	AlgorithmStochastic: true,
	AlgorithmSideways:   true,
}

// SearchBundle holds unified driver configuration, loadable from a YAML
// file. Zero-valued fields mean "not set" and are filled by Normalize.
type SearchBundle struct {
	Algorithm string          `yaml:"algorithm"`
	Seed      int64           `yaml:"seed"`
	HillClimb HillClimbConfig `yaml:"hill_climb"`
	Annealing AnnealingConfig `yaml:"annealing"`
	Genetic   GeneticConfig   `yaml:"genetic"`
}

// Normalize fills unset fields of every section with defaults.
func (b *SearchBundle) Normalize() {
	if b.Algorithm == "" {
		b.Algorithm = AlgorithmSteepest
	}
	b.HillClimb.Normalize()
	b.Annealing.Normalize()
	b.Genetic.Normalize()
}

// Validate checks the algorithm name and every section's parameter ranges.
func (b *SearchBundle) Validate() error {
	if !ValidAlgorithms[b.Algorithm] {
		return fmt.Errorf("unknown algorithm %q", b.Algorithm)
	}
	if err := b.HillClimb.Validate(); err != nil {
		return fmt.Errorf("hill_climb: %w", err)
	}
	if err := b.Annealing.Validate(); err != nil {
		return fmt.Errorf("annealing: %w", err)
	}
	if err := b.Genetic.Validate(); err != nil {
		return fmt.Errorf("genetic: %w", err)
	}
	return nil
}

// LoadSearchBundle reads, parses, normalizes, and validates a YAML search
// configuration file.
func LoadSearchBundle(path string) (*SearchBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading search config: %w", err)
	}
	var bundle SearchBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing search config: %w", err)
	}
	bundle.Normalize()
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}
	return &bundle, nil
}
