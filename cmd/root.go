package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/packopt/packopt/search"
)

var (
	// Run flags
	seed       int64  // Master seed for every stochastic draw
	logLevel   string // Log verbosity level
	inputPath  string // Catalog file (JSON or YAML)
	configPath string // Optional YAML search bundle
	outputPath string // Optional JSON report destination
	algorithm  string // Driver selection
	initial    string // Constructive heuristic for the initial state
	decreasing bool   // Sort items by decreasing size in the initial heuristic

	// Hill-climbing flags
	maxIterations  int    // Iteration budget for climbing and annealing
	maxSideways    int    // Sideways-move allowance
	maxRestarts    int    // Restart budget for random-restart
	restartVariant string // Base variant under random-restart

	// Annealing flags
	initialTemp float64 // Starting temperature
	coolingRate float64 // Geometric cooling factor per iteration

	// Genetic flags
	populationSize int     // Individuals per generation
	tournamentSize int     // Tournament sample size
	mutationProb   float64 // Per-child mutation probability
	maxGenerations int     // Generation budget

	// Generate flags
	generateItems int // Synthetic catalog size
	genCapacity   int // Synthetic container capacity
	genMinSize    int // Minimum synthetic item size
	genMaxSize    int // Maximum synthetic item size
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "packopt",
	Short: "Local-search metaheuristics for bin packing",
}

// runCmd executes one search using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a bin packing search",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if inputPath == "" {
			logrus.Fatalf("No catalog file provided (use --input)")
		}
		catalog, capacity, err := LoadCatalog(inputPath)
		if err != nil {
			logrus.Fatalf("Loading catalog: %v", err)
		}

		bundle := assembleBundle(cmd)
		if err := bundle.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		initialState, err := buildInitialState(initial, catalog, capacity, decreasing, bundle.Seed)
		if err != nil {
			logrus.Fatalf("Building initial state: %v", err)
		}

		driver, err := search.NewDriver(bundle, search.DefaultObjective())
		if err != nil {
			logrus.Fatalf("Constructing driver: %v", err)
		}

		logrus.Infof("Starting %s over %d items, capacity=%d, seed=%d",
			driver.Name(), len(catalog), capacity, bundle.Seed)

		startTime := time.Now()
		result, err := driver.Search(initialState)
		if err != nil {
			logrus.Fatalf("Search failed: %v", err)
		}
		duration := time.Since(startTime)

		PrintSummary(result, duration)
		if outputPath != "" {
			report := NewReport(result, catalog, capacity, duration)
			if err := WriteReport(outputPath, report); err != nil {
				logrus.Fatalf("Writing report: %v", err)
			}
			logrus.Infof("Report saved to %s", outputPath)
		}
		logrus.Info("Search complete.")
	},
}

// compareCmd reports the container count every constructive heuristic
// produces for a catalog, for choosing a starting point.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare constructive heuristics on a catalog",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if inputPath == "" {
			logrus.Fatalf("No catalog file provided (use --input)")
		}
		catalog, capacity, err := LoadCatalog(inputPath)
		if err != nil {
			logrus.Fatalf("Loading catalog: %v", err)
		}
		counts, err := search.CompareHeuristics(catalog, capacity)
		if err != nil {
			logrus.Fatalf("Comparing heuristics: %v", err)
		}
		PrintComparison(catalog, capacity, counts)
	},
}

// generateCmd writes a synthetic catalog file for experimentation.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic catalog file",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if outputPath == "" {
			logrus.Fatalf("No output path provided (use --output)")
		}
		if err := GenerateCatalogFile(outputPath, generateItems, genCapacity, genMinSize, genMaxSize, seed); err != nil {
			logrus.Fatalf("Generating catalog: %v", err)
		}
		logrus.Infof("Catalog with %d items saved to %s", generateItems, outputPath)
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// assembleBundle builds the driver configuration: the config file (when
// given) provides the base, and any flag the user changed overrides it.
func assembleBundle(cmd *cobra.Command) *search.SearchBundle {
	var bundle *search.SearchBundle
	if configPath != "" {
		loaded, err := search.LoadSearchBundle(configPath)
		if err != nil {
			logrus.Fatalf("Loading search config: %v", err)
		}
		bundle = loaded
	} else {
		bundle = &search.SearchBundle{}
	}

	flags := cmd.Flags()
	if configPath == "" || flags.Changed("algorithm") {
		bundle.Algorithm = algorithm
	}
	if configPath == "" || flags.Changed("seed") {
		bundle.Seed = seed
	}
	if configPath == "" || flags.Changed("max-iterations") {
		bundle.HillClimb.MaxIterations = maxIterations
		bundle.Annealing.MaxIterations = maxIterations
	}
	if configPath == "" || flags.Changed("max-sideways-moves") {
		bundle.HillClimb.MaxSidewaysMoves = maxSideways
	}
	if configPath == "" || flags.Changed("max-restarts") {
		bundle.HillClimb.MaxRestarts = maxRestarts
	}
	if configPath == "" || flags.Changed("restart-variant") {
		bundle.HillClimb.RestartVariant = restartVariant
	}
	if configPath == "" || flags.Changed("initial-temperature") {
		bundle.Annealing.InitialTemperature = initialTemp
	}
	if configPath == "" || flags.Changed("cooling-rate") {
		bundle.Annealing.CoolingRate = coolingRate
	}
	if configPath == "" || flags.Changed("population-size") {
		bundle.Genetic.PopulationSize = populationSize
	}
	if configPath == "" || flags.Changed("tournament-size") {
		bundle.Genetic.TournamentSize = tournamentSize
	}
	if configPath == "" || flags.Changed("mutation-probability") {
		p := mutationProb
		bundle.Genetic.MutationProbability = &p
	}
	if configPath == "" || flags.Changed("max-generations") {
		bundle.Genetic.MaxGenerations = maxGenerations
	}
	bundle.Normalize()
	return bundle
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, cmd := range []*cobra.Command{runCmd, compareCmd, generateCmd} {
		cmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
		cmd.Flags().StringVar(&inputPath, "input", "", "Catalog file (JSON or YAML)")
		cmd.Flags().StringVar(&outputPath, "output", "", "Output path")
		cmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for every stochastic draw")
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "YAML search configuration file")
	runCmd.Flags().StringVar(&algorithm, "algorithm", search.AlgorithmSteepest,
		"Search driver (steepest-ascent, stochastic, sideways-move, random-restart, simulated-annealing, genetic)")
	runCmd.Flags().StringVar(&initial, "initial", "first-fit",
		"Initial heuristic (first-fit, best-fit, worst-fit, next-fit, greedy-fit, random-fit)")
	runCmd.Flags().BoolVar(&decreasing, "decreasing", false, "Sort items by decreasing size in the initial heuristic")

	runCmd.Flags().IntVar(&maxIterations, "max-iterations", search.DefaultMaxIterations, "Iteration budget")
	runCmd.Flags().IntVar(&maxSideways, "max-sideways-moves", search.DefaultMaxSidewaysMoves, "Sideways-move allowance")
	runCmd.Flags().IntVar(&maxRestarts, "max-restarts", search.DefaultMaxRestarts, "Restart budget")
	runCmd.Flags().StringVar(&restartVariant, "restart-variant", search.AlgorithmSteepest, "Base variant under random-restart")

	runCmd.Flags().Float64Var(&initialTemp, "initial-temperature", search.DefaultInitialTemperature, "Annealing start temperature")
	runCmd.Flags().Float64Var(&coolingRate, "cooling-rate", search.DefaultCoolingRate, "Geometric cooling factor")

	runCmd.Flags().IntVar(&populationSize, "population-size", search.DefaultPopulationSize, "Genetic population size")
	runCmd.Flags().IntVar(&tournamentSize, "tournament-size", search.DefaultTournamentSize, "Tournament sample size")
	runCmd.Flags().Float64Var(&mutationProb, "mutation-probability", search.DefaultMutationProbability, "Per-child mutation probability")
	runCmd.Flags().IntVar(&maxGenerations, "max-generations", search.DefaultMaxGenerations, "Generation budget")

	generateCmd.Flags().IntVar(&generateItems, "items", 15, "Number of synthetic items")
	generateCmd.Flags().IntVar(&genCapacity, "capacity", 100, "Container capacity")
	generateCmd.Flags().IntVar(&genMinSize, "min-size", 10, "Minimum item size")
	generateCmd.Flags().IntVar(&genMaxSize, "max-size", 80, "Maximum item size")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(generateCmd)
}
