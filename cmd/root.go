package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dragonwind-sim/dragonwind/sim"
	"github.com/dragonwind-sim/dragonwind/sim/energy"
)

var (
	// CLI flags shared by both subcommands
	configPath   string // Scenario configuration YAML
	scenarioPath string // Optional scenario overlay YAML
	logLevel     string // Log verbosity level
	outputDir    string // Where result artifacts land
	startYear    int    // First simulated year (inclusive)
	endYear      int    // Last simulated year (inclusive)
	seed         int64  // Seed for all stochastic subsystems

	// CLI flags for the montecarlo subcommand
	iterations        int    // Number of Monte Carlo iterations
	workers           int    // Parallel iteration workers
	saveAllRuns       bool   // Persist every iteration's raw results
	distributionsPath string // Parameter distribution YAML
	sensitivity       bool   // Generate sensitivity analysis after the batch
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "dragonwind",
	Short: "Discrete-time simulator for renewable energy transition pathways",
}

// setupLogging applies the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadScenarioConfig loads the base configuration and applies the optional
// scenario overlay.
func loadScenarioConfig() sim.Config {
	cfg, err := sim.LoadConfig(configPath)
	if err != nil {
		logrus.Fatalf("unable to load configuration: %v", err)
	}
	if scenarioPath == "" {
		return cfg
	}
	scenario, err := sim.LoadScenario(scenarioPath)
	if err != nil {
		logrus.Fatalf("unable to load scenario: %v", err)
	}
	logrus.Infof("applying scenario %q: %s", scenario.Name, scenario.Description)
	return scenario.Apply(cfg)
}

// newEngineFactory wires the full component set in dependency order:
// CapacityExpansion is registered first because most other components
// resolve it during Initialize.
func newEngineFactory(startYear, endYear int, key sim.SimulationKey) sim.EngineFactory {
	return func(cfg sim.Config) (*sim.Engine, error) {
		engine, err := sim.NewEngine(startYear, endYear)
		if err != nil {
			return nil, err
		}
		rng := sim.NewPartitionedRNG(key)

		capacity, err := energy.NewCapacityExpansion(cfg)
		if err != nil {
			return nil, err
		}
		grid, err := energy.NewGridIntegration(cfg)
		if err != nil {
			return nil, err
		}
		finance, err := energy.NewGreenFinance(cfg)
		if err != nil {
			return nil, err
		}
		carbon, err := energy.NewCarbonPathways(cfg)
		if err != nil {
			return nil, err
		}
		beltroad, err := energy.NewBeltRoadSpillover(cfg)
		if err != nil {
			return nil, err
		}
		manufacturing, err := energy.NewManufacturingCapacity(cfg)
		if err != nil {
			return nil, err
		}
		installation, err := energy.NewInstallationCapacity(cfg)
		if err != nil {
			return nil, err
		}
		storage, err := energy.NewStorageDeployment(cfg)
		if err != nil {
			return nil, err
		}
		ev, err := energy.NewEVAdoption(cfg)
		if err != nil {
			return nil, err
		}

		engine.AddComponent(capacity)
		engine.AddComponent(grid)
		engine.AddComponent(finance)
		engine.AddComponent(energy.NewProvincialAnalysis(rng.ForSubsystem(sim.SubsystemProvinces)))
		engine.AddComponent(carbon)
		engine.AddComponent(beltroad)
		engine.AddComponent(manufacturing)
		engine.AddComponent(installation)
		engine.AddComponent(storage)
		engine.AddComponent(ev)
		return engine, nil
	}
}

// runCmd executes a single simulation and exports the combined KPI table
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation over the configured year range",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := loadScenarioConfig()

		factory := newEngineFactory(startYear, endYear, sim.NewSimulationKey(seed))
		engine, err := factory(cfg)
		if err != nil {
			logrus.Fatalf("unable to build engine: %v", err)
		}
		if err := engine.Run(sim.LogProgress()); err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}
		if _, err := sim.NewCollector(engine.Components()).Persist(outputDir); err != nil {
			logrus.Fatalf("unable to persist results: %v", err)
		}
	},
}

// montecarloCmd runs the stochastic experiment batch
var montecarloCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Run repeated simulations with randomly perturbed parameters",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := loadScenarioConfig()

		distributions, err := sim.LoadDistributions(distributionsPath)
		if err != nil {
			logrus.Fatalf("unable to load distributions: %v", err)
		}

		opts := []sim.MonteCarloOption{
			sim.WithSeed(seed),
			sim.WithWorkers(workers),
		}
		if outputDir != "" {
			opts = append(opts, sim.WithOutputDir(outputDir))
		}
		if saveAllRuns {
			opts = append(opts, sim.WithSaveAllRuns())
		}
		mc := sim.NewMonteCarlo(cfg, distributions, iterations, opts...)

		factory := newEngineFactory(startYear, endYear, sim.NewSimulationKey(seed))
		summary, err := mc.Run(factory)
		if err != nil {
			logrus.Fatalf("monte carlo failed: %v", err)
		}
		if err := summary.WriteCSV(os.Stdout); err != nil {
			logrus.Fatalf("unable to print summary: %v", err)
		}

		if sensitivity {
			if _, err := mc.GenerateSensitivityAnalysis(); err != nil {
				logrus.Fatalf("sensitivity analysis failed: %v", err)
			}
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, montecarloCmd} {
		c.Flags().StringVar(&configPath, "config", "configs/defaults.yaml", "Scenario configuration YAML")
		c.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario overlay YAML applied on top of the configuration")
		c.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
		c.Flags().IntVar(&startYear, "start-year", 2025, "First simulated year")
		c.Flags().IntVar(&endYear, "end-year", 2035, "Last simulated year")
		c.Flags().Int64Var(&seed, "seed", 42, "Seed for stochastic subsystems")
	}
	runCmd.Flags().StringVar(&outputDir, "output", "results", "Directory for exported KPI tables")

	montecarloCmd.Flags().StringVar(&distributionsPath, "distributions", "configs/distributions.yaml", "Parameter distribution YAML")
	montecarloCmd.Flags().IntVar(&iterations, "iterations", 100, "Number of Monte Carlo iterations")
	montecarloCmd.Flags().IntVar(&workers, "workers", 1, "Parallel iteration workers")
	montecarloCmd.Flags().BoolVar(&saveAllRuns, "save-all-runs", false, "Persist every iteration's parameters and result tables")
	montecarloCmd.Flags().BoolVar(&sensitivity, "sensitivity", false, "Generate per-metric sensitivity rankings after the batch")
	montecarloCmd.Flags().StringVar(&outputDir, "output", "", "Directory for Monte Carlo artifacts (default results/monte_carlo_<timestamp>)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(montecarloCmd)
}
