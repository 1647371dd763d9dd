package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/macol-sim/macol-sim/sim"
	"github.com/macol-sim/macol-sim/sim/trace"
	"github.com/macol-sim/macol-sim/sim/world"
)

var (
	// CLI flags for the engine
	seed        int64  // Seed for all simulation randomness
	horizon     int64  // Total simulation time (in ticks)
	step        int64  // Decision epoch length (in ticks)
	statsPeriod int64  // Periodic statistics interval (in ticks)
	logLevel    string // Log verbosity level

	// CLI flags for the association policy
	algo         string  // Association algorithm name
	epsilon      float64 // Steady-state exploration probability
	exploreFirst int64   // Explore-first window (in ticks)

	// CLI flags for the scenario and outputs
	scenarioPath string // YAML scenario file ("" = built-in highway)
	numVehicles  int    // Vehicle count override (0 = scenario default)
	traceLevel   string // Trace level (none, decisions)
	traceOut     string // Trace JSON output path
	sessionOut   string // Session CSV path ("auto" = derive from run ID)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "macol-sim",
	Short: "Discrete-event simulator for decentralized beam-association learning",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the highway association simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		// Load the scenario
		spec := world.DefaultScenario()
		if scenarioPath != "" {
			spec, err = world.LoadScenario(scenarioPath)
			if err != nil {
				logrus.Fatalf("Unable to load scenario: %v", err)
			}
		}
		if numVehicles > 0 {
			spec.NumVehicles = numVehicles
		}

		simCfg := sim.SimConfig{Horizon: horizon, Step: step, StatsPeriod: statsPeriod}
		if err := simCfg.Validate(); err != nil {
			logrus.Fatalf("Invalid engine configuration: %v", err)
		}
		policyCfg := sim.PolicyConfig{Algo: algo, ExploreFirst: exploreFirst, Epsilon: epsilon}
		if err := policyCfg.Validate(); err != nil {
			logrus.Fatalf("Invalid policy configuration: %v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		// Deterministic per-subsystem randomness: the traffic realization
		// depends only on --seed, not on which policy consumes draws.
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))

		highway, err := world.NewHighway(spec, rng.ForSubsystem(sim.SubsystemTraffic))
		if err != nil {
			logrus.Fatalf("Unable to build world: %v", err)
		}
		agents, err := spec.BuildAgents()
		if err != nil {
			logrus.Fatalf("Unable to build agents: %v", err)
		}

		metrics := sim.NewMetrics(nil)
		if sessionOut != "" {
			path := sessionOut
			if path == "auto" {
				path = fmt.Sprintf("session-%s.csv", metrics.RunID)
			}
			metrics = sim.NewMetrics(sim.NewSessionWriter(path))
		}

		tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)}, metrics.RunID)

		policy, err := sim.NewAssociationPolicy(policyCfg, rng.ForSubsystem(sim.SubsystemPolicy), tr, metrics)
		if err != nil {
			logrus.Fatalf("Unable to build policy: %v", err)
		}

		logrus.Infof("Starting simulation: scenario=%q, algo=%s, %d beams, %d vehicles, horizon=%d ticks",
			spec.Name, policy.Name(), len(spec.Beams), spec.NumVehicles, horizon)

		s := sim.NewSimulator(simCfg, agents, highway, policy, metrics)
		s.Run()
		metrics.Print(horizon)

		if tr.Enabled() {
			summary := trace.Summarize(tr)
			fmt.Println("=== Decision Trace Summary ===")
			fmt.Printf("Decisions (serve/backoff/explore): %d/%d/%d\n",
				summary.ServeCount, summary.BackoffCount, summary.ExploreCount)
			fmt.Printf("Drops (attributed)                : %d (%d)\n", summary.TotalDrops, summary.AttributedDrops)
			fmt.Printf("Reward mean/stddev/median         : %.3f/%.3f/%.3f\n",
				summary.MeanReward, summary.StddevReward, summary.MedianReward)
			fmt.Printf("Connection duration mean/p90      : %.1f/%.1f ticks\n",
				summary.MeanDuration, summary.P90Duration)
			if traceOut != "" {
				if err := trace.WriteJSON(tr, traceOut); err != nil {
					logrus.Errorf("Unable to write trace: %v", err)
				}
			}
		}

		logrus.Info("Simulation complete.")
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
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for traffic and policy randomness")
	runCmd.Flags().Int64Var(&horizon, "horizon", 1950000, "Total simulation horizon (in ticks)")
	runCmd.Flags().Int64Var(&step, "step", 100, "Decision epoch length (in ticks)")
	runCmd.Flags().Int64Var(&statsPeriod, "stats-period", 30000, "Periodic statistics interval (in ticks, 0 disables)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Association policy configs
	runCmd.Flags().StringVar(&algo, "algo", sim.AlgoContextLearning, "Association algorithm (macol, best-signal)")
	runCmd.Flags().Float64Var(&epsilon, "epsilon", 0.05, "Steady-state exploration probability")
	runCmd.Flags().Int64Var(&exploreFirst, "explore-first", 120000, "Explore-first window (in ticks)")

	// Scenario and outputs
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (default: built-in busy highway)")
	runCmd.Flags().IntVar(&numVehicles, "num-vehicles", 0, "Override the scenario's vehicle count")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write the decision trace to this JSON file")
	runCmd.Flags().StringVar(&sessionOut, "session-out", "", "Session CSV path (\"auto\" derives a name from the run ID)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
