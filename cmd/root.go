package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/carshare-sim/carshare-sim/sim"
	"github.com/carshare-sim/carshare-sim/sim/promsink"
	"github.com/carshare-sim/carshare-sim/sim/trace"
)

var (
	// CLI flags for the simulation
	seed         int64  // Seed for trip-duration draws
	horizon      int64  // Last minute at which customers are generated
	logLevel     string // Log verbosity level
	scenarioPath string // Optional YAML scenario file
	runs         int    // Number of independent replications
	traceLevel   string // Per-event trace level
	metricsFile  string // Prometheus textfile output path

	// CLI flags for the car-sharing service
	fleetSize       int   // Number of cars
	arrivalInterval int64 // Minutes between customer arrivals
	tripBase        int64 // Shortest trip length in minutes
	tripLevels      int   // Number of trip-length multipliers
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "carshare-sim",
	Short: "Discrete-event simulator for a car-sharing service",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the car-sharing simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		sc, err := resolveScenario(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if !trace.IsValidTraceLevel(sc.Trace) {
			logrus.Fatalf("Invalid trace level: %s", sc.Trace)
		}

		logrus.Infof("Starting simulation with fleet=%d, interval=%dm, trip=%dm x%d, horizon=%dm, seed=%d, runs=%d",
			sc.FleetSize, sc.ArrivalInterval, sc.TripBaseDuration, sc.TripDurationLevels, sc.Horizon, sc.Seed, sc.Runs)

		startTime := time.Now()
		if err := runScenario(sc, metricsFile, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// resolveScenario builds the scenario from the optional file, then lets
// every explicitly set flag override it.
func resolveScenario(cmd *cobra.Command) (Scenario, error) {
	sc := DefaultScenario()
	if scenarioPath != "" {
		loaded, err := LoadScenario(scenarioPath)
		if err != nil {
			return Scenario{}, err
		}
		sc = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fleet-size") {
		sc.FleetSize = fleetSize
	}
	if flags.Changed("arrival-interval") {
		sc.ArrivalInterval = arrivalInterval
	}
	if flags.Changed("trip-base") {
		sc.TripBaseDuration = tripBase
	}
	if flags.Changed("trip-levels") {
		sc.TripDurationLevels = tripLevels
	}
	if flags.Changed("horizon") {
		sc.Horizon = horizon
	}
	if flags.Changed("seed") {
		sc.Seed = seed
	}
	if flags.Changed("runs") {
		sc.Runs = runs
	}
	if flags.Changed("trace") {
		sc.Trace = traceLevel
	}
	return sc, nil
}

// runScenario runs sc and writes the report to w. A single run prints the
// per-run metrics; several runs print the replication summary instead.
// When metricsPath is set the results are also written as a Prometheus textfile.
func runScenario(sc Scenario, metricsPath string, w io.Writer) error {
	var (
		reg  *prometheus.Registry
		sink *promsink.Sink
	)
	if metricsPath != "" {
		reg = prometheus.NewRegistry()
		var err error
		if sink, err = promsink.NewSink(reg); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	if sc.Runs == 1 {
		s := sim.NewSeededSimulator(sc.Seed)
		s.SetFleetSize(sc.FleetSize)
		s.SetArrivalInterval(sc.ArrivalInterval)
		s.SetTripBaseDuration(sc.TripBaseDuration)
		s.SetTripDurationLevels(sc.TripDurationLevels)
		s.SetTraceLevel(trace.TraceLevel(sc.Trace))
		if err := s.Init(sc.Horizon); err != nil {
			return err
		}
		if err := s.Run(); err != nil {
			return err
		}

		r := s.Result()
		fmt.Fprintln(w, r.Summary())
		r.Print(w)
		if s.Trace().Config.Enabled() {
			printTraceSummary(w, trace.Summarize(s.Trace()))
		}
		if sink != nil {
			sink.RecordResult(0, r)
			sink.RecordTrace(s.Trace())
		}
	} else {
		results, summary, err := sim.RunReplications(sc.Config(), sc.Horizon, sim.NewSimulationKey(sc.Seed), sc.Runs)
		if err != nil {
			return err
		}
		printReplicationSummary(w, summary)
		if sink != nil {
			for i, r := range results {
				sink.RecordResult(i, r)
			}
		}
	}

	if sink != nil {
		if err := promsink.WriteTextfile(metricsPath, reg); err != nil {
			return fmt.Errorf("failed to write metrics file %s: %w", metricsPath, err)
		}
		logrus.Infof("Metrics written to %s", metricsPath)
	}
	return nil
}

func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Event Trace ===")
	fmt.Fprintf(w, "Events Traced        : %d\n", ts.TotalEvents)
	fmt.Fprintf(w, "Rented / Rejected    : %d / %d\n", ts.RentedCount, ts.RejectedCount)
	fmt.Fprintf(w, "Returned             : %d\n", ts.ReturnedCount)
	fmt.Fprintf(w, "Min Available Cars   : %d\n", ts.MinAvailableCars)
}

func printReplicationSummary(w io.Writer, s sim.ReplicationSummary) {
	fmt.Fprintln(w, "=== Replication Summary ===")
	fmt.Fprintf(w, "Runs                 : %d\n", s.Runs)
	fmt.Fprintf(w, "Unsatisfied (mean)   : %.2f ± %.2f\n", s.MeanUnsatisfied, s.StdDevUnsatisfied)
	fmt.Fprintf(w, "Unsatisfied (p50/p90): %.0f / %.0f\n", s.MedianUnsatisfied, s.P90Unsatisfied)
	fmt.Fprintf(w, "Unsatisfied (min/max): %d / %d\n", s.MinUnsatisfied, s.MaxUnsatisfied)
	fmt.Fprintf(w, "Unsatisfied Ratio    : %.2f%%\n", 100*s.MeanUnsatisfiedRatio)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags defines the run flags on cmd, bound to the package-level variables.
func registerRunFlags(cmd *cobra.Command) {
	def := DefaultScenario()

	cmd.Flags().Int64Var(&seed, "seed", def.Seed, "Seed for random trip durations")
	cmd.Flags().Int64Var(&horizon, "horizon", def.Horizon, "Last minute at which customers arrive")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario file; explicit flags override it")
	cmd.Flags().IntVar(&runs, "runs", def.Runs, "Number of independent replications")
	cmd.Flags().StringVar(&traceLevel, "trace", def.Trace, "Per-event trace level (none, events); single runs only")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write results to this Prometheus textfile")

	// Car-sharing service configs
	cmd.Flags().IntVar(&fleetSize, "fleet-size", def.FleetSize, "Number of cars")
	cmd.Flags().Int64Var(&arrivalInterval, "arrival-interval", def.ArrivalInterval, "Minutes between customer arrivals")
	cmd.Flags().Int64Var(&tripBase, "trip-base", def.TripBaseDuration, "Shortest trip length in minutes")
	cmd.Flags().IntVar(&tripLevels, "trip-levels", def.TripDurationLevels, "Number of trip-length multipliers")
}

// init sets up CLI flags and subcommands
func init() {
	registerRunFlags(runCmd)

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
