package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stjohni933/CPU-Scheduler-Simulation/sim"
	"github.com/stjohni933/CPU-Scheduler-Simulation/sim/trace"
	"github.com/stjohni933/CPU-Scheduler-Simulation/sim/workload"
)

var (
	// CLI flags for the simulated system
	stopTime      int64  // Clock threshold after which the run halts (in ticks)
	procgenFile   string // Process generation file (legacy text or YAML)
	numCPUs       int    // Number of CPUs in the pool
	quantum       int64  // Preemption quantum, 0 disables preemption
	switchTime    int64  // Context-switch cost charged on every dispatch
	noIOFaults    bool   // Disable I/O faults
	seed          int64  // Seed for all random draws
	legacyAcct    bool   // Fold switch cost into active time as well
	dispatchOnRel bool   // Dispatch the ready-queue head when a CPU is released

	// CLI flags for output
	batchOutput bool   // Single-line batch report
	verbose     bool   // Log every creation, event, assignment and admission
	logLevel    string // Log verbosity level
	traceLevel  string // Trace recording level (none, full)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cpu-scheduler-sim",
	Short: "Discrete-event simulator for multi-CPU process scheduling",
}

// setLogLevel applies the --log flag.
func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// buildConfig assembles a simulation config from the system flags and the
// process types of the procgen file.
func buildConfig(types []sim.ProcessType) sim.Config {
	return sim.Config{
		StopTime:               stopTime,
		NumCPUs:                numCPUs,
		Quantum:                quantum,
		SwitchCost:             switchTime,
		IOFaults:               !noIOFaults,
		Seed:                   seed,
		LegacySwitchAccounting: legacyAcct,
		DispatchOnRelease:      dispatchOnRel,
		Types:                  types,
	}
}

// observerFor picks the observers requested by --verbose and --trace-level.
// The returned TraceObserver is nil unless full tracing is on.
func observerFor(verbose bool, level trace.TraceLevel) (sim.Observer, *sim.TraceObserver) {
	var obs sim.MultiObserver
	if verbose {
		obs = append(obs, sim.LogObserver{})
	}
	var tr *sim.TraceObserver
	if level == trace.TraceLevelFull {
		tr = sim.NewTraceObserver()
		obs = append(obs, tr)
	}
	if len(obs) == 0 {
		return nil, nil
	}
	return obs, tr
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduler simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		if verbose && logrus.GetLevel() < logrus.InfoLevel {
			logrus.SetLevel(logrus.InfoLevel)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s (valid: none, full)", traceLevel)
		}

		types, err := workload.LoadProcgenFile(procgenFile)
		if err != nil {
			logrus.Fatalf("unable to load process types; %v", err)
		}
		cfg := buildConfig(types)
		observer, tracer := observerFor(verbose, trace.TraceLevel(traceLevel))

		s, err := sim.NewSimulator(cfg, observer)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Starting simulation with %d process types from %s", len(types), procgenFile)

		startTime := time.Now()
		s.SeedArrivals()
		s.Run()
		snap := s.Snapshot()

		if batchOutput {
			writeBatchLine(os.Stdout, snap)
		} else {
			writeReport(os.Stdout, snap)
		}
		if tracer != nil {
			writeTraceSummary(os.Stdout, trace.Summarize(tracer.Trace))
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerSystemFlags adds the flags shared by run and sweep.
func registerSystemFlags(cmd *cobra.Command) {
	cmd.Flags().Int64VarP(&stopTime, "stop-time", "t", 0, "Simulation stop time (in ticks)")
	cmd.Flags().StringVarP(&procgenFile, "procgen-file", "f", "pg2.txt", "Process generation file (text or .yaml)")
	cmd.Flags().IntVarP(&numCPUs, "num-cpus", "c", 1, "Number of CPUs")
	cmd.Flags().Int64VarP(&quantum, "quantum", "q", 0, "Preemption quantum (0 disables preemption)")
	cmd.Flags().Int64VarP(&switchTime, "switch-time", "w", 0, "Context-switch cost (in ticks)")
	cmd.Flags().BoolVarP(&noIOFaults, "no-io-faults", "n", false, "Disable I/O faults")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random process generation")
	cmd.Flags().BoolVar(&legacyAcct, "legacy-accounting", false, "Count switch cost as active time too")
	cmd.Flags().BoolVar(&dispatchOnRel, "dispatch-on-release", false, "Hand a released CPU to the ready-queue head")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	_ = cmd.MarkFlagRequired("stop-time")
}

// init sets up CLI flags and subcommands
func init() {
	registerSystemFlags(runCmd)
	runCmd.Flags().BoolVarP(&batchOutput, "batch", "b", false, "Print a single-line batch report")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every process creation, event, assignment and admission")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Trace recording level (none, full)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
