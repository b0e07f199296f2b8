package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stjohni933/CPU-Scheduler-Simulation/sim/trial"
	"github.com/stjohni933/CPU-Scheduler-Simulation/sim/workload"
)

var (
	studyName string // Built-in study: quantum or cpus
	planFile  string // YAML study plan
)

// selectStudies resolves --study and --plan into the list of studies to run.
// Exactly one of them must be set.
func selectStudies(name, plan string) ([]trial.Study, error) {
	switch {
	case name != "" && plan != "":
		return nil, fmt.Errorf("--study and --plan are mutually exclusive")
	case plan != "":
		p, err := trial.LoadPlan(plan)
		if err != nil {
			return nil, err
		}
		return p.Studies, nil
	case name == "quantum":
		return []trial.Study{trial.QuantumStudy()}, nil
	case name == "cpus":
		return []trial.Study{trial.CPUStudy()}, nil
	case name == "":
		return nil, fmt.Errorf("one of --study or --plan is required")
	default:
		return nil, fmt.Errorf("unknown study %q; valid: quantum, cpus", name)
	}
}

// sweepCmd runs every value of one or more studies and prints a batch line
// per trial followed by a summary per study.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the simulation repeatedly over a parameter study",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		studies, err := selectStudies(studyName, planFile)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		types, err := workload.LoadProcgenFile(procgenFile)
		if err != nil {
			logrus.Fatalf("unable to load process types; %v", err)
		}
		base := buildConfig(types)

		for _, study := range studies {
			results, err := trial.Run(base, study)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			for _, r := range results {
				writeSweepResult(os.Stdout, r)
			}
			writeSweepSummary(os.Stdout, trial.Summarize(study.Name, results))
		}
	},
}

func init() {
	registerSystemFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&studyName, "study", "", "Built-in study to run (quantum, cpus)")
	sweepCmd.Flags().StringVar(&planFile, "plan", "", "YAML study plan file")

	rootCmd.AddCommand(sweepCmd)
}
