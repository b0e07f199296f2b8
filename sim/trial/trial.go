// Package trial runs a simulation repeatedly while varying one parameter,
// and summarizes the outcomes across runs.
package trial

import (
	"bytes"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/stjohni933/CPU-Scheduler-Simulation/sim"
)

// Parameter names the configuration field a study varies.
type Parameter string

const (
	ParamQuantum    Parameter = "quantum"
	ParamCPUs       Parameter = "cpus"
	ParamSwitchTime Parameter = "switch-time"
)

// Study is one series of runs over the values of a single parameter.
type Study struct {
	Name      string    `yaml:"name"`
	Parameter Parameter `yaml:"parameter"`
	Values    []int64   `yaml:"values"`
}

// Plan is the YAML form of a list of studies.
type Plan struct {
	Studies []Study `yaml:"studies"`
}

// QuantumStudy varies the preemption quantum, starting with preemption off.
func QuantumStudy() Study {
	return Study{
		Name:      "quantum",
		Parameter: ParamQuantum,
		Values:    []int64{0, 2, 5, 10, 15, 20, 30, 40, 50, 60, 70, 80, 90, 100, 125, 150, 175, 200},
	}
}

// CPUStudy varies the size of the CPU pool.
func CPUStudy() Study {
	return Study{
		Name:      "cpus",
		Parameter: ParamCPUs,
		Values:    []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 15, 20},
	}
}

// Validate checks the parameter name and that there is something to run.
func (s Study) Validate() error {
	switch s.Parameter {
	case ParamQuantum, ParamCPUs, ParamSwitchTime:
	default:
		return fmt.Errorf("study %q: unknown parameter %q; valid: quantum, cpus, switch-time", s.Name, s.Parameter)
	}
	if len(s.Values) == 0 {
		return fmt.Errorf("study %q: at least one value is required", s.Name)
	}
	return nil
}

// Apply returns a copy of base with the study parameter set to v.
func (s Study) Apply(base sim.Config, v int64) sim.Config {
	cfg := base
	switch s.Parameter {
	case ParamQuantum:
		cfg.Quantum = v
	case ParamCPUs:
		cfg.NumCPUs = int(v)
	case ParamSwitchTime:
		cfg.SwitchCost = v
	}
	return cfg
}

// Result is the outcome of one run of a study.
type Result struct {
	RunID    uuid.UUID
	Study    string
	Value    int64
	Snapshot sim.Snapshot
}

// Run executes one simulation per study value, sequentially, each with its
// own Simulator seeded from base.Seed. It stops at the first invalid
// configuration.
func Run(base sim.Config, study Study) ([]Result, error) {
	if err := study.Validate(); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(study.Values))
	for _, v := range study.Values {
		cfg := study.Apply(base, v)
		s, err := sim.NewSimulator(cfg, nil)
		if err != nil {
			return nil, fmt.Errorf("study %q, %s=%d: %w", study.Name, study.Parameter, v, err)
		}
		res := Result{RunID: uuid.New(), Study: study.Name, Value: v}
		log := logrus.WithFields(logrus.Fields{"run_id": res.RunID, "study": study.Name, string(study.Parameter): v})
		log.Debug("starting trial")

		s.SeedArrivals()
		s.Run()
		res.Snapshot = s.Snapshot()

		log.WithFields(logrus.Fields{
			"throughput":  res.Snapshot.TotalThroughput(),
			"utilization": res.Snapshot.MeanUtilization(),
		}).Info("trial finished")
		results = append(results, res)
	}
	return results, nil
}

// Summary aggregates the results of one study.
type Summary struct {
	Study           string
	Trials          int
	MeanThroughput  float64
	StdThroughput   float64
	MeanUtilization float64
	StdUtilization  float64
	BestValue       int64 // study value with the highest total throughput
}

// Summarize computes mean and standard deviation of throughput and CPU
// utilization across results. Fewer than two results give a zero deviation.
func Summarize(study string, results []Result) Summary {
	sum := Summary{Study: study, Trials: len(results)}
	if len(results) == 0 {
		return sum
	}
	throughput := make([]float64, len(results))
	utilization := make([]float64, len(results))
	best := 0
	for i, r := range results {
		throughput[i] = r.Snapshot.TotalThroughput()
		utilization[i] = r.Snapshot.MeanUtilization()
		if throughput[i] > throughput[best] {
			best = i
		}
	}
	sum.BestValue = results[best].Value
	sum.MeanThroughput = stat.Mean(throughput, nil)
	sum.MeanUtilization = stat.Mean(utilization, nil)
	if len(results) > 1 {
		sum.StdThroughput = stat.StdDev(throughput, nil)
		sum.StdUtilization = stat.StdDev(utilization, nil)
	}
	return sum
}

// LoadPlan reads a YAML study plan. Unknown keys are rejected and every
// study is validated.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading study plan: %w", err)
	}
	var plan Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&plan); err != nil {
		return nil, fmt.Errorf("parsing study plan: %w", err)
	}
	if len(plan.Studies) == 0 {
		return nil, fmt.Errorf("study plan %s has no studies", path)
	}
	for _, s := range plan.Studies {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return &plan, nil
}
