package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration error returned from
// Config.Validate and NewSimulator.
var ErrInvalidConfig = errors.New("invalid simulation config")

// ProcessType describes one generator of synthetic processes. The four
// means are in ticks. The optional *Dist fields override the default
// distribution of the corresponding draw.
type ProcessType struct {
	Name             string
	Index            int
	MeanCPU          int64
	MeanBurst        int64
	MeanInterarrival int64
	MeanIO           int64

	CPUDist     *DistSpec
	BurstDist   *DistSpec
	ArrivalDist *DistSpec
	IODist      *DistSpec
}

// Config groups the parameters of a single simulation run.
type Config struct {
	StopTime   int64 // clock threshold; the run halts once the clock exceeds it (must be > 0)
	NumCPUs    int   // size of the CPU pool (must be >= 1)
	Quantum    int64 // preemption quantum in ticks, 0 disables preemption
	SwitchCost int64 // context-switch overhead charged on every dispatch
	IOFaults   bool  // whether processes leave the CPU for I/O service
	Seed       int64 // master seed for PartitionedRNG

	// LegacySwitchAccounting folds the switch cost into active time as well
	// as switch time, matching historical batch output. Off by default, which
	// keeps active + idle + switch equal to each CPU's accounted time.
	LegacySwitchAccounting bool

	// DispatchOnRelease hands a CPU freed by an IOFault or ProcessComplete
	// to the head of the ready queue straight away.
	DispatchOnRelease bool

	Types []ProcessType
}

// Policy returns the CPU service policy implied by the configuration.
func (c Config) Policy() Policy {
	return Policy{IOFaults: c.IOFaults, Preemption: c.Quantum > 0}
}

// Validate checks the configuration before a run.
func (c Config) Validate() error {
	if c.StopTime <= 0 {
		return fmt.Errorf("%w: stop time must be positive, got %d", ErrInvalidConfig, c.StopTime)
	}
	if c.NumCPUs < 1 {
		return fmt.Errorf("%w: number of CPUs must be at least 1, got %d", ErrInvalidConfig, c.NumCPUs)
	}
	if c.Quantum < 0 {
		return fmt.Errorf("%w: quantum must be non-negative, got %d", ErrInvalidConfig, c.Quantum)
	}
	if c.SwitchCost < 0 {
		return fmt.Errorf("%w: switch cost must be non-negative, got %d", ErrInvalidConfig, c.SwitchCost)
	}
	if len(c.Types) == 0 {
		return fmt.Errorf("%w: at least one process type is required", ErrInvalidConfig)
	}
	for i, pt := range c.Types {
		if err := pt.validate(i, c.IOFaults); err != nil {
			return err
		}
	}
	return nil
}

func (pt ProcessType) validate(pos int, ioFaults bool) error {
	prefix := fmt.Sprintf("process type[%d] %q", pos, pt.Name)
	if pt.Index != pos {
		return fmt.Errorf("%w: %s: index %d does not match its position", ErrInvalidConfig, prefix, pt.Index)
	}
	if _, err := pt.sampler("cpu", pt.CPUDist, DistExponential, pt.MeanCPU); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, prefix, err)
	}
	if _, err := pt.sampler("interarrival", pt.ArrivalDist, DistExponential, pt.MeanInterarrival); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, prefix, err)
	}
	if !ioFaults {
		return nil
	}
	if _, err := pt.sampler("burst", pt.BurstDist, DistUniform, pt.MeanBurst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, prefix, err)
	}
	if _, err := pt.sampler("io", pt.IODist, DistExponential, pt.MeanIO); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, prefix, err)
	}
	return nil
}

// sampler builds the sampler for one draw, falling back to the default
// distribution family parameterized by mean.
func (pt ProcessType) sampler(what string, override *DistSpec, family string, mean int64) (DurationSampler, error) {
	spec := DistSpec{Type: family, Mean: mean}
	if override != nil {
		spec = *override
	}
	s, err := NewDurationSampler(spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return s, nil
}
