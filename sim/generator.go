package sim

import (
	"fmt"
	"math/rand"
)

// Generator is the timing model of one process type: it draws arrival
// gaps and process demands, and keeps the type's completion statistics.
type Generator struct {
	Type ProcessType

	rng      *rand.Rand
	cpu      DurationSampler
	burst    DurationSampler // nil when I/O faults are disabled
	arrival  DurationSampler
	io       DurationSampler // nil when I/O faults are disabled
	ioFaults bool

	Created           int64
	Completed         int64
	LastTurnaround    int64
	LongestTurnaround int64
	TurnaroundSum     int64
}

// NewGenerator builds the samplers for pt. Burst and I/O samplers are only
// built when ioFaults is set.
func NewGenerator(pt ProcessType, ioFaults bool, rng *rand.Rand) (*Generator, error) {
	g := &Generator{Type: pt, rng: rng, ioFaults: ioFaults}
	var err error
	if g.cpu, err = pt.sampler("cpu", pt.CPUDist, DistExponential, pt.MeanCPU); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, pt.Name, err)
	}
	if g.arrival, err = pt.sampler("interarrival", pt.ArrivalDist, DistExponential, pt.MeanInterarrival); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, pt.Name, err)
	}
	if ioFaults {
		if g.burst, err = pt.sampler("burst", pt.BurstDist, DistUniform, pt.MeanBurst); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, pt.Name, err)
		}
		if g.io, err = pt.sampler("io", pt.IODist, DistExponential, pt.MeanIO); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, pt.Name, err)
		}
	}
	return g, nil
}

// positive resamples s until it yields a strictly positive duration.
func (g *Generator) positive(s DurationSampler) int64 {
	for {
		if d := s.Sample(g.rng); d > 0 {
			return d
		}
	}
}

// NextInterarrivalGap returns the strictly positive gap until the next
// arrival of this type.
func (g *Generator) NextInterarrivalGap() int64 {
	return g.positive(g.arrival)
}

// Spawn creates the next process of this type arriving at arrival.
// The returned process has no ID until it is added to a ProcessTable.
func (g *Generator) Spawn(arrival int64) Process {
	service := g.positive(g.cpu)
	var burst, io int64
	if g.ioFaults {
		io = g.positive(g.io)
		burst = g.positive(g.burst)
	}
	g.Created++
	return newProcess(g.Type, service, burst, io, arrival)
}

// RecordCompletion folds one completed process's turnaround into the
// type's statistics.
func (g *Generator) RecordCompletion(turnaround int64) {
	g.LastTurnaround = turnaround
	g.LongestTurnaround = max(g.LongestTurnaround, turnaround)
	g.TurnaroundSum += turnaround
	g.Completed++
}

// AverageTurnaround returns the mean turnaround, or 0 before any completion.
func (g *Generator) AverageTurnaround() float64 {
	if g.Completed == 0 {
		return 0
	}
	return float64(g.TurnaroundSum) / float64(g.Completed)
}

// Throughput returns completions per tick over elapsed ticks, or 0 for a
// non-positive elapsed time.
func (g *Generator) Throughput(elapsed int64) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(g.Completed) / float64(elapsed)
}

// Stats returns a copy of the type's statistics at elapsed ticks.
func (g *Generator) Stats(elapsed int64) TypeStats {
	return TypeStats{
		Name:              g.Type.Name,
		Index:             g.Type.Index,
		Created:           g.Created,
		Completed:         g.Completed,
		Throughput:        g.Throughput(elapsed),
		LastTurnaround:    g.LastTurnaround,
		LongestTurnaround: g.LongestTurnaround,
		AvgTurnaround:     g.AverageTurnaround(),
	}
}
