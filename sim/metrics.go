// Read-only statistics exposed to reporters at the end of a run.

package sim

// CPUStats is the time accounting of one CPU. With the default accounting
// Active + Idle + Switch == AccountedUntil.
type CPUStats struct {
	Index          int
	Active         int64
	Idle           int64
	Switch         int64
	AccountedUntil int64
}

// Fractions returns the active, idle and switch shares of elapsed ticks.
func (s CPUStats) Fractions(elapsed int64) (active, idle, sw float64) {
	if elapsed <= 0 {
		return 0, 0, 0
	}
	e := float64(elapsed)
	return float64(s.Active) / e, float64(s.Idle) / e, float64(s.Switch) / e
}

// TypeStats is the completion statistics of one process type.
type TypeStats struct {
	Name              string
	Index             int
	Created           int64
	Completed         int64
	Throughput        float64 // completions per tick
	LastTurnaround    int64
	LongestTurnaround int64
	AvgTurnaround     float64
}

// Snapshot aggregates statistics about the simulation for final
// reporting. The simulator performs no formatting.
type Snapshot struct {
	Elapsed         int64 // simulation clock when the snapshot was taken
	EventsProcessed int64

	FinalEventQueueLen int
	AvgEventQueueLen   float64
	FinalReadyQueueLen int
	AvgReadyQueueLen   float64

	CPUs  []CPUStats
	Types []TypeStats
}

// TotalThroughput sums the throughput of every process type.
func (s Snapshot) TotalThroughput() float64 {
	var total float64
	for _, t := range s.Types {
		total += t.Throughput
	}
	return total
}

// MeanUtilization returns the mean active fraction across CPUs.
func (s Snapshot) MeanUtilization() float64 {
	if len(s.CPUs) == 0 {
		return 0
	}
	var sum float64
	for _, c := range s.CPUs {
		active, _, _ := c.Fractions(s.Elapsed)
		sum += active
	}
	return sum / float64(len(s.CPUs))
}
