package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/stjohni933/CPU-Scheduler-Simulation/sim"
	"github.com/stjohni933/CPU-Scheduler-Simulation/sim/trace"
	"github.com/stjohni933/CPU-Scheduler-Simulation/sim/trial"
)

// writeReport prints the human-readable end-of-run report.
func writeReport(w io.Writer, snap sim.Snapshot) {
	fmt.Fprintln(w, strings.Repeat("*", 68))
	fmt.Fprintf(w, "Simulation completed execution at time %d\n", snap.Elapsed)
	fmt.Fprintf(w, "%d events processed\n", snap.EventsProcessed)
	fmt.Fprintf(w, "Event Queue final: %d average: %.3f\n", snap.FinalEventQueueLen, snap.AvgEventQueueLen)
	fmt.Fprintf(w, "Ready Queue final: %d average: %.3f\n", snap.FinalReadyQueueLen, snap.AvgReadyQueueLen)
	for _, t := range snap.Types {
		fmt.Fprintf(w, "%d processes of type %s completed.\n", t.Completed, t.Name)
		fmt.Fprintf(w, "Throughput: %.3f\n", t.Throughput)
		fmt.Fprintf(w, "Turnaround times: last: %d, longest: %d, average: %.3f\n",
			t.LastTurnaround, t.LongestTurnaround, t.AvgTurnaround)
	}
	for _, c := range snap.CPUs {
		active, idle, sw := c.Fractions(snap.Elapsed)
		fmt.Fprintf(w, "CPU#%d: %d active (%.3f%%), %d context switch (%.3f%%), %d idle (%.3f%%).\n",
			c.Index, c.Active, 100*active, c.Switch, 100*sw, c.Idle, 100*idle)
	}
}

// batchFields renders the snapshot as the space-separated batch columns:
// run totals, then completed/index/throughput/last/longest/average per
// type, then active/switch/idle per CPU.
func batchFields(snap sim.Snapshot) []string {
	f := []string{
		fmt.Sprint(snap.Elapsed),
		fmt.Sprint(snap.EventsProcessed),
		fmt.Sprint(snap.FinalEventQueueLen),
		fmt.Sprintf("%.3f", snap.AvgEventQueueLen),
		fmt.Sprint(snap.FinalReadyQueueLen),
		fmt.Sprintf("%.3f", snap.AvgReadyQueueLen),
	}
	for _, t := range snap.Types {
		f = append(f,
			fmt.Sprint(t.Completed),
			fmt.Sprint(t.Index),
			fmt.Sprintf("%.3f", t.Throughput),
			fmt.Sprint(t.LastTurnaround),
			fmt.Sprint(t.LongestTurnaround),
			fmt.Sprintf("%.3f", t.AvgTurnaround),
		)
	}
	for _, c := range snap.CPUs {
		f = append(f, fmt.Sprint(c.Active), fmt.Sprint(c.Switch), fmt.Sprint(c.Idle))
	}
	return f
}

// writeBatchLine prints the whole snapshot on one line.
func writeBatchLine(w io.Writer, snap sim.Snapshot) {
	fmt.Fprintln(w, strings.Join(batchFields(snap), " "))
}

// writeTraceSummary prints trace counts with event kinds and CPUs in a
// stable order.
func writeTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Processes created: %d\n", s.ProcessesCreated)
	fmt.Fprintf(w, "Events scheduled: %d\n", s.EventsScheduled)
	kinds := make([]string, 0, len(s.EventsByKind))
	for k := range s.EventsByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %s: %d\n", k, s.EventsByKind[k])
	}
	fmt.Fprintf(w, "CPU assignments: %d\n", s.Assignments)
	cpus := make([]int, 0, len(s.AssignmentsByCPU))
	for c := range s.AssignmentsByCPU {
		cpus = append(cpus, c)
	}
	sort.Ints(cpus)
	for _, c := range cpus {
		fmt.Fprintf(w, "  CPU#%d: %d\n", c, s.AssignmentsByCPU[c])
	}
	fmt.Fprintf(w, "Ready-queue admissions: %d\n", s.ReadyAdmissions)
}

// writeSweepResult prints one trial as "run-id study value <batch columns>".
func writeSweepResult(w io.Writer, r trial.Result) {
	fmt.Fprintf(w, "%s %s %d %s\n", r.RunID, r.Study, r.Value, strings.Join(batchFields(r.Snapshot), " "))
}

// writeSweepSummary prints the cross-trial statistics of one study.
func writeSweepSummary(w io.Writer, s trial.Summary) {
	fmt.Fprintf(w, "# %s: %d trials, throughput %.6f ± %.6f, utilization %.3f ± %.3f, best value %d\n",
		s.Study, s.Trials, s.MeanThroughput, s.StdThroughput, s.MeanUtilization, s.StdUtilization, s.BestValue)
}
