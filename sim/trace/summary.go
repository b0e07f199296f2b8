package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	ProcessesCreated int
	EventsScheduled  int
	Assignments      int
	ReadyAdmissions  int
	EventsByKind     map[string]int // event kind → count
	AssignmentsByCPU map[int]int    // CPU index → count of dispatches
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		EventsByKind:     make(map[string]int),
		AssignmentsByCPU: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.ProcessesCreated = len(st.Processes)
	summary.EventsScheduled = len(st.Events)
	summary.Assignments = len(st.Assignments)
	summary.ReadyAdmissions = len(st.Admissions)

	for _, e := range st.Events {
		summary.EventsByKind[e.Kind]++
	}
	for _, a := range st.Assignments {
		summary.AssignmentsByCPU[a.CPU]++
	}
	return summary
}
