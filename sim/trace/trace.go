package trace

// TraceLevel controls the verbosity of run tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelFull captures every process, event, assignment and admission.
	TraceLevelFull TraceLevel = "full"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone: true,
	TraceLevelFull: true,
	"":             true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// SimulationTrace collects records during a run.
type SimulationTrace struct {
	Processes   []ProcessRecord
	Events      []EventRecord
	Assignments []AssignmentRecord
	Admissions  []ReadyRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace() *SimulationTrace {
	return &SimulationTrace{
		Processes:   make([]ProcessRecord, 0),
		Events:      make([]EventRecord, 0),
		Assignments: make([]AssignmentRecord, 0),
		Admissions:  make([]ReadyRecord, 0),
	}
}

// RecordProcess appends a process creation record.
func (st *SimulationTrace) RecordProcess(record ProcessRecord) {
	st.Processes = append(st.Processes, record)
}

// RecordEvent appends an event creation record.
func (st *SimulationTrace) RecordEvent(record EventRecord) {
	st.Events = append(st.Events, record)
}

// RecordAssignment appends a CPU assignment record.
func (st *SimulationTrace) RecordAssignment(record AssignmentRecord) {
	st.Assignments = append(st.Assignments, record)
}

// RecordAdmission appends a ready-queue admission record.
func (st *SimulationTrace) RecordAdmission(record ReadyRecord) {
	st.Admissions = append(st.Admissions, record)
}
