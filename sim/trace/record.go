// Package trace provides verbose-trace recording for scheduler runs.
// It has no dependencies on sim/ and stores pure data types.
package trace

// ProcessRecord captures the creation of a process.
type ProcessRecord struct {
	PID         int
	TypeName    string
	TypeIndex   int
	Clock       int64 // arrival time
	ServiceTime int64
	BurstTime   int64
	IOTime      int64
}

// EventRecord captures the creation of an event.
type EventRecord struct {
	EventID int64
	Kind    string
	PID     int
	Clock   int64 // the event's timestamp, not the time it was created
}

// AssignmentRecord captures a process being loaded onto a CPU.
type AssignmentRecord struct {
	PID   int
	CPU   int
	Clock int64
}

// ReadyRecord captures a process being admitted to the ready queue.
type ReadyRecord struct {
	PID   int
	Clock int64
}
