package sim

import (
	"container/heap"
	"fmt"
)

// EventKind identifies what happens to a process at an event's timestamp.
type EventKind int

const (
	NewProcess      EventKind = iota // a process enters the system
	IOFault                          // a process leaves its CPU for I/O service
	IOComplete                       // I/O service finished, the process wants a CPU again
	ProcessComplete                  // a process finished all its service and leaves the system
	QuantumExpired                   // a process was preempted at the end of its quantum
)

var eventKindNames = [...]string{
	NewProcess:      "New Proc",
	IOFault:         "I/O Fault",
	IOComplete:      "I/O Complete",
	ProcessComplete: "Proc Complete",
	QuantumExpired:  "Quantum Expired",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}

// Departure reports that a process vacates a CPU. It is always one of
// QuantumExpired, IOFault or ProcessComplete.
func (k EventKind) Departure() bool {
	return k == QuantumExpired || k == IOFault || k == ProcessComplete
}

// Event is an immutable, time-stamped record of something that will happen
// to a process. ID is assigned by the simulator in creation order and only
// breaks ties between equal timestamps.
type Event struct {
	ID   int64
	Time int64
	Kind EventKind
	PID  ProcessID
}

func (e Event) String() string {
	return fmt.Sprintf("Event ID:%d, Type: %s, Process: %d, Timestamp: %d", e.ID, e.Kind, e.PID, e.Time)
}

// EventQueue implements heap.Interface and orders events by timestamp,
// then by event ID so equal timestamps pop in creation order.
// Timestamps are compared directly, never by subtraction.
type EventQueue []Event

func (eq EventQueue) Len() int { return len(eq) }

func (eq EventQueue) Less(i, j int) bool {
	if eq[i].Time != eq[j].Time {
		return eq[i].Time < eq[j].Time
	}
	return eq[i].ID < eq[j].ID
}

func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(Event))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// PushEvent adds ev to the queue.
func (eq *EventQueue) PushEvent(ev Event) {
	heap.Push(eq, ev)
}

// PopEvent removes and returns the earliest event. ok is false when the
// queue is empty.
func (eq *EventQueue) PopEvent() (ev Event, ok bool) {
	if eq.Len() == 0 {
		return Event{}, false
	}
	return heap.Pop(eq).(Event), true
}
