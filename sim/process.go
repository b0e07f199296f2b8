// Defines the Process record that models a single simulated job, and the
// ProcessTable arena that owns every process created during a run.

package sim

import "fmt"

// ProcessID is the index of a process in its ProcessTable.
// IDs are assigned in ascending order of creation.
type ProcessID int

// Process models a single job's lifecycle in the simulation.
// Each process has:
// - immutable demands drawn at creation (service, burst, I/O time)
// - remaining counters decremented while it holds a CPU
// - the index of the CPU hosting it, if any
// - a completion timestamp set once at exit
type Process struct {
	ID        ProcessID
	TypeName  string
	TypeIndex int

	ServiceTime int64 // total CPU service required
	BurstTime   int64 // CPU time between I/O faults
	IOTime      int64 // duration of one I/O service
	ArrivalTime int64

	RemainingService int64
	RemainingBurst   int64 // reset to BurstTime on every I/O fault

	CPU   int  // most recent hosting CPU, -1 before the first dispatch
	OnCPU bool // true between dispatch and the processing of its departure event

	Completed      bool
	CompletionTime int64

	// Injected processes were placed by Simulator.InjectArrival and do not
	// extend their type's arrival stream.
	Injected bool
}

// newProcess creates a process with its remaining counters primed.
func newProcess(pt ProcessType, service, burst, io, arrival int64) Process {
	return Process{
		TypeName:         pt.Name,
		TypeIndex:        pt.Index,
		ServiceTime:      service,
		BurstTime:        burst,
		IOTime:           io,
		ArrivalTime:      arrival,
		RemainingService: service,
		RemainingBurst:   burst,
		CPU:              -1,
	}
}

// Turnaround returns completion minus arrival. ok is false until the
// process has completed.
func (p *Process) Turnaround() (turnaround int64, ok bool) {
	if !p.Completed {
		return 0, false
	}
	return p.CompletionTime - p.ArrivalTime, true
}

// consume charges run ticks of CPU service.
func (p *Process) consume(run int64) {
	if run > p.RemainingService {
		panic(fmt.Sprintf("process %d: consume %d exceeds remaining service %d", p.ID, run, p.RemainingService))
	}
	p.RemainingService -= run
}

func (p Process) String() string {
	return fmt.Sprintf("Proc(%d) Type: %s(%d), Arrival: %d, Service: %d/%d, Burst: %d/%d, IO: %d",
		p.ID, p.TypeName, p.TypeIndex, p.ArrivalTime, p.RemainingService, p.ServiceTime,
		p.RemainingBurst, p.BurstTime, p.IOTime)
}

// ProcessTable is the arena that owns every process of a run. Events and
// the ready queue refer to processes by ProcessID.
type ProcessTable struct {
	procs []*Process
}

// Add stores p, assigns its ID and returns the stored record.
func (t *ProcessTable) Add(p Process) *Process {
	p.ID = ProcessID(len(t.procs))
	stored := &p
	t.procs = append(t.procs, stored)
	return stored
}

// Get returns the process with the given ID. Panics on an unknown ID,
// which can only come from a corrupted event or queue.
func (t *ProcessTable) Get(id ProcessID) *Process {
	if id < 0 || int(id) >= len(t.procs) {
		panic(fmt.Sprintf("ProcessTable.Get: unknown process %d", id))
	}
	return t.procs[id]
}

// Len returns the number of processes ever created.
func (t *ProcessTable) Len() int {
	return len(t.procs)
}

// Each calls fn for every process in ID order.
func (t *ProcessTable) Each(fn func(p *Process)) {
	for _, p := range t.procs {
		fn(p)
	}
}
