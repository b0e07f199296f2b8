// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds simulation time, system state, and the event loop.
// It exclusively owns every piece of mutable state of a run; nothing is shared
// between simulators.
type Simulator struct {
	Clock    int64
	StopTime int64
	// EventQueue has all pending events, ordered by (timestamp, event ID)
	EventQueue EventQueue
	// ReadyQ holds processes waiting for an idle CPU, first come first served
	ReadyQ     *ReadyQueue
	CPUs       []*CPU
	Generators []*Generator
	Processes  *ProcessTable

	config      Config
	observer    Observer
	nextEventID int64

	EventsProcessed int64
	iterations      int64
	sumEventQ       int64
	sumReadyQ       int64
}

// NewSimulator validates cfg and builds the CPU pool and one generator per
// process type. Each generator draws from its own RNG subsystem derived
// from cfg.Seed. A nil observer disables the verbose trace.
func NewSimulator(cfg Config, observer Observer) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if observer == nil {
		observer = nopObserver{}
	}
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))

	s := &Simulator{
		Clock:      0,
		StopTime:   cfg.StopTime,
		EventQueue: make(EventQueue, 0),
		ReadyQ:     &ReadyQueue{},
		CPUs:       make([]*CPU, cfg.NumCPUs),
		Generators: make([]*Generator, len(cfg.Types)),
		Processes:  &ProcessTable{},
		config:     cfg,
		observer:   observer,
	}
	policy := cfg.Policy()
	for i := range s.CPUs {
		s.CPUs[i] = NewCPU(i, cfg.Quantum, cfg.SwitchCost, policy, cfg.LegacySwitchAccounting)
	}
	for i, pt := range cfg.Types {
		g, err := NewGenerator(pt, cfg.IOFaults, rng.ForSubsystem(SubsystemProcessType(i)))
		if err != nil {
			return nil, err
		}
		s.Generators[i] = g
	}
	return s, nil
}

// Policy returns the CPU service policy of this run.
func (sim *Simulator) Policy() Policy {
	return sim.config.Policy()
}

// Schedule pushes a new event for pid into the EventQueue and returns it.
func (sim *Simulator) Schedule(kind EventKind, at int64, pid ProcessID) Event {
	ev := Event{ID: sim.nextEventID, Time: at, Kind: kind, PID: pid}
	sim.nextEventID++
	sim.EventQueue.PushEvent(ev)
	sim.observer.EventScheduled(ev)
	return ev
}

// spawn creates the next process of type typeIdx arriving at arrival and
// schedules its NewProcess event.
func (sim *Simulator) spawn(typeIdx int, arrival int64, injected bool) *Process {
	p := sim.Processes.Add(sim.Generators[typeIdx].Spawn(arrival))
	p.Injected = injected
	sim.observer.ProcessCreated(*p)
	sim.Schedule(NewProcess, arrival, p.ID)
	return p
}

// SeedArrivals schedules the first arrival of every process type at that
// type's first interarrival gap. Each NewProcess event then schedules the
// next arrival of its type.
func (sim *Simulator) SeedArrivals() {
	for i, g := range sim.Generators {
		arrival := sim.Clock + g.NextInterarrivalGap()
		logrus.Debugf("Added initial process generation event for type %s(%d) at time %d", g.Type.Name, i, arrival)
		sim.spawn(i, arrival, false)
	}
}

// InjectArrival places a single process of type typeIdx arriving at the
// given time. Injected processes do not schedule a successor.
func (sim *Simulator) InjectArrival(typeIdx int, at int64) (ProcessID, error) {
	if typeIdx < 0 || typeIdx >= len(sim.Generators) {
		return 0, fmt.Errorf("unknown process type index %d", typeIdx)
	}
	if at < sim.Clock {
		return 0, fmt.Errorf("arrival at %d is before the current clock %d", at, sim.Clock)
	}
	return sim.spawn(typeIdx, at, true).ID, nil
}

// Run processes events in timestamp order until the clock passes StopTime
// or no events remain. The event that moves the clock past StopTime is
// still fully processed.
func (sim *Simulator) Run() {
	logrus.Infof("Starting simulation: %d CPUs, policy=%s, quantum=%d, switch cost=%d, stop time=%d",
		len(sim.CPUs), sim.Policy(), sim.config.Quantum, sim.config.SwitchCost, sim.StopTime)
	for sim.Clock <= sim.StopTime && sim.EventQueue.Len() > 0 {
		sim.sumEventQ += int64(sim.EventQueue.Len())
		// get the next event to be simulated
		ev, _ := sim.EventQueue.PopEvent()
		logrus.Debugf("[tick %07d] Executing %s (%d since last event)", ev.Time, ev, ev.Time-sim.Clock)
		// advance the clock
		sim.Clock = ev.Time
		sim.processEvent(ev)
		sim.EventsProcessed++
		sim.sumReadyQ += int64(sim.ReadyQ.Len())
		sim.iterations++
	}
	logrus.Infof("[tick %07d] Simulation ended after %d events", sim.Clock, sim.EventsProcessed)
}

// processEvent routes one event to the CPU pool or the ready queue.
func (sim *Simulator) processEvent(ev Event) {
	p := sim.Processes.Get(ev.PID)
	switch ev.Kind {
	case NewProcess, IOComplete:
		sim.admit(p)
		if ev.Kind == NewProcess && !p.Injected {
			g := sim.Generators[p.TypeIndex]
			sim.spawn(p.TypeIndex, ev.Time+g.NextInterarrivalGap(), false)
		}
	case QuantumExpired:
		sim.vacate(p, ev.Kind)
		sim.admit(p)
	case IOFault:
		cpu := sim.vacate(p, ev.Kind)
		sim.Schedule(IOComplete, ev.Time+p.IOTime, p.ID)
		sim.refill(cpu)
	case ProcessComplete:
		cpu := sim.vacate(p, ev.Kind)
		sim.complete(p)
		sim.refill(cpu)
	default:
		panic(fmt.Sprintf("processEvent: unknown event kind %d", ev.Kind))
	}
}

// admit gives p an idle CPU unless the ready queue already holds an earlier
// waiter, in which case the waiter takes the CPU and p joins the tail.
func (sim *Simulator) admit(p *Process) {
	idle := sim.findIdleCPU()
	if idle < 0 {
		sim.enqueue(p)
		return
	}
	front, waiting := sim.ReadyQ.Peek()
	if !waiting || front == p.ID {
		if waiting {
			sim.ReadyQ.Dequeue()
		}
		sim.load(idle, p)
		return
	}
	sim.ReadyQ.Dequeue()
	sim.enqueue(p)
	sim.load(idle, sim.Processes.Get(front))
}

// refill hands a CPU freed by an IOFault or ProcessComplete to the head of
// the ready queue when DispatchOnRelease is set.
func (sim *Simulator) refill(cpu int) {
	if !sim.config.DispatchOnRelease || !sim.CPUs[cpu].Idle() {
		return
	}
	if front, ok := sim.ReadyQ.Dequeue(); ok {
		sim.load(cpu, sim.Processes.Get(front))
	}
}

func (sim *Simulator) enqueue(p *Process) {
	sim.ReadyQ.Enqueue(p.ID)
	sim.observer.ReadyQueued(sim.Clock, p.ID)
}

// load dispatches p to CPU idx and schedules its departure.
func (sim *Simulator) load(idx int, p *Process) {
	if p.OnCPU {
		panic(fmt.Sprintf("load: process %d is already on CPU %d", p.ID, p.CPU))
	}
	d := sim.CPUs[idx].Accept(p, sim.Clock)
	p.CPU = idx
	p.OnCPU = true
	sim.observer.CPUAssigned(sim.Clock, p.ID, idx)
	sim.Schedule(d.Kind, d.Time, p.ID)
}

// vacate releases the CPU p departed from through a kind event and
// returns its index.
func (sim *Simulator) vacate(p *Process, kind EventKind) int {
	if !kind.Departure() {
		panic(fmt.Sprintf("vacate: %s does not release a CPU", kind))
	}
	if !p.OnCPU {
		panic(fmt.Sprintf("vacate: process %d is not on a CPU", p.ID))
	}
	sim.CPUs[p.CPU].Release()
	p.OnCPU = false
	return p.CPU
}

// complete records p's exit and reports its turnaround to its type.
func (sim *Simulator) complete(p *Process) {
	p.Completed = true
	p.CompletionTime = sim.Clock
	turnaround, _ := p.Turnaround()
	sim.Generators[p.TypeIndex].RecordCompletion(turnaround)
	logrus.Debugf("Finished Proc(%d) at time %d, turnaround %d", p.ID, sim.Clock, turnaround)
}

// findIdleCPU returns the lowest-indexed idle CPU, or -1 if all are busy.
func (sim *Simulator) findIdleCPU() int {
	for i, c := range sim.CPUs {
		if c.Idle() {
			return i
		}
	}
	return -1
}

// Snapshot returns the run's statistics at the current clock.
func (sim *Simulator) Snapshot() Snapshot {
	snap := Snapshot{
		Elapsed:            sim.Clock,
		EventsProcessed:    sim.EventsProcessed,
		FinalEventQueueLen: sim.EventQueue.Len(),
		FinalReadyQueueLen: sim.ReadyQ.Len(),
		CPUs:               make([]CPUStats, len(sim.CPUs)),
		Types:              make([]TypeStats, len(sim.Generators)),
	}
	if sim.iterations > 0 {
		snap.AvgEventQueueLen = float64(sim.sumEventQ) / float64(sim.iterations)
		snap.AvgReadyQueueLen = float64(sim.sumReadyQ) / float64(sim.iterations)
	}
	for i, c := range sim.CPUs {
		snap.CPUs[i] = c.Stats()
	}
	for i, g := range sim.Generators {
		snap.Types[i] = g.Stats(sim.Clock)
	}
	return snap
}
