package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/stjohni933/CPU-Scheduler-Simulation/sim/trace"
)

// Observer receives verbose-trace notifications from the simulator.
// Arguments are copies: an observer cannot change the outcome of a run.
type Observer interface {
	ProcessCreated(p Process)
	EventScheduled(ev Event)
	CPUAssigned(now int64, pid ProcessID, cpu int)
	ReadyQueued(now int64, pid ProcessID)
}

type nopObserver struct{}

func (nopObserver) ProcessCreated(Process)            {}
func (nopObserver) EventScheduled(Event)              {}
func (nopObserver) CPUAssigned(int64, ProcessID, int) {}
func (nopObserver) ReadyQueued(int64, ProcessID)      {}

// LogObserver writes the verbose trace through logrus at Info level.
type LogObserver struct{}

func (LogObserver) ProcessCreated(p Process) {
	logrus.Infof("Created Proc(%d) Type: %s at time: %d CPU service time: %d Burst time: %d I/O time: %d",
		p.ID, p.TypeName, p.ArrivalTime, p.ServiceTime, p.BurstTime, p.IOTime)
}

func (LogObserver) EventScheduled(ev Event) {
	logrus.Infof("New Event: EventID(%d), Type: %s, Proc(%d), Timestamp: %d", ev.ID, ev.Kind, ev.PID, ev.Time)
}

func (LogObserver) CPUAssigned(now int64, pid ProcessID, cpu int) {
	logrus.Infof("Assigning Proc(%d) to CPU %d at time %d", pid, cpu, now)
}

func (LogObserver) ReadyQueued(now int64, pid ProcessID) {
	logrus.Infof("Adding Proc(%d) to ready queue at time %d", pid, now)
}

// TraceObserver records every notification into a trace.SimulationTrace.
type TraceObserver struct {
	Trace *trace.SimulationTrace
}

// NewTraceObserver creates a TraceObserver with an empty trace.
func NewTraceObserver() *TraceObserver {
	return &TraceObserver{Trace: trace.NewSimulationTrace()}
}

func (o *TraceObserver) ProcessCreated(p Process) {
	o.Trace.RecordProcess(trace.ProcessRecord{
		PID:         int(p.ID),
		TypeName:    p.TypeName,
		TypeIndex:   p.TypeIndex,
		Clock:       p.ArrivalTime,
		ServiceTime: p.ServiceTime,
		BurstTime:   p.BurstTime,
		IOTime:      p.IOTime,
	})
}

func (o *TraceObserver) EventScheduled(ev Event) {
	o.Trace.RecordEvent(trace.EventRecord{EventID: ev.ID, Kind: ev.Kind.String(), PID: int(ev.PID), Clock: ev.Time})
}

func (o *TraceObserver) CPUAssigned(now int64, pid ProcessID, cpu int) {
	o.Trace.RecordAssignment(trace.AssignmentRecord{PID: int(pid), CPU: cpu, Clock: now})
}

func (o *TraceObserver) ReadyQueued(now int64, pid ProcessID) {
	o.Trace.RecordAdmission(trace.ReadyRecord{PID: int(pid), Clock: now})
}

// MultiObserver fans notifications out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) ProcessCreated(p Process) {
	for _, o := range m {
		o.ProcessCreated(p)
	}
}

func (m MultiObserver) EventScheduled(ev Event) {
	for _, o := range m {
		o.EventScheduled(ev)
	}
}

func (m MultiObserver) CPUAssigned(now int64, pid ProcessID, cpu int) {
	for _, o := range m {
		o.CPUAssigned(now, pid, cpu)
	}
}

func (m MultiObserver) ReadyQueued(now int64, pid ProcessID) {
	for _, o := range m {
		o.ReadyQueued(now, pid)
	}
}
