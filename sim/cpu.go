// Implements the CPU service state machine: given a resident process and
// the active policy, a CPU decides which departure happens first, charges
// the process's counters and accounts its own active/idle/switch time.

package sim

import "fmt"

// Policy selects which departure candidates a CPU considers.
// The four combinations replace four near-identical load routines.
type Policy struct {
	IOFaults   bool
	Preemption bool
}

func (p Policy) String() string {
	switch {
	case p.IOFaults && p.Preemption:
		return "io+preemption"
	case p.Preemption:
		return "no-io"
	case p.IOFaults:
		return "no-preemption"
	default:
		return "no-io-no-preemption"
	}
}

// candidate is one way a process can leave a CPU. Candidates are listed in
// tie-break order: on equal lengths the earlier entry wins.
type candidate struct {
	kind    EventKind
	enabled func(Policy) bool
	length  func(c *CPU, p *Process) int64
}

var candidates = [...]candidate{
	{
		kind:    QuantumExpired,
		enabled: func(pol Policy) bool { return pol.Preemption },
		length:  func(c *CPU, _ *Process) int64 { return c.quantum },
	},
	{
		kind:    IOFault,
		enabled: func(pol Policy) bool { return pol.IOFaults },
		length:  func(_ *CPU, p *Process) int64 { return p.RemainingBurst },
	},
}

// Departure is the outcome of loading a process: when it leaves and why.
type Departure struct {
	Kind EventKind
	Time int64
	Run  int64 // ticks of service actually executed, excluding switch cost
}

// CPU is a single processor of the simulated pool.
type CPU struct {
	Index int

	quantum    int64
	switchCost int64
	policy     Policy
	legacy     bool

	busy        bool
	lastVacated int64

	ActiveTime int64
	IdleTime   int64
	SwitchTime int64
}

// NewCPU creates an idle CPU.
func NewCPU(index int, quantum, switchCost int64, policy Policy, legacyAccounting bool) *CPU {
	return &CPU{
		Index:      index,
		quantum:    quantum,
		switchCost: switchCost,
		policy:     policy,
		legacy:     legacyAccounting,
	}
}

// Idle reports whether the CPU can accept a process.
func (c *CPU) Idle() bool {
	return !c.busy
}

// AccountedUntil returns the time up to which the CPU's active, idle and
// switch totals are accounted. It is the departure time of the last process
// loaded, even if that departure has not been processed yet.
func (c *CPU) AccountedUntil() int64 {
	return c.lastVacated
}

// decide picks the departure that happens first for p under the CPU's policy.
// Completion wins any tie with the remaining service, so a process never
// leaves with zero service left. A quantum that ties the remaining burst
// expires first and leaves the burst at zero; the next load then faults
// immediately with a zero-length run, charging only the switch cost.
func (c *CPU) decide(p *Process) (EventKind, int64) {
	kind, run := ProcessComplete, p.RemainingService
	bestKind, best := EventKind(-1), int64(0)
	for _, cand := range candidates {
		if !cand.enabled(c.policy) {
			continue
		}
		if l := cand.length(c, p); bestKind < 0 || l < best {
			bestKind, best = cand.kind, l
		}
	}
	if bestKind >= 0 && best < run {
		kind, run = bestKind, best
	}
	return kind, run
}

// Accept loads p at time now and returns its departure. The caller must
// schedule the departure and later call Release when it is processed.
func (c *CPU) Accept(p *Process, now int64) Departure {
	if c.busy {
		panic(fmt.Sprintf("CPU %d: Accept while busy", c.Index))
	}
	idle := now - c.lastVacated
	if idle < 0 {
		idle = -idle
	}
	c.IdleTime += idle
	c.busy = true

	kind, run := c.decide(p)
	switch kind {
	case QuantumExpired:
		p.consume(run)
		if c.policy.IOFaults {
			p.RemainingBurst -= run
		}
	case IOFault:
		p.consume(run)
		p.RemainingBurst = p.BurstTime
	case ProcessComplete:
		p.consume(run)
	}

	departure := now + run + c.switchCost
	c.lastVacated = departure
	c.SwitchTime += c.switchCost
	if c.legacy {
		c.ActiveTime += departure - now
	} else {
		c.ActiveTime += run
	}
	return Departure{Kind: kind, Time: departure, Run: run}
}

// Release marks the CPU idle once its resident process's departure event
// has been processed.
func (c *CPU) Release() {
	c.busy = false
}

// Stats returns a copy of the CPU's time accounting.
func (c *CPU) Stats() CPUStats {
	return CPUStats{
		Index:          c.Index,
		Active:         c.ActiveTime,
		Idle:           c.IdleTime,
		Switch:         c.SwitchTime,
		AccountedUntil: c.lastVacated,
	}
}
