package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stjohni933/CPU-Scheduler-Simulation/sim/trace"
)

// eventTimes returns the timestamps of scheduled events of the given kind.
func eventTimes(st *trace.SimulationTrace, kind EventKind) []int64 {
	var out []int64
	for _, e := range st.Events {
		if e.Kind == kind.String() {
			out = append(out, e.Clock)
		}
	}
	return out
}

func TestSimulator_SingleProcessRunsToCompletion(t *testing.T) {
	// GIVEN 1 CPU, no switch cost, no preemption, no I/O,
	// and one process needing exactly 100 ticks arriving at t=0
	cfg := Config{
		StopTime: 1000,
		NumCPUs:  1,
		Types:    []ProcessType{constType("fixed", 0, 100, 0, 1_000_000, 0)},
	}
	s, obs := mustSimulator(t, cfg)
	pid := mustInject(t, s, 0, 0)

	// WHEN the simulation runs
	s.Run()

	// THEN exactly one ProcessComplete happens, at t=100
	assert.Equal(t, []int64{100}, eventTimes(obs.Trace, ProcessComplete))
	p := s.Processes.Get(pid)
	assert.True(t, p.Completed)
	assert.Equal(t, int64(100), p.CompletionTime)

	// AND the CPU was active for 100 ticks and never idle
	snap := s.Snapshot()
	assert.Equal(t, int64(100), snap.Elapsed)
	assert.Equal(t, int64(100), snap.CPUs[0].Active)
	assert.Equal(t, int64(0), snap.CPUs[0].Idle)
	assert.Equal(t, int64(2), snap.EventsProcessed)
	assert.Equal(t, int64(1), snap.Types[0].Completed)
	assert.Equal(t, int64(100), snap.Types[0].LastTurnaround)
	assertAccountingIdentity(t, snap)
}

func TestSimulator_RoundRobinWithSwitchCost(t *testing.T) {
	// GIVEN quantum 10, switch cost 2, no I/O, one process needing 25 ticks at t=0
	cfg := Config{
		StopTime:   1000,
		NumCPUs:    1,
		Quantum:    10,
		SwitchCost: 2,
		Types:      []ProcessType{constType("fixed", 0, 25, 0, 1_000_000, 0)},
	}
	s, obs := mustSimulator(t, cfg)
	pid := mustInject(t, s, 0, 0)

	// WHEN the simulation runs
	s.Run()

	// THEN the process is preempted at 12 and 24 and completes at 31
	assert.Equal(t, []int64{12, 24}, eventTimes(obs.Trace, QuantumExpired))
	assert.Equal(t, []int64{31}, eventTimes(obs.Trace, ProcessComplete))
	assert.Equal(t, int64(31), s.Processes.Get(pid).CompletionTime)

	// AND the CPU accounts 25 ticks of service and 3 switches
	cpu := s.Snapshot().CPUs[0]
	assert.Equal(t, int64(25), cpu.Active)
	assert.Equal(t, int64(6), cpu.Switch)
	assert.Equal(t, int64(0), cpu.Idle)
	assert.Equal(t, int64(31), cpu.Active+cpu.Idle+cpu.Switch)
}

func TestSimulator_RoundRobin_LegacyAccounting(t *testing.T) {
	// GIVEN the same run with legacy switch accounting
	cfg := Config{
		StopTime:               1000,
		NumCPUs:                1,
		Quantum:                10,
		SwitchCost:             2,
		LegacySwitchAccounting: true,
		Types:                  []ProcessType{constType("fixed", 0, 25, 0, 1_000_000, 0)},
	}
	s, _ := mustSimulator(t, cfg)
	mustInject(t, s, 0, 0)

	s.Run()

	// THEN active time is (10+2) + (10+2) + (5+2), switch cost counted twice
	cpu := s.Snapshot().CPUs[0]
	assert.Equal(t, int64(12+12+7), cpu.Active)
	assert.Equal(t, int64(6), cpu.Switch)
}

func TestSimulator_SimultaneousArrivalsUseBothCPUs(t *testing.T) {
	// GIVEN 2 CPUs and two processes arriving together at t=0
	cfg := Config{
		StopTime: 1000,
		NumCPUs:  2,
		Types:    []ProcessType{constType("fixed", 0, 50, 0, 1_000_000, 0)},
	}
	s, obs := mustSimulator(t, cfg)
	a := mustInject(t, s, 0, 0)
	b := mustInject(t, s, 0, 0)

	// WHEN the simulation runs
	s.Run()

	// THEN both are dispatched immediately and nobody waits
	require.Len(t, obs.Trace.Assignments, 2)
	assert.Equal(t, trace.AssignmentRecord{PID: int(a), CPU: 0, Clock: 0}, obs.Trace.Assignments[0])
	assert.Equal(t, trace.AssignmentRecord{PID: int(b), CPU: 1, Clock: 0}, obs.Trace.Assignments[1])
	assert.Empty(t, obs.Trace.Admissions)

	snap := s.Snapshot()
	for _, c := range snap.CPUs {
		assert.Equal(t, int64(0), c.Idle, "CPU %d", c.Index)
		assert.Equal(t, int64(50), c.Active, "CPU %d", c.Index)
	}
	assert.Equal(t, int64(2), snap.Types[0].Completed)
}

func TestSimulator_ReadyQueue_FIFOUnderPreemption(t *testing.T) {
	// GIVEN 1 CPU with quantum 10, dispatch on release,
	// and three 30-tick processes arriving at 0, 5, 7
	cfg := Config{
		StopTime:          1000,
		NumCPUs:           1,
		Quantum:           10,
		DispatchOnRelease: true,
		Types:             []ProcessType{constType("fixed", 0, 30, 0, 1_000_000, 0)},
	}
	s, obs := mustSimulator(t, cfg)
	a := mustInject(t, s, 0, 0)
	b := mustInject(t, s, 0, 5)
	c := mustInject(t, s, 0, 7)

	// WHEN the simulation runs
	s.Run()

	// THEN the CPU is shared round-robin in arrival order
	var order []ProcessID
	for _, rec := range obs.Trace.Assignments {
		order = append(order, ProcessID(rec.PID))
	}
	assert.Equal(t, []ProcessID{a, b, c, a, b, c, a, b, c}, order)

	// AND completions follow the same order
	assert.Equal(t, []int64{70, 80, 90}, eventTimes(obs.Trace, ProcessComplete))
	assertAccountingIdentity(t, s.Snapshot())
}

func TestSimulator_ArrivingProcessNeverJumpsWaiter(t *testing.T) {
	// GIVEN 1 CPU, quantum 10, a long process at t=0 and a waiter at t=2
	cfg := Config{
		StopTime: 9,
		NumCPUs:  1,
		Quantum:  10,
		Types:    []ProcessType{constType("fixed", 0, 100, 0, 1_000_000, 0)},
	}
	s, obs := mustSimulator(t, cfg)
	a := mustInject(t, s, 0, 0)
	b := mustInject(t, s, 0, 2)

	// WHEN A's quantum expires at t=10 while B waits
	s.Run()

	// THEN B takes the CPU and A joins the tail of the ready queue
	require.Len(t, obs.Trace.Assignments, 2)
	assert.Equal(t, int(b), obs.Trace.Assignments[1].PID)
	assert.Equal(t, int64(10), obs.Trace.Assignments[1].Clock)
	front, ok := s.ReadyQ.Peek()
	require.True(t, ok)
	assert.Equal(t, a, front)
	assert.Equal(t, 1, s.ReadyQ.Len())
}

func TestSimulator_WithoutDispatchOnRelease_WaitersStayQueued(t *testing.T) {
	// GIVEN 1 CPU, no preemption, three 100-tick processes at 0, 10, 20
	cfg := Config{
		StopTime: 1000,
		NumCPUs:  1,
		Types:    []ProcessType{constType("fixed", 0, 100, 0, 1_000_000, 0)},
	}
	s, _ := mustSimulator(t, cfg)
	mustInject(t, s, 0, 0)
	b := mustInject(t, s, 0, 10)
	c := mustInject(t, s, 0, 20)

	// WHEN the simulation runs
	s.Run()

	// THEN the CPU frees at 100 but only a later contender would pull the waiters;
	// none is lost from the ready queue
	snap := s.Snapshot()
	assert.Equal(t, int64(1), snap.Types[0].Completed)
	assert.Equal(t, 2, snap.FinalReadyQueueLen)
	assert.True(t, s.ReadyQ.Contains(b))
	assert.True(t, s.ReadyQ.Contains(c))
}

func TestSimulator_DispatchOnRelease_DrainsReadyQueueInOrder(t *testing.T) {
	// GIVEN the same workload with DispatchOnRelease
	cfg := Config{
		StopTime:          1000,
		NumCPUs:           1,
		DispatchOnRelease: true,
		Types:             []ProcessType{constType("fixed", 0, 100, 0, 1_000_000, 0)},
	}
	s, obs := mustSimulator(t, cfg)
	a := mustInject(t, s, 0, 0)
	b := mustInject(t, s, 0, 10)
	c := mustInject(t, s, 0, 20)

	// WHEN the simulation runs
	s.Run()

	// THEN each release hands the CPU to the longest waiter
	assert.Equal(t, []int64{100, 200, 300}, eventTimes(obs.Trace, ProcessComplete))
	assert.Equal(t, int64(300), s.Processes.Get(c).CompletionTime)
	assert.Equal(t, int64(200), s.Processes.Get(b).CompletionTime)
	assert.Equal(t, int64(100), s.Processes.Get(a).CompletionTime)
	assert.Equal(t, 0, s.ReadyQ.Len())

	// AND turnaround of the last one includes its wait
	tat, ok := s.Processes.Get(c).Turnaround()
	require.True(t, ok)
	assert.Equal(t, int64(280), tat)
}

func TestSimulator_IOFaultCycle(t *testing.T) {
	// GIVEN I/O faults every 10 ticks, I/O service of 5, 25 ticks of service
	cfg := Config{
		StopTime: 1000,
		NumCPUs:  1,
		IOFaults: true,
		Types:    []ProcessType{constType("io", 0, 25, 10, 1_000_000, 5)},
	}
	s, obs := mustSimulator(t, cfg)
	mustInject(t, s, 0, 0)

	// WHEN the simulation runs
	s.Run()

	// THEN run 0-10, I/O 10-15, run 15-25, I/O 25-30, run 30-35 and complete
	assert.Equal(t, []int64{10, 25}, eventTimes(obs.Trace, IOFault))
	assert.Equal(t, []int64{15, 30}, eventTimes(obs.Trace, IOComplete))
	assert.Equal(t, []int64{35}, eventTimes(obs.Trace, ProcessComplete))

	// AND the CPU was idle while the process waited on I/O
	cpu := s.Snapshot().CPUs[0]
	assert.Equal(t, int64(25), cpu.Active)
	assert.Equal(t, int64(10), cpu.Idle)
	assertAccountingIdentity(t, s.Snapshot())
}

func TestSimulator_StopTime_EventPastBoundaryStillProcessed(t *testing.T) {
	// GIVEN a stop time of 50 and a process completing at 100
	cfg := Config{
		StopTime: 50,
		NumCPUs:  1,
		Types:    []ProcessType{constType("fixed", 0, 100, 0, 1_000_000, 0)},
	}
	s, _ := mustSimulator(t, cfg)
	pid := mustInject(t, s, 0, 0)

	// WHEN the simulation runs
	s.Run()

	// THEN the completion popped past the boundary is fully processed and the loop halts
	assert.Equal(t, int64(100), s.Clock)
	assert.True(t, s.Processes.Get(pid).Completed)
	assert.Equal(t, int64(2), s.EventsProcessed)
}

func TestSimulator_SeedArrivals_ChainsNextArrival(t *testing.T) {
	// GIVEN a type arriving every 40 ticks and stop time 100
	cfg := Config{
		StopTime: 100,
		NumCPUs:  1,
		Types:    []ProcessType{constType("fixed", 0, 5, 0, 40, 0)},
	}
	s, obs := mustSimulator(t, cfg)

	// WHEN arrivals are seeded and the simulation runs
	s.SeedArrivals()
	s.Run()

	// THEN arrivals occur at 40, 80, 120 (the one past the boundary is processed) and 160 is pending
	assert.Equal(t, []int64{40, 80, 120, 160}, eventTimes(obs.Trace, NewProcess))
	snap := s.Snapshot()
	assert.Equal(t, int64(120), snap.Elapsed)
	assert.Equal(t, int64(4), snap.Types[0].Created)
	assert.Equal(t, int64(2), snap.Types[0].Completed)
	assert.Equal(t, 2, snap.FinalEventQueueLen)
}

func TestSimulator_InjectArrival_Errors(t *testing.T) {
	cfg := Config{StopTime: 10, NumCPUs: 1, Types: []ProcessType{constType("fixed", 0, 5, 0, 5, 0)}}
	s, _ := mustSimulator(t, cfg)

	_, err := s.InjectArrival(1, 0)
	assert.Error(t, err)
	_, err = s.InjectArrival(-1, 0)
	assert.Error(t, err)

	s.Clock = 5
	_, err = s.InjectArrival(0, 4)
	assert.Error(t, err)
}

// === Properties over seeded random runs ===

var policyVariants = []struct {
	name     string
	quantum  int64
	ioFaults bool
}{
	{"io+preemption", 20, true},
	{"no-io", 20, false},
	{"no-preemption", 0, true},
	{"no-io-no-preemption", 0, false},
}

func runRandom(t *testing.T, quantum int64, ioFaults, dispatchOnRelease bool, seed int64) (*Simulator, *TraceObserver) {
	t.Helper()
	cfg := Config{
		StopTime:          20_000,
		NumCPUs:           3,
		Quantum:           quantum,
		SwitchCost:        1,
		IOFaults:          ioFaults,
		Seed:              seed,
		DispatchOnRelease: dispatchOnRelease,
		Types:             randomTypes(),
	}
	s, obs := mustSimulator(t, cfg)
	s.SeedArrivals()
	s.Run()
	return s, obs
}

func TestSimulator_Properties_AllPolicies(t *testing.T) {
	for _, pv := range policyVariants {
		for _, dor := range []bool{false, true} {
			name := pv.name
			if dor {
				name += "/dispatch-on-release"
			}
			t.Run(name, func(t *testing.T) {
				s, obs := runRandom(t, pv.quantum, pv.ioFaults, dor, 42)
				snap := s.Snapshot()

				// accounting identity on every CPU
				assertAccountingIdentity(t, snap)

				// completed processes have non-negative turnaround
				completed := 0
				s.Processes.Each(func(p *Process) {
					if tat, ok := p.Turnaround(); ok {
						completed++
						assert.GreaterOrEqual(t, p.CompletionTime, p.ArrivalTime)
						assert.GreaterOrEqual(t, tat, int64(0))
						assert.Equal(t, int64(0), p.RemainingService)
					}
				})
				assert.Greater(t, completed, 0, "expected some completions")

				// a process is never both on a CPU and waiting, and busy CPUs match resident processes
				onCPU := 0
				s.Processes.Each(func(p *Process) {
					if p.OnCPU {
						onCPU++
						assert.False(t, s.ReadyQ.Contains(p.ID), "process %d on CPU and in ready queue", p.ID)
						assert.False(t, p.Completed)
					}
				})
				busy := 0
				for _, c := range s.CPUs {
					if !c.Idle() {
						busy++
					}
				}
				assert.Equal(t, busy, onCPU)

				// policy axes gate event kinds
				summary := trace.Summarize(obs.Trace)
				if pv.quantum == 0 {
					assert.Zero(t, summary.EventsByKind[QuantumExpired.String()])
				} else {
					assert.NotZero(t, summary.EventsByKind[QuantumExpired.String()])
				}
				if !pv.ioFaults {
					assert.Zero(t, summary.EventsByKind[IOFault.String()])
					assert.Zero(t, summary.EventsByKind[IOComplete.String()])
					s.Processes.Each(func(p *Process) {
						assert.Zero(t, p.BurstTime)
						assert.Zero(t, p.RemainingBurst)
					})
				} else {
					assert.NotZero(t, summary.EventsByKind[IOFault.String()])
				}
			})
		}
	}
}

func TestSimulator_SameSeed_IdenticalSnapshots(t *testing.T) {
	a, _ := runRandom(t, 20, true, false, 7)
	b, _ := runRandom(t, 20, true, false, 7)
	assert.Equal(t, a.Snapshot(), b.Snapshot())

	c, _ := runRandom(t, 20, true, false, 8)
	assert.NotEqual(t, a.Snapshot(), c.Snapshot())
}

func TestSimulator_ObserverDoesNotAffectOutcome(t *testing.T) {
	cfg := Config{
		StopTime: 10_000, NumCPUs: 2, Quantum: 15, SwitchCost: 2, IOFaults: true, Seed: 3, Types: randomTypes(),
	}
	quiet, err := NewSimulator(cfg, nil)
	require.NoError(t, err)
	traced, _ := mustSimulator(t, cfg)
	for _, s := range []*Simulator{quiet, traced} {
		s.SeedArrivals()
		s.Run()
	}
	assert.Equal(t, quiet.Snapshot(), traced.Snapshot())
}

func TestSimulator_Snapshot_AveragesQueueLengths(t *testing.T) {
	s, _ := runRandom(t, 20, true, false, 11)
	snap := s.Snapshot()
	assert.Equal(t, s.EventsProcessed, snap.EventsProcessed)
	assert.Greater(t, snap.AvgEventQueueLen, 0.0)
	assert.GreaterOrEqual(t, snap.AvgReadyQueueLen, 0.0)
	assert.Len(t, snap.CPUs, 3)
	assert.Len(t, snap.Types, 2)
}

func TestSimulator_Snapshot_BeforeRun_ZeroAverages(t *testing.T) {
	cfg := Config{StopTime: 10, NumCPUs: 1, Types: []ProcessType{constType("fixed", 0, 5, 0, 5, 0)}}
	s, _ := mustSimulator(t, cfg)
	snap := s.Snapshot()
	assert.Equal(t, 0.0, snap.AvgEventQueueLen)
	assert.Equal(t, 0.0, snap.Types[0].Throughput)
}

func TestSimulator_Vacate_RejectsNonDepartureKind(t *testing.T) {
	cfg := Config{StopTime: 10, NumCPUs: 1, Types: []ProcessType{constType("fixed", 0, 5, 0, 5, 0)}}
	s, _ := mustSimulator(t, cfg)
	pid := mustInject(t, s, 0, 0)
	s.load(0, s.Processes.Get(pid))

	assert.Panics(t, func() { s.vacate(s.Processes.Get(pid), IOComplete) })
	assert.Equal(t, 0, s.vacate(s.Processes.Get(pid), ProcessComplete))
	assert.True(t, s.CPUs[0].Idle())
}
