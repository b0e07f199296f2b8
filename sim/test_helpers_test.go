package sim

import "testing"

// constType returns a process type whose every draw is a fixed value.
// Zero values fall back to the default distribution with mean 1.
func constType(name string, idx int, service, burst, interarrival, io int64) ProcessType {
	pt := ProcessType{Name: name, Index: idx, MeanCPU: 1, MeanBurst: 1, MeanInterarrival: 1, MeanIO: 1}
	if service > 0 {
		pt.CPUDist = &DistSpec{Type: DistConstant, Value: service}
	}
	if burst > 0 {
		pt.BurstDist = &DistSpec{Type: DistConstant, Value: burst}
	}
	if interarrival > 0 {
		pt.ArrivalDist = &DistSpec{Type: DistConstant, Value: interarrival}
	}
	if io > 0 {
		pt.IODist = &DistSpec{Type: DistConstant, Value: io}
	}
	return pt
}

// randomTypes returns two exponential process types with distinct profiles.
func randomTypes() []ProcessType {
	return []ProcessType{
		{Name: "interactive", Index: 0, MeanCPU: 40, MeanBurst: 8, MeanInterarrival: 30, MeanIO: 20},
		{Name: "batch", Index: 1, MeanCPU: 400, MeanBurst: 120, MeanInterarrival: 150, MeanIO: 60},
	}
}

// mustSimulator builds a simulator with a TraceObserver or fails the test.
func mustSimulator(t *testing.T, cfg Config) (*Simulator, *TraceObserver) {
	t.Helper()
	obs := NewTraceObserver()
	s, err := NewSimulator(cfg, obs)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s, obs
}

// mustInject injects an arrival or fails the test.
func mustInject(t *testing.T, s *Simulator, typeIdx int, at int64) ProcessID {
	t.Helper()
	id, err := s.InjectArrival(typeIdx, at)
	if err != nil {
		t.Fatalf("InjectArrival: %v", err)
	}
	return id
}

// assertAccountingIdentity checks Active + Idle + Switch == AccountedUntil per CPU.
func assertAccountingIdentity(t *testing.T, snap Snapshot) {
	t.Helper()
	for _, c := range snap.CPUs {
		if got := c.Active + c.Idle + c.Switch; got != c.AccountedUntil {
			t.Errorf("CPU %d: active %d + idle %d + switch %d = %d, want %d",
				c.Index, c.Active, c.Idle, c.Switch, got, c.AccountedUntil)
		}
	}
}
