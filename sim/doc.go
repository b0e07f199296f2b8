// Package sim provides the discrete-event engine of the CPU scheduler simulation.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process record and the ProcessTable arena that owns it
//   - event.go: Event kinds and the (timestamp, event ID) ordered EventQueue
//   - cpu.go: the CPU service state machine and its candidate table
//   - simulator.go: the event loop, ready-queue admission and statistics
//
// # Architecture
//
// Processes are created by a Generator (one per process type), stored in a
// ProcessTable and referred to by ProcessID from events and the ReadyQueue.
// The Simulator pops events in timestamp order and routes each one either to
// a CPU (which computes the resulting departure) or to the ready queue.
//
// Sub-packages:
//   - sim/workload/: process-type file loading (legacy text and YAML)
//   - sim/trace/: verbose trace recording
//   - sim/trial/: repeated runs over a parameter study
//
// # Key Interfaces
//
//   - DurationSampler: draws arrival, service, burst and I/O durations
//   - Observer: receives verbose-trace notifications without affecting the run
package sim
