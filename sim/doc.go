// Package sim provides the discrete-event simulation engine for a car-sharing
// service.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: the two event kinds (CustomerArrival, CarReturned)
//   - queue.go: the time-ordered event queue and its tie-break rule
//   - state.go: the world state and the pure dispatch function
//   - simulator.go: Init (arrival generation) and Run (the event loop)
//
// # Architecture
//
// Sub-packages hold everything the kernel does not need:
//   - sim/trace/: per-event trace records and summaries
//   - sim/promsink/: Prometheus export of run results
//
// The only randomness is the trip-duration draw. It comes from the RandSource
// injected into NewSimulator; NewSeededSimulator derives one from a seed via
// PartitionedRNG.
package sim
