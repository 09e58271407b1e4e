// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/carshare-sim/carshare-sim/sim/trace"
)

// Simulator owns the event queue, the world state and the random source
// of a single car-sharing run.
//
// Lifecycle: configure via setters → Init(horizon) → Run() → read results.
// A Simulator is NOT safe for concurrent use.
type Simulator struct {
	cfg     Config // edited by setters, read by the next Init
	runCfg  Config // validated snapshot taken by Init, constant during Run
	queue   *EventQueue
	state   State
	clock   int64
	horizon int64
	rng     RandSource
	trace   *trace.SimulationTrace

	// ready is true between Init and the end of Run.
	ready     bool
	processed int
}

// NewSimulator creates a simulator with the default configuration.
// rng supplies the trip-duration draws and must not be nil.
func NewSimulator(rng RandSource) *Simulator {
	if rng == nil {
		panic("NewSimulator: nil RandSource")
	}
	return &Simulator{
		cfg:   DefaultConfig(),
		queue: NewEventQueue(),
		rng:   rng,
		trace: trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelNone}),
	}
}

// NewSeededSimulator creates a simulator whose draws come from the
// SubsystemTrip stream of seed.
func NewSeededSimulator(seed int64) *Simulator {
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	return NewSimulator(rng.ForSubsystem(SubsystemTrip))
}

// SetFleetSize sets the number of cars. Takes effect at the next Init.
func (sim *Simulator) SetFleetSize(n int) {
	sim.cfg.FleetSize = n
}

// SetArrivalInterval sets the minutes between arrivals. Takes effect at the next Init.
func (sim *Simulator) SetArrivalInterval(minutes int64) {
	sim.cfg.ArrivalInterval = minutes
}

// SetTripBaseDuration sets the shortest trip length. Takes effect at the next Init.
func (sim *Simulator) SetTripBaseDuration(minutes int64) {
	sim.cfg.TripBaseDuration = minutes
}

// SetTripDurationLevels sets the number of trip-length multipliers. Takes effect at the next Init.
func (sim *Simulator) SetTripDurationLevels(n int) {
	sim.cfg.TripDurationLevels = n
}

// SetConfig replaces the whole configuration. Takes effect at the next Init.
func (sim *Simulator) SetConfig(cfg Config) { sim.cfg = cfg }

// Config returns the configuration the next Init will use.
func (sim *Simulator) Config() Config { return sim.cfg }

// SetTraceLevel turns per-event tracing on or off. Takes effect at the next Init.
func (sim *Simulator) SetTraceLevel(level trace.TraceLevel) {
	sim.trace = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
}

// Trace returns the records collected during the last run.
func (sim *Simulator) Trace() *trace.SimulationTrace { return sim.trace }

// Init discards any previous run and seeds the queue with one customer
// arrival every ArrivalInterval minutes from 0 up to and including horizon.
// The configuration is validated before any event is generated; on error the
// previous run is invalidated and Run returns ErrNotInitialized.
func (sim *Simulator) Init(horizon int64) error {
	sim.ready = false
	if err := sim.cfg.Validate(); err != nil {
		return err
	}
	if horizon < 0 {
		return fmt.Errorf("%w: horizon must be >= 0, got %d", ErrInvalidConfig, horizon)
	}

	sim.runCfg = sim.cfg
	sim.queue.Clear()
	sim.state = newState(sim.runCfg)
	sim.clock = 0
	sim.horizon = horizon
	sim.processed = 0
	sim.trace.Reset()

	for t := int64(0); t <= horizon; t += sim.runCfg.ArrivalInterval {
		sim.queue.Schedule(NewEvent(t, CustomerArrival))
	}
	sim.ready = true

	logrus.Infof("Initialized simulation: fleet=%d, interval=%dm, trip=%dm x%d, horizon=%dm, arrivals=%d",
		sim.runCfg.FleetSize, sim.runCfg.ArrivalInterval, sim.runCfg.TripBaseDuration, sim.runCfg.TripDurationLevels,
		horizon, sim.queue.Len())
	return nil
}

// Run drains the event queue, dispatching events in time order.
// Returns ErrNotInitialized if Init has not been called since the last Run.
func (sim *Simulator) Run() error {
	if !sim.ready {
		return ErrNotInitialized
	}
	for {
		ev, ok := sim.queue.PopNext()
		if !ok {
			break
		}
		sim.clock = ev.Timestamp()
		logrus.Debugf("[t=%06d] Executing %s", sim.clock, ev)
		sim.processEvent(ev)
	}
	sim.ready = false
	logrus.Infof("[t=%06d] Simulation ended: arrivals=%d, unsatisfied=%d",
		sim.clock, sim.state.TotalArrivals, sim.state.UnsatisfiedArrivals)
	return nil
}

func (sim *Simulator) processEvent(ev Event) {
	next, follow := dispatch(sim.state, ev, sim.runCfg, sim.rng.Float64)
	sim.state = next
	sim.processed++
	if follow != nil {
		sim.queue.Schedule(*follow)
	}

	if !sim.trace.Config.Enabled() {
		return
	}
	rec := trace.EventRecord{
		Clock:               ev.Timestamp(),
		Kind:                ev.Kind().String(),
		AvailableCars:       next.AvailableCars,
		TotalArrivals:       next.TotalArrivals,
		UnsatisfiedArrivals: next.UnsatisfiedArrivals,
	}
	switch {
	case ev.Kind() == CarReturned:
		rec.Outcome = trace.OutcomeReturned
	case follow != nil:
		rec.Outcome = trace.OutcomeRented
		rec.ReturnAt = follow.Timestamp()
	default:
		rec.Outcome = trace.OutcomeRejected
	}
	sim.trace.RecordEvent(rec)
}

// TotalArrivals returns the number of customers that arrived.
func (sim *Simulator) TotalArrivals() int { return sim.state.TotalArrivals }

// UnsatisfiedArrivals returns the number of customers turned away.
func (sim *Simulator) UnsatisfiedArrivals() int { return sim.state.UnsatisfiedArrivals }

// AvailableCars returns the number of parked cars.
func (sim *Simulator) AvailableCars() int { return sim.state.AvailableCars }

// State returns a copy of the current world state.
func (sim *Simulator) State() State { return sim.state }

// Clock returns the timestamp of the last processed event.
func (sim *Simulator) Clock() int64 { return sim.clock }

// Pending returns the number of events still queued.
func (sim *Simulator) Pending() int { return sim.queue.Len() }

// Result snapshots the run for reporting.
func (sim *Simulator) Result() Result {
	return Result{
		Config:          sim.runCfg,
		Horizon:         sim.horizon,
		State:           sim.state,
		EventsProcessed: sim.processed,
		SimEndedTime:    sim.clock,
	}
}
