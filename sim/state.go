package sim

// State is the world model plus the output accumulators of a run.
// Cars are fungible, so the fleet is summarized by a single counter.
type State struct {
	AvailableCars       int // cars parked and ready to rent, in [0, FleetSize]
	TotalArrivals       int // customers that showed up
	UnsatisfiedArrivals int // customers turned away because no car was available

	Rentals     int // successful rentals
	Returns     int // cars brought back
	PeakCarsOut int // max number of cars rented out at the same time
}

// newState returns the state at the start of a run.
func newState(cfg Config) State {
	return State{AvailableCars: cfg.FleetSize}
}

// CarsOut returns the number of cars currently rented.
func (s State) CarsOut(fleetSize int) int {
	return fleetSize - s.AvailableCars
}

// dispatch applies ev to s and returns the next state. When the event leads
// to a rental, the matching CarReturned event is returned as well.
// draw is called at most once, only on a successful rental.
func dispatch(s State, ev Event, cfg Config, draw func() float64) (State, *Event) {
	switch ev.kind {
	case CustomerArrival:
		s.TotalArrivals++
		if s.AvailableCars == 0 {
			s.UnsatisfiedArrivals++
			return s, nil
		}
		s.AvailableCars--
		s.Rentals++
		s.PeakCarsOut = max(s.PeakCarsOut, s.CarsOut(cfg.FleetSize))
		ret := NewEvent(ev.timestamp+cfg.tripDuration(draw()), CarReturned)
		return s, &ret

	case CarReturned:
		s.AvailableCars++
		s.Returns++
		return s, nil
	}
	return s, nil
}
