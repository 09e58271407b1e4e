package sim

import "fmt"

// EventKind tags what an Event represents.
type EventKind int

const (
	// CustomerArrival is a customer showing up to rent a car.
	CustomerArrival EventKind = iota
	// CarReturned is a rented car coming back to the fleet.
	CarReturned
)

// kindPriority orders events that share a timestamp (lower = processed first).
// Returns go first so a car coming back at minute t can serve a customer
// arriving at minute t.
var kindPriority = map[EventKind]int{
	CarReturned:     0,
	CustomerArrival: 1,
}

func (k EventKind) String() string {
	switch k {
	case CustomerArrival:
		return "customer_arrival"
	case CarReturned:
		return "car_returned"
	default:
		return "unknown"
	}
}

// Event is a scheduled occurrence at a simulated minute.
// It is a plain value: two events are equal iff timestamp and kind match.
type Event struct {
	timestamp int64
	kind      EventKind
}

// NewEvent creates an event of the given kind at timestamp (in minutes).
func NewEvent(timestamp int64, kind EventKind) Event {
	return Event{timestamp: timestamp, kind: kind}
}

// Timestamp returns the scheduled time of the event (in minutes).
func (e Event) Timestamp() int64 { return e.timestamp }

// Kind returns the event kind.
func (e Event) Kind() EventKind { return e.kind }

func (e Event) String() string {
	return fmt.Sprintf("Event(t=%d, kind=%s)", e.timestamp, e.kind)
}
