// Package trace provides per-event trace recording for simulation runs.
// It does not import sim/ and stores pure data types.
package trace

// Outcome describes what processing an event did to the fleet.
type Outcome string

const (
	OutcomeRented   Outcome = "rented"
	OutcomeRejected Outcome = "rejected"
	OutcomeReturned Outcome = "returned"
)

// EventRecord captures the state right after one event was dispatched.
type EventRecord struct {
	Clock               int64
	Kind                string
	Outcome             Outcome
	ReturnAt            int64 // scheduled return time; 0 unless Outcome is OutcomeRented
	AvailableCars       int
	TotalArrivals       int
	UnsatisfiedArrivals int
}
