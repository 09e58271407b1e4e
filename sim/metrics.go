// Aggregated results of a run, for final reporting.

package sim

import (
	"fmt"
	"io"
)

// Result is a read-only snapshot of a finished run.
type Result struct {
	Config          Config
	Horizon         int64
	State           State
	EventsProcessed int
	SimEndedTime    int64 // timestamp of the last processed event (in minutes)
}

// UnsatisfiedRatio returns the share of arrivals that were turned away.
func (r Result) UnsatisfiedRatio() float64 {
	if r.State.TotalArrivals == 0 {
		return 0
	}
	return float64(r.State.UnsatisfiedArrivals) / float64(r.State.TotalArrivals)
}

// Summary returns the one-line human-readable outcome of the run.
func (r Result) Summary() string {
	return fmt.Sprintf("Arrivals: %d customers, unsatisfied: %d", r.State.TotalArrivals, r.State.UnsatisfiedArrivals)
}

// Print displays the run metrics.
func (r Result) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Fleet Size           : %d cars\n", r.Config.FleetSize)
	fmt.Fprintf(w, "Horizon              : %d min\n", r.Horizon)
	fmt.Fprintf(w, "Total Arrivals       : %d\n", r.State.TotalArrivals)
	fmt.Fprintf(w, "Unsatisfied Arrivals : %d\n", r.State.UnsatisfiedArrivals)
	if r.State.TotalArrivals > 0 {
		fmt.Fprintf(w, "Unsatisfied Ratio    : %.2f%%\n", 100*r.UnsatisfiedRatio())
	}
	fmt.Fprintf(w, "Rentals              : %d\n", r.State.Rentals)
	fmt.Fprintf(w, "Returns              : %d\n", r.State.Returns)
	fmt.Fprintf(w, "Peak Cars Out        : %d\n", r.State.PeakCarsOut)
	fmt.Fprintf(w, "Events Processed     : %d\n", r.EventsProcessed)
	fmt.Fprintf(w, "Simulation Ended At  : %d min\n", r.SimEndedTime)
}
