package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents      int
	RentedCount      int
	RejectedCount    int
	ReturnedCount    int
	MinAvailableCars int
	LastClock        int64
	KindDistribution map[string]int // event kind → count of records
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindDistribution: make(map[string]int),
	}
	if st == nil || len(st.Events) == 0 {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	summary.MinAvailableCars = st.Events[0].AvailableCars
	for _, r := range st.Events {
		summary.KindDistribution[r.Kind]++
		switch r.Outcome {
		case OutcomeRented:
			summary.RentedCount++
		case OutcomeRejected:
			summary.RejectedCount++
		case OutcomeReturned:
			summary.ReturnedCount++
		}
		summary.MinAvailableCars = min(summary.MinAvailableCars, r.AvailableCars)
		summary.LastClock = max(summary.LastClock, r.Clock)
	}

	return summary
}
