// Package testutil provides shared test infrastructure for the simulator.
package testutil

// FixedSource replays Values in order, wrapping around at the end.
// An empty FixedSource always returns 0.
type FixedSource struct {
	Values []float64
	Calls  int
}

// NewFixedSource creates a source that replays values.
func NewFixedSource(values ...float64) *FixedSource {
	return &FixedSource{Values: values}
}

// Float64 returns the next value.
func (f *FixedSource) Float64() float64 {
	defer func() { f.Calls++ }()
	if len(f.Values) == 0 {
		return 0
	}
	return f.Values[f.Calls%len(f.Values)]
}
