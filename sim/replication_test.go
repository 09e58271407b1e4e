package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReplications_Deterministic(t *testing.T) {
	cfg := Config{FleetSize: 10, ArrivalInterval: 5, TripBaseDuration: 60, TripDurationLevels: 3}

	r1, s1, err := RunReplications(cfg, 480, NewSimulationKey(42), 5)
	require.NoError(t, err)
	r2, s2, err := RunReplications(cfg, 480, NewSimulationKey(42), 5)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, s1, s2)
	assert.Len(t, r1, 5)
	assert.Equal(t, 5, s1.Runs)
	for _, r := range r1 {
		assert.Equal(t, 97, r.State.TotalArrivals)
	}
}

func TestRunReplications_RejectsBadInput(t *testing.T) {
	_, _, err := RunReplications(DefaultConfig(), 100, NewSimulationKey(1), 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	bad := DefaultConfig()
	bad.ArrivalInterval = 0
	_, _, err = RunReplications(bad, 100, NewSimulationKey(1), 3)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSummarize_KnownValues(t *testing.T) {
	results := make([]Result, 0, 4)
	for _, u := range []int{2, 4, 4, 6} {
		results = append(results, Result{State: State{TotalArrivals: 10, UnsatisfiedArrivals: u}})
	}

	s := Summarize(results)

	assert.Equal(t, 4, s.Runs)
	assert.InDelta(t, 4.0, s.MeanUnsatisfied, 1e-9)
	// unbiased sample stddev of {2,4,4,6}
	assert.InDelta(t, 1.632993, s.StdDevUnsatisfied, 1e-6)
	assert.InDelta(t, 0.4, s.MeanUnsatisfiedRatio, 1e-9)
	assert.Equal(t, 4.0, s.MedianUnsatisfied)
	assert.Equal(t, 6.0, s.P90Unsatisfied)
	assert.Equal(t, 2, s.MinUnsatisfied)
	assert.Equal(t, 6, s.MaxUnsatisfied)
}

func TestSummarize_SingleRunHasZeroSpread(t *testing.T) {
	s := Summarize([]Result{{State: State{TotalArrivals: 3, UnsatisfiedArrivals: 1}}})

	assert.Equal(t, 1.0, s.MeanUnsatisfied)
	assert.Equal(t, 0.0, s.StdDevUnsatisfied)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, ReplicationSummary{}, Summarize(nil))
}
