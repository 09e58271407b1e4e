package promsink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carshare-sim/carshare-sim/sim"
	"github.com/carshare-sim/carshare-sim/sim/trace"
)

func sampleResult() sim.Result {
	return sim.Result{
		Config:  sim.Config{FleetSize: 2, ArrivalInterval: 10, TripBaseDuration: 60, TripDurationLevels: 1},
		Horizon: 30,
		State: sim.State{
			TotalArrivals:       4,
			UnsatisfiedArrivals: 1,
			Rentals:             3,
			Returns:             3,
			AvailableCars:       2,
			PeakCarsOut:         2,
		},
	}
}

func TestSink_RecordResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewSink(reg)
	require.NoError(t, err)

	sink.RecordResult(0, sampleResult())

	expected := `
# HELP carshare_unsatisfied_arrivals_total Customers turned away because no car was available
# TYPE carshare_unsatisfied_arrivals_total counter
carshare_unsatisfied_arrivals_total{run="0"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(sink.unsatisfied, strings.NewReader(expected)))
	assert.Equal(t, 4.0, testutil.ToFloat64(sink.arrivals.WithLabelValues("0")))
	assert.Equal(t, 3.0, testutil.ToFloat64(sink.rentals.WithLabelValues("0")))
	assert.Equal(t, 2.0, testutil.ToFloat64(sink.peakOut.WithLabelValues("0")))
	assert.InDelta(t, 0.25, testutil.ToFloat64(sink.ratio.WithLabelValues("0")), 1e-9)
}

func TestSink_RecordTrace_ObservesRentalsOnly(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewSink(reg)
	require.NoError(t, err)

	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
	st.RecordEvent(trace.EventRecord{Clock: 0, Outcome: trace.OutcomeRented, ReturnAt: 120})
	st.RecordEvent(trace.EventRecord{Clock: 10, Outcome: trace.OutcomeRejected})
	st.RecordEvent(trace.EventRecord{Clock: 120, Outcome: trace.OutcomeReturned})

	sink.RecordTrace(st)
	sink.RecordTrace(nil)

	expected := `
# HELP carshare_trip_duration_minutes Length of traced trips
# TYPE carshare_trip_duration_minutes histogram
carshare_trip_duration_minutes_bucket{le="60"} 0
carshare_trip_duration_minutes_bucket{le="120"} 1
carshare_trip_duration_minutes_bucket{le="180"} 1
carshare_trip_duration_minutes_bucket{le="240"} 1
carshare_trip_duration_minutes_bucket{le="300"} 1
carshare_trip_duration_minutes_bucket{le="+Inf"} 1
carshare_trip_duration_minutes_sum 120
carshare_trip_duration_minutes_count 1
`
	assert.NoError(t, testutil.CollectAndCompare(sink.tripMinutes, strings.NewReader(expected)))
}

func TestNewSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewSink(reg)
	require.NoError(t, err)
	second, err := NewSink(reg)
	require.NoError(t, err)

	first.RecordResult(1, sampleResult())

	assert.Equal(t, 4.0, testutil.ToFloat64(second.arrivals.WithLabelValues("1")))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewSink(reg)
	require.NoError(t, err)
	sink.RecordResult(0, sampleResult())

	path := filepath.Join(t.TempDir(), "carshare.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `carshare_arrivals_total{run="0"} 4`)
	assert.Contains(t, string(data), `carshare_fleet_size{run="0"} 2`)
}
