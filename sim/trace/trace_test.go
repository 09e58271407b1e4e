package trace

import (
	"testing"
)

func TestSimulationTrace_RecordEvent_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for events
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN an event record is recorded
	st.RecordEvent(EventRecord{
		Clock:         10,
		Kind:          "customer_arrival",
		Outcome:       OutcomeRented,
		ReturnAt:      70,
		AvailableCars: 19,
		TotalArrivals: 1,
	})

	// THEN the trace contains one record with correct data
	if len(st.Events) != 1 {
		t.Fatalf("expected 1 event record, got %d", len(st.Events))
	}
	if st.Events[0].ReturnAt != 70 {
		t.Errorf("expected return at 70, got %d", st.Events[0].ReturnAt)
	}
	if st.Events[0].Outcome != OutcomeRented {
		t.Errorf("expected outcome rented, got %s", st.Events[0].Outcome)
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN multiple records are added
	st.RecordEvent(EventRecord{Clock: 0, Kind: "customer_arrival", Outcome: OutcomeRented})
	st.RecordEvent(EventRecord{Clock: 10, Kind: "customer_arrival", Outcome: OutcomeRejected})
	st.RecordEvent(EventRecord{Clock: 60, Kind: "car_returned", Outcome: OutcomeReturned})

	// THEN insertion order is preserved
	want := []int64{0, 10, 60}
	for i, r := range st.Events {
		if r.Clock != want[i] {
			t.Errorf("record %d: clock = %d, want %d", i, r.Clock, want[i])
		}
	}
}

func TestSimulationTrace_Reset_KeepsConfig(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.RecordEvent(EventRecord{Clock: 5})

	st.Reset()

	if len(st.Events) != 0 {
		t.Errorf("expected empty trace after reset, got %d records", len(st.Events))
	}
	if !st.Config.Enabled() {
		t.Error("expected config to survive reset")
	}
}

func TestSimulationTrace_Reset_PreservesEarlierRecords(t *testing.T) {
	// GIVEN a caller holding the records of a finished run
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.RecordEvent(EventRecord{Clock: 0, Outcome: OutcomeRented})
	st.RecordEvent(EventRecord{Clock: 60, Outcome: OutcomeReturned})
	previous := st.Events

	// WHEN the trace is reset and a new run records over it
	st.Reset()
	st.RecordEvent(EventRecord{Clock: 999, Outcome: OutcomeRejected})

	// THEN the held records are unchanged
	if previous[0].Clock != 0 || previous[0].Outcome != OutcomeRented {
		t.Errorf("earlier record overwritten: %+v", previous[0])
	}
	if len(st.Events) != 1 {
		t.Errorf("expected 1 record after reset, got %d", len(st.Events))
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"events", true},
		{"", true},
		{"decisions", false},
		{"EVENTS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}
