// Package promsink exports simulation results as Prometheus metrics.
package promsink

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/carshare-sim/carshare-sim/sim"
	"github.com/carshare-sim/carshare-sim/sim/trace"
)

// Sink records finished runs in Prometheus collectors labeled by run index.
type Sink struct {
	arrivals    *prometheus.CounterVec
	unsatisfied *prometheus.CounterVec
	rentals     *prometheus.CounterVec
	fleetSize   *prometheus.GaugeVec
	peakOut     *prometheus.GaugeVec
	ratio       *prometheus.GaugeVec
	tripMinutes prometheus.Histogram
}

// NewSink registers the simulation metrics on reg.
// If reg is nil, the default registerer is used. If the collectors are already
// registered, the existing ones are reused.
func NewSink(reg prometheus.Registerer) (*Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &Sink{
		arrivals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carshare_arrivals_total",
			Help: "Customers that arrived during the run",
		}, []string{"run"}),
		unsatisfied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carshare_unsatisfied_arrivals_total",
			Help: "Customers turned away because no car was available",
		}, []string{"run"}),
		rentals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carshare_rentals_total",
			Help: "Successful rentals",
		}, []string{"run"}),
		fleetSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "carshare_fleet_size",
			Help: "Cars owned by the service",
		}, []string{"run"}),
		peakOut: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "carshare_peak_cars_out",
			Help: "Max number of cars rented at the same time",
		}, []string{"run"}),
		ratio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "carshare_unsatisfied_ratio",
			Help: "Share of arrivals that were turned away",
		}, []string{"run"}),
		tripMinutes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "carshare_trip_duration_minutes",
			Help:    "Length of traced trips",
			Buckets: prometheus.LinearBuckets(60, 60, 5),
		}),
	}

	var err error
	if s.arrivals, err = register(reg, s.arrivals); err != nil {
		return nil, err
	}
	if s.unsatisfied, err = register(reg, s.unsatisfied); err != nil {
		return nil, err
	}
	if s.rentals, err = register(reg, s.rentals); err != nil {
		return nil, err
	}
	if s.fleetSize, err = register(reg, s.fleetSize); err != nil {
		return nil, err
	}
	if s.peakOut, err = register(reg, s.peakOut); err != nil {
		return nil, err
	}
	if s.ratio, err = register(reg, s.ratio); err != nil {
		return nil, err
	}
	if s.tripMinutes, err = register(reg, s.tripMinutes); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordResult adds one finished run under label run=<run>.
func (s *Sink) RecordResult(run int, r sim.Result) {
	label := strconv.Itoa(run)
	s.arrivals.WithLabelValues(label).Add(float64(r.State.TotalArrivals))
	s.unsatisfied.WithLabelValues(label).Add(float64(r.State.UnsatisfiedArrivals))
	s.rentals.WithLabelValues(label).Add(float64(r.State.Rentals))
	s.fleetSize.WithLabelValues(label).Set(float64(r.Config.FleetSize))
	s.peakOut.WithLabelValues(label).Set(float64(r.State.PeakCarsOut))
	s.ratio.WithLabelValues(label).Set(r.UnsatisfiedRatio())
}

// RecordTrace observes the duration of every rental in st.
func (s *Sink) RecordTrace(st *trace.SimulationTrace) {
	if st == nil {
		return
	}
	for _, rec := range st.Events {
		if rec.Outcome == trace.OutcomeRented {
			s.tripMinutes.Observe(float64(rec.ReturnAt - rec.Clock))
		}
	}
}

// WriteTextfile writes everything g gathers to path in the text exposition
// format, for the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
