package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// ReplicationSummary aggregates independent runs of the same configuration.
type ReplicationSummary struct {
	Runs                 int
	MeanUnsatisfied      float64
	StdDevUnsatisfied    float64
	MeanUnsatisfiedRatio float64
	MedianUnsatisfied    float64
	P90Unsatisfied       float64
	MinUnsatisfied       int
	MaxUnsatisfied       int
}

// RunReplications runs n simulations of cfg up to horizon. Replication i
// draws from the SubsystemReplication(i) stream of key, so results depend
// only on key, cfg, horizon and n.
func RunReplications(cfg Config, horizon int64, key SimulationKey, n int) ([]Result, ReplicationSummary, error) {
	if n <= 0 {
		return nil, ReplicationSummary{}, fmt.Errorf("%w: replications must be > 0, got %d", ErrInvalidConfig, n)
	}
	rng := NewPartitionedRNG(key)
	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		s := NewSimulator(rng.ForSubsystem(SubsystemReplication(i)))
		s.SetConfig(cfg)
		if err := s.Init(horizon); err != nil {
			return nil, ReplicationSummary{}, err
		}
		if err := s.Run(); err != nil {
			return nil, ReplicationSummary{}, err
		}
		logrus.Debugf("replication %d: arrivals=%d, unsatisfied=%d", i, s.TotalArrivals(), s.UnsatisfiedArrivals())
		results = append(results, s.Result())
	}
	return results, Summarize(results), nil
}

// Summarize computes replication statistics. Safe for an empty slice.
func Summarize(results []Result) ReplicationSummary {
	summary := ReplicationSummary{Runs: len(results)}
	if len(results) == 0 {
		return summary
	}

	unsatisfied := make([]float64, len(results))
	ratios := make([]float64, len(results))
	summary.MinUnsatisfied = results[0].State.UnsatisfiedArrivals
	for i, r := range results {
		u := r.State.UnsatisfiedArrivals
		unsatisfied[i] = float64(u)
		ratios[i] = r.UnsatisfiedRatio()
		summary.MinUnsatisfied = min(summary.MinUnsatisfied, u)
		summary.MaxUnsatisfied = max(summary.MaxUnsatisfied, u)
	}

	summary.MeanUnsatisfied, summary.StdDevUnsatisfied = stat.MeanStdDev(unsatisfied, nil)
	if len(results) == 1 {
		summary.StdDevUnsatisfied = 0
	}
	summary.MeanUnsatisfiedRatio = stat.Mean(ratios, nil)

	// stat.Quantile requires sorted input
	sort.Float64s(unsatisfied)
	summary.MedianUnsatisfied = stat.Quantile(0.5, stat.Empirical, unsatisfied, nil)
	summary.P90Unsatisfied = stat.Quantile(0.9, stat.Empirical, unsatisfied, nil)
	return summary
}
