package sim

import "fmt"

// Default configuration values.
const (
	DefaultFleetSize          = 20
	DefaultArrivalInterval    = 10
	DefaultTripBaseDuration   = 60
	DefaultTripDurationLevels = 3
)

// Config groups the parameters that stay constant during a run.
// All durations are in simulated minutes.
type Config struct {
	FleetSize          int   // number of cars owned by the service (≥ 0)
	ArrivalInterval    int64 // minutes between successive customer arrivals (> 0)
	TripBaseDuration   int64 // shortest trip length (> 0)
	TripDurationLevels int   // number of discrete trip-length multipliers (> 0)
}

// DefaultConfig returns the configuration used when the caller overrides nothing.
func DefaultConfig() Config {
	return Config{
		FleetSize:          DefaultFleetSize,
		ArrivalInterval:    DefaultArrivalInterval,
		TripBaseDuration:   DefaultTripBaseDuration,
		TripDurationLevels: DefaultTripDurationLevels,
	}
}

// Validate checks that the configuration yields a finite simulation.
// Every returned error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	if c.ArrivalInterval <= 0 {
		return fmt.Errorf("%w: arrival interval must be > 0, got %d", ErrInvalidConfig, c.ArrivalInterval)
	}
	if c.FleetSize < 0 {
		return fmt.Errorf("%w: fleet size must be >= 0, got %d", ErrInvalidConfig, c.FleetSize)
	}
	if c.TripBaseDuration <= 0 {
		return fmt.Errorf("%w: trip base duration must be > 0, got %d", ErrInvalidConfig, c.TripBaseDuration)
	}
	if c.TripDurationLevels <= 0 {
		return fmt.Errorf("%w: trip duration levels must be > 0, got %d", ErrInvalidConfig, c.TripDurationLevels)
	}
	return nil
}

// tripDuration maps a uniform draw u ∈ [0,1) onto one of
// TripDurationLevels multiples of TripBaseDuration.
func (c Config) tripDuration(u float64) int64 {
	level := int64(u * float64(c.TripDurationLevels))
	// guard against sources that return exactly 1.0
	if level >= int64(c.TripDurationLevels) {
		level = int64(c.TripDurationLevels) - 1
	}
	return c.TripBaseDuration * (1 + level)
}
