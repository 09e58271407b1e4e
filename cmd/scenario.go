package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/carshare-sim/carshare-sim/sim"
)

// Scenario is the YAML form of a run: engine parameters plus driver settings.
// Fields left out of the file keep their default values.
type Scenario struct {
	FleetSize          int    `yaml:"fleet_size"`
	ArrivalInterval    int64  `yaml:"arrival_interval"`
	TripBaseDuration   int64  `yaml:"trip_base_duration"`
	TripDurationLevels int    `yaml:"trip_duration_levels"`
	Horizon            int64  `yaml:"horizon"`
	Seed               int64  `yaml:"seed"`
	Runs               int    `yaml:"runs"`
	Trace              string `yaml:"trace"`
}

// DefaultScenario mirrors the CLI flag defaults.
func DefaultScenario() Scenario {
	cfg := sim.DefaultConfig()
	return Scenario{
		FleetSize:          cfg.FleetSize,
		ArrivalInterval:    cfg.ArrivalInterval,
		TripBaseDuration:   cfg.TripBaseDuration,
		TripDurationLevels: cfg.TripDurationLevels,
		Horizon:            8 * 60,
		Seed:               42,
		Runs:               1,
		Trace:              "none",
	}
}

// LoadScenario parses a scenario file on top of DefaultScenario.
// Uses strict field checking: typos must cause errors.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	sc := DefaultScenario()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return Scenario{}, fmt.Errorf("failed to parse scenario YAML %s: %w", path, err)
	}
	return sc, nil
}

// Config extracts the engine configuration.
func (sc Scenario) Config() sim.Config {
	return sim.Config{
		FleetSize:          sc.FleetSize,
		ArrivalInterval:    sc.ArrivalInterval,
		TripBaseDuration:   sc.TripBaseDuration,
		TripDurationLevels: sc.TripDurationLevels,
	}
}
