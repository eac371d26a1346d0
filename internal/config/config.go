// Package config handles terrain engine configuration loading and
// management.
package config

// Config holds all settings for running the terrain engine.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Logging LoggingConfig `yaml:"logging"`
}

// TerrainConfig holds the tunable parameters of the terrain skeleton and
// its subdivide/unsubdivide engines. Distances are given in meters; they
// are converted to the engine's fixed-point units by FixedThresholds.
type TerrainConfig struct {
	LevelMax  int     `yaml:"level_max"`  // maximum subdivision depth
	Scale     uint    `yaml:"scale"`      // fixed-point scale: meters -> 2^Scale units
	MaxRadius float32 `yaml:"max_radius"` // planet radius in meters
	Height    float32 `yaml:"height"`     // baseline terrain elevation in meters

	// IcoTowerOverHorizonVsLevel[d] bounds how far terrain at depth d can
	// protrude above a flat face, as a fraction of MaxRadius. Must have at
	// least LevelMax+1 entries and be monotonically decreasing.
	IcoTowerOverHorizonVsLevel []float32 `yaml:"ico_tower_over_horizon_vs_level"`

	// ThresholdSubdivMeters[lvl] and ThresholdUnsubdivMeters[lvl] are the
	// observer-distance thresholds that trigger subdivide/unsubdivide at
	// level lvl. ThresholdSubdivMeters must strictly decrease with depth;
	// ThresholdUnsubdivMeters[lvl] must exceed ThresholdSubdivMeters[lvl] at
	// every level to provide hysteresis against thrashing.
	ThresholdSubdivMeters   []float64 `yaml:"threshold_subdiv_meters"`
	ThresholdUnsubdivMeters []float64 `yaml:"threshold_unsubdiv_meters"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values: an Earth-scale
// planet subdivided 6 levels deep.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			LevelMax:                   6,
			Scale:                      20,
			MaxRadius:                  6_371_000,
			Height:                     8_000,
			IcoTowerOverHorizonVsLevel: []float32{1.0, 0.5, 0.25, 0.125, 0.06, 0.03, 0.015},
			ThresholdSubdivMeters:      []float64{3_000_000, 1_500_000, 750_000, 375_000, 187_500, 93_750},
			ThresholdUnsubdivMeters:    []float64{3_500_000, 1_800_000, 900_000, 450_000, 225_000, 112_500},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
