package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Terrain.LevelMax != 6 {
		t.Errorf("expected level_max 6, got %d", cfg.Terrain.LevelMax)
	}
	if cfg.Terrain.Scale != 20 {
		t.Errorf("expected scale 20, got %d", cfg.Terrain.Scale)
	}
	if len(cfg.Terrain.IcoTowerOverHorizonVsLevel) != cfg.Terrain.LevelMax+1 {
		t.Errorf("expected %d tower table entries, got %d", cfg.Terrain.LevelMax+1, len(cfg.Terrain.IcoTowerOverHorizonVsLevel))
	}
	if len(cfg.Terrain.ThresholdSubdivMeters) != cfg.Terrain.LevelMax {
		t.Errorf("expected %d subdiv thresholds, got %d", cfg.Terrain.LevelMax, len(cfg.Terrain.ThresholdSubdivMeters))
	}
	for i, m := range cfg.Terrain.ThresholdUnsubdivMeters {
		if m <= cfg.Terrain.ThresholdSubdivMeters[i] {
			t.Errorf("level %d: unsubdiv threshold %v must exceed subdiv threshold %v", i, m, cfg.Terrain.ThresholdSubdivMeters[i])
		}
	}
	for i := 1; i < len(cfg.Terrain.ThresholdSubdivMeters); i++ {
		if cfg.Terrain.ThresholdSubdivMeters[i] >= cfg.Terrain.ThresholdSubdivMeters[i-1] {
			t.Errorf("subdiv thresholds must strictly decrease with depth, got %v at %d and %v at %d",
				cfg.Terrain.ThresholdSubdivMeters[i-1], i-1, cfg.Terrain.ThresholdSubdivMeters[i], i)
		}
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
terrain:
  level_max: 3
  scale: 16
  max_radius: 1000
  height: 5
  ico_tower_over_horizon_vs_level: [1.0, 0.5, 0.1]
  threshold_subdiv_meters: [500, 250, 100]
  threshold_unsubdiv_meters: [600, 300, 150]

logging:
  level: "debug"
  log_file: "terrain.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Terrain.LevelMax != 3 {
		t.Errorf("expected level_max 3, got %d", cfg.Terrain.LevelMax)
	}
	if cfg.Terrain.Scale != 16 {
		t.Errorf("expected scale 16, got %d", cfg.Terrain.Scale)
	}
	if len(cfg.Terrain.ThresholdSubdivMeters) != 3 || cfg.Terrain.ThresholdSubdivMeters[0] != 500 {
		t.Errorf("unexpected subdiv thresholds: %v", cfg.Terrain.ThresholdSubdivMeters)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "terrain.log" {
		t.Errorf("expected log file 'terrain.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
terrain:
  level_max: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("terrain:\n  level_max: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "level-max flag",
			setup: func() { *flagLevelMax = 8 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.LevelMax != 8 {
					t.Errorf("expected level_max 8, got %d", cfg.Terrain.LevelMax)
				}
			},
			teardown: func() { *flagLevelMax = 0 },
		},
		{
			name: "log-file flag",
			setup: func() { *flagLogFile = "custom.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "custom.log" {
					t.Errorf("expected log file 'custom.log', got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagLogFile = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
terrain:
  level_max: 4
  scale: 16
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagLevelMax = 9
	defer func() {
		*flagConfig = ""
		*flagLevelMax = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// LevelMax should be from the flag (9), not the file (4).
	if cfg.Terrain.LevelMax != 9 {
		t.Errorf("expected level_max 9 from flag, got %d", cfg.Terrain.LevelMax)
	}
	// Scale should be from the file (16) since no flag override exists.
	if cfg.Terrain.Scale != 16 {
		t.Errorf("expected scale 16 from file, got %d", cfg.Terrain.Scale)
	}
}
