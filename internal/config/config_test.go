package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseFlappy(GetDefaultYAML("flappy"))
	if err != nil {
		t.Fatalf("embedded default should parse: %v", err)
	}
	if cfg != DefaultFlappyConfig() {
		t.Errorf("embedded YAML and DefaultFlappyConfig() differ:\n%+v\n%+v", cfg, DefaultFlappyConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultFlappyConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestDerivedGeometry(t *testing.T) {
	cfg := DefaultFlappyConfig()

	if got := cfg.GroundTop(); got != 550 {
		t.Errorf("GroundTop() = %v, expected 550", got)
	}
	low, high := cfg.GapBounds()
	if low != 50 || high != 500 {
		t.Errorf("GapBounds() = (%v, %v), expected (50, 500)", low, high)
	}
	if got := cfg.SpawnX(); got != 460 {
		t.Errorf("SpawnX() = %v, expected 460", got)
	}
	if got := cfg.DespawnX(); got != -60 {
		t.Errorf("DespawnX() = %v, expected -60", got)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
		field  string
	}{
		{"gap min above max", func(c *FlappyConfig) { c.Obstacles.GapMin = 200 }, "gap_min"},
		{"gap too large for playfield", func(c *FlappyConfig) { c.Obstacles.GapMax = 460; c.Difficulty.Enabled = false }, "gap_max"},
		{"flap pointing down", func(c *FlappyConfig) { c.Physics.FlapStrength = 350 }, "flap_strength"},
		{"zero spawn interval", func(c *FlappyConfig) { c.Obstacles.SpawnInterval = 0 }, "spawn_interval"},
		{"bird starts in ground", func(c *FlappyConfig) { c.Bird.StartY = 545 }, "start_y"},
		{"unknown progression", func(c *FlappyConfig) { c.Difficulty.Progression.Type = "level" }, "progression.type"},
		{"gap end outside range", func(c *FlappyConfig) { c.Difficulty.Scaling.GapEnd = 100 }, "gap_end"},
		{"no scroll", func(c *FlappyConfig) { c.World.ScrollSpeed = 0 }, "scroll_speed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error should mention %q, got %v", tc.field, err)
			}
		})
	}
}

func TestParseFlappyPartialOverride(t *testing.T) {
	data := []byte("physics:\n  gravity: 1000\nobstacles:\n  spawn_interval: 1.5\n")

	cfg, err := ParseFlappy(data)
	if err != nil {
		t.Fatalf("ParseFlappy() failed: %v", err)
	}
	if cfg.Physics.Gravity != 1000 {
		t.Errorf("gravity = %v, expected 1000", cfg.Physics.Gravity)
	}
	if cfg.Obstacles.SpawnInterval != 1.5 {
		t.Errorf("spawn_interval = %v, expected 1.5", cfg.Obstacles.SpawnInterval)
	}
	if cfg.Physics.FlapStrength != DefaultFlappyConfig().Physics.FlapStrength {
		t.Error("unspecified keys should keep their defaults")
	}
}

func TestParseFlappyBadYAML(t *testing.T) {
	if _, err := ParseFlappy([]byte("physics: [")); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoadFlappyCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flappy.yaml")
	if err := os.WriteFile(path, []byte("world:\n  scroll_speed: 200\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.World.ScrollSpeed != 200 {
		t.Errorf("scroll_speed = %v, expected 200", cfg.World.ScrollSpeed)
	}

	if _, err := LoadFlappy(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}

	if err := os.WriteFile(path, []byte("obstacles:\n  gap_min: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFlappy(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("invalid custom config should wrap ErrInvalidConfig, got %v", err)
	}
}

func TestApplyFlappyPreset(t *testing.T) {
	cfg := DefaultFlappyConfig()

	ApplyFlappyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: enabled=%v level=%v", cfg.Difficulty.Enabled, cfg.Difficulty.InitialLevel)
	}

	ApplyFlappyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	before := cfg
	ApplyFlappyPreset(&cfg, "")
	if cfg != before {
		t.Error("empty preset should not change the config")
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) should return DifficultyHard")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should map to empty")
	}
}
