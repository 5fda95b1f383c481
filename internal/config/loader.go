package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when tunables fail validation.
var ErrInvalidConfig = errors.New("config: invalid flappy config")

// LoadFlappy loads the flappy configuration.
// Search order: customPath -> ~/.arcade/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default
// Files only need to name the keys they change; the rest comes from the defaults.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseFlappy(data)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseFlappy(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/flappy.yaml"); err == nil {
		if cfg, err := ParseFlappy(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseFlappy(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseFlappy decodes YAML on top of the default configuration and validates the result.
func ParseFlappy(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FlappyConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return FlappyConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the tunables describe a playable world.
// All problems are reported together, wrapped in ErrInvalidConfig.
func (c FlappyConfig) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.World.Width > 0, "world.width must be positive (got %v)", c.World.Width)
	check(c.World.Height > 0, "world.height must be positive (got %v)", c.World.Height)
	check(c.World.GroundHeight >= 0 && c.World.GroundHeight < c.World.Height,
		"world.ground_height must be in [0, height) (got %v)", c.World.GroundHeight)
	check(c.World.ScrollSpeed > 0, "world.scroll_speed must be positive (got %v)", c.World.ScrollSpeed)

	check(c.Physics.Gravity > 0, "physics.gravity must be positive (got %v)", c.Physics.Gravity)
	check(c.Physics.FlapStrength < 0, "physics.flap_strength must be negative (got %v)", c.Physics.FlapStrength)
	check(c.Physics.MaxTiltUp >= 0, "physics.max_tilt_up must not be negative (got %v)", c.Physics.MaxTiltUp)
	check(c.Physics.MaxTiltDown <= 0, "physics.max_tilt_down must not be positive (got %v)", c.Physics.MaxTiltDown)
	check(c.Physics.TiltFallScale > 0, "physics.tilt_fall_scale must be positive (got %v)", c.Physics.TiltFallScale)

	check(c.Bird.Size > 0, "bird.size must be positive (got %v)", c.Bird.Size)
	check(c.Bird.X >= 0 && c.Bird.X <= c.World.Width, "bird.x must be inside the world (got %v)", c.Bird.X)
	check(c.Bird.StartY-c.Bird.Size/2 > 0 && c.Bird.StartY+c.Bird.Size/2 < c.GroundTop(),
		"bird.start_y must keep the bird between ceiling and ground (got %v)", c.Bird.StartY)

	low, high := c.GapBounds()
	check(c.Obstacles.Width > 0, "obstacles.width must be positive (got %v)", c.Obstacles.Width)
	check(c.Obstacles.GapMin > 0, "obstacles.gap_min must be positive (got %v)", c.Obstacles.GapMin)
	check(c.Obstacles.GapMin <= c.Obstacles.GapMax, "obstacles.gap_min (%v) exceeds gap_max (%v)",
		c.Obstacles.GapMin, c.Obstacles.GapMax)
	check(c.Obstacles.GapMargin >= 0, "obstacles.gap_margin must not be negative (got %v)", c.Obstacles.GapMargin)
	check(c.Obstacles.GapMax <= high-low, "obstacles.gap_max (%v) does not fit the playfield (%v available)",
		c.Obstacles.GapMax, high-low)
	check(c.Obstacles.SpawnInterval > 0, "obstacles.spawn_interval must be positive (got %v)", c.Obstacles.SpawnInterval)

	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		problems = append(problems, fmt.Sprintf("difficulty.progression.type %q is not score, time or none",
			c.Difficulty.Progression.Type))
	}
	check(c.Difficulty.InitialLevel >= 0 && c.Difficulty.InitialLevel <= 1,
		"difficulty.initial_level must be in [0, 1] (got %v)", c.Difficulty.InitialLevel)
	if c.Difficulty.Enabled {
		end := c.Difficulty.Scaling.GapEnd
		check(end >= c.Obstacles.GapMin && end <= c.Obstacles.GapMax,
			"difficulty.scaling.gap_end (%v) must be within [gap_min, gap_max]", end)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
		return
	case IsFixedPreset(preset):
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
