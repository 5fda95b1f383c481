// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// FlappyConfig contains all tunables of the flappy simulation.
// Distances are world units, times are seconds, angles are radians.
// Y grows downward, so an upward flap has a negative strength.
type FlappyConfig struct {
	World      FlappyWorld      `yaml:"world"`
	Physics    FlappyPhysics    `yaml:"physics"`
	Bird       FlappyBird       `yaml:"bird"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyWorld defines the playfield.
type FlappyWorld struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
	ScrollSpeed  float64 `yaml:"scroll_speed"` // Obstacle speed to the left, units/s
	Ceiling      bool    `yaml:"ceiling"`      // Whether touching the top edge ends the run
}

// FlappyPhysics defines bird motion parameters.
type FlappyPhysics struct {
	Gravity       float64 `yaml:"gravity"`         // Downward acceleration, units/s^2
	FlapStrength  float64 `yaml:"flap_strength"`   // Velocity set by a flap, units/s (negative = up)
	MaxTiltUp     float64 `yaml:"max_tilt_up"`     // Nose-up tilt at full flap velocity
	MaxTiltDown   float64 `yaml:"max_tilt_down"`   // Most nose-down tilt (negative)
	TiltFallScale float64 `yaml:"tilt_fall_scale"` // Fall velocity per radian of nose-down tilt
}

// FlappyBird defines the bird's fixed column, start position and hitbox.
type FlappyBird struct {
	X      float64 `yaml:"x"`
	StartY float64 `yaml:"start_y"`
	Size   float64 `yaml:"size"`
}

// FlappyObstacles defines obstacle geometry and spawn cadence.
type FlappyObstacles struct {
	Width         float64 `yaml:"width"`
	GapMin        float64 `yaml:"gap_min"`
	GapMax        float64 `yaml:"gap_max"`
	GapMargin     float64 `yaml:"gap_margin"` // Minimum distance between a gap and the ceiling/ground
	SpawnInterval float64 `yaml:"spawn_interval"`
}

// GroundTop returns the y-coordinate of the top of the ground.
func (c FlappyConfig) GroundTop() float64 {
	return c.World.Height - c.World.GroundHeight
}

// GapBounds returns the vertical interval every gap must fit in.
func (c FlappyConfig) GapBounds() (low, high float64) {
	return c.Obstacles.GapMargin, c.GroundTop() - c.Obstacles.GapMargin
}

// SpawnX returns the x-coordinate at which new obstacles appear.
func (c FlappyConfig) SpawnX() float64 {
	return c.World.Width + c.Obstacles.Width
}

// DespawnX returns the x-coordinate below which obstacles are removed.
func (c FlappyConfig) DespawnX() float64 {
	return -c.Obstacles.Width
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	// GapEnd is the gap size both gap bounds converge to at max difficulty.
	GapEnd float64 `yaml:"gap_end"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
