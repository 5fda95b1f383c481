package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default flappy configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file is unusable.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			Width:        400,
			Height:       600,
			GroundHeight: 50,
			ScrollSpeed:  150,
			Ceiling:      true,
		},
		Physics: FlappyPhysics{
			Gravity:       800,
			FlapStrength:  -350,
			MaxTiltUp:     0.5,
			MaxTiltDown:   -1.2,
			TiltFallScale: 500,
		},
		Bird: FlappyBird{
			X:      150,
			StartY: 300,
			Size:   30,
		},
		Obstacles: FlappyObstacles{
			Width:         60,
			GapMin:        130,
			GapMax:        180,
			GapMargin:     50,
			SpawnInterval: 2.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 30,
			},
			Scaling: ScalingConfig{
				GapEnd: 135,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "flappy", "flappy_classic":
		return defaultFlappyYAML
	default:
		return nil
	}
}
