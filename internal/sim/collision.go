package sim

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Cause describes what ended a run.
type Cause int

const (
	CauseNone Cause = iota
	CauseGround
	CauseCeiling
	CauseObstacle
)

// String returns a human-readable name for the cause.
func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseGround:
		return "ground"
	case CauseCeiling:
		return "ceiling"
	case CauseObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// ParseCause is the inverse of Cause.String. Unknown names map to CauseNone.
func ParseCause(s string) Cause {
	switch s {
	case "ground":
		return CauseGround
	case "ceiling":
		return CauseCeiling
	case "obstacle":
		return CauseObstacle
	default:
		return CauseNone
	}
}

// Collide tests a bird box against the playfield boundaries and every
// obstacle in the arena. Touching edges do not count. The first hit found
// is returned; any hit ends the run the same way.
func Collide(box core.Rect, cfg config.FlappyConfig, obstacles *Arena) Cause {
	if box.Bottom() > cfg.GroundTop() {
		return CauseGround
	}
	if cfg.World.Ceiling && box.Y < 0 {
		return CauseCeiling
	}

	hit := false
	obstacles.Each(func(_ Handle, o *Obstacle) {
		if hit {
			return
		}
		if o.Blocks(box, cfg) {
			hit = true
		}
	})
	if hit {
		return CauseObstacle
	}
	return CauseNone
}

// collisionSystem raises a GameOver request when the bird hits something.
// It never writes the state itself.
func collisionSystem(w *World) {
	if !precondition(w.bird != nil, "collision check invoked with no bird") {
		return
	}

	if cause := Collide(w.bird.Box(w.cfg.Bird.Size), w.cfg, w.obstacles); cause != CauseNone {
		w.request(StateGameOver, cause)
	}
}
