package sim

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestCollide(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	size := cfg.Bird.Size
	groundTop := cfg.GroundTop()

	// One obstacle centered on the bird column with a gap in [235, 365].
	obstacles := NewArena(1)
	obstacles.Insert(Obstacle{X: 150, GapCenter: 300, GapSize: 130})

	tests := []struct {
		name string
		box  core.Rect
		want Cause
	}{
		{"inside gap", core.CenteredRect(150, 300, size, size), CauseNone},
		{"touching gap top", core.NewRect(135, 235, size, size), CauseNone},
		{"touching gap bottom", core.NewRect(135, 365-size, size, size), CauseNone},
		{"into top segment", core.CenteredRect(150, 240, size, size), CauseObstacle},
		{"into bottom segment", core.CenteredRect(150, 360, size, size), CauseObstacle},
		{"above the screen", core.CenteredRect(150, -50, size, size), CauseCeiling},
		{"touching ground", core.NewRect(400, groundTop-size, size, size), CauseNone},
		{"below ground", core.NewRect(400, groundTop-size+1, size, size), CauseGround},
		{"touching ceiling", core.NewRect(400, 0, size, size), CauseNone},
		{"through ceiling", core.NewRect(400, -1, size, size), CauseCeiling},
		{"left of obstacle, touching", core.NewRect(120-size, 100, size, size), CauseNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collide(tt.box, cfg, obstacles); got != tt.want {
				t.Errorf("Collide() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCollideOpenCeiling(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.World.Ceiling = false

	box := core.CenteredRect(400, -20, cfg.Bird.Size, cfg.Bird.Size)
	if got := Collide(box, cfg, NewArena(0)); got != CauseNone {
		t.Errorf("open ceiling should not collide, got %s", got)
	}

	// The top segment still extends above the screen.
	obstacles := NewArena(1)
	obstacles.Insert(Obstacle{X: 400, GapCenter: 300, GapSize: 130})
	if got := Collide(box, cfg, obstacles); got != CauseObstacle {
		t.Errorf("flying over an obstacle should collide, got %s", got)
	}

	tests := []struct {
		name string
		y    float64
		want Cause
	}{
		{"a screen above", -cfg.World.Height - 250, CauseObstacle},
		{"far above", -1e6, CauseObstacle},
		{"inside the gap", 300, CauseNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			high := core.CenteredRect(400, tt.y, cfg.Bird.Size, cfg.Bird.Size)
			if got := Collide(high, cfg, obstacles); got != tt.want {
				t.Errorf("Collide() at y=%v = %s, want %s", tt.y, got, tt.want)
			}
		})
	}

	// Beside the obstacle the sky is open.
	beside := core.CenteredRect(400+cfg.Obstacles.Width/2+cfg.Bird.Size/2, -1e6, cfg.Bird.Size, cfg.Bird.Size)
	if got := Collide(beside, cfg, obstacles); got != CauseNone {
		t.Errorf("edge-touching box above the screen = %s, want none", got)
	}
}

func TestOpenCeilingCannotPassOver(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.World.Ceiling = false
	w := NewWorld(cfg, 60, 3)
	w.Tick(Input{Flap: true})

	// Climb far above the screen and hover there.
	for i := 0; i < 2000 && w.State() == StatePlaying; i++ {
		w.Tick(Input{Flap: w.Snapshot().Bird.Y > -cfg.World.Height-250})
	}

	s := w.Snapshot()
	if s.State != StateGameOver || s.Cause != CauseObstacle {
		t.Fatalf("state %s cause %s score %d: hovering above the screen should hit the first obstacle", s.State, s.Cause, s.Score)
	}
	if s.Score != 0 {
		t.Errorf("score = %d, want 0", s.Score)
	}
}

func TestCauseString(t *testing.T) {
	for _, c := range []Cause{CauseNone, CauseGround, CauseCeiling, CauseObstacle} {
		if got := ParseCause(c.String()); got != c {
			t.Errorf("ParseCause(%q) = %s", c.String(), got)
		}
	}
}
