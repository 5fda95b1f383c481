package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

const testDT = 1.0 / 60.0

func newPlayingWorld(t *testing.T, seed int64) *World {
	t.Helper()
	w := NewWorld(config.DefaultFlappyConfig(), 60, seed)
	w.Tick(Input{Flap: true})
	if w.State() != StatePlaying {
		t.Fatalf("confirm should start a run, state = %s", w.State())
	}
	return w
}

// keepAloft flaps often enough to keep the bird clear of the ground and
// the ceiling with default tunables.
func keepAloft(tick int) bool {
	return tick%50 == 20
}

func TestGravityIntegration(t *testing.T) {
	w := newPlayingWorld(t, 1)
	gravity := w.cfg.Physics.Gravity

	const n = 30
	for i := 0; i < n; i++ {
		w.Tick(Input{})
	}

	want := gravity * n * testDT
	if math.Abs(w.bird.Velocity-want) > 1e-9 {
		t.Errorf("velocity after %d ticks = %f, want %f", n, w.bird.Velocity, want)
	}
	if w.bird.Y <= w.cfg.Bird.StartY {
		t.Errorf("bird should have fallen from %f, y = %f", w.cfg.Bird.StartY, w.bird.Y)
	}
}

func TestFlapOverridesVelocity(t *testing.T) {
	tests := []struct {
		name      string
		fallTicks int
	}{
		{"at rest", 0},
		{"falling slowly", 5},
		{"falling fast", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newPlayingWorld(t, 1)
			for i := 0; i < tt.fallTicks; i++ {
				w.Tick(Input{})
			}
			w.Tick(Input{Flap: true})

			if w.bird.Velocity != w.cfg.Physics.FlapStrength {
				t.Errorf("velocity after flap = %f, want %f", w.bird.Velocity, w.cfg.Physics.FlapStrength)
			}
		})
	}
}

func TestFlapIsNotAdditive(t *testing.T) {
	w := newPlayingWorld(t, 1)
	w.Tick(Input{Flap: true})
	w.Tick(Input{Flap: true})

	if w.bird.Velocity != w.cfg.Physics.FlapStrength {
		t.Errorf("two flaps in a row should not stack, velocity = %f", w.bird.Velocity)
	}
}

func TestTilt(t *testing.T) {
	p := config.DefaultFlappyConfig().Physics

	tests := []struct {
		name     string
		velocity float64
		want     float64
	}{
		{"full flap", p.FlapStrength, p.MaxTiltUp},
		{"half flap", p.FlapStrength / 2, p.MaxTiltUp / 2},
		{"level", 0, 0},
		{"falling", p.TiltFallScale / 2, -0.5},
		{"terminal", 10 * p.TiltFallScale, p.MaxTiltDown},
		{"faster than flap", 2 * p.FlapStrength, p.MaxTiltUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tilt(tt.velocity, p)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Tilt(%f) = %f, want %f", tt.velocity, got, tt.want)
			}
		})
	}
}

func TestPhysicsWithoutBird(t *testing.T) {
	w := NewWorld(config.DefaultFlappyConfig(), 60, 1)

	defer func() {
		r := recover()
		if debugAssertions && r == nil {
			t.Error("expected panic in debug build")
		}
		if !debugAssertions && r != nil {
			t.Errorf("expected no-op in release build, got panic %v", r)
		}
	}()

	physicsSystem(w, testDT)

	if w.bird != nil {
		t.Error("physics should not create a bird")
	}
}
