package sim

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bird is the player. X stays fixed; the world scrolls past it.
type Bird struct {
	X        float64
	Y        float64 // Center of the hitbox
	Velocity float64 // Vertical velocity, positive = falling
}

// newBird returns a bird at rest at its configured start position.
func newBird(cfg config.FlappyConfig) *Bird {
	return &Bird{
		X: cfg.Bird.X,
		Y: cfg.Bird.StartY,
	}
}

// Box returns the bird's collision rectangle.
func (b *Bird) Box(size float64) core.Rect {
	return core.CenteredRect(b.X, b.Y, size, size)
}

// integrate advances the bird by dt. Gravity is applied first; a flap then
// replaces the velocity outright, so a flap always leaves the bird moving at
// exactly flapStrength no matter how fast it was falling.
func (b *Bird) integrate(p config.FlappyPhysics, flap bool, dt float64) {
	b.Velocity += p.Gravity * dt
	if flap {
		b.Velocity = p.FlapStrength
	}
	b.Y += b.Velocity * dt
}

// Tilt maps a vertical velocity to a rotation in radians, positive = nose up.
// Rising tilts up in proportion to the flap velocity, falling tilts down in
// proportion to TiltFallScale; both are clamped to the configured limits.
func Tilt(velocity float64, p config.FlappyPhysics) float64 {
	if velocity < 0 {
		if p.FlapStrength == 0 {
			return p.MaxTiltUp
		}
		return core.ClampF(velocity/p.FlapStrength*p.MaxTiltUp, 0, p.MaxTiltUp)
	}
	if p.TiltFallScale <= 0 {
		return 0
	}
	return core.ClampF(-velocity/p.TiltFallScale, p.MaxTiltDown, 0)
}

// physicsSystem integrates the bird for one tick.
func physicsSystem(w *World, dt float64) {
	if !precondition(w.bird != nil, "bird physics invoked with no bird") {
		return
	}

	flap := w.flapQueued
	w.flapQueued = false

	w.bird.integrate(w.cfg.Physics, flap, dt)

	if flap {
		w.recording.Flaps = append(w.recording.Flaps, uint32(w.playTicks))
		w.emit(Event{Kind: EventFlapped, X: w.bird.X, Y: w.bird.Y})
	}
}
