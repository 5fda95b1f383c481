package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// Autopilot is a simple bot for demos and the headless simulator. It holds
// a "flap" level while the bird is falling below its target height and turns
// that level into presses with an edge trigger, the same way a held key is
// debounced.
type Autopilot struct {
	cfg     config.FlappyConfig
	trigger core.EdgeTrigger
	state   sim.State
}

// NewAutopilot creates an autopilot for worlds built with cfg.
func NewAutopilot(cfg config.FlappyConfig) *Autopilot {
	return &Autopilot{cfg: cfg, state: sim.StateMenu}
}

// Decide returns whether to press flap on the next tick, given the snapshot
// after the last one. Outside a run it presses to start one.
func (a *Autopilot) Decide(s sim.Snapshot) bool {
	if s.State != a.state {
		a.state = s.State
		a.trigger.Reset()
	}
	return a.trigger.Sample(a.wantsFlap(s))
}

func (a *Autopilot) wantsFlap(s sim.Snapshot) bool {
	if s.State != sim.StatePlaying || s.Bird == nil {
		return true
	}
	return s.Bird.Velocity > 0 && s.Bird.Y > a.target(s)
}

// target is the height to flap at. Flapping one bird size above the bottom
// of the next gap leaves room for the rise that follows.
func (a *Autopilot) target(s sim.Snapshot) float64 {
	next, ok := s.NextObstacle()
	if !ok {
		return a.cfg.Bird.StartY
	}
	return next.GapCenter + next.GapSize/2 - a.cfg.Bird.Size
}
