package sim

import (
	"sort"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// BirdView is the read-only bird state for presentation.
type BirdView struct {
	X, Y     float64
	Velocity float64
	Tilt     float64 // Radians, positive = nose up
	Box      core.Rect
}

// ObstacleView is the read-only obstacle state for presentation.
type ObstacleView struct {
	Handle    Handle
	X         float64
	GapCenter float64
	GapSize   float64
	Passed    bool
	Top       core.Rect
	Bottom    core.Rect
}

// Snapshot is everything a presentation layer needs after a tick. It shares
// no memory with the World.
type Snapshot struct {
	State     State
	Score     int
	Tick      uint64
	Bird      *BirdView // nil in Menu
	Obstacles []ObstacleView
	Events    []Event
	Cause     Cause // Why the last run ended, CauseNone while playing
}

// Snapshot captures the world after the last tick. Obstacles are ordered
// left to right.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		State:  w.state,
		Score:  w.score,
		Tick:   w.tick,
		Cause:  w.cause,
		Events: append([]Event(nil), w.events...),
	}

	if w.bird != nil {
		s.Bird = &BirdView{
			X:        w.bird.X,
			Y:        w.bird.Y,
			Velocity: w.bird.Velocity,
			Tilt:     Tilt(w.bird.Velocity, w.cfg.Physics),
			Box:      w.bird.Box(w.cfg.Bird.Size),
		}
	}

	s.Obstacles = make([]ObstacleView, 0, w.obstacles.Len())
	w.obstacles.Each(func(h Handle, o *Obstacle) {
		s.Obstacles = append(s.Obstacles, ObstacleView{
			Handle:    h,
			X:         o.X,
			GapCenter: o.GapCenter,
			GapSize:   o.GapSize,
			Passed:    o.Passed,
			Top:       o.TopRect(w.cfg),
			Bottom:    o.BottomRect(w.cfg),
		})
	})
	sort.Slice(s.Obstacles, func(i, j int) bool {
		return s.Obstacles[i].X < s.Obstacles[j].X
	})

	return s
}

// NextObstacle returns the nearest obstacle whose right edge is still ahead
// of the bird's left edge, or false if there is none.
func (s Snapshot) NextObstacle() (ObstacleView, bool) {
	if s.Bird == nil {
		return ObstacleView{}, false
	}
	for _, o := range s.Obstacles {
		if o.Top.Right() > s.Bird.Box.X {
			return o, true
		}
	}
	return ObstacleView{}, false
}
