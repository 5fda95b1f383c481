package sim

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Obstacle is a pair of solid segments above and below a gap, sharing one
// horizontal position.
type Obstacle struct {
	X         float64 // Horizontal center
	GapCenter float64
	GapSize   float64
	Passed    bool // Set once the bird has flown past, for scoring
}

// GapTop returns the y-coordinate of the top edge of the gap.
func (o Obstacle) GapTop() float64 {
	return o.GapCenter - o.GapSize/2
}

// GapBottom returns the y-coordinate of the bottom edge of the gap.
func (o Obstacle) GapBottom() float64 {
	return o.GapCenter + o.GapSize/2
}

// TopRect returns the on-screen rectangle of the upper segment, from the
// top of the playfield down to the gap.
func (o Obstacle) TopRect(cfg config.FlappyConfig) core.Rect {
	return core.NewRect(o.X-cfg.Obstacles.Width/2, 0, cfg.Obstacles.Width, o.GapTop())
}

// BottomRect returns the collision rectangle for the lower segment.
func (o Obstacle) BottomRect(cfg config.FlappyConfig) core.Rect {
	bottom := o.GapBottom()
	return core.NewRect(o.X-cfg.Obstacles.Width/2, bottom, cfg.Obstacles.Width, cfg.GroundTop()-bottom)
}

// Blocks reports whether box overlaps either segment. The upper segment has
// no top edge, so a bird above the screen with an open ceiling still hits
// it. Touching edges do not count.
func (o Obstacle) Blocks(box core.Rect, cfg config.FlappyConfig) bool {
	top := o.TopRect(cfg)
	if box.X >= top.Right() || top.X >= box.Right() {
		return false
	}
	return box.Y < o.GapTop() || box.Intersects(o.BottomRect(cfg))
}

// markPassed flips Passed from false to true and reports whether it did.
func (o *Obstacle) markPassed() bool {
	if o.Passed {
		return false
	}
	o.Passed = true
	return true
}

// Handle addresses an obstacle in an Arena. A handle goes stale once its
// obstacle is swept; the slot may be reused but with a new generation.
type Handle struct {
	Index int
	Gen   uint32
}

type slot struct {
	obstacle Obstacle
	gen      uint32
	live     bool
	retired  bool
}

// Arena stores obstacles in reusable slots. Removal happens in two steps:
// Retire tombstones an obstacle mid-tick, Sweep frees tombstoned slots at the
// tick boundary. Iteration never observes retired obstacles.
type Arena struct {
	slots []slot
	free  []int
	live  int
}

// NewArena creates an arena with room for capacity obstacles before growing.
func NewArena(capacity int) *Arena {
	return &Arena{
		slots: make([]slot, 0, capacity),
	}
}

// Insert stores an obstacle and returns its handle.
func (a *Arena) Insert(o Obstacle) Handle {
	var idx int
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot{})
		idx = len(a.slots) - 1
	}

	s := &a.slots[idx]
	s.obstacle = o
	s.live = true
	s.retired = false
	a.live++
	return Handle{Index: idx, Gen: s.gen}
}

// Get returns the obstacle behind a handle, or false if the handle is stale
// or the obstacle has been retired.
func (a *Arena) Get(h Handle) (*Obstacle, bool) {
	if h.Index < 0 || h.Index >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.Index]
	if !s.live || s.retired || s.gen != h.Gen {
		return nil, false
	}
	return &s.obstacle, true
}

// Retire tombstones an obstacle. It stays in its slot until the next Sweep.
func (a *Arena) Retire(h Handle) {
	if _, ok := a.Get(h); !ok {
		return
	}
	a.slots[h.Index].retired = true
	a.live--
}

// Sweep frees every retired slot and returns how many were freed.
func (a *Arena) Sweep() int {
	freed := 0
	for i := range a.slots {
		s := &a.slots[i]
		if !s.live || !s.retired {
			continue
		}
		s.live = false
		s.retired = false
		s.obstacle = Obstacle{}
		s.gen++
		a.free = append(a.free, i)
		freed++
	}
	return freed
}

// Clear retires and sweeps every obstacle.
func (a *Arena) Clear() {
	a.Each(func(h Handle, _ *Obstacle) {
		a.Retire(h)
	})
	a.Sweep()
}

// Len returns the number of obstacles that are neither retired nor freed.
func (a *Arena) Len() int {
	return a.live
}

// Each calls fn for every live obstacle in slot order. fn may modify the
// obstacle and may retire it; it must not insert.
func (a *Arena) Each(fn func(h Handle, o *Obstacle)) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.live || s.retired {
			continue
		}
		fn(Handle{Index: i, Gen: s.gen}, &s.obstacle)
	}
}

// Spawner owns the spawn timer and the gap generator.
type Spawner struct {
	elapsed  float64
	interval float64
	gen      *Generator
}

// spawnEpsilon absorbs the rounding error of summing fixed timesteps, so
// 120 ticks of 1/60s reach a 2s interval on the 120th tick.
const spawnEpsilon = 1e-9

// NewSpawner creates a spawner that fires every interval seconds.
func NewSpawner(interval float64, seed int64) *Spawner {
	return &Spawner{
		interval: interval,
		gen:      NewGenerator(seed),
	}
}

// Reset zeroes the timer and restarts the gap sequence from seed.
func (s *Spawner) Reset(seed int64) {
	s.elapsed = 0
	s.gen.Reseed(seed)
}

// Advance adds dt to the timer and reports whether an obstacle is due.
// The timer restarts from zero on every spawn, so at most one obstacle
// is due per tick.
func (s *Spawner) Advance(dt float64) bool {
	s.elapsed += dt
	if s.elapsed+spawnEpsilon < s.interval {
		return false
	}
	s.elapsed = 0
	return true
}

// Elapsed returns the time accumulated since the last spawn.
func (s *Spawner) Elapsed() float64 {
	return s.elapsed
}

// obstacleSystem scrolls every obstacle left, retires those past the left
// edge and spawns a new pair when the timer fires.
func obstacleSystem(w *World, dt float64) {
	step := w.cfg.World.ScrollSpeed * dt
	despawnX := w.cfg.DespawnX()

	w.obstacles.Each(func(h Handle, o *Obstacle) {
		o.X -= step
		if o.X < despawnX {
			w.obstacles.Retire(h)
		}
	})

	if !w.spawner.Advance(dt) {
		return
	}

	gapMin, gapMax := w.difficulty.GapRange(w.cfg.Obstacles.GapMin, w.cfg.Obstacles.GapMax, w.score, w.playTicks)
	low, high := w.cfg.GapBounds()
	center, size := w.spawner.gen.Gap(gapMin, gapMax, low, high)

	w.obstacles.Insert(Obstacle{
		X:         w.cfg.SpawnX(),
		GapCenter: center,
		GapSize:   size,
	})
}
