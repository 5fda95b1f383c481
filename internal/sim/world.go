package sim

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Input is the per-tick input. Flap is an edge: it must be true on exactly
// one tick per press. In Menu and GameOver it confirms a new run.
type Input struct {
	Flap bool
}

// World is the simulation context. It owns every piece of mutable game state
// and is advanced by a single driver, one tick at a time.
type World struct {
	cfg        config.FlappyConfig
	difficulty *config.DifficultyManager
	tickRate   int
	dt         float64

	state     State
	pending   transition
	cause     Cause
	bird      *Bird
	obstacles *Arena
	spawner   *Spawner
	score     int

	tick       uint64 // Ticks since creation
	playTicks  int    // Playing ticks in the current run
	flapQueued bool
	events     []Event

	seeder    *rand.Rand
	sessions  int
	recording Recording
	lastRun   *Recording
}

// NewWorld creates a world in the Menu state. seed drives the sequence of
// per-run seeds, so two worlds with the same seed and inputs stay identical.
func NewWorld(cfg config.FlappyConfig, tickRate int, seed int64) *World {
	if tickRate <= 0 {
		tickRate = 60
	}
	seeder := rand.New(rand.NewSource(seed))

	return &World{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		tickRate:   tickRate,
		dt:         1.0 / float64(tickRate),
		state:      StateMenu,
		obstacles:  NewArena(8),
		spawner:    NewSpawner(cfg.Obstacles.SpawnInterval, seed),
		seeder:     seeder,
		events:     make([]Event, 0, 4),
	}
}

// Tick advances the world by one fixed timestep.
func (w *World) Tick(in Input) {
	w.Step(in, w.dt)
}

// Step advances the world by dt. Runs driven with a varying dt are not
// reproducible by Replay, which always uses the fixed timestep.
//
// Systems run in a fixed order: input, physics, spawn/move, collision, score,
// then the state transition requested during the tick.
func (w *World) Step(in Input, dt float64) {
	w.events = w.events[:0]
	w.tick++

	w.applyInput(in)

	if w.state == StatePlaying {
		physicsSystem(w, dt)
		obstacleSystem(w, dt)
		collisionSystem(w)
		scoreSystem(w)
		w.playTicks++
	}

	w.applyTransition()
	w.obstacles.Sweep()
}

func (w *World) applyInput(in Input) {
	if !in.Flap {
		return
	}
	switch w.state {
	case StateMenu, StateGameOver:
		w.request(StatePlaying, CauseNone)
	case StatePlaying:
		w.flapQueued = true
	}
}

// State returns the current game state.
func (w *World) State() State {
	return w.state
}

// Score returns the score of the current or last run.
func (w *World) Score() int {
	return w.score
}

// TickCount returns the number of ticks since the world was created.
func (w *World) TickCount() uint64 {
	return w.tick
}

// PlayTicks returns the number of Playing ticks in the current run.
func (w *World) PlayTicks() int {
	return w.playTicks
}

// TickRate returns the fixed number of ticks per second.
func (w *World) TickRate() int {
	return w.tickRate
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.FlappyConfig {
	return w.cfg
}

// Events returns the events emitted during the last tick. The slice is
// reused by the next tick.
func (w *World) Events() []Event {
	return w.events
}

// Sessions returns how many runs have been started.
func (w *World) Sessions() int {
	return w.sessions
}

// LastRun returns the recording of the most recently finished run, or nil
// if no run has ended yet.
func (w *World) LastRun() *Recording {
	return w.lastRun
}

// Difficulty returns the current difficulty level in [0, 1].
func (w *World) Difficulty() float64 {
	return w.difficulty.Level(w.score, w.playTicks)
}
