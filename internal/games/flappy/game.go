// Package flappy adapts the flappy simulation to the arcade platform.
// The bird flies through gaps in scrolling obstacles; one key flaps,
// and the same key starts a run from the title screen or after a crash.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

const (
	ID        = "flappy"
	ClassicID = "flappy_classic"
)

// Game implements registry.Game around a sim.World.
type Game struct {
	id      string
	title   string
	forced  config.DifficultyPreset // Overrides the CLI preset when set
	fixed   *config.FlappyConfig    // Skips config loading when set
	runtime core.RuntimeConfig
	cfg     config.FlappyConfig
	world   *sim.World
	snap    sim.Snapshot
	paused  bool
	loadErr error

	rec      *sim.Recording // Set for replays
	playback *sim.Playback
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// New creates the progressive variant: gaps narrow as the score grows.
func New() *Game {
	return &Game{id: ID, title: "Flappy Bird"}
}

// NewClassic creates the variant with a fixed gap range.
func NewClassic() *Game {
	return &Game{id: ClassicID, title: "Flappy Bird Classic", forced: config.DifficultyFixed}
}

// NewWithConfig creates a game that uses cfg as-is, ignoring config files
// and presets. Used by the headless simulator and replays.
func NewWithConfig(id string, cfg config.FlappyConfig) *Game {
	return &Game{id: id, title: "Flappy Bird", fixed: &cfg}
}

// NewReplay creates a game that plays back a recorded run of game id.
// Player input is ignored apart from pause.
func NewReplay(id string, cfg config.FlappyConfig, rec sim.Recording) *Game {
	return &Game{id: id, title: "Replay", fixed: &cfg, rec: &rec}
}

// SetPreset picks the difficulty preset for this instance, overriding the
// CLI preset. Variants with a built-in preset keep it.
func (g *Game) SetPreset(preset config.DifficultyPreset) {
	if g.id == ClassicID {
		return
	}
	g.forced = preset
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset builds a fresh world on the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg, g.loadErr = g.loadConfig()
	if g.rec != nil {
		g.playback = sim.NewPlayback(g.cfg, *g.rec)
		g.world = g.playback.World()
	} else {
		g.world = sim.NewWorld(g.cfg, runtime.TickRate, runtime.Seed)
	}
	g.snap = g.world.Snapshot()
	g.paused = false
}

// loadConfig resolves the tunables for a new world. A broken config file
// falls back to the defaults; the error is kept for the platform to report.
func (g *Game) loadConfig() (config.FlappyConfig, error) {
	if g.fixed != nil {
		return *g.fixed, nil
	}

	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		cfg = config.DefaultFlappyConfig()
	}

	preset := difficultyPreset
	if g.forced != "" {
		preset = g.forced
	}
	config.ApplyFlappyPreset(&cfg, preset)

	return cfg, err
}

// Step advances the game by one tick. Flap and confirm are the same input
// to the simulation; pause only applies mid-run.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && g.world.State() == sim.StatePlaying {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.playback != nil {
		g.playback.Step()
	} else {
		flap := in.Has(core.ActionFlap) || in.Has(core.ActionConfirm)
		g.world.Tick(sim.Input{Flap: flap})
	}
	g.snap = g.world.Snapshot()

	result := core.StepResult{State: g.State()}
	for _, e := range g.snap.Events {
		switch e.Kind {
		case sim.EventStarted:
			result.RunStarted = true
		case sim.EventDied:
			result.RunEnded = true
		}
	}
	return result
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.snap.Score,
		InMenu:   g.snap.State == sim.StateMenu,
		GameOver: g.snap.State == sim.StateGameOver,
		Paused:   g.paused,
	}
}

// Snapshot returns the world as of the last tick.
func (g *Game) Snapshot() sim.Snapshot {
	return g.snap
}

// Config returns the tunables the current world was built with.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// ConfigError returns the error from loading the config file, if any.
func (g *Game) ConfigError() error {
	return g.loadErr
}

// LastRun returns the recording of the last finished run, or nil.
// Replays never produce a new recording.
func (g *Game) LastRun() *sim.Recording {
	if g.world == nil || g.playback != nil {
		return nil
	}
	return g.world.LastRun()
}

// IsReplay reports whether the game plays back a recording.
func (g *Game) IsReplay() bool {
	return g.rec != nil
}

// ReplayError reports whether a finished replay diverged from its
// recording. It returns nil while the replay is still running.
func (g *Game) ReplayError() error {
	if g.playback == nil || !g.playback.Done() {
		return nil
	}
	return g.playback.Verify()
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
	registry.Register(ClassicID, func() registry.Game {
		return NewClassic()
	})
}
