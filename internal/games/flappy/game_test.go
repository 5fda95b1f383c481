package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(seed int64) *Game {
	g := NewWithConfig(ID, config.DefaultFlappyConfig())
	g.Reset(testRuntime(seed))
	return g
}

func flapFrame() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionFlap)
	return in
}

// stepAutopilot runs the game under the autopilot for n ticks.
func stepAutopilot(g *Game, ap *Autopilot, n int) {
	for i := 0; i < n; i++ {
		in := core.NewInputFrame()
		if ap.Decide(g.Snapshot()) {
			in.Set(core.ActionFlap)
		}
		g.Step(in)
	}
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must give identical runs
	inputSequence := make([]core.InputFrame, 400)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i%40 == 0 {
			inputSequence[i].Set(core.ActionFlap)
		}
	}

	run := func() sim.Snapshot {
		g := newTestGame(12345)
		for _, in := range inputSequence {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if s1.Score != s2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", s1.Score, s2.Score)
	}
	if s1.Tick != s2.Tick {
		t.Errorf("Determinism failed: tick counts differ. Run1=%d, Run2=%d", s1.Tick, s2.Tick)
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(42)

	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		if i%10 == 0 {
			in.Set(core.ActionFlap)
		}
		g.Step(in)
	}

	g.Reset(testRuntime(42))

	state := g.State()
	if state.Score != 0 {
		t.Errorf("Reset should clear score, got %d", state.Score)
	}
	if !state.InMenu {
		t.Error("Reset should return to the title screen")
	}
	if state.GameOver || state.Paused {
		t.Errorf("Reset should clear game over and pause, got %+v", state)
	}
}

func TestGameFlapPhysics(t *testing.T) {
	g := newTestGame(1)
	g.Step(flapFrame()) // start

	initialY := g.Snapshot().Bird.Y
	g.Step(flapFrame())

	bird := g.Snapshot().Bird
	if bird.Y >= initialY {
		t.Errorf("Flap should move bird up, was %f, now %f", initialY, bird.Y)
	}
	if bird.Velocity != g.Config().Physics.FlapStrength {
		t.Errorf("Flap should set velocity to %f, got %f", g.Config().Physics.FlapStrength, bird.Velocity)
	}
}

func TestConfirmStartsRun(t *testing.T) {
	g := newTestGame(1)

	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	result := g.Step(in)

	if !result.RunStarted {
		t.Error("confirm should start a run")
	}
	if result.State.InMenu {
		t.Error("game should leave the title screen")
	}
}

func TestGameRunEnds(t *testing.T) {
	g := newTestGame(1)
	g.Step(flapFrame())

	ended := false
	for i := 0; i < 300 && !ended; i++ {
		ended = g.Step(core.NewInputFrame()).RunEnded
	}

	if !ended {
		t.Fatal("bird without input should crash")
	}
	if !g.State().GameOver {
		t.Error("state should report game over")
	}
	if g.LastRun() == nil {
		t.Error("finished run should be recorded")
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(1)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	g.Step(pause)
	if g.State().Paused {
		t.Error("pause should be ignored on the title screen")
	}

	g.Step(flapFrame())
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("pause should apply mid-run")
	}

	before := g.Snapshot()
	for i := 0; i < 30; i++ {
		g.Step(flapFrame())
	}
	after := g.Snapshot()
	if *before.Bird != *after.Bird || before.Tick != after.Tick {
		t.Error("paused game should not advance")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestClassicIsFixed(t *testing.T) {
	g := NewClassic()
	g.Reset(testRuntime(1))

	if g.ID() != ClassicID {
		t.Errorf("ID = %q", g.ID())
	}
	if g.Config().Difficulty.Enabled {
		t.Error("classic variant should not narrow gaps")
	}
}

func TestAutopilotSurvivesApproach(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := newTestGame(seed)
		ap := NewAutopilot(g.Config())

		stepAutopilot(g, ap, 201)

		if s := g.Snapshot(); s.State != sim.StatePlaying {
			t.Errorf("seed %d: autopilot crashed early (%s, cause %s)", seed, s.State, s.Cause)
		}
	}
}

func TestRenderMenu(t *testing.T) {
	g := newTestGame(1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, g.Title()) {
		t.Error("title screen should show the game title")
	}
	if !strings.Contains(screen.Row(22), string(GroundChar)) {
		t.Errorf("ground row = %q", screen.Row(22))
	}
	if !strings.Contains(screen.Row(23), string(DirtChar)) {
		t.Errorf("dirt row = %q", screen.Row(23))
	}
}

func TestRenderBird(t *testing.T) {
	g := newTestGame(1)
	g.Step(flapFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// Bird box spans columns 27-32 on row 11 at 80x24.
	if got := screen.Get(32, 11); got != BirdLevel {
		t.Errorf("bird head = %q, want %q", got, BirdLevel)
	}
	if got := screen.GetCell(27, 11); got.Rune != BirdBody || got.Color != core.ColorBrightYellow {
		t.Errorf("bird body = %+v", got)
	}
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
}

func TestRenderObstacles(t *testing.T) {
	g := newTestGame(3)
	ap := NewAutopilot(g.Config())
	stepAutopilot(g, ap, 151)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.ContainsRune(screen.String(), PipeChar) {
		t.Errorf("expected an obstacle on screen:\n%s", screen.String())
	}
}

func TestRenderTinyScreen(t *testing.T) {
	g := newTestGame(1)
	screen := core.NewScreen(10, 4)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Terminal") {
		t.Errorf("tiny screen should show a notice, got %q", screen.String())
	}
}

func TestBirdGlyph(t *testing.T) {
	tests := []struct {
		tilt float64
		want rune
	}{
		{0.5, BirdUp},
		{0, BirdLevel},
		{0.1, BirdLevel},
		{-0.1, BirdLevel},
		{-1.2, BirdDown},
	}
	for _, tt := range tests {
		if got := birdGlyph(tt.tilt); got != tt.want {
			t.Errorf("birdGlyph(%f) = %q, want %q", tt.tilt, got, tt.want)
		}
	}
}

func TestReplayGame(t *testing.T) {
	live := newTestGame(21)
	live.Step(flapFrame())
	for i := 0; i < 20000 && !live.State().GameOver; i++ {
		in := core.NewInputFrame()
		if i%31 == 0 || i%47 == 0 {
			in.Set(core.ActionFlap)
		}
		live.Step(in)
	}
	rec := live.LastRun()
	if rec == nil {
		t.Fatal("run should have ended")
	}

	g := NewReplay(ID, live.Config(), *rec)
	g.Reset(testRuntime(0))
	if g.State().InMenu {
		t.Fatal("replay should start mid-run")
	}

	for i := 0; i < int(rec.Ticks)+10; i++ {
		g.Step(flapFrame())
	}

	if !g.State().GameOver {
		t.Fatal("replay should reach the recorded crash")
	}
	if g.State().Score != rec.Score {
		t.Errorf("replay score = %d, want %d", g.State().Score, rec.Score)
	}
	if err := g.ReplayError(); err != nil {
		t.Errorf("ReplayError() = %v", err)
	}
	if g.LastRun() != nil {
		t.Error("replays should not produce recordings")
	}
}

func TestSetPreset(t *testing.T) {
	tests := []struct {
		name    string
		game    *Game
		preset  config.DifficultyPreset
		enabled bool
	}{
		{"progressive fixed", New(), config.DifficultyFixed, false},
		{"progressive hard", New(), config.DifficultyHard, true},
		{"classic ignores preset", NewClassic(), config.DifficultyHard, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.game.SetPreset(tt.preset)
			tt.game.Reset(testRuntime(1))
			if got := tt.game.Config().Difficulty.Enabled; got != tt.enabled {
				t.Errorf("Difficulty.Enabled = %v, want %v", got, tt.enabled)
			}
		})
	}
}
