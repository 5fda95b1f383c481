package sim

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// playUntilOver drives a world with a fixed flap pattern until the run ends.
func playUntilOver(t *testing.T, w *World) *Recording {
	t.Helper()
	w.Tick(Input{Flap: true})
	for i := 0; i < 20000 && w.State() == StatePlaying; i++ {
		w.Tick(Input{Flap: i%31 == 0 || i%47 == 0})
	}
	if w.State() != StateGameOver {
		t.Fatal("run did not end")
	}
	rec := w.LastRun()
	if rec == nil {
		t.Fatal("finished run should leave a recording")
	}
	return rec
}

func TestReplayReproducesRun(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	w := NewWorld(cfg, 60, 2024)
	rec := playUntilOver(t, w)

	if rec.Ticks != uint32(w.PlayTicks()) {
		t.Errorf("recorded ticks = %d, want %d", rec.Ticks, w.PlayTicks())
	}
	if rec.Score != w.Score() {
		t.Errorf("recorded score = %d, want %d", rec.Score, w.Score())
	}

	snap, err := Replay(cfg, *rec)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if snap.Score != rec.Score || snap.Cause != rec.Cause {
		t.Errorf("replay ended with %d/%s, want %d/%s", snap.Score, snap.Cause, rec.Score, rec.Cause)
	}
	if *snap.Bird != *w.Snapshot().Bird {
		t.Errorf("replayed bird %+v differs from live bird %+v", *snap.Bird, *w.Snapshot().Bird)
	}
}

func TestReplaySecondRun(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	w := NewWorld(cfg, 60, 9)
	first := playUntilOver(t, w)
	second := playUntilOver(t, w)

	if first.Seed == second.Seed {
		t.Error("each run should get its own seed")
	}
	if _, err := Replay(cfg, *second); err != nil {
		t.Errorf("Replay of second run: %v", err)
	}
}

func TestReplayMismatch(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	rec := *playUntilOver(t, NewWorld(cfg, 60, 31))

	tests := []struct {
		name   string
		mutate func(r *Recording)
	}{
		{"score", func(r *Recording) { r.Score++ }},
		{"cause", func(r *Recording) { r.Cause = CauseNone }},
		{"too few ticks", func(r *Recording) { r.Ticks-- }},
		{"too many ticks", func(r *Recording) { r.Ticks += 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rec.clone()
			tt.mutate(&r)
			if _, err := Replay(cfg, r); !errors.Is(err, ErrReplayMismatch) {
				t.Errorf("Replay error = %v, want ErrReplayMismatch", err)
			}
		})
	}
}

func TestRecordingIsDetached(t *testing.T) {
	w := NewWorld(config.DefaultFlappyConfig(), 60, 4)
	rec := playUntilOver(t, w)
	flaps := len(rec.Flaps)

	w.Tick(Input{Flap: true})
	for i := 0; i < 10; i++ {
		w.Tick(Input{Flap: true})
	}

	if len(rec.Flaps) != flaps {
		t.Error("a finished recording should not change when a new run starts")
	}
}

func TestPlaybackSteps(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	rec := playUntilOver(t, NewWorld(cfg, 60, 8))

	p := NewPlayback(cfg, *rec)
	if p.World().State() != StatePlaying {
		t.Fatalf("playback should start mid-run, state = %s", p.World().State())
	}

	steps := 0
	for !p.Done() {
		p.Step()
		steps++
	}
	if uint32(steps) != rec.Ticks {
		t.Errorf("playback took %d steps, want %d", steps, rec.Ticks)
	}
	if err := p.Verify(); err != nil {
		t.Errorf("Verify: %v", err)
	}

	// Stepping a finished playback is a no-op.
	tick := p.World().TickCount()
	p.Step()
	if p.World().TickCount() != tick {
		t.Error("finished playback should not advance")
	}
}
