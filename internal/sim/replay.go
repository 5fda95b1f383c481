package sim

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// ErrReplayMismatch is returned when re-simulating a recording does not end
// the way the recording says it did.
var ErrReplayMismatch = errors.New("sim: replay does not match recording")

// Recording holds what is needed to reproduce a finished run: the run seed,
// the fixed tick rate and the Playing tick indices on which a flap was
// applied. Score and Cause are the recorded outcome.
type Recording struct {
	Seed     int64
	TickRate int
	Ticks    uint32
	Flaps    []uint32
	Score    int
	Cause    Cause
}

func (r Recording) clone() Recording {
	r.Flaps = slices.Clone(r.Flaps)
	return r
}

// Playback feeds a recording into a fresh world one tick at a time.
type Playback struct {
	world *World
	rec   Recording
	next  int    // Index into rec.Flaps
	tick  uint32 // Playing ticks fed so far
}

// NewPlayback creates a world already in Playing with the recording's seed.
func NewPlayback(cfg config.FlappyConfig, rec Recording) *Playback {
	w := NewWorld(cfg, rec.TickRate, rec.Seed)
	w.begin(rec.Seed)
	return &Playback{world: w, rec: rec}
}

// World returns the world being driven.
func (p *Playback) World() *World {
	return p.world
}

// Done reports whether the run has ended or the recording is exhausted.
func (p *Playback) Done() bool {
	return p.world.state != StatePlaying || p.tick >= p.rec.Ticks
}

// Step advances one tick, flapping where the recording did.
func (p *Playback) Step() {
	if p.Done() {
		return
	}

	flap := p.next < len(p.rec.Flaps) && p.rec.Flaps[p.next] == p.tick
	if flap {
		p.next++
	}
	p.world.Tick(Input{Flap: flap})
	p.tick++
}

// Verify compares the world against the recorded outcome.
func (p *Playback) Verify() error {
	w := p.world
	switch {
	case w.state == StatePlaying:
		return fmt.Errorf("%w: run still %s after %d ticks", ErrReplayMismatch, w.state, p.tick)
	case p.tick != p.rec.Ticks:
		return fmt.Errorf("%w: run ended at tick %d of %d", ErrReplayMismatch, p.tick, p.rec.Ticks)
	case w.score != p.rec.Score:
		return fmt.Errorf("%w: score %d, recorded %d", ErrReplayMismatch, w.score, p.rec.Score)
	case w.cause != p.rec.Cause:
		return fmt.Errorf("%w: cause %s, recorded %s", ErrReplayMismatch, w.cause, p.rec.Cause)
	}
	return nil
}

// Replay re-simulates a recording against cfg and returns the final
// snapshot. It fails with ErrReplayMismatch if the run ends early, does not
// end, or ends with a different score or cause.
func Replay(cfg config.FlappyConfig, rec Recording) (Snapshot, error) {
	p := NewPlayback(cfg, rec)
	for !p.Done() {
		p.Step()
	}
	return p.world.Snapshot(), p.Verify()
}
