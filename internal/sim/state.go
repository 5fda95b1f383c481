package sim

// State is the game flow state. The World holds the only authoritative copy.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// transition is a state change requested by a system during a tick.
type transition struct {
	to    State
	cause Cause
	set   bool
}

// validTransition reports whether from -> to is an edge of the state machine.
func validTransition(from, to State) bool {
	switch from {
	case StateMenu, StateGameOver:
		return to == StatePlaying
	case StatePlaying:
		return to == StateGameOver
	}
	return false
}

// request records a transition to be applied at the end of the tick. The
// first valid request of a tick wins; later ones are dropped.
func (w *World) request(to State, cause Cause) {
	if w.pending.set || !validTransition(w.state, to) {
		return
	}
	w.pending = transition{to: to, cause: cause, set: true}
}

// applyTransition consumes the pending request, if any.
func (w *World) applyTransition() {
	if !w.pending.set {
		return
	}
	t := w.pending
	w.pending = transition{}

	switch t.to {
	case StatePlaying:
		w.begin(w.seeder.Int63())
	case StateGameOver:
		w.state = StateGameOver
		w.cause = t.cause
		w.recording.Ticks = uint32(w.playTicks)
		w.recording.Score = w.score
		w.recording.Cause = t.cause
		last := w.recording.clone()
		w.lastRun = &last
		w.emit(Event{Kind: EventDied, X: w.bird.X, Y: w.bird.Y, Score: w.score, Cause: t.cause})
	}
}

// begin enters Playing with a fresh session. Every entry into Playing goes
// through here, so starting from Menu and restarting from GameOver produce
// identical state for the same session seed.
func (w *World) begin(seed int64) {
	w.state = StatePlaying
	w.cause = CauseNone
	w.score = 0
	w.playTicks = 0
	w.flapQueued = false
	w.spawner.Reset(seed)
	w.obstacles.Clear()
	w.bird = newBird(w.cfg)
	w.sessions++
	w.recording = Recording{
		Seed:     seed,
		TickRate: w.tickRate,
	}
	w.emit(Event{Kind: EventStarted, X: w.bird.X, Y: w.bird.Y})
}
