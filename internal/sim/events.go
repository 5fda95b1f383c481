package sim

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventStarted EventKind = iota
	EventFlapped
	EventScored
	EventDied
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventFlapped:
		return "flapped"
	case EventScored:
		return "scored"
	case EventDied:
		return "died"
	default:
		return "unknown"
	}
}

// Event is emitted by the world for presentation layers (sounds, particles,
// log lines). Events live for exactly one tick.
type Event struct {
	Kind  EventKind
	Tick  uint64
	X, Y  float64 // World position, where meaningful
	Score int
	Cause Cause // Set for EventDied
}

func (w *World) emit(e Event) {
	e.Tick = w.tick
	w.events = append(w.events, e)
}
