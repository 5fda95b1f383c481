package sim

// scoreSystem awards one point for every obstacle whose center has moved
// behind the bird. The check-and-set lives in Obstacle.markPassed, the only
// place Passed is written, so no obstacle scores twice.
func scoreSystem(w *World) {
	if !precondition(w.bird != nil, "score check invoked with no bird") {
		return
	}

	birdX := w.bird.X
	w.obstacles.Each(func(_ Handle, o *Obstacle) {
		if o.X >= birdX || !o.markPassed() {
			return
		}
		w.score++
		w.emit(Event{Kind: EventScored, X: o.X, Y: o.GapCenter, Score: w.score})
	})
}
