package component

// Timer counts elapsed seconds towards Duration. A repeating timer keeps the
// overshoot when it wraps; a one-shot timer stops at Duration.
type Timer struct {
	Duration  float64
	Elapsed   float64
	Repeating bool

	finished     bool
	justFinished int
}

func NewTimer(seconds float64, repeating bool) Timer {
	return Timer{Duration: seconds, Repeating: repeating}
}

// Tick advances the timer by dt seconds and returns how many times it
// finished during this tick.
func (t *Timer) Tick(dt float64) int {
	t.justFinished = 0
	if t.Duration <= 0 || dt <= 0 {
		return 0
	}
	if t.finished && !t.Repeating {
		return 0
	}

	t.Elapsed += dt
	if t.Elapsed < t.Duration {
		return 0
	}

	if !t.Repeating {
		t.Elapsed = t.Duration
		t.finished = true
		t.justFinished = 1
		return 1
	}

	for t.Elapsed >= t.Duration {
		t.Elapsed -= t.Duration
		t.justFinished++
	}
	return t.justFinished
}

// JustFinished reports whether the last Tick crossed Duration.
func (t *Timer) JustFinished() bool {
	return t.justFinished > 0
}

// Finished reports whether a one-shot timer has completed.
func (t *Timer) Finished() bool {
	return t.finished
}

func (t *Timer) Reset() {
	t.Elapsed = 0
	t.finished = false
	t.justFinished = 0
}
