package engine

import "time"

// Timer measures frame time. Update is called once at the start of every frame;
// Delta and Elapsed then describe that frame.
type Timer struct {
	now     func() time.Time
	start   time.Time
	last    time.Time
	delta   float32
	elapsed float32
}

// NewTimer creates a Timer reading the given clock, or time.Now when nil.
func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	t := &Timer{now: now}
	t.Reset()
	return t
}

// Reset restarts the timer so the next Update reports the time since now.
func (t *Timer) Reset() {
	t.start = t.now()
	t.last = t.start
	t.delta, t.elapsed = 0, 0
}

// Update samples the clock.
func (t *Timer) Update() {
	now := t.now()
	t.delta = float32(now.Sub(t.last).Seconds())
	t.elapsed = float32(now.Sub(t.start).Seconds())
	t.last = now
}

// Delta returns the seconds between the last two Updates.
func (t *Timer) Delta() float32 {
	return t.delta
}

// Elapsed returns the seconds since Reset at the last Update.
func (t *Timer) Elapsed() float32 {
	return t.elapsed
}
