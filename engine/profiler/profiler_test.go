package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestTickReportsFPSOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithQuiet(true), WithInterval(time.Second))

	for i := 0; i < 59; i++ {
		clock.t = clock.t.Add(time.Second / 60)
		assert.False(t, p.Tick())
	}
	clock.t = clock.t.Add(time.Second / 60)
	assert.True(t, p.Tick())
	assert.InDelta(t, 60, p.Last().FPS, 0.5)

	// The counter restarts after a report.
	clock.t = clock.t.Add(time.Second / 60)
	assert.False(t, p.Tick())
}

func TestIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)
}
