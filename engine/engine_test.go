package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

type fakeRenderer struct {
	rec *recorder
	err error
}

func (r *fakeRenderer) Render(scene.Scene, camera.Camera) error {
	r.rec.calls = append(r.rec.calls, "render")
	return r.err
}

type fakeControls struct {
	rec *recorder
}

func (c *fakeControls) Update() bool {
	c.rec.calls = append(c.rec.calls, "controls")
	return false
}

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(16 * time.Millisecond)
	return c.t
}

func newTestEngine(rec *recorder) Engine {
	clock := &stepClock{t: time.Unix(0, 0)}
	e := NewEngine(
		WithRenderer(&fakeRenderer{rec: rec}),
		WithControls(&fakeControls{rec: rec}),
		WithScene(scene.NewScene(), camera.NewCamera()),
		WithClock(clock.now),
	)
	e.SetTickCallback(func(dt float32) {
		rec.calls = append(rec.calls, "tick")
	})
	return e
}

func TestFrameOrder(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(rec)

	e.Start()
	e.Step()
	e.Step()

	assert.Equal(t, []string{"controls", "tick", "render", "controls", "tick", "render"}, rec.calls)
	assert.Greater(t, e.Timer().Delta(), float32(0))
	assert.Greater(t, e.Timer().Elapsed(), e.Timer().Delta())
}

func TestNoFramesBeforeStart(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(rec)

	e.Step()
	assert.Empty(t, rec.calls)
	assert.False(t, e.Running())
}

func TestStopMakesPendingFrameNoop(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(rec)

	e.Start()
	e.Step()
	e.Stop()
	e.Step()
	e.Step()

	assert.Equal(t, []string{"controls", "tick", "render"}, rec.calls)
	assert.False(t, e.Running())
}

func TestRestartDoesNotDoubleTick(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(rec)

	e.Start()
	e.Stop()
	e.Start()
	e.Start()
	e.Step()

	assert.Equal(t, []string{"controls", "tick", "render"}, rec.calls)
}

func TestRenderErrorKeepsLoopRunning(t *testing.T) {
	rec := &recorder{}
	e := NewEngine(
		WithRenderer(&fakeRenderer{rec: rec, err: errors.New("surface lost")}),
		WithScene(scene.NewScene(), camera.NewCamera()),
	)
	e.Start()
	e.Step()
	e.Step()

	assert.Equal(t, []string{"render", "render"}, rec.calls)
	assert.True(t, e.Running())
}

// closingWindow records Close; no other window method is used by the engine outside Run.
type closingWindow struct {
	window.Window
	closed int
}

func (w *closingWindow) Close() error {
	w.closed++
	return nil
}

func TestPanicStopsLoop(t *testing.T) {
	e := NewEngine()
	e.SetTickCallback(func(float32) { panic("boom") })

	e.Start()
	assert.NotPanics(t, e.Step)
	assert.False(t, e.Running())
}

func TestPanicClosesWindow(t *testing.T) {
	win := &closingWindow{}
	e := NewEngine(WithWindow(win))
	e.SetTickCallback(func(float32) { panic("boom") })

	e.Start()
	assert.NotPanics(t, e.Step)
	assert.False(t, e.Running())
	assert.Equal(t, 1, win.closed)
}

func TestPanicInPostedWorkKeepsTheRestQueued(t *testing.T) {
	win := &closingWindow{}
	e := NewEngine(WithWindow(win))

	var ran []string
	e.Post(func() { ran = append(ran, "first") })
	e.Post(func() { panic("boom") })
	e.Post(func() { ran = append(ran, "third") })

	assert.NotPanics(t, e.Step)
	assert.Equal(t, []string{"first"}, ran)
	assert.Equal(t, 1, win.closed)

	e.Step()
	assert.Equal(t, []string{"first", "third"}, ran)
}

func TestPostRunsBeforeFrames(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(rec)
	e.Start()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.Post(func() { rec.calls = append(rec.calls, "posted") })
	}()
	wg.Wait()

	e.Step()
	assert.Equal(t, []string{"posted", "controls", "tick", "render"}, rec.calls)
}

func TestAwaitDeliversOnMainThreadOnce(t *testing.T) {
	e := NewEngine()
	root := scene.NewNode("chair", scene.KindGroup)

	var got []loader.Result
	e.Await(loader.Resolved(loader.Result{Root: root}), func(r loader.Result) {
		got = append(got, r)
	})

	require.Eventually(t, func() bool {
		e.Step()
		return len(got) == 1
	}, time.Second, time.Millisecond)

	e.Step()
	require.Len(t, got, 1)
	assert.Same(t, root, got[0].Root)
	assert.True(t, got[0].OK())
}

func TestSchedulerDefersFramesRequestedDuringFlush(t *testing.T) {
	s := NewFrameScheduler()
	var runs int
	var again func()
	again = func() {
		runs++
		s.RequestFrame(again)
	}
	s.RequestFrame(again)

	s.Flush()
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, s.Pending())

	s.Flush()
	assert.Equal(t, 2, runs)
}

func TestTimer(t *testing.T) {
	now := time.Unix(100, 0)
	timer := NewTimer(func() time.Time { return now })

	now = now.Add(500 * time.Millisecond)
	timer.Update()
	assert.InDelta(t, 0.5, timer.Delta(), 1e-6)

	now = now.Add(250 * time.Millisecond)
	timer.Update()
	assert.InDelta(t, 0.25, timer.Delta(), 1e-6)
	assert.InDelta(t, 0.75, timer.Elapsed(), 1e-6)

	timer.Reset()
	assert.Zero(t, timer.Elapsed())
}

func TestProfilingSamplesFrames(t *testing.T) {
	clock := &stepClock{t: time.Unix(0, 0)}
	e := NewEngine(WithClock(clock.now), WithProfiling(true))

	e.Start()
	for range 200 {
		e.Step()
	}
	assert.Greater(t, e.(*engine).profiler.Last().FPS, 0.0)

	e.DisableProfiler()
	assert.False(t, e.(*engine).profilingEnabled)
}
