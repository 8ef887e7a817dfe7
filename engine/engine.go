// Package engine runs the viewer's render loop on the window's main thread.
package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// Renderer is the part of renderer.Renderer the loop needs.
type Renderer interface {
	Render(s scene.Scene, cam camera.Camera) error
}

// Controls is anything updated once per frame before drawing, such as camera.CameraController.
type Controls interface {
	Update() bool
}

// engine implements the Engine interface.
type engine struct {
	window    window.Window
	renderer  Renderer
	scene     scene.Scene
	camera    camera.Camera
	controls  Controls
	scheduler FrameScheduler
	timer     *Timer
	now       func() time.Time

	running bool
	// generation invalidates frame callbacks queued before the latest Start or Stop.
	generation uint64

	postMu sync.Mutex
	posted []func()

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback func(deltaTime float32)
}

// Engine owns the render loop: every frame it updates the timer, then the controls, then draws
// the scene, and requests the next frame while running.
//
// Everything runs on the main thread. Other goroutines hand work over with Post.
type Engine interface {
	// Window returns the underlying window, nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Start begins requesting frames. Calling Start while running does nothing.
	Start()

	// Stop makes the next pending frame a no-op and stops rescheduling.
	Stop()

	// Running reports whether the loop is scheduling frames.
	//
	// Returns:
	//   - bool: true between Start and Stop
	Running() bool

	// Post queues fn to run on the main thread at the start of the next Step.
	// Safe to call from any goroutine.
	//
	// Parameters:
	//   - fn: the work to run
	Post(fn func())

	// Await delivers a future's result to fn on the main thread, exactly once.
	//
	// Parameters:
	//   - f: the future to wait on
	//   - fn: receives the result
	Await(f *loader.Future, fn func(loader.Result))

	// Step runs one window loop iteration: posted work, then the frames requested so far.
	// A panic stops the loop and closes the window; posted work that had not run yet stays queued.
	Step()

	// Timer returns the frame timer.
	Timer() *Timer

	// SetTickCallback registers a function called every frame after the controls update, before drawing.
	//
	// Parameters:
	//   - callback: receives the frame delta in seconds
	SetTickCallback(callback func(deltaTime float32))

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Run hooks Step into the window's message loop and blocks until the window closes.
	Run()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine, not yet started
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		now: time.Now,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.scheduler == nil {
		e.scheduler = NewFrameScheduler()
	}
	e.timer = NewTimer(e.now)
	e.profiler = profiler.NewProfiler(profiler.WithClock(e.now))
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Start() {
	if e.running {
		return
	}
	e.running = true
	e.generation++
	e.timer.Reset()
	e.request()
}

func (e *engine) Stop() {
	if !e.running {
		return
	}
	e.running = false
	e.generation++
}

func (e *engine) Running() bool {
	return e.running
}

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.postMu.Lock()
	e.posted = append(e.posted, fn)
	e.postMu.Unlock()
}

func (e *engine) Await(f *loader.Future, fn func(loader.Result)) {
	go func() {
		<-f.Done()
		r, _ := f.Result()
		e.Post(func() { fn(r) })
	}()
}

func (e *engine) Step() {
	e.postMu.Lock()
	posted := e.posted
	e.posted = nil
	e.postMu.Unlock()

	next := 0
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame recovered from panic: %v", r)
			e.requeue(posted[next:])
			e.quit()
		}
	}()

	for next < len(posted) {
		fn := posted[next]
		next++
		fn()
	}

	e.scheduler.Flush()
}

// requeue puts posted work that never ran back at the front of the queue.
func (e *engine) requeue(fns []func()) {
	if len(fns) == 0 {
		return
	}
	e.postMu.Lock()
	e.posted = append(append([]func(){}, fns...), e.posted...)
	e.postMu.Unlock()
}

// quit stops the loop and closes the window, which ends Run.
func (e *engine) quit() {
	e.Stop()
	if e.window == nil {
		return
	}
	if err := e.window.Close(); err != nil {
		log.Printf("[Engine] failed to close window: %v", err)
	}
}

func (e *engine) Timer() *Timer {
	return e.timer
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Run() {
	e.window.SetUpdateCallback(e.Step)
	e.window.ProcessMessages()
	e.Stop()
}

// request schedules a tick bound to the current generation.
func (e *engine) request() {
	gen := e.generation
	e.scheduler.RequestFrame(func() { e.tick(gen) })
}

// tick is one frame: timer, controls, tick callback, draw, then reschedule.
func (e *engine) tick(gen uint64) {
	if !e.running || gen != e.generation {
		return
	}

	e.timer.Update()
	if e.controls != nil {
		e.controls.Update()
	}
	if e.tickCallback != nil {
		e.tickCallback(e.timer.Delta())
	}
	if e.renderer != nil && e.scene != nil && e.camera != nil {
		if err := e.renderer.Render(e.scene, e.camera); err != nil {
			log.Printf("[Engine] render failed: %v", err)
		}
	}
	if e.profilingEnabled {
		e.profiler.Tick()
	}

	if e.running && gen == e.generation {
		e.request()
	}
}
