package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: the window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer drawing each frame.
func WithRenderer(r Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene sets the scene and the camera it is drawn from.
//
// Parameters:
//   - s: the scene
//   - cam: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene, cam camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
		e.camera = cam
	}
}

// WithControls sets the controls updated before each draw.
func WithControls(c Controls) EngineBuilderOption {
	return func(e *engine) {
		e.controls = c
	}
}

// WithScheduler replaces the default main-thread frame scheduler.
func WithScheduler(s FrameScheduler) EngineBuilderOption {
	return func(e *engine) {
		e.scheduler = s
	}
}

// WithClock replaces time.Now for the frame timer and profiler.
func WithClock(now func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		if now != nil {
			e.now = now
		}
	}
}
