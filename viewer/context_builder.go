package viewer

import "github.com/Carmen-Shannon/oxy-viewer/engine/panel"

// ContextBuilderOption is a function that configures a Context during construction.
type ContextBuilderOption func(*Context)

// WithPaneOptions is an option builder that passes extra options to the settings pane,
// applied after the variant's own (such as its toggle key).
//
// Parameters:
//   - options: the pane options
//
// Returns:
//   - ContextBuilderOption: a function that applies the pane options to a Context
func WithPaneOptions(options ...panel.PaneBuilderOption) ContextBuilderOption {
	return func(ctx *Context) {
		ctx.paneOptions = append(ctx.paneOptions, options...)
	}
}

// WithUI draws the settings pane with u and routes pointer and keyboard input through it.
//
// Parameters:
//   - u: the UI, usually a ui.Context
//
// Returns:
//   - ContextBuilderOption: a function that sets the UI on a Context
func WithUI(u UI) ContextBuilderOption {
	return func(ctx *Context) {
		ctx.UI = u
	}
}
