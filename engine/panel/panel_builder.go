package panel

// PaneBuilderOption is a functional option applied by NewPane.
type PaneBuilderOption func(*Pane)

// WithToggleKey sets a key that shows or hides the whole pane. Zero disables toggling.
//
// Parameters:
//   - key: the key code (see common key codes)
//
// Returns:
//   - PaneBuilderOption: option function to apply
func WithToggleKey(key uint32) PaneBuilderOption {
	return func(p *Pane) {
		p.toggleKey = key
	}
}

// WithExpanded sets whether rows show in the summary.
func WithExpanded(expanded bool) PaneBuilderOption {
	return func(p *Pane) {
		p.Expanded = expanded
	}
}

// WithOnChange registers a callback receiving the new summary after every change,
// typically window.SetTitle.
func WithOnChange(fn func(summary string)) PaneBuilderOption {
	return func(p *Pane) {
		p.onChange = fn
	}
}
