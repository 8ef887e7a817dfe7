// Package panel is a small settings pane. It draws as an ImGui window, answers the keyboard, and
// renders its state as a one-line summary the viewer shows in the window title.
package panel

import (
	"fmt"
	"log"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// Pane is a titled, ordered list of controls with one focused row.
// Not thread-safe; used from the main thread only.
type Pane struct {
	// Title heads the summary.
	Title string
	// Expanded shows the rows in the summary; a collapsed pane shows only its title.
	Expanded bool
	// Visible hides the pane entirely, and stops it from handling keys other than the toggle key.
	Visible bool

	controls  []control
	focus     int
	toggleKey uint32
	onChange  func(summary string)
}

// NewPane creates an empty, visible and expanded pane.
//
// Parameters:
//   - title: the pane title
//   - options: variadic list of PaneBuilderOption functions
//
// Returns:
//   - *Pane: the new pane
func NewPane(title string, options ...PaneBuilderOption) *Pane {
	p := &Pane{
		Title:    title,
		Expanded: true,
		Visible:  true,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// AddDropdown appends a dropdown bound to value.
//
// Parameters:
//   - label: the row label
//   - choices: the entries, in display order
//   - value: the state the dropdown reads and writes
//
// Returns:
//   - *Dropdown: the new control
//   - error: ErrNoChoices if choices is empty
func (p *Pane) AddDropdown(label string, choices []Choice, value Value) (*Dropdown, error) {
	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: dropdown %q", ErrNoChoices, label)
	}
	d := &Dropdown{Label: label, choices: append([]Choice(nil), choices...), value: &notifyingValue{Value: value, pane: p, label: label}}
	p.controls = append(p.controls, d)
	p.changed()
	return d, nil
}

// AddButton appends a button.
//
// Parameters:
//   - title: the button text
//   - onClick: the action
//
// Returns:
//   - *Button: the new control
func (p *Pane) AddButton(title string, onClick func()) *Button {
	b := &Button{Title: title}
	b.onClick = func() {
		log.Printf("[Panel] %s clicked", title)
		if onClick != nil {
			onClick()
		}
		p.changed()
	}
	p.controls = append(p.controls, b)
	p.changed()
	return b
}

// AddSwatches appends a row of color chips. The chip whose key equals active starts highlighted,
// without running onSelect.
//
// Parameters:
//   - label: the row label
//   - swatches: the chips, each tied to its key
//   - active: the initially highlighted key
//   - onSelect: the action run with the chosen key
//
// Returns:
//   - *Swatches: the new control
//   - error: ErrNoChoices if swatches is empty, ErrUnknownChoice if active is not listed
func (p *Pane) AddSwatches(label string, swatches []Swatch, active string, onSelect func(key string) error) (*Swatches, error) {
	if len(swatches) == 0 {
		return nil, fmt.Errorf("%w: swatches %q", ErrNoChoices, label)
	}
	s := &Swatches{Label: label, swatches: append([]Swatch(nil), swatches...), active: -1}
	for i, sw := range s.swatches {
		if sw.Key == active {
			s.active, s.cursor = i, i
		}
	}
	if s.active < 0 {
		return nil, fmt.Errorf("%w: %q in %q", ErrUnknownChoice, active, label)
	}
	s.onSelect = onSelect
	s.onChanged = func(key string) {
		log.Printf("[Panel] %s -> %s", label, key)
		p.changed()
	}
	p.controls = append(p.controls, s)
	p.changed()
	return s, nil
}

// Len returns the number of rows.
func (p *Pane) Len() int {
	return len(p.controls)
}

// Focused returns the label of the focused row, or "" for an empty pane.
func (p *Pane) Focused() string {
	if len(p.controls) == 0 {
		return ""
	}
	return p.controls[p.focus].label()
}

// Toggle flips Visible.
func (p *Pane) Toggle() {
	p.Visible = !p.Visible
	p.changed()
}

// HandleKey applies one key press.
// The toggle key flips visibility. While visible: Tab moves focus, Left and Right cycle the
// focused row, Enter activates it and 1 to 9 pick an entry of the focused row directly.
//
// Parameters:
//   - key: the key code (see common key codes)
//
// Returns:
//   - bool: true if the pane consumed the key
func (p *Pane) HandleKey(key uint32) bool {
	if p.toggleKey != 0 && key == p.toggleKey {
		p.Toggle()
		return true
	}
	if !p.Visible || len(p.controls) == 0 {
		return false
	}

	c := p.controls[p.focus]
	var err error
	switch {
	case key == common.KeyTab:
		p.focus = (p.focus + 1) % len(p.controls)
		p.changed()
		return true
	case key == common.KeyRight:
		err = c.next()
	case key == common.KeyLeft:
		err = c.prev()
	case key == common.KeyEnter:
		err = c.activate()
	case key >= common.Key1 && key <= common.Key9:
		err = c.selectIndex(int(key - common.Key1))
	default:
		return false
	}
	if err != nil {
		log.Printf("[Panel] %s: %v", c.label(), err)
	}
	p.changed()
	return true
}

// Summary renders the pane on one line: the title, then each row, the focused one marked with '>'.
//
// Returns:
//   - string: the summary, or "" while hidden
func (p *Pane) Summary() string {
	if !p.Visible {
		return ""
	}
	if !p.Expanded || len(p.controls) == 0 {
		return p.Title
	}
	parts := make([]string, 0, len(p.controls)+1)
	parts = append(parts, p.Title)
	for i, c := range p.controls {
		s := c.summary()
		if i == p.focus {
			s = ">" + s
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " | ")
}

// changed reports the current summary to the change callback.
func (p *Pane) changed() {
	if p.onChange != nil {
		p.onChange(p.Summary())
	}
}

// notifyingValue logs and reports dropdown writes.
type notifyingValue struct {
	Value
	pane  *Pane
	label string
}

func (v *notifyingValue) Set(key string) error {
	if err := v.Value.Set(key); err != nil {
		return err
	}
	log.Printf("[Panel] %s -> %s", v.label, key)
	v.pane.changed()
	return nil
}
