package panel

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrNoChoices is returned when a dropdown or swatch group is created without entries.
	ErrNoChoices = errors.New("control needs at least one choice")
	// ErrUnknownChoice is returned when selecting a key the control does not list.
	ErrUnknownChoice = errors.New("unknown choice")
)

// Choice is one entry of a dropdown.
type Choice struct {
	Key   string
	Label string
}

// Value is the state a dropdown is bound to. Get is read every time the dropdown is displayed,
// so the dropdown never disagrees with the state it edits.
type Value interface {
	Get() string
	Set(key string) error
}

// control is what the pane needs from every row for focus and keyboard handling.
type control interface {
	label() string
	summary() string
	next() error
	prev() error
	activate() error
	selectIndex(i int) error
	draw() error
}

// Dropdown cycles through a fixed list of choices and writes the chosen key to its Value.
type Dropdown struct {
	Label   string
	choices []Choice
	value   Value
}

var _ control = &Dropdown{}

// Choices returns the dropdown entries in display order.
func (d *Dropdown) Choices() []Choice {
	return append([]Choice(nil), d.choices...)
}

// Selected returns the key currently held by the bound value.
func (d *Dropdown) Selected() string {
	return d.value.Get()
}

// Index returns the position of the selected key, or -1 if the value holds something unlisted.
func (d *Dropdown) Index() int {
	cur := d.value.Get()
	for i, c := range d.choices {
		if c.Key == cur {
			return i
		}
	}
	return -1
}

// Set selects key, as if the user picked it from the list.
//
// Parameters:
//   - key: one of the dropdown's choice keys
//
// Returns:
//   - error: ErrUnknownChoice for an unlisted key, or the bound value's error
func (d *Dropdown) Set(key string) error {
	for _, c := range d.choices {
		if c.Key == key {
			return d.value.Set(key)
		}
	}
	return fmt.Errorf("%w: %q in %q", ErrUnknownChoice, key, d.Label)
}

func (d *Dropdown) label() string {
	return d.Label
}

func (d *Dropdown) summary() string {
	i := d.Index()
	if i < 0 {
		return d.Label + ": -"
	}
	return d.Label + ": " + d.choices[i].Label
}

func (d *Dropdown) step(delta int) error {
	n := len(d.choices)
	i := d.Index()
	if i < 0 {
		i = 0
	} else {
		i = ((i+delta)%n + n) % n
	}
	return d.value.Set(d.choices[i].Key)
}

func (d *Dropdown) next() error {
	return d.step(1)
}

func (d *Dropdown) prev() error {
	return d.step(-1)
}

func (d *Dropdown) activate() error {
	return nil
}

func (d *Dropdown) selectIndex(i int) error {
	if i < 0 || i >= len(d.choices) {
		return nil
	}
	return d.value.Set(d.choices[i].Key)
}

// Button runs an action when clicked.
type Button struct {
	Title   string
	onClick func()
	clicks  int
}

var _ control = &Button{}

// Click runs the button's action.
func (b *Button) Click() {
	b.clicks++
	if b.onClick != nil {
		b.onClick()
	}
}

// Clicks returns how many times the button was clicked.
func (b *Button) Clicks() int {
	return b.clicks
}

func (b *Button) label() string {
	return b.Title
}

func (b *Button) summary() string {
	return "[" + b.Title + "]"
}

func (b *Button) next() error {
	return nil
}

func (b *Button) prev() error {
	return nil
}

func (b *Button) activate() error {
	b.Click()
	return nil
}

func (b *Button) selectIndex(int) error {
	return nil
}

// Swatch is one clickable color chip.
type Swatch struct {
	// Key is the value passed to the swatch group's action.
	Key   string
	Label string
	Color colorful.Color
}

// Swatches is a row of color chips with exactly one active chip.
// Each chip is tied to its key when the group is built; Select(key) activates that chip and nothing else.
type Swatches struct {
	Label     string
	swatches  []Swatch
	active    int
	cursor    int
	onSelect  func(key string) error
	onChanged func(key string)
}

var _ control = &Swatches{}

// Swatches returns the chips in display order.
func (s *Swatches) Swatches() []Swatch {
	return append([]Swatch(nil), s.swatches...)
}

// Active returns the key of the highlighted chip.
func (s *Swatches) Active() string {
	return s.swatches[s.active].Key
}

// Cursor returns the key of the chip keyboard focus is on.
func (s *Swatches) Cursor() string {
	return s.swatches[s.cursor].Key
}

// Select runs the group action for key and, if it succeeds, makes that chip the active one.
//
// Parameters:
//   - key: the chip key
//
// Returns:
//   - error: ErrUnknownChoice for an unlisted key, or the action's error (the highlight is unchanged)
func (s *Swatches) Select(key string) error {
	idx := -1
	for i, sw := range s.swatches {
		if sw.Key == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q in %q", ErrUnknownChoice, key, s.Label)
	}
	if s.onSelect != nil {
		if err := s.onSelect(key); err != nil {
			return err
		}
	}
	s.active, s.cursor = idx, idx
	if s.onChanged != nil {
		s.onChanged(key)
	}
	return nil
}

func (s *Swatches) label() string {
	return s.Label
}

func (s *Swatches) summary() string {
	var sb strings.Builder
	sb.WriteString(s.Label)
	sb.WriteString(":")
	for i, sw := range s.swatches {
		sb.WriteString(" ")
		switch {
		case i == s.active:
			sb.WriteString("(" + sw.Label + " " + sw.Color.Hex() + ")")
		default:
			sb.WriteString(sw.Label)
		}
	}
	return sb.String()
}

func (s *Swatches) next() error {
	s.cursor = (s.cursor + 1) % len(s.swatches)
	return nil
}

func (s *Swatches) prev() error {
	s.cursor = (s.cursor - 1 + len(s.swatches)) % len(s.swatches)
	return nil
}

func (s *Swatches) activate() error {
	return s.Select(s.swatches[s.cursor].Key)
}

func (s *Swatches) selectIndex(i int) error {
	if i < 0 || i >= len(s.swatches) {
		return nil
	}
	return s.Select(s.swatches[i].Key)
}
