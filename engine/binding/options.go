package binding

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/material"
)

// TextureOption binds a stable, case-sensitive key to a decoded texture.
type TextureOption struct {
	// Key identifies the option in selection state. Never changes after startup.
	Key string
	// Label is what the control panel shows. Defaults to Key when empty.
	Label string
	// Texture is the decoded image assigned to a material when the option is selected.
	Texture *material.Texture
}

// DisplayLabel returns Label, falling back to Key.
func (o TextureOption) DisplayLabel() string {
	if o.Label == "" {
		return o.Key
	}
	return o.Label
}

// TextureOptions is the fixed, ordered set of texture choices offered for every bindable mesh.
// The first option is the default selection.
type TextureOptions struct {
	options []TextureOption
	index   map[string]int
}

// NewTextureOptions validates and indexes the option list.
//
// Parameters:
//   - options: the options in display order
//
// Returns:
//   - TextureOptions: the indexed set
//   - error: ErrNoOptions if empty, or an error naming a duplicate or empty key
func NewTextureOptions(options ...TextureOption) (TextureOptions, error) {
	if len(options) == 0 {
		return TextureOptions{}, ErrNoOptions
	}

	idx := make(map[string]int, len(options))
	for i, o := range options {
		if o.Key == "" {
			return TextureOptions{}, fmt.Errorf("texture option %d: %w", i, ErrEmptyKey)
		}
		if _, dup := idx[o.Key]; dup {
			return TextureOptions{}, fmt.Errorf("texture option %q: %w", o.Key, ErrDuplicateKey)
		}
		idx[o.Key] = i
	}

	return TextureOptions{
		options: append([]TextureOption(nil), options...),
		index:   idx,
	}, nil
}

// Len returns the number of options.
func (t TextureOptions) Len() int {
	return len(t.options)
}

// Default returns the first option's key.
func (t TextureOptions) Default() string {
	if len(t.options) == 0 {
		return ""
	}
	return t.options[0].Key
}

// Lookup returns the option bound to key.
func (t TextureOptions) Lookup(key string) (TextureOption, bool) {
	i, ok := t.index[key]
	if !ok {
		return TextureOption{}, false
	}
	return t.options[i], true
}

// At returns the option at position i in display order.
func (t TextureOptions) At(i int) TextureOption {
	return t.options[i]
}

// IndexOf returns the display position of key, or -1.
func (t TextureOptions) IndexOf(key string) int {
	i, ok := t.index[key]
	if !ok {
		return -1
	}
	return i
}

// Keys returns the option keys in display order.
func (t TextureOptions) Keys() []string {
	keys := make([]string, len(t.options))
	for i, o := range t.options {
		keys[i] = o.Key
	}
	return keys
}

// Labels returns the display labels in display order.
func (t TextureOptions) Labels() []string {
	labels := make([]string, len(t.options))
	for i, o := range t.options {
		labels[i] = o.DisplayLabel()
	}
	return labels
}
