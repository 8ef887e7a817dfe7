package viewer

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

//go:embed variants.toml
var variantsTOML []byte

var (
	// ErrUnknownVariant is returned by LoadVariant for a name the presets do not define.
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrInvalidVariant wraps every validation failure of a preset.
	ErrInvalidVariant = errors.New("invalid variant")
)

// OptionPreset is one texture option of a variant.
type OptionPreset struct {
	Key    string `toml:"key"`
	Label  string `toml:"label"`
	Path   string `toml:"path"`
	Swatch string `toml:"swatch"`
}

// Variant is one build of the viewer: where its assets live and how its panel behaves.
type Variant struct {
	Name          string         `toml:"-"`
	Title         string         `toml:"title"`
	Background    string         `toml:"background"`
	ModelPath     string         `toml:"model"`
	DecoderPath   string         `toml:"decoder"`
	ToggleKey     string         `toml:"toggle_key"`
	Swatches      bool           `toml:"swatches"`
	CloseOnEscape *bool          `toml:"close_on_escape"`
	Breakpoint    int            `toml:"breakpoint"`
	HeightFactor  float32        `toml:"mobile_height_factor"`
	MaxPixelRatio float32        `toml:"max_pixel_ratio"`
	Profiling     bool           `toml:"profiling"`
	Options       []OptionPreset `toml:"options"`
}

type presetFile struct {
	Variants map[string]Variant `toml:"variants"`
}

// BackgroundColor parses the background hex string.
func (v Variant) BackgroundColor() (colorful.Color, error) {
	return common.ParseHexColor(v.Background)
}

// ToggleKeyCode returns the panel toggle key, 0 when the variant has none.
func (v Variant) ToggleKeyCode() uint32 {
	if v.ToggleKey == "" {
		return 0
	}
	return uint32(common.KeyByName[v.ToggleKey])
}

// EscapeCloses reports whether Escape should close the window, true unless the preset says otherwise.
func (v Variant) EscapeCloses() bool {
	return v.CloseOnEscape == nil || *v.CloseOnEscape
}

// ParseVariants decodes and validates a preset document. Missing viewport settings get the defaults.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - map[string]Variant: the presets by name
//   - error: a decode error or ErrInvalidVariant
func ParseVariants(data []byte) (map[string]Variant, error) {
	var file presetFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode variants: %w", err)
	}

	out := make(map[string]Variant, len(file.Variants))
	for name, v := range file.Variants {
		v.Name = name
		v = v.withDefaults()
		if err := v.validate(); err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// withDefaults fills unset viewport settings.
func (v Variant) withDefaults() Variant {
	if v.Breakpoint == 0 {
		v.Breakpoint = DefaultBreakpoint
	}
	if v.HeightFactor == 0 {
		v.HeightFactor = DefaultHeightFactor
	}
	if v.MaxPixelRatio == 0 {
		v.MaxPixelRatio = DefaultMaxPixelRatio
	}
	return v
}

func (v Variant) validate() error {
	if _, err := v.BackgroundColor(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidVariant, v.Name, err)
	}
	if v.ModelPath == "" {
		return fmt.Errorf("%w %q: no model", ErrInvalidVariant, v.Name)
	}
	if len(v.Options) == 0 {
		return fmt.Errorf("%w %q: no texture options", ErrInvalidVariant, v.Name)
	}
	if v.ToggleKey != "" {
		if _, ok := common.KeyByName[v.ToggleKey]; !ok {
			return fmt.Errorf("%w %q: unknown toggle key %q", ErrInvalidVariant, v.Name, v.ToggleKey)
		}
	}
	seen := make(map[string]bool, len(v.Options))
	for _, o := range v.Options {
		if o.Key == "" || o.Path == "" {
			return fmt.Errorf("%w %q: option needs a key and a path", ErrInvalidVariant, v.Name)
		}
		if seen[o.Key] {
			return fmt.Errorf("%w %q: duplicate option %q", ErrInvalidVariant, v.Name, o.Key)
		}
		seen[o.Key] = true
		if o.Swatch != "" {
			if _, err := common.ParseHexColor(o.Swatch); err != nil {
				return fmt.Errorf("%w %q: option %q: %w", ErrInvalidVariant, v.Name, o.Key, err)
			}
		}
	}
	return nil
}

// LoadVariant returns a built-in preset by name.
//
// Parameters:
//   - name: "studio", "showroom" or "kiosk"
//
// Returns:
//   - Variant: the preset
//   - error: ErrUnknownVariant, or a decode error of the embedded document
func LoadVariant(name string) (Variant, error) {
	all, err := ParseVariants(variantsTOML)
	if err != nil {
		return Variant{}, err
	}
	v, ok := all[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return v, nil
}

// VariantNames lists the built-in presets in sorted order.
func VariantNames() []string {
	all, err := ParseVariants(variantsTOML)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
