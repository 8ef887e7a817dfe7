package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

func TestBuiltInVariants(t *testing.T) {
	assert.Equal(t, []string{"kiosk", "showroom", "studio"}, VariantNames())

	cases := []struct {
		name       string
		background string
		keys       []string
		toggle     uint32
		swatches   bool
		escape     bool
		profiling  bool
	}{
		{"studio", "#aaaaaa", []string{"oak", "walnut", "cherry", "ebony"}, 0, false, true, true},
		{"showroom", "#f2efe9", []string{"oak", "walnut", "cherry"}, 0, true, true, false},
		{"kiosk", "#202124", []string{"oak", "walnut", "cherry", "ebony"}, common.KeyH, false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := LoadVariant(tc.name)
			require.NoError(t, err)

			assert.Equal(t, tc.name, v.Name)
			assert.Equal(t, tc.background, v.Background)
			assert.Equal(t, "assets/models/chair.glb", v.ModelPath)
			assert.Equal(t, "assets/draco/", v.DecoderPath)
			assert.Equal(t, tc.toggle, v.ToggleKeyCode())
			assert.Equal(t, tc.swatches, v.Swatches)
			assert.Equal(t, tc.escape, v.EscapeCloses())
			assert.Equal(t, tc.profiling, v.Profiling)
			assert.Equal(t, DefaultBreakpoint, v.Breakpoint)
			assert.Equal(t, DefaultHeightFactor, v.HeightFactor)
			assert.Equal(t, DefaultMaxPixelRatio, v.MaxPixelRatio)

			keys := make([]string, 0, len(v.Options))
			for _, o := range v.Options {
				keys = append(keys, o.Key)
			}
			assert.Equal(t, tc.keys, keys)

			_, err = v.BackgroundColor()
			assert.NoError(t, err)
		})
	}
}

func TestLoadVariantUnknown(t *testing.T) {
	_, err := LoadVariant("gallery")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestParseVariantsOverrides(t *testing.T) {
	doc := []byte(`
[variants.tiny]
background = "#000000"
model = "chair.glb"
breakpoint = 500
mobile_height_factor = 0.5
  [[variants.tiny.options]]
  key = "a"
  path = "a.png"
`)
	all, err := ParseVariants(doc)
	require.NoError(t, err)

	v := all["tiny"]
	assert.Equal(t, 500, v.Breakpoint)
	assert.Equal(t, float32(0.5), v.HeightFactor)
	assert.Equal(t, DefaultMaxPixelRatio, v.MaxPixelRatio)
}

func TestParseVariantsRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad background": `
[variants.x]
background = "grey"
model = "m.glb"
  [[variants.x.options]]
  key = "a"
  path = "a.png"
`,
		"no options": `
[variants.x]
background = "#ffffff"
model = "m.glb"
`,
		"duplicate key": `
[variants.x]
background = "#ffffff"
model = "m.glb"
  [[variants.x.options]]
  key = "a"
  path = "a.png"
  [[variants.x.options]]
  key = "a"
  path = "b.png"
`,
		"unknown toggle key": `
[variants.x]
background = "#ffffff"
model = "m.glb"
toggle_key = "F13"
  [[variants.x.options]]
  key = "a"
  path = "a.png"
`,
		"bad swatch": `
[variants.x]
background = "#ffffff"
model = "m.glb"
  [[variants.x.options]]
  key = "a"
  path = "a.png"
  swatch = "#12"
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseVariants([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidVariant)
		})
	}
}

func TestParseVariantsRejectsMalformedTOML(t *testing.T) {
	_, err := ParseVariants([]byte("[variants.x\n"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidVariant)
}
