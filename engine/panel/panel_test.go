package panel

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/ui"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringValue struct {
	v    string
	err  error
	sets int
}

func (s *stringValue) Get() string {
	return s.v
}

func (s *stringValue) Set(key string) error {
	if s.err != nil {
		return s.err
	}
	s.v = key
	s.sets++
	return nil
}

var woods = []Choice{
	{Key: "oak", Label: "Oak"},
	{Key: "walnut", Label: "Walnut"},
	{Key: "cherry", Label: "Cherry"},
	{Key: "ebony", Label: "Ebony"},
}

func TestDropdownCyclesWithArrowKeys(t *testing.T) {
	p := NewPane("Settings")
	v := &stringValue{v: "oak"}
	d, err := p.AddDropdown("ChairSeat", woods, v)
	require.NoError(t, err)

	assert.True(t, p.HandleKey(common.KeyRight))
	assert.Equal(t, "walnut", v.v)
	assert.True(t, p.HandleKey(common.KeyLeft))
	assert.True(t, p.HandleKey(common.KeyLeft))
	assert.Equal(t, "ebony", v.v)
	assert.Equal(t, 3, d.Index())
}

func TestDropdownNumberKeyPicksEntry(t *testing.T) {
	p := NewPane("Settings")
	v := &stringValue{v: "oak"}
	_, err := p.AddDropdown("ChairSeat", woods, v)
	require.NoError(t, err)

	p.HandleKey(common.Key3)
	assert.Equal(t, "cherry", v.v)

	// Out of range number keys are consumed but change nothing.
	p.HandleKey(common.Key9)
	assert.Equal(t, "cherry", v.v)
}

func TestDropdownReflectsBoundValue(t *testing.T) {
	p := NewPane("Settings")
	v := &stringValue{v: "oak"}
	d, err := p.AddDropdown("ChairBack", woods, v)
	require.NoError(t, err)

	v.v = "walnut"
	assert.Equal(t, "walnut", d.Selected())
	assert.Contains(t, p.Summary(), "ChairBack: Walnut")

	assert.ErrorIs(t, d.Set("plastic"), ErrUnknownChoice)
	assert.Equal(t, "walnut", v.v)
}

func TestDropdownErrorLeavesState(t *testing.T) {
	p := NewPane("Settings")
	v := &stringValue{v: "oak", err: errors.New("rejected")}
	_, err := p.AddDropdown("ChairSeat", woods, v)
	require.NoError(t, err)

	assert.True(t, p.HandleKey(common.KeyRight))
	assert.Equal(t, "oak", v.v)
}

func TestAddDropdownRequiresChoices(t *testing.T) {
	_, err := NewPane("Settings").AddDropdown("x", nil, &stringValue{})
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestTabMovesFocusAndEnterClicks(t *testing.T) {
	p := NewPane("Settings")
	_, err := p.AddDropdown("ChairSeat", woods, &stringValue{v: "oak"})
	require.NoError(t, err)
	toggled := 0
	b := p.AddButton("Toggle Camera Helper", func() { toggled++ })

	assert.Equal(t, "ChairSeat", p.Focused())
	p.HandleKey(common.KeyEnter)
	assert.Equal(t, 0, toggled)

	p.HandleKey(common.KeyTab)
	assert.Equal(t, "Toggle Camera Helper", p.Focused())
	p.HandleKey(common.KeyEnter)
	p.HandleKey(common.KeyEnter)
	assert.Equal(t, 2, toggled)
	assert.Equal(t, 2, b.Clicks())

	p.HandleKey(common.KeyTab)
	assert.Equal(t, "ChairSeat", p.Focused())
}

func TestToggleKeyHidesPane(t *testing.T) {
	var titles []string
	p := NewPane("Settings", WithToggleKey(common.KeyH), WithOnChange(func(s string) { titles = append(titles, s) }))
	v := &stringValue{v: "oak"}
	_, err := p.AddDropdown("ChairSeat", woods, v)
	require.NoError(t, err)

	assert.True(t, p.HandleKey(common.KeyH))
	assert.False(t, p.Visible)
	assert.Equal(t, "", p.Summary())

	// Hidden panes ignore everything but the toggle key.
	assert.False(t, p.HandleKey(common.KeyRight))
	assert.Equal(t, "oak", v.v)

	assert.True(t, p.HandleKey(common.KeyH))
	assert.True(t, p.Visible)
	require.NotEmpty(t, titles)
	assert.Equal(t, p.Summary(), titles[len(titles)-1])
}

func TestNoToggleKeyByDefault(t *testing.T) {
	p := NewPane("Settings")
	assert.False(t, p.HandleKey(common.KeyH))
	assert.True(t, p.Visible)
}

func TestCollapsedSummaryShowsTitleOnly(t *testing.T) {
	p := NewPane("Settings", WithExpanded(false))
	p.AddButton("Toggle Camera Helper", nil)
	assert.Equal(t, "Settings", p.Summary())

	p.Expanded = true
	assert.Equal(t, "Settings | >[Toggle Camera Helper]", p.Summary())
}

func swatchRow() []Swatch {
	return []Swatch{
		{Key: "oak", Label: "Oak", Color: colorful.Color{R: 0.78, G: 0.63, B: 0.4}},
		{Key: "walnut", Label: "Walnut", Color: colorful.Color{R: 0.36, G: 0.25, B: 0.2}},
		{Key: "cherry", Label: "Cherry", Color: colorful.Color{R: 0.6, G: 0.3, B: 0.2}},
	}
}

func TestSwatchSelectHighlightsExactlyThatSwatch(t *testing.T) {
	p := NewPane("Settings")
	var applied []string
	s, err := p.AddSwatches("ChairSeat", swatchRow(), "oak", func(key string) error {
		applied = append(applied, key)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "oak", s.Active())
	assert.Empty(t, applied)

	require.NoError(t, s.Select("cherry"))
	assert.Equal(t, "cherry", s.Active())
	assert.Equal(t, []string{"cherry"}, applied)
	assert.Contains(t, p.Summary(), "(Cherry #")
	assert.NotContains(t, p.Summary(), "(Oak")

	assert.ErrorIs(t, s.Select("ebony"), ErrUnknownChoice)
	assert.Equal(t, "cherry", s.Active())
}

func TestSwatchFailedActionKeepsHighlight(t *testing.T) {
	p := NewPane("Settings")
	s, err := p.AddSwatches("ChairSeat", swatchRow(), "oak", func(string) error { return errors.New("nope") })
	require.NoError(t, err)

	assert.Error(t, s.Select("walnut"))
	assert.Equal(t, "oak", s.Active())
}

func TestSwatchKeyboard(t *testing.T) {
	p := NewPane("Settings")
	s, err := p.AddSwatches("ChairSeat", swatchRow(), "oak", nil)
	require.NoError(t, err)

	p.HandleKey(common.KeyRight)
	p.HandleKey(common.KeyRight)
	assert.Equal(t, "cherry", s.Cursor())
	assert.Equal(t, "oak", s.Active())

	p.HandleKey(common.KeyEnter)
	assert.Equal(t, "cherry", s.Active())

	p.HandleKey(common.Key2)
	assert.Equal(t, "walnut", s.Active())
}

func TestAddSwatchesValidates(t *testing.T) {
	p := NewPane("Settings")
	_, err := p.AddSwatches("x", nil, "", nil)
	assert.ErrorIs(t, err, ErrNoChoices)

	_, err = p.AddSwatches("x", swatchRow(), "ebony", nil)
	assert.ErrorIs(t, err, ErrUnknownChoice)
	assert.Equal(t, 0, p.Len())
}

func drawFrames(c *ui.Context, p *Pane, frames int) *ui.DrawData {
	for range frames {
		c.NewFrame(800, 600, 1, 1.0/60)
		p.Draw(800)
		c.Render()
	}
	return c.DrawData()
}

func TestDrawEmitsPaneWindow(t *testing.T) {
	c := ui.NewContext()
	defer c.Destroy()

	value := &stringValue{v: "oak"}
	p := NewPane("Settings")
	_, err := p.AddDropdown("Wood", woods, value)
	require.NoError(t, err)
	p.AddButton("Toggle Helper", nil)

	// auto-sized windows skip their first frame
	shown := drawFrames(c, p, 2)
	require.False(t, shown.Empty())
	visibleVertices := len(shown.Vertices)

	p.Toggle()
	hidden := drawFrames(c, p, 2)
	assert.Less(t, len(hidden.Vertices), visibleVertices)
	assert.Equal(t, "oak", value.Get())
}
