package panel

import (
	"log"

	"github.com/inkyblackness/imgui-go/v4"
)

// paneMargin is the distance of the pane from the top right corner on first display.
const paneMargin = 10

// Draw emits the pane as an ImGui window anchored to the top right corner of a display of the
// given width. Must run between ui.Context NewFrame and Render. Every edit goes through the same
// Set, Click and Select paths the keyboard uses, so the change callback fires either way.
//
// Parameters:
//   - displayWidth: the window width in window pixels
func (p *Pane) Draw(displayWidth float32) {
	if !p.Visible {
		return
	}
	imgui.SetNextWindowPosV(imgui.Vec2{X: displayWidth - paneMargin, Y: paneMargin}, imgui.ConditionFirstUseEver, imgui.Vec2{X: 1, Y: 0})
	imgui.SetNextWindowCollapsed(!p.Expanded, imgui.ConditionFirstUseEver)
	expanded := imgui.BeginV(p.Title, nil, imgui.WindowFlagsAlwaysAutoResize|imgui.WindowFlagsNoSavedSettings)
	if expanded != p.Expanded {
		p.Expanded = expanded
		p.changed()
	}
	if expanded {
		for i, c := range p.controls {
			imgui.PushID(c.label())
			// keyboard focus
			if i == p.focus {
				imgui.Bullet()
				imgui.SameLine()
			}
			if err := c.draw(); err != nil {
				log.Printf("[Panel] %s: %v", c.label(), err)
			}
			imgui.PopID()
		}
	}
	imgui.End()
}

func (d *Dropdown) draw() error {
	preview := "-"
	if i := d.Index(); i >= 0 {
		preview = d.choices[i].Label
	}
	if !imgui.BeginCombo(d.Label, preview) {
		return nil
	}
	defer imgui.EndCombo()

	selected := d.Selected()
	for _, c := range d.choices {
		if imgui.SelectableV(c.Label, c.Key == selected, 0, imgui.Vec2{}) && c.Key != selected {
			return d.Set(c.Key)
		}
	}
	return nil
}

func (b *Button) draw() error {
	if imgui.Button(b.Title) {
		b.Click()
	}
	return nil
}

func (s *Swatches) draw() error {
	imgui.Text(s.Label)
	var pick string
	for i, sw := range s.swatches {
		if i > 0 {
			imgui.SameLine()
		}
		r, g, b := sw.Color.Clamped().RGB255()
		color := imgui.Vec4{X: float32(r) / 255, Y: float32(g) / 255, Z: float32(b) / 255, W: 1}
		imgui.PushStyleColor(imgui.StyleColorButton, color)
		imgui.PushStyleColor(imgui.StyleColorButtonHovered, color)

		label := sw.Label
		if i == s.active {
			label = "[" + label + "]"
		}
		if imgui.ButtonV(label+"##"+sw.Key, imgui.Vec2{}) {
			pick = sw.Key
		}
		imgui.PopStyleColorV(2)
	}
	if pick == "" {
		return nil
	}
	return s.Select(pick)
}
