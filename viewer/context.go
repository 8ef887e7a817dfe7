// Package viewer assembles the chair viewer: one Context per window holding the stage, the camera,
// the material binder and the settings pane, plus the resize and load-completion handlers that
// mutate it. Everything in a Context is touched from the main thread only.
package viewer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/binding"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/panel"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// PaneTitle is the title of the settings pane.
const PaneTitle = "Settings"

// HelperButtonTitle is the label of the button showing or hiding the shadow camera helper.
const HelperButtonTitle = "Toggle Camera Helper"

// Renderer is what the viewer needs from a renderer.
type Renderer interface {
	SetSize(width, height int)
	SetViewport(width, height int)
	SetPixelRatio(ratio float32)
	Render(s scene.Scene, cam camera.Camera) error
}

// Context is the state of one viewer instance, passed explicitly to every handler.
type Context struct {
	Variant  Variant
	Scene    scene.Scene
	Camera   camera.Camera
	Controls camera.CameraController
	Renderer Renderer
	Binder   binding.Binder
	Pane     *panel.Pane
	// Helper outlines the key light's shadow camera. Hidden until toggled.
	Helper *scene.Node
	// Model is the loaded chair, nil until the load succeeds.
	Model *scene.Node
	// Viewport is the last size applied by HandleResize.
	Viewport Viewport
	// UI draws the pane on screen, nil when only the title summary is shown.
	UI UI

	paneOptions []panel.PaneBuilderOption
}

// NewContext builds the stage for a variant: background, lights, shadow helper, camera with orbit
// controls, the binder over the variant's texture options and a settings pane holding the helper
// button. The model is added later by OnModelLoaded.
//
// Parameters:
//   - v: the variant preset
//   - r: the renderer resized by HandleResize
//   - textures: decoded textures by option key, one per variant option
//   - options: variadic list of ContextBuilderOption functions
//
// Returns:
//   - *Context: the new context
//   - error: if the background is invalid or an option has no texture
func NewContext(v Variant, r Renderer, textures map[string]*material.Texture, options ...ContextBuilderOption) (*Context, error) {
	v = v.withDefaults()

	bg, err := v.BackgroundColor()
	if err != nil {
		return nil, fmt.Errorf("failed to parse background: %w", err)
	}
	opts, err := textureOptions(v, textures)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		Variant:  v,
		Renderer: r,
		Binder:   binding.NewBinder(opts),
	}
	for _, opt := range options {
		opt(ctx)
	}

	ctx.Scene = scene.NewScene(scene.WithBackground(bg))
	ctx.Helper = buildStage(ctx.Scene)
	ctx.Camera, ctx.Controls = newOrbitCamera()

	paneOpts := []panel.PaneBuilderOption{}
	if key := v.ToggleKeyCode(); key != 0 {
		paneOpts = append(paneOpts, panel.WithToggleKey(key))
	}
	ctx.Pane = panel.NewPane(PaneTitle, append(paneOpts, ctx.paneOptions...)...)
	ctx.Pane.AddButton(HelperButtonTitle, ctx.ToggleHelper)

	return ctx, nil
}

// ToggleHelper flips the visibility of the shadow camera helper.
func (ctx *Context) ToggleHelper() {
	ctx.Helper.Visible = !ctx.Helper.Visible
}

// textureOptions pairs every variant option with its decoded texture, keeping the preset order.
func textureOptions(v Variant, textures map[string]*material.Texture) (binding.TextureOptions, error) {
	list := make([]binding.TextureOption, 0, len(v.Options))
	for _, o := range v.Options {
		tex, ok := textures[o.Key]
		if !ok || tex == nil {
			return binding.TextureOptions{}, fmt.Errorf("no texture for option %q", o.Key)
		}
		list = append(list, binding.TextureOption{Key: o.Key, Label: o.Label, Texture: tex})
	}
	return binding.NewTextureOptions(list...)
}
