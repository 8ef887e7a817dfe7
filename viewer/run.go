package viewer

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/panel"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/ui"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// Run opens a window for the named variant and blocks until it is closed.
// Textures are decoded before the window opens; the model loads in the background while the
// render loop already draws the empty stage.
//
// Parameters:
//   - variantName: "studio", "showroom" or "kiosk"
//
// Returns:
//   - error: if the variant is unknown or its textures or stage cannot be set up
func Run(variantName string) error {
	v, err := LoadVariant(variantName)
	if err != nil {
		return err
	}

	ld := loader.NewLoader(loader.WithDecoderPath(v.DecoderPath))
	specs := make([]loader.TextureSpec, 0, len(v.Options))
	for _, o := range v.Options {
		specs = append(specs, loader.TextureSpec{Key: o.Key, Path: o.Path})
	}
	textures, err := ld.LoadTextures(specs)
	if err != nil {
		return fmt.Errorf("failed to load textures: %w", err)
	}

	win := window.NewWindow(
		window.WithTitle(v.Title),
		window.WithCloseOnEscape(v.EscapeCloses()),
	)
	defer func() {
		if err := win.Close(); err != nil {
			log.Printf("[Viewer] failed to close window: %v", err)
		}
	}()

	overlay := ui.NewContext()
	defer overlay.Destroy()

	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithShadowMap(true, renderer.ShadowMapPCFSoft),
		renderer.WithOverlay(overlay),
	)
	defer r.Release()

	ctx, err := NewContext(v, r, textures,
		WithUI(overlay),
		WithPaneOptions(panel.WithOnChange(func(summary string) {
			win.SetTitle(windowTitle(v.Title, summary))
		})),
	)
	if err != nil {
		return err
	}

	HandleResize(ctx, win.Width(), win.Height(), win.DevicePixelRatio())
	win.SetResizeCallback(func(width, height int) {
		HandleResize(ctx, width, height, win.DevicePixelRatio())
	})
	win.SetMouseMoveCallback(overlay.MouseMove)
	win.SetMouseButtonCallback(overlay.MouseButton)
	win.SetCharCallback(overlay.Char)
	win.SetDragCallback(ctx.HandleDrag)
	win.SetScrollCallback(ctx.HandleScroll)
	win.SetKeyDownCallback(ctx.HandleKeyDown)
	win.SetKeyUpCallback(ctx.HandleKeyUp)

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithScene(ctx.Scene, ctx.Camera),
		engine.WithControls(ctx.Controls),
		engine.WithProfiling(v.Profiling),
	)
	eng.SetTickCallback(func(dt float32) {
		ctx.DrawUI(win.Width(), win.Height(), win.DevicePixelRatio(), dt)
	})
	eng.Await(ld.LoadAsync(v.ModelPath), ctx.OnModelLoaded)
	eng.Start()
	eng.Run()
	return nil
}

func windowTitle(title, summary string) string {
	if summary == "" {
		return title
	}
	return title + " | " + summary
}
