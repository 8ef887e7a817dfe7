package viewer

import (
	"log"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/binding"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/panel"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Stage lighting and framing.
const (
	AmbientIntensity     float32 = 1.5
	DirectionalIntensity float32 = 5
)

var (
	keyLightPosition = [3]float32{1.5, 1.5, 1.5}
	cameraPosition   = [3]float32{0, 0.8, 1}
	orbitTarget      = [3]float32{0, 0.4, 0}
)

const orbitDamping float32 = 0.05

// fallbackSwatch is shown for options whose preset has no swatch color.
var fallbackSwatch = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// buildStage adds the lights and the hidden shadow camera helper to s.
//
// Returns:
//   - *scene.Node: the helper node
func buildStage(s scene.Scene) *scene.Node {
	ambient := scene.NewNode("AmbientLight", scene.KindLight)
	ambient.Light = light.NewLight(light.LightTypeAmbient, light.WithIntensity(AmbientIntensity))

	sun := light.NewLight(light.LightTypeDirectional,
		light.WithPosition(keyLightPosition[0], keyLightPosition[1], keyLightPosition[2]),
		light.WithIntensity(DirectionalIntensity),
		light.WithCastsShadows(true),
	)
	key := scene.NewNode("DirectionalLight", scene.KindLight)
	key.Light = sun

	helper := scene.NewShadowCameraHelper("ShadowCameraHelper", sun)
	s.Add(ambient, key, helper)
	return helper
}

func newOrbitCamera() (camera.Camera, camera.CameraController) {
	cam := camera.NewCamera(
		camera.WithFov(camera.DefaultFovDegrees),
		camera.WithNear(camera.DefaultNear),
		camera.WithFar(camera.DefaultFar),
		camera.WithPosition(cameraPosition[0], cameraPosition[1], cameraPosition[2]),
		camera.WithLookAt(orbitTarget[0], orbitTarget[1], orbitTarget[2]),
	)
	controls := camera.NewOrbitController(cam,
		camera.WithTarget(orbitTarget[0], orbitTarget[1], orbitTarget[2]),
		camera.WithDamping(true, orbitDamping),
	)
	return cam, controls
}

// OnModelLoaded finishes startup once the model future resolves. On failure it logs and leaves the
// stage empty. On success it adds the model, discovers the bindable meshes, initializes each one to
// the default option and adds one control per mesh to the pane.
//
// Parameters:
//   - res: the load outcome
func (ctx *Context) OnModelLoaded(res loader.Result) {
	if !res.OK() {
		log.Printf("[Viewer] failed to load model %q: %v", ctx.Variant.ModelPath, res.Err)
		return
	}

	ctx.Model = res.Root
	ctx.Scene.Add(res.Root)

	meshes := ctx.Binder.DiscoverBindableMeshes(res.Root)
	log.Printf("[Viewer] %d bindable meshes", len(meshes))

	for _, mesh := range meshes {
		state, err := ctx.Binder.Initialize(mesh.Name)
		if err != nil {
			log.Printf("[Viewer] %v", err)
			continue
		}
		if err := ctx.attachControl(mesh.Name, state.Key); err != nil {
			log.Printf("[Viewer] mesh %q: %v", mesh.Name, err)
		}
	}
}

// attachControl adds the selector for one bindable mesh: swatches when the variant asks for them,
// a dropdown otherwise. Both offer exactly the binder's option keys.
func (ctx *Context) attachControl(meshName, active string) error {
	opts := ctx.Binder.Options()

	if ctx.Variant.Swatches {
		swatches := make([]panel.Swatch, 0, opts.Len())
		for i := 0; i < opts.Len(); i++ {
			o := opts.At(i)
			swatches = append(swatches, panel.Swatch{Key: o.Key, Label: o.DisplayLabel(), Color: ctx.swatchColor(o.Key)})
		}
		_, err := ctx.Pane.AddSwatches(meshName, swatches, active, func(key string) error {
			return ctx.Binder.Apply(meshName, key)
		})
		return err
	}

	choices := make([]panel.Choice, 0, opts.Len())
	for i := 0; i < opts.Len(); i++ {
		o := opts.At(i)
		choices = append(choices, panel.Choice{Key: o.Key, Label: o.DisplayLabel()})
	}
	_, err := ctx.Pane.AddDropdown(meshName, choices, &meshValue{binder: ctx.Binder, mesh: meshName})
	return err
}

func (ctx *Context) swatchColor(key string) colorful.Color {
	for _, o := range ctx.Variant.Options {
		if o.Key != key || o.Swatch == "" {
			continue
		}
		if c, err := common.ParseHexColor(o.Swatch); err == nil {
			return c
		}
	}
	return fallbackSwatch
}

// meshValue exposes one mesh's selection state to a dropdown. Writes go through the binder, so a
// rejected key leaves both the material and the dropdown unchanged.
type meshValue struct {
	binder binding.Binder
	mesh   string
}

var _ panel.Value = &meshValue{}

func (m *meshValue) Get() string {
	if s, ok := m.binder.Selection(m.mesh); ok {
		return s.Key
	}
	return ""
}

func (m *meshValue) Set(key string) error {
	return m.binder.Apply(m.mesh, key)
}
