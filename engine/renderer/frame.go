package renderer

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/ui"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawItem is one renderable node resolved for the current frame.
type DrawItem struct {
	Node          *scene.Node
	Geometry      *scene.Geometry
	Material      material.Material
	Model         mgl32.Mat4
	CastShadow    bool
	ReceiveShadow bool
}

// Frame is everything a backend needs to draw one image, flattened out of the scene graph.
// Matrices already carry the [0, 1] depth correction.
type Frame struct {
	ClearColor [4]float32
	ViewProj   mgl32.Mat4
	// Viewport is x, y, width, height in physical pixels. The clear covers the whole surface.
	Viewport [4]float32

	// Ambient is the summed ambient irradiance, already divided by pi.
	Ambient [3]float32
	// LightDir is the direction the key light travels, zero when the scene has no directional light.
	LightDir mgl32.Vec3
	// LightColor is the key light's color times intensity, divided by pi.
	LightColor [3]float32

	// Shadows is true when the shadow pass runs this frame.
	Shadows       bool
	LightViewProj mgl32.Mat4
	ShadowCamera  light.ShadowCamera

	Items []DrawItem

	// Overlay is drawn over the whole surface after the scene, nil for none.
	Overlay *ui.DrawData
}

// BuildFrame walks the visible part of the scene and collects draw items and lighting.
// The first directional light found is the key light; additional directional lights are ignored.
//
// Parameters:
//   - s: the scene to draw
//   - cam: the camera to draw it from
//   - shadowMap: the renderer's shadow settings
//
// Returns:
//   - Frame: the flattened frame
func BuildFrame(s scene.Scene, cam camera.Camera, shadowMap ShadowMapSettings) Frame {
	f := Frame{
		ClearColor:    common.LinearRGBA(s.Background(), 1),
		ViewProj:      common.ClipSpaceCorrection.Mul4(cam.ViewProjectionMatrix()),
		LightViewProj: mgl32.Ident4(),
	}

	var key light.Light
	s.Root().TraverseVisible(func(n *scene.Node, world mgl32.Mat4) {
		switch n.Kind {
		case scene.KindLight:
			if n.Light == nil {
				return
			}
			switch n.Light.Type() {
			case light.LightTypeAmbient:
				c := n.Light.Color()
				k := n.Light.Intensity() / math32.Pi
				f.Ambient[0] += c[0] * k
				f.Ambient[1] += c[1] * k
				f.Ambient[2] += c[2] * k
			case light.LightTypeDirectional:
				if key == nil {
					key = n.Light
				}
			}
		case scene.KindMesh, scene.KindHelper:
			if n.Geometry == nil || len(n.Geometry.Positions) == 0 || n.Material == nil {
				return
			}
			f.Items = append(f.Items, DrawItem{
				Node:          n,
				Geometry:      n.Geometry,
				Material:      n.Material,
				Model:         world,
				CastShadow:    n.CastShadow && !n.Geometry.Lines,
				ReceiveShadow: n.ReceiveShadow && !n.Geometry.Lines,
			})
		}
	})

	if key != nil {
		c := key.Color()
		k := key.Intensity() / math32.Pi
		f.LightDir = key.Direction()
		f.LightColor = [3]float32{c[0] * k, c[1] * k, c[2] * k}
		if shadowMap.Enabled && key.CastsShadows() {
			sc := key.Shadow()
			f.Shadows = true
			f.ShadowCamera = *sc
			f.LightViewProj = common.ClipSpaceCorrection.Mul4(sc.ProjectionMatrix().Mul4(key.ShadowViewMatrix()))
		}
	}
	return f
}

// Casters returns the items drawn into the shadow map.
func (f *Frame) Casters() []DrawItem {
	if !f.Shadows {
		return nil
	}
	out := make([]DrawItem, 0, len(f.Items))
	for _, it := range f.Items {
		if it.CastShadow {
			out = append(out, it)
		}
	}
	return out
}

// globals packs the frame into the layout of the shader's Globals uniform.
func (f *Frame) globals() globalsUniform {
	g := globalsUniform{
		ViewProj:      f.ViewProj,
		LightViewProj: f.LightViewProj,
		Ambient:       [4]float32{f.Ambient[0], f.Ambient[1], f.Ambient[2], 1},
		LightDir:      [4]float32{f.LightDir.X(), f.LightDir.Y(), f.LightDir.Z(), 0},
		LightColor:    [4]float32{f.LightColor[0], f.LightColor[1], f.LightColor[2], 1},
	}
	if f.Shadows && f.ShadowCamera.MapWidth > 0 {
		g.ShadowParams = [4]float32{f.ShadowCamera.Bias, 1, 1 / float32(f.ShadowCamera.MapWidth), 0}
	}
	return g
}

// interleave builds the vertex and index data for a geometry.
// Missing normals default to +Y and missing uvs to zero; non-indexed geometry gets sequential indices.
func interleave(g *scene.Geometry) ([]vertex, []uint32) {
	verts := make([]vertex, len(g.Positions))
	for i, p := range g.Positions {
		verts[i].Position = p
		verts[i].Normal = [3]float32{0, 1, 0}
		if i < len(g.Normals) {
			verts[i].Normal = g.Normals[i]
		}
		if i < len(g.UVs) {
			verts[i].UV = g.UVs[i]
		}
	}

	indices := g.Indices
	if len(indices) == 0 {
		indices = make([]uint32, len(g.Positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	return verts, indices
}

// materialUniformFor packs the material's base color and whether it samples a map.
func materialUniformFor(m material.Material) materialUniform {
	u := materialUniform{BaseColor: m.BaseColor()}
	if m.Map() != nil && m.Map().Image != nil {
		u.Flags[0] = 1
	}
	return u
}
