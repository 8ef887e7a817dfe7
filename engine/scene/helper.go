package scene

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/material"
)

// frustumEdges lists the 12 edges of a box whose corners follow light.ShadowCamera.FrustumCorners order.
var frustumEdges = []uint32{
	0, 1, 1, 2, 2, 3, 3, 0, // near
	4, 5, 5, 6, 6, 7, 7, 4, // far
	0, 4, 1, 5, 2, 6, 3, 7, // sides
}

// helperColor is the line color of camera helpers.
var helperColor = [4]float32{1, 0.67, 0, 1}

// NewShadowCameraHelper builds a hidden line-box node outlining the shadow volume of a directional light.
// The node is placed in world space from the light's current position and target.
//
// Parameters:
//   - name: the node name
//   - l: the light whose shadow camera is drawn
//
// Returns:
//   - *Node: the helper node, hidden until made visible
func NewShadowCameraHelper(name string, l light.Light) *Node {
	corners := l.Shadow().FrustumCorners()
	positions := make([][3]float32, len(corners))
	for i, c := range corners {
		positions[i] = [3]float32{c.X(), c.Y(), c.Z()}
	}

	geo := NewGeometry(positions, nil, nil, append([]uint32(nil), frustumEdges...))
	geo.Lines = true

	n := NewNode(name, KindHelper)
	n.Geometry = geo
	n.Material = material.NewMaterial(material.WithName(name), material.WithBaseColor(helperColor))
	n.Transform = l.ShadowViewMatrix().Inv()
	n.Visible = false
	return n
}
