package loader

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// gltfImporter converts one decoded document into scene graph nodes.
// Materials are created once per glTF material and shared by every primitive that references them,
// mirroring the document; callers that need per-mesh materials clone them.
type gltfImporter struct {
	doc          *gltf.Document
	baseDir      string
	decoderPath  string
	dracoDecoder DracoDecoder

	materials       []material.Material
	defaultMaterial material.Material
	textures        map[int]*material.Texture
	warnedDraco     bool
}

func newGLTFImporter(doc *gltf.Document, baseDir, decoderPath string, draco DracoDecoder) *gltfImporter {
	return &gltfImporter{
		doc:          doc,
		baseDir:      baseDir,
		decoderPath:  decoderPath,
		dracoDecoder: draco,
		textures:     make(map[int]*material.Texture),
	}
}

// Import builds the document's default scene (or its first scene) below a new group node.
func (imp *gltfImporter) Import() (*scene.Node, error) {
	sceneIdx := 0
	if imp.doc.Scene != nil {
		sceneIdx = *imp.doc.Scene
	}
	if sceneIdx < 0 || sceneIdx >= len(imp.doc.Scenes) {
		return nil, ErrNoScene
	}
	src := imp.doc.Scenes[sceneIdx]

	root := scene.NewNode(common.Coalesce(src.Name, "Scene"), scene.KindGroup)
	visiting := make(map[int]bool)
	for _, idx := range src.Nodes {
		n, err := imp.buildNode(idx, visiting)
		if err != nil {
			return nil, err
		}
		root.Add(n)
	}
	return root, nil
}

// buildNode converts a glTF node and its subtree. visiting guards against cyclic child references.
func (imp *gltfImporter) buildNode(idx int, visiting map[int]bool) (*scene.Node, error) {
	if idx < 0 || idx >= len(imp.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if visiting[idx] {
		return nil, fmt.Errorf("node %d is its own ancestor", idx)
	}
	visiting[idx] = true
	defer delete(visiting, idx)

	src := imp.doc.Nodes[idx]
	n, err := imp.nodeContent(src)
	if err != nil {
		return nil, err
	}
	n.Transform = gltfNodeTransform(src)

	for _, child := range src.Children {
		c, err := imp.buildNode(child, visiting)
		if err != nil {
			return nil, err
		}
		n.Add(c)
	}
	return n, nil
}

// nodeContent creates the scene node for a glTF node. A node whose mesh has a single primitive becomes a
// mesh node carrying the node's name. A multi-primitive mesh becomes a group with one mesh child per primitive.
func (imp *gltfImporter) nodeContent(src *gltf.Node) (*scene.Node, error) {
	if src.Mesh == nil {
		return scene.NewNode(src.Name, scene.KindGroup), nil
	}
	if *src.Mesh < 0 || *src.Mesh >= len(imp.doc.Meshes) {
		return nil, fmt.Errorf("node %q: mesh index %d out of range", src.Name, *src.Mesh)
	}
	mesh := imp.doc.Meshes[*src.Mesh]
	name := common.Coalesce(src.Name, mesh.Name)

	if len(mesh.Primitives) == 1 {
		return imp.primitiveNode(name, mesh.Primitives[0])
	}

	group := scene.NewNode(name, scene.KindGroup)
	for i, prim := range mesh.Primitives {
		child, err := imp.primitiveNode(fmt.Sprintf("%s_%d", name, i), prim)
		if err != nil {
			return nil, err
		}
		group.Add(child)
	}
	return group, nil
}

func (imp *gltfImporter) primitiveNode(name string, prim *gltf.Primitive) (*scene.Node, error) {
	mat, err := imp.material(prim.Material)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}

	geo, err := imp.geometry(name, prim)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}
	return scene.NewMesh(name, geo, mat), nil
}

// geometry reads or decompresses the vertex data of a primitive.
// A nil geometry with a nil error means the primitive could not be decoded and is kept as an empty mesh.
func (imp *gltfImporter) geometry(name string, prim *gltf.Primitive) (*scene.Geometry, error) {
	if isDracoCompressed(prim) {
		if imp.dracoDecoder != nil {
			return imp.dracoDecoder.DecodePrimitive(imp.doc, prim, imp.decoderPath)
		}
		if !imp.warnedDraco {
			imp.warnedDraco = true
			log.Printf("[Loader] %s primitives found (first: %q) but no decoder registered for %q; geometry skipped",
				ExtDracoMeshCompression, name, imp.decoderPath)
		}
		return nil, nil
	}
	if prim.Mode != gltf.PrimitiveTriangles {
		log.Printf("[Loader] mesh %q: primitive mode %d not supported, geometry skipped", name, prim.Mode)
		return nil, nil
	}
	return readPrimitiveGeometry(imp.doc, prim)
}

// gltfNodeTransform returns the node's local matrix, using Matrix when set and TRS otherwise.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#transformations
func gltfNodeTransform(n *gltf.Node) mgl32.Mat4 {
	if n.Matrix != [16]float64{} && n.Matrix != identity64 {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	t := mgl32.Vec3{float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2])}
	r := [4]float32{0, 0, 0, 1}
	if n.Rotation != [4]float64{} {
		r = [4]float32{float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2]), float32(n.Rotation[3])}
	}
	s := mgl32.Vec3{1, 1, 1}
	if n.Scale != [3]float64{} {
		s = mgl32.Vec3{float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2])}
	}
	return common.ComposeTRS(t, r, s)
}

var identity64 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
