package material

// material is the implementation of the Material interface.
type material struct {
	name        string
	baseColor   [4]float32
	colorMap    *Texture
	needsUpdate bool
	version     uint64
}

// Material defines a surface description for a mesh: a base color and an optional color map texture.
//
// Materials are owned by the scene graph and mutated only on the main thread. Assigning a new color map
// marks the material dirty so the renderer rebuilds its GPU-side bindings on the next frame.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the RGBA color the color map is multiplied with.
	//
	// Returns:
	//   - [4]float32: the base color as linear RGBA values
	BaseColor() [4]float32

	// Map retrieves the color map texture, or nil if none is set.
	//
	// Returns:
	//   - *Texture: the color map, or nil
	Map() *Texture

	// SetMap assigns the color map texture. It does not mark the material dirty on its own.
	//
	// Parameters:
	//   - tex: the texture to use, or nil to clear it
	SetMap(tex *Texture)

	// NeedsUpdate reports whether the material changed since the renderer last consumed it.
	//
	// Returns:
	//   - bool: true if GPU-side state must be rebuilt
	NeedsUpdate() bool

	// MarkNeedsUpdate flags the material as changed and bumps its version.
	MarkNeedsUpdate()

	// ClearNeedsUpdate is called by the renderer once the change has been uploaded.
	ClearNeedsUpdate()

	// Version returns a counter incremented by every MarkNeedsUpdate call.
	//
	// Returns:
	//   - uint64: the current version
	Version() uint64

	// Clone creates an independent copy of the material.
	// The copy references the same texture, has its own dirty flag (set) and never shares state with the source.
	//
	// Returns:
	//   - Material: the new material
	Clone() Material
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor:   [4]float32{1, 1, 1, 1},
		needsUpdate: true,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Map() *Texture {
	return m.colorMap
}

func (m *material) SetMap(tex *Texture) {
	m.colorMap = tex
}

func (m *material) NeedsUpdate() bool {
	return m.needsUpdate
}

func (m *material) MarkNeedsUpdate() {
	m.needsUpdate = true
	m.version++
}

func (m *material) ClearNeedsUpdate() {
	m.needsUpdate = false
}

func (m *material) Version() uint64 {
	return m.version
}

func (m *material) Clone() Material {
	return &material{
		name:        m.name,
		baseColor:   m.baseColor,
		colorMap:    m.colorMap,
		needsUpdate: true,
	}
}
