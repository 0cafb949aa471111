package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Floats per interleaved vertex: position(3) + uv(2) + normal(3)
const VertexStride = 8

// DefaultMaterial provides a basic material to fall back on
var DefaultMaterial = &Material{
	Name:          "default",
	DiffuseColor:  [3]float32{1.0, 1.0, 1.0},
	SpecularColor: [3]float32{1.0, 1.0, 1.0},
	Shininess:     32.0,
	Alpha:         1.0,
}

// MaterialGroup represents a mesh part drawn with a single material
type MaterialGroup struct {
	Material   *Material // Material for this part
	IndexStart int32     // Starting index in the index buffer
	IndexCount int32     // Number of indices for this part
}

type Model struct {
	// HOT DATA - Accessed every frame in render loop
	ModelMatrix mgl32.Mat4 // Transformation matrix
	Position    mgl32.Vec3 // Position in world space
	Scale       mgl32.Vec3 // Scale factors
	Rotation    mgl32.Quat // Rotation quaternion
	VAO         uint32     // Vertex Array Object
	VBO         uint32     // Vertex Buffer Object
	EBO         uint32     // Element Buffer Object

	// MEDIUM DATA
	BoundingSphereCenter mgl32.Vec3
	BoundingSphereRadius float32
	Material             *Material       // Main material, used when there are no groups
	MaterialGroups       []MaterialGroup // One entry per drawable part

	// COLD DATA - Initialization only
	Name            string
	SourcePath      string    // Original file path, empty for generated meshes
	InterleavedData []float32 // [x,y,z,u,v,nx,ny,nz] per vertex
	Faces           []int32   // Triangle indices into InterleavedData
}

type Material struct {
	DiffuseColor  [3]float32 // Base color for lighting
	SpecularColor [3]float32 // Specular highlight color
	Shininess     float32    // Specular exponent
	Alpha         float32    // Transparency (0.0 = transparent, 1.0 = opaque)
	TextureID     uint32     // OpenGL texture ID

	Name        string // Material name for debugging
	TexturePath string // Path to texture file (loaded when the model is uploaded)
}

// NewModel wraps interleaved vertex data and indices in a model with one
// material group spanning every index.
func NewModel(name string, interleaved []float32, faces []int32, material *Material) *Model {
	if material == nil {
		m := *DefaultMaterial
		material = &m
	}
	model := &Model{
		Name:            name,
		Position:        mgl32.Vec3{0, 0, 0},
		Rotation:        mgl32.QuatIdent(),
		Scale:           mgl32.Vec3{1, 1, 1},
		Material:        material,
		InterleavedData: interleaved,
		Faces:           faces,
	}
	model.MaterialGroups = []MaterialGroup{{Material: material, IndexStart: 0, IndexCount: int32(len(faces))}}
	model.CalculateBoundingSphere()
	model.updateModelMatrix()
	return model
}

// VertexCount returns the number of interleaved vertices.
func (m *Model) VertexCount() int {
	return len(m.InterleavedData) / VertexStride
}

// Groups returns the drawable parts, synthesising one from the main
// material when the model has none.
func (m *Model) Groups() []MaterialGroup {
	if len(m.MaterialGroups) > 0 {
		return m.MaterialGroups
	}
	mat := m.Material
	if mat == nil {
		mat = DefaultMaterial
	}
	return []MaterialGroup{{Material: mat, IndexStart: 0, IndexCount: int32(len(m.Faces))}}
}

func (m *Model) SetPosition(x, y, z float32) {
	m.Position = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
}

func (m *Model) Rotate(angleX, angleY, angleZ float32) {
	if m.Rotation == (mgl32.Quat{}) {
		m.Rotation = mgl32.QuatIdent()
	}
	rotationX := mgl32.QuatRotate(mgl32.DegToRad(angleX), mgl32.Vec3{1, 0, 0})
	rotationY := mgl32.QuatRotate(mgl32.DegToRad(angleY), mgl32.Vec3{0, 1, 0})
	rotationZ := mgl32.QuatRotate(mgl32.DegToRad(angleZ), mgl32.Vec3{0, 0, 1})
	m.Rotation = m.Rotation.Mul(rotationX).Mul(rotationY).Mul(rotationZ)
	m.updateModelMatrix()
}

// CalculateBoundingSphere computes a centroid-based sphere over the raw
// vertex positions.
func (m *Model) CalculateBoundingSphere() {
	n := m.VertexCount()
	if n == 0 {
		m.BoundingSphereCenter = mgl32.Vec3{}
		m.BoundingSphereRadius = 0
		return
	}

	var center mgl32.Vec3
	for i := 0; i < n; i++ {
		center = center.Add(m.vertexAt(i))
	}
	center = center.Mul(1.0 / float32(n))

	var maxDistanceSq float32
	for i := 0; i < n; i++ {
		if d := m.vertexAt(i).Sub(center).LenSqr(); d > maxDistanceSq {
			maxDistanceSq = d
		}
	}

	m.BoundingSphereCenter = center
	m.BoundingSphereRadius = float32(math.Sqrt(float64(maxDistanceSq)))
}

// FitToRadius scales and translates the model so its bounding sphere is
// centred on the origin with the given radius.
func (m *Model) FitToRadius(radius float32) {
	if m.BoundingSphereRadius <= 0 {
		return
	}
	s := radius / m.BoundingSphereRadius
	m.Scale = mgl32.Vec3{s, s, s}
	m.Position = m.BoundingSphereCenter.Mul(-s)
	m.updateModelMatrix()
}

func (m *Model) vertexAt(i int) mgl32.Vec3 {
	d := m.InterleavedData[i*VertexStride:]
	return mgl32.Vec3{d[0], d[1], d[2]}
}

func (m *Model) updateModelMatrix() {
	// T * R * S: scale first, then rotate, then translate
	if m.Rotation == (mgl32.Quat{}) {
		m.Rotation = mgl32.QuatIdent()
	}
	scaleMatrix := mgl32.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2])
	rotationMatrix := m.Rotation.Mat4()
	translationMatrix := mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	m.ModelMatrix = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)
}

// DefaultTextureImage is the 2x2 white texture bound for untextured parts,
// so shaders can always multiply by the sampled colour.
func DefaultTextureImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}
