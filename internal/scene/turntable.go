package scene

import (
	"ShaderLab/internal/behaviour"
	"ShaderLab/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

var turntableAxis = mgl32.Vec3{0, 1, 0}

// Turntable spins the mesh's current model about the vertical axis through
// its bounding sphere centre.
type Turntable struct {
	behaviour.BaseComponent
	mesh *Mesh
	// Speed is in degrees per second.
	Speed float32
}

func NewTurntable(mesh *Mesh, speed float32) *Turntable {
	return &Turntable{mesh: mesh, Speed: speed}
}

func (t *Turntable) Update(frame behaviour.Frame) {
	if t.Speed == 0 {
		return
	}
	spin(t.mesh.CurrentModel(), t.Speed*float32(frame.Delta))
}

func spin(model *renderer.Model, degrees float32) {
	model.Rotation = mgl32.QuatRotate(mgl32.DegToRad(degrees), turntableAxis).Mul(model.Rotation)
	// Keep the scaled bounding centre at the origin
	center := model.BoundingSphereCenter.Mul(model.Scale.X())
	offset := model.Rotation.Rotate(center)
	model.SetPosition(-offset.X(), -offset.Y(), -offset.Z())
}
