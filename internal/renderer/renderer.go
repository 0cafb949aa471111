package renderer

import (
	"ShaderLab/internal/technique"

	"github.com/go-gl/mathgl/mgl32"
)

var FaceCullingEnabled bool = false
var Debug bool = false
var DepthTestEnabled bool = true

// ClearColor is cornflower blue (100, 149, 237).
var ClearColor = mgl32.Vec4{100.0 / 255, 149.0 / 255, 237.0 / 255, 1}

// Render is the drawing backend used by the scene. A technique pass is
// Begin, any number of DrawGroup calls, then End.
type Render interface {
	Init(width, height int32) error
	Clear()
	AddModel(model *Model) error
	RemoveModel(model *Model)
	Begin(t technique.Technique) (technique.Uniforms, error)
	DrawGroup(model *Model, group MaterialGroup)
	End()
	UpdateViewport(width, height int32)
	Cleanup() error
}
