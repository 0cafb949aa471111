// Package scene holds the demo's components: the camera, the skybox with its
// background selector, and the mesh drawn with the current technique.
package scene

import (
	"ShaderLab/internal/behaviour"
	"ShaderLab/internal/input"
	"ShaderLab/internal/renderer"
)

// MouseState reports the cursor for mouse look.
type MouseState interface {
	LookHeld() bool
	CursorPos() (x, y float32)
}

// CameraComponent moves the camera with WASD and turns it while the look
// button is held.
type CameraComponent struct {
	behaviour.BaseComponent
	Camera *renderer.Camera
	keys   input.KeyState
	mouse  MouseState
}

func NewCameraComponent(camera *renderer.Camera, keys input.KeyState, mouse MouseState) *CameraComponent {
	return &CameraComponent{Camera: camera, keys: keys, mouse: mouse}
}

func (c *CameraComponent) Update(frame behaviour.Frame) {
	if c.keys != nil {
		c.Camera.ProcessKeyboard(c.keys, float32(frame.Delta))
	}
	if c.mouse == nil {
		return
	}
	if c.mouse.LookHeld() {
		c.Camera.ProcessMouse(c.mouse.CursorPos())
	} else {
		c.Camera.ResetMouse()
	}
}
