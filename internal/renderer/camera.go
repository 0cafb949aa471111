// camera.go
package renderer

import (
	"ShaderLab/internal/input"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position   mgl32.Vec3 // Camera position in world space
	Front      mgl32.Vec3 // Forward direction vector
	Up         mgl32.Vec3 // Up direction vector
	Right      mgl32.Vec3 // Right direction vector
	Projection mgl32.Mat4 // Projection matrix
	Pitch      float32    // Pitch angle (vertical rotation)
	Yaw        float32    // Yaw angle (horizontal rotation)

	// COLD DATA - Configuration and input handling, accessed less frequently
	WorldUp      mgl32.Vec3 // World up vector (usually (0,1,0))
	Speed        float32    // Movement speed
	Sensitivity  float32    // Mouse sensitivity
	Fov          float32    // Field of view
	Near         float32    // Near clipping plane
	Far          float32    // Far clipping plane
	AspectRatio  float32    // Screen aspect ratio
	LastX, LastY float32    // Last mouse position
	InvertMouse  bool       // Invert mouse Y axis
	firstMouse   bool       // First mouse movement flag
}

type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

type Frustum struct {
	Planes [6]Plane
}

// Shift multiplies the walking speed by this factor
const sprintFactor = 2.5

func NewDefaultCamera(width, height int32) *Camera {
	camera := Camera{
		Position:    mgl32.Vec3{0, 0, 10},
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Pitch:       0.0,
		Yaw:         -90.0,
		Speed:       20,
		Sensitivity: 0.1,
		Fov:         45.0,
		Near:        0.1,
		Far:         1000.0,
		LastX:       float32(width) / 2,
		LastY:       float32(height) / 2,
		AspectRatio: aspect(width, height),
		firstMouse:  true,
	}
	camera.updateCameraVectors()
	camera.UpdateProjection()
	return &camera
}

func aspect(width, height int32) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

func (c *Camera) SetFov(fov float32) {
	c.Fov = fov
	c.UpdateProjection()
}

// Resize follows the framebuffer size. Zero sized (minimised) windows are ignored.
func (c *Camera) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = aspect(width, height)
	c.UpdateProjection()
}

// WorldMatrix is the transform applied to scene meshes. The scene keeps
// its single mesh at the origin.
func (c *Camera) WorldMatrix() mgl32.Mat4 {
	return mgl32.Ident4()
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.GetViewMatrix())
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

// ProcessKeyboard moves the camera with WASD; either shift key sprints.
func (c *Camera) ProcessKeyboard(keys input.KeyState, deltaTime float32) {
	velocity := c.Speed * deltaTime
	if keys.IsKeyDown(input.KeyLeftShift) || keys.IsKeyDown(input.KeyRightShift) {
		velocity *= sprintFactor
	}

	if keys.IsKeyDown(input.KeyW) {
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	}
	if keys.IsKeyDown(input.KeyS) {
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	}
	if keys.IsKeyDown(input.KeyA) {
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	}
	if keys.IsKeyDown(input.KeyD) {
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
}

// ProcessMouse takes an absolute cursor position and turns the camera by
// the movement since the last call. The first call only records the position.
func (c *Camera) ProcessMouse(x, y float32) {
	if c.firstMouse {
		c.LastX, c.LastY = x, y
		c.firstMouse = false
		return
	}
	xoffset := x - c.LastX
	yoffset := c.LastY - y // window y grows downwards
	c.LastX, c.LastY = x, y
	c.ProcessMouseMovement(xoffset, yoffset, true)
}

// ResetMouse makes the next ProcessMouse call a fresh start, so releasing
// and pressing the look button again does not jump.
func (c *Camera) ResetMouse() {
	c.firstMouse = true
}

func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	xoffset *= c.Sensitivity
	yoffset *= c.Sensitivity

	c.Yaw += xoffset

	if c.InvertMouse {
		c.Pitch -= yoffset
	} else {
		c.Pitch += yoffset
	}
	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -89.0, 89.0) // Prevent extreme pitch values
	}
	c.updateCameraVectors()
}

// LookAt turns the camera towards target without moving it.
func (c *Camera) LookAt(target mgl32.Vec3) {
	direction := target.Sub(c.Position)
	if direction.Len() == 0 {
		return
	}
	direction = direction.Normalize()
	c.Yaw = mgl32.RadToDeg(float32(math.Atan2(float64(direction.Z()), float64(direction.X()))))
	c.Pitch = mgl32.RadToDeg(float32(math.Asin(float64(mgl32.Clamp(direction.Y(), -1, 1)))))
	c.Pitch = mgl32.Clamp(c.Pitch, -89.0, 89.0)
	c.updateCameraVectors()
}

func (c *Camera) updateCameraVectors() {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)

	front := mgl32.Vec3{
		float32(math.Cos(float64(yawRad)) * math.Cos(float64(pitchRad))),
		float32(math.Sin(float64(pitchRad))),
		float32(math.Sin(float64(yawRad)) * math.Cos(float64(pitchRad))),
	}

	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

func (c *Camera) CalculateFrustum() Frustum {
	var frustum Frustum
	vp := c.GetViewProjection()

	// Left Plane
	frustum.Planes[0] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[0], vp[7] + vp[4], vp[11] + vp[8]},
		Distance: vp[15] + vp[12],
	}

	// Right Plane
	frustum.Planes[1] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[0], vp[7] - vp[4], vp[11] - vp[8]},
		Distance: vp[15] - vp[12],
	}

	// Bottom Plane
	frustum.Planes[2] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[1], vp[7] + vp[5], vp[11] + vp[9]},
		Distance: vp[15] + vp[13],
	}

	// Top Plane
	frustum.Planes[3] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[1], vp[7] - vp[5], vp[11] - vp[9]},
		Distance: vp[15] - vp[13],
	}

	// Near Plane
	frustum.Planes[4] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[2], vp[7] + vp[6], vp[11] + vp[10]},
		Distance: vp[15] + vp[14],
	}

	// Far Plane
	frustum.Planes[5] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[2], vp[7] - vp[6], vp[11] - vp[10]},
		Distance: vp[15] - vp[14],
	}

	for i := 0; i < 6; i++ {
		length := frustum.Planes[i].Normal.Len()
		frustum.Planes[i].Normal = frustum.Planes[i].Normal.Mul(1.0 / length)
		frustum.Planes[i].Distance /= length
	}

	return frustum
}

func (p *Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}
