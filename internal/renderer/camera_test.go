package renderer

import (
	"ShaderLab/internal/input"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewDefaultCamera(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	if cam == nil {
		t.Fatal("NewDefaultCamera returned nil")
	}

	if cam.Position == (mgl32.Vec3{0, 0, 0}) {
		t.Error("Camera position should not be at origin")
	}

	if cam.Speed <= 0 {
		t.Error("Camera speed should be positive")
	}

	if cam.Sensitivity <= 0 {
		t.Error("Camera sensitivity should be positive")
	}

	if math.Abs(float64(cam.AspectRatio)-800.0/600.0) > 1e-6 {
		t.Errorf("Expected aspect ratio width/height, got %f", cam.AspectRatio)
	}
}

func TestCameraLooksDownNegativeZ(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	if !cam.Front.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("Expected front (0,0,-1), got %v", cam.Front)
	}
	if !cam.Right.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("Expected right (1,0,0), got %v", cam.Right)
	}
	if !cam.Up.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Errorf("Expected up (0,1,0), got %v", cam.Up)
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 5}

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}
	// The origin sits 5 units in front of the camera
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(p.Z()+5)) > 1e-5 {
		t.Errorf("Expected origin at view z=-5, got %v", p)
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	proj := cam.GetProjectionMatrix()

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
}

func TestCameraWorldMatrixIsIdentity(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	if cam.WorldMatrix() != mgl32.Ident4() {
		t.Error("World matrix should be identity")
	}
}

func TestCameraResize(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	before := cam.Projection

	cam.Resize(0, 0)
	if cam.Projection != before {
		t.Error("Zero sized resize should be ignored")
	}

	cam.Resize(1920, 1080)
	if math.Abs(float64(cam.AspectRatio)-1920.0/1080.0) > 1e-6 {
		t.Errorf("Aspect ratio not updated, got %f", cam.AspectRatio)
	}
	if cam.Projection == before {
		t.Error("Projection should change with the aspect ratio")
	}
}

func TestCameraProcessKeyboard(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 0}
	cam.Speed = 10

	cam.ProcessKeyboard(input.KeySet{input.KeyW: true}, 0.5)
	if !cam.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, -5}, 1e-5) {
		t.Errorf("W should move forward, got %v", cam.Position)
	}

	cam.ProcessKeyboard(input.KeySet{input.KeyD: true}, 0.5)
	if !cam.Position.ApproxEqualThreshold(mgl32.Vec3{5, 0, -5}, 1e-5) {
		t.Errorf("D should strafe right, got %v", cam.Position)
	}

	cam.Position = mgl32.Vec3{}
	cam.ProcessKeyboard(input.KeySet{input.KeyS: true, input.KeyLeftShift: true}, 1)
	if !cam.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, 25}, 1e-4) {
		t.Errorf("Shift should sprint, got %v", cam.Position)
	}
}

func TestCameraProcessMouseClampsPitch(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	cam.ProcessMouse(400, 300)
	if cam.Pitch != 0 {
		t.Error("First mouse sample should only record the position")
	}

	cam.ProcessMouse(400, -100000)
	if cam.Pitch != 89 {
		t.Errorf("Pitch should clamp to 89, got %f", cam.Pitch)
	}

	frontLen := cam.Front.Len()
	if math.Abs(float64(frontLen)-1.0) > 0.01 {
		t.Errorf("Front vector should be normalized, length=%f", frontLen)
	}
}

func TestCameraLookAt(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{10, 0, 0}

	cam.LookAt(mgl32.Vec3{0, 0, 0})

	if !cam.Front.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, 1e-5) {
		t.Errorf("Expected front (-1,0,0), got %v", cam.Front)
	}
}

func TestFrustumContainsTarget(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	frustum := cam.CalculateFrustum()

	if !frustum.IntersectsSphere(mgl32.Vec3{0, 0, 0}, 1) {
		t.Error("Origin should be visible from the default camera")
	}
	if frustum.IntersectsSphere(mgl32.Vec3{0, 0, 50}, 1) {
		t.Error("Sphere behind the camera should be culled")
	}
}
