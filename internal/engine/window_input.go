package engine

import (
	"ShaderLab/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var glfwKeys = map[input.Key]glfw.Key{
	input.KeyW:          glfw.KeyW,
	input.KeyA:          glfw.KeyA,
	input.KeyS:          glfw.KeyS,
	input.KeyD:          glfw.KeyD,
	input.KeyB:          glfw.KeyB,
	input.KeyM:          glfw.KeyM,
	input.KeyR:          glfw.KeyR,
	input.KeyF1:         glfw.KeyF1,
	input.KeyF2:         glfw.KeyF2,
	input.KeyF3:         glfw.KeyF3,
	input.KeyF4:         glfw.KeyF4,
	input.KeyF5:         glfw.KeyF5,
	input.KeyF6:         glfw.KeyF6,
	input.KeyF7:         glfw.KeyF7,
	input.KeyF8:         glfw.KeyF8,
	input.KeyF9:         glfw.KeyF9,
	input.KeyLeftShift:  glfw.KeyLeftShift,
	input.KeyRightShift: glfw.KeyRightShift,
	input.KeyEscape:     glfw.KeyEscape,
}

// WindowInput reads keys, the cursor and the first gamepad from a window.
type WindowInput struct {
	window  *glfw.Window
	gamepad glfw.Joystick
}

func NewWindowInput(window *glfw.Window) *WindowInput {
	return &WindowInput{window: window, gamepad: glfw.Joystick1}
}

func (w *WindowInput) IsKeyDown(k input.Key) bool {
	key, ok := glfwKeys[k]
	if !ok {
		return false
	}
	return w.window.GetKey(key) == glfw.Press
}

// LookHeld reports the right mouse button held over a focused window.
func (w *WindowInput) LookHeld() bool {
	return w.window.GetAttrib(glfw.Focused) == glfw.True &&
		w.window.GetMouseButton(glfw.MouseButtonRight) == glfw.Press
}

func (w *WindowInput) CursorPos() (float32, float32) {
	x, y := w.window.GetCursorPos()
	return float32(x), float32(y)
}

// QuitRequested reports Escape or the gamepad Back button.
func (w *WindowInput) QuitRequested() bool {
	if w.IsKeyDown(input.KeyEscape) {
		return true
	}
	if !w.gamepad.IsGamepad() {
		return false
	}
	state := w.gamepad.GetGamepadState()
	return state != nil && state.Buttons[glfw.ButtonBack] == glfw.Press
}
