package engine

import (
	"ShaderLab/internal/behaviour"
	"ShaderLab/internal/logger"
	"ShaderLab/internal/renderer"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Options struct {
	Width, Height int32
	Title         string
	X, Y          int
	ShaderDir     string
}

// Engine owns the window, the GL renderer and the component loop.
type Engine struct {
	Width      int32
	Height     int32
	Title      string
	Components *behaviour.ComponentManager
	Camera     *renderer.Camera

	x, y     int
	renderer *renderer.OpenGLRenderer
	window   *glfw.Window
	input    *WindowInput

	onUpdate         func(frame behaviour.Frame) // after every component updated
	onRenderCallback func(frame behaviour.Frame) // after every component drew
	onCleanup        func() error
}

func New(opts Options) *Engine {
	return &Engine{
		Width:      opts.Width,
		Height:     opts.Height,
		Title:      opts.Title,
		Components: behaviour.NewComponentManager(),
		x:          opts.X,
		y:          opts.Y,
		renderer:   renderer.NewOpenGLRenderer(opts.ShaderDir),
	}
}

// Run opens the window, calls setup once the GL context is current, then
// runs the loop until the window closes. It must be called from main.
func (e *Engine) Run(setup func(e *Engine) error) (err error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	e.window, err = glfw.CreateWindow(int(e.Width), int(e.Height), e.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("could not create glfw window: %w", err)
	}
	defer e.window.Destroy()

	e.window.MakeContextCurrent()
	glfw.SwapInterval(1)
	e.window.SetPos(e.x, e.y)
	e.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	// Viewport and projection follow the framebuffer, which differs from
	// the window size on high-DPI displays
	fbWidth, fbHeight := e.window.GetFramebufferSize()
	e.Width, e.Height = int32(fbWidth), int32(fbHeight)

	if err := e.renderer.Init(e.Width, e.Height); err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, e.cleanup())
	}()

	e.Camera = renderer.NewDefaultCamera(e.Width, e.Height)
	e.input = NewWindowInput(e.window)

	if setup != nil {
		if err := setup(e); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
	}

	logger.Log.Info("Entering render loop", zap.Int32("width", e.Width), zap.Int32("height", e.Height))
	e.RenderLoop()
	return nil
}

func (e *Engine) RenderLoop() {
	start := glfw.GetTime()
	lastTime := start

	for !e.window.ShouldClose() {
		currentTime := glfw.GetTime()
		frame := behaviour.Frame{Delta: currentTime - lastTime, Total: currentTime - start}
		lastTime = currentTime

		e.checkResize()

		if e.input.QuitRequested() {
			e.window.SetShouldClose(true)
		}

		e.Components.UpdateAll(frame)
		if e.onUpdate != nil {
			e.onUpdate(frame)
		}

		e.renderer.Clear()
		e.Components.DrawAll(frame)
		if e.onRenderCallback != nil {
			e.onRenderCallback(frame)
		}

		e.window.SwapBuffers()
		glfw.PollEvents()
	}
}

func (e *Engine) checkResize() {
	w, h := e.window.GetFramebufferSize()
	if int32(w) == e.Width && int32(h) == e.Height {
		return
	}
	if w <= 0 || h <= 0 {
		// Minimised
		return
	}
	e.Width, e.Height = int32(w), int32(h)
	e.renderer.UpdateViewport(e.Width, e.Height)
	e.Camera.Resize(e.Width, e.Height)
	logger.Log.Debug("Window resized", zap.Int32("width", e.Width), zap.Int32("height", e.Height))
}

func (e *Engine) cleanup() error {
	e.Components.Clear()
	var errs error
	if e.onCleanup != nil {
		errs = e.onCleanup()
	}
	return multierr.Append(errs, e.renderer.Cleanup())
}

// SetOnUpdate sets a callback run each frame after the components update.
func (e *Engine) SetOnUpdate(callback func(frame behaviour.Frame)) {
	e.onUpdate = callback
}

// SetOnRenderCallback sets a callback run each frame after the scene is drawn.
func (e *Engine) SetOnRenderCallback(callback func(frame behaviour.Frame)) {
	e.onRenderCallback = callback
}

// SetOnCleanup sets a callback run before the renderer releases its resources.
func (e *Engine) SetOnCleanup(callback func() error) {
	e.onCleanup = callback
}

func (e *Engine) Renderer() *renderer.OpenGLRenderer {
	return e.renderer
}

// Input is the keyboard and mouse of the window. Nil before Run.
func (e *Engine) Input() *WindowInput {
	return e.input
}

func (e *Engine) Close() {
	if e.window != nil {
		e.window.SetShouldClose(true)
	}
}
