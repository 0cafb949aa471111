package app

import (
	"ShaderLab/internal/behaviour"
	"ShaderLab/internal/config"
	"ShaderLab/internal/engine"
	"ShaderLab/internal/input"
	"ShaderLab/internal/logger"
	"ShaderLab/internal/renderer"
	"ShaderLab/internal/scene"
	"ShaderLab/internal/shaderwatch"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Overlay position in pixels from the top-left corner.
const overlayX, overlayY = 1, 1

// gpuAssets gives asset loading the texture manager and model upload of
// one renderer.
type gpuAssets struct {
	*renderer.TextureManager
	rend *renderer.OpenGLRenderer
}

func (g gpuAssets) AddModel(model *renderer.Model) error {
	return g.rend.AddModel(model)
}

type skyDrawer interface {
	scene.SkyDrawer
	Cleanup()
}

// Run opens the window and runs the demo until it is closed.
func Run(cfg config.Config) error {
	eng := engine.New(engine.Options{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		X:         cfg.Window.X,
		Y:         cfg.Window.Y,
		ShaderDir: cfg.Shaders.Dir,
	})
	return eng.Run(func(e *engine.Engine) error {
		return setup(e, &cfg)
	})
}

func setup(e *engine.Engine, cfg *config.Config) error {
	rend := e.Renderer()

	assets, err := scene.LoadAssets(cfg, gpuAssets{TextureManager: rend.Textures, rend: rend})
	if err != nil {
		return err
	}

	camera := e.Camera
	camera.Speed = cfg.Camera.Speed
	camera.Sensitivity = cfg.Camera.Sensitivity
	camera.SetFov(cfg.Camera.Fov)
	camera.Position = mgl32.Vec3(cfg.Camera.Position)

	var undo renderer.Unwind
	var drawer skyDrawer
	if cfg.Skybox.Mode == config.SkyboxFaceted {
		drawer, err = renderer.NewFacetedSkybox(rend.Shaders)
	} else {
		drawer, err = renderer.NewSkybox(rend.Shaders)
	}
	if err != nil {
		return err
	}
	undo.Add(drawer.Cleanup)

	keyboard := input.NewKeyboard(e.Input())
	sky, err := scene.NewSkyBox(assets.Backgrounds, drawer, camera, keyboard)
	if err != nil {
		undo.Unwind()
		return err
	}
	mesh, err := scene.NewMesh(assets.Models, assets.Charcoal, rend, camera, keyboard)
	if err != nil {
		undo.Unwind()
		return err
	}
	mesh.Cull = true

	game := NewGame(e.Components, scene.NewCameraComponent(camera, e.Input(), e.Input()), sky, mesh)
	if cfg.Turntable != 0 {
		e.Components.Add(scene.NewTurntable(mesh, cfg.Turntable))
	}

	var closeErr error
	if cfg.Shaders.HotReload && cfg.Shaders.Dir != "" {
		watcher, err := shaderwatch.New(cfg.Shaders.Dir, renderer.IsShaderFile)
		if err != nil {
			// The demo runs without hot reload
			logger.Log.Warn("Shader hot reload disabled", zap.Error(err))
		} else {
			game.WatchShaders(watcher, rend.Shaders)
			undo.Add(func() { closeErr = multierr.Append(closeErr, watcher.Close()) })
		}
	}

	overlay, err := renderer.NewOverlay(rend.Shaders)
	if err != nil {
		logger.Log.Warn("Help overlay disabled", zap.Error(err))
	} else {
		undo.Add(overlay.Cleanup)
	}

	e.SetOnUpdate(game.AfterUpdate)
	e.SetOnRenderCallback(func(behaviour.Frame) {
		if overlay != nil {
			overlay.Draw(game.HelpText(), overlayX, overlayY, e.Width, e.Height)
		}
	})
	e.SetOnCleanup(func() error {
		undo.Unwind()
		return closeErr
	})

	logger.Log.Info("ShaderLab ready",
		zap.Int("models", len(assets.Models)),
		zap.Int("backgrounds", len(assets.Backgrounds)),
		zap.String("skybox", cfg.Skybox.Mode),
		zap.String("technique", mesh.CurrentTechnique()))
	return nil
}
