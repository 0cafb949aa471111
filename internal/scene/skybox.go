package scene

import (
	"ShaderLab/internal/behaviour"
	"ShaderLab/internal/input"
	"ShaderLab/internal/logger"
	"ShaderLab/internal/renderer"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// SkyDrawer draws one background around the camera.
type SkyDrawer interface {
	Draw(tex renderer.SkyTextures, view, projection mgl32.Mat4)
}

// SkyBox draws the selected background and cycles it on B.
type SkyBox struct {
	behaviour.BaseComponent
	backgrounds []Background
	selector    *input.Cycler
	keyboard    *input.Keyboard
	camera      *renderer.Camera
	drawer      SkyDrawer
}

func NewSkyBox(backgrounds []Background, drawer SkyDrawer, camera *renderer.Camera, keyboard *input.Keyboard) (*SkyBox, error) {
	selector, err := input.NewCycler(len(backgrounds))
	if err != nil {
		return nil, fmt.Errorf("skybox: %w", err)
	}
	return &SkyBox{
		backgrounds: backgrounds,
		selector:    selector,
		keyboard:    keyboard,
		camera:      camera,
		drawer:      drawer,
	}, nil
}

func (s *SkyBox) Update(behaviour.Frame) {
	if s.keyboard.JustPressed(input.KeyB) {
		i := s.selector.Next()
		logger.Log.Info("Background changed", zap.Int("index", i), zap.String("name", s.backgrounds[i].Name))
	}
}

func (s *SkyBox) Draw(behaviour.Frame) {
	if s.drawer == nil {
		return
	}
	s.drawer.Draw(s.current().Textures, s.camera.GetViewMatrix(), s.camera.GetProjectionMatrix())
}

func (s *SkyBox) current() Background {
	return s.backgrounds[s.selector.Index()]
}

func (s *SkyBox) CurrentIndex() int { return s.selector.Index() }

// CurrentEnvMap is the cube map of the selected background.
func (s *SkyBox) CurrentEnvMap() uint32 { return s.current().Textures.CubeMap }

// CurrentLightPos is the light position that goes with the selected background.
func (s *SkyBox) CurrentLightPos() mgl32.Vec3 { return s.current().Light }
