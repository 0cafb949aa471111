package scene

import (
	"ShaderLab/internal/behaviour"
	"ShaderLab/internal/input"
	"ShaderLab/internal/logger"
	"ShaderLab/internal/renderer"
	"ShaderLab/internal/technique"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// TechniqueRenderer draws mesh parts in technique passes.
type TechniqueRenderer interface {
	Begin(t technique.Technique) (technique.Uniforms, error)
	DrawGroup(model *renderer.Model, group renderer.MaterialGroup)
	End()
}

// Mesh draws the current model with the current technique. F1..F9 pick the
// technique, M cycles the model and R steps the reflectance.
type Mesh struct {
	behaviour.BaseComponent
	models      []*renderer.Model
	selector    *input.Cycler
	reflectance *input.Stepper
	technique   technique.Technique
	applied     technique.Technique // what the last draw actually used
	charcoal    technique.CharcoalTextures

	keyboard *input.Keyboard
	camera   *renderer.Camera
	gpu      TechniqueRenderer

	envMap uint32
	light  mgl32.Vec3

	// Cull skips drawing when the model is outside the view frustum.
	Cull bool

	failed map[technique.ID]bool
}

func NewMesh(models []*renderer.Model, charcoal technique.CharcoalTextures, gpu TechniqueRenderer, camera *renderer.Camera, keyboard *input.Keyboard) (*Mesh, error) {
	selector, err := input.NewCycler(len(models))
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	m := &Mesh{
		models:      models,
		selector:    selector,
		reflectance: input.NewReflectance(),
		technique:   technique.Get(technique.Fallback),
		applied:     technique.Get(technique.Fallback),
		charcoal:    charcoal,
		keyboard:    keyboard,
		camera:      camera,
		gpu:         gpu,
		failed:      make(map[technique.ID]bool),
	}
	m.SetDrawOrder(1)
	return m, nil
}

func (m *Mesh) Update(behaviour.Frame) {
	if n := m.keyboard.LastFunctionKey(); n > 0 {
		if t := technique.ForKey(n); t.ID != m.technique.ID {
			m.technique = t
			m.applied = t
			logger.Log.Info("Technique changed", zap.String("technique", t.Name))
		}
	}

	// Both keys are sampled every frame so releases are seen
	nextModel := m.keyboard.JustPressed(input.KeyM)
	nextReflectance := m.keyboard.JustPressed(input.KeyR)

	if nextModel {
		i := m.selector.Next()
		logger.Log.Info("Model changed", zap.Int("index", i), zap.String("name", m.models[i].Name))
	}
	if nextReflectance {
		logger.Log.Info("Reflectance changed", zap.Float32("reflectance", m.reflectance.Next()))
	}
}

// SetEnvironment sets the cube map and light position used for the next draw.
func (m *Mesh) SetEnvironment(envMap uint32, light mgl32.Vec3) {
	m.envMap = envMap
	m.light = light
}

// CurrentTechnique names the technique the mesh is drawn with, which is the
// fallback while the selected one cannot be built.
func (m *Mesh) CurrentTechnique() string { return m.applied.Name }

func (m *Mesh) CurrentModel() *renderer.Model { return m.models[m.selector.Index()] }

func (m *Mesh) Reflectance() float32 { return m.reflectance.Value }

func (m *Mesh) Draw(behaviour.Frame) {
	model := m.CurrentModel()
	if m.Cull && !m.inView(model) {
		return
	}

	t, u, ok := m.begin()
	if !ok {
		return
	}
	defer m.gpu.End()

	params := technique.Params{
		World:          m.camera.WorldMatrix().Mul4(model.ModelMatrix),
		View:           m.camera.GetViewMatrix(),
		Projection:     m.camera.GetProjectionMatrix(),
		LightPosition:  m.light,
		CameraPosition: m.camera.Position,
		EnvMap:         m.envMap,
		Reflectance:    m.reflectance.Value,
		Charcoal:       m.charcoal,
	}
	for _, group := range model.Groups() {
		params.DiffuseColor = mgl32.Vec3(group.Material.DiffuseColor)
		params.Texture = group.Material.TextureID
		t.Bind(u, params)
		m.gpu.DrawGroup(model, group)
	}
}

// begin starts the current technique's pass, dropping to the fallback
// technique when its program is unavailable. A failure is logged once until
// the technique builds again.
func (m *Mesh) begin() (technique.Technique, technique.Uniforms, bool) {
	t := m.technique
	if u, ok := m.try(t); ok {
		m.applied = t
		return t, u, true
	}
	if t.ID == technique.Fallback {
		return t, nil, false
	}

	t = technique.Get(technique.Fallback)
	u, ok := m.try(t)
	if ok {
		m.applied = t
	}
	return t, u, ok
}

func (m *Mesh) try(t technique.Technique) (technique.Uniforms, bool) {
	u, err := m.gpu.Begin(t)
	if err == nil {
		delete(m.failed, t.ID)
		return u, true
	}
	if !m.failed[t.ID] {
		m.failed[t.ID] = true
		logger.Log.Error("Technique unavailable", zap.String("technique", t.Name), zap.Error(err))
	}
	return nil, false
}

func (m *Mesh) inView(model *renderer.Model) bool {
	frustum := m.camera.CalculateFrustum()
	center := model.ModelMatrix.Mul4x1(model.BoundingSphereCenter.Vec4(1)).Vec3()
	scale := mgl32.Abs(model.Scale.X())
	if s := mgl32.Abs(model.Scale.Y()); s > scale {
		scale = s
	}
	if s := mgl32.Abs(model.Scale.Z()); s > scale {
		scale = s
	}
	return frustum.IntersectsSphere(center, model.BoundingSphereRadius*scale)
}
