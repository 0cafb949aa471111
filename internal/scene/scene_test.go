package scene

import (
	"ShaderLab/internal/behaviour"
	"ShaderLab/internal/input"
	"ShaderLab/internal/logger"
	"ShaderLab/internal/renderer"
	"ShaderLab/internal/technique"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var frame = behaviour.Frame{Delta: 1.0 / 60}

type recordedUniforms struct {
	mat4  map[string]mgl32.Mat4
	vec3  map[string]mgl32.Vec3
	float map[string]float32
	tex2D map[string]uint32
	cube  map[string]uint32
}

func newRecordedUniforms() *recordedUniforms {
	return &recordedUniforms{
		mat4:  map[string]mgl32.Mat4{},
		vec3:  map[string]mgl32.Vec3{},
		float: map[string]float32{},
		tex2D: map[string]uint32{},
		cube:  map[string]uint32{},
	}
}

func (u *recordedUniforms) SetMat4(name string, m mgl32.Mat4)           { u.mat4[name] = m }
func (u *recordedUniforms) SetVec3(name string, v mgl32.Vec3)           { u.vec3[name] = v }
func (u *recordedUniforms) SetFloat(name string, v float32)             { u.float[name] = v }
func (u *recordedUniforms) SetTexture2D(name string, _ int32, t uint32) { u.tex2D[name] = t }
func (u *recordedUniforms) SetCubeMap(name string, _ int32, t uint32)   { u.cube[name] = t }

type drawCall struct {
	technique string
	diffuse   mgl32.Vec3
	texture   uint32
	start     int32
}

type fakeRenderer struct {
	broken   map[string]bool
	begun    []string
	ended    int
	active   string
	uniforms *recordedUniforms
	draws    []drawCall
}

func (r *fakeRenderer) Begin(t technique.Technique) (technique.Uniforms, error) {
	r.begun = append(r.begun, t.Name)
	if r.broken[t.Name] {
		return nil, errors.New("link failed")
	}
	r.active = t.Name
	r.uniforms = newRecordedUniforms()
	return r.uniforms, nil
}

func (r *fakeRenderer) DrawGroup(_ *renderer.Model, g renderer.MaterialGroup) {
	r.draws = append(r.draws, drawCall{
		technique: r.active,
		diffuse:   r.uniforms.vec3[technique.UniformDiffuseColor],
		texture:   r.uniforms.tex2D[technique.UniformDiffuseTexture],
		start:     g.IndexStart,
	})
}

func (r *fakeRenderer) End() { r.ended++ }

type fakeSky struct {
	drawn []renderer.SkyTextures
	view  mgl32.Mat4
}

func (s *fakeSky) Draw(tex renderer.SkyTextures, view, _ mgl32.Mat4) {
	s.drawn = append(s.drawn, tex)
	s.view = view
}

type fakeMouse struct {
	held bool
	x, y float32
}

func (m *fakeMouse) LookHeld() bool                { return m.held }
func (m *fakeMouse) CursorPos() (float32, float32) { return m.x, m.y }

// twoPartModel has a red part and a green part with different textures.
func twoPartModel(name string) *renderer.Model {
	data := []float32{
		0, 0, 0, 0, 0, 0, 0, 1,
		1, 0, 0, 1, 0, 0, 0, 1,
		0, 1, 0, 0, 1, 0, 0, 1,
		1, 1, 0, 1, 1, 0, 0, 1,
	}
	faces := []int32{0, 1, 2, 1, 3, 2}
	model := renderer.NewModel(name, data, faces, nil)
	red := &renderer.Material{Name: "red", DiffuseColor: [3]float32{1, 0, 0}, TextureID: 7}
	green := &renderer.Material{Name: "green", DiffuseColor: [3]float32{0, 1, 0}, TextureID: 9}
	model.MaterialGroups = []renderer.MaterialGroup{
		{Material: red, IndexStart: 0, IndexCount: 3},
		{Material: green, IndexStart: 3, IndexCount: 3},
	}
	return model
}

func newTestMesh(t *testing.T, keys input.KeySet, gpu TechniqueRenderer) *Mesh {
	t.Helper()
	models := []*renderer.Model{twoPartModel("a"), twoPartModel("b"), twoPartModel("c")}
	camera := renderer.NewDefaultCamera(800, 600)
	m, err := NewMesh(models, technique.CharcoalTextures{Contrast: 1, Noise: 2, Paper: 3}, gpu, camera, input.NewKeyboard(keys))
	require.NoError(t, err)
	return m
}

func TestMeshStartsWithFallbackTechnique(t *testing.T) {
	m := newTestMesh(t, input.KeySet{}, &fakeRenderer{})

	assert.Equal(t, "PhongLighting", m.CurrentTechnique())
	assert.Equal(t, "a", m.CurrentModel().Name)
	assert.InDelta(t, 0.4, m.Reflectance(), 1e-6)
}

func TestMeshFunctionKeysSelectTechnique(t *testing.T) {
	keys := input.KeySet{}
	m := newTestMesh(t, keys, &fakeRenderer{})

	keys[input.KeyF2] = true
	m.Update(frame)
	assert.Equal(t, "Charcoal", m.CurrentTechnique())

	// Selection sticks after release
	keys[input.KeyF2] = false
	m.Update(frame)
	assert.Equal(t, "Charcoal", m.CurrentTechnique())

	// Later key in F order wins within a frame
	keys[input.KeyF3] = true
	keys[input.KeyF6] = true
	m.Update(frame)
	assert.Equal(t, "RefractionMapping", m.CurrentTechnique())

	keys[input.KeyF3] = false
	keys[input.KeyF6] = false
	keys[input.KeyF9] = true
	m.Update(frame)
	assert.Equal(t, "PhongLighting", m.CurrentTechnique())
}

func TestMeshModelKeyIsDebounced(t *testing.T) {
	keys := input.KeySet{input.KeyM: true}
	m := newTestMesh(t, keys, &fakeRenderer{})

	m.Update(frame)
	m.Update(frame)
	m.Update(frame)
	assert.Equal(t, "b", m.CurrentModel().Name)

	keys[input.KeyM] = false
	m.Update(frame)
	keys[input.KeyM] = true
	m.Update(frame)
	assert.Equal(t, "c", m.CurrentModel().Name)

	keys[input.KeyM] = false
	m.Update(frame)
	keys[input.KeyM] = true
	m.Update(frame)
	assert.Equal(t, "a", m.CurrentModel().Name)
}

func TestMeshReflectanceKeyWraps(t *testing.T) {
	keys := input.KeySet{}
	m := newTestMesh(t, keys, &fakeRenderer{})

	press := func() {
		keys[input.KeyR] = true
		m.Update(frame)
		keys[input.KeyR] = false
		m.Update(frame)
	}

	for i := 0; i < 6; i++ {
		press()
	}
	assert.InDelta(t, 1.0, m.Reflectance(), 1e-6)

	press()
	assert.InDelta(t, 0.1, m.Reflectance(), 1e-6)
}

func TestMeshDrawBindsEveryPart(t *testing.T) {
	keys := input.KeySet{input.KeyF5: true}
	gpu := &fakeRenderer{}
	m := newTestMesh(t, keys, gpu)
	m.Update(frame)
	m.SetEnvironment(42, mgl32.Vec3{100, 100, 0})

	m.Draw(frame)

	require.Len(t, gpu.draws, 2)
	assert.Equal(t, []string{"ReflectionMapping"}, gpu.begun)
	assert.Equal(t, 1, gpu.ended)

	assert.Equal(t, mgl32.Vec3{1, 0, 0}, gpu.draws[0].diffuse)
	assert.Equal(t, uint32(7), gpu.draws[0].texture)
	assert.Equal(t, int32(0), gpu.draws[0].start)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, gpu.draws[1].diffuse)
	assert.Equal(t, uint32(9), gpu.draws[1].texture)
	assert.Equal(t, int32(3), gpu.draws[1].start)

	u := gpu.uniforms
	assert.Equal(t, uint32(42), u.cube[technique.UniformEnvMap])
	assert.InDelta(t, 0.4, u.float[technique.UniformReflectance], 1e-6)
	assert.Equal(t, mgl32.Vec3{100, 100, 0}, u.vec3[technique.UniformLightPosition])
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, u.vec3[technique.UniformCameraPosition])
	assert.Equal(t, m.CurrentModel().ModelMatrix, u.mat4[technique.UniformWorld])
}

func TestMeshDrawFallsBackWhenTechniqueBroken(t *testing.T) {
	keys := input.KeySet{input.KeyF7: true}
	gpu := &fakeRenderer{broken: map[string]bool{"ToonShading": true}}
	m := newTestMesh(t, keys, gpu)
	m.Update(frame)

	m.Draw(frame)

	assert.Equal(t, []string{"ToonShading", "PhongLighting"}, gpu.begun)
	require.Len(t, gpu.draws, 2)
	assert.Equal(t, "PhongLighting", gpu.draws[0].technique)
	assert.Equal(t, "PhongLighting", m.CurrentTechnique())

	// Once the program builds the selection is drawn again
	delete(gpu.broken, "ToonShading")
	m.Draw(frame)
	assert.Equal(t, "ToonShading", m.CurrentTechnique())
}

func TestMeshLogsEachBreakOnce(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	defer func(prev *zap.Logger) { logger.Log = prev }(logger.Log)
	logger.Log = zap.New(core)

	keys := input.KeySet{input.KeyF7: true}
	gpu := &fakeRenderer{broken: map[string]bool{"ToonShading": true}}
	m := newTestMesh(t, keys, gpu)
	m.Update(frame)

	m.Draw(frame)
	m.Draw(frame)
	assert.Equal(t, 1, logs.Len())

	delete(gpu.broken, "ToonShading")
	m.Draw(frame)
	gpu.broken["ToonShading"] = true
	m.Draw(frame)
	m.Draw(frame)
	assert.Equal(t, 2, logs.Len())
}

func TestMeshDrawSkipsWhenFallbackBroken(t *testing.T) {
	gpu := &fakeRenderer{broken: map[string]bool{"PhongLighting": true}}
	m := newTestMesh(t, input.KeySet{}, gpu)

	m.Draw(frame)

	assert.Empty(t, gpu.draws)
	assert.Zero(t, gpu.ended)
}

func TestMeshCullSkipsModelBehindCamera(t *testing.T) {
	gpu := &fakeRenderer{}
	m := newTestMesh(t, input.KeySet{}, gpu)
	m.Cull = true

	m.Draw(frame)
	assert.Len(t, gpu.draws, 2)

	m.CurrentModel().SetPosition(0, 0, 50)
	m.Draw(frame)
	assert.Len(t, gpu.draws, 2)
}

func TestNewMeshNeedsModels(t *testing.T) {
	_, err := NewMesh(nil, technique.CharcoalTextures{}, &fakeRenderer{}, renderer.NewDefaultCamera(800, 600), input.NewKeyboard(input.KeySet{}))
	assert.Error(t, err)
}

func testBackgrounds() []Background {
	return []Background{
		{Name: "day", Textures: renderer.SkyTextures{CubeMap: 11}, Light: mgl32.Vec3{100, 100, 0}},
		{Name: "dusk", Textures: renderer.SkyTextures{CubeMap: 12}, Light: mgl32.Vec3{-100, 100, 100}},
	}
}

func TestSkyBoxCyclesOnB(t *testing.T) {
	keys := input.KeySet{}
	sky, err := NewSkyBox(testBackgrounds(), &fakeSky{}, renderer.NewDefaultCamera(800, 600), input.NewKeyboard(keys))
	require.NoError(t, err)

	assert.Equal(t, uint32(11), sky.CurrentEnvMap())
	assert.Equal(t, mgl32.Vec3{100, 100, 0}, sky.CurrentLightPos())

	keys[input.KeyB] = true
	sky.Update(frame)
	sky.Update(frame)
	assert.Equal(t, 1, sky.CurrentIndex())
	assert.Equal(t, uint32(12), sky.CurrentEnvMap())
	assert.Equal(t, mgl32.Vec3{-100, 100, 100}, sky.CurrentLightPos())

	keys[input.KeyB] = false
	sky.Update(frame)
	keys[input.KeyB] = true
	sky.Update(frame)
	assert.Equal(t, 0, sky.CurrentIndex())
}

func TestSkyBoxDrawsCurrentBackground(t *testing.T) {
	drawer := &fakeSky{}
	camera := renderer.NewDefaultCamera(800, 600)
	sky, err := NewSkyBox(testBackgrounds(), drawer, camera, input.NewKeyboard(input.KeySet{}))
	require.NoError(t, err)

	sky.Draw(frame)

	require.Len(t, drawer.drawn, 1)
	assert.Equal(t, uint32(11), drawer.drawn[0].CubeMap)
	assert.Equal(t, camera.GetViewMatrix(), drawer.view)
}

func TestNewSkyBoxNeedsBackgrounds(t *testing.T) {
	_, err := NewSkyBox(nil, &fakeSky{}, renderer.NewDefaultCamera(800, 600), input.NewKeyboard(input.KeySet{}))
	assert.Error(t, err)
}

func TestCameraComponentMovesAndLooks(t *testing.T) {
	keys := input.KeySet{input.KeyW: true}
	mouse := &fakeMouse{}
	camera := renderer.NewDefaultCamera(800, 600)
	c := NewCameraComponent(camera, keys, mouse)

	c.Update(behaviour.Frame{Delta: 0.5})
	assert.InDelta(t, 0, camera.Position.Z(), 1e-4)

	yaw := camera.Yaw
	mouse.held = true
	mouse.x, mouse.y = 100, 100
	c.Update(behaviour.Frame{})
	mouse.x = 150
	c.Update(behaviour.Frame{})
	assert.InDelta(t, yaw+5, camera.Yaw, 1e-4)

	// Releasing resets so the next press does not jump
	mouse.held = false
	c.Update(behaviour.Frame{})
	mouse.held = true
	mouse.x = 500
	c.Update(behaviour.Frame{})
	assert.InDelta(t, yaw+5, camera.Yaw, 1e-4)
}
