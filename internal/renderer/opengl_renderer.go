package renderer

import (
	"ShaderLab/internal/logger"
	"ShaderLab/internal/technique"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// MeshVertexShader is shared by every technique program.
const MeshVertexShader = "mesh.vert"

const defaultTextureName = "__default_white"

var _ Render = (*OpenGLRenderer)(nil)
var _ technique.Uniforms = (*Shader)(nil)

type OpenGLRenderer struct {
	Models         []*Model
	Shaders        *ShaderLibrary
	Textures       *TextureManager
	defaultTexture uint32
	active         *technique.Technique // technique between Begin and End
}

func NewOpenGLRenderer(shaderDir string) *OpenGLRenderer {
	return &OpenGLRenderer{
		Shaders:  NewShaderLibrary(shaderDir),
		Textures: NewTextureManager(),
	}
}

func (rend *OpenGLRenderer) Init(width, height int32) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("OpenGL initialization failed: %w", err)
	}

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	}
	if FaceCullingEnabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}

	texture, err := rend.Textures.CreateTextureFromImage(DefaultTextureImage(), defaultTextureName)
	if err != nil {
		return err
	}
	rend.defaultTexture = texture
	gl.Viewport(0, 0, width, height)

	logger.Log.Info("OpenGL render initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))
	return nil
}

// DefaultTexture is the white texture bound for parts without one.
func (rend *OpenGLRenderer) DefaultTexture() uint32 {
	return rend.defaultTexture
}

func (rend *OpenGLRenderer) Clear() {
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// AddModel uploads the mesh and its material textures. A texture that
// fails to load is replaced by the default one; the model is still added
// and the returned error lists every failed texture.
func (rend *OpenGLRenderer) AddModel(model *Model) error {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(model.InterleavedData)*4, gl.Ptr(model.InterleavedData), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(model.Faces)*4, gl.Ptr(model.Faces), gl.STATIC_DRAW)

	stride := int32(VertexStride * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	model.VAO = vao
	model.VBO = vbo
	model.EBO = ebo

	var errs error
	for _, group := range model.Groups() {
		mat := group.Material
		if mat.TextureID != 0 {
			continue
		}
		if mat.TexturePath == "" {
			mat.TextureID = rend.defaultTexture
			continue
		}
		textureID, err := rend.Textures.LoadTexture(mat.TexturePath)
		if err != nil {
			logger.Log.Warn("Material texture unavailable, using default",
				zap.String("model", model.Name),
				zap.String("material", mat.Name),
				zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s/%s: %w", model.Name, mat.Name, err))
			mat.TextureID = rend.defaultTexture
			continue
		}
		mat.TextureID = textureID
	}

	rend.Models = append(rend.Models, model)
	logger.Log.Debug("Model uploaded",
		zap.String("model", model.Name),
		zap.Int("vertices", model.VertexCount()),
		zap.Int("parts", len(model.Groups())))
	return errs
}

func (rend *OpenGLRenderer) RemoveModel(model *Model) {
	for i, m := range rend.Models {
		if m == model {
			rend.Models = append(rend.Models[:i], rend.Models[i+1:]...)
			gl.DeleteVertexArrays(1, &model.VAO)
			gl.DeleteBuffers(1, &model.VBO)
			gl.DeleteBuffers(1, &model.EBO)
			break
		}
	}
}

// Begin makes the technique's program current and sets its blend state.
func (rend *OpenGLRenderer) Begin(t technique.Technique) (technique.Uniforms, error) {
	shader, err := rend.Shaders.Program(MeshVertexShader, t.Fragment)
	if err != nil {
		return nil, fmt.Errorf("technique %s: %w", t.Name, err)
	}
	shader.Use()

	if t.Additive {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE, gl.ONE)
		gl.DepthMask(false)
	}
	rend.active = &t
	return shader, nil
}

// DrawGroup draws one part's index range with the current program.
func (rend *OpenGLRenderer) DrawGroup(model *Model, group MaterialGroup) {
	if group.IndexCount <= 0 {
		return
	}
	gl.BindVertexArray(model.VAO)
	gl.DrawElements(gl.TRIANGLES, group.IndexCount, gl.UNSIGNED_INT, gl.PtrOffset(int(group.IndexStart)*4))
	gl.BindVertexArray(0)
}

func (rend *OpenGLRenderer) End() {
	if rend.active != nil && rend.active.Additive {
		gl.Disable(gl.BLEND)
		gl.DepthMask(true)
	}
	rend.active = nil
}

// UpdateViewport updates the OpenGL viewport to match the current window size
func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

// CheckError drains the GL error queue into one error.
func CheckError(op string) error {
	var errs error
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		errs = multierr.Append(errs, fmt.Errorf("%s: GL error 0x%x", op, code))
	}
	return errs
}

func (rend *OpenGLRenderer) Cleanup() error {
	for len(rend.Models) > 0 {
		rend.RemoveModel(rend.Models[len(rend.Models)-1])
	}
	errs := CheckError("delete meshes")

	rend.Shaders.Cleanup()
	errs = multierr.Append(errs, CheckError("delete programs"))

	rend.Textures.LogStats()
	rend.Textures.Clear()
	errs = multierr.Append(errs, CheckError("delete textures"))
	return errs
}
