package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// SkyTextures are the textures of one background: a cube map for the
// skybox and environment mapping, plus the same faces as 2D textures for
// the faceted skybox. Faces are in GL order (+X, -X, +Y, -Y, +Z, -Z).
type SkyTextures struct {
	CubeMap uint32
	Faces   [6]uint32
}

// CubeFaceDirection maps face-local coordinates s,t in [-1,1] (s to the
// right, t downwards in image space) to the direction the GL cube map
// samples for that texel.
func CubeFaceDirection(face int, s, t float32) mgl32.Vec3 {
	switch face {
	case 0: // +X
		return mgl32.Vec3{1, -t, -s}
	case 1: // -X
		return mgl32.Vec3{-1, -t, s}
	case 2: // +Y
		return mgl32.Vec3{s, 1, t}
	case 3: // -Y
		return mgl32.Vec3{s, -1, -t}
	case 4: // +Z
		return mgl32.Vec3{s, -t, 1}
	default: // -Z
		return mgl32.Vec3{-s, -t, -1}
	}
}

// SkyView strips the translation from a view matrix so the sky follows
// the camera.
func SkyView(view mgl32.Mat4) mgl32.Mat4 {
	view[12] = 0
	view[13] = 0
	view[14] = 0
	return view
}

// Skybox draws a unit cube sampled from a cube map.
type Skybox struct {
	VAO    uint32
	VBO    uint32
	Shader *Shader
}

var skyboxVertices = []float32{
	-1, 1, -1,
	-1, -1, -1,
	1, -1, -1,
	1, -1, -1,
	1, 1, -1,
	-1, 1, -1,

	-1, -1, 1,
	-1, -1, -1,
	-1, 1, -1,
	-1, 1, -1,
	-1, 1, 1,
	-1, -1, 1,

	1, -1, -1,
	1, -1, 1,
	1, 1, 1,
	1, 1, 1,
	1, 1, -1,
	1, -1, -1,

	-1, -1, 1,
	-1, 1, 1,
	1, 1, 1,
	1, 1, 1,
	1, -1, 1,
	-1, -1, 1,

	-1, 1, -1,
	1, 1, -1,
	1, 1, 1,
	1, 1, 1,
	-1, 1, 1,
	-1, 1, -1,

	-1, -1, -1,
	-1, -1, 1,
	1, -1, -1,
	1, -1, -1,
	-1, -1, 1,
	1, -1, 1,
}

func NewSkybox(shaders *ShaderLibrary) (*Skybox, error) {
	shader, err := shaders.Program("skybox.vert", "skybox.frag")
	if err != nil {
		return nil, err
	}
	skybox := &Skybox{Shader: shader}

	gl.GenVertexArrays(1, &skybox.VAO)
	gl.GenBuffers(1, &skybox.VBO)

	gl.BindVertexArray(skybox.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, skybox.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(skyboxVertices)*4, gl.Ptr(skyboxVertices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	return skybox, nil
}

// Draw renders the background behind everything already drawn.
func (s *Skybox) Draw(tex SkyTextures, view, projection mgl32.Mat4) {
	s.Shader.Use()
	s.Shader.SetMat4("view", SkyView(view))
	s.Shader.SetMat4("projection", projection)
	s.Shader.SetCubeMap("envMap", 0, tex.CubeMap)

	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)

	gl.BindVertexArray(s.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(skyboxVertices)/3))
	gl.BindVertexArray(0)

	// Restore OpenGL state
	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

func (s *Skybox) Cleanup() {
	gl.DeleteVertexArrays(1, &s.VAO)
	gl.DeleteBuffers(1, &s.VBO)
}
