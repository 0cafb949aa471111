package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	facetedVerticesPerFace = 4
	facetedIndicesPerFace  = 6
)

// FacetedSkybox draws the background as six textured quads, one draw per
// face, using the 2D face textures instead of the cube map.
type FacetedSkybox struct {
	VAO    uint32
	VBO    uint32
	EBO    uint32
	Shader *Shader
}

// facetedGeometry builds 24 vertices [x,y,z,u,v] and 36 indices. Each quad
// is placed so its texels land where the cube map would sample them.
func facetedGeometry() ([]float32, []uint32) {
	vertices := make([]float32, 0, 6*facetedVerticesPerFace*5)
	indices := make([]uint32, 0, 6*facetedIndicesPerFace)
	corners := [facetedVerticesPerFace][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	for face := 0; face < 6; face++ {
		base := uint32(face * facetedVerticesPerFace)
		for _, c := range corners {
			p := CubeFaceDirection(face, 2*c[0]-1, 2*c[1]-1)
			vertices = append(vertices, p[0], p[1], p[2], c[0], c[1])
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

func NewFacetedSkybox(shaders *ShaderLibrary) (*FacetedSkybox, error) {
	shader, err := shaders.Program("faceted.vert", "faceted.frag")
	if err != nil {
		return nil, err
	}
	s := &FacetedSkybox{Shader: shader}
	vertices, indices := facetedGeometry()

	gl.GenVertexArrays(1, &s.VAO)
	gl.BindVertexArray(s.VAO)

	gl.GenBuffers(1, &s.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &s.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	stride := int32(5 * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return s, nil
}

func (s *FacetedSkybox) Draw(tex SkyTextures, view, projection mgl32.Mat4) {
	s.Shader.Use()
	s.Shader.SetMat4("view", SkyView(view))
	s.Shader.SetMat4("projection", projection)

	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)

	gl.BindVertexArray(s.VAO)
	for face := 0; face < 6; face++ {
		s.Shader.SetTexture2D("faceTexture", 0, tex.Faces[face])
		gl.DrawElements(gl.TRIANGLES, facetedIndicesPerFace, gl.UNSIGNED_INT,
			gl.PtrOffset(face*facetedIndicesPerFace*4))
	}
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

func (s *FacetedSkybox) Cleanup() {
	gl.DeleteVertexArrays(1, &s.VAO)
	gl.DeleteBuffers(1, &s.VBO)
	gl.DeleteBuffers(1, &s.EBO)
}
