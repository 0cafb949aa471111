package loader

import (
	"ShaderLab/internal/renderer"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Built-in shapes used when a configured model file is missing.
const (
	PrimitiveSphere   = "sphere"
	PrimitiveTorus    = "torus"
	PrimitiveCube     = "cube"
	PrimitiveCylinder = "cylinder"
	PrimitiveCone     = "cone"
)

var primitiveOrder = []string{PrimitiveSphere, PrimitiveTorus, PrimitiveCube, PrimitiveCylinder, PrimitiveCone}

// FallbackPrimitive picks the built-in shape standing in for model slot i.
func FallbackPrimitive(i int) string {
	if i < 0 {
		i = -i
	}
	return primitiveOrder[i%len(primitiveOrder)]
}

// LoadPrimitive builds one of the named shapes with the given material colour.
func LoadPrimitive(name string, color [3]float32) (*renderer.Model, error) {
	var interleaved []float32
	var faces []int32
	switch name {
	case PrimitiveSphere:
		interleaved, faces = sphere(1, 32, 16)
	case PrimitiveTorus:
		interleaved, faces = torus(0.7, 0.3, 48, 24)
	case PrimitiveCube:
		interleaved, faces = cube(1)
	case PrimitiveCylinder:
		interleaved, faces = cylinder(0.6, 1.6, 32)
	case PrimitiveCone:
		interleaved, faces = cone(0.7, 1.6, 32)
	default:
		return nil, fmt.Errorf("unknown primitive %q", name)
	}

	mat := *renderer.DefaultMaterial
	mat.Name = name
	mat.DiffuseColor = color
	return renderer.NewModel(name, interleaved, faces, &mat), nil
}

type meshBuilder struct {
	data  []float32
	faces []int32
}

func (b *meshBuilder) vertex(p mgl32.Vec3, u, v float32, n mgl32.Vec3) int32 {
	idx := int32(len(b.data) / renderer.VertexStride)
	b.data = append(b.data, p[0], p[1], p[2], u, v, n[0], n[1], n[2])
	return idx
}

func (b *meshBuilder) tri(a, c, d int32) {
	b.faces = append(b.faces, a, c, d)
}

// grid connects a (rows+1)x(cols+1) vertex lattice starting at base. Rows
// run so that (next column) x (next row) points outward.
func (b *meshBuilder) grid(base int32, rows, cols int) {
	stride := int32(cols + 1)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i0 := base + int32(r)*stride + int32(c)
			i1 := i0 + 1
			i2 := i0 + stride
			i3 := i2 + 1
			b.tri(i0, i1, i2)
			b.tri(i1, i3, i2)
		}
	}
}

func sphere(radius float32, slices, stacks int) ([]float32, []int32) {
	b := &meshBuilder{}
	for i := 0; i <= stacks; i++ {
		v := float32(i) / float32(stacks)
		phi := float64(v) * math.Pi
		for j := 0; j <= slices; j++ {
			u := float32(j) / float32(slices)
			theta := float64(u) * 2 * math.Pi
			n := mgl32.Vec3{
				float32(math.Sin(phi) * math.Cos(theta)),
				float32(math.Cos(phi)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			b.vertex(n.Mul(radius), u, v, n)
		}
	}
	b.grid(0, stacks, slices)
	return b.data, b.faces
}

func torus(major, minor float32, rings, sides int) ([]float32, []int32) {
	b := &meshBuilder{}
	for i := 0; i <= rings; i++ {
		u := float32(i) / float32(rings)
		theta := float64(u) * 2 * math.Pi
		center := mgl32.Vec3{float32(math.Cos(theta)) * major, 0, float32(math.Sin(theta)) * major}
		for j := 0; j <= sides; j++ {
			v := float32(j) / float32(sides)
			phi := float64(v) * 2 * math.Pi
			n := mgl32.Vec3{
				float32(math.Cos(phi) * math.Cos(theta)),
				float32(math.Sin(phi)),
				float32(math.Cos(phi) * math.Sin(theta)),
			}
			b.vertex(center.Add(n.Mul(minor)), u, v, n)
		}
	}
	b.grid(0, rings, sides)
	return b.data, b.faces
}

func cube(half float32) ([]float32, []int32) {
	b := &meshBuilder{}
	normals := []mgl32.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	for _, n := range normals {
		// Two axes spanning the face, chosen so (s x t) points along n
		var s, t mgl32.Vec3
		switch {
		case n[0] != 0:
			s, t = mgl32.Vec3{0, 0, -n[0]}, mgl32.Vec3{0, 1, 0}
		case n[1] != 0:
			s, t = mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -n[1]}
		default:
			s, t = mgl32.Vec3{n[2], 0, 0}, mgl32.Vec3{0, 1, 0}
		}
		c := n.Mul(half)
		i0 := b.vertex(c.Sub(s.Mul(half)).Sub(t.Mul(half)), 0, 0, n)
		i1 := b.vertex(c.Add(s.Mul(half)).Sub(t.Mul(half)), 1, 0, n)
		i2 := b.vertex(c.Add(s.Mul(half)).Add(t.Mul(half)), 1, 1, n)
		i3 := b.vertex(c.Sub(s.Mul(half)).Add(t.Mul(half)), 0, 1, n)
		b.tri(i0, i1, i2)
		b.tri(i0, i2, i3)
	}
	return b.data, b.faces
}

func cylinder(radius, height float32, slices int) ([]float32, []int32) {
	b := &meshBuilder{}
	half := height / 2
	for i := 0; i <= 1; i++ {
		y := half - float32(i)*height
		for j := 0; j <= slices; j++ {
			u := float32(j) / float32(slices)
			theta := float64(u) * 2 * math.Pi
			n := mgl32.Vec3{float32(math.Cos(theta)), 0, float32(math.Sin(theta))}
			b.vertex(mgl32.Vec3{n[0] * radius, y, n[2] * radius}, u, float32(i), n)
		}
	}
	b.grid(0, 1, slices)
	disc(b, radius, half, slices, 1)
	disc(b, radius, -half, slices, -1)
	return b.data, b.faces
}

func cone(radius, height float32, slices int) ([]float32, []int32) {
	b := &meshBuilder{}
	half := height / 2
	slope := radius / height
	for i := 0; i <= 1; i++ {
		y := half - float32(i)*height
		r := radius * float32(i)
		for j := 0; j <= slices; j++ {
			u := float32(j) / float32(slices)
			theta := float64(u) * 2 * math.Pi
			dir := mgl32.Vec3{float32(math.Cos(theta)), 0, float32(math.Sin(theta))}
			n := mgl32.Vec3{dir[0], slope, dir[2]}.Normalize()
			b.vertex(mgl32.Vec3{dir[0] * r, y, dir[2] * r}, u, float32(i), n)
		}
	}
	b.grid(0, 1, slices)
	disc(b, radius, -half, slices, -1)
	return b.data, b.faces
}

// disc adds a triangle fan disc at height y facing up (+1) or down (-1).
func disc(b *meshBuilder, radius, y float32, slices int, facing float32) {
	n := mgl32.Vec3{0, facing, 0}
	center := b.vertex(mgl32.Vec3{0, y, 0}, 0.5, 0.5, n)
	first := int32(len(b.data) / renderer.VertexStride)
	for j := 0; j <= slices; j++ {
		theta := float64(j) / float64(slices) * 2 * math.Pi
		x, z := float32(math.Cos(theta)), float32(math.Sin(theta))
		b.vertex(mgl32.Vec3{x * radius, y, z * radius}, 0.5+x*0.5, 0.5+z*0.5, n)
	}
	for j := int32(0); j < int32(slices); j++ {
		if facing > 0 {
			b.tri(center, first+j+1, first+j)
		} else {
			b.tri(center, first+j, first+j+1)
		}
	}
}
