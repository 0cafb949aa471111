package loader

import (
	"ShaderLab/internal/logger"
	"ShaderLab/internal/renderer"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const defaultMaterialName = "default"

type FaceVertex struct {
	VertexIdx   int32
	TexCoordIdx int32
	NormalIdx   int32
}

// LoadModel loads a Wavefront OBJ file and its MTL library. Normals are
// recalculated when asked to, or when the file has none.
func LoadModel(filename string, recalculateNormals bool) (*renderer.Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	model, err := ParseOBJ(file, filepath.Dir(filename), recalculateNormals)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	model.SourcePath = filename
	model.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return model, nil
}

// ParseOBJ reads OBJ data from r. dir resolves mtllib references.
func ParseOBJ(r io.Reader, dir string, recalculateNormals bool) (*renderer.Model, error) {
	var (
		vertices        []float32
		textureCoords   []float32
		normals         []float32
		unifiedFaces    []FaceVertex
		faceMaterialMap []string // material name per face vertex
		modelMaterials  = map[string]*renderer.Material{}
		currentMaterial = defaultMaterialName
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}
		switch parts[0] {
		case "v":
			vertex, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			vertices = append(vertices, vertex...)
		case "vn":
			normal, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, normal...)
		case "vt":
			texCoord, err := parseFloats(parts[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			textureCoords = append(textureCoords, texCoord...)
		case "f":
			faceVertices, err := parseFace(parts[1:], len(vertices)/3, len(textureCoords)/2, len(normals)/3)
			if err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
			}
			unifiedFaces = append(unifiedFaces, faceVertices...)
			for range faceVertices {
				faceMaterialMap = append(faceMaterialMap, currentMaterial)
			}
		case "mtllib":
			if len(parts) < 2 {
				continue
			}
			for name, mat := range LoadMaterials(filepath.Join(dir, parts[1])) {
				modelMaterials[name] = mat
			}
		case "usemtl":
			if len(parts) >= 2 {
				currentMaterial = parts[1]
				if _, ok := modelMaterials[currentMaterial]; !ok {
					logger.Log.Debug("Material not found", zap.String("material", currentMaterial))
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(unifiedFaces) == 0 {
		return nil, fmt.Errorf("no faces")
	}

	interleaved, faces, hasNormals, err := unifyIndices(unifiedFaces, vertices, textureCoords, normals)
	if err != nil {
		return nil, err
	}
	if recalculateNormals || !hasNormals {
		RecalculateInterleavedNormals(interleaved, faces)
	}

	groups := buildMaterialGroups(faceMaterialMap, modelMaterials)
	model := renderer.NewModel("", interleaved, faces, groups[0].Material)
	model.MaterialGroups = groups

	logger.Log.Debug("OBJ parsed",
		zap.Int("positions", len(vertices)/3),
		zap.Int("vertices", model.VertexCount()),
		zap.Int("triangles", len(faces)/3),
		zap.Int("materialGroups", len(groups)))
	return model, nil
}

// unifyIndices converts OBJ's separate position/uv/normal indices into one
// interleaved vertex per distinct triplet. A texture or normal index of -1
// means the face vertex has none.
func unifyIndices(faceVertices []FaceVertex, vertices, textureCoords, normals []float32) ([]float32, []int32, bool, error) {
	vertexMap := make(map[FaceVertex]int32)
	interleaved := make([]float32, 0, len(faceVertices)*renderer.VertexStride)
	faces := make([]int32, 0, len(faceVertices))
	hasNormals := true

	for _, fv := range faceVertices {
		if idx, ok := vertexMap[fv]; ok {
			faces = append(faces, idx)
			continue
		}
		idx := int32(len(interleaved) / renderer.VertexStride)
		vertexMap[fv] = idx

		v := int(fv.VertexIdx)
		if v < 0 || v*3+3 > len(vertices) {
			return nil, nil, false, fmt.Errorf("vertex index %d out of range, %d vertices", v+1, len(vertices)/3)
		}
		interleaved = append(interleaved, vertices[v*3:v*3+3]...)

		if t := int(fv.TexCoordIdx); t == -1 {
			interleaved = append(interleaved, 0, 0)
		} else if t < 0 || t*2+2 > len(textureCoords) {
			return nil, nil, false, fmt.Errorf("texture coordinate index %d out of range, %d coordinates", t+1, len(textureCoords)/2)
		} else {
			interleaved = append(interleaved, textureCoords[t*2:t*2+2]...)
		}

		if n := int(fv.NormalIdx); n == -1 {
			hasNormals = false
			interleaved = append(interleaved, 0, 1, 0)
		} else if n < 0 || n*3+3 > len(normals) {
			return nil, nil, false, fmt.Errorf("normal index %d out of range, %d normals", n+1, len(normals)/3)
		} else {
			interleaved = append(interleaved, normals[n*3:n*3+3]...)
		}

		faces = append(faces, idx)
	}
	return interleaved, faces, hasNormals, nil
}

// buildMaterialGroups turns the per-index material names into contiguous
// index ranges, preserving face order.
func buildMaterialGroups(faceMaterialMap []string, materials map[string]*renderer.Material) []renderer.MaterialGroup {
	var groups []renderer.MaterialGroup
	current := ""
	for i, name := range faceMaterialMap {
		if i == 0 || name != current {
			if len(groups) > 0 {
				last := &groups[len(groups)-1]
				last.IndexCount = int32(i) - last.IndexStart
			}
			groups = append(groups, renderer.MaterialGroup{Material: lookupMaterial(name, materials), IndexStart: int32(i)})
			current = name
		}
	}
	if len(groups) > 0 {
		last := &groups[len(groups)-1]
		last.IndexCount = int32(len(faceMaterialMap)) - last.IndexStart
	}
	return groups
}

func lookupMaterial(name string, materials map[string]*renderer.Material) *renderer.Material {
	if mat, ok := materials[name]; ok {
		return mat
	}
	mat := *renderer.DefaultMaterial
	mat.Name = name
	return &mat
}

// LoadMaterials loads material properties from a .mtl file. A missing or
// unreadable file yields an empty map.
func LoadMaterials(filename string) map[string]*renderer.Material {
	file, err := os.Open(filename)
	if err != nil {
		logger.Log.Warn("Error opening material file", zap.String("path", filename), zap.Error(err))
		return map[string]*renderer.Material{}
	}
	defer file.Close()

	materials, err := ParseMTL(file, filepath.Dir(filename))
	if err != nil {
		logger.Log.Warn("Error reading material file", zap.String("path", filename), zap.Error(err))
	}
	return materials
}

// ParseMTL reads material definitions. Texture paths are resolved against dir.
func ParseMTL(r io.Reader, dir string) (map[string]*renderer.Material, error) {
	var currentMaterial *renderer.Material
	materials := make(map[string]*renderer.Material)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				logger.Log.Warn("Malformed material line", zap.String("line", line))
				continue
			}
			currentMaterial = &renderer.Material{
				Name:          fields[1],
				DiffuseColor:  [3]float32{1, 1, 1},
				SpecularColor: [3]float32{1, 1, 1},
				Shininess:     32,
				Alpha:         1.0,
			}
			materials[fields[1]] = currentMaterial
			continue
		}
		if currentMaterial == nil {
			continue
		}

		switch fields[0] {
		case "Kd": // Diffuse color
			if len(fields) == 4 {
				currentMaterial.DiffuseColor = parseColor(fields[1:])
			}
		case "Ks": // Specular color
			if len(fields) == 4 {
				currentMaterial.SpecularColor = parseColor(fields[1:])
			}
		case "Ns": // Shininess
			if len(fields) == 2 {
				currentMaterial.Shininess = parseFloat(fields[1])
			}
		case "d": // Dissolve
			if len(fields) == 2 {
				currentMaterial.Alpha = parseFloat(fields[1])
			}
		case "map_Kd": // Diffuse texture map, options may precede the path
			texturePath := fields[len(fields)-1]
			if !filepath.IsAbs(texturePath) {
				texturePath = filepath.Join(dir, texturePath)
			}
			currentMaterial.TexturePath = texturePath
		}
	}
	return materials, scanner.Err()
}

// parseColor parses RGB color components from a list of strings to an array of float32.
func parseColor(fields []string) [3]float32 {
	var color [3]float32
	for i, field := range fields {
		color[i] = parseFloat(field)
	}
	return color
}

func parseFloat(s string) float32 {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		logger.Log.Warn("Error parsing float", zap.String("value", s), zap.Error(err))
		return 0
	}
	return float32(f)
}

// parseFloats parses at least n floats; extra components (w) are dropped.
func parseFloats(parts []string, n int) ([]float32, error) {
	if len(parts) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(parts))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		val, err := strconv.ParseFloat(parts[i], 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value %v: %w", parts[i], err)
		}
		out[i] = float32(val)
	}
	return out, nil
}

// parseFace reads one face line. Indices are 1-based, or negative to count
// back from the last element defined so far, and must refer to elements
// already read.
func parseFace(parts []string, vertexCount, texCoordCount, normalCount int) ([]FaceVertex, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(parts))
	}

	face := make([]FaceVertex, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")

		vertexIdx, err := resolveIndex(vals[0], vertexCount)
		if err != nil {
			return nil, fmt.Errorf("vertex index: %w", err)
		}

		var texCoordIdx int32 = -1
		if len(vals) > 1 && vals[1] != "" {
			if texCoordIdx, err = resolveIndex(vals[1], texCoordCount); err != nil {
				return nil, fmt.Errorf("texture coordinate index: %w", err)
			}
		}

		var normalIdx int32 = -1
		if len(vals) > 2 && vals[2] != "" {
			if normalIdx, err = resolveIndex(vals[2], normalCount); err != nil {
				return nil, fmt.Errorf("normal index: %w", err)
			}
		}

		face = append(face, FaceVertex{
			VertexIdx:   vertexIdx,
			TexCoordIdx: texCoordIdx,
			NormalIdx:   normalIdx,
		})
	}

	// Triangulate as a fan from the first vertex; quads become v0,v1,v2 + v0,v2,v3
	if len(face) == 3 {
		return face, nil
	}
	triangulated := make([]FaceVertex, 0, (len(face)-2)*3)
	for i := 1; i < len(face)-1; i++ {
		triangulated = append(triangulated, face[0], face[i], face[i+1])
	}
	return triangulated, nil
}

// resolveIndex turns an OBJ index into a 0-based one against count elements.
func resolveIndex(s string, count int) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid index %v: %w", s, err)
	}
	idx := n - 1
	if n < 0 {
		idx = int64(count) + n
	}
	if n == 0 || idx < 0 || idx >= int64(count) {
		return 0, fmt.Errorf("index %d out of range, %d defined", n, count)
	}
	return int32(idx), nil
}

// RecalculateInterleavedNormals replaces the normals of interleaved vertex
// data with area-weighted face normals.
func RecalculateInterleavedNormals(interleaved []float32, faces []int32) {
	vertexCount := len(interleaved) / renderer.VertexStride
	accum := make([]mgl32.Vec3, vertexCount)

	position := func(i int32) mgl32.Vec3 {
		d := interleaved[int(i)*renderer.VertexStride:]
		return mgl32.Vec3{d[0], d[1], d[2]}
	}

	for i := 0; i+2 < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		if int(i0) >= vertexCount || int(i1) >= vertexCount || int(i2) >= vertexCount {
			continue
		}
		v0, v1, v2 := position(i0), position(i1), position(i2)
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}

	for i, n := range accum {
		if n.Len() > 0 {
			n = n.Normalize()
		} else {
			n = mgl32.Vec3{0, 1, 0}
		}
		off := i*renderer.VertexStride + 5
		interleaved[off], interleaved[off+1], interleaved[off+2] = n[0], n[1], n[2]
	}
}
