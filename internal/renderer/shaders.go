package renderer

import (
	"ShaderLab/internal/logger"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

//go:embed shaders/*.vert shaders/*.frag
var embeddedShaders embed.FS

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	Name           string
	vertexFile     string
	fragmentFile   string
	vertexSource   string
	fragmentSource string
	program        uint32
	uniforms       *UniformCache
	isCompiled     bool
}

func NewShader(name, vertexSource, fragmentSource string) *Shader {
	return &Shader{
		Name:           name,
		vertexSource:   vertexSource,
		fragmentSource: fragmentSource,
	}
}

// Compile builds the program from the current sources. On failure the
// previously linked program, if any, stays in use.
func (shader *Shader) Compile() error {
	vertex, err := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("%s: vertex shader: %w", shader.Name, err)
	}
	fragment, err := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return fmt.Errorf("%s: fragment shader: %w", shader.Name, err)
	}
	program, err := GenShaderProgram(vertex, fragment)
	if err != nil {
		return fmt.Errorf("%s: %w", shader.Name, err)
	}

	if shader.isCompiled {
		gl.DeleteProgram(shader.program)
	}
	shader.program = program
	shader.uniforms = NewUniformCache(program)
	shader.isCompiled = true
	logger.Log.Debug("Shader program linked", zap.String("shader", shader.Name), zap.Uint32("program", program))
	return nil
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) Delete() {
	if shader.isCompiled {
		gl.DeleteProgram(shader.program)
		shader.isCompiled = false
	}
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value.X(), value.Y(), value.Z())
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

func (shader *Shader) SetInt(name string, value int32) {
	shader.uniforms.SetInt(name, value)
}

// SetTexture2D binds texture to unit and points the sampler at it.
func (shader *Shader) SetTexture2D(name string, unit int32, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, texture)
	shader.uniforms.SetInt(name, unit)
}

func (shader *Shader) SetCubeMap(name string, unit int32, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, texture)
	shader.uniforms.SetInt(name, unit)
}

// ShaderSources resolves shader files, preferring Dir on disk over the
// copies built into the binary.
type ShaderSources struct {
	Dir string
}

func (src ShaderSources) Read(name string) (string, error) {
	if src.Dir != "" {
		data, err := os.ReadFile(filepath.Join(src.Dir, name))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	data, err := embeddedShaders.ReadFile("shaders/" + name)
	if err != nil {
		return "", fmt.Errorf("shader source %s: %w", name, err)
	}
	return string(data), nil
}

// ShaderLibrary compiles each vertex/fragment pair once and can rebuild
// the programs that use a file after it changes.
type ShaderLibrary struct {
	sources  ShaderSources
	programs map[string]*Shader
	failed   map[string]failedProgram // not retried until one of its files changes
}

type failedProgram struct {
	vertexFile, fragmentFile string
	err                      error
}

func NewShaderLibrary(overrideDir string) *ShaderLibrary {
	return &ShaderLibrary{
		sources:  ShaderSources{Dir: overrideDir},
		programs: make(map[string]*Shader),
		failed:   make(map[string]failedProgram),
	}
}

func programKey(vertexFile, fragmentFile string) string {
	return vertexFile + "+" + fragmentFile
}

// Program returns the compiled program for the pair, building it on first use.
func (l *ShaderLibrary) Program(vertexFile, fragmentFile string) (*Shader, error) {
	key := programKey(vertexFile, fragmentFile)
	if shader, ok := l.programs[key]; ok {
		return shader, nil
	}
	if f, ok := l.failed[key]; ok {
		return nil, f.err
	}

	shader, err := l.build(key, vertexFile, fragmentFile)
	if err != nil {
		l.failed[key] = failedProgram{vertexFile: vertexFile, fragmentFile: fragmentFile, err: err}
		return nil, err
	}
	l.programs[key] = shader
	return shader, nil
}

func (l *ShaderLibrary) build(key, vertexFile, fragmentFile string) (*Shader, error) {
	vertexSource, err := l.sources.Read(vertexFile)
	if err != nil {
		return nil, err
	}
	fragmentSource, err := l.sources.Read(fragmentFile)
	if err != nil {
		return nil, err
	}

	shader := NewShader(key, vertexSource, fragmentSource)
	shader.vertexFile = vertexFile
	shader.fragmentFile = fragmentFile
	if err := shader.Compile(); err != nil {
		return nil, err
	}
	return shader, nil
}

// Reload recompiles every program built from file. Programs that fail to
// compile keep their previous version. Programs that never compiled are
// retried on their next use.
func (l *ShaderLibrary) Reload(file string) error {
	name := filepath.Base(file)
	for key, f := range l.failed {
		if f.vertexFile == name || f.fragmentFile == name {
			delete(l.failed, key)
		}
	}

	var errs error
	reloaded := 0
	for _, shader := range l.programs {
		if shader.vertexFile != name && shader.fragmentFile != name {
			continue
		}
		vertexSource, err := l.sources.Read(shader.vertexFile)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		fragmentSource, err := l.sources.Read(shader.fragmentFile)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		oldVertex, oldFragment := shader.vertexSource, shader.fragmentSource
		shader.vertexSource, shader.fragmentSource = vertexSource, fragmentSource
		if err := shader.Compile(); err != nil {
			shader.vertexSource, shader.fragmentSource = oldVertex, oldFragment
			errs = multierr.Append(errs, err)
			continue
		}
		reloaded++
	}
	logger.Log.Info("Shaders reloaded", zap.String("file", name), zap.Int("programs", reloaded))
	return errs
}

func (l *ShaderLibrary) Cleanup() {
	for key, shader := range l.programs {
		shader.Delete()
		delete(l.programs, key)
	}
	l.failed = make(map[string]failedProgram)
}

// IsShaderFile reports whether name looks like one of the GLSL sources.
func IsShaderFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".vert", ".frag", ".glsl":
		return true
	}
	return false
}

func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		logger.Log.Error("Failed to compile", zap.Uint32("shaderType", shaderType), zap.String("log", log))
		return 0, fmt.Errorf("compile failed: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("link failed: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}
