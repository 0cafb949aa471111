// Package technique describes the selectable surface shading techniques and
// the shader parameters each one needs.
package technique

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type ID int

const (
	PhongLighting ID = iota
	Charcoal
	XRay
	ProceduralStripe
	ReflectionMapping
	RefractionMapping
	ToonShading
	Dimples
)

// Fallback is used before any function key is pressed and for F9.
const Fallback = PhongLighting

// Uniform names shared by every technique program.
const (
	UniformWorld          = "world"
	UniformView           = "view"
	UniformProjection     = "projection"
	UniformLightPosition  = "lightPosition"
	UniformCameraPosition = "cameraPosition"
	UniformLightColor     = "lightColor"
	UniformDiffuseColor   = "diffuseColor"
	UniformAmbientColor   = "ambientColor"
	UniformSpecularColor  = "specularColor"
	UniformDiffuseTexture = "diffuseTexture"
)

// Technique-specific uniform names.
const (
	UniformNoiseTexture    = "noiseTexture"
	UniformPaperTexture    = "paperTexture"
	UniformContrastTexture = "contrastTexture"
	UniformAmbient         = "ambient"
	UniformBackColor       = "backColor"
	UniformStripeColor     = "stripeColor"
	UniformKd              = "Kd"
	UniformFuzz            = "fuzz"
	UniformWidth           = "width"
	UniformEnvMap          = "envMap"
	UniformReflectance     = "reflectance"
)

// Texture units.
const (
	UnitDiffuse int32 = iota
	UnitNoise
	UnitPaper
	UnitContrast
	UnitEnvMap
)

var (
	LightColor    = mgl32.Vec3{1, 1, 1}
	AmbientColor  = mgl32.Vec3{0.1, 0.1, 0.1}
	SpecularColor = mgl32.Vec3{245.0 / 255, 245.0 / 255, 245.0 / 255} // white smoke

	StripeBackColor = mgl32.Vec3{0.2, 0.2, 0.1}
	StripeColor     = mgl32.Vec3{1, 0.5, 0}
)

const (
	CharcoalAmbient float32 = 0.3
	StripeKd        float32 = 0.8
	StripeFuzz      float32 = 0.1
	StripeWidth     float32 = 0.5
)

// Uniforms is the subset of a shader program that parameter binding needs.
type Uniforms interface {
	SetMat4(name string, m mgl32.Mat4)
	SetVec3(name string, v mgl32.Vec3)
	SetFloat(name string, v float32)
	SetTexture2D(name string, unit int32, texture uint32)
	SetCubeMap(name string, unit int32, texture uint32)
}

// CharcoalTextures are the auxiliary maps of the charcoal technique.
type CharcoalTextures struct {
	Contrast uint32
	Noise    uint32
	Paper    uint32
}

// Params carries everything bound for one mesh part.
type Params struct {
	World          mgl32.Mat4
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	LightPosition  mgl32.Vec3
	CameraPosition mgl32.Vec3
	DiffuseColor   mgl32.Vec3
	Texture        uint32
	EnvMap         uint32
	Reflectance    float32
	Charcoal       CharcoalTextures
}

type Technique struct {
	ID   ID
	Name string
	// Fragment is the fragment shader file for this technique; all techniques
	// share the mesh vertex shader.
	Fragment string
	// Additive techniques draw with additive blending and no depth writes.
	Additive bool
	bind     func(u Uniforms, p Params)
}

var table = []Technique{
	{ID: PhongLighting, Name: "PhongLighting", Fragment: "phong.frag"},
	{ID: Charcoal, Name: "Charcoal", Fragment: "charcoal.frag", bind: func(u Uniforms, p Params) {
		u.SetTexture2D(UniformNoiseTexture, UnitNoise, p.Charcoal.Noise)
		u.SetTexture2D(UniformPaperTexture, UnitPaper, p.Charcoal.Paper)
		u.SetTexture2D(UniformContrastTexture, UnitContrast, p.Charcoal.Contrast)
		u.SetFloat(UniformAmbient, CharcoalAmbient)
	}},
	{ID: XRay, Name: "XRay", Fragment: "xray.frag", Additive: true},
	{ID: ProceduralStripe, Name: "ProceduralStripe", Fragment: "stripe.frag", bind: func(u Uniforms, _ Params) {
		u.SetVec3(UniformBackColor, StripeBackColor)
		u.SetVec3(UniformStripeColor, StripeColor)
		u.SetFloat(UniformKd, StripeKd)
		u.SetFloat(UniformFuzz, StripeFuzz)
		u.SetFloat(UniformWidth, StripeWidth)
	}},
	{ID: ReflectionMapping, Name: "ReflectionMapping", Fragment: "reflection.frag", bind: func(u Uniforms, p Params) {
		u.SetCubeMap(UniformEnvMap, UnitEnvMap, p.EnvMap)
		u.SetFloat(UniformReflectance, p.Reflectance)
	}},
	{ID: RefractionMapping, Name: "RefractionMapping", Fragment: "refraction.frag", bind: func(u Uniforms, p Params) {
		u.SetCubeMap(UniformEnvMap, UnitEnvMap, p.EnvMap)
	}},
	{ID: ToonShading, Name: "ToonShading", Fragment: "toon.frag"},
	{ID: Dimples, Name: "Dimples", Fragment: "dimples.frag"},
}

// All returns the techniques in function-key order.
func All() []Technique {
	out := make([]Technique, len(table))
	copy(out, table)
	return out
}

func Get(id ID) Technique {
	if id < 0 || int(id) >= len(table) {
		return table[Fallback]
	}
	return table[id]
}

// ForKey maps a function-key number to a technique. F1..F8 select in table
// order; F9 and anything else select the fallback.
func ForKey(n int) Technique {
	if n >= 1 && n <= len(table) {
		return table[n-1]
	}
	return table[Fallback]
}

func ByName(name string) (Technique, error) {
	for _, t := range table {
		if t.Name == name {
			return t, nil
		}
	}
	return Technique{}, fmt.Errorf("unknown technique %q", name)
}

func Names() []string {
	names := make([]string, len(table))
	for i, t := range table {
		names[i] = t.Name
	}
	return names
}

func (t Technique) String() string { return t.Name }

// Bind sets the common parameters and then the technique's own.
func (t Technique) Bind(u Uniforms, p Params) {
	u.SetMat4(UniformWorld, p.World)
	u.SetMat4(UniformView, p.View)
	u.SetMat4(UniformProjection, p.Projection)
	u.SetVec3(UniformLightPosition, p.LightPosition)
	u.SetVec3(UniformCameraPosition, p.CameraPosition)
	u.SetVec3(UniformLightColor, LightColor)
	u.SetVec3(UniformDiffuseColor, p.DiffuseColor)
	u.SetVec3(UniformAmbientColor, AmbientColor)
	u.SetVec3(UniformSpecularColor, SpecularColor)
	u.SetTexture2D(UniformDiffuseTexture, UnitDiffuse, p.Texture)
	if t.bind != nil {
		t.bind(u, p)
	}
}
