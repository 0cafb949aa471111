package loader

import (
	"ShaderLab/internal/renderer"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// ContrastRamp builds the charcoal contrast enhancement texture. U is the
// input intensity and V the contrast amount: rows further down push values
// harder towards black or white.
func ContrastRamp(size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		v := float64(y) / float64(size-1)
		for x := 0; x < size; x++ {
			u := float64(x) / float64(size-1)
			c := (u-0.5)*(1+4*v) + 0.5
			img.SetGray(x, y, color.Gray{Y: toByte(c)})
		}
	}
	return img
}

// NoiseTexture is multi octave Perlin noise mapped to grey levels.
func NoiseTexture(size int, seed int64) *image.Gray {
	p := perlin.NewPerlin(2, 2, 4, seed)
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := p.Noise2D(float64(x)*0.08, float64(y)*0.08)
			img.SetGray(x, y, color.Gray{Y: toByte(0.5 + n*0.5)})
		}
	}
	return img
}

// PaperTexture imitates grainy paper: a bright base with fine fibres from
// high frequency noise and a soft low frequency mottle.
func PaperTexture(size int, seed int64) *image.Gray {
	fine := perlin.NewPerlin(1.5, 2, 3, seed)
	coarse := perlin.NewPerlin(2, 2, 2, seed+1)
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			grain := fine.Noise2D(float64(x)*0.45, float64(y)*0.45)
			mottle := coarse.Noise2D(float64(x)*0.02, float64(y)*0.02)
			c := 0.85 + grain*0.12 + mottle*0.06
			img.SetGray(x, y, color.Gray{Y: toByte(c)})
		}
	}
	return img
}

// SkyPreset is a gradient palette for a generated sky cube.
type SkyPreset struct {
	Name    string
	Zenith  color.RGBA
	Horizon color.RGBA
	Ground  color.RGBA
	// Sun direction and glow, only used when SunSize > 0
	Sun     mgl32.Vec3
	SunTint color.RGBA
	SunSize float32
}

var skyPresets = map[string]SkyPreset{
	"day": {
		Name: "day", Zenith: rgb(60, 110, 200), Horizon: rgb(180, 210, 240), Ground: rgb(90, 85, 70),
		Sun: mgl32.Vec3{1, 1, 0}, SunTint: rgb(255, 250, 220), SunSize: 0.03,
	},
	"sunset": {
		Name: "sunset", Zenith: rgb(40, 50, 110), Horizon: rgb(250, 140, 60), Ground: rgb(50, 35, 30),
		Sun: mgl32.Vec3{-1, 0.15, 1}, SunTint: rgb(255, 200, 120), SunSize: 0.06,
	},
	"night": {
		Name: "night", Zenith: rgb(5, 8, 25), Horizon: rgb(25, 35, 70), Ground: rgb(10, 10, 15),
		Sun: mgl32.Vec3{1, 1, -1}, SunTint: rgb(220, 225, 255), SunSize: 0.015,
	},
	"bright": {
		Name: "bright", Zenith: rgb(30, 120, 255), Horizon: rgb(150, 200, 255), Ground: rgb(110, 140, 90),
		Sun: mgl32.Vec3{1, 1, -1}, SunTint: rgb(255, 255, 240), SunSize: 0.04,
	},
	"overcast": {
		Name: "overcast", Zenith: rgb(150, 155, 165), Horizon: rgb(200, 200, 205), Ground: rgb(80, 80, 80),
	},
	"dusk": {
		Name: "dusk", Zenith: rgb(30, 20, 70), Horizon: rgb(200, 100, 130), Ground: rgb(30, 25, 35),
		Sun: mgl32.Vec3{0, 0.1, -1}, SunTint: rgb(255, 170, 150), SunSize: 0.05,
	},
}

// LookupSkyPreset returns the named preset.
func LookupSkyPreset(name string) (SkyPreset, error) {
	p, ok := skyPresets[name]
	if !ok {
		return SkyPreset{}, fmt.Errorf("unknown sky preset %q", name)
	}
	return p, nil
}

// SkyPresetNames lists the known presets in no particular order.
func SkyPresetNames() []string {
	names := make([]string, 0, len(skyPresets))
	for n := range skyPresets {
		names = append(names, n)
	}
	return names
}

// SkyFaces renders the six cube faces of a preset in GL order
// (+X, -X, +Y, -Y, +Z, -Z).
func SkyFaces(preset SkyPreset, size int) [6]*image.RGBA {
	var faces [6]*image.RGBA
	sun := preset.Sun
	if preset.SunSize > 0 {
		sun = sun.Normalize()
	}
	for f := 0; f < 6; f++ {
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		for y := 0; y < size; y++ {
			t := 2*(float32(y)+0.5)/float32(size) - 1
			for x := 0; x < size; x++ {
				s := 2*(float32(x)+0.5)/float32(size) - 1
				dir := renderer.CubeFaceDirection(f, s, t).Normalize()
				img.SetRGBA(x, y, skyColor(preset, sun, dir))
			}
		}
		faces[f] = img
	}
	return faces
}

func skyColor(p SkyPreset, sun, dir mgl32.Vec3) color.RGBA {
	var c color.RGBA
	if dir[1] >= 0 {
		// Horizon glow fades quickly with elevation
		k := float32(math.Pow(float64(dir[1]), 0.6))
		c = lerpColor(p.Horizon, p.Zenith, k)
	} else {
		k := float32(math.Min(1, float64(-dir[1])*4))
		c = lerpColor(p.Horizon, p.Ground, k)
	}
	if p.SunSize > 0 {
		d := 1 - dir.Dot(sun)
		if d < p.SunSize {
			k := 1 - d/p.SunSize
			c = lerpColor(c, p.SunTint, k*k)
		}
	}
	return c
}

func lerpColor(a, b color.RGBA, k float32) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*k + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
