package scene

import (
	"ShaderLab/internal/config"
	"ShaderLab/internal/loader"
	"ShaderLab/internal/logger"
	"ShaderLab/internal/renderer"
	"ShaderLab/internal/technique"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	generatedSkySize     = 256
	generatedTextureSize = 256
	charcoalSeed         = 1
	modelRadius          = 2
)

// GPU is the part of the renderer asset loading needs.
type GPU interface {
	AddModel(model *renderer.Model) error
	LoadTexture(path string) (uint32, error)
	CreateTextureFromImage(img image.Image, name string) (uint32, error)
	LoadCubeMap(name string, paths [6]string) (uint32, error)
	CreateCubeMapFromImages(name string, faces [6]image.Image) (uint32, error)
}

// Background is one selectable environment.
type Background struct {
	Name     string
	Textures renderer.SkyTextures
	Light    mgl32.Vec3
}

// Assets is everything loaded once at startup.
type Assets struct {
	Models      []*renderer.Model
	Backgrounds []Background
	Charcoal    technique.CharcoalTextures
	// Fallbacks lists each asset that was replaced by a generated one.
	Fallbacks error
}

// LoadAssets loads models, backgrounds and charcoal textures. Missing
// files are replaced by generated stand-ins and recorded in Fallbacks;
// only a failure of the stand-in itself is returned as an error.
func LoadAssets(cfg *config.Config, gpu GPU) (*Assets, error) {
	assets := &Assets{}
	var err error

	if assets.Models, err = loadModels(cfg, gpu, &assets.Fallbacks); err != nil {
		return nil, err
	}
	if assets.Backgrounds, err = loadBackgrounds(cfg, gpu, &assets.Fallbacks); err != nil {
		return nil, err
	}
	if assets.Charcoal, err = loadCharcoal(cfg, gpu, &assets.Fallbacks); err != nil {
		return nil, err
	}

	if n := len(multierr.Errors(assets.Fallbacks)); n > 0 {
		logger.Log.Warn("Some assets were generated", zap.Int("count", n))
	}
	return assets, nil
}

func loadModels(cfg *config.Config, gpu GPU, fallbacks *error) ([]*renderer.Model, error) {
	models := make([]*renderer.Model, 0, len(cfg.Models))
	for i, p := range cfg.Models {
		path := cfg.Resolve(p)
		model, err := loader.LoadModel(path, false)
		if err != nil {
			name := loader.FallbackPrimitive(i)
			logger.Log.Warn("Model unavailable, using primitive",
				zap.String("path", path),
				zap.String("primitive", name),
				zap.Error(err))
			*fallbacks = multierr.Append(*fallbacks, fmt.Errorf("model %d: %w", i, err))

			model, err = loader.LoadPrimitive(name, [3]float32{0.8, 0.8, 0.8})
			if err != nil {
				return nil, err
			}
		}
		model.FitToRadius(modelRadius)

		if err := gpu.AddModel(model); err != nil {
			// Parts fall back to the default texture inside AddModel
			*fallbacks = multierr.Append(*fallbacks, err)
		}
		models = append(models, model)
		logger.Log.Info("Model ready", zap.Int("index", i), zap.String("name", model.Name), zap.Int("parts", len(model.Groups())))
	}
	return models, nil
}

func loadBackgrounds(cfg *config.Config, gpu GPU, fallbacks *error) ([]Background, error) {
	backgrounds := make([]Background, 0, len(cfg.Skybox.Backgrounds))
	for i, bg := range cfg.Skybox.Backgrounds {
		name := fmt.Sprintf("background%d", i)
		tex, err := loadSkyFiles(name, cfg.FacePaths(bg), gpu)
		if err != nil {
			logger.Log.Warn("Skybox faces unavailable, generating sky",
				zap.Int("index", i),
				zap.String("preset", bg.Preset),
				zap.Error(err))
			*fallbacks = multierr.Append(*fallbacks, fmt.Errorf("background %d: %w", i, err))

			tex, err = generateSky(name, bg.Preset, gpu)
			if err != nil {
				return nil, err
			}
		}
		backgrounds = append(backgrounds, Background{
			Name:     name,
			Textures: tex,
			Light:    mgl32.Vec3{bg.Light[0], bg.Light[1], bg.Light[2]},
		})
	}
	return backgrounds, nil
}

func loadSkyFiles(name string, paths [6]string, gpu GPU) (renderer.SkyTextures, error) {
	var tex renderer.SkyTextures
	cube, err := gpu.LoadCubeMap(name, paths)
	if err != nil {
		return tex, err
	}
	tex.CubeMap = cube
	for i, p := range paths {
		face, err := gpu.LoadTexture(p)
		if err != nil {
			return tex, err
		}
		tex.Faces[i] = face
	}
	return tex, nil
}

func generateSky(name, presetName string, gpu GPU) (renderer.SkyTextures, error) {
	var tex renderer.SkyTextures
	preset, err := loader.LookupSkyPreset(presetName)
	if err != nil {
		return tex, err
	}
	faces := loader.SkyFaces(preset, generatedSkySize)

	var images [6]image.Image
	for i, f := range faces {
		images[i] = f
	}
	if tex.CubeMap, err = gpu.CreateCubeMapFromImages(name+"/generated", images); err != nil {
		return tex, err
	}
	for i, f := range faces {
		faceName := fmt.Sprintf("%s/generated/%s", name, config.FaceNames[i])
		if tex.Faces[i], err = gpu.CreateTextureFromImage(f, faceName); err != nil {
			return tex, err
		}
	}
	return tex, nil
}

func loadCharcoal(cfg *config.Config, gpu GPU, fallbacks *error) (technique.CharcoalTextures, error) {
	var textures technique.CharcoalTextures
	slots := []struct {
		name     string
		path     string
		dst      *uint32
		generate func() image.Image
	}{
		{"contrast", cfg.Charcoal.Contrast, &textures.Contrast, func() image.Image { return loader.ContrastRamp(generatedTextureSize) }},
		{"noise", cfg.Charcoal.Noise, &textures.Noise, func() image.Image { return loader.NoiseTexture(generatedTextureSize, charcoalSeed) }},
		{"paper", cfg.Charcoal.Paper, &textures.Paper, func() image.Image { return loader.PaperTexture(generatedTextureSize, charcoalSeed) }},
	}

	for _, slot := range slots {
		path := cfg.Resolve(slot.path)
		id, err := gpu.LoadTexture(path)
		if err != nil {
			logger.Log.Warn("Charcoal texture unavailable, generating",
				zap.String("texture", slot.name),
				zap.String("path", path),
				zap.Error(err))
			*fallbacks = multierr.Append(*fallbacks, fmt.Errorf("charcoal %s: %w", slot.name, err))

			id, err = gpu.CreateTextureFromImage(slot.generate(), "charcoal/"+slot.name)
			if err != nil {
				return textures, err
			}
		}
		*slot.dst = id
	}
	return textures, nil
}
