package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no -config flag is given.
const DefaultPath = "shaderlab.yaml"

// Skybox modes.
const (
	SkyboxCube    = "cube"
	SkyboxFaceted = "faceted"
)

// Cube map face names in GL order (+X, -X, +Y, -Y, +Z, -Z).
var FaceNames = [6]string{"right", "left", "top", "bottom", "front", "back"}

type Config struct {
	Window    WindowConfig   `yaml:"window"`
	Assets    string         `yaml:"assets"`
	Models    []string       `yaml:"models"`
	Skybox    SkyboxConfig   `yaml:"skybox"`
	Charcoal  CharcoalConfig `yaml:"charcoal"`
	Camera    CameraConfig   `yaml:"camera"`
	// Turntable spins the current model, in degrees per second. 0 keeps it still.
	Turntable float32        `yaml:"turntable"`
	Shaders   ShaderConfig   `yaml:"shaders"`
	Log       LogConfig      `yaml:"log"`
}

type WindowConfig struct {
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Title  string `yaml:"title"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
}

type SkyboxConfig struct {
	Mode        string       `yaml:"mode"`
	Backgrounds []Background `yaml:"backgrounds"`
}

// Background is one selectable environment. Pattern is a path with a {face}
// placeholder, e.g. "textures/skybox/{face}0.png". Preset names the
// procedural palette used when the face images cannot be loaded.
type Background struct {
	Pattern string     `yaml:"pattern"`
	Preset  string     `yaml:"preset"`
	Light   [3]float32 `yaml:"light"`
}

type CharcoalConfig struct {
	Contrast string `yaml:"contrast"`
	Noise    string `yaml:"noise"`
	Paper    string `yaml:"paper"`
}

type CameraConfig struct {
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Fov         float32    `yaml:"fov"`
	Position    [3]float32 `yaml:"position"`
}

type ShaderConfig struct {
	Dir       string `yaml:"dir"`
	HotReload bool   `yaml:"hot_reload"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration the demo ships with.
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 1024, Height: 768, Title: "ShaderLab", X: 100, Y: 100},
		Assets: "assets",
		Models: []string{
			"models/model0.obj",
			"models/model1.obj",
			"models/model2.obj",
			"models/model3.obj",
			"models/model4.obj",
		},
		Skybox: SkyboxConfig{
			Mode: SkyboxCube,
			Backgrounds: []Background{
				{Pattern: "textures/skybox/{face}0.png", Preset: "day", Light: [3]float32{100, 100, 0}},
				{Pattern: "textures/skybox/{face}1.png", Preset: "sunset", Light: [3]float32{-100, 100, 100}},
				{Pattern: "textures/skybox/{face}2.png", Preset: "night", Light: [3]float32{100, 100, -100}},
				{Pattern: "textures/skybox/{face}3.png", Preset: "bright", Light: [3]float32{100, 100, -100}},
				{Pattern: "textures/skybox/{face}4.png", Preset: "overcast", Light: [3]float32{-100, 100, 100}},
				{Pattern: "textures/skybox/{face}5.png", Preset: "dusk", Light: [3]float32{0, 100, -100}},
			},
		},
		Charcoal: CharcoalConfig{
			Contrast: "textures/charcoal/contrast.png",
			Noise:    "textures/charcoal/noise.png",
			Paper:    "textures/charcoal/paper.png",
		},
		Camera: CameraConfig{
			Speed:       20,
			Sensitivity: 0.1,
			Fov:         45,
			Position:    [3]float32{0, 0, 10},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML config from path on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode decodes YAML from r into cfg, rejecting unknown fields.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if len(c.Models) == 0 {
		return errors.New("at least one model is required")
	}
	if len(c.Skybox.Backgrounds) == 0 {
		return errors.New("at least one skybox background is required")
	}
	switch c.Skybox.Mode {
	case SkyboxCube, SkyboxFaceted:
	default:
		return fmt.Errorf("unknown skybox mode %q", c.Skybox.Mode)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// Resolve makes p absolute against the assets root unless it already is.
func (c Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Assets, p)
}

// FacePaths expands the background pattern into the six cube faces.
func (c Config) FacePaths(bg Background) [6]string {
	var paths [6]string
	for i, face := range FaceNames {
		paths[i] = c.Resolve(strings.ReplaceAll(bg.Pattern, "{face}", face))
	}
	return paths
}
