// Package app assembles the demo: it loads the assets, builds the camera,
// skybox and mesh components and runs them in the engine loop.
package app

import (
	"ShaderLab/internal/behaviour"
	"ShaderLab/internal/logger"
	"ShaderLab/internal/scene"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Component slots in the loop.
const (
	CameraSlot = iota
	SkyBoxSlot
	MeshSlot
)

const helpLines = `W - Walk Forward
S - Walk backwards
A - Strafe left
D - Strafe right
M - Change model
B - Change background
R - Change reflectness
[F1 - F9] Rendering technique`

// HelpText is the overlay text for the given technique.
func HelpText(technique string) string {
	var b strings.Builder
	b.WriteString(helpLines)
	fmt.Fprintf(&b, "\nCurrent technique: %s", technique)
	return b.String()
}

// ChangeSource reports shader files edited since the last call.
type ChangeSource interface {
	Drain() []string
}

// ShaderReloader rebuilds the programs that use a file.
type ShaderReloader interface {
	Reload(file string) error
}

type Game struct {
	Camera *scene.CameraComponent
	Sky    *scene.SkyBox
	Mesh   *scene.Mesh

	changes ChangeSource
	shaders ShaderReloader
}

// NewGame inserts the components into the loop at their fixed slots.
func NewGame(components *behaviour.ComponentManager, camera *scene.CameraComponent, sky *scene.SkyBox, mesh *scene.Mesh) *Game {
	components.Insert(CameraSlot, camera)
	components.Insert(SkyBoxSlot, sky)
	components.Insert(MeshSlot, mesh)

	g := &Game{Camera: camera, Sky: sky, Mesh: mesh}
	g.propagate()
	return g
}

// WatchShaders makes AfterUpdate rebuild programs whose files changed.
func (g *Game) WatchShaders(changes ChangeSource, shaders ShaderReloader) {
	g.changes = changes
	g.shaders = shaders
}

// AfterUpdate runs once per frame after every component updated.
func (g *Game) AfterUpdate(behaviour.Frame) {
	g.propagate()
	g.reloadShaders()
}

func (g *Game) propagate() {
	g.Mesh.SetEnvironment(g.Sky.CurrentEnvMap(), g.Sky.CurrentLightPos())
}

func (g *Game) reloadShaders() {
	if g.changes == nil || g.shaders == nil {
		return
	}
	for _, file := range g.changes.Drain() {
		if err := g.shaders.Reload(file); err != nil {
			logger.Log.Error("Shader reload failed, keeping previous program", zap.String("file", file), zap.Error(err))
		}
	}
}

func (g *Game) HelpText() string {
	return HelpText(g.Mesh.CurrentTechnique())
}
