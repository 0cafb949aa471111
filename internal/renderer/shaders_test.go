package renderer

import (
	"ShaderLab/internal/technique"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedShadersPresent(t *testing.T) {
	src := ShaderSources{}
	files := []string{MeshVertexShader, "skybox.vert", "skybox.frag", "faceted.vert", "faceted.frag", "overlay.vert", "overlay.frag"}
	for _, tech := range technique.All() {
		files = append(files, tech.Fragment)
	}

	for _, name := range files {
		source, err := src.Read(name)
		if err != nil {
			t.Errorf("Missing embedded shader %s: %v", name, err)
			continue
		}
		if !strings.HasPrefix(source, "#version 330 core") {
			t.Errorf("%s should start with the GLSL 330 version line", name)
		}
	}
}

func TestShaderSourcesOverrideDir(t *testing.T) {
	dir := t.TempDir()
	override := "#version 330 core\n// custom\n"
	if err := os.WriteFile(filepath.Join(dir, "phong.frag"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}
	src := ShaderSources{Dir: dir}

	got, err := src.Read("phong.frag")
	if err != nil {
		t.Fatal(err)
	}
	if got != override {
		t.Error("File in the override directory should win over the embedded copy")
	}

	// Files not overridden come from the binary
	if _, err := src.Read("toon.frag"); err != nil {
		t.Errorf("Expected embedded fallback, got %v", err)
	}
}

func TestShaderSourcesUnknownFile(t *testing.T) {
	if _, err := (ShaderSources{}).Read("missing.frag"); err == nil {
		t.Error("Expected an error for an unknown shader")
	}
}

func TestIsShaderFile(t *testing.T) {
	cases := map[string]bool{
		"phong.frag":          true,
		"mesh.vert":           true,
		"common.GLSL":         true,
		"phong.frag.swp":      false,
		"notes.txt":           false,
		"shaders/stripe.frag": true,
	}
	for name, want := range cases {
		if got := IsShaderFile(name); got != want {
			t.Errorf("IsShaderFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestShaderLibraryRemembersFailures(t *testing.T) {
	lib := NewShaderLibrary(t.TempDir())

	if _, err := lib.Program(MeshVertexShader, "missing.frag"); err == nil {
		t.Fatal("Expected an error for a missing fragment shader")
	}
	if len(lib.failed) != 1 {
		t.Fatalf("Expected 1 remembered failure, got %d", len(lib.failed))
	}

	if err := lib.Reload("other.frag"); err != nil {
		t.Errorf("Reload of an unused file should succeed: %v", err)
	}
	if len(lib.failed) != 1 {
		t.Error("Reload of an unrelated file should keep the failure")
	}

	if err := lib.Reload("missing.frag"); err != nil {
		t.Errorf("Reload should succeed: %v", err)
	}
	if len(lib.failed) != 0 {
		t.Error("Reload should forget failures of programs using the file")
	}
}
