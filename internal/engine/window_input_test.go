package engine

import (
	"ShaderLab/internal/input"
	"testing"
)

func TestEveryKeyIsMapped(t *testing.T) {
	for k := input.KeyW; k <= input.KeyEscape; k++ {
		if _, ok := glfwKeys[k]; !ok {
			t.Errorf("key %v has no glfw mapping", k)
		}
	}
}

func TestKeyMappingIsUnique(t *testing.T) {
	seen := make(map[int]input.Key)
	for k, g := range glfwKeys {
		if prev, ok := seen[int(g)]; ok {
			t.Errorf("glfw key %d mapped from both %v and %v", g, prev, k)
		}
		seen[int(g)] = k
	}
}
