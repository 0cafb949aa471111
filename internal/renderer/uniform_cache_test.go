package renderer

import (
	"testing"
)

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(7)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}

	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}

	if cache.program != 7 {
		t.Errorf("Expected program 7, got %d", cache.program)
	}
}

func TestUniformCacheClear(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["world"] = 5

	cache.Clear()

	if len(cache.locations) != 0 {
		t.Error("Clear should empty the cache")
	}
}

func TestUniformCacheReturnsCachedLocation(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["envMap"] = 3
	cache.locations["reflectance"] = -1

	if loc := cache.GetLocation("envMap"); loc != 3 {
		t.Errorf("Expected cached location 3, got %d", loc)
	}
	if loc := cache.GetLocation("reflectance"); loc != -1 {
		t.Errorf("Missing uniforms should stay cached as -1, got %d", loc)
	}
}

func TestUniformCacheSkipsMissingUniforms(t *testing.T) {
	cache := NewUniformCache(0)
	cache.locations["fuzz"] = -1

	// No GL call is made for a location of -1
	cache.SetFloat("fuzz", 0.1)
	cache.SetInt("fuzz", 1)
	cache.SetVec3("fuzz", 1, 2, 3)
}
