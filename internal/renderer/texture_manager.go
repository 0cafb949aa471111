package renderer

import (
	"ShaderLab/internal/logger"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
)

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures  int
	CacheHits      int
	CacheMisses    int
	ActiveTextures int
}

// TextureManager manages texture loading, caching, and lifecycle.
// 2D textures and cube maps share the cache; cube maps are keyed by name.
type TextureManager struct {
	textureCache    map[string]uint32 // path -> OpenGL texture ID
	textureRefCount map[uint32]int    // texture ID -> reference count
	texturePaths    map[uint32]string // texture ID -> path (for debugging)
	mu              sync.RWMutex      // Thread-safe operations
	stats           TextureStats
}

// NewTextureManager creates a new texture manager instance
func NewTextureManager() *TextureManager {
	return &TextureManager{
		textureCache:    make(map[string]uint32),
		textureRefCount: make(map[uint32]int),
		texturePaths:    make(map[uint32]string),
	}
}

// DecodeImageFile reads a png, jpeg or bmp file into an RGBA image.
func DecodeImageFile(filePath string) (*image.RGBA, error) {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer imgFile.Close()

	img, _, err := image.Decode(imgFile)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// LoadTexture loads a texture from file or returns cached texture ID
// Automatically increments reference count
func (tm *TextureManager) LoadTexture(filePath string) (uint32, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if textureID, exists := tm.cached(filePath); exists {
		return textureID, nil
	}

	tm.stats.CacheMisses++
	rgba, err := DecodeImageFile(filePath)
	if err != nil {
		return 0, err
	}

	textureID := upload2D(rgba, gl.REPEAT)
	tm.store(filePath, textureID)

	logger.Log.Info("Texture loaded and cached",
		zap.String("path", filePath),
		zap.Uint32("textureID", textureID),
		zap.Int("width", rgba.Rect.Size().X),
		zap.Int("height", rgba.Rect.Size().Y))

	return textureID, nil
}

// CreateTextureFromImage creates a texture from an image.Image
// Used for generated textures like the default white texture
func (tm *TextureManager) CreateTextureFromImage(img image.Image, name string) (uint32, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if textureID, exists := tm.cached(name); exists {
		return textureID, nil
	}

	textureID := upload2D(toRGBA(img), gl.REPEAT)
	tm.store(name, textureID)

	logger.Log.Debug("Texture created from image",
		zap.String("name", name),
		zap.Uint32("textureID", textureID))

	return textureID, nil
}

// LoadCubeMap loads six face images in GL face order (+X, -X, +Y, -Y, +Z, -Z).
// Every face is attempted so the error lists all missing files.
func (tm *TextureManager) LoadCubeMap(name string, paths [6]string) (uint32, error) {
	tm.mu.RLock()
	textureID, exists := tm.textureCache[name]
	tm.mu.RUnlock()
	if exists {
		tm.AddReference(textureID)
		return textureID, nil
	}

	var faces [6]image.Image
	var errs error
	for i, p := range paths {
		rgba, err := DecodeImageFile(p)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		faces[i] = rgba
	}
	if errs != nil {
		return 0, errs
	}
	return tm.CreateCubeMapFromImages(name, faces)
}

// CreateCubeMapFromImages uploads six face images in GL face order.
func (tm *TextureManager) CreateCubeMapFromImages(name string, faces [6]image.Image) (uint32, error) {
	for i, f := range faces {
		if f == nil {
			return 0, fmt.Errorf("cube map %s: face %d missing", name, i)
		}
	}
	size := faces[0].Bounds().Size()
	for i, f := range faces {
		if f.Bounds().Size() != size {
			return 0, fmt.Errorf("cube map %s: face %d is %v, expected %v", name, i, f.Bounds().Size(), size)
		}
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	if textureID, exists := tm.cached(name); exists {
		return textureID, nil
	}
	tm.stats.CacheMisses++

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, textureID)
	for i, f := range faces {
		rgba := toRGBA(f)
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(rgba.Rect.Size().X), int32(rgba.Rect.Size().Y),
			0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	tm.store(name, textureID)
	logger.Log.Info("Cube map created",
		zap.String("name", name),
		zap.Uint32("textureID", textureID),
		zap.Int("faceSize", size.X))
	return textureID, nil
}

// cached must be called with the lock held.
func (tm *TextureManager) cached(key string) (uint32, bool) {
	textureID, exists := tm.textureCache[key]
	if !exists {
		return 0, false
	}
	tm.textureRefCount[textureID]++
	tm.stats.CacheHits++
	logger.Log.Debug("Texture cache hit",
		zap.String("path", key),
		zap.Uint32("textureID", textureID),
		zap.Int("refCount", tm.textureRefCount[textureID]))
	return textureID, true
}

// store must be called with the lock held.
func (tm *TextureManager) store(key string, textureID uint32) {
	tm.textureCache[key] = textureID
	tm.textureRefCount[textureID] = 1
	tm.texturePaths[textureID] = key
	tm.stats.TotalTextures++
	tm.stats.ActiveTextures++
}

func upload2D(rgba *image.RGBA, wrap int32) uint32 {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA,
		int32(rgba.Rect.Size().X), int32(rgba.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	return textureID
}

// AddReference increments the reference count for a texture
func (tm *TextureManager) AddReference(textureID uint32) {
	if textureID == 0 {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	tm.textureRefCount[textureID]++
}

// ReleaseTexture decrements reference count and frees texture if count reaches 0
func (tm *TextureManager) ReleaseTexture(textureID uint32) {
	if textureID == 0 {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	refCount, exists := tm.textureRefCount[textureID]
	if !exists {
		logger.Log.Warn("Attempted to release unknown texture",
			zap.Uint32("textureID", textureID))
		return
	}

	refCount--
	tm.textureRefCount[textureID] = refCount

	if refCount <= 0 {
		gl.DeleteTextures(1, &textureID)

		path := tm.texturePaths[textureID]
		delete(tm.textureCache, path)
		delete(tm.textureRefCount, textureID)
		delete(tm.texturePaths, textureID)
		tm.stats.ActiveTextures--

		logger.Log.Debug("Texture freed",
			zap.Uint32("textureID", textureID),
			zap.String("path", path))
	}
}

// GetStats returns current texture manager statistics
func (tm *TextureManager) GetStats() TextureStats {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	stats := tm.stats
	stats.ActiveTextures = len(tm.textureRefCount)
	return stats
}

// LogStats logs current texture statistics
func (tm *TextureManager) LogStats() {
	stats := tm.GetStats()
	hitRate := 0.0
	if total := stats.CacheHits + stats.CacheMisses; total > 0 {
		hitRate = float64(stats.CacheHits) / float64(total)
	}
	logger.Log.Info("Texture Manager Stats",
		zap.Int("totalTextures", stats.TotalTextures),
		zap.Int("activeTextures", stats.ActiveTextures),
		zap.Int("cacheHits", stats.CacheHits),
		zap.Int("cacheMisses", stats.CacheMisses),
		zap.Float64("hitRate", hitRate))
}

// Clear releases all textures
func (tm *TextureManager) Clear() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for textureID := range tm.textureRefCount {
		id := textureID
		gl.DeleteTextures(1, &id)
	}

	tm.textureCache = make(map[string]uint32)
	tm.textureRefCount = make(map[uint32]int)
	tm.texturePaths = make(map[uint32]string)
	tm.stats.ActiveTextures = 0
}
