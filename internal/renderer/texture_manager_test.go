package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"
	"golang.org/x/image/bmp"
)

func writeTestImage(t *testing.T, path string, encode func(f *os.File, img image.Image) error) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{A: 255})
		}
	}
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeImageFileFormats(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "face.png")
	bmpPath := filepath.Join(dir, "face.bmp")
	writeTestImage(t, pngPath, func(f *os.File, img image.Image) error { return png.Encode(f, img) })
	writeTestImage(t, bmpPath, func(f *os.File, img image.Image) error { return bmp.Encode(f, img) })

	for _, path := range []string{pngPath, bmpPath} {
		rgba, err := DecodeImageFile(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if rgba.Bounds().Dx() != 4 || rgba.Bounds().Dy() != 2 {
			t.Errorf("%s: unexpected size %v", path, rgba.Bounds())
		}
		if got := rgba.RGBAAt(1, 1); got.R != 255 || got.G != 0 {
			t.Errorf("%s: expected red texel, got %v", path, got)
		}
	}
}

func TestDecodeImageFileMissing(t *testing.T) {
	if _, err := DecodeImageFile(filepath.Join(t.TempDir(), "none.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestToRGBANormalisesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 2, 6, 6))
	src.Set(2, 2, color.White)

	rgba := toRGBA(src)

	if rgba.Rect.Min != (image.Point{}) {
		t.Errorf("Expected bounds at the origin, got %v", rgba.Rect)
	}
	if rgba.RGBAAt(0, 0) != (color.RGBA{255, 255, 255, 255}) {
		t.Error("Top-left texel should be copied to the origin")
	}
}

func TestCreateCubeMapRejectsBadFaces(t *testing.T) {
	tm := NewTextureManager()
	var faces [6]image.Image
	for i := range faces {
		faces[i] = image.NewRGBA(image.Rect(0, 0, 8, 8))
	}

	faces[3] = nil
	if _, err := tm.CreateCubeMapFromImages("sky", faces); err == nil {
		t.Error("Expected error for a missing face")
	}

	faces[3] = image.NewRGBA(image.Rect(0, 0, 4, 4))
	if _, err := tm.CreateCubeMapFromImages("sky", faces); err == nil {
		t.Error("Expected error for mismatched face sizes")
	}
}

func TestLoadCubeMapReportsEveryMissingFace(t *testing.T) {
	tm := NewTextureManager()
	dir := t.TempDir()
	var paths [6]string
	for i := range paths {
		paths[i] = filepath.Join(dir, "missing", string(rune('a'+i))+".png")
	}

	_, err := tm.LoadCubeMap("sky", paths)
	if err == nil {
		t.Fatal("Expected error")
	}
	if got := len(multierr.Errors(err)); got != 6 {
		t.Errorf("Expected 6 face errors, got %d", got)
	}
}

func TestTextureStatsStartEmpty(t *testing.T) {
	stats := NewTextureManager().GetStats()
	if stats.TotalTextures != 0 || stats.ActiveTextures != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
}
