package renderer

import (
	"image"
	"testing"
)

func TestRasterizeTextSize(t *testing.T) {
	img := RasterizeText("ab\nlonger line", OverlayTextColor)

	// basicfont glyphs are 7 pixels wide and lines 13 pixels tall
	if img.Bounds().Dx() != 7*len("longer line") {
		t.Errorf("Expected width %d, got %d", 7*len("longer line"), img.Bounds().Dx())
	}
	if img.Bounds().Dy() != 2*13 {
		t.Errorf("Expected height 26, got %d", img.Bounds().Dy())
	}
}

func TestRasterizeTextUsesColour(t *testing.T) {
	img := RasterizeText("W", OverlayTextColor)

	var lit, clear int
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			c := img.RGBAAt(x, y)
			switch c.A {
			case 0:
				clear++
			case 255:
				if c != OverlayTextColor {
					t.Fatalf("Unexpected glyph colour %v", c)
				}
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("Glyph pixels should be drawn")
	}
	if clear == 0 {
		t.Error("Background should stay transparent")
	}
}

func TestOverlayQuad(t *testing.T) {
	quad := overlayQuad(1, 1, image.Pt(70, 26))

	if len(quad) != 24 {
		t.Fatalf("Expected 6 vertices, got %d", len(quad)/4)
	}
	// Bottom-right corner
	if quad[8] != 71 || quad[9] != 27 || quad[10] != 1 || quad[11] != 1 {
		t.Errorf("Unexpected bottom-right vertex %v", quad[8:12])
	}
}
