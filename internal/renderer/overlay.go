package renderer

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Silver text, as used by the help overlay.
var OverlayTextColor = color.RGBA{R: 192, G: 192, B: 192, A: 255}

// RasterizeText draws multi-line text onto a transparent image sized to fit.
func RasterizeText(text string, c color.Color) *image.RGBA {
	face := basicfont.Face7x13
	lines := strings.Split(text, "\n")
	lineHeight := face.Metrics().Height.Ceil()

	width := 1
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	height := lineHeight * len(lines)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}
	ascent := face.Metrics().Ascent.Ceil()
	for i, line := range lines {
		d.Dot = fixed.P(0, i*lineHeight+ascent)
		d.DrawString(line)
	}
	return img
}

// Overlay draws a text block in screen space. The texture is rebuilt only
// when the text changes.
type Overlay struct {
	VAO     uint32
	VBO     uint32
	Shader  *Shader
	texture uint32
	text    string
	size    image.Point
}

func NewOverlay(shaders *ShaderLibrary) (*Overlay, error) {
	shader, err := shaders.Program("overlay.vert", "overlay.frag")
	if err != nil {
		return nil, err
	}
	o := &Overlay{Shader: shader}

	gl.GenVertexArrays(1, &o.VAO)
	gl.BindVertexArray(o.VAO)
	gl.GenBuffers(1, &o.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, 6*4*4, nil, gl.DYNAMIC_DRAW)

	stride := int32(4 * 4)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	gl.GenTextures(1, &o.texture)
	return o, nil
}

// overlayQuad returns two triangles [x,y,u,v] covering the text at (x,y)
// in pixels from the top-left corner.
func overlayQuad(x, y float32, size image.Point) []float32 {
	w, h := float32(size.X), float32(size.Y)
	return []float32{
		x, y, 0, 0,
		x + w, y, 1, 0,
		x + w, y + h, 1, 1,
		x, y, 0, 0,
		x + w, y + h, 1, 1,
		x, y + h, 0, 1,
	}
}

func (o *Overlay) upload(text string) {
	img := RasterizeText(text, OverlayTextColor)
	o.size = img.Rect.Size()
	o.text = text

	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(o.size.X), int32(o.size.Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// Draw renders text with its top-left corner at (x,y) pixels.
func (o *Overlay) Draw(text string, x, y float32, screenWidth, screenHeight int32) {
	if text == "" || screenWidth <= 0 || screenHeight <= 0 {
		return
	}
	if text != o.text {
		o.upload(text)
	}

	quad := overlayQuad(x, y, o.size)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.VBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(quad)*4, gl.Ptr(quad))

	o.Shader.Use()
	o.Shader.SetMat4("projection", mgl32.Ortho2D(0, float32(screenWidth), float32(screenHeight), 0))
	o.Shader.SetTexture2D("overlayTexture", 0, o.texture)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BindVertexArray(o.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (o *Overlay) Cleanup() {
	gl.DeleteVertexArrays(1, &o.VAO)
	gl.DeleteBuffers(1, &o.VBO)
	gl.DeleteTextures(1, &o.texture)
}
