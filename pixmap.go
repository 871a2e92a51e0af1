package sumi

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Pixmap is a square RGBA pixel buffer. The rasterizer owns and mutates
// it exclusively during a render pass.
type Pixmap struct {
	size int
	pix  []uint8 // RGBA, 4 bytes per pixel, not premultiplied
}

// NewPixmap creates a transparent pixmap with the given edge length.
func NewPixmap(size int) *Pixmap {
	return &Pixmap{
		size: size,
		pix:  make([]uint8, size*size*4),
	}
}

// Size returns the edge length in pixels.
func (p *Pixmap) Size() int { return p.size }

// Pix returns the raw pixel data in RGBA order.
func (p *Pixmap) Pix() []uint8 { return p.pix }

// Set writes one pixel. Coordinates outside the buffer are ignored.
func (p *Pixmap) Set(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= p.size || y < 0 || y >= p.size {
		return
	}
	i := (y*p.size + x) * 4
	p.pix[i+0] = r
	p.pix[i+1] = g
	p.pix[i+2] = b
	p.pix[i+3] = a
}

// SetValue writes the display color of v into one pixel.
func (p *Pixmap) SetValue(x, y int, v Value) {
	r, g, b, a := v.RGBA8()
	p.Set(x, y, r, g, b, a)
}

// Get reads one pixel. Coordinates outside the buffer read as
// transparent black.
func (p *Pixmap) Get(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= p.size || y < 0 || y >= p.size {
		return 0, 0, 0, 0
	}
	i := (y*p.size + x) * 4
	return p.pix[i+0], p.pix[i+1], p.pix[i+2], p.pix[i+3]
}

// Clear resets every pixel to transparent black.
func (p *Pixmap) Clear() {
	for i := range p.pix {
		p.pix[i] = 0
	}
}

// Image copies the buffer into a standard image.NRGBA.
func (p *Pixmap) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.size, p.size))
	copy(img.Pix, p.pix)
	return img
}

// EncodePNG writes the pixmap as PNG to w.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.Image())
}

// SavePNG writes the pixmap as PNG to the given file path.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return p.EncodePNG(f)
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	r, g, b, a := p.Get(x, y)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.size, p.size)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
