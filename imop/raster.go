package imop

import (
	"image"
	"image/color"
)

// Raster is a row-major grid of float colors. It satisfies image.Image,
// quantizing on access, so it can be handed to any standard encoder.
type Raster struct {
	Width  int
	Height int
	Pix    []Color
}

var _ image.Image = (*Raster)(nil)

// NewRaster allocates a transparent raster.
func NewRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}
}

// ColorAt returns the unquantized color at (x, y).
func (r *Raster) ColorAt(x, y int) Color {
	return r.Pix[y*r.Width+x]
}

// Set stores c at (x, y).
func (r *Raster) Set(x, y int, c Color) {
	r.Pix[y*r.Width+x] = c
}

// Row returns the colors of row y. The slice aliases the raster.
func (r *Raster) Row(y int) []Color {
	return r.Pix[y*r.Width : (y+1)*r.Width]
}

// ColorModel implements image.Image.
func (r *Raster) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// At implements image.Image.
func (r *Raster) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(r.Bounds())) {
		return color.NRGBA{}
	}
	return r.ColorAt(x, y).NRGBA()
}

// NRGBA converts the raster to an 8-bit *image.NRGBA.
func (r *Raster) NRGBA() *image.NRGBA {
	dst := image.NewNRGBA(r.Bounds())
	for y := 0; y < r.Height; y++ {
		di := dst.PixOffset(0, y)
		for _, c := range r.Row(y) {
			q := c.NRGBA()
			dst.Pix[di+0] = q.R
			dst.Pix[di+1] = q.G
			dst.Pix[di+2] = q.B
			dst.Pix[di+3] = q.A
			di += 4
		}
	}
	return dst
}

// Alpha returns the quantized alpha channel, one slice per row.
func (r *Raster) Alpha() [][]uint8 {
	alpha := make([][]uint8, r.Height)
	for y := range alpha {
		row := make([]uint8, r.Width)
		for x, c := range r.Row(y) {
			row[x] = ClampChannel(c.A)
		}
		alpha[y] = row
	}
	return alpha
}
