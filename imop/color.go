// Package imop implements the color operations used for mixing a graphic
// layer with its backdrop: linear interpolation, Porter-Duff source-over
// composition and the final quantization to 8-bit channels.
//
// All arithmetic is carried out on float64 channels in the [0, 255] range.
// Values are only rounded when a pixel leaves the pipeline, so a pixel that
// went through dozens of blends does not accumulate rounding error.
package imop

import (
	"image/color"
	"math"

	"github.com/happenhub/iconkit/utils"
)

// Color is a straight (non-premultiplied) RGBA value with channels in [0, 255].
type Color struct {
	R, G, B, A float64
}

// Transparent is fully transparent black.
var Transparent = Color{}

// RGB is an opaque 8-bit color stop.
type RGB struct {
	R, G, B uint8
}

// Hex builds an RGB stop from a 0xRRGGBB value.
func Hex(v uint32) RGB {
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// Alpha returns the stop as a Color with the given opacity.
func (c RGB) Alpha(a float64) Color {
	return Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: a}
}

// Lerp linearly interpolates between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// MixColor interpolates the RGB channels of two stops and returns an opaque color.
func MixColor(a, b RGB, t float64) Color {
	return Color{
		R: Lerp(float64(a.R), float64(b.R), t),
		G: Lerp(float64(a.G), float64(b.G), t),
		B: Lerp(float64(a.B), float64(b.B), t),
		A: 255,
	}
}

// Blend composites src over dst.
//
//	αo = αs + αd(1 - αs)
//	Co = (Cs·αs + Cd·αd(1 - αs)) / αo
//
// When both layers are fully transparent the result is transparent black.
func Blend(dst, src Color) Color {
	sa := src.A / 255
	da := dst.A / 255

	outA := sa + da*(1-sa)
	if outA == 0 {
		return Transparent
	}

	return Color{
		R: (src.R*sa + dst.R*da*(1-sa)) / outA,
		G: (src.G*sa + dst.G*da*(1-sa)) / outA,
		B: (src.B*sa + dst.B*da*(1-sa)) / outA,
		A: outA * 255,
	}
}

// ClampChannel rounds a channel to the nearest integer, ties to even,
// and clamps it to [0, 255].
func ClampChannel(c float64) uint8 {
	return uint8(utils.Clamp(math.RoundToEven(c), 0, 255))
}

// NRGBA quantizes the color to 8 bits per channel.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: ClampChannel(c.R),
		G: ClampChannel(c.G),
		B: ClampChannel(c.B),
		A: ClampChannel(c.A),
	}
}
