package iconkit

import (
	"math"

	"github.com/happenhub/iconkit/imop"
	"github.com/happenhub/iconkit/utils"
)

// CanvasSize is the edge length of the logical canvas all geometry is defined on.
const CanvasSize = 1024.0

// Layer is one paint operation of the scene. Paint composites the layer
// over dst at the logical point p and returns the new color.
type Layer interface {
	Paint(dst imop.Color, p Point) imop.Color
}

var (
	_ Layer = Backdrop{}
	_ Layer = Radial{}
	_ Layer = Ring{}
	_ Layer = Stroke{}
	_ Layer = Bar{}
	_ Layer = Fill{}
)

// Backdrop fills the silhouette with a blend of two tones driven by a
// diagonal gradient and the distance from the center. Outside the
// silhouette it yields transparent black, whatever lies below.
type Backdrop struct {
	Shape   RoundedSquare
	From    imop.RGB
	To      imop.RGB
	Center  Point
	Falloff float64 // distance at which the radial term saturates
	// DiagWeight and RadialWeight weigh the two gradient terms.
	DiagWeight   float64
	RadialWeight float64
}

// Paint implements Layer.
func (l Backdrop) Paint(_ imop.Color, p Point) imop.Color {
	if !l.Shape.Contains(p) {
		return imop.Transparent
	}
	s := l.Shape
	diag := utils.Clamp((p.X-s.Left+p.Y-s.Top)/(2*s.Size), 0, 1)
	radial := utils.Min(1, p.Dist(l.Center)/l.Falloff)
	return imop.MixColor(l.From, l.To, diag*l.DiagWeight+radial*l.RadialWeight)
}

// Radial is a disc whose opacity falls off linearly from Alpha+Floor at
// the center to Floor at the rim.
type Radial struct {
	Center Point
	Radius float64
	Color  imop.RGB
	Alpha  float64
	Floor  float64
}

// Paint implements Layer.
func (l Radial) Paint(dst imop.Color, p Point) imop.Color {
	d := p.Dist(l.Center)
	if d > l.Radius {
		return dst
	}
	t := utils.Max(0, 1-d/l.Radius)
	return imop.Blend(dst, l.Color.Alpha(t*l.Alpha+l.Floor))
}

// Ring is an annulus with a triangular opacity profile peaking on its midline.
type Ring struct {
	Center Point
	Inner  float64
	Width  float64
	Color  imop.RGB
	Base   float64 // opacity at the edges
	Peak   float64 // extra opacity on the midline
	Slope  float64
}

// Paint implements Layer.
func (l Ring) Paint(dst imop.Color, p Point) imop.Color {
	d := p.Dist(l.Center)
	outer := l.Inner + l.Width
	if d < l.Inner || d > outer {
		return dst
	}
	offset := (d - l.Inner) / (outer - l.Inner)
	strength := utils.Max(0, 1-utils.Abs(offset-0.5)*l.Slope)
	return imop.Blend(dst, l.Color.Alpha(l.Base+strength*l.Peak))
}

// Band is an open vertical interval.
type Band struct {
	Min, Max float64
}

// Contains reports whether Min < y < Max.
func (b Band) Contains(y float64) bool {
	return y > b.Min && y < b.Max
}

// Stroke is a soft line along a segment, restricted to a vertical band.
type Stroke struct {
	From, To Point
	Width    float64
	Exponent float64
	Color    imop.RGB
	Alpha    float64
	Gate     Band
}

// Paint implements Layer.
func (l Stroke) Paint(dst imop.Color, p Point) imop.Color {
	if !l.Gate.Contains(p.Y) {
		return dst
	}
	d := LineDistance(p, l.From, l.To)
	if d >= l.Width {
		return dst
	}
	falloff := utils.Max(0, 1-math.Pow(d/l.Width, l.Exponent))
	return imop.Blend(dst, l.Color.Alpha(falloff*l.Alpha))
}

// Gradient is an opaque vertical gradient starting at Top and reaching To
// after Span units.
type Gradient struct {
	From, To imop.RGB
	Top      float64
	Span     float64
}

// At returns the gradient color at height y.
func (g Gradient) At(y float64) imop.Color {
	t := utils.Clamp((y-g.Top)/g.Span, 0, 1)
	return imop.MixColor(g.From, g.To, t)
}

// Bar is a rectangle with rounded corners filled with a vertical gradient.
type Bar struct {
	Rect     Rect
	Radius   float64
	Gradient Gradient
}

// Paint implements Layer.
func (l Bar) Paint(dst imop.Color, p Point) imop.Color {
	if SoftRect(p, l.Rect, l.Radius) == 0 {
		return dst
	}
	return imop.Blend(dst, l.Gradient.At(p.Y))
}

// Fill paints a rounded rectangle with a sequence of flat colors.
type Fill struct {
	Rect   Rect
	Radius float64
	Colors []imop.Color
}

// Paint implements Layer.
func (l Fill) Paint(dst imop.Color, p Point) imop.Color {
	if SoftRect(p, l.Rect, l.Radius) == 0 {
		return dst
	}
	for _, c := range l.Colors {
		dst = imop.Blend(dst, c)
	}
	return dst
}

// Scene is an ordered list of layers on a square logical canvas.
// Later layers are painted on top of earlier ones.
type Scene struct {
	Canvas float64
	Layers []Layer
}

// Shade evaluates every layer at p, starting from transparent black.
func (s *Scene) Shade(p Point) imop.Color {
	c := imop.Transparent
	for _, l := range s.Layers {
		c = l.Paint(c, p)
	}
	return c
}

// DefaultScene returns the HappenHub icon. Each call builds a fresh value.
func DefaultScene() *Scene {
	center := Point{X: 512, Y: 512}
	glyph := func(top, bottom imop.RGB) Gradient {
		return Gradient{From: top, To: bottom, Top: 320, Span: 384}
	}
	leftBars := glyph(imop.Hex(0x66F2E4), imop.Hex(0x3FC6D8))
	leftBridge := glyph(imop.Hex(0x7AF6EE), imop.Hex(0x4DCEE0))
	rightBars := glyph(imop.Hex(0xA69BFF), imop.Hex(0x5F60FF))
	rightBridge := glyph(imop.Hex(0xBEB6FF), imop.Hex(0x726BFF))
	accent := Point{X: 646, Y: 646}

	return &Scene{
		Canvas: CanvasSize,
		Layers: []Layer{
			Backdrop{
				Shape:        silhouette(),
				From:         imop.Hex(0x151A2B),
				To:           imop.Hex(0x2F2550),
				Center:       center,
				Falloff:      720,
				DiagWeight:   0.55,
				RadialWeight: 0.45,
			},
			// center glow
			Radial{Center: center, Radius: 380, Color: imop.RGB{R: 118, G: 140, B: 205}, Alpha: 58},
			Ring{
				Center: center,
				Inner:  264,
				Width:  26,
				Color:  imop.RGB{R: 110, G: 214, B: 233},
				Base:   120,
				Peak:   70,
				Slope:  1.9,
			},
			// inner halo
			Radial{Center: center, Radius: 312, Color: imop.RGB{R: 100, G: 240, B: 250}, Alpha: 34},
			Stroke{
				From:     Point{X: 280, Y: 404},
				To:       Point{X: 796, Y: 404},
				Width:    22,
				Exponent: 1.4,
				Color:    imop.Hex(0x61CFE0),
				Alpha:    52,
				Gate:     Band{Min: math.Inf(-1), Max: 440},
			},
			Stroke{
				From:     Point{X: 296, Y: 688},
				To:       Point{X: 760, Y: 716},
				Width:    20,
				Exponent: 1.4,
				Color:    imop.Hex(0x7F7CFF),
				Alpha:    46,
				Gate:     Band{Min: 640, Max: math.Inf(1)},
			},
			Bar{Rect: Rect{X0: 344, Y0: 320, X1: 424, Y1: 704}, Radius: 28, Gradient: leftBars},
			Bar{Rect: Rect{X0: 452, Y0: 320, X1: 532, Y1: 704}, Radius: 28, Gradient: leftBars},
			Bar{Rect: Rect{X0: 364, Y0: 472, X1: 512, Y1: 528}, Radius: 22, Gradient: leftBridge},
			Bar{Rect: Rect{X0: 600, Y0: 320, X1: 680, Y1: 704}, Radius: 28, Gradient: rightBars},
			Bar{Rect: Rect{X0: 708, Y0: 320, X1: 788, Y1: 704}, Radius: 28, Gradient: rightBars},
			Bar{Rect: Rect{X0: 628, Y0: 472, X1: 776, Y1: 528}, Radius: 22, Gradient: rightBridge},
			Fill{
				Rect:   Rect{X0: 520, Y0: 552, X1: 620, Y1: 620},
				Radius: 26,
				Colors: []imop.Color{
					{R: 26, G: 39, B: 58, A: 220},
					{R: 118, G: 226, B: 228, A: 45},
				},
			},
			// accent dot: soft outer ring, then a brighter core
			Radial{Center: accent, Radius: 34, Color: imop.RGB{R: 99, G: 241, B: 224}, Alpha: 38},
			Radial{Center: accent, Radius: 18, Color: imop.RGB{R: 99, G: 241, B: 224}, Alpha: 85, Floor: 30},
		},
	}
}
