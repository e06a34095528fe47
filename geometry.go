package iconkit

import (
	"math"

	"github.com/happenhub/iconkit/utils"
)

// Point is a position on the logical canvas.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis aligned rectangle with inclusive edges.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Contains reports whether p lies inside r or on its border.
func (r Rect) Contains(p Point) bool {
	return r.X0 <= p.X && p.X <= r.X1 && r.Y0 <= p.Y && p.Y <= r.Y1
}

// RoundedSquare is a square whose corners are cut by quarter circles.
type RoundedSquare struct {
	Left, Top float64
	Size      float64
	Radius    float64
}

// Contains reports whether p lies inside the rounded square.
func (s RoundedSquare) Contains(p Point) bool {
	right := s.Left + s.Size
	bottom := s.Top + s.Size

	if p.X < s.Left || p.X > right || p.Y < s.Top || p.Y > bottom {
		return false
	}

	// The cross formed by the two inset bands covers the straight edges.
	insideX := s.Left+s.Radius <= p.X && p.X <= right-s.Radius
	insideY := s.Top+s.Radius <= p.Y && p.Y <= bottom-s.Radius
	if insideX || insideY {
		return true
	}

	cx := right - s.Radius
	if p.X < s.Left+s.Radius {
		cx = s.Left + s.Radius
	}
	cy := bottom - s.Radius
	if p.Y < s.Top+s.Radius {
		cy = s.Top + s.Radius
	}
	dx, dy := p.X-cx, p.Y-cy
	return dx*dx+dy*dy <= s.Radius*s.Radius
}

// silhouette is the outline of the icon on the logical canvas.
func silhouette() RoundedSquare {
	return RoundedSquare{Left: 96, Top: 96, Size: 832, Radius: 200}
}

// InRoundedSquare reports whether the logical point (x, y) lies inside the icon silhouette.
func InRoundedSquare(x, y float64) bool {
	return silhouette().Contains(Point{X: x, Y: y})
}

// LineDistance returns the distance from p to the segment ab.
// A degenerate segment is treated as the single point a.
func LineDistance(p, a, b Point) float64 {
	vx, vy := b.X-a.X, b.Y-a.Y
	wx, wy := p.X-a.X, p.Y-a.Y

	lengthSq := vx*vx + vy*vy
	if lengthSq == 0 {
		return math.Hypot(wx, wy)
	}

	t := utils.Clamp((wx*vx+wy*vy)/lengthSq, 0, 1)
	return math.Hypot(p.X-(a.X+t*vx), p.Y-(a.Y+t*vy))
}

// SoftRect returns 1 when p lies inside r, or within radius of the corner
// selected by p (x0 when p is left of the rectangle, x1 otherwise; likewise
// for y), and 0 everywhere else.
//
// The edge is hard: there is no partial coverage. A point level with the
// rectangle on one axis is measured against the x1 (or y1) side, so points
// just above the top edge only match near the top right corner.
func SoftRect(p Point, r Rect, radius float64) float64 {
	if r.Contains(p) {
		return 1
	}

	cx := r.X1
	if p.X < r.X0 {
		cx = r.X0
	}
	cy := r.Y1
	if p.Y < r.Y0 {
		cy = r.Y0
	}
	dx, dy := p.X-cx, p.Y-cy
	if dx*dx+dy*dy <= radius*radius {
		return 1
	}
	return 0
}
