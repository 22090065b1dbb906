// Package geom provides the 2D points and affine transforms used to compose
// layered motion.
package geom

import "math"

// Point is a position in scene coordinates.
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Affine is a 2D affine transform in SVG matrix order:
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Affine{A: 1, D: 1}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{A: 1, D: 1, E: tx, F: ty}
}

// Rotate returns a rotation by deg degrees about the origin. Positive
// angles turn clockwise on screen (y grows downward).
func Rotate(deg float64) Affine {
	s, c := math.Sincos(DegToRad(deg))
	return Affine{A: c, B: s, C: -s, D: c}
}

// Scale returns a uniform scale about the origin.
func Scale(k float64) Affine {
	return Affine{A: k, D: k}
}

// Then returns the transform that applies m first and then n, matching
// the left-to-right reading of an SVG transform list "n m".
func (m Affine) Then(n Affine) Affine {
	return n.Mul(m)
}

// Mul returns m·n (n applied first).
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply maps p through the transform.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Chain multiplies transforms in SVG list order: Chain(a, b, c) == a·b·c,
// so c is applied to a point first.
func Chain(ts ...Affine) Affine {
	out := Identity
	for _, t := range ts {
		out = out.Mul(t)
	}
	return out
}

// Angle returns the rotation component of m in degrees, in [0, 360).
func (m Affine) Angle() float64 {
	return NormalizeDeg(RadToDeg(math.Atan2(m.B, m.A)))
}

// ApproxEqual reports whether m and n differ by at most eps in every term.
func (m Affine) ApproxEqual(n Affine, eps float64) bool {
	return math.Abs(m.A-n.A) <= eps && math.Abs(m.B-n.B) <= eps &&
		math.Abs(m.C-n.C) <= eps && math.Abs(m.D-n.D) <= eps &&
		math.Abs(m.E-n.E) <= eps && math.Abs(m.F-n.F) <= eps
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeDeg wraps an angle into [0, 360).
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
