package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) <= eps }

func TestRotatePoint(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
		want Point
	}{
		{"zero", 0, Point{X: 10, Y: 0}},
		{"quarter", 90, Point{X: 0, Y: 10}},
		{"half", 180, Point{X: -10, Y: 0}},
		{"full", 360, Point{X: 10, Y: 0}},
		{"negative", -90, Point{X: 0, Y: -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(tt.deg).Apply(Point{X: 10})
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
				t.Errorf("Rotate(%v) applied = %+v, want %+v", tt.deg, got, tt.want)
			}
		})
	}
}

func TestChainOrder(t *testing.T) {
	// translate(960 540) rotate(90) translate(240 0): the point lands below center.
	m := Chain(Translate(960, 540), Rotate(90), Translate(240, 0))
	got := m.Apply(Point{})

	if !approx(got.X, 960) || !approx(got.Y, 780) {
		t.Errorf("Chain applied = %+v, want (960, 780)", got)
	}
}

func TestThenMatchesChain(t *testing.T) {
	a := Translate(5, 7)
	b := Rotate(33)
	c := Scale(2)

	chained := Chain(a, b, c)
	thened := c.Then(b).Then(a)
	if !chained.ApproxEqual(thened, eps) {
		t.Errorf("Then = %+v, Chain = %+v", thened, chained)
	}
}

func TestAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{45, 45},
		{270, 270},
		{-30, 330},
		{720 + 15, 15},
	}

	for _, tt := range tests {
		got := Rotate(tt.in).Angle()
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("Rotate(%v).Angle() = %v, want %v", tt.in, got, tt.want)
		}
	}

	composed := Chain(Rotate(100), Rotate(200), Translate(3, 4), Rotate(70))
	if math.Abs(composed.Angle()-10) > 1e-6 {
		t.Errorf("composed angle = %v, want 10", composed.Angle())
	}
}

func TestNormalizeDeg(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{361, 1},
		{-1, 359},
		{-720, 0},
	}
	for _, tt := range tests {
		if got := NormalizeDeg(tt.in); !approx(got, tt.want) {
			t.Errorf("NormalizeDeg(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPointHelpers(t *testing.T) {
	p := Point{X: 3, Y: 4}
	if got := p.Dist(Point{}); !approx(got, 5) {
		t.Errorf("Dist = %v, want 5", got)
	}
	if got := p.Add(Point{X: 1, Y: -1}); got != (Point{X: 4, Y: 3}) {
		t.Errorf("Add = %+v, want (4, 3)", got)
	}
}
