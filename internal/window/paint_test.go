package window

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/palette"
	"github.com/litescript/ls-orrery/internal/scene"
)

type op struct {
	kind string
	c    color.Color
}

type recorder struct {
	ops []op
}

func (r *recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.ops = append(r.ops, op{"rect", c})
}

func (r *recorder) FillCircle(cx, cy, rad float64, c color.Color) {
	r.ops = append(r.ops, op{"circle", c})
}

func (r *recorder) StrokeCircle(cx, cy, rad, w float64, c color.Color) {
	r.ops = append(r.ops, op{"ring", c})
}

func (r *recorder) StrokeLine(x1, y1, x2, y2, w float64, c color.Color) {
	r.ops = append(r.ops, op{"line", c})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func defaultScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.Compose(scene.DefaultConfig(), palette.Default())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	return s
}

func TestPaintDefaultScene(t *testing.T) {
	s := defaultScene(t)
	var r recorder
	Paint(&r, s, s.Frame(0), Options{})

	if r.ops[0].kind != "rect" || r.ops[0].c != color.Color(color.Black) {
		t.Errorf("first op = %+v, want black background", r.ops[0])
	}
	if got := r.count("rect"); got != 2 {
		t.Errorf("rects = %d, want 2 (background, nebula tint)", got)
	}
	if got := r.count("ring"); got != 5 {
		t.Errorf("rings = %d, want 5", got)
	}
	// 4 haloed bodies at 48 segments each.
	if got := r.count("line"); got != 4*48 {
		t.Errorf("halo segments = %d, want %d", got, 4*48)
	}
	// stars + star glow + core + body discs + motes
	want := 250 + shadeSteps + 1 + 5*shadeSteps + 6
	if got := r.count("circle"); got != want {
		t.Errorf("circles = %d, want %d", got, want)
	}
}

func TestPaintOptions(t *testing.T) {
	s := defaultScene(t)
	var r recorder
	Paint(&r, s, s.Frame(0), Options{HideStars: true, HideAmbient: true})

	if got := r.count("rect"); got != 1 {
		t.Errorf("rects = %d, want 1", got)
	}
	want := shadeSteps + 1 + 5*shadeSteps
	if got := r.count("circle"); got != want {
		t.Errorf("circles = %d, want %d", got, want)
	}
}

func TestShade(t *testing.T) {
	discs := shade(10, geom.Point{X: -3, Y: -3})
	if len(discs) != shadeSteps {
		t.Fatalf("discs = %d, want %d", len(discs), shadeSteps)
	}
	outer, inner := discs[0], discs[len(discs)-1]
	if outer.radius != 10 || outer.ramp != 1 || outer.offset != (geom.Point{}) {
		t.Errorf("outer disc = %+v, want full radius at rim, centered", outer)
	}
	if inner.radius >= outer.radius || inner.ramp >= outer.ramp {
		t.Errorf("inner disc = %+v not inside outer", inner)
	}
	if inner.offset.X >= 0 || inner.offset.Y >= 0 {
		t.Errorf("inner disc offset = %+v, want toward focus", inner.offset)
	}
}

func TestHaloOutlineFollowsOrbit(t *testing.T) {
	s := defaultScene(t)
	b := s.Bodies()[0]

	at := func(d time.Duration) []geom.Point {
		return haloOutline(b, s.Frame(d).Bodies[0], 4)
	}

	rest := at(0)
	// At rest the major axis lies along x.
	if got := rest[0].Dist(s.Frame(0).Bodies[0].Position); math.Abs(got-b.Halo.RX) > 1e-9 {
		t.Errorf("rest major radius = %v, want %v", got, b.Halo.RX)
	}

	// A quarter turn of orbit rotates the major axis onto y.
	f := s.Frame(10 * time.Second)
	pose := f.Bodies[0]
	pts := haloOutline(b, pose, 4)
	d := pts[0].Add(geom.Point{X: -pose.Position.X, Y: -pose.Position.Y})
	turn := pose.System + pose.Orbit
	want := geom.Rotate(turn).Apply(geom.Point{X: b.Halo.RX})
	if math.Abs(d.X-want.X) > 1e-9 || math.Abs(d.Y-want.Y) > 1e-9 {
		t.Errorf("rotated major axis = %+v, want %+v", d, want)
	}
}

func TestRGBA(t *testing.T) {
	c := mustColor("#ff8000")
	got := rgba(c, 0.5)
	want := color.RGBA{R: 128, G: 64, B: 0, A: 128}
	if got != want {
		t.Errorf("rgba = %+v, want %+v", got, want)
	}
	if got := rgba(c, 2); got.A != 255 {
		t.Errorf("opacity clamps to 1, got alpha %d", got.A)
	}
	if got := rgba(c, -1); got != (color.RGBA{}) {
		t.Errorf("opacity clamps to 0, got %+v", got)
	}
}

func TestGameAdvance(t *testing.T) {
	s := defaultScene(t)
	g := NewGame(s, nil)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := base
	g.now = func() time.Time { return now }

	g.advance()
	now = base.Add(60 * time.Second)
	g.advance()
	if math.Abs(g.frame.System.Rotate-90) > 1e-9 {
		t.Errorf("system angle = %v, want 90", g.frame.System.Rotate)
	}

	g.togglePause()
	now = base.Add(120 * time.Second)
	g.advance()
	if math.Abs(g.frame.System.Rotate-90) > 1e-9 {
		t.Errorf("paused system angle = %v, want 90", g.frame.System.Rotate)
	}

	g.togglePause()
	now = base.Add(180 * time.Second)
	g.advance()
	if math.Abs(g.frame.System.Rotate-180) > 1e-9 {
		t.Errorf("resumed system angle = %v, want 180", g.frame.System.Rotate)
	}
}

func TestLayout(t *testing.T) {
	g := NewGame(defaultScene(t), nil)
	w, h := g.Layout(800, 600)
	if w != 1920 || h != 1080 {
		t.Errorf("Layout() = %d,%d, want 1920,1080", w, h)
	}
}
