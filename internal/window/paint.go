package window

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/palette"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/starfield"
	"github.com/litescript/ls-orrery/internal/timing"
)

// Surface is the drawing target. Coordinates are scene units.
type Surface interface {
	FillRect(x, y, w, h float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	StrokeCircle(cx, cy, r, width float64, c color.Color)
	StrokeLine(x1, y1, x2, y2, width float64, c color.Color)
}

// shadeSteps is the number of concentric discs approximating a radial
// gradient.
const shadeSteps = 12

// Options toggles optional layers.
type Options struct {
	HideStars   bool
	HideAmbient bool
}

// Paint draws frame f of s onto dst, back to front.
func Paint(dst Surface, s *scene.Scene, f scene.Frame, opts Options) {
	reg := s.Registry()
	w, h := s.Width(), s.Height()

	dst.FillRect(0, 0, w, h, color.Black)

	amb := s.Ambient()
	if !opts.HideAmbient {
		tint := mustColor(amb.Tint)
		dst.FillRect(0, 0, w, h, rgba(tint, amb.Opacity*0.4))
	}

	if !opts.HideStars {
		for _, st := range s.Stars() {
			dst.FillCircle(st.X, st.Y, st.Radius, starColor(st))
		}
	}

	paintCentralStar(dst, s.Center(), s.CentralStar(), reg)

	stroke := reg.OrbitStroke()
	from, to := mustColor(stroke.From.Color), mustColor(stroke.To.Color)
	c := s.Center()
	for i, r := range s.Rings() {
		mix := 0.0
		if n := len(s.Rings()); n > 1 {
			mix = float64(i) / float64(n-1)
		}
		dst.StrokeCircle(c.X, c.Y, r.Radius, r.StrokeWidth, rgba(from.BlendLab(to, mix).Clamped(), stroke.From.Opacity*2))
	}

	for i, b := range s.Bodies() {
		if i >= len(f.Bodies) {
			break
		}
		style := s.Style(i)
		pose := f.Bodies[i]
		if b.HasHalo {
			paintHalo(dst, b, pose, style)
		}
		paintBody(dst, b, pose, style)
	}

	if !opts.HideAmbient {
		paintMotes(dst, amb, f.Drift)
	}
}

func paintCentralStar(dst Surface, c geom.Point, star scene.CentralStar, reg *palette.Registry) {
	glow := reg.StarGlow()
	for i := shadeSteps; i >= 1; i-- {
		f := float64(i) / shadeSteps
		dst.FillCircle(c.X, c.Y, star.GlowRadius*f, rgba(glow.ColorAt(f), glow.OpacityAt(f)/shadeSteps*2))
	}
	dst.FillCircle(c.X, c.Y, star.CoreRadius, rgba(mustColor(reg.StarCore()), 1))
}

// paintBody shades the body with discs from rim to core. Disc centers
// slide toward the gradient focus so the lit side sits up and left.
func paintBody(dst Surface, b orbit.Body, pose orbit.Pose, style palette.Entry) {
	r := b.VisualRadius
	spin := geom.Rotate(pose.Heading())
	focus := spin.Apply(geom.Point{X: (style.Focus.CX - 0.5) * 2 * r, Y: (style.Focus.CY - 0.5) * 2 * r})

	for _, d := range shade(r, focus) {
		c := pose.Position.Add(d.offset)
		dst.FillCircle(c.X, c.Y, d.radius, rgba(style.ColorAt(d.ramp), 1))
	}
}

type disc struct {
	offset geom.Point
	radius float64
	ramp   float64
}

// shade returns discs from the outermost (rim color) to the innermost
// (core color).
func shade(r float64, focus geom.Point) []disc {
	discs := make([]disc, 0, shadeSteps)
	for i := shadeSteps; i >= 1; i-- {
		f := float64(i) / shadeSteps
		k := 1 - f
		discs = append(discs, disc{
			offset: geom.Point{X: focus.X * k, Y: focus.Y * k},
			radius: r * f,
			ramp:   f,
		})
	}
	return discs
}

// paintHalo strokes the ring-halo ellipse as a closed polyline.
func paintHalo(dst Surface, b orbit.Body, pose orbit.Pose, style palette.Entry) {
	pts := haloOutline(b, pose, 48)
	c := rgba(mustColor(style.Halo), b.Halo.Opacity)
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		dst.StrokeLine(p.X, p.Y, q.X, q.Y, 1, c)
	}
}

// haloOutline samples the halo ellipse. It turns with the orbit but not
// with the body's spin.
func haloOutline(b orbit.Body, pose orbit.Pose, n int) []geom.Point {
	turn := geom.Rotate(pose.System + pose.Orbit)
	pts := make([]geom.Point, n)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / float64(n)
		local := geom.Point{X: b.Halo.RX * math.Cos(theta), Y: b.Halo.RY * math.Sin(theta)}
		pts[i] = pose.Position.Add(turn.Apply(local))
	}
	return pts
}

// paintMotes applies the drift transform about the viewport origin, the
// same as the SVG group transform.
func paintMotes(dst Surface, amb scene.Ambient, drift timing.Transform) {
	m := drift.Affine()
	for _, mote := range amb.Motes {
		p := m.Apply(geom.Point{X: mote.X, Y: mote.Y})
		dst.FillCircle(p.X, p.Y, mote.Radius*drift.Scale, rgba(mustColor(mote.Color), mote.Opacity))
	}
}

func starColor(st starfield.Star) color.Color {
	return rgba(colorful.Color{R: 1, G: 1, B: 1}, st.Tier.Opacity()*0.6)
}

// rgba converts to a premultiplied color with the given opacity.
func rgba(c colorful.Color, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{
		R: uint8(math.Round(float64(r) * opacity)),
		G: uint8(math.Round(float64(g) * opacity)),
		B: uint8(math.Round(float64(b) * opacity)),
		A: uint8(math.Round(255 * opacity)),
	}
}

// mustColor parses a registry color. Registry colors are validated when
// the registry is built, so failure here is a programming error.
func mustColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	return c
}
