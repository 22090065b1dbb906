package scene

import (
	"time"

	"github.com/litescript/ls-orrery/internal/timing"
)

// Mote is a small distant point that drifts with the ambient layer.
type Mote struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Radius  float64 `json:"r"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// Ambient is the diffuse background: a noise-textured tint over the whole
// viewport plus a handful of distant motes that drift together.
type Ambient struct {
	Tint          string
	Opacity       float64
	BaseFrequency float64
	Octaves       int
	Seed          int
	Blur          float64
	Motes         []Mote
	Drift         timing.Descriptor
}

// Drift excursion at the half-period keyframe.
const (
	driftDX    = 10
	driftDY    = -8
	driftScale = 1.02
)

// moteLayout positions are in the 1920x1080 reference viewport and scale
// with the configured one.
var moteLayout = []Mote{
	{X: 200, Y: 120, Radius: 3.5, Color: "#93c5fd", Opacity: 0.5},
	{X: 1700, Y: 220, Radius: 2.8, Color: "#67e8f9", Opacity: 0.5},
	{X: 1500, Y: 920, Radius: 3.2, Color: "#fde68a", Opacity: 0.5},
	{X: 260, Y: 860, Radius: 2.4, Color: "#a78bfa", Opacity: 0.5},
	{X: 320, Y: 300, Radius: 5, Color: "#22c55e", Opacity: 0.35},
	{X: 1680, Y: 760, Radius: 4.5, Color: "#0ea5e9", Opacity: 0.35},
}

func newAmbient(width, height float64, drift time.Duration) Ambient {
	sx := width / DefaultWidth
	sy := height / DefaultHeight

	motes := make([]Mote, len(moteLayout))
	for i, m := range moteLayout {
		m.X *= sx
		m.Y *= sy
		motes[i] = m
	}

	return Ambient{
		Tint:          "#1e3a8a",
		Opacity:       0.25,
		BaseFrequency: 0.002,
		Octaves:       3,
		Seed:          7,
		Blur:          30,
		Motes:         motes,
		Drift:         timing.Drift(drift, driftDX, driftDY, driftScale),
	}
}

func (a Ambient) clone() Ambient {
	a.Motes = append([]Mote(nil), a.Motes...)
	return a
}
