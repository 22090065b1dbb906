package scene

import (
	"encoding/json"
	"io"
)

// Export is the JSON-serializable scene description.
type Export struct {
	Viewport    ViewportExport  `json:"viewport"`
	Center      PointExport     `json:"center"`
	CentralStar CentralStar     `json:"central_star"`
	Stars       []StarExport    `json:"stars"`
	Rings       []RingExport    `json:"rings"`
	Bodies      []BodyExport    `json:"bodies"`
	Layers      []LayerExport   `json:"layers"`
	Ambient     AmbientExport   `json:"ambient"`
	Palette     []PaletteExport `json:"palette"`
}

// ViewportExport is the logical coordinate space.
type ViewportExport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PointExport is a point in scene coordinates.
type PointExport struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StarExport is one background star.
type StarExport struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Radius  float64 `json:"r"`
	Tier    string  `json:"tier"`
	Opacity float64 `json:"opacity"`
}

// RingExport is one orbit ring.
type RingExport struct {
	Radius      float64 `json:"radius"`
	StrokeWidth float64 `json:"stroke_width"`
}

// BodyExport is one body with its layer names.
type BodyExport struct {
	Name         string      `json:"name"`
	OrbitRadius  float64     `json:"orbit_radius"`
	VisualRadius float64     `json:"visual_radius"`
	Style        string      `json:"style"`
	OrbitLayer   string      `json:"orbit_layer"`
	SpinLayer    string      `json:"spin_layer"`
	Halo         *HaloExport `json:"halo,omitempty"`
}

// HaloExport is a ring-halo ellipse.
type HaloExport struct {
	RX      float64 `json:"rx"`
	RY      float64 `json:"ry"`
	Opacity float64 `json:"opacity"`
}

// LayerExport is a declarative (period, from, to) timing record.
type LayerExport struct {
	Name          string          `json:"name"`
	Kind          string          `json:"kind"`
	PeriodSeconds float64         `json:"period_seconds"`
	From          TransformExport `json:"from"`
	To            TransformExport `json:"to"`
	Mode          string          `json:"mode"`
	Loop          bool            `json:"loop"`
}

// TransformExport is a layer value.
type TransformExport struct {
	Rotate float64 `json:"rotate"`
	TX     float64 `json:"tx"`
	TY     float64 `json:"ty"`
	Scale  float64 `json:"scale"`
}

// AmbientExport is the ambient texture layer.
type AmbientExport struct {
	Tint          string  `json:"tint"`
	Opacity       float64 `json:"opacity"`
	BaseFrequency float64 `json:"base_frequency"`
	Octaves       int     `json:"octaves"`
	Seed          int     `json:"seed"`
	Blur          float64 `json:"blur"`
	Motes         []Mote  `json:"motes"`
	DriftLayer    string  `json:"drift_layer"`
}

// PaletteExport is one style registry entry.
type PaletteExport struct {
	Name string   `json:"name"`
	Ramp []string `json:"ramp"`
	Halo string   `json:"halo"`
	Glow bool     `json:"glow"`
}

// Export converts the scene to its serializable form.
func (s *Scene) Export() *Export {
	c := s.Center()
	out := &Export{
		Viewport:    ViewportExport{Width: s.width, Height: s.height},
		Center:      PointExport{X: c.X, Y: c.Y},
		CentralStar: s.star,
		Stars:       make([]StarExport, len(s.stars)),
		Ambient: AmbientExport{
			Tint:          s.ambient.Tint,
			Opacity:       s.ambient.Opacity,
			BaseFrequency: s.ambient.BaseFrequency,
			Octaves:       s.ambient.Octaves,
			Seed:          s.ambient.Seed,
			Blur:          s.ambient.Blur,
			Motes:         append([]Mote(nil), s.ambient.Motes...),
			DriftLayer:    "ambient:drift",
		},
	}

	for i, st := range s.stars {
		out.Stars[i] = StarExport{X: st.X, Y: st.Y, Radius: st.Radius, Tier: st.Tier.String(), Opacity: st.Tier.Opacity()}
	}
	for _, r := range s.system.Rings() {
		out.Rings = append(out.Rings, RingExport{Radius: r.Radius, StrokeWidth: r.StrokeWidth})
	}
	for _, b := range s.system.Bodies() {
		be := BodyExport{
			Name:         b.Name,
			OrbitRadius:  b.OrbitRadius,
			VisualRadius: b.VisualRadius,
			Style:        b.Style.String(),
			OrbitLayer:   "orbit:" + b.Name,
			SpinLayer:    "spin:" + b.Name,
		}
		if b.HasHalo {
			be.Halo = &HaloExport{RX: b.Halo.RX, RY: b.Halo.RY, Opacity: b.Halo.Opacity}
		}
		out.Bodies = append(out.Bodies, be)
	}
	for _, l := range s.Layers() {
		d := l.Descriptor
		out.Layers = append(out.Layers, LayerExport{
			Name:          l.Name,
			Kind:          l.Kind.String(),
			PeriodSeconds: d.Period.Seconds(),
			From:          TransformExport(d.From),
			To:            TransformExport(d.To),
			Mode:          d.Mode.String(),
			Loop:          d.Loop,
		})
	}
	for _, e := range s.registry.Entries() {
		out.Palette = append(out.Palette, PaletteExport{
			Name: e.Name(),
			Ramp: []string{e.Ramp[0].Color, e.Ramp[1].Color, e.Ramp[2].Color},
			Halo: e.Halo,
			Glow: e.Glow,
		})
	}
	return out
}

// WriteJSON writes the export as indented JSON.
func (e *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
