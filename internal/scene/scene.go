// Package scene composes the immutable celestial backdrop from a Config.
//
// Compose validates the whole configuration up front and either returns a
// complete Scene or an error; a partially built Scene is never exposed.
// A Scene never changes after construction. Reconfiguring (a new star
// count, a resized viewport) means composing a new one.
package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/palette"
	"github.com/litescript/ls-orrery/internal/starfield"
	"github.com/litescript/ls-orrery/internal/timing"
)

// Derived halo proportions for bodies that request a halo without sizes.
const (
	haloWidthFactor    = 2.0
	haloAspect         = 4.0
	haloOpacityDefault = 0.16
)

// CentralStar is the glowing star at the system center.
type CentralStar struct {
	GlowRadius float64 `json:"glow_radius"`
	CoreRadius float64 `json:"core_radius"`
}

// Scene is the complete description of one backdrop configuration.
type Scene struct {
	width    float64
	height   float64
	stars    []starfield.Star
	system   orbit.System
	star     CentralStar
	ambient  Ambient
	registry *palette.Registry
}

// Compose builds a Scene from cfg using the styles in reg.
func Compose(cfg Config, reg *palette.Registry) (*Scene, error) {
	if reg == nil {
		return nil, config.Errorf(config.CodeInvalidRegistry, "registry", "style registry is required")
	}

	stars, err := starfield.Scatter(cfg.StarCount, cfg.ViewportWidth, cfg.ViewportHeight)
	if err != nil {
		return nil, err
	}

	rings, err := orbit.NewRings(cfg.OrbitRadii)
	if err != nil {
		return nil, err
	}

	names := bodyNames(cfg.Bodies)
	bodies := make([]orbit.Body, len(cfg.Bodies))
	for i, bs := range cfg.Bodies {
		b, err := buildBody(i, bs, names[i], reg)
		if err != nil {
			return nil, err
		}
		bodies[i] = b
	}

	if err := checkPeriod("systemPeriodSeconds", cfg.SystemPeriodSeconds); err != nil {
		return nil, err
	}
	if err := checkPeriod("driftPeriodSeconds", cfg.DriftPeriodSeconds); err != nil {
		return nil, err
	}

	center := geom.Point{X: cfg.ViewportWidth / 2, Y: cfg.ViewportHeight / 2}
	system, err := orbit.NewSystem(center, timing.Seconds(cfg.SystemPeriodSeconds), rings, bodies)
	if err != nil {
		return nil, err
	}

	return &Scene{
		width:    cfg.ViewportWidth,
		height:   cfg.ViewportHeight,
		stars:    stars,
		system:   system,
		star:     CentralStar{GlowRadius: 90, CoreRadius: 6},
		ambient:  newAmbient(cfg.ViewportWidth, cfg.ViewportHeight, timing.Seconds(cfg.DriftPeriodSeconds)),
		registry: reg,
	}, nil
}

func checkPeriod(field string, seconds float64) error {
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return config.Errorf(config.CodeNonPositive, field, "must be positive, got %v", seconds)
	}
	return nil
}

// bodyNames fills in "body-<index>" for unnamed bodies, adding a numeric
// suffix when that name is already taken by another body.
func bodyNames(specs []BodySpec) []string {
	taken := make(map[string]bool, len(specs))
	for _, bs := range specs {
		if bs.Name != "" {
			taken[bs.Name] = true
		}
	}
	names := make([]string, len(specs))
	for i, bs := range specs {
		if bs.Name != "" {
			names[i] = bs.Name
			continue
		}
		name := fmt.Sprintf("body-%d", i)
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("body-%d-%d", i, n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func buildBody(i int, bs BodySpec, name string, reg *palette.Registry) (orbit.Body, error) {
	field := func(name string) string { return fmt.Sprintf("bodies[%d].%s", i, name) }

	entry, err := reg.Lookup(bs.StyleCategory)
	if err != nil {
		return orbit.Body{}, config.Errorf(config.CodeUnknownStyle, field("styleCategory"), "unknown style category %q", bs.StyleCategory)
	}
	if err := checkPeriod(field("orbitPeriodSeconds"), bs.OrbitPeriodSeconds); err != nil {
		return orbit.Body{}, err
	}
	if err := checkPeriod(field("spinPeriodSeconds"), bs.SpinPeriodSeconds); err != nil {
		return orbit.Body{}, err
	}
	if !(bs.VisualRadius > 0) {
		return orbit.Body{}, config.Errorf(config.CodeNonPositive, field("visualRadius"), "must be positive, got %v", bs.VisualRadius)
	}

	b := orbit.Body{
		Name:         name,
		OrbitRadius:  bs.OrbitRadius,
		VisualRadius: bs.VisualRadius,
		Style:        entry.Category,
		OrbitPeriod:  timing.Seconds(bs.OrbitPeriodSeconds),
		SpinPeriod:   timing.Seconds(bs.SpinPeriodSeconds),
		HasHalo:      bs.HasHalo,
	}
	if bs.HasHalo {
		b.Halo = orbit.Halo{RX: bs.HaloRX, RY: bs.HaloRY, Opacity: bs.HaloOpacity}
		if b.Halo.RX == 0 && b.Halo.RY == 0 {
			b.Halo.RX = bs.VisualRadius * haloWidthFactor
			b.Halo.RY = b.Halo.RX / haloAspect
		}
		if b.Halo.Opacity == 0 {
			b.Halo.Opacity = haloOpacityDefault
		}
	}
	return b, nil
}

// Width returns the logical viewport width.
func (s *Scene) Width() float64 { return s.width }

// Height returns the logical viewport height.
func (s *Scene) Height() float64 { return s.height }

// Center returns the system center.
func (s *Scene) Center() geom.Point { return s.system.Center() }

// Stars returns a copy of the background stars.
func (s *Scene) Stars() []starfield.Star {
	return append([]starfield.Star(nil), s.stars...)
}

// Rings returns a copy of the rings, innermost first.
func (s *Scene) Rings() []orbit.Ring { return s.system.Rings() }

// Bodies returns a copy of the bodies.
func (s *Scene) Bodies() []orbit.Body { return s.system.Bodies() }

// System returns the orbit system.
func (s *Scene) System() orbit.System { return s.system }

// CentralStar returns the central star definition.
func (s *Scene) CentralStar() CentralStar { return s.star }

// Ambient returns a copy of the ambient layer.
func (s *Scene) Ambient() Ambient { return s.ambient.clone() }

// Registry returns the style registry the scene was built with.
func (s *Scene) Registry() *palette.Registry { return s.registry }

// Style returns the palette entry for body i.
func (s *Scene) Style(i int) palette.Entry {
	e, _ := s.registry.Entry(s.system.Bodies()[i].Style)
	return e
}

// PrimitiveCount is the number of drawable primitives in the scene.
func (s *Scene) PrimitiveCount() int {
	n := len(s.stars) + len(s.system.Rings()) + len(s.ambient.Motes) + 2
	for _, b := range s.system.Bodies() {
		n++
		if b.HasHalo {
			n++
		}
	}
	return n
}

// LongestPeriod returns the longest layer period.
func (s *Scene) LongestPeriod() time.Duration {
	var longest time.Duration
	for _, l := range s.Layers() {
		if l.Descriptor.Period > longest {
			longest = l.Descriptor.Period
		}
	}
	return longest
}
