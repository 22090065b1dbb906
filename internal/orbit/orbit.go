// Package orbit models concentric orbit rings, the bodies riding them and
// the rule that composes system rotation, revolution and self-spin into a
// single pose.
package orbit

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/palette"
	"github.com/litescript/ls-orrery/internal/timing"
)

// radiusEpsilon is the tolerance when matching a body to its ring.
const radiusEpsilon = 1e-9

// Ring is a circular orbit path around the system center.
type Ring struct {
	Radius      float64
	StrokeWidth float64
}

// Halo is the flattened ellipse drawn around a ringed body.
type Halo struct {
	RX, RY  float64
	Opacity float64
}

// Body is one animated object attached to a ring.
type Body struct {
	Name         string
	OrbitRadius  float64
	VisualRadius float64
	Style        palette.Category
	OrbitPeriod  time.Duration
	SpinPeriod   time.Duration
	HasHalo      bool
	Halo         Halo
}

// Orbit returns the body's revolution layer.
func (b Body) Orbit() timing.Descriptor {
	return timing.Spin(b.OrbitPeriod)
}

// Spin returns the body's self-rotation layer.
func (b Body) Spin() timing.Descriptor {
	return timing.Spin(b.SpinPeriod)
}

// NewRings builds rings from strictly increasing positive radii. Stroke
// weight alternates between thin and thick, starting thin.
func NewRings(radii []float64) ([]Ring, error) {
	rings := make([]Ring, len(radii))
	for i, r := range radii {
		field := fmt.Sprintf("orbitRadii[%d]", i)
		if !(r > 0) || math.IsInf(r, 0) {
			return nil, config.Errorf(config.CodeNonPositive, field, "radius must be positive, got %v", r)
		}
		if i > 0 && r <= radii[i-1] {
			return nil, config.Errorf(config.CodeRingOrder, field, "radius %v must exceed previous radius %v", r, radii[i-1])
		}
		width := 0.8
		if i%2 == 1 {
			width = 1.2
		}
		rings[i] = Ring{Radius: r, StrokeWidth: width}
	}
	return rings, nil
}

// System is a validated set of rings and the bodies on them, rotating as one
// unit about Center.
type System struct {
	center   geom.Point
	rotation timing.Descriptor
	rings    []Ring
	bodies   []Body
}

// NewSystem validates referential integrity between bodies and rings and
// returns the assembled system. The inputs are copied.
func NewSystem(center geom.Point, rotation time.Duration, rings []Ring, bodies []Body) (System, error) {
	sys := timing.Spin(rotation)
	if err := sys.Validate("systemPeriodSeconds"); err != nil {
		return System{}, err
	}
	for i := 1; i < len(rings); i++ {
		if rings[i].Radius <= rings[i-1].Radius {
			return System{}, config.Errorf(config.CodeRingOrder, fmt.Sprintf("rings[%d]", i), "radius %v must exceed previous radius %v", rings[i].Radius, rings[i-1].Radius)
		}
	}

	names := make(map[string]bool, len(bodies))
	for i, b := range bodies {
		if err := validateBody(i, b, rings); err != nil {
			return System{}, err
		}
		if names[b.Name] {
			return System{}, config.Errorf(config.CodeDuplicateName, fmt.Sprintf("bodies[%d].name", i), "duplicate body name %q", b.Name)
		}
		names[b.Name] = true
	}

	return System{
		center:   center,
		rotation: sys,
		rings:    append([]Ring(nil), rings...),
		bodies:   append([]Body(nil), bodies...),
	}, nil
}

func validateBody(i int, b Body, rings []Ring) error {
	field := func(name string) string { return fmt.Sprintf("bodies[%d].%s", i, name) }

	if b.Name == "" {
		return config.Errorf(config.CodeNonPositive, field("name"), "name must not be empty")
	}
	if !(b.VisualRadius > 0) {
		return config.Errorf(config.CodeNonPositive, field("visualRadius"), "must be positive, got %v", b.VisualRadius)
	}
	if err := b.Orbit().Validate(field("orbitPeriodSeconds")); err != nil {
		return err
	}
	if err := b.Spin().Validate(field("spinPeriodSeconds")); err != nil {
		return err
	}
	if b.HasHalo && (!(b.Halo.RX > 0) || !(b.Halo.RY > 0)) {
		return config.Errorf(config.CodeNonPositive, field("halo"), "halo radii must be positive, got %vx%v", b.Halo.RX, b.Halo.RY)
	}
	if _, ok := ringIndex(rings, b.OrbitRadius); !ok {
		return config.Errorf(config.CodeOrphanBody, field("orbitRadius"), "no ring with radius %v", b.OrbitRadius)
	}
	return nil
}

func ringIndex(rings []Ring, radius float64) (int, bool) {
	for i, r := range rings {
		if math.Abs(r.Radius-radius) <= radiusEpsilon {
			return i, true
		}
	}
	return -1, false
}

// Center returns the rotation center in scene coordinates.
func (s System) Center() geom.Point { return s.center }

// Rotation returns the whole-system rotation layer.
func (s System) Rotation() timing.Descriptor { return s.rotation }

// Rings returns a copy of the rings, innermost first.
func (s System) Rings() []Ring {
	return append([]Ring(nil), s.rings...)
}

// Bodies returns a copy of the bodies in declaration order.
func (s System) Bodies() []Body {
	return append([]Body(nil), s.bodies...)
}

// RingOf returns the index of the ring carrying body i.
func (s System) RingOf(i int) int {
	idx, _ := ringIndex(s.rings, s.bodies[i].OrbitRadius)
	return idx
}

// Pose is a body's composed placement at one instant.
type Pose struct {
	Position geom.Point // Body center in scene coordinates
	System   float64    // System rotation, degrees
	Orbit    float64    // Revolution angle, degrees
	Spin     float64    // Self-spin angle, degrees
	Matrix   geom.Affine
}

// Heading is the body's total on-screen rotation in [0, 360).
func (p Pose) Heading() float64 {
	return geom.NormalizeDeg(p.System + p.Orbit + p.Spin)
}

// Compose chains the three motions in order:
// translate(center) · rotate(system) · rotate(orbit) · translate(radius, 0) · rotate(spin).
// Each angle is supplied independently; none is derived from another.
func Compose(center geom.Point, radius float64, system, orbit, spin timing.Transform) Pose {
	m := geom.Chain(
		geom.Translate(center.X, center.Y),
		geom.Rotate(system.Rotate),
		geom.Rotate(orbit.Rotate),
		geom.Translate(radius, 0),
		geom.Rotate(spin.Rotate),
	)
	return Pose{
		Position: m.Apply(geom.Point{}),
		System:   system.Rotate,
		Orbit:    orbit.Rotate,
		Spin:     spin.Rotate,
		Matrix:   m,
	}
}

// Pose samples body i at elapsed time t. Every layer is sampled from t
// directly, so the result is a pure function of (i, t).
func (s System) Pose(i int, t time.Duration) Pose {
	b := s.bodies[i]
	return Compose(s.center, b.OrbitRadius, s.rotation.Sample(t), b.Orbit().Sample(t), b.Spin().Sample(t))
}

// PoseWith samples body i with a separate local time per layer, for hosts
// that pause or rate-scale layers individually.
func (s System) PoseWith(i int, system, orbit, spin time.Duration) Pose {
	b := s.bodies[i]
	return Compose(s.center, b.OrbitRadius, s.rotation.Sample(system), b.Orbit().Sample(orbit), b.Spin().Sample(spin))
}

// OuterSlower reports whether orbital period never decreases as orbit
// radius grows.
func OuterSlower(bodies []Body) bool {
	for i := range bodies {
		for j := range bodies {
			if bodies[j].OrbitRadius > bodies[i].OrbitRadius && bodies[j].OrbitPeriod < bodies[i].OrbitPeriod {
				return false
			}
		}
	}
	return true
}
