package scene

import (
	"time"

	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/timing"
)

// LayerKind classifies an animated layer.
type LayerKind int

const (
	LayerSystem LayerKind = iota
	LayerOrbit
	LayerSpin
	LayerDrift
)

// String returns the kind name.
func (k LayerKind) String() string {
	switch k {
	case LayerSystem:
		return "system"
	case LayerOrbit:
		return "orbit"
	case LayerSpin:
		return "spin"
	case LayerDrift:
		return "drift"
	default:
		return "unknown"
	}
}

// Layer is one independently animated part of the scene.
type Layer struct {
	Name       string
	Kind       LayerKind
	Body       int // Index into Bodies, -1 for scene-wide layers
	Descriptor timing.Descriptor
}

// Layers lists every animated layer: the system rotation, each body's
// revolution and self-spin, and the ambient drift. No two layers are
// phase-aligned by construction.
func (s *Scene) Layers() []Layer {
	bodies := s.system.Bodies()
	layers := make([]Layer, 0, 2+2*len(bodies))
	layers = append(layers, Layer{Name: "system", Kind: LayerSystem, Body: -1, Descriptor: s.system.Rotation()})
	for i, b := range bodies {
		layers = append(layers,
			Layer{Name: "orbit:" + b.Name, Kind: LayerOrbit, Body: i, Descriptor: b.Orbit()},
			Layer{Name: "spin:" + b.Name, Kind: LayerSpin, Body: i, Descriptor: b.Spin()},
		)
	}
	layers = append(layers, Layer{Name: "ambient:drift", Kind: LayerDrift, Body: -1, Descriptor: s.ambient.Drift})
	return layers
}

// Frame is every layer sampled at one instant.
type Frame struct {
	At     time.Duration
	System timing.Transform
	Bodies []orbit.Pose
	Drift  timing.Transform
}

// Frame samples the scene at elapsed time t. Each layer is evaluated from t
// alone; frames do not depend on earlier frames.
func (s *Scene) Frame(t time.Duration) Frame {
	bodies := s.system.Bodies()
	f := Frame{
		At:     t,
		System: s.system.Rotation().Sample(t),
		Bodies: make([]orbit.Pose, len(bodies)),
		Drift:  s.ambient.Drift.Sample(t),
	}
	for i := range bodies {
		f.Bodies[i] = s.system.Pose(i, t)
	}
	return f
}

// Clocks holds a local clock per layer name. Missing entries run at
// global time.
type Clocks map[string]timing.Clock

// FrameWith samples the scene with per-layer clocks applied to global
// elapsed time g.
func (s *Scene) FrameWith(g time.Duration, clocks Clocks) Frame {
	local := func(name string) time.Duration {
		return clocks[name].Local(g)
	}

	bodies := s.system.Bodies()
	sysT := local("system")
	f := Frame{
		At:     g,
		System: s.system.Rotation().Sample(sysT),
		Bodies: make([]orbit.Pose, len(bodies)),
		Drift:  s.ambient.Drift.Sample(local("ambient:drift")),
	}
	for i, b := range bodies {
		f.Bodies[i] = s.system.PoseWith(i, sysT, local("orbit:"+b.Name), local("spin:"+b.Name))
	}
	return f
}
