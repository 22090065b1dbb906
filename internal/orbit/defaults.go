package orbit

import (
	"time"

	"github.com/litescript/ls-orrery/internal/palette"
)

// Default system rotation: one full turn every four minutes.
const DefaultSystemPeriod = 240 * time.Second

// Spin speeds shared by the default bodies.
const (
	SpinSlow   = 60 * time.Second
	SpinMedium = 30 * time.Second
	SpinFast   = 15 * time.Second
)

// DefaultRadii returns the default ring radii.
func DefaultRadii() []float64 {
	return []float64{240, 360, 500, 660, 820}
}

// DefaultBodies returns one body per default ring. Orbital period grows
// with radius so outer bodies move slower.
func DefaultBodies() []Body {
	return []Body{
		{
			Name: "argent", OrbitRadius: 240, VisualRadius: 14, Style: palette.Metallic,
			OrbitPeriod: 40 * time.Second, SpinPeriod: SpinMedium,
			HasHalo: true, Halo: Halo{RX: 24, RY: 6, Opacity: 0.18},
		},
		{
			Name: "ochre", OrbitRadius: 360, VisualRadius: 18, Style: palette.Rocky,
			OrbitPeriod: 70 * time.Second, SpinPeriod: SpinSlow,
			HasHalo: true, Halo: Halo{RX: 34, RY: 8, Opacity: 0.16},
		},
		{
			Name: "cyanea", OrbitRadius: 500, VisualRadius: 28, Style: palette.Gaseous,
			OrbitPeriod: 110 * time.Second, SpinPeriod: SpinFast,
			HasHalo: true, Halo: Halo{RX: 56, RY: 14, Opacity: 0.2},
		},
		{
			Name: "pebble", OrbitRadius: 660, VisualRadius: 12, Style: palette.Rocky,
			OrbitPeriod: 160 * time.Second, SpinPeriod: SpinMedium,
		},
		{
			Name: "cobalt", OrbitRadius: 820, VisualRadius: 32, Style: palette.Metallic,
			OrbitPeriod: 220 * time.Second, SpinPeriod: SpinSlow,
			HasHalo: true, Halo: Halo{RX: 80, RY: 18, Opacity: 0.14},
		},
	}
}
