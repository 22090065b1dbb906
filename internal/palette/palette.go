// Package palette is the style registry: a fixed mapping from material
// category to a radial color ramp, halo stroke and the shared glow filter.
package palette

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/config"
)

// Category names a material class that bodies reference.
type Category int

const (
	Metallic Category = iota
	Rocky
	Gaseous
)

// String returns the category name used in configuration.
func (c Category) String() string {
	switch c {
	case Metallic:
		return "metallic"
	case Rocky:
		return "rocky"
	case Gaseous:
		return "gaseous"
	default:
		return "unknown"
	}
}

// ParseCategory resolves a configuration name to a Category.
func ParseCategory(name string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "metallic":
		return Metallic, nil
	case "rocky":
		return Rocky, nil
	case "gaseous":
		return Gaseous, nil
	default:
		return 0, config.Errorf(config.CodeUnknownStyle, "styleCategory", "unknown style category %q", name)
	}
}

// Stop is one color stop of a gradient.
type Stop struct {
	Offset  float64 // 0..1
	Color   string  // #rrggbb
	Opacity float64
}

// Ramp is a 3-stop radial ramp: core, mid, rim.
type Ramp [3]Stop

// Focus is the radial gradient geometry in fractions of the bounding box.
type Focus struct {
	CX, CY, R float64
}

// Entry is the visual definition of one category.
type Entry struct {
	Category Category
	Ramp     Ramp
	Focus    Focus
	Halo     string // Ring-halo stroke color
	Glow     bool   // Whether the shared glow filter applies
}

// Name returns the category name.
func (e Entry) Name() string {
	return e.Category.String()
}

// ColorAt blends the ramp at f (0 = core, 1 = rim) in Lab space.
func (e Entry) ColorAt(f float64) colorful.Color {
	return e.Ramp.ColorAt(f)
}

// ColorAt blends a ramp at f in Lab space.
func (r Ramp) ColorAt(f float64) colorful.Color {
	if f <= r[0].Offset {
		return mustHex(r[0].Color)
	}
	for i := 1; i < len(r); i++ {
		if f == r[i].Offset {
			return mustHex(r[i].Color)
		}
		if f < r[i].Offset {
			span := r[i].Offset - r[i-1].Offset
			local := 0.0
			if span > 0 {
				local = (f - r[i-1].Offset) / span
			}
			return mustHex(r[i-1].Color).BlendLab(mustHex(r[i].Color), local).Clamped()
		}
	}
	return mustHex(r[len(r)-1].Color)
}

// OpacityAt interpolates stop opacity at f.
func (r Ramp) OpacityAt(f float64) float64 {
	if f <= r[0].Offset {
		return r[0].Opacity
	}
	for i := 1; i < len(r); i++ {
		if f <= r[i].Offset {
			span := r[i].Offset - r[i-1].Offset
			if span <= 0 {
				return r[i].Opacity
			}
			local := (f - r[i-1].Offset) / span
			return r[i-1].Opacity + (r[i].Opacity-r[i-1].Opacity)*local
		}
	}
	return r[len(r)-1].Opacity
}

// Glow is the shared post-process: blur the source, then merge the blur
// beneath the original graphic.
type Glow struct {
	StdDeviation float64
	Margin       float64 // Filter region padding as a fraction of the box
}

// StrokeGradient is the linear gradient applied to orbit rings.
type StrokeGradient struct {
	From, To Stop
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("palette: bad color %q: %v", s, err))
	}
	return c
}

// validHex reports whether s parses as a #rrggbb color.
func validHex(s string) bool {
	_, err := colorful.Hex(s)
	return err == nil
}
