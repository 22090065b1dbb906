// Package timing describes periodic animation layers declaratively.
//
// A Descriptor is a (period, from, to) record; Sample maps elapsed time to
// a Transform as a pure function of t. Nothing here runs timers: the host
// engine decides when to sample.
package timing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/geom"
)

// Mode selects how a descriptor moves between From and To within a period.
type Mode int

const (
	// ModeLinear interpolates From→To across the whole period.
	ModeLinear Mode = iota
	// ModeMirror goes From→To in the first half and back in the second.
	ModeMirror
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeMirror:
		return "mirror"
	default:
		return "unknown"
	}
}

// Transform is the animated value of a layer.
type Transform struct {
	Rotate float64 // Degrees
	TX, TY float64
	Scale  float64
}

// Rotation returns a pure rotation value.
func Rotation(deg float64) Transform {
	return Transform{Rotate: deg, Scale: 1}
}

// Lerp interpolates between a and b.
func Lerp(a, b Transform, f float64) Transform {
	return Transform{
		Rotate: a.Rotate + (b.Rotate-a.Rotate)*f,
		TX:     a.TX + (b.TX-a.TX)*f,
		TY:     a.TY + (b.TY-a.TY)*f,
		Scale:  a.Scale + (b.Scale-a.Scale)*f,
	}
}

// Affine converts the transform to a matrix: translate, then rotate, then
// scale, in SVG list order.
func (t Transform) Affine() geom.Affine {
	return geom.Chain(geom.Translate(t.TX, t.TY), geom.Rotate(t.Rotate), geom.Scale(t.Scale))
}

// ApproxEqual compares two transforms, treating rotations modulo 360.
func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	d := geom.NormalizeDeg(t.Rotate - o.Rotate)
	if d > 180 {
		d = 360 - d
	}
	return d <= eps && abs(t.TX-o.TX) <= eps && abs(t.TY-o.TY) <= eps && abs(t.Scale-o.Scale) <= eps
}

// Descriptor is one animated layer: a period and the values it moves between.
type Descriptor struct {
	Period time.Duration
	From   Transform
	To     Transform
	Mode   Mode
	Loop   bool
}

// Spin returns a looping full turn (0→360 degrees) every period.
func Spin(period time.Duration) Descriptor {
	return Descriptor{
		Period: period,
		From:   Rotation(0),
		To:     Rotation(360),
		Mode:   ModeLinear,
		Loop:   true,
	}
}

// Drift returns a looping there-and-back excursion to (dx, dy, scale).
func Drift(period time.Duration, dx, dy, scale float64) Descriptor {
	return Descriptor{
		Period: period,
		From:   Transform{Scale: 1},
		To:     Transform{TX: dx, TY: dy, Scale: scale},
		Mode:   ModeMirror,
		Loop:   true,
	}
}

// Seconds converts a period in seconds to a Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// ErrInvalidSeconds is returned by ParseSeconds for values that are not a
// finite number of seconds representable as a Duration.
var ErrInvalidSeconds = errors.New("must be a finite number of seconds")

// maxSeconds is the first magnitude whose nanosecond count overflows int64.
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

// ParseSeconds parses a decimal number of seconds into a Duration.
func ParseSeconds(raw string) (time.Duration, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= maxSeconds {
		return 0, fmt.Errorf("%q: %w", raw, ErrInvalidSeconds)
	}
	return Seconds(v), nil
}

// Validate rejects descriptors that cannot be sampled.
func (d Descriptor) Validate(field string) error {
	if d.Period <= 0 {
		return config.Errorf(config.CodeNonPositive, field, "period must be positive, got %v", d.Period)
	}
	return nil
}

// Phase returns the position within the current cycle in [0, 1).
// It uses integer nanoseconds so Phase(t) == Phase(t+Period) exactly.
func (d Descriptor) Phase(t time.Duration) float64 {
	if d.Period <= 0 {
		return 0
	}
	r := t % d.Period
	if r < 0 {
		r += d.Period
	}
	return float64(r) / float64(d.Period)
}

// Sample returns the layer's transform at elapsed time t.
func (d Descriptor) Sample(t time.Duration) Transform {
	if !d.Loop && t >= d.Period {
		if d.Mode == ModeMirror {
			return d.From
		}
		return d.To
	}
	return d.at(d.Phase(t))
}

func (d Descriptor) at(phase float64) Transform {
	if d.Mode == ModeMirror {
		if phase < 0.5 {
			return Lerp(d.From, d.To, phase*2)
		}
		return Lerp(d.To, d.From, phase*2-1)
	}
	return Lerp(d.From, d.To, phase)
}

// String renders the descriptor for logs.
func (d Descriptor) String() string {
	return fmt.Sprintf("%s %v loop=%t", d.Mode, d.Period, d.Loop)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
