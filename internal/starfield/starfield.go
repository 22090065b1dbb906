// Package starfield scatters background stars deterministically.
//
// Placement is a pure function of the star index and the bounds: there is
// no random source, no seed and no generator state, so the same arguments
// always yield the same stars and calls can run concurrently.
package starfield

import (
	"math"

	"github.com/litescript/ls-orrery/internal/config"
)

const (
	// P1 and P2 are the index multipliers for x and y. Both are primes that
	// share no factor with common viewport sizes.
	P1 = 7919
	P2 = 6151

	// DefaultCount is the star count used when none is configured.
	DefaultCount = 250

	radiusCycle = 7
	tierCycle   = 5
)

// Tier is a star's brightness class.
type Tier int

const (
	TierBright Tier = iota
	TierDim
)

// String returns the tier name.
func (t Tier) String() string {
	if t == TierBright {
		return "bright"
	}
	return "dim"
}

// Opacity returns the rendering opacity for the tier.
func (t Tier) Opacity() float64 {
	if t == TierBright {
		return 0.9
	}
	return 0.6
}

// Star is a single background point light in scene coordinates.
type Star struct {
	X, Y   float64
	Radius float64
	Tier   Tier
}

// Scatter places count stars inside [0,width) x [0,height).
//
// Star i sits at ((i*P1) mod width, (i*P2) mod height) with radius
// (i mod 7)/10 + 0.2; every fifth star, starting at i=0, is bright.
// The radius and tier cycles are independent of each other.
func Scatter(count int, width, height float64) ([]Star, error) {
	if count < 0 {
		return nil, config.Errorf(config.CodeInvalidCount, "starCount", "must be >= 0, got %d", count)
	}
	if !(width > 0) || math.IsInf(width, 0) {
		return nil, config.Errorf(config.CodeInvalidDimensions, "viewportWidth", "must be positive, got %v", width)
	}
	if !(height > 0) || math.IsInf(height, 0) {
		return nil, config.Errorf(config.CodeInvalidDimensions, "viewportHeight", "must be positive, got %v", height)
	}

	stars := make([]Star, count)
	for i := range stars {
		stars[i] = At(i, width, height)
	}
	return stars, nil
}

// At computes star i without building the whole field. Bounds are not
// validated; use Scatter for configuration input.
func At(i int, width, height float64) Star {
	tier := TierDim
	if i%tierCycle == 0 {
		tier = TierBright
	}
	return Star{
		X:      math.Mod(float64(i)*P1, width),
		Y:      math.Mod(float64(i)*P2, height),
		Radius: float64(i%radiusCycle)/10 + 0.2,
		Tier:   tier,
	}
}
