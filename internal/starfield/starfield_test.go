package starfield

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/litescript/ls-orrery/internal/config"
)

func TestScatterKnownValues(t *testing.T) {
	stars, err := Scatter(5, 1920, 1080)
	if err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}
	if len(stars) != 5 {
		t.Fatalf("len = %d, want 5", len(stars))
	}

	want := []struct {
		x, y, r float64
		tier    Tier
	}{
		{0, 0, 0.2, TierBright},
		{239, 751, 0.3, TierDim},
		{478, 422, 0.4, TierDim},
		{717, 93, 0.5, TierDim},
		{956, 844, 0.6, TierDim},
	}

	for i, w := range want {
		s := stars[i]
		if s.X != w.x || s.Y != w.y {
			t.Errorf("star %d at (%v, %v), want (%v, %v)", i, s.X, s.Y, w.x, w.y)
		}
		if math.Abs(s.Radius-w.r) > 1e-9 {
			t.Errorf("star %d radius = %v, want %v", i, s.Radius, w.r)
		}
		if s.Tier != w.tier {
			t.Errorf("star %d tier = %v, want %v", i, s.Tier, w.tier)
		}
	}
}

func TestScatterMatchesFormula(t *testing.T) {
	stars, err := Scatter(DefaultCount, 1920, 1080)
	if err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}
	for i, s := range stars {
		wantX := float64((i * P1) % 1920)
		wantY := float64((i * P2) % 1080)
		if s.X != wantX || s.Y != wantY {
			t.Fatalf("star %d at (%v, %v), want (%v, %v)", i, s.X, s.Y, wantX, wantY)
		}
	}
}

func TestScatterDeterministic(t *testing.T) {
	a, _ := Scatter(300, 1280, 720)
	b, _ := Scatter(300, 1280, 720)

	if !reflect.DeepEqual(a, b) {
		t.Error("Scatter() returned different sequences for identical input")
	}
}

func TestScatterBounds(t *testing.T) {
	sizes := []struct{ w, h float64 }{
		{1920, 1080},
		{800, 600},
		{333.5, 97.25},
		{1, 1},
	}

	for _, sz := range sizes {
		stars, err := Scatter(500, sz.w, sz.h)
		if err != nil {
			t.Fatalf("Scatter(%v, %v) error = %v", sz.w, sz.h, err)
		}
		if len(stars) != 500 {
			t.Errorf("len = %d, want 500", len(stars))
		}
		for i, s := range stars {
			if s.X < 0 || s.X >= sz.w || s.Y < 0 || s.Y >= sz.h {
				t.Fatalf("star %d at (%v, %v) outside %vx%v", i, s.X, s.Y, sz.w, sz.h)
			}
		}
	}
}

func TestScatterZero(t *testing.T) {
	stars, err := Scatter(0, 1920, 1080)
	if err != nil {
		t.Fatalf("Scatter(0) error = %v", err)
	}
	if stars == nil || len(stars) != 0 {
		t.Errorf("Scatter(0) = %v, want empty non-nil slice", stars)
	}
}

func TestScatterInvalid(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		w, h   float64
		target error
	}{
		{"negative count", -1, 1920, 1080, config.ErrInvalidCount},
		{"zero width", 10, 0, 1080, config.ErrInvalidDimensions},
		{"negative height", 10, 1920, -5, config.ErrInvalidDimensions},
		{"NaN width", 10, math.NaN(), 1080, config.ErrInvalidDimensions},
		{"infinite height", 10, 1920, math.Inf(1), config.ErrInvalidDimensions},
		{"zero count zero width", 0, 0, 1080, config.ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stars, err := Scatter(tt.count, tt.w, tt.h)
			if !errors.Is(err, tt.target) {
				t.Errorf("Scatter() error = %v, want %v", err, tt.target)
			}
			if stars != nil {
				t.Errorf("expected nil stars on error, got %d", len(stars))
			}
		})
	}
}

func TestRadiusAndTierCyclesIndependent(t *testing.T) {
	// Over 35 consecutive indices each of the 7 radius classes lands on the
	// bright tier exactly once and on the dim tier four times.
	type counts struct{ bright, dim int }
	byRadius := make(map[int]*counts)
	stars, err := Scatter(35, 1920, 1080)
	if err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}
	for _, s := range stars {
		key := int(math.Round(s.Radius * 10))
		c, ok := byRadius[key]
		if !ok {
			c = &counts{}
			byRadius[key] = c
		}
		if s.Tier == TierBright {
			c.bright++
		} else {
			c.dim++
		}
	}

	if len(byRadius) != 7 {
		t.Fatalf("radius classes = %d, want 7", len(byRadius))
	}
	for key, c := range byRadius {
		if c.bright != 1 || c.dim != 4 {
			t.Errorf("radius %v: bright = %d, dim = %d, want 1 and 4", float64(key)/10, c.bright, c.dim)
		}
	}
}

func TestTierOpacity(t *testing.T) {
	if TierBright.Opacity() != 0.9 {
		t.Errorf("bright opacity = %v, want 0.9", TierBright.Opacity())
	}
	if TierDim.Opacity() != 0.6 {
		t.Errorf("dim opacity = %v, want 0.6", TierDim.Opacity())
	}
	if TierBright.String() != "bright" || TierDim.String() != "dim" {
		t.Errorf("unexpected tier names %q/%q", TierBright, TierDim)
	}
}

func TestScatterConcurrent(t *testing.T) {
	want, _ := Scatter(250, 1920, 1080)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Scatter(250, 1920, 1080)
			if err != nil {
				t.Errorf("Scatter() error = %v", err)
				return
			}
			if !reflect.DeepEqual(got, want) {
				t.Error("concurrent Scatter() diverged")
			}
		}()
	}
	wg.Wait()
}
