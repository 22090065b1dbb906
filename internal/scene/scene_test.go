package scene

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/palette"
)

func mustCompose(t *testing.T, cfg Config) *Scene {
	t.Helper()
	s, err := Compose(cfg, palette.Default())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	return s
}

func TestComposeDefault(t *testing.T) {
	s := mustCompose(t, DefaultConfig())

	if s.Width() != 1920 || s.Height() != 1080 {
		t.Errorf("viewport = %vx%v, want 1920x1080", s.Width(), s.Height())
	}
	if c := s.Center(); c.X != 960 || c.Y != 540 {
		t.Errorf("center = %+v, want (960, 540)", c)
	}
	if len(s.Stars()) != 250 {
		t.Errorf("stars = %d, want 250", len(s.Stars()))
	}
	if len(s.Rings()) != 5 {
		t.Errorf("rings = %d, want 5", len(s.Rings()))
	}
	if len(s.Bodies()) != 5 {
		t.Errorf("bodies = %d, want 5", len(s.Bodies()))
	}
	if s.System().Rotation().Period != 240*time.Second {
		t.Errorf("system period = %v, want 240s", s.System().Rotation().Period)
	}
	if s.Ambient().Drift.Period != 180*time.Second {
		t.Errorf("drift period = %v, want 180s", s.Ambient().Drift.Period)
	}
	if s.CentralStar().GlowRadius != 90 || s.CentralStar().CoreRadius != 6 {
		t.Errorf("central star = %+v", s.CentralStar())
	}
	if s.Registry() != palette.Default() {
		t.Error("scene should reference the registry it was built with")
	}
}

func TestDefaultPeriodsStrictlyIncrease(t *testing.T) {
	s := mustCompose(t, DefaultConfig())
	bodies := s.Bodies()

	radii := []float64{240, 360, 500, 660, 820}
	periods := []time.Duration{40, 70, 110, 160, 220}
	for i, b := range bodies {
		if b.OrbitRadius != radii[i] {
			t.Errorf("body %d radius = %v, want %v", i, b.OrbitRadius, radii[i])
		}
		if b.OrbitPeriod != periods[i]*time.Second {
			t.Errorf("body %d period = %v, want %vs", i, b.OrbitPeriod, periods[i])
		}
		if i > 0 && b.OrbitPeriod <= bodies[i-1].OrbitPeriod {
			t.Errorf("period not strictly increasing at body %d", i)
		}
	}
}

func TestComposeIdempotent(t *testing.T) {
	a := mustCompose(t, DefaultConfig())
	b := mustCompose(t, DefaultConfig())

	if a == b {
		t.Fatal("Compose() should return distinct scenes")
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("scenes from identical config are not deep-equal")
	}
	if !reflect.DeepEqual(a.Export(), b.Export()) {
		t.Error("exports from identical config are not deep-equal")
	}
	if !reflect.DeepEqual(a.Frame(42*time.Second), b.Frame(42*time.Second)) {
		t.Error("frames from identical config differ")
	}
}

func TestComposeErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		target error
	}{
		{"zero width", func(c *Config) { c.ViewportWidth = 0 }, config.ErrInvalidDimensions},
		{"negative height", func(c *Config) { c.ViewportHeight = -1 }, config.ErrInvalidDimensions},
		{"negative stars", func(c *Config) { c.StarCount = -3 }, config.ErrInvalidCount},
		{"unordered rings", func(c *Config) { c.OrbitRadii = []float64{240, 200, 500, 660, 820} }, config.ErrRingOrder},
		{"zero ring", func(c *Config) { c.OrbitRadii[0] = 0 }, config.ErrNonPositive},
		{"unknown style", func(c *Config) { c.Bodies[2].StyleCategory = "icy" }, config.ErrUnknownStyle},
		{"orphan body", func(c *Config) { c.Bodies[1].OrbitRadius = 361 }, config.ErrOrphanBody},
		{"zero orbit period", func(c *Config) { c.Bodies[0].OrbitPeriodSeconds = 0 }, config.ErrNonPositive},
		{"negative spin period", func(c *Config) { c.Bodies[0].SpinPeriodSeconds = -1 }, config.ErrNonPositive},
		{"zero visual radius", func(c *Config) { c.Bodies[4].VisualRadius = 0 }, config.ErrNonPositive},
		{"zero system period", func(c *Config) { c.SystemPeriodSeconds = 0 }, config.ErrNonPositive},
		{"NaN drift period", func(c *Config) { c.DriftPeriodSeconds = math.NaN() }, config.ErrNonPositive},
		{"duplicate names", func(c *Config) { c.Bodies[3].Name = c.Bodies[0].Name }, config.ErrDuplicateName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			s, err := Compose(cfg, palette.Default())
			if !errors.Is(err, tt.target) {
				t.Errorf("Compose() error = %v, want %v", err, tt.target)
			}
			if !config.IsConfigError(err) {
				t.Errorf("expected configuration error, got %T", err)
			}
			if s != nil {
				t.Error("Compose() returned a partial scene alongside an error")
			}
		})
	}
}

func TestComposeErrorField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies[2].StyleCategory = "icy"

	_, err := Compose(cfg, palette.Default())
	cerr, ok := config.AsError(err)
	if !ok {
		t.Fatalf("expected *config.Error, got %v", err)
	}
	if cerr.Field != "bodies[2].styleCategory" {
		t.Errorf("Field = %q, want bodies[2].styleCategory", cerr.Field)
	}
}

func TestComposeNilRegistry(t *testing.T) {
	s, err := Compose(DefaultConfig(), nil)
	if !errors.Is(err, config.ErrInvalidRegistry) || s != nil {
		t.Errorf("Compose(nil registry) = %v, %v", s, err)
	}
}

func TestComposeUnregisteredStyle(t *testing.T) {
	reg, err := palette.NewRegistry(palette.Glow{StdDeviation: 6}, palette.Entry{
		Category: palette.Rocky,
		Ramp:     palette.Ramp{{Color: "#000000"}, {Offset: 0.6, Color: "#444444"}, {Offset: 1, Color: "#888888"}},
		Halo:     "#ffffff",
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	s, err := Compose(DefaultConfig(), reg)
	if !errors.Is(err, config.ErrUnknownStyle) || s != nil {
		t.Errorf("Compose() = %v, %v; want unknown style", s, err)
	}
}

func TestComposeZeroStars(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StarCount = 0
	s := mustCompose(t, cfg)

	if len(s.Stars()) != 0 {
		t.Errorf("stars = %d, want 0", len(s.Stars()))
	}
}

func TestComposeDerivedHalo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies[3].HasHalo = true
	s := mustCompose(t, cfg)

	b := s.Bodies()[3]
	if b.Halo.RX != 24 || b.Halo.RY != 6 || b.Halo.Opacity != 0.16 {
		t.Errorf("derived halo = %+v, want 24x6 @0.16", b.Halo)
	}
}

func TestComposeDefaultsBodyName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies[1].Name = ""
	s := mustCompose(t, cfg)

	if got := s.Bodies()[1].Name; got != "body-1" {
		t.Errorf("name = %q, want body-1", got)
	}
}

func TestComposeDefaultNameSkipsTakenNames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies[0].Name = "body-1"
	cfg.Bodies[1].Name = ""
	cfg.Bodies[2].Name = "body-1-2"
	s := mustCompose(t, cfg)

	if got := s.Bodies()[0].Name; got != "body-1" {
		t.Errorf("named body = %q, want body-1", got)
	}
	if got := s.Bodies()[1].Name; got != "body-1-3" {
		t.Errorf("generated name = %q, want body-1-3", got)
	}
}

func TestSceneAccessorsCopy(t *testing.T) {
	s := mustCompose(t, DefaultConfig())

	stars := s.Stars()
	stars[0].X = 12345
	amb := s.Ambient()
	amb.Motes[0].X = -1

	if s.Stars()[0].X != 0 {
		t.Error("Stars() aliased internal state")
	}
	if s.Ambient().Motes[0].X != 200 {
		t.Error("Ambient() aliased internal state")
	}
}

func TestComposeIgnoresLaterConfigChanges(t *testing.T) {
	cfg := DefaultConfig()
	s := mustCompose(t, cfg)
	cfg.OrbitRadii[0] = 1
	cfg.Bodies[0].VisualRadius = 1

	if s.Rings()[0].Radius != 240 || s.Bodies()[0].VisualRadius != 14 {
		t.Error("scene changed after its config was mutated")
	}
}

func TestMotesScaleWithViewport(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ViewportWidth = 960
	cfg.ViewportHeight = 540
	s := mustCompose(t, cfg)

	m := s.Ambient().Motes[0]
	if m.X != 100 || m.Y != 60 {
		t.Errorf("mote 0 at (%v, %v), want (100, 60)", m.X, m.Y)
	}
	if c := s.Center(); c.X != 480 || c.Y != 270 {
		t.Errorf("center = %+v, want (480, 270)", c)
	}
}

func TestStyleLookup(t *testing.T) {
	s := mustCompose(t, DefaultConfig())
	if got := s.Style(2).Category; got != palette.Gaseous {
		t.Errorf("Style(2) = %v, want gaseous", got)
	}
}

func TestPrimitiveCount(t *testing.T) {
	s := mustCompose(t, DefaultConfig())
	// 250 stars + 5 rings + 6 motes + glow + core + 5 bodies + 4 halos
	if got := s.PrimitiveCount(); got != 272 {
		t.Errorf("PrimitiveCount() = %d, want 272", got)
	}
	if got := s.LongestPeriod(); got != 240*time.Second {
		t.Errorf("LongestPeriod() = %v, want 240s", got)
	}
}
