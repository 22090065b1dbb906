package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/starfield"
)

// Logical viewport used by the default configuration.
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080

	DefaultSystemPeriodSeconds = 240
	DefaultDriftPeriodSeconds  = 180
)

// Config is everything a Scene is built from. It is validated as a whole
// by Compose.
type Config struct {
	StarCount           int        `json:"star_count"`
	ViewportWidth       float64    `json:"viewport_width"`
	ViewportHeight      float64    `json:"viewport_height"`
	OrbitRadii          []float64  `json:"orbit_radii"`
	Bodies              []BodySpec `json:"bodies"`
	SystemPeriodSeconds float64    `json:"system_period_seconds"`
	DriftPeriodSeconds  float64    `json:"drift_period_seconds"`
}

// BodySpec configures one body. When HasHalo is set and both halo radii
// are zero the halo is sized from the visual radius.
type BodySpec struct {
	Name               string  `json:"name,omitempty"`
	OrbitRadius        float64 `json:"orbit_radius"`
	VisualRadius       float64 `json:"visual_radius"`
	StyleCategory      string  `json:"style_category"`
	OrbitPeriodSeconds float64 `json:"orbit_period_seconds"`
	SpinPeriodSeconds  float64 `json:"spin_period_seconds"`
	HasHalo            bool    `json:"has_halo"`
	HaloRX             float64 `json:"halo_rx,omitempty"`
	HaloRY             float64 `json:"halo_ry,omitempty"`
	HaloOpacity        float64 `json:"halo_opacity,omitempty"`
}

// DefaultConfig returns the five-ring default scene.
func DefaultConfig() Config {
	bodies := orbit.DefaultBodies()
	specs := make([]BodySpec, len(bodies))
	for i, b := range bodies {
		specs[i] = BodySpec{
			Name:               b.Name,
			OrbitRadius:        b.OrbitRadius,
			VisualRadius:       b.VisualRadius,
			StyleCategory:      b.Style.String(),
			OrbitPeriodSeconds: b.OrbitPeriod.Seconds(),
			SpinPeriodSeconds:  b.SpinPeriod.Seconds(),
			HasHalo:            b.HasHalo,
			HaloRX:             b.Halo.RX,
			HaloRY:             b.Halo.RY,
			HaloOpacity:        b.Halo.Opacity,
		}
	}
	return Config{
		StarCount:           starfield.DefaultCount,
		ViewportWidth:       DefaultWidth,
		ViewportHeight:      DefaultHeight,
		OrbitRadii:          orbit.DefaultRadii(),
		Bodies:              specs,
		SystemPeriodSeconds: DefaultSystemPeriodSeconds,
		DriftPeriodSeconds:  DefaultDriftPeriodSeconds,
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.OrbitRadii = append([]float64(nil), c.OrbitRadii...)
	c.Bodies = append([]BodySpec(nil), c.Bodies...)
	return c
}

// fileConfig distinguishes "absent" from zero for scalar overrides.
type fileConfig struct {
	StarCount           *int       `json:"star_count"`
	ViewportWidth       *float64   `json:"viewport_width"`
	ViewportHeight      *float64   `json:"viewport_height"`
	OrbitRadii          []float64  `json:"orbit_radii"`
	Bodies              []BodySpec `json:"bodies"`
	SystemPeriodSeconds *float64   `json:"system_period_seconds"`
	DriftPeriodSeconds  *float64   `json:"drift_period_seconds"`
}

// LoadConfig decodes a JSON scene file over base. Fields absent from the
// file keep base's values; present lists replace base's lists.
func LoadConfig(r io.Reader, base Config) (Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var f fileConfig
	if err := dec.Decode(&f); err != nil {
		return Config{}, config.Wrap(config.CodeInvalidFile, "", "decode scene file", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Config{}, config.Errorf(config.CodeInvalidFile, "", "unexpected content after scene object")
	}

	cfg := base.Clone()
	if f.StarCount != nil {
		cfg.StarCount = *f.StarCount
	}
	if f.ViewportWidth != nil {
		cfg.ViewportWidth = *f.ViewportWidth
	}
	if f.ViewportHeight != nil {
		cfg.ViewportHeight = *f.ViewportHeight
	}
	if f.OrbitRadii != nil {
		cfg.OrbitRadii = f.OrbitRadii
	}
	if f.Bodies != nil {
		cfg.Bodies = f.Bodies
	}
	if f.SystemPeriodSeconds != nil {
		cfg.SystemPeriodSeconds = *f.SystemPeriodSeconds
	}
	if f.DriftPeriodSeconds != nil {
		cfg.DriftPeriodSeconds = *f.DriftPeriodSeconds
	}
	return cfg, nil
}

// LoadConfigFile reads a JSON scene file from path.
func LoadConfigFile(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, config.Wrap(config.CodeInvalidFile, path, "open scene file", err)
	}
	defer f.Close()

	cfg, err := LoadConfig(f, base)
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}
