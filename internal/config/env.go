package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are the process-level knobs read from the environment.
// Command-line flags override them.
type Settings struct {
	LogLevel       string  `env:"ORRERY_LOG_LEVEL"       envDefault:"info"`
	StarCount      int     `env:"ORRERY_STAR_COUNT"      envDefault:"250"`
	ViewportWidth  float64 `env:"ORRERY_VIEWPORT_WIDTH"  envDefault:"1920"`
	ViewportHeight float64 `env:"ORRERY_VIEWPORT_HEIGHT" envDefault:"1080"`
	SceneFile      string  `env:"ORRERY_SCENE_FILE"`
	HTTPAddr       string  `env:"ORRERY_HTTP_ADDR"       envDefault:":8080"`
	OTelEnabled    bool    `env:"ORRERY_OTEL_ENABLED"    envDefault:"false"`
	OTelEndpoint   string  `env:"ORRERY_OTEL_ENDPOINT"`
}

// LoadSettings reads Settings from the process environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// LoadSettingsFrom reads Settings from an explicit variable map.
func LoadSettingsFrom(vars map[string]string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: vars}); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
