package config

import "testing"

func TestLoadSettingsFromDefaults(t *testing.T) {
	s, err := LoadSettingsFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadSettingsFrom() error = %v", err)
	}

	if s.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", s.LogLevel)
	}
	if s.StarCount != 250 {
		t.Errorf("StarCount = %d, want 250", s.StarCount)
	}
	if s.ViewportWidth != 1920 || s.ViewportHeight != 1080 {
		t.Errorf("viewport = %vx%v, want 1920x1080", s.ViewportWidth, s.ViewportHeight)
	}
	if s.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", s.HTTPAddr)
	}
	if s.OTelEnabled {
		t.Error("expected tracing off by default")
	}
	if s.OTelEndpoint != "" {
		t.Errorf("OTelEndpoint = %q, want empty", s.OTelEndpoint)
	}
}

func TestLoadSettingsFromOverrides(t *testing.T) {
	s, err := LoadSettingsFrom(map[string]string{
		"ORRERY_LOG_LEVEL":       "debug",
		"ORRERY_STAR_COUNT":      "40",
		"ORRERY_VIEWPORT_WIDTH":  "800",
		"ORRERY_VIEWPORT_HEIGHT": "600",
		"ORRERY_SCENE_FILE":      "/etc/orrery/scene.json",
		"ORRERY_OTEL_ENABLED":    "true",
	})
	if err != nil {
		t.Fatalf("LoadSettingsFrom() error = %v", err)
	}

	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
	if s.StarCount != 40 {
		t.Errorf("StarCount = %d, want 40", s.StarCount)
	}
	if s.ViewportWidth != 800 || s.ViewportHeight != 600 {
		t.Errorf("viewport = %vx%v, want 800x600", s.ViewportWidth, s.ViewportHeight)
	}
	if s.SceneFile != "/etc/orrery/scene.json" {
		t.Errorf("SceneFile = %q", s.SceneFile)
	}
	if !s.OTelEnabled {
		t.Error("expected OTelEnabled true")
	}
}

func TestLoadSettingsFromInvalid(t *testing.T) {
	_, err := LoadSettingsFrom(map[string]string{"ORRERY_STAR_COUNT": "many"})
	if err == nil {
		t.Error("expected error for non-numeric star count")
	}
}
