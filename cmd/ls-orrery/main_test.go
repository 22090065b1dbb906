package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/scene"
)

func defaultSettings(t *testing.T) config.Settings {
	t.Helper()
	s, err := config.LoadSettingsFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadSettingsFrom() error = %v", err)
	}
	return s
}

func TestBuildConfigPrecedence(t *testing.T) {
	settings := defaultSettings(t)
	settings.StarCount = 40

	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(path, []byte(`{"star_count": 12, "viewport_width": 800}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		args      []string
		wantStars int
		wantW     float64
	}{
		{"env only", nil, 40, 1920},
		{"flag over env", []string{"-stars", "7"}, 7, 1920},
		{"file over env", []string{"-scene", path}, 12, 800},
		{"flag over file", []string{"-scene", path, "-stars", "3", "-width", "640"}, 3, 640},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args, settings, io.Discard)
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}
			cfg, err := buildConfig(settings, opts)
			if err != nil {
				t.Fatalf("buildConfig() error = %v", err)
			}
			if cfg.StarCount != tt.wantStars {
				t.Errorf("StarCount = %d, want %d", cfg.StarCount, tt.wantStars)
			}
			if cfg.ViewportWidth != tt.wantW {
				t.Errorf("ViewportWidth = %v, want %v", cfg.ViewportWidth, tt.wantW)
			}
		})
	}
}

func TestBuildConfigBadFile(t *testing.T) {
	settings := defaultSettings(t)
	opts, err := parseFlags([]string{"-scene", filepath.Join(t.TempDir(), "missing.json")}, settings, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := buildConfig(settings, opts); !config.IsConfigError(err) {
		t.Errorf("buildConfig() error = %v, want configuration error", err)
	}
}

func TestRunHeadlessJSONToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-json", "-", "-stars", "4"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr %q", code, stderr.String())
	}
	var exp scene.Export
	if err := json.Unmarshal(stdout.Bytes(), &exp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(exp.Stars) != 4 {
		t.Errorf("stars = %d, want 4", len(exp.Stars))
	}
}

func TestRunHeadlessSVGFiles(t *testing.T) {
	dir := t.TempDir()
	animated := filepath.Join(dir, "scene.svg")
	still := filepath.Join(dir, "frame.svg")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-svg", animated}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(-svg) = %d, stderr %q", code, stderr.String())
	}
	if code := run([]string{"-svg", still, "-frame", "60"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(-frame) = %d, stderr %q", code, stderr.String())
	}

	a, err := os.ReadFile(animated)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(a), "<animateTransform") {
		t.Error("animated SVG has no animateTransform")
	}
	f, err := os.ReadFile(still)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(f), "<animateTransform") {
		t.Error("still SVG contains animateTransform")
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty when writing files", stdout.String())
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"bad log level", []string{"-log-level", "loud", "-json", "-"}, 2},
		{"unknown flag", []string{"-nope"}, 2},
		{"negative stars", []string{"-stars", "-1", "-json", "-"}, 1},
		{"bad frame time", []string{"-frame", "soon"}, 1},
		{"NaN frame time", []string{"-frame", "NaN"}, 1},
		{"infinite frame time", []string{"-frame", "+Inf"}, 1},
		{"frame time out of range", []string{"-frame", "1e10"}, 1},
		{"no terminal", nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("run() = %d, want %d (stderr %q)", got, tt.want, stderr.String())
			}
		})
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(-version) = %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "ls-orrery ") {
		t.Errorf("version output = %q", stdout.String())
	}
}
