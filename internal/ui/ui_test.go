package ui

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orrery/internal/palette"
	"github.com/litescript/ls-orrery/internal/scene"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, cfg scene.Config) Model {
	t.Helper()
	s, err := scene.Compose(cfg, palette.Default())
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	return New(cfg, palette.Default(), s, nil)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func tick(m Model, after time.Duration) Model {
	m, _ = update(m, AnimTickMsg(t0.Add(after)))
	return m
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestTickAdvancesTime(t *testing.T) {
	m := newTestModel(t, scene.DefaultConfig())
	m = tick(m, 0)
	if m.Elapsed() != 0 {
		t.Fatalf("Elapsed() = %v after first tick, want 0", m.Elapsed())
	}
	m = tick(m, 60*time.Second)
	if m.Elapsed() != 60*time.Second {
		t.Errorf("Elapsed() = %v, want 60s", m.Elapsed())
	}
	if got := m.Frame().System.Rotate; !approx(got, 90) {
		t.Errorf("system angle = %v, want 90", got)
	}
}

func TestTickSchedulesNextTick(t *testing.T) {
	m := newTestModel(t, scene.DefaultConfig())
	if m.Init() == nil {
		t.Fatal("Init() returned nil command")
	}
	_, cmd := update(m, AnimTickMsg(t0))
	if cmd == nil {
		t.Error("tick did not schedule another tick")
	}
}

func TestPauseFreezesFrame(t *testing.T) {
	m := newTestModel(t, scene.DefaultConfig())
	m = tick(m, 0)
	m = tick(m, 10*time.Second)
	m, _ = update(m, key(" "))
	if !m.Paused() {
		t.Fatal("space did not pause")
	}

	frozen := m.Frame()
	m = tick(m, 30*time.Second)
	if !reflect.DeepEqual(m.Frame().Bodies, frozen.Bodies) || m.Frame().System != frozen.System {
		t.Error("frame changed while paused")
	}
	if got := m.Frame().System.Rotate; !approx(got, 15) {
		t.Errorf("paused system angle = %v, want 15", got)
	}

	// Resuming continues from the frozen time without a jump.
	m, _ = update(m, key(" "))
	m = tick(m, 40*time.Second)
	if got := m.Frame().System.Rotate; !approx(got, 30) {
		t.Errorf("resumed system angle = %v, want 30", got)
	}
}

func TestPauseSingleOrbit(t *testing.T) {
	m := newTestModel(t, scene.DefaultConfig())
	m = tick(m, 0)
	m = tick(m, 10*time.Second)
	m, _ = update(m, key("p")) // focus starts on body 0
	m = tick(m, 20*time.Second)

	f := m.Frame()
	if got := f.Bodies[0].Orbit; !approx(got, 90) {
		t.Errorf("paused orbit angle = %v, want 90 (10s of 40s)", got)
	}
	if got, want := f.Bodies[1].Orbit, 20.0/70*360; !approx(got, want) {
		t.Errorf("other orbit angle = %v, want %v", got, want)
	}
	if got := f.Bodies[0].Spin; !approx(got, 240) {
		t.Errorf("spin of paused orbit = %v, want 240 (20s of 30s)", got)
	}
	if got := f.System.Rotate; !approx(got, 30) {
		t.Errorf("system angle = %v, want 30", got)
	}
}

func TestRateChange(t *testing.T) {
	m := newTestModel(t, scene.DefaultConfig())
	m = tick(m, 0)
	m, _ = update(m, key("]"))
	m = tick(m, 10*time.Second)
	if got := m.Frame().System.Rotate; !approx(got, 30) {
		t.Errorf("system angle at 2x = %v, want 30", got)
	}

	for i := 0; i < 10; i++ {
		m, _ = update(m, key("["))
	}
	if m.rate != minRate {
		t.Errorf("rate = %v, want clamp at %v", m.rate, minRate)
	}
}

func TestRestartRebuildsIdenticalScene(t *testing.T) {
	m := newTestModel(t, scene.DefaultConfig())
	m = tick(m, 0)
	m = tick(m, 10*time.Second)
	m, _ = update(m, key("+"))

	if got := len(m.Scene().Stars()); got != 300 {
		t.Fatalf("stars after + = %d, want 300", got)
	}

	m, _ = update(m, key("r"))
	if m.Elapsed() != 0 {
		t.Errorf("Elapsed() after restart = %v, want 0", m.Elapsed())
	}

	cfg := scene.DefaultConfig()
	cfg.StarCount = 300
	want, err := scene.Compose(cfg, palette.Default())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m.Scene().Export(), want.Export()) {
		t.Error("restarted scene differs from a fresh composition")
	}
	if got := m.Frame().System.Rotate; got != 0 {
		t.Errorf("system angle after restart = %v, want 0", got)
	}
}

func TestStarCountErrorKeepsScene(t *testing.T) {
	cfg := scene.DefaultConfig()
	cfg.StarCount = 0
	m := newTestModel(t, cfg)
	before := m.Scene()

	m, _ = update(m, key("-"))
	if m.Scene() != before {
		t.Error("scene replaced after failed recompose")
	}
	if !strings.Contains(m.statusMsg, "starCount") {
		t.Errorf("statusMsg = %q, want configuration error", m.statusMsg)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, scene.DefaultConfig())
	for _, k := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := update(m, k)
		if cmd == nil {
			t.Fatalf("%q returned nil command", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q did not quit", k.String())
		}
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(t, scene.DefaultConfig())
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before size = %q", got)
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = tick(m, 0)
	view := m.View()
	for _, want := range []string{"ls-orrery", "◆ argent", "☉", "Stars: on (250)"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestViewTooSmall(t *testing.T) {
	m := newTestModel(t, scene.DefaultConfig())
	m, _ = update(m, tea.WindowSizeMsg{Width: 30, Height: 8})
	if !strings.Contains(m.View(), "Terminal too small") {
		t.Error("small terminal not reported")
	}
}

func TestToggleStars(t *testing.T) {
	m := newTestModel(t, scene.DefaultConfig())
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(m, key("s"))
	if m.orrery.ShowStars() {
		t.Fatal("s did not hide stars")
	}
	view := m.View()
	if strings.ContainsRune(view, glyphStarBright) || strings.ContainsRune(view, glyphStarDim) {
		t.Error("star glyphs drawn while hidden")
	}
}

func TestFocusWraps(t *testing.T) {
	m := newTestModel(t, scene.DefaultConfig())
	m, _ = update(m, key("j"))
	if got := m.orrery.FocusIdx(); got != 4 {
		t.Errorf("focus after j = %d, want 4", got)
	}
	m, _ = update(m, key("k"))
	if got := m.orrery.FocusIdx(); got != 0 {
		t.Errorf("focus after k = %d, want 0", got)
	}
}
