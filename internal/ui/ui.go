// Package ui provides the terminal orrery using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/palette"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/version"
)

// Msg types for Bubble Tea
type (
	// AnimTickMsg advances the frame clock.
	AnimTickMsg time.Time
)

const (
	frameInterval = 80 * time.Millisecond
	starStep      = 50
	minRate       = 0.125
	maxRate       = 16
)

// Model is the root Bubble Tea model. It owns frame advancement; the scene
// itself is immutable and sampled once per tick.
type Model struct {
	// Dependencies
	cfg      scene.Config
	registry *palette.Registry
	scene    *scene.Scene
	log      *logging.Logger

	// UI state
	width     int
	height    int
	ready     bool
	statusMsg string

	// Time state. elapsed is global time since the first tick; each layer
	// maps it through its own clock.
	start   time.Time
	elapsed time.Duration
	clocks  scene.Clocks
	paused  bool
	rate    float64
	frame   scene.Frame

	orrery OrreryModel
}

// New creates the root model from an already composed scene. cfg is kept
// so restarts and star-count changes can recompose.
func New(cfg scene.Config, reg *palette.Registry, s *scene.Scene, log *logging.Logger) Model {
	if log == nil {
		log = logging.Discard()
	}
	m := Model{
		cfg:      cfg.Clone(),
		registry: reg,
		scene:    s,
		log:      log.With("ui"),
		clocks:   scene.Clocks{},
		rate:     1,
		orrery:   NewOrreryModel(),
	}
	m.frame = s.FrameWith(0, m.clocks)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return animTickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ":
			m = m.togglePause()

		case "p":
			m = m.toggleLayer("orbit:" + m.focusedName())

		case "]":
			m = m.setRate(m.rate * 2)
		case "[":
			m = m.setRate(m.rate / 2)

		case "r":
			m = m.recompose(m.cfg)
			m.statusMsg = "Restarted"

		case "+", "=":
			cfg := m.cfg.Clone()
			cfg.StarCount += starStep
			m = m.recompose(cfg)
		case "-":
			cfg := m.cfg.Clone()
			cfg.StarCount -= starStep
			m = m.recompose(cfg)

		default:
			var cmd tea.Cmd
			m.orrery, cmd = m.orrery.Update(msg, len(m.scene.Bodies()))
			cmds = append(cmds, cmd)
		}
		m.frame = m.scene.FrameWith(m.elapsed, m.clocks)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header ~3 lines, footer ~2 lines
		m.orrery = m.orrery.SetSize(msg.Width, msg.Height-5)

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m = m.advance(time.Time(msg))
	}

	return m, tea.Batch(cmds...)
}

// advance moves global time to now and samples a new frame.
func (m Model) advance(now time.Time) Model {
	if m.start.IsZero() {
		m.start = now
	}
	m.elapsed = now.Sub(m.start)
	m.frame = m.scene.FrameWith(m.elapsed, m.clocks)
	return m
}

func (m Model) togglePause() Model {
	m.paused = !m.paused
	clocks := make(scene.Clocks, len(m.clocks))
	for _, l := range m.scene.Layers() {
		c := m.clocks[l.Name]
		if m.paused {
			c = c.Pause(m.elapsed)
		} else {
			c = c.Resume(m.elapsed)
		}
		clocks[l.Name] = c
	}
	m.clocks = clocks
	if m.paused {
		m.statusMsg = "Paused"
	} else {
		m.statusMsg = "Resumed"
	}
	return m
}

// toggleLayer pauses or resumes one layer without touching the others.
func (m Model) toggleLayer(name string) Model {
	clocks := m.cloneClocks()
	c := clocks[name]
	if c.Paused {
		c = c.Resume(m.elapsed)
		m.statusMsg = "Resumed " + name
	} else {
		c = c.Pause(m.elapsed)
		m.statusMsg = "Paused " + name
	}
	clocks[name] = c
	m.clocks = clocks
	return m
}

func (m Model) setRate(rate float64) Model {
	if rate < minRate {
		rate = minRate
	}
	if rate > maxRate {
		rate = maxRate
	}
	clocks := make(scene.Clocks, len(m.clocks))
	for _, l := range m.scene.Layers() {
		clocks[l.Name] = m.clocks[l.Name].WithRate(m.elapsed, rate)
	}
	m.clocks = clocks
	m.rate = rate
	m.statusMsg = fmt.Sprintf("Rate %gx", rate)
	return m
}

// recompose builds a new scene from cfg and restarts time. On error the
// current scene stays and the error is shown.
func (m Model) recompose(cfg scene.Config) Model {
	s, err := scene.Compose(cfg, m.registry)
	if err != nil {
		m.log.Warn("recompose: %v", err)
		m.statusMsg = err.Error()
		return m
	}
	m.cfg = cfg
	m.scene = s
	m.start = time.Time{}
	m.elapsed = 0
	m.clocks = scene.Clocks{}
	m.paused = false
	m.rate = 1
	m.orrery = m.orrery.clampFocus(len(s.Bodies()))
	m.frame = s.FrameWith(0, m.clocks)
	m.statusMsg = fmt.Sprintf("%d stars", len(s.Stars()))
	m.log.Debug("recomposed scene: %d stars, %d bodies", len(s.Stars()), len(s.Bodies()))
	return m
}

func (m Model) cloneClocks() scene.Clocks {
	out := make(scene.Clocks, len(m.clocks))
	for k, v := range m.clocks {
		out[k] = v
	}
	return out
}

func (m Model) focusedName() string {
	bodies := m.scene.Bodies()
	if i := m.orrery.FocusIdx(); i >= 0 && i < len(bodies) {
		return bodies[i].Name
	}
	return ""
}

// Scene returns the scene being shown.
func (m Model) Scene() *scene.Scene { return m.scene }

// Frame returns the most recently sampled frame.
func (m Model) Frame() scene.Frame { return m.frame }

// Elapsed returns global time since the first tick.
func (m Model) Elapsed() time.Duration { return m.elapsed }

// Paused reports whether every layer is paused.
func (m Model) Paused() bool { return m.paused }

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.orrery.View(m.scene, m.frame),
		m.orrery.RenderHUD(m.scene, m.frame),
	)
	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := "  ls-orrery"
	var b strings.Builder
	b.WriteString("\n")

	// Title sweeps across the orbit trace gradient
	stroke := m.registry.OrbitStroke()
	from, _ := colorful.Hex(stroke.From.Color)
	to, _ := colorful.Hex(stroke.To.Color)
	runes := []rune(title)
	for i, r := range runes {
		c := from.BlendLab(to, float64(i)/float64(len(runes)-1)).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Bold(true).Render(string(r)))
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  v%s · celestial backdrop", version.Version)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	state := "▶"
	if m.paused {
		state = "⏸"
	}
	status := accentStyle.Render(state) + dimStyle.Render(fmt.Sprintf(" t=%s rate=%gx", m.elapsed.Round(100*time.Millisecond), m.rate))
	help := dimStyle.Render("space: pause | p: pause orbit | [/]: rate | r: restart | +/-: stars | j/k: focus | z/x: zoom | l: labels | s: stars | q: quit")

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

func animTickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
