package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/starfield"
)

// LabelMode controls how body labels are displayed.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Only the focused body
	LabelAll                      // Every body
)

func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelFocused:
		return "focus"
	default:
		return "all"
	}
}

// Discrete zoom levels for clean stepping
var zoomLevels = []float64{0.5, 0.75, 1.0, 1.5, 2.0, 3.0}

const defaultZoom = 2 // index of 1.0

// Glyphs. Cells compare against these when deciding what may be overdrawn.
const (
	glyphEmpty      = ' '
	glyphRing       = '·'
	glyphHalo       = '~'
	glyphStarBright = '∗'
	glyphStarDim    = '˙'
	glyphCore       = '☉'
	glyphFocusArrow = '◄'
)

// cell is one character of the canvas with its foreground color.
type cell struct {
	ch    rune
	color string
	bold  bool
}

// OrreryModel renders one frame of a scene as a character canvas.
type OrreryModel struct {
	width     int
	height    int
	focusIdx  int // Index into scene bodies
	zoomLevel int
	labelMode LabelMode
	showStars bool
}

// NewOrreryModel creates a new orrery view model.
func NewOrreryModel() OrreryModel {
	return OrreryModel{
		zoomLevel: defaultZoom,
		labelMode: LabelFocused,
		showStars: true,
	}
}

// SetSize updates the viewport size.
func (m OrreryModel) SetSize(width, height int) OrreryModel {
	m.width = width
	m.height = height
	return m
}

func (m OrreryModel) scale() float64 {
	if m.zoomLevel < 0 || m.zoomLevel >= len(zoomLevels) {
		return 1.0
	}
	return zoomLevels[m.zoomLevel]
}

// Update handles view-local keys. bodies is the current body count.
func (m OrreryModel) Update(msg tea.Msg, bodies int) (OrreryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j":
			if bodies > 0 {
				m.focusIdx = (m.focusIdx - 1 + bodies) % bodies
			}
		case "k":
			if bodies > 0 {
				m.focusIdx = (m.focusIdx + 1) % bodies
			}
		case "z":
			if m.zoomLevel < len(zoomLevels)-1 {
				m.zoomLevel++
			}
		case "x":
			if m.zoomLevel > 0 {
				m.zoomLevel--
			}
		case "0":
			m.zoomLevel = defaultZoom
		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		case "s":
			m.showStars = !m.showStars
		}
	}
	return m, nil
}

// FocusIdx returns the focused body index.
func (m OrreryModel) FocusIdx() int { return m.focusIdx }

// ShowStars returns whether the starfield is visible.
func (m OrreryModel) ShowStars() bool { return m.showStars }

// clampFocus keeps focus valid after the body list changes.
func (m OrreryModel) clampFocus(bodies int) OrreryModel {
	if m.focusIdx >= bodies {
		m.focusIdx = 0
	}
	return m
}

// View renders frame f of s.
func (m OrreryModel) View(s *scene.Scene, f scene.Frame) string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for orrery view"
	}
	return m.renderGrid(m.buildCanvas(s, f))
}

// projection maps scene coordinates onto the canvas. Terminal cells are
// about twice as tall as wide, so y is halved.
type projection struct {
	center geom.Point
	cx, cy int
	scale  float64
}

func (p projection) toScreen(pt geom.Point) (int, int) {
	x := p.cx + int(math.Round((pt.X-p.center.X)*p.scale))
	y := p.cy + int(math.Round((pt.Y-p.center.Y)*p.scale*0.5))
	return x, y
}

func (m OrreryModel) projectionFor(s *scene.Scene, canvasW, canvasH int) projection {
	outer := 1.0
	if rings := s.Rings(); len(rings) > 0 {
		outer = rings[len(rings)-1].Radius
	}
	for _, b := range s.Bodies() {
		if r := b.OrbitRadius + b.VisualRadius; r > outer {
			outer = r
		}
	}
	cx, cy := canvasW/2, canvasH/2
	maxDisplayR := float64(min(cx, cy*2)) * 0.9
	return projection{
		center: s.Center(),
		cx:     cx,
		cy:     cy,
		scale:  maxDisplayR / outer * m.scale(),
	}
}

func newGrid(w, h int) [][]cell {
	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
		for x := range grid[y] {
			grid[y][x] = cell{ch: glyphEmpty}
		}
	}
	return grid
}

// buildCanvas paints background to foreground: stars, rings, halos,
// bodies, central star, labels.
func (m OrreryModel) buildCanvas(s *scene.Scene, f scene.Frame) [][]cell {
	// Reserve space for HUD (2 lines)
	canvasH := m.height - 3
	if canvasH < 5 {
		canvasH = 5
	}
	canvasW := m.width
	grid := newGrid(canvasW, canvasH)
	proj := m.projectionFor(s, canvasW, canvasH)
	reg := s.Registry()

	if m.showStars {
		m.drawStarfield(grid, s)
	}

	ringColor := reg.OrbitStroke().From.Color
	for _, r := range s.Rings() {
		drawCircle(grid, proj.cx, proj.cy, r.Radius*proj.scale, cell{ch: glyphRing, color: ringColor})
	}

	bodies := s.Bodies()
	type labelPos struct {
		x, y    int
		name    string
		focused bool
	}
	var labels []labelPos

	for i, b := range bodies {
		if i >= len(f.Bodies) {
			break
		}
		pose := f.Bodies[i]
		style := s.Style(i)

		if b.HasHalo {
			m.drawHalo(grid, proj, b, pose, style.Halo)
		}

		sx, sy := proj.toScreen(pose.Position)
		if !inBounds(grid, sx, sy) {
			continue
		}
		focused := i == m.focusIdx
		grid[sy][sx] = cell{
			ch:    bodyGlyph(b, focused),
			color: style.ColorAt(0.35).Hex(),
			bold:  focused,
		}
		labels = append(labels, labelPos{x: sx, y: sy, name: b.Name, focused: focused})
	}

	// Central star last so it's always visible
	if inBounds(grid, proj.cx, proj.cy) {
		grid[proj.cy][proj.cx] = cell{ch: glyphCore, color: reg.StarCore(), bold: true}
	}

	for _, l := range labels {
		show := false
		switch m.labelMode {
		case LabelFocused:
			show = l.focused
		case LabelAll:
			show = true
		}
		if show {
			writeLabel(grid, l.x+2, l.y, l.name, l.focused)
		}
	}

	return grid
}

// drawStarfield maps stars from scene space across the whole canvas,
// independent of zoom.
func (m OrreryModel) drawStarfield(grid [][]cell, s *scene.Scene) {
	h := len(grid)
	w := len(grid[0])
	sw, sh := s.Width(), s.Height()

	for _, st := range s.Stars() {
		x := int(st.X / sw * float64(w))
		y := int(st.Y / sh * float64(h))
		if x < 0 || x >= w || y < 0 || y >= h || grid[y][x].ch != glyphEmpty {
			continue
		}
		grid[y][x] = starCell(st)
	}
}

func starCell(st starfield.Star) cell {
	if st.Tier == starfield.TierBright {
		return cell{ch: glyphStarBright, color: "245"}
	}
	return cell{ch: glyphStarDim, color: "238"}
}

// drawHalo traces the body's ring-halo ellipse. The halo turns with the
// orbit but not with the body's spin.
func (m OrreryModel) drawHalo(grid [][]cell, proj projection, b orbit.Body, pose orbit.Pose, color string) {
	if b.Halo.RX*proj.scale < 2 {
		return
	}
	turn := geom.Rotate(pose.System + pose.Orbit)
	steps := int(2 * math.Pi * b.Halo.RX * proj.scale)
	if steps < 8 {
		steps = 8
	}
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		local := geom.Point{X: b.Halo.RX * math.Cos(theta), Y: b.Halo.RY * math.Sin(theta)}
		x, y := proj.toScreen(pose.Position.Add(turn.Apply(local)))
		if inBounds(grid, x, y) && (grid[y][x].ch == glyphEmpty || grid[y][x].ch == glyphRing) {
			grid[y][x] = cell{ch: glyphHalo, color: color}
		}
	}
}

// drawCircle draws a parametric circle of radius r cells, aspect
// corrected, onto cells that are still empty.
func drawCircle(grid [][]cell, cx, cy int, r float64, c cell) {
	if r < 1 {
		return
	}

	steps := int(2 * math.Pi * r)
	if steps < 8 {
		steps = 8
	}
	if steps > 720 {
		steps = 720
	}

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Round(r*math.Cos(theta)))
		y := cy - int(math.Round(r*math.Sin(theta)*0.5))
		if inBounds(grid, x, y) && (grid[y][x].ch == glyphEmpty || isStar(grid[y][x].ch)) {
			grid[y][x] = c
		}
	}
}

func writeLabel(grid [][]cell, x, y int, name string, focused bool) {
	if y < 0 || y >= len(grid) {
		return
	}
	text := name
	color := "249"
	if focused {
		text = string(glyphFocusArrow) + " " + name
		color = "229"
	}
	for i, r := range []rune(text) {
		cx := x + i
		if cx < 0 || cx >= len(grid[y]) {
			break
		}
		ch := grid[y][cx].ch
		if ch == glyphEmpty || ch == glyphRing || isStar(ch) {
			grid[y][cx] = cell{ch: r, color: color, bold: focused}
		}
	}
}

func bodyGlyph(b orbit.Body, focused bool) rune {
	if b.VisualRadius >= 25 {
		if focused {
			return '◉'
		}
		return '○'
	}
	if focused {
		return '●'
	}
	return '•'
}

func isStar(ch rune) bool {
	return ch == glyphStarBright || ch == glyphStarDim
}

func inBounds(grid [][]cell, x, y int) bool {
	return y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y])
}

func (m OrreryModel) renderGrid(grid [][]cell) string {
	var b strings.Builder
	styles := map[cell]lipgloss.Style{}

	for _, row := range grid {
		for _, c := range row {
			if c.ch == glyphEmpty {
				b.WriteRune(c.ch)
				continue
			}
			key := cell{color: c.color, bold: c.bold}
			style, ok := styles[key]
			if !ok {
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(c.color)).Bold(c.bold)
				styles[key] = style
			}
			b.WriteString(style.Render(string(c.ch)))
		}
		b.WriteRune('\n')
	}

	return b.String()
}

// RenderHUD describes the focused body and the view settings.
func (m OrreryModel) RenderHUD(s *scene.Scene, f scene.Frame) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	bodies := s.Bodies()
	if m.focusIdx >= 0 && m.focusIdx < len(bodies) && m.focusIdx < len(f.Bodies) {
		body := bodies[m.focusIdx]
		pose := f.Bodies[m.focusIdx]
		b.WriteString(headerStyle.Render("◆ " + body.Name))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Style: "))
		b.WriteString(valueStyle.Render(body.Style.String()))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Orbit: "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%5.1f° / %v", geom.NormalizeDeg(pose.Orbit), body.OrbitPeriod)))
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Spin: "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%5.1f° / %v", geom.NormalizeDeg(pose.Spin), body.SpinPeriod)))
	} else {
		b.WriteString(headerStyle.Render("☉ no bodies"))
	}
	b.WriteString("\n")

	starsName := "off"
	if m.showStars {
		starsName = "on"
	}
	b.WriteString(labelStyle.Render("Zoom: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2gx", m.scale())))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Labels: "))
	b.WriteString(valueStyle.Render(m.labelMode.String()))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Stars: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%s (%d)", starsName, len(s.Stars()))))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("System: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%5.1f°", geom.NormalizeDeg(f.System.Rotate))))

	return b.String()
}
