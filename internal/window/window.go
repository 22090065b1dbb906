// Package window hosts a scene in a desktop window with Ebitengine.
package window

import (
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
)

// Game drives frame advancement for one scene. Time comes from now so
// tests can step it.
type Game struct {
	scene *scene.Scene
	log   *logging.Logger
	now   func() time.Time

	start   time.Time
	elapsed time.Duration
	clocks  scene.Clocks
	paused  bool
	opts    Options
	frame   scene.Frame
	hud     bool
}

// NewGame creates a game for s.
func NewGame(s *scene.Scene, log *logging.Logger) *Game {
	if log == nil {
		log = logging.Discard()
	}
	return &Game{
		scene:  s,
		log:    log.With("window"),
		now:    time.Now,
		clocks: scene.Clocks{},
		frame:  s.FrameWith(0, scene.Clocks{}),
		hud:    true,
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.opts.HideStars = !g.opts.HideStars
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.opts.HideAmbient = !g.opts.HideAmbient
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.hud = !g.hud
	}
	g.advance()
	return nil
}

// advance samples the frame for the current time.
func (g *Game) advance() {
	now := g.now()
	if g.start.IsZero() {
		g.start = now
	}
	g.elapsed = now.Sub(g.start)
	g.frame = g.scene.FrameWith(g.elapsed, g.clocks)
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	clocks := make(scene.Clocks, len(g.clocks))
	for _, l := range g.scene.Layers() {
		c := g.clocks[l.Name]
		if g.paused {
			c = c.Pause(g.elapsed)
		} else {
			c = c.Resume(g.elapsed)
		}
		clocks[l.Name] = c
	}
	g.clocks = clocks
	g.log.Debug("paused=%t at %v", g.paused, g.elapsed)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	Paint(imageSurface{screen}, g.scene, g.frame, g.opts)
	if g.hud {
		state := "running"
		if g.paused {
			state = "paused"
		}
		ebitenutil.DebugPrintAt(screen, "t="+g.elapsed.Round(time.Second).String()+" "+state+"  space: pause  s: stars  a: ambient  h: hud  q: quit", 12, 12)
	}
}

// Layout implements ebiten.Game. The logical screen is the scene
// viewport; Ebitengine scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.scene.Width()), int(g.scene.Height())
}

// Run opens a window and blocks until it is closed.
func Run(s *scene.Scene, title string, log *logging.Logger) error {
	ebiten.SetWindowSize(int(s.Width())/2, int(s.Height())/2)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewGame(s, log)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// imageSurface adapts an ebiten image to Surface.
type imageSurface struct {
	img *ebiten.Image
}

func (s imageSurface) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s imageSurface) FillCircle(cx, cy, r float64, c color.Color) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c, true)
}

func (s imageSurface) StrokeCircle(cx, cy, r, width float64, c color.Color) {
	vector.StrokeCircle(s.img, float32(cx), float32(cy), float32(r), float32(width), c, true)
}

func (s imageSurface) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	vector.StrokeLine(s.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}
