// Command ls-orrery renders a procedural celestial backdrop: a starfield,
// orbit rings and animated bodies, as a terminal view, SVG, JSON, an HTTP
// service or a desktop window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/palette"
	"github.com/litescript/ls-orrery/internal/render/svg"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/server"
	"github.com/litescript/ls-orrery/internal/telemetry"
	"github.com/litescript/ls-orrery/internal/timing"
	"github.com/litescript/ls-orrery/internal/ui"
	"github.com/litescript/ls-orrery/internal/version"
	"github.com/litescript/ls-orrery/internal/window"
)

const serviceName = "ls-orrery"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options are the parsed command line.
type options struct {
	logLevel  string
	sceneFile string
	stars     int
	width     float64
	height    float64
	explicit  map[string]bool

	svgPath  string
	frameAt  string
	jsonPath string
	serve    bool
	addr     string
	window   bool
	showVer  bool
}

func parseFlags(args []string, settings config.Settings, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.logLevel, "log-level", settings.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&o.sceneFile, "scene", settings.SceneFile, "JSON scene file overriding the defaults")
	fs.IntVar(&o.stars, "stars", settings.StarCount, "Number of background stars")
	fs.Float64Var(&o.width, "width", settings.ViewportWidth, "Viewport width in scene units")
	fs.Float64Var(&o.height, "height", settings.ViewportHeight, "Viewport height in scene units")
	fs.StringVar(&o.svgPath, "svg", "", "Write the animated SVG to file (use - for stdout)")
	fs.StringVar(&o.frameAt, "frame", "", "Write a still SVG sampled at this many seconds (to -svg path, or stdout)")
	fs.StringVar(&o.jsonPath, "json", "", "Export the scene as JSON to file (use - for stdout)")
	fs.BoolVar(&o.serve, "serve", false, "Serve the scene over HTTP")
	fs.StringVar(&o.addr, "addr", settings.HTTPAddr, "HTTP listen address for -serve")
	fs.BoolVar(&o.window, "window", false, "Open a desktop window")
	fs.BoolVar(&o.showVer, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.explicit = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { o.explicit[f.Name] = true })
	return o, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	opts, err := parseFlags(args, settings, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.showVer {
		fmt.Fprintf(stdout, "%s %s\n", serviceName, version.Version)
		return 0
	}

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	logger := logging.New(level)
	logger.SetOutput(stderr)

	cfg, err := buildConfig(settings, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	reg := palette.Default()
	s, err := scene.Compose(cfg, reg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.Debug("Composed scene: %d stars, %d rings, %d bodies, %d layers",
		len(s.Stars()), len(s.Rings()), len(s.Bodies()), len(s.Layers()))

	switch {
	case opts.serve:
		err = runServer(cfg, reg, settings, opts.addr, logger)
	case opts.window:
		err = window.Run(s, serviceName+" "+version.Version, logger)
	case opts.svgPath != "" || opts.frameAt != "" || opts.jsonPath != "":
		err = runHeadless(s, opts, stdout)
	default:
		err = runTUI(cfg, reg, s, stdout, logger)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// buildConfig layers defaults, environment, scene file and explicit flags,
// later layers winning.
func buildConfig(settings config.Settings, opts options) (scene.Config, error) {
	cfg := scene.DefaultConfig()
	cfg.StarCount = settings.StarCount
	cfg.ViewportWidth = settings.ViewportWidth
	cfg.ViewportHeight = settings.ViewportHeight

	if opts.sceneFile != "" {
		loaded, err := scene.LoadConfigFile(opts.sceneFile, cfg)
		if err != nil {
			return scene.Config{}, err
		}
		cfg = loaded
	}

	if opts.explicit["stars"] || opts.sceneFile == "" {
		cfg.StarCount = opts.stars
	}
	if opts.explicit["width"] || opts.sceneFile == "" {
		cfg.ViewportWidth = opts.width
	}
	if opts.explicit["height"] || opts.sceneFile == "" {
		cfg.ViewportHeight = opts.height
	}
	return cfg, nil
}

// runHeadless writes the requested SVG and JSON outputs.
func runHeadless(s *scene.Scene, opts options, stdout io.Writer) error {
	ctx := context.Background()

	if opts.jsonPath != "" {
		err := writeOutput(opts.jsonPath, stdout, func(w io.Writer) error {
			return s.Export().WriteJSON(w)
		})
		if err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
	}

	svgPath := opts.svgPath
	if opts.frameAt != "" {
		at, err := timing.ParseSeconds(opts.frameAt)
		if err != nil {
			return fmt.Errorf("parse -frame: %w", err)
		}
		if svgPath == "" {
			svgPath = "-"
		}
		err = writeOutput(svgPath, stdout, func(w io.Writer) error {
			return svg.Still(s, at).Render(ctx, w)
		})
		if err != nil {
			return fmt.Errorf("write still SVG: %w", err)
		}
		return nil
	}

	if svgPath != "" {
		err := writeOutput(svgPath, stdout, func(w io.Writer) error {
			return svg.Animated(s).Render(ctx, w)
		})
		if err != nil {
			return fmt.Errorf("write SVG: %w", err)
		}
	}
	return nil
}

// writeOutput writes to stdout for "-" and to a created file otherwise.
func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runServer(cfg scene.Config, reg *palette.Registry, settings config.Settings, addr string, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, settings.OTelEnabled, settings.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Tracing shutdown: %v", err)
		}
	}()

	h, err := server.NewHandler(cfg, reg, logger)
	if err != nil {
		return err
	}
	e := server.New(h, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func runTUI(cfg scene.Config, reg *palette.Registry, s *scene.Scene, stdout io.Writer, logger *logging.Logger) error {
	f, ok := stdout.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return errors.New("stdout is not a terminal; use -svg, -frame, -json, -serve or -window")
	}

	// The alt screen owns the terminal.
	logger.SetOutput(io.Discard)

	p := tea.NewProgram(ui.New(cfg, reg, s, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
