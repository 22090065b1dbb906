// Package server exposes scenes over HTTP with Echo.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/palette"
	"github.com/litescript/ls-orrery/internal/render/svg"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/telemetry"
	"github.com/litescript/ls-orrery/internal/timing"
	"github.com/litescript/ls-orrery/internal/version"
)

// MaxStars bounds the star count a query may request.
const MaxStars = 10000

const codeInvalidQuery = "invalid_query"

// Handler serves one base scene plus per-request variants.
type Handler struct {
	base     scene.Config
	registry *palette.Registry
	scene    *scene.Scene
	log      *logging.Logger
}

// NewHandler composes the base scene up front so a bad configuration
// fails at startup rather than on the first request.
func NewHandler(base scene.Config, reg *palette.Registry, log *logging.Logger) (*Handler, error) {
	s, err := scene.Compose(base, reg)
	if err != nil {
		return nil, fmt.Errorf("compose base scene: %w", err)
	}
	return &Handler{
		base:     base.Clone(),
		registry: reg,
		scene:    s,
		log:      log,
	}, nil
}

// Register mounts the routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/scene.svg", h.SceneSVG)
	e.GET("/frame.svg", h.FrameSVG)
	e.GET("/scene.json", h.SceneJSON)
}

// New returns an Echo instance with middleware and routes installed.
func New(h *Handler, log *logging.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetOutput(log.With("echo").Writer(logging.LevelWarn))

	e.Use(RequestIDMiddleware())
	e.Use(TracingMiddleware())
	e.Use(LoggingMiddleware(log.With("http")))

	h.Register(e)
	return e
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: version.Version,
		Stars:   len(h.scene.Stars()),
		Bodies:  len(h.scene.Bodies()),
	})
}

func (h *Handler) SceneSVG(c echo.Context) error {
	s, err := h.sceneFor(c)
	if err != nil {
		return h.mapError(c, err)
	}
	return serveComponent(c, svg.Animated(s))
}

func (h *Handler) FrameSVG(c echo.Context) error {
	s, err := h.sceneFor(c)
	if err != nil {
		return h.mapError(c, err)
	}

	var at time.Duration
	if raw := c.QueryParam("t"); raw != "" {
		at, err = timing.ParseSeconds(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:  codeInvalidQuery,
				Field: "t",
				Error: "t must be a finite number of seconds",
			})
		}
	}
	return serveComponent(c, svg.Still(s, at))
}

func (h *Handler) SceneJSON(c echo.Context) error {
	s, err := h.sceneFor(c)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, s.Export())
}

func serveComponent(c echo.Context, comp templ.Component) error {
	return echo.WrapHandler(templ.Handler(comp, templ.WithContentType(svg.ContentType)))(c)
}

// sceneFor returns the base scene, or a freshly composed one when the
// request overrides stars, w or h.
func (h *Handler) sceneFor(c echo.Context) (*scene.Scene, error) {
	stars, w, ht := c.QueryParam("stars"), c.QueryParam("w"), c.QueryParam("h")
	if stars == "" && w == "" && ht == "" {
		return h.scene, nil
	}

	cfg := h.base.Clone()
	if stars != "" {
		n, err := strconv.Atoi(stars)
		if err != nil {
			return nil, config.Wrap(config.CodeInvalidCount, "stars", "not an integer", err)
		}
		if n > MaxStars {
			return nil, config.Errorf(config.CodeInvalidCount, "stars", "at most %d stars, got %d", MaxStars, n)
		}
		cfg.StarCount = n
	}
	if w != "" {
		v, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return nil, config.Wrap(config.CodeInvalidDimensions, "w", "not a number", err)
		}
		cfg.ViewportWidth = v
	}
	if ht != "" {
		v, err := strconv.ParseFloat(ht, 64)
		if err != nil {
			return nil, config.Wrap(config.CodeInvalidDimensions, "h", "not a number", err)
		}
		cfg.ViewportHeight = v
	}

	return h.compose(c.Request().Context(), cfg)
}

func (h *Handler) compose(ctx context.Context, cfg scene.Config) (*scene.Scene, error) {
	_, span := telemetry.Tracer().Start(ctx, "scene.Compose")
	defer span.End()
	span.SetAttributes(
		attribute.Int("scene.stars", cfg.StarCount),
		attribute.Float64("scene.width", cfg.ViewportWidth),
		attribute.Float64("scene.height", cfg.ViewportHeight),
	)

	s, err := scene.Compose(cfg, h.registry)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s, nil
}

func (h *Handler) mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	var ce *config.Error
	if errors.As(err, &ce) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:  string(ce.Code),
			Field: ce.Field,
			Error: ce.Error(),
		})
	}
	h.log.Error("internal error request_id=%s: %v", requestID, err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "internal", Error: "internal error"})
}
