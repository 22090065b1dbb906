// Package svg renders a scene as SVG through templ components.
//
// Animated output hands every layer to the browser as a declarative
// animateTransform, so the browser's compositor owns time. Still output
// samples the scene once at a given instant.
package svg

//go:generate templ generate

import (
	"time"

	"github.com/a-h/templ"

	"github.com/litescript/ls-orrery/internal/scene"
)

// ContentType is the media type of rendered documents.
const ContentType = "image/svg+xml"

// Animated returns a standalone SVG document whose layers loop forever.
func Animated(s *scene.Scene) templ.Component {
	return document(s, nil)
}

// Still returns a standalone SVG document frozen at elapsed time t.
func Still(s *scene.Scene, t time.Duration) templ.Component {
	f := s.Frame(t)
	return document(s, &f)
}

// Background wraps the animated document in a full-bleed, non-interactive
// container that sits beneath page content.
func Background(s *scene.Scene) templ.Component {
	return background(s)
}
