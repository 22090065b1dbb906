package svg

import (
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/palette"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/timing"
)

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// dur formats a period as an SVG clock value. Periods keep full precision
// so the browser cycle matches the sampled one.
func dur(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

func percent(v float64) string { return num(v*100) + "%" }

func viewBox(w, h float64) string { return "0 0 " + num(w) + " " + num(h) }

func translate(x, y float64) string { return "translate(" + num(x) + " " + num(y) + ")" }

func rotation(deg float64) string { return "rotate(" + num(deg) + ")" }

func fillURL(id string) string { return "url(#" + id + ")" }

func driftTransform(t timing.Transform) string {
	return translate(t.TX, t.TY) + " scale(" + num(t.Scale) + ")"
}

// Keyframe value formatters, one per animateTransform type.
func rotateValue(t timing.Transform) string    { return num(t.Rotate) + " 0 0" }
func translateValue(t timing.Transform) string { return num(t.TX) + " " + num(t.TY) }
func scaleValue(t timing.Transform) string     { return num(t.Scale) }

func strokeStops(g palette.StrokeGradient) []palette.Stop {
	return []palette.Stop{g.From, g.To}
}

func poseAt(f *scene.Frame, i int) *orbit.Pose {
	if f == nil {
		return nil
	}
	return &f.Bodies[i]
}

type moteGroup struct {
	opacity float64
	motes   []scene.Mote
}

// moteGroups buckets motes by opacity, in first-seen order.
func moteGroups(motes []scene.Mote) []moteGroup {
	var groups []moteGroup
	at := make(map[float64]int)
	for _, m := range motes {
		i, ok := at[m.Opacity]
		if !ok {
			i = len(groups)
			at[m.Opacity] = i
			groups = append(groups, moteGroup{opacity: m.Opacity})
		}
		groups[i].motes = append(groups[i].motes, m)
	}
	return groups
}
