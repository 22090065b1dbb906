package palette

import (
	"fmt"
	"sort"

	"github.com/litescript/ls-orrery/internal/config"
)

// Registry maps categories to their visual definitions. It has no mutating
// methods and is safe to share between any number of scenes.
type Registry struct {
	entries    map[Category]Entry
	glow       Glow
	starGlow   Ramp
	starCore   string
	orbitTrace StrokeGradient
}

var defaultRegistry = mustDefault()

// Default returns the process-wide registry, built once at package init.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry builds a registry from entries. Duplicate categories and
// malformed colors are rejected.
func NewRegistry(glow Glow, entries ...Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, config.Errorf(config.CodeInvalidRegistry, "entries", "registry needs at least one entry")
	}
	if glow.StdDeviation < 0 {
		return nil, config.Errorf(config.CodeInvalidRegistry, "glow.stdDeviation", "must not be negative, got %v", glow.StdDeviation)
	}

	r := &Registry{
		entries:  make(map[Category]Entry, len(entries)),
		glow:     glow,
		starCore: "#fff8e1",
		starGlow: Ramp{
			{Offset: 0, Color: "#ffffff", Opacity: 0.9},
			{Offset: 0.4, Color: "#ffd27d", Opacity: 0.65},
			{Offset: 1, Color: "#ffb347", Opacity: 0},
		},
		orbitTrace: StrokeGradient{
			From: Stop{Offset: 0, Color: "#06b6d4", Opacity: 0.15},
			To:   Stop{Offset: 1, Color: "#8b5cf6", Opacity: 0.15},
		},
	}

	for i, e := range entries {
		field := fmt.Sprintf("entries[%d]", i)
		if _, dup := r.entries[e.Category]; dup {
			return nil, config.Errorf(config.CodeInvalidRegistry, field, "duplicate category %s", e.Category)
		}
		for j, s := range e.Ramp {
			if !validHex(s.Color) {
				return nil, config.Errorf(config.CodeInvalidRegistry, fmt.Sprintf("%s.ramp[%d]", field, j), "bad color %q", s.Color)
			}
		}
		if !validHex(e.Halo) {
			return nil, config.Errorf(config.CodeInvalidRegistry, field+".halo", "bad color %q", e.Halo)
		}
		r.entries[e.Category] = e
	}
	return r, nil
}

func mustDefault() *Registry {
	focus := Focus{CX: 0.35, CY: 0.35, R: 0.7}
	r, err := NewRegistry(
		Glow{StdDeviation: 6, Margin: 0.5},
		Entry{
			Category: Metallic,
			Ramp:     solidRamp("#d3e5ff", "#7aa3ff", "#1e3a8a"),
			Focus:    focus,
			Halo:     "#93c5fd",
			Glow:     true,
		},
		Entry{
			Category: Rocky,
			Ramp:     solidRamp("#f5e0c3", "#9a7b5f", "#4b3b2e"),
			Focus:    focus,
			Halo:     "#f59e0b",
			Glow:     true,
		},
		Entry{
			Category: Gaseous,
			Ramp:     solidRamp("#c9fff5", "#22d3ee", "#0e7490"),
			Focus:    focus,
			Halo:     "#67e8f9",
			Glow:     true,
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}

func solidRamp(core, mid, rim string) Ramp {
	return Ramp{
		{Offset: 0, Color: core, Opacity: 1},
		{Offset: 0.6, Color: mid, Opacity: 1},
		{Offset: 1, Color: rim, Opacity: 1},
	}
}

// Entry returns the definition for c.
func (r *Registry) Entry(c Category) (Entry, bool) {
	e, ok := r.entries[c]
	return e, ok
}

// Lookup resolves a category name. Unknown or unregistered names are a
// configuration error; there is no fallback.
func (r *Registry) Lookup(name string) (Entry, error) {
	c, err := ParseCategory(name)
	if err != nil {
		return Entry{}, err
	}
	e, ok := r.entries[c]
	if !ok {
		return Entry{}, config.Errorf(config.CodeUnknownStyle, "styleCategory", "category %q is not registered", name)
	}
	return e, nil
}

// Entries returns all definitions ordered by category.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Glow returns the shared glow filter definition.
func (r *Registry) Glow() Glow { return r.glow }

// StarGlow returns the central star's glow ramp.
func (r *Registry) StarGlow() Ramp { return r.starGlow }

// StarCore returns the central star's core color.
func (r *Registry) StarCore() string { return r.starCore }

// OrbitStroke returns the ring stroke gradient.
func (r *Registry) OrbitStroke() StrokeGradient { return r.orbitTrace }
