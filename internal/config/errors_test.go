package config

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorIsMatchesCode(t *testing.T) {
	err := Errorf(CodeOrphanBody, "bodies[0].orbitRadius", "no ring with radius %v", 300.0)

	if !errors.Is(err, ErrOrphanBody) {
		t.Error("expected errors.Is to match ErrOrphanBody")
	}
	if errors.Is(err, ErrUnknownStyle) {
		t.Error("errors.Is should not match a different code")
	}

	wrapped := fmt.Errorf("compose scene: %w", err)
	if !errors.Is(wrapped, ErrOrphanBody) {
		t.Error("expected wrapped error to still match by code")
	}
}

func TestErrorMessageIncludesField(t *testing.T) {
	err := Errorf(CodeNonPositive, "viewportWidth", "must be positive, got %v", -1.0)
	msg := err.Error()

	if !strings.Contains(msg, "viewportWidth") {
		t.Errorf("message %q should mention the field", msg)
	}
	if !strings.HasPrefix(msg, "config: ") {
		t.Errorf("message %q should carry the config prefix", msg)
	}

	bare := &Error{Code: CodeInvalidRegistry, Message: "empty"}
	if bare.Error() != "config: empty" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "config: empty")
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(CodeInvalidFile, "scene.json", "decode scene file", cause)

	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
	if !errors.Is(err, ErrInvalidFile) {
		t.Error("expected code match on wrapped file error")
	}
}

func TestIsConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"direct", Errorf(CodeRingOrder, "orbitRadii[1]", "not increasing"), true},
		{"wrapped", fmt.Errorf("outer: %w", Errorf(CodeInvalidCount, "starCount", "negative")), true},
		{"plain", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfigError(tt.err); got != tt.want {
				t.Errorf("IsConfigError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAsError(t *testing.T) {
	err := fmt.Errorf("outer: %w", Errorf(CodeUnknownStyle, "bodies[1].styleCategory", "unknown %q", "icy"))

	cerr, ok := AsError(err)
	if !ok {
		t.Fatal("expected AsError to find the configuration error")
	}
	if cerr.Code != CodeUnknownStyle {
		t.Errorf("Code = %q, want %q", cerr.Code, CodeUnknownStyle)
	}
	if cerr.Field != "bodies[1].styleCategory" {
		t.Errorf("Field = %q, want bodies[1].styleCategory", cerr.Field)
	}
}
