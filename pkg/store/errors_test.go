package store

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorWrapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{
			name:     "not found carries kind and id",
			err:      NotFound("entity", "e1"),
			sentinel: ErrNotFound,
			contains: `entity "e1"`,
		},
		{
			name:     "unsupported carries backend and op",
			err:      Unsupported("badger", "SearchEntities"),
			sentinel: ErrUnsupported,
			contains: "badger does not implement SearchEntities",
		},
		{
			name:     "transient keeps cause text",
			err:      Transient("create entity", errors.New("connection refused")),
			sentinel: ErrTransient,
			contains: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Fatalf("expected errors.Is match for %v", tt.sentinel)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Fatalf("expected %q in %q", tt.contains, tt.err.Error())
			}
		})
	}
}

func TestTransientKeepsCauseInChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := Transient("create entity", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to match the cause, got %v", err)
	}
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected errors.Is to match ErrTransient, got %v", err)
	}
}
