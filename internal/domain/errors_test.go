package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{
			name:     "not found",
			err:      NotFound("snap", "no snap with that id"),
			expected: KindNotFound,
		},
		{
			name:     "conflict",
			err:      Conflict("like", "already liked"),
			expected: KindConflict,
		},
		{
			name:     "validation",
			err:      Validation("message too long"),
			expected: KindValidationFailed,
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("handling request: %w", NotFound("snap", "")),
			expected: KindNotFound,
		},
		{
			name:     "plain error defaults to store failure",
			err:      errors.New("connection reset"),
			expected: KindStoreFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.expected {
				t.Errorf("KindOf() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := StoreFailure("snap", cause)

	if !errors.Is(err, cause) {
		t.Error("StoreFailure should wrap its cause")
	}
	if !IsKind(err, KindStoreFailure) {
		t.Error("expected KindStoreFailure")
	}
	if IsKind(err, KindConflict) {
		t.Error("did not expect KindConflict")
	}
}

func TestErrorMessage(t *testing.T) {
	err := NotFound("snap", "no snap with that id")
	want := "NotFound: snap: no snap with that id"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
