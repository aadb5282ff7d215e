package reporting

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Belphemur/StreamResolver/internal/apperrors"
)

func TestShouldReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", fmt.Errorf("wrapped: %w", context.Canceled), false},
		{"deadline", context.DeadlineExceeded, false},
		{"taxonomy", apperrors.New(apperrors.KindNoMatchingMedia, "catalog.match", nil), false},
		{"wrapped taxonomy", fmt.Errorf("outer: %w", apperrors.ErrNoPlayableVariant), false},
		{"unknown kind", apperrors.New(apperrors.KindUnknown, "x", errors.New("boom")), true},
		{"plain", errors.New("nil pointer in handler"), true},
	}
	for _, tt := range tests {
		if got := ShouldReport(tt.err); got != tt.want {
			t.Errorf("%s: ShouldReport = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestInit_EmptyDSNDisables(t *testing.T) {
	if err := Init("", "test", ""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Enabled() {
		t.Fatal("Reporting must stay disabled without a DSN")
	}
	// No client configured: both must be no-ops.
	Capture("resolve_movie", errors.New("boom"))
	Flush(10 * time.Millisecond)
}

func TestInit_InvalidDSN(t *testing.T) {
	if err := Init("not a dsn", "test", ""); err == nil {
		t.Fatal("Expected error for invalid DSN")
	}
	if Enabled() {
		t.Fatal("Reporting must stay disabled after a failed Init")
	}
}
