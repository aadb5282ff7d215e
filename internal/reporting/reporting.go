// Package reporting forwards unexpected failures to Sentry. Failures that
// belong to the resolution error taxonomy and caller cancellations are
// expected outcomes and are never reported.
package reporting

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Belphemur/StreamResolver/internal/apperrors"
)

var enabled atomic.Bool

// Init configures the Sentry client. An empty dsn leaves reporting disabled.
func Init(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
	if err != nil {
		return err
	}
	enabled.Store(true)
	return nil
}

// Enabled reports whether Init configured a client.
func Enabled() bool {
	return enabled.Load()
}

// ShouldReport reports whether err is an unexpected failure.
func ShouldReport(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if kind, ok := apperrors.KindOf(err); ok && kind != apperrors.KindUnknown {
		return false
	}
	return true
}

// Capture sends err to Sentry, tagged with operation, when it is unexpected.
func Capture(operation string, err error) {
	if !Enabled() || !ShouldReport(err) {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("operation", operation)
		sentry.CaptureException(err)
	})
}

// Flush waits up to timeout for buffered events to be sent.
func Flush(timeout time.Duration) {
	if Enabled() {
		sentry.Flush(timeout)
	}
}
