package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/failsafe-go/failsafe-go/failsafehttp"
)

const defaultBreakerDelay = 30 * time.Second

// newBreakerTransport stops calling a provider after threshold consecutive
// transport errors or 5xx responses, until delay has elapsed. Requests are
// never retried; an open breaker fails fast with circuitbreaker.ErrOpen.
func newBreakerTransport(base http.RoundTripper, threshold uint, delay time.Duration) http.RoundTripper {
	breaker := circuitbreaker.NewBuilder[*http.Response]().
		HandleIf(isProviderFailure).
		WithFailureThreshold(threshold).
		WithDelay(delay).
		Build()

	return failsafehttp.NewRoundTripper(base, breaker)
}

// isProviderFailure ignores the caller's own cancellation and deadline, so one
// abandoned request cannot open the breaker for everyone else.
func isProviderFailure(resp *http.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	return resp != nil && resp.StatusCode >= http.StatusInternalServerError
}
