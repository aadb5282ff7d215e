// Package client builds the outbound HTTP plumbing shared by the metadata and
// streaming catalog providers.
package client

import (
	"net/http"
	"net/url"
	"time"

	"github.com/Belphemur/StreamResolver/internal/config"
)

const defaultTimeout = 30 * time.Second

// NewHTTPClient creates an *http.Client with proxy, timeout, transparent
// decompression and, when configured, a circuit breaker. Call it once per
// provider so breakers are not shared between unrelated hosts.
func NewHTTPClient(cfg *config.Config) *http.Client {
	logger := config.GetLogger()

	timeout := defaultTimeout
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to preserve its pooling, HTTP/2 and dial settings
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	var transport http.RoundTripper = newCompressionTransport(baseTransport)

	if cfg.CircuitBreaker.FailureThreshold > 0 {
		delay := defaultBreakerDelay
		if cfg.CircuitBreaker.Delay != "" {
			if parsed, err := time.ParseDuration(cfg.CircuitBreaker.Delay); err != nil {
				logger.Warn().Err(err).Str("delay", cfg.CircuitBreaker.Delay).Msg("Invalid circuit breaker delay, using default")
			} else {
				delay = parsed
			}
		}
		transport = newBreakerTransport(transport, uint(cfg.CircuitBreaker.FailureThreshold), delay)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
