package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Belphemur/StreamResolver/internal/config"
)

const defaultPort = 9090

// NewHTTPServer exposes gatherer at /metrics and a liveness probe at /healthz.
// A nil gatherer serves the default registry. Collector failures are logged and
// the families that did gather are still served.
func NewHTTPServer(address string, port int, gatherer prometheus.Gatherer) *http.Server {
	if port == 0 {
		port = defaultPort
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog:      promLogger{logger: config.GetLogger().With().Str("component", "metrics").Logger()},
		ErrorHandling: promhttp.ContinueOnError,
	}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", address, port),
		Handler: mux,
	}
}

// promLogger adapts zerolog to promhttp.Logger.
type promLogger struct {
	logger zerolog.Logger
}

func (p promLogger) Println(v ...any) {
	p.logger.Error().Msg(fmt.Sprint(v...))
}
