package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func getCounterVecValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func getHistogramCount(hv *prometheus.HistogramVec, labels ...string) uint64 {
	o, err := hv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := o.(prometheus.Metric).Write(&m); err != nil {
		return 0
	}
	return m.GetHistogram().GetSampleCount()
}

func TestObserveResolution(t *testing.T) {
	beforeCount := getCounterVecValue(ResolutionsTotal, "resolve_movie", "success")
	beforeSamples := getHistogramCount(ResolutionDuration, "resolve_movie")

	ObserveResolution("resolve_movie", "success", time.Now().Add(-time.Second))

	if got := getCounterVecValue(ResolutionsTotal, "resolve_movie", "success") - beforeCount; got != 1 {
		t.Errorf("Expected counter to increment by 1, got diff %.0f", got)
	}
	if got := getHistogramCount(ResolutionDuration, "resolve_movie") - beforeSamples; got != 1 {
		t.Errorf("Expected one histogram sample, got %d", got)
	}
}

func TestObserveResolution_OutcomesAreSeparate(t *testing.T) {
	before := getCounterVecValue(ResolutionsTotal, "resolve_episode", "NoMatchingMedia")
	beforeOK := getCounterVecValue(ResolutionsTotal, "resolve_episode", "success")

	ObserveResolution("resolve_episode", "NoMatchingMedia", time.Now())

	if got := getCounterVecValue(ResolutionsTotal, "resolve_episode", "NoMatchingMedia") - before; got != 1 {
		t.Errorf("Expected failure counter to increment by 1, got diff %.0f", got)
	}
	if got := getCounterVecValue(ResolutionsTotal, "resolve_episode", "success"); got != beforeOK {
		t.Errorf("Success counter changed: %.0f -> %.0f", beforeOK, got)
	}
}

func TestCandidateChecksTotal(t *testing.T) {
	for _, result := range []string{CandidateMatch, CandidateMismatch, CandidateError} {
		before := getCounterVecValue(CandidateChecksTotal, result)
		CandidateChecksTotal.WithLabelValues(result).Inc()
		if got := getCounterVecValue(CandidateChecksTotal, result) - before; got != 1 {
			t.Errorf("%s: expected increment by 1, got diff %.0f", result, got)
		}
	}
}

func TestNewHTTPServer_ServesMetrics(t *testing.T) {
	srv := NewHTTPServer("127.0.0.1", 0, nil)
	if srv.Addr != "127.0.0.1:9090" {
		t.Errorf("Addr = %q, want default port 9090", srv.Addr)
	}

	ObserveResolution("list_streams", "success", time.Now())

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "streamresolver_resolutions_total") {
		t.Error("Expected resolution counter in /metrics output")
	}
}

func TestNewHTTPServer_CustomGathererAndHealth(t *testing.T) {
	reg := prometheus.NewRegistry()
	probes := prometheus.NewCounter(prometheus.CounterOpts{Name: "streamresolver_test_probes_total", Help: "test"})
	reg.MustRegister(probes)
	probes.Inc()

	srv := NewHTTPServer("0.0.0.0", 9191, reg)
	if srv.Addr != "0.0.0.0:9191" {
		t.Errorf("Addr = %q", srv.Addr)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "streamresolver_test_probes_total 1") {
		t.Errorf("Expected custom registry output, got:\n%s", body)
	}
	if strings.Contains(string(body), "streamresolver_resolutions_total") {
		t.Error("Default registry leaked into custom gatherer output")
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /metrics = %d, want 405", rec.Code)
	}
}
