package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// FakeProvider is an httptest server answering fixed bodies per request path.
// Paths without a route answer 404. Every hit is recorded.
type FakeProvider struct {
	Server *httptest.Server

	mu     sync.Mutex
	routes map[string]route
	hits   []string
}

type route struct {
	status int
	body   string
}

// NewFakeProvider starts a FakeProvider that is closed when the test ends.
func NewFakeProvider(t *testing.T) *FakeProvider {
	t.Helper()
	p := &FakeProvider{routes: make(map[string]route)}
	p.Server = httptest.NewServer(http.HandlerFunc(p.serve))
	t.Cleanup(p.Server.Close)
	return p
}

// URL returns the server root.
func (p *FakeProvider) URL() string {
	return p.Server.URL
}

// Handle answers path with a 200 and body.
func (p *FakeProvider) Handle(path, body string) {
	p.HandleStatus(path, http.StatusOK, body)
}

// HandleStatus answers path with status and body.
func (p *FakeProvider) HandleStatus(path string, status int, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routes[path] = route{status: status, body: body}
}

// Hits returns the request paths served so far, in arrival order.
func (p *FakeProvider) Hits() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.hits...)
}

// HitCount returns how many requests reached path.
func (p *FakeProvider) HitCount(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, h := range p.hits {
		if h == path {
			n++
		}
	}
	return n
}

func (p *FakeProvider) serve(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.hits = append(p.hits, r.URL.Path)
	rt, ok := p.routes[r.URL.Path]
	p.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rt.status)
	_, _ = w.Write([]byte(rt.body))
}
