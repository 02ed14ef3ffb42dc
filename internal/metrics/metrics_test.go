package metrics_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nextelligentia/leadops/internal/health"
	"github.com/nextelligentia/leadops/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newServer(db health.Pinger) http.Handler {
	checker := health.NewChecker(slog.Default(), prometheus.NewRegistry(), health.Dependency{Name: "postgres", Pinger: db})
	return metrics.NewServer(":0", checker).Handler
}

func TestHealthz_AlwaysOK(t *testing.T) {
	w := httptest.NewRecorder()
	newServer(stubPinger{err: errors.New("down")}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestReadyz_DependencyDown_Returns503(t *testing.T) {
	w := httptest.NewRecorder()
	newServer(stubPinger{err: errors.New("down")}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestReadyz_DependencyUp_Returns200(t *testing.T) {
	w := httptest.NewRecorder()
	newServer(stubPinger{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
