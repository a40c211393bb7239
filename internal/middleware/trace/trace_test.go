package trace

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	applog "saldo/internal/log"
)

func quietHTTPLogger() *applog.HTTPLogger {
	logger := applog.New(applog.Config{
		Component: applog.ComponentHTTP,
		Handler:   slog.NewTextHandler(io.Discard, nil),
	})
	return applog.NewHTTPLogger(logger)
}

func TestMiddlewareAssignsRequestID(t *testing.T) {
	m := NewMiddleware(nil, quietHTTPLogger())

	var seen string
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.HasPrefix(seen, "req_") {
		t.Errorf("request ID = %q, want req_ prefix", seen)
	}
	if m.TotalRequests() != 1 {
		t.Errorf("TotalRequests() = %d, want 1", m.TotalRequests())
	}
}

func TestGenerateRequestIDUnique(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	if a == b {
		t.Errorf("expected distinct IDs, got %q twice", a)
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestID(r.Context()); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
}
