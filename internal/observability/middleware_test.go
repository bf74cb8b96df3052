package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"workflow-demo/internal/testutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDMiddlewareSetsHeaderAndContext(t *testing.T) {
	var ctxRequestID string

	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxRequestID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodPost, "/api/calculate", nil)
	w := testutil.ExecuteRequest(r, h)

	headerRequestID := w.Result().Header.Get("X-Request-ID")
	if headerRequestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}

	if _, err := uuid.Parse(headerRequestID); err != nil {
		t.Fatalf("expected header to contain UUID, got %q: %v", headerRequestID, err)
	}

	if ctxRequestID != headerRequestID {
		t.Fatalf("expected context request_id %q to match header %q", ctxRequestID, headerRequestID)
	}
}

func TestRequestIDMiddlewareInboundHeader(t *testing.T) {
	inbound := uuid.NewString()

	tests := []struct {
		name     string
		header   string
		wantKept bool
	}{
		{name: "valid uuid kept", header: inbound, wantKept: true},
		{name: "garbage replaced", header: "not-a-uuid"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set(RequestIDHeader, tc.header)
			w := testutil.ExecuteRequest(r, h)

			got := w.Result().Header.Get(RequestIDHeader)
			if (got == tc.header) != tc.wantKept {
				t.Fatalf("header %q: expected kept=%t, got response id %q", tc.header, tc.wantKept, got)
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("expected UUID response id, got %q", got)
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/health", want: false},
		{path: "/metrics", want: false},
		{path: "/api/calculate", want: true},
		{path: "/", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tc.path, nil)
			got := shouldTraceRequest(r)
			if got != tc.want {
				t.Fatalf("path %q: expected %t, got %t", tc.path, tc.want, got)
			}
		})
	}
}

func TestLoggingMiddlewareWritesCompletionLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	oldLogger := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = oldLogger })

	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	r := httptest.NewRequest(http.MethodPost, "/api/calculate", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-123"))
	_ = testutil.ExecuteRequest(r, h)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Message != "request completed" {
		t.Fatalf("expected message %q, got %q", "request completed", entry.Message)
	}

	fields := entry.ContextMap()
	if fields["method"] != http.MethodPost {
		t.Fatalf("expected method %q, got %#v", http.MethodPost, fields["method"])
	}
	if fields["path"] != "/api/calculate" {
		t.Fatalf("expected path %q, got %#v", "/api/calculate", fields["path"])
	}
	if fields["request_id"] != "req-123" {
		t.Fatalf("expected request_id %q, got %#v", "req-123", fields["request_id"])
	}
	if fields["status"] != int64(http.StatusBadRequest) {
		t.Fatalf("expected status %d, got %#v", http.StatusBadRequest, fields["status"])
	}
}

func TestMetricsMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	matched := httpRequestsTotal.WithLabelValues("/things/{id}", http.MethodGet, "202")
	unmatched := httpRequestsTotal.WithLabelValues(unmatchedRoute, http.MethodGet, "404")
	matchedBefore := promtestutil.ToFloat64(matched)
	unmatchedBefore := promtestutil.ToFloat64(unmatched)

	testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/things/42", nil), r)
	testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/nope", nil), r)

	if got := promtestutil.ToFloat64(matched) - matchedBefore; got != 1 {
		t.Fatalf("expected matched counter to grow by 1, got %v", got)
	}
	if got := promtestutil.ToFloat64(unmatched) - unmatchedBefore; got != 1 {
		t.Fatalf("expected unmatched counter to grow by 1, got %v", got)
	}
}
