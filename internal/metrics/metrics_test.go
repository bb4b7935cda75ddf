package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// TestInitRegistersMetrics verifies Init registers all metric families.
func TestInitRegistersMetrics(t *testing.T) {
	// Not parallel: Init swaps global state.
	reg := prometheus.NewRegistry()

	if err := Init(reg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// Record data so the families appear in Gather output.
	RecordRequest("POST", "/api/recovery/super-admin", "OK")
	RecordRequestDuration("POST", "/api/recovery/super-admin", "OK", 0.02)
	RecordAttempt("phase1", "success")
	RecordAttempt("phase3", "invalid-password-2")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := make(map[string]bool)
	for _, mf := range families {
		found[mf.GetName()] = true
	}

	for _, name := range []string{
		"tfn_recovery_requests_total",
		"tfn_recovery_request_duration_seconds",
		"tfn_recovery_attempts_total",
	} {
		if !found[name] {
			t.Errorf("metric %s not registered, found: %v", name, found)
		}
	}
}

// TestInitDuplicateRegistration verifies a second Init against the same
// registry reports the collision.
func TestInitDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	if err := Init(reg); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := Init(reg); err == nil {
		t.Error("expected duplicate registration error")
	}
}

// TestRecordBeforeInit verifies the record helpers are no-ops before Init.
func TestRecordBeforeInit(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("record helper panicked: %v", r)
		}
	}()

	RecordRequest("GET", "/health", "OK")
	RecordRequestDuration("GET", "/health", "OK", 0.001)
	RecordAttempt("phase2", "wrong-answer-1")
}

// TestMiddlewareRecordsStatus verifies the middleware passes status codes
// through and survives handler panics.
func TestMiddlewareRecordsStatus(t *testing.T) {
	t.Parallel()

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/recovery/super-admin", nil))

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", rec.Code)
	}

	panicky := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec = httptest.NewRecorder()
	panicky.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500 after panic, got %d", rec.Code)
	}
}

// TestNormalizePath verifies numeric segments collapse to :id.
func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected string
	}{
		{"/api/recovery/super-admin", "/api/recovery/super-admin"},
		{"/accounts/123", "/accounts/:id"},
		{"/accounts/123/audit/456", "/accounts/:id/audit/:id"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

// TestHandler verifies the metrics endpoint serves the text exposition.
func TestHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}
