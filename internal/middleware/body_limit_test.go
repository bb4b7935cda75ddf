package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestMaxBodySize verifies reads up to the limit succeed and reads beyond
// it fail.
func TestMaxBodySize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		limit         int64
		bodySize      int
		shouldSucceed bool
	}{
		{"under limit", 1024, 512, true},
		{"at limit", 1024, 1024, true},
		{"over limit", 1024, 1025, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var readErr error
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, readErr = io.ReadAll(r.Body)
			})

			body := bytes.Repeat([]byte("x"), tt.bodySize)
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			MaxBodySize(tt.limit)(handler).ServeHTTP(rec, req)

			if tt.shouldSucceed && readErr != nil {
				t.Errorf("expected read to succeed, got %v", readErr)
			}
			if !tt.shouldSucceed && readErr == nil {
				t.Error("expected read to fail")
			}
		})
	}
}
