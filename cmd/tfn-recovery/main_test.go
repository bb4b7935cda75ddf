package main

import (
	"context"
	"log/slog"
	"testing"
)

// TestSetupLogger verifies each level/format combination yields a working
// logger.
func TestSetupLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   string
		format  string
		enabled slog.Level
	}{
		{"debug", "text", slog.LevelDebug},
		{"info", "text", slog.LevelInfo},
		{"warn", "json", slog.LevelWarn},
		{"error", "json", slog.LevelError},
		{"bogus", "text", slog.LevelInfo},
	}

	for _, tt := range tests {
		logger := setupLogger(tt.level, tt.format)
		if logger == nil {
			t.Fatalf("setupLogger(%q, %q) returned nil", tt.level, tt.format)
		}

		if !logger.Enabled(context.Background(), tt.enabled) {
			t.Errorf("setupLogger(%q, %q): level %v not enabled", tt.level, tt.format, tt.enabled)
		}
		if tt.enabled > slog.LevelDebug && logger.Enabled(context.Background(), tt.enabled-4) {
			t.Errorf("setupLogger(%q, %q): level %v unexpectedly enabled", tt.level, tt.format, tt.enabled-4)
		}
	}
}
