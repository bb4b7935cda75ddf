package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv unsets every variable Load reads so tests see only what they
// set themselves. t.Setenv restores the originals on cleanup.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"CONFIG_FILE",
		"LOG_LEVEL", "LOG_FORMAT", "LISTEN_ADDR", "METRICS_LISTEN_ADDR", "DATABASE_PATH",
		"RECOVERY_ALLOWED_EMAILS",
		"RECOVERY_PASSWORD1_HASH", "RECOVERY_PASSWORD2_HASH",
		"RECOVERY_ANSWER1_HASH", "RECOVERY_ANSWER2_HASH",
		"SMTP_HOST", "SMTP_PORT", "SMTP_FROM", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_TLS",
		"RECOVERY_MAX_ATTEMPTS", "RECOVERY_ATTEMPT_WINDOW",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

// TestLoadDefaults verifies the built-in defaults with an empty environment.
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected LogLevel 'info', got %q", cfg.LogLevel)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected ListenAddr ':8080', got %q", cfg.ListenAddr)
	}
	if cfg.DatabasePath != "/data/accounts.db" {
		t.Errorf("expected default DatabasePath, got %q", cfg.DatabasePath)
	}
	if cfg.Throttle.MaxAttempts != 5 {
		t.Errorf("expected 5 max attempts, got %d", cfg.Throttle.MaxAttempts)
	}
	if cfg.Throttle.Window != 15*time.Minute {
		t.Errorf("expected 15m window, got %v", cfg.Throttle.Window)
	}
	if cfg.SMTP.Port != 587 || !cfg.SMTP.TLS {
		t.Errorf("unexpected SMTP defaults: %+v", cfg.SMTP)
	}
	if len(cfg.Recovery.AllowedEmails) != 0 {
		t.Errorf("expected no allowed emails, got %v", cfg.Recovery.AllowedEmails)
	}
}

// TestLoadFromEnv verifies environment variables override defaults.
func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("RECOVERY_ALLOWED_EMAILS", "a@org.example, b@org.example ,")
	t.Setenv("RECOVERY_PASSWORD1_HASH", "deadbeef")
	t.Setenv("RECOVERY_MAX_ATTEMPTS", "3")
	t.Setenv("RECOVERY_ATTEMPT_WINDOW", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel 'debug', got %q", cfg.LogLevel)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("expected ListenAddr ':9999', got %q", cfg.ListenAddr)
	}
	if cfg.DatabasePath != "/tmp/test.db" {
		t.Errorf("expected DatabasePath '/tmp/test.db', got %q", cfg.DatabasePath)
	}

	if len(cfg.Recovery.AllowedEmails) != 2 {
		t.Fatalf("expected 2 allowed emails, got %v", cfg.Recovery.AllowedEmails)
	}
	if cfg.Recovery.AllowedEmails[0] != "a@org.example" || cfg.Recovery.AllowedEmails[1] != "b@org.example" {
		t.Errorf("unexpected emails %v", cfg.Recovery.AllowedEmails)
	}
	if cfg.Recovery.Password1Hash != "deadbeef" {
		t.Errorf("expected Password1Hash 'deadbeef', got %q", cfg.Recovery.Password1Hash)
	}

	if cfg.Throttle.MaxAttempts != 3 {
		t.Errorf("expected 3 max attempts, got %d", cfg.Throttle.MaxAttempts)
	}
	if cfg.Throttle.Window != 5*time.Minute {
		t.Errorf("expected 5m window, got %v", cfg.Throttle.Window)
	}
}

// TestLoadFromFile verifies TOML file values apply and the environment
// still wins over them.
func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
log_level = "warn"
listen_addr = ":7070"

[recovery]
allowed_emails = ["root@org.example"]
password1_hash = "cafe"

[throttle]
max_attempts = 10
window = "30m"

[smtp]
host = "smtp.org.example"
from = "noreply@org.example"
port = 465
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LISTEN_ADDR", ":6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("expected LogLevel 'warn', got %q", cfg.LogLevel)
	}
	// Env beats file.
	if cfg.ListenAddr != ":6060" {
		t.Errorf("expected ListenAddr ':6060', got %q", cfg.ListenAddr)
	}
	if len(cfg.Recovery.AllowedEmails) != 1 || cfg.Recovery.AllowedEmails[0] != "root@org.example" {
		t.Errorf("unexpected emails %v", cfg.Recovery.AllowedEmails)
	}
	if cfg.Recovery.Password1Hash != "cafe" {
		t.Errorf("expected Password1Hash 'cafe', got %q", cfg.Recovery.Password1Hash)
	}
	if cfg.Throttle.MaxAttempts != 10 || cfg.Throttle.Window != 30*time.Minute {
		t.Errorf("unexpected throttle %+v", cfg.Throttle)
	}
	if cfg.SMTP.Host != "smtp.org.example" || cfg.SMTP.Port != 465 {
		t.Errorf("unexpected SMTP %+v", cfg.SMTP)
	}
}

// TestLoadFileErrors verifies missing and malformed config files fail Load.
func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)

	t.Setenv("CONFIG_FILE", "/nonexistent/config.toml")
	if _, err := Load(); err == nil {
		t.Error("expected error for missing config file")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte(`log_level = [broken`), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	if _, err := Load(); err == nil {
		t.Error("expected error for malformed config file")
	}

	path = filepath.Join(t.TempDir(), "badwindow.toml")
	if err := os.WriteFile(path, []byte("[throttle]\nwindow = \"soon\"\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid throttle window")
	}
}

// TestValidate verifies the structural constraints. A missing reference
// hash is valid at this layer.
func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			LogLevel:  "info",
			LogFormat: "text",
			Throttle:  ThrottleConfig{MaxAttempts: 5, Window: 15 * time.Minute},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	// Missing digests still validate; the endpoint handles that at
	// request time.
	cfg := valid()
	cfg.Recovery = RecoveryConfig{}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config without reference hashes rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
		{"zero attempts", func(c *Config) { c.Throttle.MaxAttempts = 0 }},
		{"zero window", func(c *Config) { c.Throttle.Window = 0 }},
		{"smtp host without from", func(c *Config) { c.SMTP.Host = "smtp.org.example" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
