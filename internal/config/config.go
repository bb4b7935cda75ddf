// Package config provides configuration loading and validation for the
// recovery service. Values come from environment variables, optionally
// seeded from a TOML file; the environment always wins.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	LogLevel          string // debug, info, warn, error
	LogFormat         string // text, json
	ListenAddr        string // API listener address (e.g., ":8080")
	MetricsListenAddr string // Metrics listener address (e.g., "localhost:9090")
	DatabasePath      string // SQLite account store path

	Recovery RecoveryConfig
	SMTP     SMTPConfig
	Throttle ThrottleConfig
}

// RecoveryConfig is the deployment-supplied recovery surface: the
// allow-listed emails and the four reference secret digests. These are
// process-lifetime values and are never stored in the database.
type RecoveryConfig struct {
	AllowedEmails []string
	Password1Hash string
	Password2Hash string
	Answer1Hash   string
	Answer2Hash   string
}

// SMTPConfig configures the outbound promotion notification. An empty Host
// disables sending entirely.
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
	TLS      bool
}

// ThrottleConfig bounds recovery attempts per email within a fixed window.
type ThrottleConfig struct {
	MaxAttempts int
	Window      time.Duration
}

// fileConfig mirrors Config for TOML decoding. Only keys present in the
// file override the built-in defaults.
type fileConfig struct {
	LogLevel          *string `toml:"log_level"`
	LogFormat         *string `toml:"log_format"`
	ListenAddr        *string `toml:"listen_addr"`
	MetricsListenAddr *string `toml:"metrics_listen_addr"`
	DatabasePath      *string `toml:"database_path"`

	Recovery struct {
		AllowedEmails []string `toml:"allowed_emails"`
		Password1Hash *string  `toml:"password1_hash"`
		Password2Hash *string  `toml:"password2_hash"`
		Answer1Hash   *string  `toml:"answer1_hash"`
		Answer2Hash   *string  `toml:"answer2_hash"`
	} `toml:"recovery"`

	SMTP struct {
		Host     *string `toml:"host"`
		Port     *int    `toml:"port"`
		From     *string `toml:"from"`
		Username *string `toml:"username"`
		Password *string `toml:"password"`
		TLS      *bool   `toml:"tls"`
	} `toml:"smtp"`

	Throttle struct {
		MaxAttempts *int    `toml:"max_attempts"`
		Window      *string `toml:"window"`
	} `toml:"throttle"`
}

// Load builds the configuration from defaults, the optional TOML file named
// by CONFIG_FILE, and environment variables, in that precedence order.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		ListenAddr:        ":8080",
		MetricsListenAddr: "localhost:9090",
		DatabasePath:      "/data/accounts.db",
		SMTP: SMTPConfig{
			Port: 587,
			TLS:  true,
		},
		Throttle: ThrottleConfig{
			MaxAttempts: 5,
			Window:      15 * time.Minute,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	return cfg, nil
}

// applyFile overlays values from a TOML file onto cfg.
func applyFile(cfg *Config, path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return err
	}

	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.ListenAddr, fc.ListenAddr)
	setString(&cfg.MetricsListenAddr, fc.MetricsListenAddr)
	setString(&cfg.DatabasePath, fc.DatabasePath)

	if len(fc.Recovery.AllowedEmails) > 0 {
		cfg.Recovery.AllowedEmails = fc.Recovery.AllowedEmails
	}
	setString(&cfg.Recovery.Password1Hash, fc.Recovery.Password1Hash)
	setString(&cfg.Recovery.Password2Hash, fc.Recovery.Password2Hash)
	setString(&cfg.Recovery.Answer1Hash, fc.Recovery.Answer1Hash)
	setString(&cfg.Recovery.Answer2Hash, fc.Recovery.Answer2Hash)

	setString(&cfg.SMTP.Host, fc.SMTP.Host)
	setString(&cfg.SMTP.From, fc.SMTP.From)
	setString(&cfg.SMTP.Username, fc.SMTP.Username)
	setString(&cfg.SMTP.Password, fc.SMTP.Password)
	if fc.SMTP.Port != nil {
		cfg.SMTP.Port = *fc.SMTP.Port
	}
	if fc.SMTP.TLS != nil {
		cfg.SMTP.TLS = *fc.SMTP.TLS
	}

	if fc.Throttle.MaxAttempts != nil {
		cfg.Throttle.MaxAttempts = *fc.Throttle.MaxAttempts
	}
	if fc.Throttle.Window != nil {
		d, err := time.ParseDuration(*fc.Throttle.Window)
		if err != nil {
			return fmt.Errorf("throttle.window: %w", err)
		}
		cfg.Throttle.Window = d
	}

	return nil
}

// applyEnv overlays environment variables onto cfg. Unset variables leave
// the current value in place.
func applyEnv(cfg *Config) {
	envString(&cfg.LogLevel, "LOG_LEVEL")
	envString(&cfg.LogFormat, "LOG_FORMAT")
	envString(&cfg.ListenAddr, "LISTEN_ADDR")
	envString(&cfg.MetricsListenAddr, "METRICS_LISTEN_ADDR")
	envString(&cfg.DatabasePath, "DATABASE_PATH")

	if v := os.Getenv("RECOVERY_ALLOWED_EMAILS"); v != "" {
		cfg.Recovery.AllowedEmails = splitCSV(v)
	}
	envString(&cfg.Recovery.Password1Hash, "RECOVERY_PASSWORD1_HASH")
	envString(&cfg.Recovery.Password2Hash, "RECOVERY_PASSWORD2_HASH")
	envString(&cfg.Recovery.Answer1Hash, "RECOVERY_ANSWER1_HASH")
	envString(&cfg.Recovery.Answer2Hash, "RECOVERY_ANSWER2_HASH")

	envString(&cfg.SMTP.Host, "SMTP_HOST")
	envString(&cfg.SMTP.From, "SMTP_FROM")
	envString(&cfg.SMTP.Username, "SMTP_USERNAME")
	envString(&cfg.SMTP.Password, "SMTP_PASSWORD")
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = n
		}
	}
	if v := os.Getenv("SMTP_TLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SMTP.TLS = b
		}
	}

	if v := os.Getenv("RECOVERY_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Throttle.MaxAttempts = n
		}
	}
	if v := os.Getenv("RECOVERY_ATTEMPT_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Throttle.Window = d
		}
	}
}

// Validate checks structural configuration constraints. Missing reference
// secrets are deliberately not an error here: the endpoint degrades to
// server-misconfigured responses instead of refusing to start.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}

	if c.Throttle.MaxAttempts < 1 {
		return fmt.Errorf("RECOVERY_MAX_ATTEMPTS must be at least 1")
	}
	if c.Throttle.Window <= 0 {
		return fmt.Errorf("RECOVERY_ATTEMPT_WINDOW must be positive")
	}

	if c.SMTP.Host != "" && c.SMTP.From == "" {
		return fmt.Errorf("SMTP_FROM is required when SMTP_HOST is set")
	}

	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
