package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ADMIN_SECRET", "hunter2")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBPath != defaultDBPath {
		t.Errorf("expected default DB path %q, got %q", defaultDBPath, cfg.DBPath)
	}

	if cfg.ServerPort != defaultServerPort {
		t.Errorf("expected default server port %d, got %d", defaultServerPort, cfg.ServerPort)
	}

	if cfg.LogLevel != defaultLogLevel {
		t.Errorf("expected default log level %q, got %q", defaultLogLevel, cfg.LogLevel)
	}

	if cfg.Environment != defaultEnvironment {
		t.Errorf("expected default environment %q, got %q", defaultEnvironment, cfg.Environment)
	}

	if cfg.SessionTTL != defaultSessionTTL {
		t.Errorf("expected default session TTL %s, got %s", defaultSessionTTL, cfg.SessionTTL)
	}

	if cfg.ShutdownGrace != defaultShutdownGrace {
		t.Errorf("expected shutdown grace %s, got %s", defaultShutdownGrace, cfg.ShutdownGrace)
	}

	if cfg.AdminSecret != "hunter2" {
		t.Errorf("expected admin secret hunter2, got %q", cfg.AdminSecret)
	}

	if cfg.SentryDSN != "" {
		t.Errorf("expected empty Sentry DSN, got %q", cfg.SentryDSN)
	}

	if cfg.LoginLimit.Burst != defaultLoginBurst {
		t.Errorf("expected login burst %d, got %d", defaultLoginBurst, cfg.LoginLimit.Burst)
	}

	if cfg.LoginLimit.RequestsPerSecond != defaultLoginPerSecond {
		t.Errorf("expected login rate %v, got %v", defaultLoginPerSecond, cfg.LoginLimit.RequestsPerSecond)
	}
}

func TestLoadWithExplicitValues(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/portfolio.db")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ADMIN_SECRET", "secret")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SENTRY_DSN", "dsn")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.DBPath != "/tmp/portfolio.db" {
		t.Errorf("expected DB path %q, got %q", "/tmp/portfolio.db", cfg.DBPath)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("expected server port 9090, got %d", cfg.ServerPort)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}

	if cfg.AdminSecret != "secret" {
		t.Errorf("expected admin secret secret, got %q", cfg.AdminSecret)
	}

	if cfg.SessionTTL.Minutes() != 30 {
		t.Errorf("expected session TTL 30m, got %s", cfg.SessionTTL)
	}

	if cfg.SentryDSN != "dsn" {
		t.Errorf("expected Sentry DSN dsn, got %q", cfg.SentryDSN)
	}

	if cfg.Environment != "production" {
		t.Errorf("expected environment production, got %q", cfg.Environment)
	}
}

func TestLoadRequiresAdminSecret(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error when ADMIN_SECRET is unset, got nil")
	}

	if !strings.Contains(err.Error(), "ADMIN_SECRET") {
		t.Fatalf("expected error to mention ADMIN_SECRET, got %v", err)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "secret")
	t.Setenv("SERVER_PORT", "invalid")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid port, got nil")
	}

	if !strings.Contains(err.Error(), "invalid SERVER_PORT value") {
		t.Fatalf("expected error to mention invalid SERVER_PORT value, got %v", err)
	}
}

func TestLoadInvalidSessionTTL(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SESSION_TTL", "soon")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for invalid session TTL, got nil")
	}

	if !strings.Contains(err.Error(), "invalid SESSION_TTL value") {
		t.Fatalf("expected error to mention invalid SESSION_TTL value, got %v", err)
	}
}

func TestLoadNegativeSessionTTL(t *testing.T) {
	t.Setenv("ADMIN_SECRET", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SESSION_TTL", "-1h")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for a non-positive session TTL, got nil")
	}

	if !strings.Contains(err.Error(), "SESSION_TTL must be positive") {
		t.Fatalf("expected error to mention positive SESSION_TTL, got %v", err)
	}
}
