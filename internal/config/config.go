package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// Config holds runtime configuration values for the portfolio server.
type Config struct {
	DBPath        string
	ServerPort    int
	LogLevel      string
	AdminSecret   string
	SessionTTL    time.Duration
	SentryDSN     string
	Environment   string
	ShutdownGrace time.Duration
	LoginLimit    LoginLimit
}

// LoginLimit configures the per-client rate limit applied to login attempts.
type LoginLimit struct {
	Burst             int
	RequestsPerSecond float64
	ClientTTL         time.Duration
}

const (
	defaultDBPath        = "./data/portfolio.db"
	defaultServerPort    = 8080
	defaultLogLevel      = "info"
	defaultEnvironment   = "development"
	defaultSessionTTL    = 24 * time.Hour
	defaultShutdownGrace = 10 * time.Second

	defaultLoginBurst     = 5
	defaultLoginPerSecond = 0.5
	defaultLoginClientTTL = 10 * time.Minute
)

// Load reads configuration values from environment variables, applying
// defaults where necessary. ADMIN_SECRET has no default and must be set.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:        getEnv("DB_PATH", defaultDBPath),
		LogLevel:      getEnv("LOG_LEVEL", defaultLogLevel),
		AdminSecret:   os.Getenv("ADMIN_SECRET"),
		SessionTTL:    defaultSessionTTL,
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		Environment:   getEnv("ENV", defaultEnvironment),
		ShutdownGrace: defaultShutdownGrace,
		LoginLimit: LoginLimit{
			Burst:             defaultLoginBurst,
			RequestsPerSecond: defaultLoginPerSecond,
			ClientTTL:         defaultLoginClientTTL,
		},
	}

	if cfg.AdminSecret == "" {
		return nil, eris.New("ADMIN_SECRET is required")
	}

	portValue := getEnv("SERVER_PORT", strconv.Itoa(defaultServerPort))
	port, err := strconv.Atoi(portValue)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid SERVER_PORT value: %s", portValue)
	}
	cfg.ServerPort = port

	if ttlValue := os.Getenv("SESSION_TTL"); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid SESSION_TTL value: %s", ttlValue)
		}
		if ttl <= 0 {
			return nil, eris.Errorf("SESSION_TTL must be positive, got %s", ttlValue)
		}
		cfg.SessionTTL = ttl
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
