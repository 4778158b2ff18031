package httpserver

import (
	"log/slog"
	"os"
	"time"
)

// Config holds the HTTP service settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string
	// ReadTimeout bounds reading a request
	ReadTimeout time.Duration
	// WriteTimeout bounds writing a response, including the comparison
	WriteTimeout time.Duration
	// ShutdownTimeout bounds the graceful shutdown drain
	ShutdownTimeout time.Duration
}

// ConfigFromEnv reads configuration from OASDELTA_HTTP_* environment
// variables. Invalid values log a warning and fall back to the default.
func ConfigFromEnv() Config {
	return Config{
		Addr:            envStr("OASDELTA_HTTP_ADDR", ":8080"),
		ReadTimeout:     envDuration("OASDELTA_HTTP_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    envDuration("OASDELTA_HTTP_WRITE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: envDuration("OASDELTA_HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
