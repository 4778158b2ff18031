package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Logging. Server logs go to stderr; stdout carries the protocol.
	LogLevel slog.Level

	// Tool execution.
	ToolTimeout time.Duration

	// Pagination of classified changes.
	ChangesLimit int
	MaxLimit     int

	// Input safety.
	MaxInlineSize   int64
	AllowPrivateIPs bool

	// Parse cache.
	CacheEnabled bool
	CacheMaxSize int
	CacheTTL     time.Duration
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASDELTA_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		LogLevel:        envLevel("OASDELTA_MCP_LOG_LEVEL", slog.LevelWarn),
		ToolTimeout:     envDuration("OASDELTA_MCP_TOOL_TIMEOUT", 60*time.Second),
		ChangesLimit:    envInt("OASDELTA_MCP_CHANGES_LIMIT", 50),
		MaxLimit:        envInt("OASDELTA_MCP_MAX_LIMIT", 500),
		MaxInlineSize:   envSize("OASDELTA_MCP_MAX_INLINE_SIZE", 10*1024*1024),
		AllowPrivateIPs: envBool("OASDELTA_MCP_ALLOW_PRIVATE_IPS", false),
		CacheEnabled:    envBool("OASDELTA_MCP_CACHE_ENABLED", true),
		CacheMaxSize:    envInt("OASDELTA_MCP_CACHE_MAX_SIZE", 8),
		CacheTTL:        envDuration("OASDELTA_MCP_CACHE_TTL", 5*time.Minute),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envSize(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid size env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

func envLevel(key string, fallback slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return level
}
