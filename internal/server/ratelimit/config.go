package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the limiter settings. Auth endpoints get a much smaller bucket
// than general API traffic to slow down credential stuffing.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	AuthLimit       int
	AuthWindow      time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration
}

// LoadConfig builds the limiter configuration from the environment.
// RATE_LIMIT_ENABLED=false disables limiting entirely (useful in tests).
func LoadConfig() *Config {
	cfg := &Config{
		Enabled:         true,
		DefaultLimit:    120,
		DefaultWindow:   time.Minute,
		AuthLimit:       10,
		AuthWindow:      time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         15 * time.Minute,
	}

	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = enabled
		}
	}
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			cfg.DefaultLimit = limit
		}
	}
	if v := os.Getenv("RATE_LIMIT_AUTH_PER_MINUTE"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			cfg.AuthLimit = limit
		}
	}
	return cfg
}

// classFor buckets paths into endpoint classes sharing one bucket.
func (c *Config) classFor(path string) string {
	if strings.HasPrefix(path, "/auth/") {
		return "auth"
	}
	return "api"
}

func (c *Config) limitFor(path string) (int, time.Duration) {
	if c.classFor(path) == "auth" {
		return c.AuthLimit, c.AuthWindow
	}
	return c.DefaultLimit, c.DefaultWindow
}
