// Package config provides environment-driven configuration for the resume
// builder server and CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds everything the serve command needs. DATABASE_URL is the
// only hard requirement; the Gemini key is optional and its absence disables
// the suggestion endpoints.
type ServerConfig struct {
	Port         int
	DatabaseURL  string
	GeminiAPIKey string
	ChromePath   string
	TemplatePath string
}

// LoadServerConfig reads the server configuration from the environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:         8080,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		ChromePath:   os.Getenv("CHROME_PATH"),
		TemplatePath: os.Getenv("RESUME_TEMPLATE"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *ServerConfig) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.TemplatePath != "" {
		if _, err := os.Stat(c.TemplatePath); os.IsNotExist(err) {
			return fmt.Errorf("resume template not found: %s", c.TemplatePath)
		}
	}
	return nil
}
