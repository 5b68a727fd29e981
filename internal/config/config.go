// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Port         string
	MongoURI     string
	DatabaseName string
	FrontendURL  string
	GoogleAPIKey string
	GeminiModel  string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8000"),
		MongoURI:     getEnv("MONGODB_URL", "mongodb://localhost:27017"),
		DatabaseName: getEnv("DATABASE_NAME", "projects"),
		FrontendURL:  getEnv("FRONTEND_URL", ""),
		GoogleAPIKey: getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URL cannot be empty")
	}
	if c.DatabaseName == "" {
		return fmt.Errorf("DATABASE_NAME cannot be empty")
	}
	return nil
}

// AIEnabled returns true if a Gemini API key is configured.
func (c *Config) AIEnabled() bool {
	return c.GoogleAPIKey != ""
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
