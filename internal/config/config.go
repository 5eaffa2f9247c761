// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the service configuration.
type Config struct {
	Port           string
	DBPath         string
	LogLevel       string
	LogFormat      string
	GinMode        string
	AllowedOrigins []string
	WSSendBuffer   int
}

// Load reads an optional env file and then the environment.
// An empty envFile loads .env from the working directory if present.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	sendBuffer, err := strconv.Atoi(getEnv("WS_SEND_BUFFER", "256"))
	if err != nil || sendBuffer <= 0 {
		return nil, fmt.Errorf("WS_SEND_BUFFER must be a positive integer, got %q", os.Getenv("WS_SEND_BUFFER"))
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", ":memory:"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		GinMode:        getEnv("GIN_MODE", "release"),
		AllowedOrigins: splitList(getEnv("WS_ALLOWED_ORIGINS", "")),
		WSSendBuffer:   sendBuffer,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("WS_ALLOWED_ORIGINS entries must be scheme://host, got %q", origin)
		}
	}
	return nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
