/*
Package configs is responsible for loading and parsing the application's configuration settings.

It primarily configures server parameters by reading operating system environment variables,
including the running environment, port, CORS allowed origins, the Redis fan-out address,
and the empty-room reap interval.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string

	// RedisURL is the address of the Redis instance backing cross-process
	// event fan-out. Empty means single-process operation with local-only
	// delivery.
	RedisURL string

	// RoomReapInterval controls how often empty rooms are removed from the
	// registry. Zero disables reaping and stale rooms accumulate.
	RoomReapInterval time.Duration
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary type
// conversions and validation. It returns a pointer to the AppConfig struct and any
// error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	// Environment
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Port
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Security Settings ---
	// AllowedOrigins
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		origins := strings.Split(originsStr, ",")
		for _, origin := range origins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	// --- Fan-out Settings ---
	// RedisURL is optional in every environment; a single-process deployment
	// does not need the pub/sub backend at all.
	cfg.RedisURL = os.Getenv("REDIS_URL")

	// --- Registry Settings ---
	reapStr := os.Getenv("ROOM_REAP_INTERVAL")
	if reapStr != "" {
		interval, err := time.ParseDuration(reapStr)
		if err != nil {
			return nil, fmt.Errorf("invalid ROOM_REAP_INTERVAL environment variable: %w", err)
		}
		if interval < 0 {
			return nil, fmt.Errorf("ROOM_REAP_INTERVAL must not be negative, got %s", interval)
		}
		cfg.RoomReapInterval = interval
	}

	return cfg, nil
}
