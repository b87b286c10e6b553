/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures server parameters by reading operating system environment
variables: the running environment, port, CORS allowed origins, the session
token secret, and whether to seed the ledger with demo fixture data.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string
	JWTSecret      string

	// SeedDemoData seeds the in-memory ledger with demonstration fixture
	// users and pulses at startup.
	SeedDemoData bool
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs the
// necessary type conversions and validation.
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

	// JWTSecret
	jwtSecret := os.Getenv("JWT_SECRET")
	if cfg.Environment == "development" {
		if jwtSecret == "" {
			jwtSecret = "your_default_insecure_secret_key_change_me"
		}
	} else {
		if jwtSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in %s environment for security", cfg.Environment)
		}
	}
	cfg.JWTSecret = jwtSecret

	// --- Demo Data ---
	seedStr := os.Getenv("SEED_DEMO_DATA")
	if seedStr == "" {
		cfg.SeedDemoData = cfg.Environment == "development"
	} else {
		seed, err := strconv.ParseBool(seedStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED_DEMO_DATA environment variable: %w", err)
		}
		cfg.SeedDemoData = seed
	}

	return cfg, nil
}
