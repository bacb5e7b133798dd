// Package config provides configuration management for the slack gateway.
// It loads configuration from environment variables with sensible defaults
// and validates it so the application fails at startup, not per-request.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//   - TLS_CERT / TLS_KEY: Optional TLS certificate and key paths
//
// Slack App Credentials:
//   - SLACK_SIGNING_SECRET: Request signing secret (required, never logged)
//   - SLACK_CLIENT_ID: OAuth client ID (enables the install flow when set)
//   - SLACK_CLIENT_SECRET: OAuth client secret
//   - SLACK_SCOPES: Comma-separated bot scopes, order preserved
//   - SLACK_USER_SCOPES: Comma-separated user scopes
//   - SLACK_REDIRECT_URI: Optional explicit OAuth redirect URI
//
// OAuth State Store:
//   - STATE_STORE: "memory", "redis" or "signed" (default: memory)
//   - STATE_SECRET: Signing secret for the "signed" store
//
// Redis (when STATE_STORE=redis):
//   - REDIS_ADDRESS: Redis server address (default: localhost:6379)
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis database number 0-15 (default: 0)
//   - REDIS_POOL_SIZE: Redis connection pool size (default: 10)
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the slack gateway.
// Load it with Load() and validate with Validate() before use.
type Config struct {
	// Application settings
	Port     string // Server port number
	LogLevel string // Logging level (debug, info, warn, error)
	TLSCert  string // TLS certificate path (optional)
	TLSKey   string // TLS key path (optional)

	// Slack app credentials
	SigningSecret string   // Request signing secret (required)
	ClientID      string   // OAuth client ID
	ClientSecret  string   // OAuth client secret
	Scopes        []string // Requested bot scopes, order preserved
	UserScopes    []string // Requested user scopes, order preserved
	RedirectURI   string   // Explicit OAuth redirect URI (optional)

	// OAuth state store selection
	StateStore  string // "memory", "redis" or "signed"
	StateSecret string // Signing secret for the "signed" store

	// Redis configuration
	RedisAddress  string // Redis server address (host:port)
	RedisPassword string // Redis authentication password
	RedisDB       int    // Redis database number (0-15)
	RedisPoolSize int    // Redis connection pool size
}

// Load creates a Config from environment variables, applying defaults for
// anything unset. Call Validate() before using the result.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		TLSCert:  getEnv("TLS_CERT", ""),
		TLSKey:   getEnv("TLS_KEY", ""),

		SigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		ClientID:      getEnv("SLACK_CLIENT_ID", ""),
		ClientSecret:  getEnv("SLACK_CLIENT_SECRET", ""),
		Scopes:        splitScopes(getEnv("SLACK_SCOPES", "")),
		UserScopes:    splitScopes(getEnv("SLACK_USER_SCOPES", "")),
		RedirectURI:   getEnv("SLACK_REDIRECT_URI", ""),

		StateStore:  getEnv("STATE_STORE", "memory"),
		StateSecret: getEnv("STATE_SECRET", ""),

		RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),
		RedisPoolSize: getIntEnv("REDIS_POOL_SIZE", 10),
	}
}

// OAuthEnabled reports whether the install flow should be served
func (c *Config) OAuthEnabled() bool {
	return c.ClientID != ""
}

// Validate checks that the configuration can safely start the gateway
func (c *Config) Validate() error {
	if c.SigningSecret == "" {
		return fmt.Errorf("SLACK_SIGNING_SECRET is required")
	}

	switch c.StateStore {
	case "memory", "redis", "signed":
	default:
		return fmt.Errorf("STATE_STORE must be memory, redis or signed, got %q", c.StateStore)
	}

	if c.OAuthEnabled() {
		if c.ClientSecret == "" {
			return fmt.Errorf("SLACK_CLIENT_SECRET is required when SLACK_CLIENT_ID is set")
		}
		if c.StateStore == "signed" && c.StateSecret == "" {
			return fmt.Errorf("STATE_SECRET is required when STATE_STORE=signed")
		}
	}

	if c.RedisDB < 0 || c.RedisDB > 15 {
		return fmt.Errorf("REDIS_DB must be between 0 and 15, got %d", c.RedisDB)
	}

	if (c.TLSCert == "") != (c.TLSKey == "") {
		return fmt.Errorf("TLS_CERT and TLS_KEY must be set together")
	}

	return nil
}

// splitScopes parses a comma-separated scope list, preserving order and
// dropping empty entries
func splitScopes(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	scopes := make([]string, 0, len(parts))
	for _, part := range parts {
		if scope := strings.TrimSpace(part); scope != "" {
			scopes = append(scopes, scope)
		}
	}
	return scopes
}

// getEnv retrieves an environment variable value or returns a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves an integer environment variable value or returns a
// default when unset or unparseable
func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
