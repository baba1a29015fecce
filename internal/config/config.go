// Package config provides environment-based configuration for the backend.
// Values are read from an optional .env style file and the process
// environment, with environment variables taking precedence.
package config

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Database    DatabaseConfig
	API         APIConfig
	JWT         JWTConfig
	CORS        CORSConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "human"
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// DatabaseConfig contains the sqlite database configuration
type DatabaseConfig struct {
	Path string // Path to the database file
}

// APIConfig contains the configuration for resource link generation
type APIConfig struct {
	URL string // URL under which the API is reachable from clients
}

// JWTConfig contains the token signing configuration
type JWTConfig struct {
	Secret        string        // Key used to sign session tokens
	TokenLifetime time.Duration // Validity of issued session tokens
	BcryptCost    int           // Work factor for password hashing
}

// CORSConfig contains the CORS configuration
type CORSConfig struct {
	AllowOrigins []string
}

// validate ensures the configuration values meet minimum requirements.
func (c *Config) validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}

	if c.Database.Path == "" {
		validationErrors = append(validationErrors, "DB_PATH is required")
	}

	if _, err := url.Parse(c.API.URL); err != nil {
		validationErrors = append(validationErrors, "API_URL must be a valid URL")
	}

	if c.JWT.Secret == "" {
		validationErrors = append(validationErrors, "JWT_SECRET is required")
	}
	if c.JWT.TokenLifetime <= 0 {
		validationErrors = append(validationErrors, "JWT_TOKEN_LIFETIME must be greater than 0")
	}
	if c.JWT.BcryptCost < 4 || c.JWT.BcryptCost > 31 {
		validationErrors = append(validationErrors, "BCRYPT_COST must be between 4 and 31")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
