package config

import (
	"fmt"
	"strconv"
	"time"
)

// ServeConfig holds the listener settings for the serve command
type ServeConfig struct {
	Port              string
	ShutdownTimeout   time.Duration
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	AccessLog         bool
	EnvFile           string
}

// DefaultServeConfig returns the listener defaults, taking the port from src
func DefaultServeConfig(src Source) ServeConfig {
	return ServeConfig{
		Port:              Lookup(src, KeyPort, DefaultPort),
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		AccessLog:         true,
		EnvFile:           ".env",
	}
}

// Addr returns the listen address for the configured port
func (c ServeConfig) Addr() string {
	return ":" + c.Port
}

// Validate checks the listener settings
func (c ServeConfig) Validate() []ValidationError {
	var errors []ValidationError

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		errors = append(errors, ValidationError{
			Path:    "port",
			Message: fmt.Sprintf("port must be a number between 1 and 65535, got %q", c.Port),
		})
	}

	if c.ShutdownTimeout <= 0 {
		errors = append(errors, ValidationError{
			Path:    "shutdownTimeout",
			Message: "shutdown timeout must be positive",
		})
	}

	if c.ReadHeaderTimeout <= 0 {
		errors = append(errors, ValidationError{
			Path:    "readHeaderTimeout",
			Message: "read header timeout must be positive",
		})
	}

	if c.IdleTimeout <= 0 {
		errors = append(errors, ValidationError{
			Path:    "idleTimeout",
			Message: "idle timeout must be positive",
		})
	}

	return errors
}
