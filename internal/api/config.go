package api

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Default configuration values.
const (
	// DefaultBaseURL is the default Capsule API base URL.
	DefaultBaseURL = "http://api.capsuleapp.cyou"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 5 * time.Second
)

// Supported URL schemes.
const (
	schemeHTTP  = "http://"
	schemeHTTPS = "https://"
)

// Config holds the transport configuration for the Capsule API client.
type Config struct {
	// BaseURL is the base URL of the Capsule API server. Must include the
	// scheme (http:// or https://).
	BaseURL string

	// Timeout is the maximum duration for one HTTP request. Must be a
	// positive duration.
	Timeout time.Duration
}

// DefaultConfig returns a Config with the standard Capsule endpoint and a
// 5 second timeout.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Validate validates the configuration and returns an error if any field
// is invalid.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("invalid configuration: base URL cannot be empty")
	}

	if !strings.HasPrefix(c.BaseURL, schemeHTTP) && !strings.HasPrefix(c.BaseURL, schemeHTTPS) {
		return fmt.Errorf("invalid configuration: base URL must have http:// or https:// scheme, got %q", c.BaseURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("invalid configuration: timeout must be positive, got %v", c.Timeout)
	}

	return nil
}
