package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete CLI configuration.
type Config struct {
	API APIConfig `mapstructure:"api" yaml:"api"`
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// APIConfig holds Capsule platform connection configuration.
type APIConfig struct {
	URL     string        `mapstructure:"url"     yaml:"url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// New creates a Config instance from Viper.
func New(v *viper.Viper) (*Config, error) {
	var config Config

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return errors.New("api.url is required")
	}

	parsed, err := url.Parse(c.API.URL)
	if err != nil {
		return fmt.Errorf("api.url is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("api.url must use http or https")
	}
	if parsed.Host == "" {
		return errors.New("api.url must include a host")
	}

	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}

	return nil
}
