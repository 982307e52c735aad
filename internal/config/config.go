package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"

	DefaultPort           = 5000
	DefaultRequestTimeout = 10 * time.Second
)

// DefaultAllowedOrigins are the local frontend dev servers.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// Config is the server configuration, stored as TOML.
type Config struct {
	DataPath       string   `toml:"data_path,omitempty"`
	Port           int      `toml:"port,omitempty"`
	Environment    string   `toml:"environment,omitempty"`
	AllowedOrigins []string `toml:"allowed_origins,omitempty"`
	RequestTimeout Duration `toml:"request_timeout,omitempty"`
	LogLevel       string   `toml:"log_level,omitempty"`
}

// Default returns a config with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.DataPath == "" {
		c.DataPath = DefaultDataDir
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Environment == "" {
		c.Environment = EnvironmentProduction
	}
	if c.AllowedOrigins == nil {
		c.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	}
	if c.RequestTimeout.Duration == 0 {
		c.RequestTimeout.Duration = DefaultRequestTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks field ranges after defaults are applied.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	switch c.Environment {
	case EnvironmentDevelopment, EnvironmentProduction:
	default:
		return fmt.Errorf("environment must be %q or %q, got %q",
			EnvironmentDevelopment, EnvironmentProduction, c.Environment)
	}
	if c.RequestTimeout.Duration < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	for _, origin := range c.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("allowed origin %q must start with http:// or https://", origin)
		}
	}
	return nil
}

// IsDevelopment reports whether detailed errors may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}

// Duration is a time.Duration written as a string ("10s") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
