package entities

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Generator GeneratorConfig `toml:"generator"`
	Workspace WorkspaceConfig `toml:"workspace"`
	Logging   LoggingConfig   `toml:"logging"`
}

// Validate validates the entire configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// Validate validates server configuration.
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" {
		if ip := net.ParseIP(s.Host); ip == nil {
			if _, err := net.LookupHost(s.Host); err != nil {
				return fmt.Errorf("invalid host: %w", err)
			}
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	return nil
}

// ReadTimeoutDuration returns the read timeout as a duration.
func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns the write timeout as a duration.
func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// GeneratorConfig selects the default generative-model provider used when
// a request does not name one.
type GeneratorConfig struct {
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
}

// Validate validates generator configuration.
func (g GeneratorConfig) Validate() error {
	switch g.Provider {
	case "", "offline", "gemini", "openai":
		return nil
	}
	return fmt.Errorf("unsupported provider: %s", g.Provider)
}

// WorkspaceConfig controls where request artifacts are written. Each deck
// request gets its own subdirectory beneath Root.
type WorkspaceConfig struct {
	Root string `toml:"root"`
}

// LoggingConfig contains logging preferences.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Validate validates logging configuration.
func (l LoggingConfig) Validate() error {
	switch l.Level {
	case "", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unsupported log level: %s", l.Level)
}
