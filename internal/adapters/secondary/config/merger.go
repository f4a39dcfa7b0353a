package config

import (
	"os"
	"strconv"

	"github.com/slidesmith/slidesmith/internal/domain/entities"
	"github.com/slidesmith/slidesmith/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface.
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger.
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence.
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	result := deepCopy(configs[0])

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration.
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if provider, ok := flags["provider"].(string); ok && provider != "" {
		result.Generator.Provider = provider
	}

	if apiKey, ok := flags["api-key"].(string); ok && apiKey != "" {
		result.Generator.APIKey = apiKey
	}

	if workDir, ok := flags["work-dir"].(string); ok && workDir != "" {
		result.Workspace.Root = workDir
	}

	return result
}

// ApplyEnvVars applies environment variable overrides to a configuration.
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	if host := os.Getenv("SLIDESMITH_HOST"); host != "" {
		result.Server.Host = host
	}

	if portStr := os.Getenv("SLIDESMITH_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			result.Server.Port = port
		}
	}

	if provider := os.Getenv("SLIDESMITH_PROVIDER"); provider != "" {
		result.Generator.Provider = provider
	}

	if apiKey := os.Getenv("SLIDESMITH_API_KEY"); apiKey != "" {
		result.Generator.APIKey = apiKey
	}

	if workDir := os.Getenv("SLIDE_WORK_DIR"); workDir != "" {
		result.Workspace.Root = workDir
	}

	if level := os.Getenv("SLIDESMITH_LOG_LEVEL"); level != "" {
		result.Logging.Level = level
	}

	return result
}

// mergeInto merges source configuration into target configuration.
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = make([]string, len(source.Server.CORSOrigins))
		copy(target.Server.CORSOrigins, source.Server.CORSOrigins)
	}

	if source.Generator.Provider != "" {
		target.Generator.Provider = source.Generator.Provider
	}
	if source.Generator.APIKey != "" {
		target.Generator.APIKey = source.Generator.APIKey
	}

	if source.Workspace.Root != "" {
		target.Workspace.Root = source.Workspace.Root
	}

	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
}

// deepCopy creates a deep copy of a configuration.
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	dst := &entities.Config{
		Server: entities.ServerConfig{
			Host:            src.Server.Host,
			Port:            src.Server.Port,
			ReadTimeout:     src.Server.ReadTimeout,
			WriteTimeout:    src.Server.WriteTimeout,
			ShutdownTimeout: src.Server.ShutdownTimeout,
		},
		Generator: src.Generator,
		Workspace: src.Workspace,
		Logging:   src.Logging,
	}

	if src.Server.CORSOrigins != nil {
		dst.Server.CORSOrigins = make([]string, len(src.Server.CORSOrigins))
		copy(dst.Server.CORSOrigins, src.Server.CORSOrigins)
	}

	return dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
