package config

import (
	"fmt"
	"os"
	"unicode/utf8"

	"techjobs/internal/core/types"

	"github.com/goccy/go-yaml"
)

// LoadConfig loads configuration from a YAML file and applies defaults.
// An empty path yields the defaults; a named file must exist.
func LoadConfig(configFile string) (*types.Config, error) {
	config := &types.Config{}

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	}

	return applyDefaults(config), nil
}

// applyDefaults merges loaded config with defaults, with loaded values taking precedence
func applyDefaults(config *types.Config) *types.Config {
	config.Data = mergeDataConfig(config.Data, types.DefaultDataConfig())
	config.Server = mergeServerConfig(config.Server, types.DefaultServerConfig())
	config.Client = mergeClientConfig(config.Client, types.DefaultClientConfig())
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	return config
}

func mergeDataConfig(loaded, defaults types.DataConfig) types.DataConfig {
	result := types.DataConfig{
		Location:         expandString(coalesce(loaded.Location, defaults.Location)),
		Delimiter:        coalesce(loaded.Delimiter, defaults.Delimiter),
		TrimLeadingSpace: coalescePtr(loaded.TrimLeadingSpace, defaults.TrimLeadingSpace),
		MaxSize:          coalescePtr(loaded.MaxSize, defaults.MaxSize),
		RateLimit:        coalesce(loaded.RateLimit, defaults.RateLimit),
		Token:            expandString(loaded.Token),
		Region:           expandString(loaded.Region),
		Profile:          expandString(loaded.Profile),
		Headers:          make(map[string]string, len(loaded.Headers)),
	}
	for k, v := range loaded.Headers {
		result.Headers[k] = expandString(v)
	}
	return result
}

func mergeServerConfig(loaded *types.ServerConfig, defaults types.ServerConfig) *types.ServerConfig {
	if loaded == nil {
		return &defaults
	}
	return &types.ServerConfig{
		ListenAddr: coalescePtr(loaded.ListenAddr, defaults.ListenAddr),
	}
}

func mergeClientConfig(loaded *types.ClientConfig, defaults types.ClientConfig) *types.ClientConfig {
	if loaded == nil {
		return &defaults
	}
	return &types.ClientConfig{
		ServerURL: coalescePtr(loaded.ServerURL, defaults.ServerURL),
	}
}

// Helper functions to reduce repetitive conditional logic
func coalesce[T comparable](loaded, defaultVal T) T {
	var zero T
	if loaded != zero {
		return loaded
	}
	return defaultVal
}

func coalescePtr[T any](loaded, defaultVal *T) *T {
	if loaded != nil {
		return loaded
	}
	return defaultVal
}

// expandString expands $VAR and ${VAR} references from the environment
func expandString(s string) string {
	if s == "" {
		return s
	}
	return os.ExpandEnv(s)
}

// Validate checks settings that cannot be defaulted away
func Validate(config *types.Config) error {
	if config.Data.Location == "" {
		return fmt.Errorf("data location is required")
	}
	if n := utf8.RuneCountInString(config.Data.Delimiter); n != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", config.Data.Delimiter)
	}
	switch config.Data.Comma() {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("invalid delimiter %q", config.Data.Delimiter)
	}
	if config.Server != nil && config.Server.ListenAddr != nil && config.Server.ListenAddr.Host == "" {
		return fmt.Errorf("server listen address %q has no host", config.Server.ListenAddr)
	}
	return nil
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ResolveConfigPath returns configFile when given, otherwise the first config
// found in the common locations, or "" when there is none.
func ResolveConfigPath(configFile string) string {
	if configFile != "" {
		return configFile
	}

	commonPaths := []string{
		"techjobs.yaml",
		"techjobs.yml",
		"config.yaml",
		"config.yml",
		"/etc/techjobs/config.yaml",
	}

	for _, path := range commonPaths {
		if fileExists(path) {
			return path
		}
	}

	return ""
}
