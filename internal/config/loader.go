package config

import (
	"fmt"
	"io"
	"os"

	"techjobs/internal/core/types"

	"gopkg.in/yaml.v3"
)

const redacted = "REDACTED"

// Redacted returns a copy of config with credentials masked, fit for printing.
func Redacted(config *types.Config) *types.Config {
	out := *config
	if out.Data.Token != "" {
		out.Data.Token = redacted
	}
	out.Data.Headers = make(map[string]string, len(config.Data.Headers))
	for k := range config.Data.Headers {
		out.Data.Headers[k] = redacted
	}
	return &out
}

// WriteYAML encodes the configuration to w with 2-space indentation.
func WriteYAML(w io.Writer, config *types.Config) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to encode YAML config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize YAML encoding: %w", err)
	}

	return nil
}

// SaveYAML saves a configuration structure to a YAML file.
func SaveYAML(configFile string, config *types.Config) error {
	if configFile == "" {
		return fmt.Errorf("config file path is empty")
	}

	f, err := os.Create(configFile)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", configFile, err)
	}
	defer f.Close()

	if err := WriteYAML(f, config); err != nil {
		return fmt.Errorf("failed to write %s: %w", configFile, err)
	}

	return nil
}
