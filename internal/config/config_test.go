package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"techjobs/internal/core/types"

	"github.com/goccy/go-yaml"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "techjobs.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Expected defaults without a config file, got error: %v", err)
	}

	if cfg.Data.Location != "resources/job_data.csv" {
		t.Fatalf("Expected default location, got %q", cfg.Data.Location)
	}
	if cfg.Data.Comma() != ',' || !cfg.Data.TrimSpace() {
		t.Fatalf("Unexpected CSV defaults: %q %v", cfg.Data.Comma(), cfg.Data.TrimSpace())
	}
	if cfg.Data.MaxBytes() != types.Bytes(64*1024*1024) {
		t.Fatalf("Expected 64MB max size, got %s", cfg.Data.MaxBytes())
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("Expected info log level, got %q", cfg.LogLevel)
	}
	if cfg.Server.ListenAddr.Host != "0.0.0.0:8080" {
		t.Fatalf("Unexpected listen address: %s", cfg.Server.ListenAddr)
	}
	if cfg.Client.ServerURL.String() != "http://localhost:8080" {
		t.Fatalf("Unexpected server url: %s", cfg.Client.ServerURL)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("TECHJOBS_TOKEN", "secret")
	t.Setenv("TECHJOBS_BUCKET", "jobs-bucket")

	path := writeConfig(t, `
log_level: debug
data:
  location: s3://${TECHJOBS_BUCKET}/job_data.csv
  delimiter: ";"
  trim_leading_space: false
  max_size: 1MB
  rate_limit: 2048
  token: $TECHJOBS_TOKEN
  headers:
    X-Api-Key: ${TECHJOBS_TOKEN}
  region: eu-west-1
server:
  listen_addr: http://127.0.0.1:9090
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Fatalf("Expected debug log level, got %q", cfg.LogLevel)
	}
	if cfg.Data.Location != "s3://jobs-bucket/job_data.csv" {
		t.Fatalf("Expected expanded location, got %q", cfg.Data.Location)
	}
	if cfg.Data.Comma() != ';' {
		t.Fatalf("Expected ';' delimiter, got %q", cfg.Data.Comma())
	}
	if cfg.Data.TrimSpace() {
		t.Fatal("Expected trim_leading_space to be disabled")
	}
	if cfg.Data.MaxBytes() != types.Bytes(1000*1000) {
		t.Fatalf("Expected 1MB max size, got %d", cfg.Data.MaxBytes())
	}
	if cfg.Data.RateLimit != 2048 {
		t.Fatalf("Expected 2048 rate limit, got %d", cfg.Data.RateLimit)
	}
	if cfg.Data.Token != "secret" || cfg.Data.Headers["X-Api-Key"] != "secret" {
		t.Fatalf("Expected expanded credentials, got %q %v", cfg.Data.Token, cfg.Data.Headers)
	}
	if cfg.Data.Region != "eu-west-1" {
		t.Fatalf("Expected region eu-west-1, got %q", cfg.Data.Region)
	}
	if cfg.Server.ListenAddr.Host != "127.0.0.1:9090" {
		t.Fatalf("Unexpected listen address: %s", cfg.Server.ListenAddr)
	}
	if cfg.Client.ServerURL.String() != "http://localhost:8080" {
		t.Fatalf("Expected default client url, got %s", cfg.Client.ServerURL)
	}
}

func TestLoadConfig_UnlimitedMaxSize(t *testing.T) {
	path := writeConfig(t, "data:\n  location: x.csv\n  max_size: 0\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Data.MaxSize == nil || cfg.Data.MaxBytes() != 0 {
		t.Fatalf("Expected explicit zero max size to stay unlimited, got %s", cfg.Data.MaxBytes())
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Expected not exist error for a named missing file, got %v", err)
	}
}

func TestRedacted(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	cfg.Data.Token = "secret"
	cfg.Data.Headers = map[string]string{"X-Api-Key": "key"}

	var buf bytes.Buffer
	if err := WriteYAML(&buf, Redacted(cfg)); err != nil {
		t.Fatalf("Failed to write YAML: %v", err)
	}
	if strings.Contains(buf.String(), "secret") || strings.Contains(buf.String(), "key\n") {
		t.Fatalf("Expected credentials to be masked in %q", buf.String())
	}
	if !strings.Contains(buf.String(), "X-Api-Key: REDACTED") {
		t.Fatalf("Expected masked header in %q", buf.String())
	}
	if cfg.Data.Token != "secret" || cfg.Data.Headers["X-Api-Key"] != "key" {
		t.Fatal("Expected original config to be left untouched")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "data: [unterminated")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("Expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Config)
		wantErr bool
	}{
		{"defaults", func(*types.Config) {}, false},
		{"tab delimiter", func(c *types.Config) { c.Data.Delimiter = "\t" }, false},
		{"empty location", func(c *types.Config) { c.Data.Location = "" }, true},
		{"long delimiter", func(c *types.Config) { c.Data.Delimiter = "::" }, true},
		{"quote delimiter", func(c *types.Config) { c.Data.Delimiter = `"` }, true},
		{"newline delimiter", func(c *types.Config) { c.Data.Delimiter = "\n" }, true},
		{"listen without host", func(c *types.Config) { c.Server.ListenAddr.Host = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig("")
			if err != nil {
				t.Fatalf("Failed to load defaults: %v", err)
			}
			tt.mutate(cfg)
			if err := Validate(cfg); (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	cfg.Data.Location = "https://example.com/jobs.csv"

	var buf bytes.Buffer
	if err := WriteYAML(&buf, cfg); err != nil {
		t.Fatalf("Failed to write YAML: %v", err)
	}
	if !strings.Contains(buf.String(), "max_size: 64 MiB") {
		t.Fatalf("Expected humanized max size in %q", buf.String())
	}

	var decoded types.Config
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to decode written YAML: %v", err)
	}
	if decoded.Data.Location != cfg.Data.Location {
		t.Fatalf("Expected location %q, got %q", cfg.Data.Location, decoded.Data.Location)
	}
	if decoded.Server == nil || decoded.Server.ListenAddr.String() != "http://0.0.0.0:8080" {
		t.Fatalf("Unexpected listen address after round trip: %+v", decoded.Server)
	}
}

func TestSaveYAML(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	cfg.Data.Delimiter = "|"

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := SaveYAML(path, cfg); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if loaded.Data.Comma() != '|' {
		t.Fatalf("Expected '|' delimiter, got %q", loaded.Data.Comma())
	}

	if err := SaveYAML("", cfg); err == nil {
		t.Fatal("Expected error for empty path")
	}
}

func TestResolveConfigPath(t *testing.T) {
	path := writeConfig(t, "log_level: warn\n")
	if got := ResolveConfigPath(path); got != path {
		t.Fatalf("Expected %q, got %q", path, got)
	}
	if got := ResolveConfigPath("missing.yaml"); got != "missing.yaml" {
		t.Fatalf("Expected a named path to be returned as is, got %q", got)
	}
}
