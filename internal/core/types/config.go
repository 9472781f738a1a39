package types

import (
	"net/url"
)

// mustParseURL is a helper for parsing URLs in default configs
func mustParseURL(rawURL string) *url.URL {
	u, err := url.Parse(rawURL)
	if err != nil {
		panic("invalid default URL: " + rawURL)
	}
	return u
}

// Config is the top-level configuration structure
type Config struct {
	Debug    bool   `yaml:"debug"`
	LogLevel string `yaml:"log_level"`

	Data DataConfig `yaml:"data"`

	// Only read by the binary that needs them
	Server *ServerConfig `yaml:"server,omitempty"`
	Client *ClientConfig `yaml:"client,omitempty"`
}

// DataConfig describes where the job listings live and how to read them
type DataConfig struct {
	Location         string `yaml:"location"`           // Path, http(s):// or s3:// URL
	Delimiter        string `yaml:"delimiter"`          // Single character field separator
	TrimLeadingSpace *bool  `yaml:"trim_leading_space"` // Ignore spaces after a delimiter
	MaxSize          *Bytes `yaml:"max_size"`           // Reject larger sources (0 = unlimited)
	RateLimit        Bytes  `yaml:"rate_limit"`         // Bytes per second when reading (0 = unlimited)

	// Remote source settings
	Token   string            `yaml:"token"`   // Bearer token for HTTP sources
	Headers map[string]string `yaml:"headers"` // Extra HTTP request headers
	Region  string            `yaml:"region"`  // AWS region for S3 sources
	Profile string            `yaml:"profile"` // AWS profile for S3 sources
}

// Comma returns the delimiter as a rune, defaulting to ','.
func (d DataConfig) Comma() rune {
	for _, r := range d.Delimiter {
		return r
	}
	return ','
}

// MaxBytes returns the size limit, zero when unlimited.
func (d DataConfig) MaxBytes() Bytes {
	if d.MaxSize == nil {
		return 0
	}
	return *d.MaxSize
}

// TrimSpace reports whether leading spaces in a field are dropped.
func (d DataConfig) TrimSpace() bool {
	if d.TrimLeadingSpace == nil {
		return true
	}
	return *d.TrimLeadingSpace
}

// ServerConfig holds configuration for the query daemon
type ServerConfig struct {
	ListenAddr *url.URL `yaml:"listen_addr"` // Address to bind the query API
}

// UnmarshalYAML implements custom YAML unmarshaling for ServerConfig
func (s *ServerConfig) UnmarshalYAML(unmarshal func(any) error) error {
	var raw struct {
		ListenAddr string `yaml:"listen_addr"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if raw.ListenAddr != "" {
		parsed, err := url.Parse(raw.ListenAddr)
		if err != nil {
			return err
		}
		s.ListenAddr = parsed
	}
	return nil
}

// MarshalYAML writes the listen address back as a plain string
func (s ServerConfig) MarshalYAML() (any, error) {
	out := map[string]string{}
	if s.ListenAddr != nil {
		out["listen_addr"] = s.ListenAddr.String()
	}
	return out, nil
}

// ClientConfig holds configuration for the console client
type ClientConfig struct {
	ServerURL *url.URL `yaml:"server_url"` // Query daemon URL
}

// UnmarshalYAML implements custom YAML unmarshaling for ClientConfig
func (c *ClientConfig) UnmarshalYAML(unmarshal func(any) error) error {
	var raw struct {
		ServerURL string `yaml:"server_url"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if raw.ServerURL != "" {
		parsed, err := url.Parse(raw.ServerURL)
		if err != nil {
			return err
		}
		c.ServerURL = parsed
	}
	return nil
}

// MarshalYAML writes the server URL back as a plain string
func (c ClientConfig) MarshalYAML() (any, error) {
	out := map[string]string{}
	if c.ServerURL != nil {
		out["server_url"] = c.ServerURL.String()
	}
	return out, nil
}

// DefaultDataConfig returns default data source configuration
func DefaultDataConfig() DataConfig {
	trim := true
	maxSize := Bytes(64 * 1024 * 1024)
	return DataConfig{
		Location:         "resources/job_data.csv",
		Delimiter:        ",",
		TrimLeadingSpace: &trim,
		MaxSize:          &maxSize,
		RateLimit:        Bytes(0),                // Unlimited
		Headers:          make(map[string]string),
	}
}

// DefaultServerConfig returns default daemon configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr: mustParseURL("http://0.0.0.0:8080"),
	}
}

// DefaultClientConfig returns default client configuration
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ServerURL: mustParseURL("http://localhost:8080"),
	}
}
