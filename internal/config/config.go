package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the converter configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig configures where the assembly table comes from.
type SourceConfig struct {
	Kind        string `yaml:"kind"` // api, wiki
	APIBaseURL  string `yaml:"api_base_url"`
	WikiBaseURL string `yaml:"wiki_base_url"`
	Page        string `yaml:"page"`
	Table       int    `yaml:"table"` // 1-based table index on the page
	Timeout     string `yaml:"timeout"`
	MinInterval string `yaml:"min_interval"` // spacing between upstream requests
	Concurrency int    `yaml:"concurrency"`
	UserAgent   string `yaml:"user_agent"`
}

// OutputConfig configures the written dataset.
type OutputConfig struct {
	Format string `yaml:"format"` // json, csv, xlsx, sqlite
	Path   string `yaml:"path"`
	Header bool   `yaml:"header"` // CSV metadata rows
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	BodyLimit int    `yaml:"body_limit"` // bytes
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:        "api",
			APIBaseURL:  "https://www.wikitable2json.com",
			WikiBaseURL: "https://en.wikipedia.org",
			Page:        "11th_Meghalaya_Assembly",
			Table:       2,
			Timeout:     "30s",
			MinInterval: "500ms",
			Concurrency: 4,
			UserAgent:   "assembly-converter/1.0",
		},
		Output: OutputConfig{
			Format: "json",
			Header: true,
		},
		Server: ServerConfig{
			Addr:      ":8080",
			BodyLimit: 4 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ASSEMBLY_API_URL"); v != "" {
		c.Source.APIBaseURL = v
	}
	if v := os.Getenv("ASSEMBLY_WIKI_URL"); v != "" {
		c.Source.WikiBaseURL = v
	}
	if v := os.Getenv("ASSEMBLY_SOURCE"); v != "" {
		c.Source.Kind = v
	}
	if v := os.Getenv("ASSEMBLY_PAGE"); v != "" {
		c.Source.Page = v
	}
	if v := os.Getenv("ASSEMBLY_TABLE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Source.Table = n
		}
	}
	if v := os.Getenv("ASSEMBLY_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ASSEMBLY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// GetTimeout returns the upstream request timeout.
func (c *Config) GetTimeout() time.Duration {
	return parseDuration(c.Source.Timeout, 30*time.Second)
}

// GetMinInterval returns the minimum spacing between upstream requests.
func (c *Config) GetMinInterval() time.Duration {
	return parseDuration(c.Source.MinInterval, 0)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// ValidSources lists the supported source kinds.
var ValidSources = []string{"api", "wiki"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validSource := false
	for _, s := range ValidSources {
		if c.Source.Kind == s {
			validSource = true
			break
		}
	}
	if !validSource {
		return fmt.Errorf("invalid source kind: %s (valid: %v)", c.Source.Kind, ValidSources)
	}
	if c.Source.Page == "" {
		return fmt.Errorf("source page not configured (set source.page or ASSEMBLY_PAGE)")
	}
	if c.Source.Table < 1 {
		return fmt.Errorf("source table must be 1 or greater, got %d", c.Source.Table)
	}
	if _, err := time.ParseDuration(c.Source.Timeout); c.Source.Timeout != "" && err != nil {
		return fmt.Errorf("invalid source timeout %q: %w", c.Source.Timeout, err)
	}
	if _, err := time.ParseDuration(c.Source.MinInterval); c.Source.MinInterval != "" && err != nil {
		return fmt.Errorf("invalid source min_interval %q: %w", c.Source.MinInterval, err)
	}
	return nil
}
