package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	News    NewsConfig    `json:"news" yaml:"news"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	Tables  TablesConfig  `json:"tables" yaml:"tables"`
}

// ServerConfig contains the HTTP listener parameters.
type ServerConfig struct {
	Host         string `json:"host" yaml:"host"`
	Port         int    `json:"port" yaml:"port"`
	ReadTimeout  string `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout string `json:"write_timeout" yaml:"write_timeout"`
}

// StoreConfig locates the account/position/stats database.
type StoreConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// JournalConfig locates the audit database.
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// NewsConfig points at the economic-calendar feed. An empty URL disables
// the feed; validations then carry a "could not verify news schedule"
// warning for news-restricted accounts.
type NewsConfig struct {
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // json or console
}

// TablesConfig optionally overrides the compiled-in instrument and
// correlation tables.
type TablesConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// ParseTimeout converts a duration string with a fallback default.
func ParseTimeout(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path is required")
	}
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	for _, field := range []struct {
		name, value string
	}{
		{"server.read_timeout", c.Server.ReadTimeout},
		{"server.write_timeout", c.Server.WriteTimeout},
		{"news.timeout", c.News.Timeout},
	} {
		if field.value == "" {
			continue
		}
		if _, err := time.ParseDuration(field.value); err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8090,
			ReadTimeout:  "10s",
			WriteTimeout: "10s",
		},
		Store:   StoreConfig{DBPath: "./riskgate.db"},
		Journal: JournalConfig{DBPath: "./audit.db"},
		News:    NewsConfig{Timeout: "5s"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}
