package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Listing  ListingConfig  `yaml:"listing"`
	Web      WebConfig      `yaml:"web"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	IdleTimeout  Duration `yaml:"idle_timeout"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CatalogConfig points at an optional YAML repository catalog
type CatalogConfig struct {
	Path     string   `yaml:"path,omitempty"`
	Watch    bool     `yaml:"watch"`
	Debounce Duration `yaml:"debounce"` // quiet period before a reload
}

// ListingConfig holds repository listing defaults
type ListingConfig struct {
	PageSize         int      `yaml:"page_size"`
	MaxPageSize      int      `yaml:"max_page_size"`
	DefaultSort      string   `yaml:"default_sort"`
	DefaultAscending bool     `yaml:"default_ascending"`
	CacheTTL         Duration `yaml:"cache_ttl"`
}

// WebConfig holds settings shown on, or gating, the repositories page
type WebConfig struct {
	RepositoriesMessage string        `yaml:"repositories_message,omitempty"`
	AuthenticateWebUI   *bool         `yaml:"authenticate_web_ui,omitempty"` // nil = true
	AllowAdministration bool          `yaml:"allow_administration"`
	Admins              []AdminConfig `yaml:"admins,omitempty"`
}

// AdminConfig is an administrator account. PasswordHash is a bcrypt hash.
type AdminConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console, json
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
