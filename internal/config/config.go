// Package config provides configuration management for gitbrowse.
//
// Config file locations (priority order):
//  1. $GITBROWSE_CONFIG
//  2. ./gitbrowse.yaml
//  3. $XDG_CONFIG_HOME/gitbrowse/config.yaml
//  4. ~/.config/gitbrowse/config.yaml
//  5. /etc/gitbrowse/config.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gitbrowse/internal/domain"
)

// Defaults for a new installation
const (
	DefaultAddr        = ":8080"
	DefaultDBPath      = "./gitbrowse.db"
	DefaultPageSize    = 25
	DefaultMaxPageSize = 500
	DefaultCacheTTL    = 30 * time.Second
	DefaultDebounce    = 500 * time.Millisecond
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(10 * time.Second)
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = Duration(30 * time.Second)
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = Duration(60 * time.Second)
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDBPath
	}
	if c.Catalog.Debounce == 0 {
		c.Catalog.Debounce = Duration(DefaultDebounce)
	}
	if c.Listing.PageSize == 0 {
		c.Listing.PageSize = DefaultPageSize
	}
	if c.Listing.MaxPageSize == 0 {
		c.Listing.MaxPageSize = DefaultMaxPageSize
	}
	if c.Listing.DefaultSort == "" {
		c.Listing.DefaultSort = string(domain.SortByLastChange)
	}
	if c.Listing.CacheTTL == 0 {
		c.Listing.CacheTTL = Duration(DefaultCacheTTL)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

// Validate checks settings that defaults cannot repair
func (c *Config) Validate() error {
	if c.Listing.PageSize < 1 {
		return fmt.Errorf("%w: listing.page_size must be at least 1, got %d", ErrInvalidConfig, c.Listing.PageSize)
	}
	if c.Listing.MaxPageSize < c.Listing.PageSize {
		return fmt.Errorf("%w: listing.max_page_size %d is below page_size %d",
			ErrInvalidConfig, c.Listing.MaxPageSize, c.Listing.PageSize)
	}
	if c.Catalog.Debounce < 0 {
		return fmt.Errorf("%w: catalog.debounce must not be negative", ErrInvalidConfig)
	}
	if c.Listing.CacheTTL < 0 {
		return fmt.Errorf("%w: listing.cache_ttl must not be negative", ErrInvalidConfig)
	}
	if _, err := domain.ParseSortKey(c.Listing.DefaultSort); err != nil {
		return fmt.Errorf("%w: listing.default_sort: %v", ErrInvalidConfig, err)
	}
	for i, a := range c.Web.Admins {
		if a.Username == "" || a.PasswordHash == "" {
			return fmt.Errorf("%w: web.admins[%d] needs username and password_hash", ErrInvalidConfig, i)
		}
	}
	return nil
}

// DefaultSortState returns the configured initial sort of the listing
func (c *Config) DefaultSortState() domain.SortState {
	key, err := domain.ParseSortKey(c.Listing.DefaultSort)
	if err != nil {
		return domain.DefaultSortState()
	}
	return domain.SortState{Key: key, Ascending: c.Listing.DefaultAscending}
}

// AuthenticateWebUI reports whether the web UI requires authentication
func (c *Config) AuthenticateWebUI() bool {
	return c.Web.AuthenticateWebUI == nil || *c.Web.AuthenticateWebUI
}

// ShowAdmin decides whether administration links are offered. With web
// authentication on, the user must also be an administrator.
func (c *Config) ShowAdmin(canAdmin bool) bool {
	if c.AuthenticateWebUI() {
		return c.Web.AllowAdministration && canAdmin
	}
	return c.Web.AllowAdministration
}

// Admin returns the administrator account with the given username
func (c *Config) Admin(username string) (AdminConfig, bool) {
	for _, a := range c.Web.Admins {
		if a.Username == username {
			return a, true
		}
	}
	return AdminConfig{}, false
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	sort := c.DefaultSortState()
	summary := fmt.Sprintf("Addr: %s, Database: %s\n", c.Server.Addr, c.Database.Path)
	summary += fmt.Sprintf("Listing: page size %d (max %d), sort %s, cache %s",
		c.Listing.PageSize, c.Listing.MaxPageSize, sort, c.Listing.CacheTTL.Duration())
	if c.Catalog.Path != "" {
		summary += fmt.Sprintf("\nCatalog: %s (watch: %t)", c.Catalog.Path, c.Catalog.Watch)
	}
	return summary
}
