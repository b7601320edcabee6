// Package cli implements the gitbrowse command line.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gitbrowse/internal/config"
	"gitbrowse/internal/logging"
	"gitbrowse/internal/repository/sqlite"
	"gitbrowse/internal/service"
)

// app carries the state shared by subcommands after flag parsing
type app struct {
	configPath string
	logLevel   string
	dbPath     string

	cfg     *config.Config
	cfgFrom string
	logger  zerolog.Logger
}

// NewRootCmd creates the root command with serve, list and import attached
func NewRootCmd(ver string) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "gitbrowse",
		Short:         "Sortable, paginated git repository listing",
		Long:          "gitbrowse serves and prints a sortable, paginated listing of git repositories.",
		Version:       ver,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"config file (default: search $GITBROWSE_CONFIG, ./gitbrowse.yaml, ~/.config/gitbrowse/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (overrides config)")

	cmd.AddCommand(newServeCmd(a), newListCmd(a), newImportCmd(a))
	return cmd
}

// init loads config and builds the logger
func (a *app) init(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, a.cfgFrom, err = config.LoadFromPath(a.configPath)
	} else {
		a.cfg, a.cfgFrom, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if a.dbPath != "" {
		a.cfg.Database.Path = a.dbPath
	}

	level := a.cfg.Logging.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.logger = logging.New(logging.Options{
		Level:  level,
		Format: a.cfg.Logging.Format,
		Out:    cmd.ErrOrStderr(),
	})

	if a.cfgFrom != "" {
		a.logger.Debug().Str("path", a.cfgFrom).Msg("config loaded")
	}
	return nil
}

// openStore opens the configured database
func (a *app) openStore() (*sqlite.Repository, error) {
	store, err := sqlite.New(a.cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", a.cfg.Database.Path, err)
	}
	return store, nil
}

// listingOptions maps the listing config onto service options
func (a *app) listingOptions() service.ListingOptions {
	return service.ListingOptions{
		DefaultSort: a.cfg.DefaultSortState(),
		PageSize:    a.cfg.Listing.PageSize,
		MaxPageSize: a.cfg.Listing.MaxPageSize,
		CacheTTL:    a.cfg.Listing.CacheTTL.Duration(),
		Logger:      logging.Component(a.logger, "listing"),
	}
}
