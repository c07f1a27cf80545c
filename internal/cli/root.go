// Package cli contains the contentbrowser commands
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"contentbrowser/internal/config"
	"contentbrowser/internal/domain"
)

// options holds the global flags
type options struct {
	configPath string
	catalog    string
	route      string
	display    string
	logFile    string
	debug      bool
}

// NewRootCommand builds the command tree. Without a subcommand the TUI runs.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}
	var closeLog func()

	root := &cobra.Command{
		Use:   "contentbrowser",
		Short: "Browse the JavaFX community catalog in the terminal",
		Long: `contentbrowser is a terminal browser for a catalog of JavaFX videos, blogs,
people, companies, books, libraries, tools, tutorials, apps, news and downloads.

Example usage:
  contentbrowser                             # Start on the home page
  contentbrowser --route '?page=/VIDEOS'     # Start on the videos view
  contentbrowser routes                      # List all views and their routes
  contentbrowser facets VIDEOS --filter Event=Devoxx
  contentbrowser related person dlemmermann`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			closeLog, err = setupLogging(opts.logFile, opts.debug)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeLog != nil {
				closeLog()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/contentbrowser/config.toml)")
	flags.StringVar(&opts.catalog, "catalog", "", "TOML catalog file (default is the built-in sample)")
	flags.StringVar(&opts.route, "route", "", "start route, e.g. '?page=/VIDEOS&item=<id>'")
	flags.StringVar(&opts.display, "display", "", "display class: desktop, web, tablet or phone")
	flags.StringVar(&opts.logFile, "log-file", "contentbrowser.log", "log file")
	flags.BoolVar(&opts.debug, "debug", false, "debug logging")

	root.AddCommand(newRoutesCommand(opts))
	root.AddCommand(newFacetsCommand(opts))
	root.AddCommand(newRelatedCommand(opts))

	return root
}

// Execute runs the root command with the process arguments. SIGINT and
// SIGTERM cancel the command context.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return NewRootCommand(version).ExecuteContext(ctx)
}

// setupLogging installs the default slog logger writing to path. A TUI owns
// the terminal, so nothing is ever logged to stderr.
func setupLogging(path string, debug bool) (func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closeFn, nil
}

// loadConfig reads the config file and applies the flag overrides
func loadConfig(opts *options) (*config.Config, error) {
	svc := config.NewConfigServiceWithBus(nil, opts.configPath)

	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = svc.LoadFromPath(opts.configPath)
	} else {
		cfg, err = svc.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if opts.catalog != "" {
		cfg.Catalog = opts.catalog
	}
	if opts.route != "" {
		cfg.StartRoute = opts.route
	}
	if opts.display != "" {
		if _, err := domain.ParseDisplay(opts.display); err != nil {
			return nil, err
		}
		cfg.Display = opts.display
	}

	slog.Debug("configuration loaded",
		"path", svc.Path(),
		"catalog", cfg.Catalog,
		"start_route", cfg.StartRoute,
		"display", cfg.Display,
	)
	return cfg, nil
}
