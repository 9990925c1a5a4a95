package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/monsterdex/monsterdex/internal/catalog"
	"github.com/monsterdex/monsterdex/internal/config"
	"github.com/monsterdex/monsterdex/internal/tui"
)

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	dataDir    string
	dbPath     string
	debug      bool
}

// session is the loaded state a command works against.
type session struct {
	cfg     *config.Config
	cfgPath string
	cat     *catalog.Catalog
	closeFn func()
}

func (s *session) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "monsterdex",
		Short: "Monster breeding catalog",
		Long: `monsterdex loads a creature catalog with its breeding relations and lets you
look up creatures, browse families and keep a farm of favorites.

Run without a subcommand to start the interactive session.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding the catalog data files")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Snapshot database path (overrides database.path)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newFamilyCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runInteractive(ctx context.Context, opts *options) error {
	s, err := openSession(ctx, opts, io.Discard)
	if err != nil {
		return err
	}
	defer s.Close()

	tui.Version = Version
	tui.BuildTime = BuildTime

	slog.Info("starting session",
		"creatures", s.cat.Len(),
		"farm_limit", s.cfg.Farm.Limit,
	)

	if err := tui.Run(ctx, s.cat, s.cfg); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	slog.Info("monsterdex shutdown complete")
	return nil
}

// openSession loads configuration, installs the default logger and builds
// the catalog. Without a configured log file, logs go to fallback.
func openSession(ctx context.Context, opts *options, fallback io.Writer) (*session, error) {
	s, err := openConfig(opts, fallback)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(ctx, s.cfg)
	if err != nil {
		s.Close()
		return nil, err
	}

	s.cat = cat
	return s, nil
}

// openConfig is openSession without the catalog, for commands that only
// read the snapshot database.
func openConfig(opts *options, fallback io.Writer) (*session, error) {
	cfg, cfgPath, err := config.Load(opts.configPath, true)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if opts.dataDir != "" {
		cfg.Data.Dir = opts.dataDir
	}

	closeLog, err := setupLogging(cfg, opts.debug, fallback)
	if err != nil {
		return nil, err
	}

	slog.Info("monsterdex starting",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cfgPath,
		"data_dir", cfg.Data.Dir,
	)

	return &session{cfg: cfg, cfgPath: cfgPath, closeFn: closeLog}, nil
}

// setupLogging installs the default slog logger. The returned func closes
// the log file, if one was opened.
func setupLogging(cfg *config.Config, debug bool, fallback io.Writer) (func(), error) {
	level := cfg.Logging.Level.SlogLevel()
	if debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	if logPath == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(fallback, handlerOpts)))
		return func() {}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, handlerOpts)))
	return func() { logFile.Close() }, nil
}

// loadCatalog builds the catalog from the configured data directory.
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	files := catalog.Files{
		Usage:     cfg.Data.UsageFile,
		Parentage: cfg.Data.ParentageFile,
		Creatures: cfg.Data.CreatureFile,
	}

	cat, err := catalog.Build(ctx, os.DirFS(cfg.Data.Dir), files, nil)
	if err != nil {
		return nil, err
	}
	return cat, nil
}
