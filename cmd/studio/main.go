package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/studio/internal/clipboard"
	"github.com/nikbrunner/studio/internal/config"
	"github.com/nikbrunner/studio/internal/logger"
	"github.com/nikbrunner/studio/internal/remote"
	"github.com/nikbrunner/studio/internal/state"
	"github.com/nikbrunner/studio/internal/storage"
)

var (
	configPath string
	apiBase    string
	logStderr  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "studio",
		Short:        "Terminal client for a social bookmarking service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), state.Feed)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/studio/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "", "API base URL, overrides api.base_url")
	rootCmd.PersistentFlags().BoolVar(&logStderr, "log-stderr", false, "log to stderr instead of the log file")

	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(feedCmd())
	rootCmd.AddCommand(listCmd("mine", "List your bookmarks", state.Mine))
	rootCmd.AddCommand(listCmd("saved", "List bookmarks you saved", state.Saved))
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(saveCmd())
	rootCmd.AddCommand(shareCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(fakeServerCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app bundles everything a command needs to talk to the service.
type app struct {
	cfg   *config.Config
	log   logger.Logger
	store storage.Store
	sync  *state.Synchronizer
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("config path: %w", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if apiBase != "" {
		cfg.API.BaseURL = strings.TrimRight(apiBase, "/")
	}
	return cfg, nil
}

func newLogger(cfg config.LogConfig) (logger.Logger, error) {
	opts := logger.Options{Level: cfg.Level, Pretty: cfg.Pretty, File: cfg.File}
	if logStderr {
		opts.File = ""
		opts.Pretty = true
	}
	return logger.New(opts)
}

// openApp loads config, opens the prefs store and restores the persisted
// session. A session that fails to restore is reported but not fatal.
func openApp(ctx context.Context, clip clipboard.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	store, err := storage.Open(ctx, cfg.Prefs)
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}

	sync := state.New(state.Options{
		Service:   remote.NewClient(cfg.API.BaseURL, cfg.API.Timeout),
		Prefs:     storage.NewPrefs(store),
		Clipboard: clip,
		Logger:    log,
		PageSize:  cfg.API.PageSize,
	})

	a := &app{cfg: cfg, log: log, store: store, sync: sync}
	if err := sync.Restore(ctx); err != nil {
		log.Warn("restore failed", logger.Error(err))
	}
	return a, nil
}

func (a *app) Close() {
	_ = a.log.Sync()
	_ = a.store.Close()
}

// requireSession fails with the same wording the TUI uses when signed out.
func (a *app) requireSession() error {
	session := a.sync.Snapshot().Session
	if session.Active() {
		return nil
	}
	if session.Err != "" {
		return fmt.Errorf("session unavailable: %s (run `studio login`)", session.Err)
	}
	return fmt.Errorf("please sign in first (run `studio login`)")
}

// failure turns an operation error into the message the service gave.
func failure(err error, fallback string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", state.Message(err, fallback), err)
}
