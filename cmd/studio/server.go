package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/studio/internal/logger"
	"github.com/nikbrunner/studio/internal/remote/fakeserver"
)

func fakeServerCmd() *cobra.Command {
	var (
		addr   string
		noSeed bool
	)

	cmd := &cobra.Command{
		Use:   "fake-server",
		Short: "Serve an in-memory bookmark API for offline use",
		Long: `Serve an in-memory bookmark API for offline use.

Sign in with any string as the ID token. The demo users sign in with their
usernames: mayat, jonp and ellaw.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log, err := logger.New(logger.Options{Level: cfg.Log.Level, Pretty: true})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Sync()

			fs := fakeserver.New(log)
			if !noSeed {
				fs.SeedDemo()
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           fs.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("fake server listening",
					logger.String("addr", addr),
					logger.String("base_url", "http://"+displayAddr(addr)+fakeserver.Prefix))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			log.Info("shutting down", logger.Int("requests", fs.Requests()))
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().BoolVar(&noSeed, "empty", false, "start without demo bookmarks")
	return cmd
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
