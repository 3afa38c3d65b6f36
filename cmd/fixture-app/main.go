// Fixture App
//
// Serves a stand-in for the Dungeon Master Help frontend so the browser
// scenarios can be run by hand without the real stack:
//
//	go run ./cmd/fixture-app --addr :5173 --locale en
//	E2E_BASE_URL=http://localhost:5173 go test -tags=e2e ./e2e/...
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/thesyncim/dmapp-e2e/cmd/fixture-app/server"
)

var (
	addr        string
	locale      string
	renderDelay time.Duration
	username    string
	password    string
	verbose     bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fixture-app",
	Short: "Serve a stand-in Dungeon Master Help frontend for browser tests",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: serve,
}

func init() {
	def := server.DefaultConfig()
	rootCmd.Flags().StringVar(&addr, "addr", ":5173", "listen address")
	rootCmd.Flags().StringVar(&locale, "locale", def.Locale, "label language (es or en)")
	rootCmd.Flags().DurationVar(&renderDelay, "render-delay", def.RenderDelay, "delay before client-side content appears")
	rootCmd.Flags().StringVar(&username, "username", "testuser", "test account username")
	rootCmd.Flags().StringVar(&password, "password", "testpass", "test account password")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every request")
}

func serve(cmd *cobra.Command, args []string) error {
	cfg := server.DefaultConfig()
	cfg.Addr = addr
	cfg.Locale = locale
	cfg.RenderDelay = renderDelay
	cfg.Users = map[string]string{username: password}
	cfg.Logger = logger

	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if _, err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Fixture app ready on %s (locale %s, user %s)\n", srv.URL(), locale, username)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", zap.Stringer("signal", sig))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
