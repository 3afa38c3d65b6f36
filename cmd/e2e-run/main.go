// E2E runner for the Dungeon Master Help web application.
//
// Runs the browser scenarios (homepage title, login, campaign creation)
// outside of go test and exits non-zero if any of them fails.
//
// Usage:
//
//	go run ./cmd/e2e-run                          # against http://localhost:5173
//	go run ./cmd/e2e-run --config e2e.yaml
//	go run ./cmd/e2e-run --fixture --locale en    # against an in-process fixture app
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/thesyncim/dmapp-e2e/cmd/fixture-app/server"
	"github.com/thesyncim/dmapp-e2e/pkg/config"
	"github.com/thesyncim/dmapp-e2e/pkg/scenario"
)

var (
	configPath   string
	baseURL      string
	headless     bool
	useFixture   bool
	locale       string
	campaignName string
	campaignDesc string
	verbose      bool

	logger *zap.Logger
)

// errFailed makes main exit 1 after the summary has been printed.
var errFailed = errors.New("one or more scenarios failed")

var rootCmd = &cobra.Command{
	Use:           "e2e-run",
	Short:         "Run the browser scenarios against a Dungeon Master Help deployment",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
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
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "application root URL (overrides config and "+config.EnvBaseURL+")")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "run Chrome without a window")
	rootCmd.Flags().BoolVar(&useFixture, "fixture", false, "run against an in-process fixture app")
	rootCmd.Flags().StringVar(&locale, "locale", "es", "fixture app label language")
	rootCmd.Flags().StringVar(&campaignName, "campaign", "Campaña Selenium", "name of the campaign to create")
	rootCmd.Flags().StringVar(&campaignDesc, "description", "Descripción de prueba automatizada.", "description of the campaign to create")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if cmd.Flags().Changed("headless") {
		cfg.Browser.Headless = headless
	}
	cfg.Browser.Logger = logger
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if useFixture {
		fcfg := server.DefaultConfig()
		fcfg.Locale = locale
		fcfg.Users = map[string]string{cfg.Credentials.Username: cfg.Credentials.Password}
		fcfg.Logger = logger.Named("fixture")
		srv, err := server.NewServer(fcfg)
		if err != nil {
			return err
		}
		if _, err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
		cfg.BaseURL = srv.URL()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Dungeon Master Help E2E\n")
	fmt.Fprintf(cmd.OutOrStdout(), "=======================\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Target: %s\n", cfg.BaseURL)
	fmt.Fprintf(cmd.OutOrStdout(), "User:   %s\n", cfg.Credentials.Username)

	campaign := scenario.Campaign{Name: campaignName, Description: campaignDesc}
	results := runAll(ctx, cfg, campaign, launchChrome, logger)
	if !printSummary(cmd.OutOrStdout(), results) {
		return errFailed
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
