//go:build e2e

package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/thesyncim/dmapp-e2e/cmd/fixture-app/server"
	"github.com/thesyncim/dmapp-e2e/pkg/config"
	"github.com/thesyncim/dmapp-e2e/pkg/scenario"
	"github.com/thesyncim/dmapp-e2e/pkg/uidriver"
)

// externalTarget reports whether E2E_BASE_URL points the suite at a
// deployed frontend.
func externalTarget() bool {
	return os.Getenv(config.EnvBaseURL) != ""
}

// targetConfig returns the suite configuration. With E2E_BASE_URL unset it
// starts a fixture server in the given locale, stopped when the test ends.
func targetConfig(t *testing.T, locale string) config.Config {
	t.Helper()
	cfg, _ := startTarget(t, locale)
	return cfg
}

// startTarget is targetConfig that also returns the fixture server, or nil
// when the suite runs against E2E_BASE_URL.
func startTarget(t *testing.T, locale string) (config.Config, *server.Server) {
	t.Helper()

	cfg := config.Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		t.Fatalf("invalid environment: %v", err)
	}
	cfg.Browser.Logger = zaptest.NewLogger(t).Named("driver")
	cfg.Browser.UserDataDir = newProfileDir(t)

	var srv *server.Server
	if !externalTarget() {
		fcfg := server.DefaultConfig()
		fcfg.Locale = locale
		fcfg.Users = map[string]string{cfg.Credentials.Username: cfg.Credentials.Password}
		fcfg.Logger = zaptest.NewLogger(t).Named("fixture")
		var err error
		srv, err = server.NewServer(fcfg)
		if err != nil {
			t.Fatalf("failed to create fixture server: %v", err)
		}
		addr, err := srv.Start()
		if err != nil {
			t.Fatalf("failed to start fixture server: %v", err)
		}
		t.Cleanup(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				t.Errorf("fixture shutdown error: %v", err)
			}
		})
		t.Logf("Fixture app started on %s (locale %s)", addr, locale)
		cfg.BaseURL = srv.URL()
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid config: %v", err)
	}
	return cfg, srv
}

// newSession launches Chrome for one test and closes it from t.Cleanup.
func newSession(t *testing.T, cfg uidriver.Config) *uidriver.Session {
	t.Helper()

	s, err := uidriver.Launch(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("browser close error: %v", err)
		}
	})
	return s
}

// newRunner returns a scenario runner on a fresh session.
func newRunner(t *testing.T, cfg config.Config) *scenario.Runner {
	t.Helper()

	r := scenario.NewRunner(newSession(t, cfg.Browser), cfg, zaptest.NewLogger(t).Named("scenario"))
	t.Cleanup(func() {
		if err := r.Close(); err != nil {
			t.Errorf("runner close error: %v", err)
		}
	})
	return r
}

// locales returns the fixture locales to cover. A deployed frontend has
// one language, whichever it is configured with.
func locales() []string {
	if externalTarget() {
		return []string{"external"}
	}
	return server.Locales()
}
