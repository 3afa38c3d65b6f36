//go:build e2e

package e2e

import (
	"errors"
	"testing"
	"time"

	"github.com/thesyncim/dmapp-e2e/pkg/config"
	"github.com/thesyncim/dmapp-e2e/pkg/scenario"
	"github.com/thesyncim/dmapp-e2e/pkg/uidriver"
)

// TestLogin signs in with the test account and expects the post-login view.
func TestLogin(t *testing.T) {
	for _, locale := range locales() {
		t.Run(locale, func(t *testing.T) {
			cfg := targetConfig(t, locale)
			r := newRunner(t, cfg)

			if err := r.Login(cfg.Credentials); err != nil {
				t.Fatalf("login failed: %v", err)
			}
			if r.Stage() != scenario.Authenticated {
				t.Errorf("stage after login: got %s, want %s", r.Stage(), scenario.Authenticated)
			}
		})
	}
}

// TestLogin_WrongPassword must not reach the welcome view.
func TestLogin_WrongPassword(t *testing.T) {
	cfg := targetConfig(t, "es")
	cfg.StepTimeout = 2 * time.Second
	r := newRunner(t, cfg)

	err := r.Login(config.Credentials{Username: cfg.Credentials.Username, Password: cfg.Credentials.Password + "-wrong"})
	if err == nil {
		t.Fatal("login with a wrong password succeeded")
	}

	var af *uidriver.AssertionFailure
	if !errors.As(err, &af) {
		t.Fatalf("expected AssertionFailure, got %T: %v", err, err)
	}
	if !errors.Is(err, uidriver.ErrWaitTimeout) {
		t.Errorf("expected a wait timeout, got %v", err)
	}
	if r.Stage() != scenario.NavigatedToLogin {
		t.Errorf("stage after failed login: got %s, want %s", r.Stage(), scenario.NavigatedToLogin)
	}
}
