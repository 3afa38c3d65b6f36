package uidriver

import (
	"time"

	"go.uber.org/zap"
)

// Config configures Chrome launch options and session waits.
type Config struct {
	Headless  bool   `yaml:"headless"`   // Run without a visible window (default: true)
	NoSandbox bool   `yaml:"no_sandbox"` // Disable the Chrome sandbox, needed in most containers
	Bin       string `yaml:"bin"`        // Chrome binary; empty lets Rod find or download one

	// UserDataDir is the Chrome profile directory. Empty uses a fresh
	// temporary one. Either way it is removed on Close.
	UserDataDir string `yaml:"user_data_dir"`

	ImplicitWait      time.Duration `yaml:"implicit_wait"`      // Floor for every lookup timeout
	PollInterval      time.Duration `yaml:"poll_interval"`      // Interval between polls in Find and WaitUntil
	NavigationTimeout time.Duration `yaml:"navigation_timeout"` // Bound for Open
	ActionTimeout     time.Duration `yaml:"action_timeout"`     // Bound for a single click or keystroke batch

	Logger *zap.Logger `yaml:"-"`
}

// DefaultConfig returns sensible defaults for E2E testing.
func DefaultConfig() Config {
	return Config{
		Headless:          true,
		NoSandbox:         true,
		ImplicitWait:      5 * time.Second,
		PollInterval:      100 * time.Millisecond,
		NavigationTimeout: 30 * time.Second,
		ActionTimeout:     10 * time.Second,
	}
}

func (c Config) implicitWait() time.Duration {
	if c.ImplicitWait < 0 {
		return 0
	}
	return c.ImplicitWait
}

func (c Config) pollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return 100 * time.Millisecond
	}
	return c.PollInterval
}

func (c Config) navigationTimeout() time.Duration {
	if c.NavigationTimeout <= 0 {
		return 30 * time.Second
	}
	return c.NavigationTimeout
}

func (c Config) actionTimeout() time.Duration {
	if c.ActionTimeout <= 0 {
		return 10 * time.Second
	}
	return c.ActionTimeout
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
