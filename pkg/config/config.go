// Package config loads the settings shared by the browser test suite and the
// command-line runner: where the application under test lives, which
// credentials to use, and how to drive Chrome.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thesyncim/dmapp-e2e/pkg/uidriver"
)

// Environment variables read by ApplyEnv.
const (
	EnvBaseURL     = "E2E_BASE_URL"
	EnvUsername    = "E2E_USERNAME"
	EnvPassword    = "E2E_PASSWORD"
	EnvHeadless    = "E2E_HEADLESS"
	EnvChromeBin   = "E2E_CHROME_BIN"
	EnvStepTimeout = "E2E_STEP_TIMEOUT"
)

// Credentials is a static username/password pair for the test account.
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Config holds suite configuration.
type Config struct {
	BaseURL     string          `yaml:"base_url"`     // Application root, e.g. http://localhost:5173
	Credentials Credentials     `yaml:"credentials"`  // Test account
	Browser     uidriver.Config `yaml:"browser"`      // Chrome and wait settings
	StepTimeout time.Duration   `yaml:"step_timeout"` // Explicit wait per scenario step
}

// Default returns the configuration of a local dev setup: the Vite dev
// server on port 5173 and the seeded test account.
func Default() Config {
	return Config{
		BaseURL: "http://localhost:5173",
		Credentials: Credentials{
			Username: "testuser",
			Password: "testpass",
		},
		Browser:     uidriver.DefaultConfig(),
		StepTimeout: 10 * time.Second,
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays values from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := lookup(EnvUsername); ok && v != "" {
		c.Credentials.Username = v
	}
	if v, ok := lookup(EnvPassword); ok {
		c.Credentials.Password = v
	}
	if v, ok := lookup(EnvChromeBin); ok {
		c.Browser.Bin = v
	}
	if v, ok := lookup(EnvHeadless); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHeadless, err)
		}
		c.Browser.Headless = b
	}
	if v, ok := lookup(EnvStepTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStepTimeout, err)
		}
		c.StepTimeout = d
	}
	return nil
}

// Validate checks that the configuration can drive a test run.
func (c Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("base_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("base_url: scheme must be http or https, got %q", u.Scheme))
	case u.Host == "":
		errs = append(errs, errors.New("base_url: missing host"))
	}

	if c.Credentials.Username == "" {
		errs = append(errs, errors.New("credentials.username is required"))
	}
	if c.StepTimeout <= 0 {
		errs = append(errs, fmt.Errorf("step_timeout must be positive, got %v", c.StepTimeout))
	}
	if c.Browser.PollInterval < 0 || c.Browser.ImplicitWait < 0 {
		errs = append(errs, errors.New("browser waits must not be negative"))
	}
	return errors.Join(errs...)
}

// URL resolves an application path against BaseURL.
func (c Config) URL(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
