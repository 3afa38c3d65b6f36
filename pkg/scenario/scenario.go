// Package scenario implements the user journeys of the Dungeon Master Help
// web application on top of a UI driver: signing in, loading the homepage
// and creating a campaign.
package scenario

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thesyncim/dmapp-e2e/pkg/config"
	"github.com/thesyncim/dmapp-e2e/pkg/uidriver"
)

// Driver is the subset of *uidriver.Session the scenarios need.
type Driver interface {
	Open(url string) error
	Find(loc uidriver.Locator, cond uidriver.Condition, timeout time.Duration) (uidriver.Element, error)
	WaitUntil(description string, timeout time.Duration, pred func() (bool, error)) error
	PageContains(texts ...string) (bool, error)
	TitleContains(texts ...string) (bool, error)
	Close() error
}

var _ Driver = (*uidriver.Session)(nil)

var (
	// ErrNotAuthenticated is returned by steps that need a signed-in user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrClosed is returned by any step after Close.
	ErrClosed = errors.New("runner closed")
)

// Campaign is the input of the campaign form.
type Campaign struct {
	Name        string
	Description string
}

// Runner walks one driver session through the application. It tracks the
// session Stage and refuses steps that do not fit it.
type Runner struct {
	d       Driver
	cfg     config.Config
	timeout time.Duration
	log     *zap.Logger
	stage   Stage
}

// NewRunner returns a Runner driving d against the application at
// cfg.BaseURL. The Runner takes ownership of d and closes it in Close.
func NewRunner(d Driver, cfg config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.StepTimeout
	if timeout <= 0 {
		timeout = config.Default().StepTimeout
	}
	return &Runner{d: d, cfg: cfg, timeout: timeout, log: log, stage: Created}
}

// Stage returns the current stage.
func (r *Runner) Stage() Stage { return r.stage }

func (r *Runner) advance(s Stage) {
	r.log.Debug("stage", zap.Stringer("from", r.stage), zap.Stringer("to", s))
	r.stage = s
}

func (r *Runner) usable() error {
	if r.stage == Closed {
		return ErrClosed
	}
	return nil
}

// Login signs in through the login form and waits for the post-login view:
// a welcome marker in the page, or the authenticated title marker.
func (r *Runner) Login(creds config.Credentials) error {
	if err := r.usable(); err != nil {
		return err
	}
	if err := r.d.Open(r.cfg.URL("/login")); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	r.advance(NavigatedToLogin)

	user, err := r.d.Find(UsernameInput, uidriver.Visible, r.timeout)
	if err != nil {
		return err
	}
	if err := user.SendKeys(creds.Username); err != nil {
		return err
	}
	pass, err := r.d.Find(PasswordInput, uidriver.Visible, r.timeout)
	if err != nil {
		return err
	}
	if err := pass.SendKeys(creds.Password); err != nil {
		return err
	}
	submit, err := r.d.Find(SubmitButton, uidriver.Clickable, r.timeout)
	if err != nil {
		return err
	}
	if err := submit.Click(); err != nil {
		return err
	}

	err = r.d.WaitUntil("welcome after login", r.timeout, func() (bool, error) {
		ok, err := r.d.PageContains(WelcomeMarkers...)
		if err != nil || ok {
			return ok, err
		}
		return r.d.TitleContains(AuthenticatedTitleMarker)
	})
	if err != nil {
		return withWant(err, append(append([]string(nil), WelcomeMarkers...), AuthenticatedTitleMarker))
	}

	r.advance(Authenticated)
	r.log.Info("signed in", zap.String("username", creds.Username))
	return nil
}

// CheckHomepageTitle opens the homepage and waits for the title to name the
// application. It needs no authentication.
func (r *Runner) CheckHomepageTitle() error {
	if err := r.usable(); err != nil {
		return err
	}
	if err := r.d.Open(r.cfg.URL("/")); err != nil {
		return fmt.Errorf("open homepage: %w", err)
	}
	err := r.d.WaitUntil("application title", r.timeout, func() (bool, error) {
		return r.d.TitleContains(TitleMarkers...)
	})
	return withWant(err, TitleMarkers)
}

// OpenNewCampaignDialog goes to the campaigns view, opens the creation
// dialog and returns its name input once visible.
func (r *Runner) OpenNewCampaignDialog() (uidriver.Element, error) {
	if err := r.usable(); err != nil {
		return nil, err
	}
	if r.stage != Authenticated {
		return nil, fmt.Errorf("open campaign dialog in stage %s: %w", r.stage, ErrNotAuthenticated)
	}

	nav, err := r.d.Find(CampaignsNavItem, uidriver.Clickable, r.timeout)
	if err != nil {
		return nil, err
	}
	if err := nav.Click(); err != nil {
		return nil, err
	}
	r.log.Debug("campaigns view opened")

	newBtn, err := r.d.Find(NewCampaignButton, uidriver.Clickable, r.timeout)
	if err != nil {
		return nil, err
	}
	if err := newBtn.Click(); err != nil {
		return nil, err
	}

	name, err := r.d.Find(DialogNameInput, uidriver.Visible, r.timeout)
	if err != nil {
		return nil, err
	}
	r.log.Debug("campaign dialog opened")
	return name, nil
}

func (r *Runner) fillCampaignForm(name uidriver.Element, c Campaign) error {
	if err := name.Clear(); err != nil {
		return err
	}
	if err := name.SendKeys(c.Name); err != nil {
		return err
	}
	desc, err := r.d.Find(DialogDescriptionArea, uidriver.Visible, r.timeout)
	if err != nil {
		return err
	}
	if err := desc.Clear(); err != nil {
		return err
	}
	return desc.SendKeys(c.Description)
}

// CreateCampaign creates c through the campaign dialog and waits for its
// name to appear in the campaign list.
func (r *Runner) CreateCampaign(c Campaign) error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("campaign name is required")
	}

	name, err := r.OpenNewCampaignDialog()
	if err != nil {
		return err
	}
	if err := r.fillCampaignForm(name, c); err != nil {
		return err
	}

	save, err := r.d.Find(SaveButton, uidriver.Present, r.timeout)
	if err != nil {
		return err
	}
	enabled, err := save.Enabled()
	if err != nil {
		return err
	}
	if !enabled {
		return &uidriver.ElementNotInteractableError{
			Locator: SaveButton,
			Reason:  "save button disabled, check the required fields",
		}
	}
	if err := save.Click(); err != nil {
		return err
	}

	err = r.d.WaitUntil("campaign listed", r.timeout, func() (bool, error) {
		return r.d.PageContains(c.Name)
	})
	if err != nil {
		return withWant(err, []string{c.Name})
	}

	r.log.Info("campaign created", zap.String("name", c.Name))
	return nil
}

// CheckSaveGating verifies the campaign dialog's save button is disabled
// while the form is empty and enabled once name and description are set.
// The enabled state is read twice to confirm it is stable without input.
// The dialog is left open.
func (r *Runner) CheckSaveGating(c Campaign) error {
	name, err := r.OpenNewCampaignDialog()
	if err != nil {
		return err
	}

	save, err := r.d.Find(SaveButton, uidriver.Present, r.timeout)
	if err != nil {
		return err
	}
	enabled, err := save.Enabled()
	if err != nil {
		return err
	}
	if enabled {
		return &uidriver.AssertionFailure{Description: "save button enabled with an empty form"}
	}

	if err := r.fillCampaignForm(name, c); err != nil {
		return err
	}

	// The form re-renders on input, so look the button up again on every poll.
	err = r.d.WaitUntil("save button enabled", r.timeout, func() (bool, error) {
		btn, err := r.d.Find(SaveButton, uidriver.Present, 0)
		if err != nil {
			return false, err
		}
		return btn.Enabled()
	})
	if err != nil {
		return err
	}

	again, err := r.d.Find(SaveButton, uidriver.Present, r.timeout)
	if err != nil {
		return err
	}
	enabled, err = again.Enabled()
	if err != nil {
		return err
	}
	if !enabled {
		return &uidriver.AssertionFailure{Description: "save button enabled state changed without input"}
	}
	return nil
}

// Close releases the driver and moves to the Closed stage, whatever
// happened before. Only the first call closes the driver.
func (r *Runner) Close() error {
	if r.stage == Closed {
		return nil
	}
	r.advance(Closed)
	return r.d.Close()
}

func withWant(err error, want []string) error {
	var af *uidriver.AssertionFailure
	if errors.As(err, &af) && len(af.Want) == 0 {
		af.Want = want
	}
	return err
}
