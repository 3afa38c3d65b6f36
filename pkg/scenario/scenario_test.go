package scenario

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/thesyncim/dmapp-e2e/pkg/config"
	"github.com/thesyncim/dmapp-e2e/pkg/uidriver"
)

var testCampaign = Campaign{Name: "Campaña Selenium", Description: "Descripción de prueba automatizada."}

func newTestRunner(t *testing.T, d Driver) *Runner {
	t.Helper()
	return NewRunner(d, config.Default(), zaptest.NewLogger(t))
}

func TestLogin_Success(t *testing.T) {
	for _, welcome := range []string{"Bienvenido", "welcome", "Dungeon Master"} {
		t.Run(welcome, func(t *testing.T) {
			app := newFakeApp(welcome)
			r := newTestRunner(t, app.d)

			require.NoError(t, r.Login(config.Default().Credentials))

			assert.Equal(t, []string{"http://localhost:5173/login"}, app.d.opened)
			assert.Equal(t, "testuser", app.username.value)
			assert.Equal(t, "testpass", app.password.value)
			assert.Equal(t, 1, app.submit.clicks)
			assert.Equal(t, Authenticated, r.Stage())
		})
	}
}

func TestLogin_TitleMarker(t *testing.T) {
	app := newFakeApp("")
	app.submit.onClick = func() { app.d.title = "DM App" }
	r := newTestRunner(t, app.d)

	require.NoError(t, r.Login(config.Default().Credentials))
	assert.Equal(t, Authenticated, r.Stage())
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newFakeApp("Bienvenido")
	r := newTestRunner(t, app.d)

	err := r.Login(config.Credentials{Username: "testuser", Password: "nope"})

	var af *uidriver.AssertionFailure
	require.ErrorAs(t, err, &af)
	assert.ErrorIs(t, err, uidriver.ErrWaitTimeout)
	assert.Equal(t, []string{"Bienvenido", "welcome", "Dungeon Master", "DM App"}, af.Want)
	assert.Equal(t, NavigatedToLogin, r.Stage(), "stage must not advance on failure")
}

func TestLogin_NavigationError(t *testing.T) {
	app := newFakeApp("Bienvenido")
	app.d.openErr = errors.New("net::ERR_CONNECTION_REFUSED")
	r := newTestRunner(t, app.d)

	err := r.Login(config.Default().Credentials)

	var navErr *uidriver.NavigationError
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, "http://localhost:5173/login", navErr.URL)
	assert.Equal(t, Created, r.Stage())
}

func TestLogin_MissingForm(t *testing.T) {
	app := newFakeApp("Bienvenido")
	delete(app.d.elements, UsernameInput.String())
	r := newTestRunner(t, app.d)

	err := r.Login(config.Default().Credentials)

	var nf *uidriver.ElementNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, UsernameInput, nf.Locator)
	assert.Equal(t, uidriver.Visible, nf.Condition)
}

func TestCheckHomepageTitle(t *testing.T) {
	for _, title := range []string{"Dungeon Master Help", "Master Help", "DM App"} {
		t.Run(title, func(t *testing.T) {
			d := newFakeDriver()
			d.title = title
			r := newTestRunner(t, d)

			require.NoError(t, r.CheckHomepageTitle())
			assert.Equal(t, []string{"http://localhost:5173/"}, d.opened)
			assert.Equal(t, Created, r.Stage(), "homepage check does not authenticate")
		})
	}
}

func TestCheckHomepageTitle_WrongTitle(t *testing.T) {
	d := newFakeDriver()
	d.title = "Vite + React"
	r := newTestRunner(t, d)

	err := r.CheckHomepageTitle()

	var af *uidriver.AssertionFailure
	require.ErrorAs(t, err, &af)
	assert.Equal(t, TitleMarkers, af.Want)
}

func TestCreateCampaign(t *testing.T) {
	app := newFakeApp("Bienvenido")
	app.name.value = "stale"
	r := newTestRunner(t, app.d)
	require.NoError(t, r.Login(config.Default().Credentials))

	require.NoError(t, r.CreateCampaign(testCampaign))

	assert.Equal(t, 1, app.nav.clicks)
	assert.Equal(t, 1, app.newBtn.clicks)
	assert.Equal(t, 1, app.name.clears)
	assert.Equal(t, 1, app.desc.clears)
	assert.Equal(t, "Campaña Selenium", app.name.value, "stale input must be cleared first")
	assert.Equal(t, "Descripción de prueba automatizada.", app.desc.value)
	assert.Equal(t, 1, app.save.clicks)
	assert.Contains(t, app.d.text, "Campaña Selenium")
}

func TestCreateCampaign_RequiresLogin(t *testing.T) {
	app := newFakeApp("Bienvenido")
	r := newTestRunner(t, app.d)

	err := r.CreateCampaign(testCampaign)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, app.nav.clicks)
}

func TestCreateCampaign_EmptyName(t *testing.T) {
	app := newFakeApp("Bienvenido")
	r := newTestRunner(t, app.d)
	require.NoError(t, r.Login(config.Default().Credentials))

	assert.Error(t, r.CreateCampaign(Campaign{Name: "  ", Description: "x"}))
	assert.Zero(t, app.nav.clicks)
}

func TestCreateCampaign_SaveDisabled(t *testing.T) {
	app := newFakeApp("Bienvenido")
	r := newTestRunner(t, app.d)
	require.NoError(t, r.Login(config.Default().Credentials))

	err := r.CreateCampaign(Campaign{Name: "Campaña Selenium"})

	var ni *uidriver.ElementNotInteractableError
	require.ErrorAs(t, err, &ni)
	assert.Equal(t, SaveButton, ni.Locator)
	assert.Zero(t, app.save.clicks, "a disabled save button must not be clicked")
}

func TestCreateCampaign_NeverListed(t *testing.T) {
	app := newFakeApp("Bienvenido")
	app.save.onClick = nil
	r := newTestRunner(t, app.d)
	require.NoError(t, r.Login(config.Default().Credentials))

	err := r.CreateCampaign(testCampaign)

	var af *uidriver.AssertionFailure
	require.ErrorAs(t, err, &af)
	assert.Equal(t, []string{"Campaña Selenium"}, af.Want)
}

func TestCheckSaveGating(t *testing.T) {
	app := newFakeApp("Bienvenido")
	r := newTestRunner(t, app.d)
	require.NoError(t, r.Login(config.Default().Credentials))

	require.NoError(t, r.CheckSaveGating(testCampaign))
	assert.Zero(t, app.save.clicks, "gating check must not submit")
}

func TestCheckSaveGating_EnabledWhenEmpty(t *testing.T) {
	app := newFakeApp("Bienvenido")
	app.save.enabled = func() bool { return true }
	r := newTestRunner(t, app.d)
	require.NoError(t, r.Login(config.Default().Credentials))

	var af *uidriver.AssertionFailure
	require.ErrorAs(t, r.CheckSaveGating(testCampaign), &af)
	assert.Contains(t, af.Description, "empty form")
}

func TestCheckSaveGating_NeverEnabled(t *testing.T) {
	app := newFakeApp("Bienvenido")
	app.save.enabled = func() bool { return false }
	r := newTestRunner(t, app.d)
	require.NoError(t, r.Login(config.Default().Credentials))

	err := r.CheckSaveGating(testCampaign)
	assert.ErrorIs(t, err, uidriver.ErrWaitTimeout)
}

func TestClose_ExactlyOnce(t *testing.T) {
	app := newFakeApp("Bienvenido")
	r := newTestRunner(t, app.d)

	// A failed step must not prevent release.
	require.Error(t, r.CreateCampaign(testCampaign))

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Equal(t, 1, app.d.closes)
	assert.Equal(t, Closed, r.Stage())

	assert.ErrorIs(t, r.Login(config.Default().Credentials), ErrClosed)
	assert.ErrorIs(t, r.CheckHomepageTitle(), ErrClosed)
	assert.ErrorIs(t, r.CreateCampaign(testCampaign), ErrClosed)
}

func TestNewRunner_DefaultTimeout(t *testing.T) {
	cfg := config.Default()
	cfg.StepTimeout = 0
	r := NewRunner(newFakeDriver(), cfg, nil)
	assert.Equal(t, config.Default().StepTimeout, r.timeout)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "navigated-to-login", NavigatedToLogin.String())
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "stage(7)", Stage(7).String())
}

func TestOpenNewCampaignDialog(t *testing.T) {
	app := newFakeApp("Bienvenido")
	r := newTestRunner(t, app.d)

	_, err := r.OpenNewCampaignDialog()
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, app.nav.clicks)

	require.NoError(t, r.Login(config.Default().Credentials))
	el, err := r.OpenNewCampaignDialog()
	require.NoError(t, err)
	assert.Equal(t, DialogNameInput, el.Locator())
	assert.Equal(t, 1, app.nav.clicks)
	assert.Equal(t, 1, app.newBtn.clicks)
}
