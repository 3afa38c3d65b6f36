package scenario

import "github.com/thesyncim/dmapp-e2e/pkg/uidriver"

// The frontend localises its labels through i18n with Spanish defaults, so
// text locators accept both languages.
var (
	UsernameInput = uidriver.Name("username")
	PasswordInput = uidriver.Name("password")
	SubmitButton  = uidriver.XPath("//button[@type='submit']")

	CampaignsNavItem  = uidriver.Text("span", "Campañas", "Campaigns")
	NewCampaignButton = uidriver.Text("button", "Nueva campaña", "New campaign")

	Dialog                = uidriver.XPath("//div[contains(@role, 'dialog')]")
	DialogNameInput       = uidriver.XPath("//input[@type='text']").Within(Dialog)
	DialogDescriptionArea = uidriver.XPath("//textarea").Within(Dialog)
	SaveButton            = uidriver.Text("button", "Guardar", "Save").With("type", "submit")
)

// Markers that identify application states in rendered output.
var (
	// WelcomeMarkers appear in the page once a user is signed in.
	WelcomeMarkers = []string{"Bienvenido", "welcome", "Dungeon Master"}

	// AuthenticatedTitleMarker is accepted in the title instead of a
	// welcome marker.
	AuthenticatedTitleMarker = "DM App"

	// TitleMarkers identify the application by its document title.
	TitleMarkers = []string{"Dungeon Master", "Master Help", "DM App"}
)
