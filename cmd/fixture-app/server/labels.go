package server

import (
	"fmt"
	"sort"
)

// Labels is the user-visible text of the fixture app in one language.
type Labels struct {
	Lang         string `json:"lang"`
	Title        string `json:"title"`
	SignIn       string `json:"signIn"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	LoginFailed  string `json:"loginFailed"`
	Welcome      string `json:"welcome"`
	Campaigns    string `json:"campaigns"`
	NewCampaign  string `json:"newCampaign"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Save         string `json:"save"`
	Cancel       string `json:"cancel"`
	NoCampaigns  string `json:"noCampaigns"`
	Loading      string `json:"loading"`
	SaveFailed   string `json:"saveFailed"`
	ManualsEntry string `json:"manualsEntry"`
}

var locales = map[string]Labels{
	"es": {
		Lang:         "es",
		Title:        "Master Help",
		SignIn:       "Iniciar sesión",
		Username:     "Usuario",
		Password:     "Contraseña",
		LoginFailed:  "Usuario o contraseña incorrectos",
		Welcome:      "Bienvenido",
		Campaigns:    "Campañas",
		NewCampaign:  "Nueva campaña",
		Name:         "Nombre *",
		Description:  "Descripción *",
		Save:         "Guardar",
		Cancel:       "Cancelar",
		NoCampaigns:  "Todavía no hay campañas",
		Loading:      "Cargando…",
		SaveFailed:   "No se pudo guardar la campaña",
		ManualsEntry: "Manuales",
	},
	"en": {
		Lang:         "en",
		Title:        "Master Help",
		SignIn:       "Sign in",
		Username:     "Username",
		Password:     "Password",
		LoginFailed:  "Wrong username or password",
		Welcome:      "welcome",
		Campaigns:    "Campaigns",
		NewCampaign:  "New campaign",
		Name:         "Name *",
		Description:  "Description *",
		Save:         "Save",
		Cancel:       "Cancel",
		NoCampaigns:  "No campaigns yet",
		Loading:      "Loading…",
		SaveFailed:   "Could not save the campaign",
		ManualsEntry: "Manuals",
	},
}

// LabelsFor returns the label set of a locale.
func LabelsFor(locale string) (Labels, error) {
	l, ok := locales[locale]
	if !ok {
		return Labels{}, fmt.Errorf("unknown locale %q (have %v)", locale, Locales())
	}
	return l, nil
}

// Locales lists the supported locales.
func Locales() []string {
	out := make([]string, 0, len(locales))
	for k := range locales {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
