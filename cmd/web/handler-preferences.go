package main

import (
	"net/http"
	"strconv"

	"github.com/mkoskela/liftapp/internal/suggest"
)

// preferencesGET returns the user's non-default exercise preferences keyed by
// exercise ID.
func (app *application) preferencesGET(w http.ResponseWriter, r *http.Request) {
	preferences, err := app.suggestService.GetPreferences(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	// JSON object keys are strings.
	response := make(map[string]suggest.PreferenceStatus, len(preferences))
	for exerciseID, status := range preferences {
		response[strconv.Itoa(exerciseID)] = status
	}
	app.writeJSON(w, r, http.StatusOK, response)
}

// profileGET returns the user's training profile with defaults applied.
func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, app.suggestService.GetProfile(r.Context()))
}

// profilePOST updates the user's training profile.
func (app *application) profilePOST(w http.ResponseWriter, r *http.Request) {
	var profile suggest.Profile
	if err := readJSON(r, &profile); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := app.suggestService.SetProfile(r.Context(), profile); err != nil {
		app.clientError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	app.writeJSON(w, r, http.StatusOK, profile)
}
