package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mkoskela/liftapp/internal/users"
)

type loginRequest struct {
	DisplayName string `json:"display_name"`
}

// loginPOST signs an existing user in by display name and stores their ID in
// the cookie session.
func (app *application) loginPOST(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		app.clientError(w, r, http.StatusBadRequest, "display_name is required")
		return
	}

	user, err := app.userService.GetByDisplayName(r.Context(), displayName)
	if errors.Is(err, users.ErrNotFound) {
		app.clientError(w, r, http.StatusUnauthorized, "unknown user")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	// Rotate the session token on privilege change.
	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Put(r.Context(), sessionKeyUserID, user.ID)

	app.writeJSON(w, r, http.StatusOK, user)
}

// registerPOST creates an account for a new display name and signs it in.
func (app *application) registerPOST(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		app.clientError(w, r, http.StatusBadRequest, "display_name is required")
		return
	}

	user, err := app.userService.Register(r.Context(), displayName)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Put(r.Context(), sessionKeyUserID, user.ID)

	app.writeJSON(w, r, http.StatusCreated, user)
}

// logoutPOST destroys the cookie session.
func (app *application) logoutPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.Destroy(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
