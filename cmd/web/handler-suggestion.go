package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/mkoskela/liftapp/internal/suggest"
)

type suggestionRequest struct {
	Date string `json:"date,omitempty"`
}

// suggestionPOST computes a workout suggestion for the signed-in user. Every
// call recomputes from fresh data; there is nothing to cache or retry. An
// optional date in the body plans ahead of today.
func (app *application) suggestionPOST(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		suggestion suggest.Suggestion
		err        error
	)
	if req.Date == "" {
		suggestion, err = app.suggestService.Suggest(r.Context())
	} else {
		var date time.Time
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			app.clientError(w, r, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}
		suggestion, err = app.suggestService.SuggestForDate(r.Context(), date)
	}
	if errors.Is(err, suggest.ErrNotAuthenticated) {
		app.clientError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	if errors.Is(err, suggest.ErrNoCandidates) {
		app.clientError(w, r, http.StatusUnprocessableEntity,
			"no exercises found for your equipment, preferences and injuries")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, suggestion)
}
