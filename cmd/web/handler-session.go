package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mkoskela/liftapp/internal/suggest"
)

type planSessionRequest struct {
	Date        string `json:"date"`
	ExerciseIDs []int  `json:"exercise_ids"`
}

type planSessionResponse struct {
	Session    suggest.Session `json:"session"`
	OverBudget bool            `json:"over_budget"`
}

// sessionPOST persists a planned workout session from an accepted suggestion.
// The user may have added exercises beyond the suggested budget; the plan is
// stored either way and only flagged.
func (app *application) sessionPOST(w http.ResponseWriter, r *http.Request) {
	var req planSessionRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
		return
	}
	if len(req.ExerciseIDs) == 0 {
		app.clientError(w, r, http.StatusBadRequest, "exercise_ids must not be empty")
		return
	}

	session, overBudget, err := app.suggestService.PlanSession(r.Context(), date, req.ExerciseIDs)
	if errors.Is(err, suggest.ErrNotFound) {
		app.clientError(w, r, http.StatusBadRequest, "unknown exercise id")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, planSessionResponse{
		Session:    session,
		OverBudget: overBudget,
	})
}

// sessionGET returns the stored session for a date.
func (app *application) sessionGET(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	session, err := app.suggestService.GetSession(r.Context(), date)
	if errors.Is(err, suggest.ErrNotFound) {
		app.clientError(w, r, http.StatusNotFound, "no session on that date")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, session)
}

// sessionCheckinPOST stores the pre-workout check-in payload. Injuries
// reported here feed the next suggestion's safety screening.
func (app *application) sessionCheckinPOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	var payload json.RawMessage
	if err := readJSON(r, &payload); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	err := app.suggestService.SaveCheckin(r.Context(), date, string(payload))
	if errors.Is(err, suggest.ErrNotFound) {
		app.clientError(w, r, http.StatusNotFound, "no session on that date")
		return
	}
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid checkin payload")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sessionCompletePOST marks the session on a date as completed.
func (app *application) sessionCompletePOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	err := app.suggestService.CompleteSession(r.Context(), date)
	if errors.Is(err, suggest.ErrNotFound) {
		app.clientError(w, r, http.StatusNotFound, "no session on that date")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
