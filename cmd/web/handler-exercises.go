package main

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/mkoskela/liftapp/internal/suggest"
	"github.com/yuin/goldmark"
)

// markdown renders exercise descriptions to HTML.
var markdown = goldmark.New()

// exercisesGET lists the whole exercise catalog.
func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	exercises, err := app.suggestService.ListExercises(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, exercises)
}

// exerciseGET returns a single catalog exercise.
func (app *application) exerciseGET(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := app.parseExerciseIDParam(w, r)
	if !ok {
		return
	}

	exercise, err := app.suggestService.GetExercise(r.Context(), exerciseID)
	if errors.Is(err, suggest.ErrNotFound) {
		app.clientError(w, r, http.StatusNotFound, "unknown exercise")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, exercise)
}

type exerciseInfoResponse struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	DescriptionHTML string `json:"description_html"`
}

// exerciseInfoGET renders the exercise's markdown description to HTML.
func (app *application) exerciseInfoGET(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := app.parseExerciseIDParam(w, r)
	if !ok {
		return
	}

	exercise, err := app.suggestService.GetExercise(r.Context(), exerciseID)
	if errors.Is(err, suggest.ErrNotFound) {
		app.clientError(w, r, http.StatusNotFound, "unknown exercise")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err = markdown.Convert([]byte(exercise.DescriptionMarkdown), &buf); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, exerciseInfoResponse{
		ID:              exercise.ID,
		Name:            exercise.Name,
		DescriptionHTML: buf.String(),
	})
}

type preferenceRequest struct {
	Status suggest.PreferenceStatus `json:"status"`
}

// exercisePreferencePOST sets the user's standing preference for an exercise.
func (app *application) exercisePreferencePOST(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := app.parseExerciseIDParam(w, r)
	if !ok {
		return
	}

	var req preferenceRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	err := app.suggestService.SetPreference(r.Context(), exerciseID, req.Status)
	if errors.Is(err, suggest.ErrNotFound) {
		app.clientError(w, r, http.StatusNotFound, "unknown exercise")
		return
	}
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid preference status")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type generateExerciseRequest struct {
	Name string `json:"name"`
}

// exerciseGeneratePOST creates a new catalog exercise from a name using the
// configured LLM. Admin only; the request rides the longer admin timeout.
func (app *application) exerciseGeneratePOST(w http.ResponseWriter, r *http.Request) {
	var req generateExerciseRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		app.clientError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	exercise, err := app.suggestService.GenerateExercise(r.Context(), req.Name)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, exercise)
}
