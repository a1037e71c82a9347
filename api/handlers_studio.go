package api

import (
	"errors"
	"net/http"

	"github.com/color-palette/api/models"
	"github.com/color-palette/api/studio"
)

// GET /v1/studio - Current studio state
func (app *Application) getStudio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}
	writeJSON(w, http.StatusOK, app.Studio.State())
}

// POST /v1/studio/actions - Dispatch one action and return the new state
func (app *Application) dispatchStudioAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	action := studio.Action{}
	if err := decodeJSON(w, r, &action); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	// favorites are only replaced from storage
	if action.Type == studio.ActionLoadFavorites {
		app.badRequest(w, r, errors.New("load_favorites cannot be dispatched over HTTP"))
		return
	}

	state, err := app.Studio.Dispatch(action)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	switch action.Type {
	case studio.ActionGenerate, studio.ActionCycleHarmony, studio.ActionCycleStyle:
		MetricPalettesGenerated.WithLabelValues(string(state.Palette.Harmony), string(state.Palette.Style)).Inc()
	}

	writeJSON(w, http.StatusOK, state)
}

// GET /v1/favorites - Saved palettes
// DELETE /v1/favorites?id= - Remove a saved palette
func (app *Application) favorites(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, app.Studio.State().Favorites)

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			app.badRequest(w, r, errors.New("id is required"))
			return
		}
		state, err := app.Studio.Dispatch(studio.Action{Type: studio.ActionRemoveFavorite, ID: id})
		if err != nil {
			app.notFound(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, state.Favorites)

	default:
		app.methodNotAllowed(w, r, http.MethodGet, http.MethodDelete)
	}
}

// POST /v1/favorites/toggle - Save a palette, or remove it when already saved
func (app *Application) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := struct {
		Colors  []string `json:"colors"`
		Style   string   `json:"style"`
		Harmony string   `json:"harmony"`
	}{}
	if err := decodeJSON(w, r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	colors, err := parseColors(req.Colors)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	if len(colors) != models.PaletteSize {
		app.badRequest(w, r, errors.New("a palette has exactly 5 colors"))
		return
	}
	style, err := models.ParseStyle(req.Style)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	harmony, err := models.ParseHarmony(req.Harmony)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	p := models.Palette{Colors: colors, Style: style, Harmony: harmony}
	state, err := app.Studio.Dispatch(studio.Action{Type: studio.ActionToggleFavorite, Palette: &p})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"saved":     studio.ContainsFavorite(state.Favorites, p),
		"favorites": state.Favorites,
	})
}
