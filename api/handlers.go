package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/color-palette/api/colorspace"
	"github.com/color-palette/api/models"
	"github.com/color-palette/api/naming"
	"github.com/color-palette/api/palette"
)

const maxBodyBytes = 1 << 20

// colorsRequest is the body shared by the palette endpoints
type colorsRequest struct {
	Colors []string `json:"colors"`
	Style  string   `json:"style,omitempty"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// parseColors canonicalizes every color or reports the first invalid one
func parseColors(colors []string) ([]string, error) {
	out := make([]string, len(colors))
	for i, c := range colors {
		hex, err := colorspace.ParseHex(c)
		if err != nil {
			return nil, fmt.Errorf("colors[%d]: %w", i, err)
		}
		out[i] = hex
	}
	return out, nil
}

// GET /
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Color Palette API")
}

// GET /v1/harmonies - Harmony modes with their descriptions
func (app *Application) listHarmonies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	type harmonyInfo struct {
		Harmony     models.Harmony `json:"harmony"`
		Description string         `json:"description"`
	}
	harmonies := make([]harmonyInfo, 0, len(models.Harmonies))
	for _, h := range models.Harmonies {
		harmonies = append(harmonies, harmonyInfo{h, palette.HarmonyDescription(h)})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"harmonies": harmonies,
		"styles":    models.Styles,
	})
}

// GET /v1/palettes/generate?harmony=&style= - Generate a new palette
func (app *Application) generatePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	query := r.URL.Query()

	harmony := models.HarmonyRandom
	if v := query.Get("harmony"); v != "" {
		parsed, err := models.ParseHarmony(v)
		if err != nil {
			app.badRequest(w, r, err)
			return
		}
		harmony = parsed
	}

	style := models.StyleRetro
	if v := query.Get("style"); v != "" {
		parsed, err := models.ParseStyle(v)
		if err != nil {
			app.badRequest(w, r, err)
			return
		}
		style = parsed
	}

	p := app.Engine.Generate(harmony, style)
	MetricPalettesGenerated.WithLabelValues(string(harmony), string(style)).Inc()

	writeJSON(w, http.StatusOK, p)
}

// POST /v1/palettes/style - Apply a style filter to the given colors
func (app *Application) stylePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := colorsRequest{}
	if err := decodeJSON(w, r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	colors, err := parseColors(req.Colors)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}
	style, err := models.ParseStyle(req.Style)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"colors": palette.ApplyStyleFilter(colors, style),
		"style":  style,
	})
}

// POST /v1/palettes/name - Name a palette. Naming failures fall back to a
// locally generated name and are never reported to the caller.
func (app *Application) namePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := colorsRequest{}
	if err := decodeJSON(w, r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	colors, err := parseColors(req.Colors)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	name := app.Namer.GeneratePaletteName(r.Context(), colors)

	writeJSON(w, http.StatusOK, map[string]string{
		"name":     name,
		"strategy": app.Namer.Strategy().Name(),
	})
}

// POST /v1/palettes/analyze - Descriptors used by the fallback namer
func (app *Application) analyzePalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req := colorsRequest{}
	if err := decodeJSON(w, r, &req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	colors, err := parseColors(req.Colors)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	descriptors := naming.AnalyzeColors(colors)
	if descriptors == nil {
		descriptors = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"descriptors": descriptors})
}
