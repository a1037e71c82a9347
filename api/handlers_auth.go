package api

import (
	"errors"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/color-palette/api/datastore"
	"github.com/color-palette/api/models"
)

var errNoDailyPalette = errors.New("no palette of the day has been generated yet")

// POST /v1/auth/login - Exchange the admin password for an access token
func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	creds := &models.AdminLoginRequest{}
	if err := decodeJSON(w, r, creds); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if app.Config.AdminPasswordHash == "" {
		app.invalidCredentials(w, r, errors.New("admin login is disabled"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(app.Config.AdminPasswordHash), []byte(creds.Password)); err != nil {
		app.invalidCredentials(w, r, errors.New("invalid password"))
		return
	}

	accessExpiry := time.Now().Add(time.Second * time.Duration(app.Config.JwtAccessDuration))
	accessToken, err := models.NewAdminToken(app.Config.JwtSecret, accessExpiry)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	sameSite := http.SameSiteStrictMode
	if app.Config.JwtDomain == "" {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     models.JWT.ACCESS_COOKIE_NAME,
		Value:    accessToken,
		HttpOnly: true,
		Secure:   true,
		SameSite: sameSite,
		Path:     "/",
		Domain:   app.Config.JwtDomain,
		Expires:  accessExpiry,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken": accessToken,
		"expiresAt":   accessExpiry.UTC().Format(time.RFC3339),
	})
}

// GET /v1/palettes/daily - Today's palette
func (app *Application) getDailyPalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	daily, err := app.DailyPaletteRepo.GetToday()
	if datastore.IsNotFound(err) {
		app.notFound(w, r, errNoDailyPalette)
		return
	}
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, daily)
}

// GET /v1/palettes/daily/all - Every palette of the day, newest first
func (app *Application) getAllDailyPalettes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	palettes, err := app.DailyPaletteRepo.GetAll()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, palettes)
}

// POST /v1/admin/palettes/daily - Regenerate today's palette (Admin only)
func (app *Application) generateDailyPalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	daily, err := app.DailyGenerator.GenerateDailyPalette(r.Context(), true)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Successfully generated daily palette",
		"palette": daily,
	})
}
