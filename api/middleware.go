package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/color-palette/api/models"
)

func handleCors(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Headers", "Access-Control-Allow-Credentials, Access-Control-Allow-Origin, Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if r.Method == http.MethodOptions {
			return
		}
		h.ServeHTTP(w, r)
	}
}

// tokenFromRequest reads the access token from the cookie, then from a
// bearer Authorization header
func tokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(models.JWT.ACCESS_COOKIE_NAME); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer "), nil
	}
	return "", errors.New("no access token found")
}

// Verify the caller holds a valid admin token
func (app *Application) verifyPermissions(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFromRequest(r)
		if err != nil {
			app.invalidAuthorization(w, r, err)
			return
		}

		claims, err := models.ValidateJWTToken(token, app.Config.JwtSecret)
		if err != nil {
			app.invalidAuthorization(w, r, err)
			return
		}

		if claims.Kind != models.Admin {
			app.invalidAuthorization(w, r, ErrInvalidPrivelege)
			return
		}

		h.ServeHTTP(w, r)
	}
}
