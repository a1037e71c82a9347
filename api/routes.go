package api

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var localhostPattern = regexp.MustCompile(`^localhost:\d+$`)

func cleanOrigin(origin string) string {
	cleanedOrigin := strings.TrimPrefix(origin, "https://")
	cleanedOrigin = strings.TrimPrefix(cleanedOrigin, "http://")
	cleanedOrigin = strings.TrimPrefix(cleanedOrigin, "wss://")
	if idx := strings.Index(cleanedOrigin, "/"); idx != -1 {
		cleanedOrigin = cleanedOrigin[:idx]
	}
	return cleanedOrigin
}

func isAllowedOrigin(origin string, allowedOrigins []string, devMode bool) bool {
	cleanedRequest := cleanOrigin(origin)

	if devMode && localhostPattern.MatchString(cleanedRequest) {
		return true
	}

	for _, allowed := range allowedOrigins {
		if cleanOrigin(allowed) == cleanedRequest {
			return true
		}
	}

	return false
}

func wrapMuxWithCorsAndOrigins(mux *http.ServeMux, app *Application) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = r.Header.Get("Referer")
		}

		if origin == "" || isAllowedOrigin(origin, app.Config.AllowedOrigins, app.Config.DevMode) {
			handleCors(mux.ServeHTTP)(w, r)
			return
		}

		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("origin not allowed: " + cleanOrigin(origin)))
	})
}

func (app *Application) BuildRoutes(mux *http.ServeMux) *http.ServeMux {
	finalMux := http.NewServeMux()

	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, instrument(pattern, h))
	}

	// Public endpoints
	route("/", app.home)
	route("/v1/auth/login", app.login)
	route("/v1/harmonies", app.listHarmonies)
	route("/v1/palettes/generate", app.generatePalette)
	route("/v1/palettes/style", app.stylePalette)
	route("/v1/palettes/name", app.namePalette)
	route("/v1/palettes/analyze", app.analyzePalette)
	route("/v1/palettes/daily", app.getDailyPalette)
	route("/v1/palettes/daily/all", app.getAllDailyPalettes)
	route("/v1/studio", app.getStudio)
	route("/v1/studio/actions", app.dispatchStudioAction)
	route("/v1/favorites", app.favorites)
	route("/v1/favorites/toggle", app.toggleFavorite)

	// Admin endpoints
	route("/v1/admin/palettes/daily", app.verifyPermissions(app.generateDailyPalette))

	mux.Handle("/metrics", promhttp.Handler())

	// Wrap entire mux with CORS and origins check
	finalMux.Handle("/", wrapMuxWithCorsAndOrigins(mux, app))

	return finalMux
}
