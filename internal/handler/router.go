package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RouterConfig contains everything the HTTP router needs.
type RouterConfig struct {
	Catalog *CatalogHandler
	Admin   *AdminHandler
	Auth    AuthService
	Logger  zerolog.Logger
}

// NewRouter assembles the full API surface under /api, plus a health
// probe at the root.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger(cfg.Logger))
	r.Use(requestMetrics)

	r.Get("/health", handleHealth)

	r.Route("/api", func(r chi.Router) {
		cfg.Catalog.RegisterRoutes(r)
		cfg.Admin.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(requireStaff(cfg.Auth, cfg.Logger))
			cfg.Admin.RegisterProtectedRoutes(r)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
