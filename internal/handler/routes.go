package handler

import (
	"io/fs"
	"net/http"
	"strings"

	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/metrics"
	mw "go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// RouterConfig collects everything NewRouter needs to assemble the
// application's route tree.
type RouterConfig struct {
	Content  *ContentHandler
	Admin    *AdminHandler
	Auth     *AuthHandler
	Contact  *ContactHandler
	Sessions session.Manager
	Authz    func(http.Handler) http.Handler
	Metrics  *metrics.Metrics
	StaticFS fs.FS
	Origins  []string
	Log      logger.Logger
}

// NewRouter creates and configures a new chi router.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.Metrics(cfg.Metrics))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler)
	r.Use(cfg.Sessions.LoadAndSave)

	errMw := mw.Error(cfg.Log)

	// Registered before the API subrouters so they inherit it: unmatched
	// API paths are JSON 404s, everything else falls through to the SPA
	// shell so the client router can resolve it.
	spa := SPAHandler(cfg.StaticFS)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		for _, prefix := range []string{"/api/", "/auth/", "/admin/api/"} {
			if strings.HasPrefix(req.URL.Path, prefix) {
				respondJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found"})
				return
			}
		}
		spa(w, req)
	})

	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", cfg.Metrics.Handler())

	// Everything under the API surface passes through the authorizer,
	// which maps the session to a subject and enforces the policy set.
	r.Group(func(r chi.Router) {
		r.Use(cfg.Authz)

		r.Route("/api", func(r chi.Router) {
			r.Method(http.MethodGet, "/certificates", errMw(cfg.Content.listCertificates))
			r.Method(http.MethodGet, "/certificates/categories", errMw(cfg.Content.certificateCategories))
			r.Method(http.MethodGet, "/projects", errMw(cfg.Content.listProjects))
			r.Method(http.MethodGet, "/articles", errMw(cfg.Content.listArticles))
			r.Method(http.MethodGet, "/articles/categories", errMw(cfg.Content.articleCategories))
			r.Method(http.MethodGet, "/articles/{slug}", errMw(cfg.Content.articleBySlug))
			r.Method(http.MethodPost, "/contact", errMw(cfg.Contact.handleSend))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Method(http.MethodPost, "/login", errMw(cfg.Auth.handleLogin))
			r.Method(http.MethodPost, "/logout", errMw(cfg.Auth.handleLogout))
			r.Method(http.MethodGet, "/session", errMw(cfg.Auth.handleSession))
		})

		r.Route("/admin/api", func(r chi.Router) {
			r.Route("/certificates", func(r chi.Router) {
				r.Method(http.MethodPost, "/", errMw(cfg.Admin.createCertificate))
				r.Method(http.MethodPut, "/{id}", errMw(cfg.Admin.updateCertificate))
				r.Method(http.MethodDelete, "/{id}", errMw(cfg.Admin.deleteCertificate))
				r.Method(http.MethodPut, "/{id}/featured", errMw(cfg.Admin.toggleCertificateFeatured))
			})
			r.Route("/projects", func(r chi.Router) {
				r.Method(http.MethodPost, "/", errMw(cfg.Admin.createProject))
				r.Method(http.MethodPut, "/{id}", errMw(cfg.Admin.updateProject))
				r.Method(http.MethodDelete, "/{id}", errMw(cfg.Admin.deleteProject))
				r.Method(http.MethodPut, "/{id}/featured", errMw(cfg.Admin.toggleProjectFeatured))
			})
			r.Route("/articles", func(r chi.Router) {
				r.Method(http.MethodPost, "/", errMw(cfg.Admin.createArticle))
				r.Method(http.MethodPut, "/{id}", errMw(cfg.Admin.updateArticle))
				r.Method(http.MethodDelete, "/{id}", errMw(cfg.Admin.deleteArticle))
				r.Method(http.MethodPut, "/{id}/featured", errMw(cfg.Admin.toggleArticleFeatured))
			})
		})
	})

	return r
}
