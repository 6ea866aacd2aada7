package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/service"
	"go-portfolio-app/internal/store"
)

// ContentHandler serves the public, read-only content API the portfolio
// pages render from.
type ContentHandler struct {
	certificates *service.CertificateService
	projects     *service.ProjectService
	articles     *service.ArticleService
	log          logger.Logger
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(cs *service.CertificateService, ps *service.ProjectService, as *service.ArticleService, log logger.Logger) *ContentHandler {
	return &ContentHandler{certificates: cs, projects: ps, articles: as, log: log}
}

// listCertificates handles the certificate listing with its optional
// featured, category and free-text query filters.
func (h *ContentHandler) listCertificates(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	params := r.URL.Query()
	ctx := r.Context()

	var err error
	var certs any
	switch {
	case params.Get("featured") == "true":
		certs, err = h.certificates.Featured(ctx)
	case params.Get("category") != "" || params.Get("q") != "":
		certs, err = h.certificates.Search(ctx, params.Get("category"), params.Get("q"))
	default:
		certs, err = h.certificates.List(ctx)
	}
	if err != nil {
		return &middleware.AppError{Err: err, Message: "Failed to load certificates", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, certs)
	return nil
}

func (h *ContentHandler) certificateCategories(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categories, err := h.certificates.Categories(r.Context())
	if err != nil {
		return &middleware.AppError{Err: err, Message: "Failed to load certificate categories", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, categories)
	return nil
}

func (h *ContentHandler) listProjects(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	ctx := r.Context()

	var err error
	var projects any
	if r.URL.Query().Get("featured") == "true" {
		projects, err = h.projects.Featured(ctx)
	} else {
		projects, err = h.projects.List(ctx)
	}
	if err != nil {
		return &middleware.AppError{Err: err, Message: "Failed to load projects", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, projects)
	return nil
}

func (h *ContentHandler) listArticles(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	params := r.URL.Query()
	ctx := r.Context()

	var err error
	var articles any
	switch {
	case params.Get("featured") == "true":
		articles, err = h.articles.Featured(ctx)
	case params.Get("category") != "" || params.Get("q") != "":
		articles, err = h.articles.Search(ctx, params.Get("category"), params.Get("q"))
	default:
		articles, err = h.articles.List(ctx)
	}
	if err != nil {
		return &middleware.AppError{Err: err, Message: "Failed to load articles", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, articles)
	return nil
}

func (h *ContentHandler) articleCategories(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	categories, err := h.articles.Categories(r.Context())
	if err != nil {
		return &middleware.AppError{Err: err, Message: "Failed to load article categories", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, categories)
	return nil
}

// articleBySlug serves the blog post page's lookup. A missing slug is a
// 404 with an error body, which the SPA renders as its not-found state.
func (h *ContentHandler) articleBySlug(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	slug := chi.URLParam(r, "slug")

	article, err := h.articles.BySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &middleware.AppError{Err: err, Message: "Article not found", Code: http.StatusNotFound}
		}
		return &middleware.AppError{Err: err, Message: "Failed to load article", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, article)
	return nil
}
