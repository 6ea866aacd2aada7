package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-portfolio-app/internal/content"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/service"
	"go-portfolio-app/internal/store"
)

// AdminHandler serves the content-management API behind the admin gate.
type AdminHandler struct {
	certificates *service.CertificateService
	projects     *service.ProjectService
	articles     *service.ArticleService
	log          logger.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(cs *service.CertificateService, ps *service.ProjectService, as *service.ArticleService, log logger.Logger) *AdminHandler {
	return &AdminHandler{certificates: cs, projects: ps, articles: as, log: log}
}

// mutationError maps service failures onto the API's error taxonomy:
// validation 422, slug collision 409, unknown id 404, anything else 500.
func mutationError(err error, fallback string) *middleware.AppError {
	switch {
	case service.IsValidationError(err):
		return &middleware.AppError{Err: err, Message: err.Error(), Code: http.StatusUnprocessableEntity}
	case errors.Is(err, service.ErrDuplicateSlug):
		return &middleware.AppError{Err: err, Message: service.ErrDuplicateSlug.Error(), Code: http.StatusConflict}
	case errors.Is(err, store.ErrNotFound):
		return &middleware.AppError{Err: err, Message: "Record not found", Code: http.StatusNotFound}
	default:
		return &middleware.AppError{Err: err, Message: fallback, Code: http.StatusInternalServerError}
	}
}

func decodeBody(r *http.Request, v any) *middleware.AppError {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &middleware.AppError{Err: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}
	return nil
}

// --- certificates ---

func (h *AdminHandler) createCertificate(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var cert content.Certificate
	if appErr := decodeBody(r, &cert); appErr != nil {
		return appErr
	}
	created, err := h.certificates.Add(r.Context(), cert)
	if err != nil {
		return mutationError(err, "Failed to create certificate")
	}
	respondJSON(w, http.StatusCreated, created)
	return nil
}

func (h *AdminHandler) updateCertificate(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var patch map[string]any
	if appErr := decodeBody(r, &patch); appErr != nil {
		return appErr
	}
	updated, err := h.certificates.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		return mutationError(err, "Failed to update certificate")
	}
	respondJSON(w, http.StatusOK, updated)
	return nil
}

func (h *AdminHandler) deleteCertificate(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.certificates.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		return mutationError(err, "Failed to delete certificate")
	}
	respondJSON(w, http.StatusNoContent, nil)
	return nil
}

func (h *AdminHandler) toggleCertificateFeatured(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	updated, err := h.certificates.ToggleFeatured(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return mutationError(err, "Failed to toggle certificate")
	}
	respondJSON(w, http.StatusOK, updated)
	return nil
}

// --- projects ---

func (h *AdminHandler) createProject(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var project content.Project
	if appErr := decodeBody(r, &project); appErr != nil {
		return appErr
	}
	created, err := h.projects.Add(r.Context(), project)
	if err != nil {
		return mutationError(err, "Failed to create project")
	}
	respondJSON(w, http.StatusCreated, created)
	return nil
}

func (h *AdminHandler) updateProject(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var patch map[string]any
	if appErr := decodeBody(r, &patch); appErr != nil {
		return appErr
	}
	updated, err := h.projects.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		return mutationError(err, "Failed to update project")
	}
	respondJSON(w, http.StatusOK, updated)
	return nil
}

func (h *AdminHandler) deleteProject(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.projects.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		return mutationError(err, "Failed to delete project")
	}
	respondJSON(w, http.StatusNoContent, nil)
	return nil
}

func (h *AdminHandler) toggleProjectFeatured(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	updated, err := h.projects.ToggleFeatured(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return mutationError(err, "Failed to toggle project")
	}
	respondJSON(w, http.StatusOK, updated)
	return nil
}

// --- articles ---

func (h *AdminHandler) createArticle(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var article content.Article
	if appErr := decodeBody(r, &article); appErr != nil {
		return appErr
	}
	created, err := h.articles.Add(r.Context(), article)
	if err != nil {
		return mutationError(err, "Failed to create article")
	}
	respondJSON(w, http.StatusCreated, created)
	return nil
}

func (h *AdminHandler) updateArticle(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var patch map[string]any
	if appErr := decodeBody(r, &patch); appErr != nil {
		return appErr
	}
	updated, err := h.articles.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		return mutationError(err, "Failed to update article")
	}
	respondJSON(w, http.StatusOK, updated)
	return nil
}

func (h *AdminHandler) deleteArticle(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.articles.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		return mutationError(err, "Failed to delete article")
	}
	respondJSON(w, http.StatusNoContent, nil)
	return nil
}

func (h *AdminHandler) toggleArticleFeatured(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	updated, err := h.articles.ToggleFeatured(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return mutationError(err, "Failed to toggle article")
	}
	respondJSON(w, http.StatusOK, updated)
	return nil
}
