package handler

import (
	"encoding/json"
	"net/http"

	"go-portfolio-app/internal/auth"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/middleware"
)

// AuthHandler serves the admin login, logout and session-status
// endpoints.
type AuthHandler struct {
	gate *auth.Gate
	log  logger.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(gate *auth.Gate, log logger.Logger) *AuthHandler {
	return &AuthHandler{gate: gate, log: log}
}

// handleLogin checks the submitted password against the shared secret.
// Failures get the same generic message regardless of cause.
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return &middleware.AppError{Err: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}

	if !h.gate.Login(r.Context(), body.Password) {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid password"})
		return nil
	}

	h.log.Info("Admin login successful")
	respondJSON(w, http.StatusNoContent, nil)
	return nil
}

// handleLogout destroys the session.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.gate.Logout(r.Context()); err != nil {
		return &middleware.AppError{Err: err, Message: "Failed to log out", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusNoContent, nil)
	return nil
}

// handleSession reports whether the current session is logged in, so the
// SPA can restore admin state after a reload.
func (h *AuthHandler) handleSession(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	respondJSON(w, http.StatusOK, map[string]bool{"authenticated": h.gate.LoggedIn(r.Context())})
	return nil
}
