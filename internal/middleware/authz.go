package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/casbin/casbin/v2"

	"go-portfolio-app/internal/auth"
	"go-portfolio-app/internal/session"
)

// Authorizer creates a new middleware for authorization. It resolves the
// subject from the session (the admin gate's flag, or anonymous) and
// checks the request path and method against the Casbin policies.
func Authorizer(e *casbin.Enforcer, sm session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := auth.Subject(r.Context(), sm)

			allowed, err := e.Enforce(subject, r.URL.Path, r.Method)
			if err != nil {
				respondStatus(w, http.StatusInternalServerError, "Authorization error")
				return
			}
			if !allowed {
				respondStatus(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func respondStatus(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
