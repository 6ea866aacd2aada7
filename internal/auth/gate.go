// Package auth implements the admin access gate: a single pre-shared
// secret whose successful submission stores an admin subject in the
// session, plus the path-policy enforcer guarding the admin API. The gate
// is a convenience lock for a personal site, not a security boundary.
package auth

import (
	"context"
	"crypto/subtle"

	"go-portfolio-app/internal/session"
)

// Session key and subject values used by the gate and the authorizer
// middleware.
const (
	SessionKey       = "admin_subject"
	SubjectAdmin     = "admin"
	SubjectAnonymous = "anonymous"
)

// Gate holds the shared secret and the session manager the logged-in
// flag lives in. The session persists across page reloads, so a browser
// restart within the cookie lifetime stays logged in.
type Gate struct {
	password string
	sessions session.Manager
}

// NewGate creates a Gate.
func NewGate(password string, sessions session.Manager) *Gate {
	return &Gate{password: password, sessions: sessions}
}

// Login transitions the session to logged-in when the submitted password
// matches the shared secret exactly. Any other input leaves the session
// untouched and reports failure; there is no lockout or rate limiting.
func (g *Gate) Login(ctx context.Context, password string) bool {
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) != 1 {
		return false
	}
	g.sessions.Put(ctx, SessionKey, SubjectAdmin)
	return true
}

// Logout destroys the session, clearing the persisted flag.
func (g *Gate) Logout(ctx context.Context) error {
	return g.sessions.Destroy(ctx)
}

// LoggedIn reports whether the session carries the admin subject.
func (g *Gate) LoggedIn(ctx context.Context) bool {
	return g.sessions.GetString(ctx, SessionKey) == SubjectAdmin
}

// Subject returns the session's subject for policy enforcement,
// defaulting to anonymous.
func Subject(ctx context.Context, sessions session.Manager) string {
	if s := sessions.GetString(ctx, SessionKey); s != "" {
		return s
	}
	return SubjectAnonymous
}
