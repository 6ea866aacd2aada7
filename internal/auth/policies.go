package auth

import (
	"fmt"
	"go-portfolio-app/internal/logger"

	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies installs the application's authorization rules. It
// checks if each policy exists before adding it, making the operation
// idempotent and safe to run on every application start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	// Anonymous visitors can read all public content and use the login
	// and contact endpoints. The admin role inherits those permissions
	// and additionally owns the content-management API.
	policies := [][]string{
		{SubjectAnonymous, "/api/*", "GET"},
		{SubjectAnonymous, "/api/contact", "POST"},
		{SubjectAnonymous, "/auth/login", "POST"},
		{SubjectAnonymous, "/auth/logout", "POST"},
		{SubjectAnonymous, "/auth/session", "GET"},

		{SubjectAdmin, "/admin/api/*", "(GET)|(POST)|(PUT)|(DELETE)"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	// Granting the admin role all permissions of the anonymous role.
	if has, _ := e.HasRoleForUser(SubjectAdmin, SubjectAnonymous); !has {
		if _, err := e.AddRoleForUser(SubjectAdmin, SubjectAnonymous); err != nil {
			log.Error(err, "Failed to add role 'admin' -> 'anonymous'")
		}
	}
	log.Info("Policy seeding complete.")
}
