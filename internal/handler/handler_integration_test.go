//go:build integration

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"go-portfolio-app/internal/auth"
	"go-portfolio-app/internal/config"
	"go-portfolio-app/internal/content"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/mail"
	"go-portfolio-app/internal/metrics"
	"go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/service"
	"go-portfolio-app/internal/store"
	"go-portfolio-app/web"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
)

const testAdminPassword = "integration-secret"

// fakeSender records contact messages instead of delivering them.
type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(m mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

// setupTest initializes a full application stack for testing.
func setupTest(t *testing.T) (*chi.Mux, *fakeSender) {
	t.Helper()
	db, err := store.OpenDB("file:memory?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Manually apply migrations.
	schema, err := os.ReadFile("../../migrations/000001_initial_schema.up.sql")
	if err != nil {
		t.Fatalf("Failed to read migration: %v", err)
	}
	db.MustExec(string(schema))

	// Init layers.
	log := logger.New(config.LogConfig{Level: "error", Format: "console"}, os.Stderr)
	contentStore := store.NewLocal(store.NewKV(db), content.SeedDefaults(), log)

	certificateService := service.NewCertificateService(contentStore, log)
	projectService := service.NewProjectService(contentStore, log)
	articleService := service.NewArticleService(contentStore, log)

	// Init session manager for tests.
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(db.DB)
	sessionManager.Lifetime = 3 * time.Minute

	// Init auth components for the test.
	enforcer, err := auth.NewEnforcer()
	if err != nil {
		t.Fatalf("Failed to initialize enforcer: %v", err)
	}
	auth.SeedDefaultPolicies(enforcer, log)
	gate := auth.NewGate(testAdminPassword, sessionManager)

	sender := &fakeSender{}
	m := metrics.New()

	router := NewRouter(RouterConfig{
		Content:  NewContentHandler(certificateService, projectService, articleService, log),
		Admin:    NewAdminHandler(certificateService, projectService, articleService, log),
		Auth:     NewAuthHandler(gate, log),
		Contact:  NewContactHandler(sender, log),
		Sessions: sessionManager,
		Authz:    middleware.Authorizer(enforcer, sessionManager),
		Metrics:  m,
		StaticFS: web.StaticFS,
		Origins:  []string{"http://localhost:5173"},
		Log:      log,
	})
	return router, sender
}

func TestAnonymousRoutes(t *testing.T) {
	router, _ := setupTest(t)

	testCases := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "List Certificates",
			method:     "GET",
			path:       "/api/certificates",
			wantStatus: http.StatusOK,
			wantBody:   `"title"`,
		},
		{
			name:       "Featured Certificates",
			method:     "GET",
			path:       "/api/certificates?featured=true",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Certificate Categories",
			method:     "GET",
			path:       "/api/certificates/categories",
			wantStatus: http.StatusOK,
			wantBody:   `"All"`,
		},
		{
			name:       "List Projects",
			method:     "GET",
			path:       "/api/projects",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Article By Slug",
			method:     "GET",
			path:       "/api/articles/how-i-built-my-certificates-page",
			wantStatus: http.StatusOK,
			wantBody:   `"slug"`,
		},
		{
			name:       "Article By Unknown Slug (Not Found Error)",
			method:     "GET",
			path:       "/api/articles/no-such-post",
			wantStatus: http.StatusNotFound,
			wantBody:   "Article not found",
		},
		{
			name:       "Create Certificate without login (Forbidden Error)",
			method:     "POST",
			path:       "/admin/api/certificates",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "Delete Project without login (Forbidden Error)",
			method:     "DELETE",
			path:       "/admin/api/projects/p1",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "Session Status",
			method:     "GET",
			path:       "/auth/session",
			wantStatus: http.StatusOK,
			wantBody:   `"authenticated":false`,
		},
		{
			name:       "Health Check",
			method:     "GET",
			path:       "/healthz",
			wantStatus: http.StatusOK,
			wantBody:   `"ok"`,
		},
		{
			name:       "Unknown API Path (JSON Not Found)",
			method:     "GET",
			path:       "/api/nope",
			wantStatus: http.StatusNotFound,
			wantBody:   `"error"`,
		},
		{
			name:       "SPA Fallback",
			method:     "GET",
			path:       "/blog/some-client-route",
			wantStatus: http.StatusOK,
			wantBody:   "<!doctype html>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("want status %d; got %d", tc.wantStatus, rr.Code)
			}
			if tc.wantBody != "" && !strings.Contains(rr.Body.String(), tc.wantBody) {
				t.Errorf("body does not contain expected string '%s': %s", tc.wantBody, rr.Body.String())
			}
		})
	}
}

func TestAdminFlow(t *testing.T) {
	router, _ := setupTest(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	login := func(password string) *http.Response {
		t.Helper()
		body, _ := json.Marshal(map[string]string{"password": password})
		resp, err := client.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("login request failed: %v", err)
		}
		return resp
	}

	// Wrong password is rejected without starting a session.
	resp := login("wrong")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 for a wrong password; got %d", resp.StatusCode)
	}

	resp = login(testAdminPassword)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("want 204 for a correct password; got %d", resp.StatusCode)
	}

	// The session cookie now authorizes admin mutations.
	cert, _ := json.Marshal(map[string]any{
		"title":           "Go Fundamentals",
		"issuer":          "Udemy",
		"date":            "2025-06-01",
		"image":           "/certificates/go.png",
		"certificate_url": "https://example.com/certificates/go",
		"category":        "Programming",
	})
	resp, err := client.Post(srv.URL+"/admin/api/certificates", "application/json", bytes.NewReader(cert))
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	var created content.Certificate
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode created certificate: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("want 201 for create; got %d", resp.StatusCode)
	}
	if created.ID == "" {
		t.Fatal("expected the created certificate to carry an id")
	}

	// Validation failures surface as 422 with coded messages.
	invalid, _ := json.Marshal(map[string]any{"title": "No Issuer"})
	resp, err = client.Post(srv.URL+"/admin/api/certificates", "application/json", bytes.NewReader(invalid))
	if err != nil {
		t.Fatalf("invalid create request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("want 422 for invalid input; got %d", resp.StatusCode)
	}

	// Toggle the featured flag on the new record.
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/admin/api/certificates/"+created.ID+"/featured", nil)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("toggle request failed: %v", err)
	}
	var toggled content.Certificate
	json.NewDecoder(resp.Body).Decode(&toggled)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200 for toggle; got %d", resp.StatusCode)
	}
	if !toggled.Featured {
		t.Error("expected the featured flag to flip to true")
	}

	// Delete it again.
	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/admin/api/certificates/"+created.ID, nil)
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("want 204 for delete; got %d", resp.StatusCode)
	}

	// Logout drops the session; the next mutation is forbidden again.
	resp, err = client.Post(srv.URL+"/auth/logout", "application/json", nil)
	if err != nil {
		t.Fatalf("logout request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("want 204 for logout; got %d", resp.StatusCode)
	}
	resp, err = client.Post(srv.URL+"/admin/api/certificates", "application/json", bytes.NewReader(cert))
	if err != nil {
		t.Fatalf("post-logout create request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("want 403 after logout; got %d", resp.StatusCode)
	}
}

func TestContactForm(t *testing.T) {
	router, sender := setupTest(t)

	body, _ := json.Marshal(map[string]string{
		"from_name":  "Ada",
		"from_email": "ada@example.com",
		"message":    "Hello there",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("want 202; got %d: %s", rr.Code, rr.Body.String())
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one delivered message, got %d", len(sender.sent))
	}
	if sender.sent[0].FromEmail != "ada@example.com" {
		t.Errorf("unexpected message: %+v", sender.sent[0])
	}

	// A missing email address is a validation failure, nothing is sent.
	invalid, _ := json.Marshal(map[string]string{"from_name": "Ada", "message": "hi"})
	req = httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(invalid))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("want 422; got %d", rr.Code)
	}
	if len(sender.sent) != 1 {
		t.Errorf("expected no additional deliveries, got %d", len(sender.sent))
	}
}
