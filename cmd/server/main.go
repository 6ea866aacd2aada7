package main

import (
	"context"
	"errors"
	"fmt"
	"go-portfolio-app/internal/auth"
	"go-portfolio-app/internal/config"
	"go-portfolio-app/internal/content"
	"go-portfolio-app/internal/handler"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/mail"
	"go-portfolio-app/internal/metrics"
	"go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/service"
	"go-portfolio-app/internal/store"
	"go-portfolio-app/web"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Pre-flight Checks ---
	if cfg.Admin.Password == "" {
		log.Fatal(errors.New("admin password not set"), "Please set the PORTFOLIO_ADMIN_PASSWORD environment variable.")
	}
	if cfg.Store.Backend == "remote" && cfg.Store.Remote.URL == "" {
		log.Fatal(errors.New("remote store URL not set"), "Please set PORTFOLIO_STORE_REMOTE_URL or switch to the local backend.")
	}

	// --- Database Initialization and Migration ---
	// The local SQLite file backs both the content collections and the
	// session store, so it is opened regardless of the chosen backend.
	log.Info("Applying database migrations...")
	if err := store.ApplyMigrations(cfg.Store.Local.Path, "migrations"); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Opening the database...")
	db, err := store.OpenDB(cfg.Store.Local.Path)
	if err != nil {
		log.Fatal(err, "Failed to open database")
	}
	defer db.Close()
	log.Info("Database opened successfully.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(db.DB)
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.HttpOnly = true

	// --- Authorization Setup ---
	log.Info("Initializing authorization...")
	enforcer, err := auth.NewEnforcer()
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Enforcer initialized and policies seeded.")

	// --- Metrics Initialization ---
	m := metrics.New()

	// --- Content Store Selection ---
	var contentStore store.Store
	switch cfg.Store.Backend {
	case "remote":
		log.Info(fmt.Sprintf("Using remote content store at %s", cfg.Store.Remote.URL))
		contentStore = store.NewRemote(cfg.Store.Remote, log)
	default:
		log.Info("Using local content store")
		contentStore = store.NewLocal(store.NewKV(db), content.SeedDefaults(), log)
	}
	contentStore = store.Instrument(contentStore, cfg.Store.Backend, m)

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	certificateService := service.NewCertificateService(contentStore, log)
	projectService := service.NewProjectService(contentStore, log)
	articleService := service.NewArticleService(contentStore, log)

	gate := auth.NewGate(cfg.Admin.Password, sessionManager)
	sender := mail.NewSMTPSender(cfg.Mail)

	contentHandler := handler.NewContentHandler(certificateService, projectService, articleService, log)
	adminHandler := handler.NewAdminHandler(certificateService, projectService, articleService, log)
	authHandler := handler.NewAuthHandler(gate, log)
	contactHandler := handler.NewContactHandler(sender, log)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(handler.RouterConfig{
		Content:  contentHandler,
		Admin:    adminHandler,
		Auth:     authHandler,
		Contact:  contactHandler,
		Sessions: sessionManager,
		Authz:    middleware.Authorizer(enforcer, sessionManager),
		Metrics:  m,
		StaticFS: web.StaticFS,
		Origins:  cfg.CORS.AllowedOrigins,
		Log:      log,
	})

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "Could not start HTTP server")
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
