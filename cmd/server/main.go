package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/auth"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/config"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/handler"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/mail"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/middleware"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/plans"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/repository/postgres"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	// Create JWT verifier against the identity provider's JWKS endpoint
	verifier, err := auth.NewJWKSVerifier(cfg.AuthJWKSURL, cfg.AuthIssuer, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer verifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Run pending migrations
	if cfg.AutoMigrate {
		version, err := postgres.RunMigrations(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		logger.Info("migrations applied", "version", version)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(),
		Logger: logger,
	}
	orgRepo := postgres.NewOrganizationRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	projectMemberRepo := postgres.NewProjectMemberRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	invRepo := postgres.NewInvitationRepository(repoConfig)
	auditRepo := postgres.NewAuditRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Load the plan catalog
	planRegistry, err := plans.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load plan catalog: %v", err)
	}

	// Mail delivery: SMTP when configured, log-only otherwise
	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.SMTPFrom,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		})
	} else {
		mailer = mail.NewLogMailer(logger)
		logger.Warn("SMTP not configured, invitation mail will only be logged")
	}

	// Create services
	identityService := service.NewIdentityService(userRepo, projectMemberRepo, orgRepo, logger)
	orgService := service.NewOrganizationService(orgRepo, userRepo, projectRepo, auditRepo, txManager, planRegistry, logger)
	memberService := service.NewMemberService(userRepo, projectMemberRepo, auditRepo, txManager, logger)
	invitationService := service.NewInvitationService(invRepo, userRepo, orgRepo, auditRepo, txManager, mailer, planRegistry, cfg.AppBaseURL, logger)
	projectService := service.NewProjectService(projectRepo, projectMemberRepo, orgRepo, auditRepo, txManager, planRegistry, logger)
	projectMemberService := service.NewProjectMemberService(projectRepo, projectMemberRepo, userRepo, auditRepo, txManager, logger)
	documentService := service.NewDocumentService(docRepo, projectRepo, orgRepo, planRegistry, logger)
	exportService := service.NewExportService(docRepo, projectRepo, logger)
	analyticsService := service.NewAnalyticsService(docRepo, projectRepo, logger)

	// Create handlers
	meHandler := handler.NewMeHandler(identityService, logger)
	orgHandler := handler.NewOrganizationHandler(orgService, identityService, logger)
	memberHandler := handler.NewMemberHandler(memberService, invitationService, identityService, logger)
	projectHandler := handler.NewProjectHandler(projectService, projectMemberService, identityService, logger)
	docHandler := handler.NewDocumentHandler(documentService, exportService, analyticsService, identityService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.Health)

	// Profile routes
	mux.HandleFunc("GET /api/me", meHandler.Me)
	mux.HandleFunc("GET /api/me/permissions", meHandler.Permissions)

	// Organization routes
	mux.HandleFunc("POST /api/organizations", orgHandler.Create)
	mux.HandleFunc("GET /api/organizations", orgHandler.List)
	mux.HandleFunc("GET /api/organizations/{orgID}", orgHandler.Get)
	mux.HandleFunc("PATCH /api/organizations/{orgID}", orgHandler.Update)
	mux.HandleFunc("DELETE /api/organizations/{orgID}", orgHandler.Delete)
	mux.HandleFunc("GET /api/organizations/{orgID}/billing", orgHandler.Billing)
	mux.HandleFunc("GET /api/organizations/{orgID}/audit", orgHandler.AuditLog)

	// Member routes
	mux.HandleFunc("GET /api/organizations/{orgID}/members", memberHandler.List)
	mux.HandleFunc("PATCH /api/organizations/{orgID}/members/{userID}", memberHandler.UpdateRole)
	mux.HandleFunc("DELETE /api/organizations/{orgID}/members/{userID}", memberHandler.Remove)

	// Invitation routes
	mux.HandleFunc("POST /api/organizations/{orgID}/invitations", memberHandler.CreateInvitation)
	mux.HandleFunc("GET /api/organizations/{orgID}/invitations", memberHandler.ListInvitations)
	mux.HandleFunc("DELETE /api/organizations/{orgID}/invitations/{invitationID}", memberHandler.RevokeInvitation)
	mux.HandleFunc("POST /api/invitations/accept", memberHandler.AcceptInvitation)

	// Project routes
	mux.HandleFunc("POST /api/projects", projectHandler.Create)
	mux.HandleFunc("GET /api/projects", projectHandler.List)
	mux.HandleFunc("GET /api/projects/{projectID}", projectHandler.Get)
	mux.HandleFunc("PATCH /api/projects/{projectID}", projectHandler.Update)
	mux.HandleFunc("DELETE /api/projects/{projectID}", projectHandler.Delete)

	// Project member routes
	mux.HandleFunc("GET /api/projects/{projectID}/members", projectHandler.ListMembers)
	mux.HandleFunc("POST /api/projects/{projectID}/members", projectHandler.AddMember)
	mux.HandleFunc("PATCH /api/projects/{projectID}/members/{userID}", projectHandler.UpdateMemberRole)
	mux.HandleFunc("DELETE /api/projects/{projectID}/members/{userID}", projectHandler.RemoveMember)

	// Document routes
	mux.HandleFunc("POST /api/projects/{projectID}/documents", docHandler.Create)
	mux.HandleFunc("GET /api/projects/{projectID}/documents", docHandler.List)
	mux.HandleFunc("GET /api/documents/{documentID}", docHandler.Get)
	mux.HandleFunc("PATCH /api/documents/{documentID}", docHandler.Update)
	mux.HandleFunc("POST /api/documents/{documentID}/publish", docHandler.Publish)
	mux.HandleFunc("DELETE /api/documents/{documentID}", docHandler.Delete)

	// Export and analytics routes
	mux.HandleFunc("GET /api/projects/{projectID}/export", docHandler.Export)
	mux.HandleFunc("GET /api/projects/{projectID}/analytics", docHandler.Analytics)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.Auth(verifier, "/health")(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Shut down cleanly on SIGINT/SIGTERM
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	case <-shutdownCtx.Done():
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}
}
