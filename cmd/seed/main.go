package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/config"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/repositories"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/repository/postgres"
)

// Seeds the database schema and the platform super admin. SUPER_ADMIN is
// never assignable through the API, so this command is the only way the role
// enters the system.
func main() {
	adminSubject := flag.String("admin-subject", "", "Identity-provider subject of the platform super admin")
	adminEmail := flag.String("admin-email", "", "Email of the platform super admin")
	adminName := flag.String("admin-name", "Platform Admin", "Display name of the platform super admin")
	demo := flag.Bool("demo", false, "Seed a demo organization with a project and documents")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	if cfg.Environment == "prod" && *demo {
		log.Fatalf("Cannot seed demo data in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s)", cfg.Environment)

	// Run migrations
	version, err := postgres.RunMigrations(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Schema ready (version %d)", version)

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(),
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)

	if *adminSubject != "" {
		if *adminEmail == "" {
			log.Fatalf("--admin-email is required with --admin-subject")
		}
		if err := seedSuperAdmin(ctx, userRepo, *adminSubject, *adminEmail, *adminName); err != nil {
			log.Fatalf("Failed to seed super admin: %v", err)
		}
		log.Printf("Super admin ready: %s", *adminEmail)
	}

	if *demo {
		if err := seedDemo(ctx, repoConfig, *adminSubject); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		log.Println("Demo organization seeded")
	}

	log.Println("Seeding complete")
}

// seedSuperAdmin creates the platform super admin mirror record. The row has
// no organization; the role alone grants full reach.
func seedSuperAdmin(ctx context.Context, userRepo repositories.UserRepository, subject, email, name string) error {
	existing, err := userRepo.GetByID(ctx, subject)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil {
		if existing.OrgRole == string(rbac.OrgRoleSuperAdmin) {
			return nil
		}
		return userRepo.UpdateRole(ctx, subject, string(rbac.OrgRoleSuperAdmin))
	}

	return userRepo.Create(ctx, &models.User{
		ID:      subject,
		Email:   email,
		Name:    name,
		OrgRole: string(rbac.OrgRoleSuperAdmin),
	})
}

// seedDemo creates a demo organization with one project and a few documents,
// owned by the given subject when provided.
func seedDemo(ctx context.Context, repoConfig *postgres.RepositoryConfig, ownerSubject string) error {
	orgRepo := postgres.NewOrganizationRepository(repoConfig)
	projectRepo := postgres.NewProjectRepository(repoConfig)
	memberRepo := postgres.NewProjectMemberRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)

	org := &models.Organization{
		Name: "Demo Organization",
		Slug: "demo-org",
		Plan: "team",
	}
	if err := orgRepo.Create(ctx, org); err != nil {
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			log.Println("Demo organization already exists, skipping")
			return nil
		}
		return err
	}

	project := &models.Project{
		OrgID:       org.ID,
		Name:        "Getting Started",
		Slug:        "getting-started",
		Description: "Sample project with starter documentation",
		CreatedBy:   ownerSubject,
	}
	if err := projectRepo.Create(ctx, project); err != nil {
		return err
	}

	if ownerSubject != "" {
		member := &models.ProjectMember{
			ProjectID: project.ID,
			UserID:    ownerSubject,
			Role:      string(rbac.ProjectRoleOwner),
			AddedBy:   ownerSubject,
		}
		if err := memberRepo.Add(ctx, member); err != nil {
			return err
		}
	}

	docs := []models.Document{
		{
			ProjectID: project.ID,
			Title:     "Welcome",
			Slug:      "welcome",
			Content:   "# Welcome\n\nThis is your first document. Edit it, publish it, invite your team.",
			Status:    models.DocumentStatusPublished,
			CreatedBy: ownerSubject,
		},
		{
			ProjectID: project.ID,
			Title:     "Writing Guide",
			Slug:      "writing-guide",
			Content:   "# Writing Guide\n\nDocuments are markdown. Drafts stay private until published.",
			Status:    models.DocumentStatusDraft,
			CreatedBy: ownerSubject,
		},
	}
	for i := range docs {
		if err := docRepo.Create(ctx, &docs[i]); err != nil {
			return err
		}
	}

	return nil
}
