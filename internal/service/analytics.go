package service

import (
	"context"
	"log/slog"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/repositories"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/utils"
)

// analyticsService implements the AnalyticsService interface
type analyticsService struct {
	docRepo     repositories.DocumentRepository
	projectRepo repositories.ProjectRepository
	logger      *slog.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	docRepo repositories.DocumentRepository,
	projectRepo repositories.ProjectRepository,
	logger *slog.Logger,
) services.AnalyticsService {
	return &analyticsService{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// ProjectStats computes word counts and status totals from the live document
// set on every call. The numbers are cheap enough to derive on demand, so
// nothing is tracked or stored.
func (s *analyticsService) ProjectStats(ctx context.Context, identity rbac.Identity, projectID string) (*services.ProjectStats, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireSameOrg(identity, project.OrgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, projectID, rbac.PermAnalyticsView); err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	stats := &services.ProjectStats{
		ProjectID:     projectID,
		DocumentCount: len(docs),
		Documents:     make([]services.DocumentStats, 0, len(docs)),
	}
	for _, doc := range docs {
		words := utils.CountWords(doc.Content)
		stats.TotalWords += words
		if doc.Status == models.DocumentStatusPublished {
			stats.PublishedCount++
		}
		stats.Documents = append(stats.Documents, services.DocumentStats{
			DocumentID: doc.ID,
			Title:      doc.Title,
			Status:     doc.Status,
			WordCount:  words,
		})
	}

	return stats, nil
}
