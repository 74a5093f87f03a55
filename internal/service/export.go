package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"gitlab.com/golang-commonmark/markdown"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/repositories"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/utils"
)

var htmlRenderer = markdown.New(markdown.HTML(true), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

// htmlPage wraps a rendered document body in a minimal standalone page.
const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// exportService implements the ExportService interface
type exportService struct {
	docRepo     repositories.DocumentRepository
	projectRepo repositories.ProjectRepository
	logger      *slog.Logger
}

// NewExportService creates a new export service
func NewExportService(
	docRepo repositories.DocumentRepository,
	projectRepo repositories.ProjectRepository,
	logger *slog.Logger,
) services.ExportService {
	return &exportService{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// ExportProject builds an in-memory zip of the project's documents. Markdown
// entries carry a YAML frontmatter header; HTML entries are rendered from the
// stored markdown.
func (s *exportService) ExportProject(ctx context.Context, identity rbac.Identity, projectID, format string) (*services.Export, error) {
	if format == "" {
		format = services.ExportFormatMarkdown
	}
	if format != services.ExportFormatMarkdown && format != services.ExportFormatHTML {
		return nil, fmt.Errorf("%w: unknown export format %q", domain.ErrValidation, format)
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireSameOrg(identity, project.OrgID); err != nil {
		return nil, err
	}
	if err := authorize(identity, projectID, rbac.PermExportData); err != nil {
		return nil, err
	}

	docs, err := s.docRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	zipBuffer := new(bytes.Buffer)
	zipWriter := zip.NewWriter(zipBuffer)

	for _, doc := range docs {
		entry, content, err := s.renderEntry(&doc, format)
		if err != nil {
			return nil, err
		}
		fileWriter, err := zipWriter.Create(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry %s: %w", entry, err)
		}
		if _, err := fileWriter.Write(content); err != nil {
			return nil, fmt.Errorf("failed to write archive entry %s: %w", entry, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	s.logger.Info("project exported",
		"project_id", projectID,
		"format", format,
		"documents", len(docs),
		"actor", identity.UserID,
	)

	return &services.Export{
		Filename: fmt.Sprintf("%s-%s.zip", project.Slug, format),
		Archive:  zipBuffer.Bytes(),
	}, nil
}

func (s *exportService) renderEntry(doc *models.Document, format string) (string, []byte, error) {
	if format == services.ExportFormatHTML {
		body := htmlRenderer.RenderToString([]byte(doc.Content))
		page := fmt.Sprintf(htmlPage, doc.Title, body)
		return doc.Slug + ".html", []byte(page), nil
	}

	content, err := utils.RenderFrontmatter(utils.ExportMetadata{
		Title:  doc.Title,
		Slug:   doc.Slug,
		Status: doc.Status,
	}, doc.Content)
	if err != nil {
		return "", nil, err
	}
	return doc.Slug + ".md", content, nil
}
