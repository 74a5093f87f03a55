package services

import (
	"context"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

// Export formats. Markdown keeps the stored content with a YAML frontmatter
// header; HTML renders the markdown body.
const (
	ExportFormatMarkdown = "markdown"
	ExportFormatHTML     = "html"
)

// Export is a rendered project archive ready to stream to the client.
type Export struct {
	Filename string
	Archive  []byte // zip
}

// ExportService renders a project's documents into a downloadable archive
type ExportService interface {
	// ExportProject builds a zip of the project's documents in the given
	// format
	ExportProject(ctx context.Context, identity rbac.Identity, projectID, format string) (*Export, error)
}

// DocumentStats summarizes one document for the analytics view.
type DocumentStats struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	WordCount  int    `json:"word_count"`
}

// ProjectStats is the per-project analytics rollup: simple counts only, no
// time series or event tracking.
type ProjectStats struct {
	ProjectID      string          `json:"project_id"`
	DocumentCount  int             `json:"document_count"`
	PublishedCount int             `json:"published_count"`
	TotalWords     int             `json:"total_words"`
	Documents      []DocumentStats `json:"documents"`
}

// AnalyticsService computes document statistics for a project
type AnalyticsService interface {
	// ProjectStats returns counts and word totals for a project
	ProjectStats(ctx context.Context, identity rbac.Identity, projectID string) (*ProjectStats, error)
}
