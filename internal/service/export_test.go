package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/models"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

type exportFixture struct {
	export    services.ExportService
	analytics services.AnalyticsService
	docs      *fakeDocumentRepo
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()

	projects := newFakeProjectRepo()
	projects.projects[testProjectID] = &models.Project{ID: testProjectID, OrgID: testOrgID, Name: "Docs", Slug: "docs"}

	docs := newFakeDocumentRepo()
	docs.docs["doc-1"] = &models.Document{
		ID:        "doc-1",
		ProjectID: testProjectID,
		Title:     "Getting Started",
		Slug:      "getting-started",
		Content:   "# Getting Started\n\nWelcome to the project.",
		Status:    models.DocumentStatusPublished,
	}
	docs.docs["doc-2"] = &models.Document{
		ID:        "doc-2",
		ProjectID: testProjectID,
		Title:     "Draft Notes",
		Slug:      "draft-notes",
		Content:   "some draft words",
		Status:    models.DocumentStatusDraft,
	}

	return &exportFixture{
		export:    NewExportService(docs, projects, testLogger()),
		analytics: NewAnalyticsService(docs, projects, testLogger()),
		docs:      docs,
	}
}

// readArchive unpacks a zip into a name → content map.
func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("archive is not a valid zip: %v", err)
	}
	out := make(map[string]string, len(reader.File))
	for _, f := range reader.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		out[f.Name] = string(content)
	}
	return out
}

func TestExportProjectMarkdown(t *testing.T) {
	f := newExportFixture(t)
	identity := orgIdentity("user", rbac.OrgRoleUser) // export:data starts at USER

	export, err := f.export.ExportProject(context.Background(), identity, testProjectID, "")
	if err != nil {
		t.Fatalf("ExportProject() unexpected error: %v", err)
	}
	if export.Filename != "docs-markdown.zip" {
		t.Errorf("Filename = %q, want docs-markdown.zip", export.Filename)
	}

	entries := readArchive(t, export.Archive)
	if len(entries) != 2 {
		t.Fatalf("archive holds %d entries, want 2", len(entries))
	}
	entry, ok := entries["getting-started.md"]
	if !ok {
		t.Fatal("archive is missing getting-started.md")
	}
	if !strings.HasPrefix(entry, "---\n") {
		t.Error("markdown entry is missing its frontmatter header")
	}
	if !strings.Contains(entry, "status: published") {
		t.Errorf("frontmatter is missing the status field:\n%s", entry)
	}
	if !strings.Contains(entry, "Welcome to the project.") {
		t.Error("markdown entry lost the document body")
	}
}

func TestExportProjectHTML(t *testing.T) {
	f := newExportFixture(t)
	identity := orgIdentity("user", rbac.OrgRoleUser)

	export, err := f.export.ExportProject(context.Background(), identity, testProjectID, services.ExportFormatHTML)
	if err != nil {
		t.Fatalf("ExportProject() unexpected error: %v", err)
	}

	entries := readArchive(t, export.Archive)
	entry, ok := entries["getting-started.html"]
	if !ok {
		t.Fatal("archive is missing getting-started.html")
	}
	if !strings.Contains(entry, "<h1>Getting Started</h1>") {
		t.Errorf("heading was not rendered to HTML:\n%s", entry)
	}
	if !strings.Contains(entry, "<title>Getting Started</title>") {
		t.Error("page wrapper is missing the document title")
	}
}

func TestExportProjectRejections(t *testing.T) {
	f := newExportFixture(t)

	if _, err := f.export.ExportProject(context.Background(), orgIdentity("user", rbac.OrgRoleUser), testProjectID, "pdf"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown format error = %v, want ErrValidation", err)
	}

	// Org VIEWER does not hold export:data.
	if _, err := f.export.ExportProject(context.Background(), orgIdentity("viewer", rbac.OrgRoleViewer), testProjectID, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("viewer export error = %v, want ErrForbidden", err)
	}

	outsider := rbac.Identity{UserID: "outsider", OrgID: "9e8d7c6b-5a49-4837-a625-140302010099", OrgRole: rbac.OrgRoleAdmin}
	if _, err := f.export.ExportProject(context.Background(), outsider, testProjectID, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("cross-tenant export error = %v, want ErrForbidden", err)
	}
}

func TestProjectStats(t *testing.T) {
	f := newExportFixture(t)
	identity := orgIdentity("manager", rbac.OrgRoleManager) // analytics:view starts at MANAGER

	stats, err := f.analytics.ProjectStats(context.Background(), identity, testProjectID)
	if err != nil {
		t.Fatalf("ProjectStats() unexpected error: %v", err)
	}
	if stats.DocumentCount != 2 {
		t.Errorf("DocumentCount = %d, want 2", stats.DocumentCount)
	}
	if stats.PublishedCount != 1 {
		t.Errorf("PublishedCount = %d, want 1", stats.PublishedCount)
	}
	// "Getting Started Welcome to the project." (6) + "some draft words" (3)
	if stats.TotalWords != 9 {
		t.Errorf("TotalWords = %d, want 9", stats.TotalWords)
	}
	if len(stats.Documents) != 2 {
		t.Errorf("per-document stats = %d entries, want 2", len(stats.Documents))
	}

	// Org USER does not hold analytics:view.
	if _, err := f.analytics.ProjectStats(context.Background(), orgIdentity("user", rbac.OrgRoleUser), testProjectID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("ProjectStats() as USER error = %v, want ErrForbidden", err)
	}
}
