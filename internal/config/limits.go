package config

import "time"

const (
	// MaxOrganizationNameLength is the maximum length for organization names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxOrganizationNameLength = 255

	// MaxProjectNameLength is the maximum length for project names.
	// Same limit as organization names for consistency.
	MaxProjectNameLength = 255

	// MaxDocumentTitleLength is the maximum length for document titles.
	MaxDocumentTitleLength = 255

	// MaxSlugLength is the maximum length for URL slugs. Slugs are stored
	// in VARCHAR(255) but kept shorter so generated URLs stay readable.
	MaxSlugLength = 100

	// MaxDescriptionLength is the maximum length for project descriptions.
	MaxDescriptionLength = 2000

	// InvitationTTL is how long an invitation stays acceptable after it
	// is created.
	InvitationTTL = 7 * 24 * time.Hour
)
