package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/repositories"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/domain/services"
	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/rbac"
)

// identityService implements the IdentityService interface
type identityService struct {
	userRepo   repositories.UserRepository
	memberRepo repositories.ProjectMemberRepository
	orgRepo    repositories.OrganizationRepository
	logger     *slog.Logger
}

// NewIdentityService creates a new identity service
func NewIdentityService(
	userRepo repositories.UserRepository,
	memberRepo repositories.ProjectMemberRepository,
	orgRepo repositories.OrganizationRepository,
	logger *slog.Logger,
) services.IdentityService {
	return &identityService{
		userRepo:   userRepo,
		memberRepo: memberRepo,
		orgRepo:    orgRepo,
		logger:     logger,
	}
}

// Resolve maps a verified token subject to an rbac.Identity snapshot.
//
// A missing mirror record is not an error: first-time sign-ins resolve to an
// identity with no organization role, which the guard denies everywhere
// except onboarding. A data-layer failure, by contrast, propagates as an
// error and must never collapse into a denial or an allow.
func (s *identityService) Resolve(ctx context.Context, userID string) (rbac.Identity, error) {
	if userID == "" {
		return rbac.Identity{}, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return rbac.Identity{UserID: userID}, nil
		}
		return rbac.Identity{}, fmt.Errorf("resolve identity: %w", err)
	}

	identity := rbac.Identity{UserID: user.ID}
	if user.OrgID != nil {
		identity.OrgID = *user.OrgID
	}

	// An unknown role string stays unset and resolves to zero permissions.
	if role, ok := rbac.ParseOrgRole(user.OrgRole); ok {
		identity.OrgRole = role
	} else {
		s.logger.Warn("user carries unknown organization role",
			"user_id", user.ID,
			"role", user.OrgRole,
		)
	}

	rows, err := s.memberRepo.ListByUser(ctx, userID)
	if err != nil {
		return rbac.Identity{}, fmt.Errorf("resolve identity: %w", err)
	}

	if len(rows) > 0 {
		identity.Memberships = make(map[string]rbac.ProjectRole, len(rows))
		for projectID, roleStr := range rows {
			role, ok := rbac.ParseProjectRole(roleStr)
			if !ok {
				s.logger.Warn("membership carries unknown project role",
					"user_id", user.ID,
					"project_id", projectID,
					"role", roleStr,
				)
				continue
			}
			identity.Memberships[projectID] = role
		}
	}

	return identity, nil
}

// Me returns the caller's mirror record and organization
func (s *identityService) Me(ctx context.Context, userID string) (*services.Me, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Authenticated but not yet onboarded
			return &services.Me{}, nil
		}
		return nil, err
	}

	me := &services.Me{User: user}
	if user.OrgID != nil {
		org, err := s.orgRepo.GetByID(ctx, *user.OrgID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		me.Organization = org
	}

	return me, nil
}

// PermissionsFor exposes the caller's own effective permission set for UI
// conditional rendering, sparing the frontend one guard round-trip per
// control.
func (s *identityService) PermissionsFor(ctx context.Context, userID, projectID string) ([]rbac.Permission, error) {
	identity, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	return identity.Permissions(projectID).List(), nil
}
