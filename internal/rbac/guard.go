package rbac

// Mode selects how a multi-permission requirement is combined. The zero value
// is ModeAll, so callers that pass a single permission get conjunction
// semantics without thinking about it; ModeAny must be chosen explicitly.
type Mode int

const (
	// ModeAll requires every listed permission.
	ModeAll Mode = iota
	// ModeAny requires at least one listed permission.
	ModeAny
)

func (m Mode) String() string {
	if m == ModeAny {
		return "any"
	}
	return "all"
}

// DenyReason classifies why an authorization check failed. Values are stable
// strings suitable for API responses and logs. Mapping reasons to HTTP status
// codes is the transport layer's job, not this package's.
type DenyReason string

const (
	DenyUnauthenticated         DenyReason = "UNAUTHENTICATED"
	DenyNotOrganizationMember   DenyReason = "NOT_ORGANIZATION_MEMBER"
	DenyNotProjectMember        DenyReason = "NOT_PROJECT_MEMBER"
	DenyInsufficientPermissions DenyReason = "INSUFFICIENT_PERMISSIONS"
)

// Decision is the outcome of an authorization check. When denied, Reason is
// always set and Missing lists the required permissions the caller lacked.
type Decision struct {
	Allowed bool         `json:"allowed"`
	Reason  DenyReason   `json:"reason,omitempty"`
	Missing []Permission `json:"missing,omitempty"`
}

// Authorize checks an identity against a permission requirement, resolving
// effective permissions fresh from the grant tables. It is pure: no I/O, no
// logging, no mutation, so callers may use it speculatively (UI feature
// probing) without side effects.
//
// Missing data always resolves to a denial: an empty identity is
// unauthenticated, an identity with no valid organization role is not an
// organization member, and a project-scoped check against a project the
// caller never joined denies with NOT_PROJECT_MEMBER unless their org role
// alone carries the requirement.
func Authorize(id Identity, required []Permission, projectID string, mode Mode) Decision {
	if !id.Authenticated() {
		return Decision{Reason: DenyUnauthenticated, Missing: required}
	}

	if !id.OrgRole.Valid() {
		return Decision{Reason: DenyNotOrganizationMember, Missing: required}
	}

	perms := Resolve(id.OrgRole, id.Memberships, projectID)

	var satisfied bool
	switch mode {
	case ModeAny:
		satisfied = perms.HasAny(required)
	default:
		satisfied = perms.HasAll(required)
	}
	if satisfied {
		return Decision{Allowed: true}
	}

	reason := DenyInsufficientPermissions
	if projectID != "" && !id.OrgRole.Elevated() {
		if _, member := id.Memberships[projectID]; !member {
			reason = DenyNotProjectMember
		}
	}
	return Decision{Reason: reason, Missing: perms.Missing(required)}
}
