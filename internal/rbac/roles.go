package rbac

// OrgRole is a user's role within their organization. Every user has exactly
// one. SUPER_ADMIN is the platform operator role and is assigned out-of-band
// (seed tooling), never through the API.
type OrgRole string

const (
	OrgRoleSuperAdmin OrgRole = "SUPER_ADMIN"
	OrgRoleAdmin      OrgRole = "ORG_ADMIN"
	OrgRoleManager    OrgRole = "MANAGER"
	OrgRoleUser       OrgRole = "USER"
	OrgRoleViewer     OrgRole = "VIEWER"
)

// ProjectRole is a user's role within a single project. A user holds at most
// one per project, granted independently of their organization role.
type ProjectRole string

const (
	ProjectRoleOwner  ProjectRole = "OWNER"
	ProjectRoleAdmin  ProjectRole = "ADMIN"
	ProjectRoleMember ProjectRole = "MEMBER"
	ProjectRoleViewer ProjectRole = "VIEWER"
)

// Role levels are ordinals for hierarchy comparison only. Permission checks
// never consult levels; they go through the grant tables.
var orgRoleLevels = map[OrgRole]int{
	OrgRoleSuperAdmin: 50,
	OrgRoleAdmin:      40,
	OrgRoleManager:    30,
	OrgRoleUser:       20,
	OrgRoleViewer:     10,
}

var projectRoleLevels = map[ProjectRole]int{
	ProjectRoleOwner:  40,
	ProjectRoleAdmin:  30,
	ProjectRoleMember: 20,
	ProjectRoleViewer: 10,
}

// ParseOrgRole maps a stored role string to an OrgRole. Unknown strings are
// rejected rather than coerced; an identity carrying an unknown role resolves
// to zero permissions.
func ParseOrgRole(s string) (OrgRole, bool) {
	r := OrgRole(s)
	_, ok := orgRoleLevels[r]
	return r, ok
}

// ParseProjectRole maps a stored role string to a ProjectRole.
func ParseProjectRole(s string) (ProjectRole, bool) {
	r := ProjectRole(s)
	_, ok := projectRoleLevels[r]
	return r, ok
}

func (r OrgRole) Valid() bool {
	_, ok := orgRoleLevels[r]
	return ok
}

func (r ProjectRole) Valid() bool {
	_, ok := projectRoleLevels[r]
	return ok
}

// Level returns the role's position in its hierarchy, 0 for unknown roles.
func (r OrgRole) Level() int {
	return orgRoleLevels[r]
}

func (r ProjectRole) Level() int {
	return projectRoleLevels[r]
}

// IsHigher reports whether r outranks other. Equal roles are never higher
// than each other.
func (r OrgRole) IsHigher(other OrgRole) bool {
	return orgRoleLevels[r] > orgRoleLevels[other]
}

func (r ProjectRole) IsHigher(other ProjectRole) bool {
	return projectRoleLevels[r] > projectRoleLevels[other]
}

// Elevated reports whether r carries organization-wide administrative reach,
// which lets the holder act on projects without holding a membership row.
func (r OrgRole) Elevated() bool {
	return r == OrgRoleSuperAdmin || r == OrgRoleAdmin
}

// CanManage reports whether an actor with role r may change or remove a user
// holding target. Managing is not a pure rank comparison: ORG_ADMIN manages
// peer ORG_ADMINs but never a SUPER_ADMIN, and MANAGER only reaches USER and
// VIEWER. Self-modification is rejected separately at the service layer; this
// comparator only sees roles.
func (r OrgRole) CanManage(target OrgRole) bool {
	switch r {
	case OrgRoleSuperAdmin:
		return true
	case OrgRoleAdmin:
		return target != OrgRoleSuperAdmin
	case OrgRoleManager:
		return target == OrgRoleUser || target == OrgRoleViewer
	default:
		return false
	}
}

// CanManage reports whether a project actor with role r may change or remove
// a member holding target. OWNER manages everyone including other OWNERs;
// ADMIN only reaches MEMBER and VIEWER.
func (r ProjectRole) CanManage(target ProjectRole) bool {
	switch r {
	case ProjectRoleOwner:
		return true
	case ProjectRoleAdmin:
		return target == ProjectRoleMember || target == ProjectRoleViewer
	default:
		return false
	}
}
