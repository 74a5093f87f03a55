package rbac

import "sort"

// PermissionSet is an unordered set of permissions. The zero value (nil) is an
// empty set and is safe to query.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given permissions.
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether p is in the set.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// HasAll reports whether every permission in perms is in the set. An empty
// perms list is vacuously satisfied.
func (s PermissionSet) HasAll(perms []Permission) bool {
	for _, p := range perms {
		if !s.Has(p) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one permission in perms is in the set. An
// empty perms list is never satisfied.
func (s PermissionSet) HasAny(perms []Permission) bool {
	for _, p := range perms {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// Missing returns the permissions in perms that are not in the set, preserving
// input order.
func (s PermissionSet) Missing(perms []Permission) []Permission {
	var missing []Permission
	for _, p := range perms {
		if !s.Has(p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// Clone returns an independent copy of the set.
func (s PermissionSet) Clone() PermissionSet {
	out := make(PermissionSet, len(s))
	for p := range s {
		out[p] = struct{}{}
	}
	return out
}

// With returns a copy of the set with the given permissions added. The
// receiver is unchanged.
func (s PermissionSet) With(perms ...Permission) PermissionSet {
	out := s.Clone()
	for _, p := range perms {
		out[p] = struct{}{}
	}
	return out
}

// Union returns a new set containing every permission in either set.
func (s PermissionSet) Union(other PermissionSet) PermissionSet {
	out := s.Clone()
	for p := range other {
		out[p] = struct{}{}
	}
	return out
}

// List returns the set's permissions sorted, for stable JSON responses and
// log output.
func (s PermissionSet) List() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
