package domain

// PermissionSet is a deduplicated collection of opaque permission
// identifiers. The engine assumes nothing about their structure beyond
// equality, and callers must not rely on element order.
type PermissionSet []string

// NewPermissionSet builds a set from the given identifiers, dropping empty
// strings and duplicates while preserving first-seen order.
func NewPermissionSet(ids ...string) PermissionSet {
	if len(ids) == 0 {
		return PermissionSet{}
	}
	seen := make(map[string]struct{}, len(ids))
	set := make(PermissionSet, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		set = append(set, id)
	}
	return set
}

// Union returns a new set containing every permission present in either set.
func (p PermissionSet) Union(other PermissionSet) PermissionSet {
	return NewPermissionSet(append(append([]string{}, p...), other...)...)
}

// Contains reports whether the set grants the given permission.
func (p PermissionSet) Contains(id string) bool {
	for _, candidate := range p {
		if candidate == id {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the set grants nothing. Callers reading a cached
// set must treat empty as a cache miss, not as a zero-permission grant.
func (p PermissionSet) IsEmpty() bool {
	return len(p) == 0
}

// PermissionGroup is a named collection of permissions. Active membership in
// a group grants the union of its permissions for the membership's lifetime.
type PermissionGroup struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GroupMembership joins a user to a permission group. Only memberships with
// an active status contribute to permission resolution.
type GroupMembership struct {
	UserID    string `json:"user_id"`
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`
	Status    string `json:"status"`
}

const MembershipStatusActive = "active"
