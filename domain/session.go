package domain

import "time"

// Session binds a user and a bearer token to a liveness window. Exactly one
// row exists per (UserID, Token) pair; creation is an upsert. The permission
// chains and group memberships are a cache populated after authentication;
// an empty chain means "not resolved yet", never "no permissions".
type Session struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	Token                string    `json:"-"`
	UserPermissionChain  []string  `json:"user_permission_chain,omitempty"`
	GroupPermissionChain []string  `json:"group_permission_chain,omitempty"`
	GroupMemberships     []string  `json:"group_memberships,omitempty"`
	InitialAccessTime    time.Time `json:"initial_access_time"`
	LastAccessTime       time.Time `json:"last_access_time"`
}

// Age returns the time elapsed since the session was last touched.
func (s *Session) Age(reference time.Time) time.Duration {
	if s == nil {
		return 0
	}
	return reference.Sub(s.LastAccessTime)
}

// IsExpired reports whether the session has outlived the timeout at the
// given reference instant. Liveness is derived from LastAccessTime on every
// check; a stored row can be dead long before it is physically removed.
func (s *Session) IsExpired(timeout time.Duration, reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return s.Age(reference) > timeout
}

// CachedPermissions returns the deduplicated union of the user and group
// permission chains carried on the session row.
func (s *Session) CachedPermissions() PermissionSet {
	if s == nil {
		return nil
	}
	return NewPermissionSet(append(append([]string{}, s.UserPermissionChain...), s.GroupPermissionChain...)...)
}
