package domain

// AuthResult is the unified outcome of a successful authentication workflow.
type AuthResult struct {
	Success     bool          `json:"success"`
	SessionID   string        `json:"session_id"`
	UserID      string        `json:"user_id"`
	Permissions PermissionSet `json:"permissions"`
	Token       string        `json:"token,omitempty"`
}
