package domain

import "time"

// User is an identity record owned by the user directory. The engine reads
// it for credential checks and existence lookups; it never writes one.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User status values recognized by the engine.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

func (u *User) IsActive() bool {
	return u != nil && u.Status == UserStatusActive
}
