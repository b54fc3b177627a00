package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is an account holder. PasswordHash is write-only and must never be
// serialized into an API response. ResetCodeHash and ResetCodeExpiresAt are
// set together by the forgot-password flow: sha256 hex of the 6-digit code
// plus its deadline.
type User struct {
	ID                 UserID
	Name               string
	Email              string
	Role               string
	PasswordHash       string
	ResetCodeHash      *string
	ResetCodeExpiresAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
