package ports

import (
	"context"
	"time"

	"github.com/kanbanhq/cardboard/internal/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// GetByEmail returns (nil, nil) when no user matches. The returned user
	// includes the password hash; callers drop it before serializing.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
	// SetResetCode stores the code hash and expiry together, bypassing any
	// other column update.
	SetResetCode(ctx context.Context, userID domain.UserID, codeHash string, expiresAt time.Time) error
	// UpdatePassword sets a new password hash and clears the reset-code
	// hash. The expiry column is left untouched.
	UpdatePassword(ctx context.Context, userID domain.UserID, passwordHash string) error
}

// CardRepository defines persistence for board cards.
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	List(ctx context.Context) ([]*domain.Card, error)
}
