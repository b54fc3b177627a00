package auth

import (
	"context"
	"crypto/subtle"

	"github.com/kanbanhq/cardboard/internal/application/ports"
	"github.com/kanbanhq/cardboard/internal/domain"
	domerrors "github.com/kanbanhq/cardboard/internal/domain/errors"
)

type ResetPasswordInput struct {
	Email           string
	Code            string
	Password        string
	PasswordConfirm string
}

type ResetPasswordResult struct {
	Token string
	User  *domain.User
}

// ResetPassword consumes a reset code: on a hash match it sets the new
// password, clears the stored code hash and logs the user in.
//
// TODO: enforce ResetCodeExpiresAt here. The code is currently accepted as
// long as its hash is still stored, and the expiry column is never cleared
// on consumption either.
type ResetPassword struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewResetPassword(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *ResetPassword {
	return &ResetPassword{users: users, hasher: hasher, issuer: issuer}
}

func (uc *ResetPassword) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, domerrors.Store(err)
	}
	if user == nil {
		return nil, domerrors.NotFound("user not found")
	}
	submitted := hashResetCode(input.Code)
	if user.ResetCodeHash == nil ||
		subtle.ConstantTimeCompare([]byte(submitted), []byte(*user.ResetCodeHash)) != 1 {
		return nil, domerrors.Validation("invalid code")
	}
	if input.Password == "" || input.Password != input.PasswordConfirm {
		return nil, domerrors.Validation("passwords do not match")
	}
	newHash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	if err := uc.users.UpdatePassword(ctx, user.ID, newHash); err != nil {
		return nil, err
	}
	user.PasswordHash = newHash
	user.ResetCodeHash = nil
	token, err := uc.issuer.IssueAccessToken(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &ResetPasswordResult{Token: token, User: user}, nil
}
