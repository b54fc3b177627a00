package auth

import (
	"context"
	"net/http"

	"github.com/kanbanhq/cardboard/internal/application/ports"
	"github.com/kanbanhq/cardboard/internal/domain"
	domerrors "github.com/kanbanhq/cardboard/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	User  *domain.User
}

// Login checks credentials and issues an access token.
type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	// Missing credentials respond 404, which is what the public contract
	// promises.
	if input.Email == "" || input.Password == "" {
		return nil, domerrors.ValidationWithStatus(http.StatusNotFound, "please provide email or password")
	}
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, domerrors.Store(err)
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.Auth("email or password is wrong")
	}
	token, err := uc.issuer.IssueAccessToken(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}
