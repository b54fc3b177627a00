package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kanbanhq/cardboard/internal/application/ports"
	"github.com/kanbanhq/cardboard/internal/domain"
	domerrors "github.com/kanbanhq/cardboard/internal/domain/errors"
)

const DefaultRole = "user"

type SignupInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
	Role            string
}

type SignupResult struct {
	Token string
	User  *domain.User
}

// Signup creates an account and logs it in. Required fields, the
// confirmation match, and email uniqueness are all checked here so the
// contract is visible without inspecting the store schema.
type Signup struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewSignup(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Signup {
	return &Signup{users: users, hasher: hasher, issuer: issuer}
}

func (uc *Signup) Execute(ctx context.Context, input SignupInput) (*SignupResult, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.PasswordConfirm == "" {
		return nil, domerrors.Validation("please fill name, email, password and passwordConfirm")
	}
	if input.Password != input.PasswordConfirm {
		return nil, domerrors.Validation("passwords do not match")
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, domerrors.Store(err)
	}
	if existing != nil {
		return nil, domerrors.Conflict("a user with that email already exists")
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = DefaultRole
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Name:         input.Name,
		Email:        input.Email,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := uc.issuer.IssueAccessToken(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &SignupResult{Token: token, User: user}, nil
}
