package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kanbanhq/cardboard/internal/application/ports"
	domerrors "github.com/kanbanhq/cardboard/internal/domain/errors"
)

// ResetCodeTTL is how long a stored reset code stays valid.
const ResetCodeTTL = 10 * time.Minute

type ForgotPasswordInput struct {
	Email string
}

type ForgotPasswordResult struct {
	Message string
}

// ForgotPassword generates a 6-digit reset code, persists its hash with an
// expiry on the user row, and mails the plaintext code. A failed send is
// logged and swallowed: the code is already persisted at that point and the
// user can retry.
type ForgotPassword struct {
	users  ports.UserRepository
	mailer ports.Mailer
	log    zerolog.Logger
}

func NewForgotPassword(users ports.UserRepository, mailer ports.Mailer, log zerolog.Logger) *ForgotPassword {
	return &ForgotPassword{users: users, mailer: mailer, log: log}
}

func (uc *ForgotPassword) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, domerrors.Store(err)
	}
	if user == nil {
		return nil, domerrors.NotFound("there is no user with that email address")
	}

	code, err := generateResetCode()
	if err != nil {
		return nil, err
	}
	// Debug only: the plaintext code in server logs is a deliberate dev
	// convenience, never enabled in production log levels.
	uc.log.Debug().Str("email", user.Email).Str("code", code).Msg("issued password reset code")

	expiresAt := time.Now().Add(ResetCodeTTL)
	if err := uc.users.SetResetCode(ctx, user.ID, hashResetCode(code), expiresAt); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Your password reset code is %s", code)
	if err := uc.mailer.Send(ctx, user.Email, "Your Reset Password Code", body); err != nil {
		uc.log.Warn().Err(err).Str("email", user.Email).Msg("reset code email failed")
	}
	return &ForgotPasswordResult{Message: "code sent to email"}, nil
}
