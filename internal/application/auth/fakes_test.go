package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kanbanhq/cardboard/internal/domain"
)

// fakeUserRepo is an in-memory ports.UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // by email
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return errors.New("duplicate email")
	}
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == userID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SetResetCode(ctx context.Context, userID domain.UserID, codeHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == userID {
			u.ResetCodeHash = &codeHash
			u.ResetCodeExpiresAt = &expiresAt
			return nil
		}
	}
	return errors.New("user not found")
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID domain.UserID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			u.ResetCodeHash = nil
			// expiry column intentionally untouched, matching the store
			return nil
		}
	}
	return errors.New("user not found")
}

// fakeHasher is a transparent hasher for tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Verify(password, hash string) bool    { return hash == "hashed:"+password }

// fakeIssuer mints predictable tokens.
type fakeIssuer struct{}

func (fakeIssuer) IssueAccessToken(userID string) (string, error) { return "token-" + userID, nil }
func (fakeIssuer) ValidateAccessToken(token string) (string, error) {
	if len(token) > 6 && token[:6] == "token-" {
		return token[6:], nil
	}
	return "", errors.New("invalid token")
}

// fakeMailer records sends; fails when broken.
type fakeMailer struct {
	mu     sync.Mutex
	sent   []sentMail
	broken bool
}

type sentMail struct {
	to, subject, body string
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.broken {
		return errors.New("smtp unreachable")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
