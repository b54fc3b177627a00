package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kanbanhq/cardboard/internal/application/auth"
	"github.com/kanbanhq/cardboard/internal/application/cards"
	"github.com/kanbanhq/cardboard/internal/domain"
	infraauth "github.com/kanbanhq/cardboard/internal/infrastructure/auth"
	httprouter "github.com/kanbanhq/cardboard/internal/infrastructure/http"
	"github.com/kanbanhq/cardboard/internal/infrastructure/http/handlers"
	"github.com/kanbanhq/cardboard/internal/infrastructure/security"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return errors.New("duplicate email")
	}
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
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

func (r *memUserRepo) SetResetCode(ctx context.Context, userID domain.UserID, codeHash string, expiresAt time.Time) error {
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

func (r *memUserRepo) UpdatePassword(ctx context.Context, userID domain.UserID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			u.ResetCodeHash = nil
			return nil
		}
	}
	return errors.New("user not found")
}

type memCardRepo struct {
	mu    sync.Mutex
	cards []*domain.Card
}

func (r *memCardRepo) Create(ctx context.Context, card *domain.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *card
	r.cards = append(r.cards, &cp)
	return nil
}

func (r *memCardRepo) List(ctx context.Context) ([]*domain.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cards, nil
}

type memMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *memMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, body)
	return nil
}

type testEnv struct {
	router http.Handler
	users  *memUserRepo
	cardsR *memCardRepo
	mailer *memMailer
	issuer *infraauth.TokenIssuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zerolog.Nop()
	users := newMemUserRepo()
	cardRepo := &memCardRepo{}
	mailer := &memMailer{}
	hasher := security.NewArgon2Hasher(security.Params{
		Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
	issuer := infraauth.NewTokenIssuer([]byte("test-secret-at-least-32-bytes-long"), "cardboard", "cardboard", time.Hour)

	authHandler := handlers.NewAuthHandler(
		auth.NewLogin(users, hasher, issuer),
		auth.NewSignup(users, hasher, issuer),
		auth.NewForgotPassword(users, mailer, log),
		auth.NewResetPassword(users, hasher, issuer),
		log,
	)
	cardHandler := handlers.NewCardHandler(
		cards.NewCreateCard(cardRepo),
		cards.NewListCards(cardRepo),
		log,
	)
	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler: authHandler,
		CardHandler: cardHandler,
		Log:         log,
	})
	return &testEnv{router: router, users: users, cardsR: cardRepo, mailer: mailer, issuer: issuer}
}

func (e *testEnv) post(t *testing.T, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestSignupLoginScenario(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/api/v1/users/signup", map[string]interface{}{
		"name": "A", "email": "a@x.com", "password": "secret12", "passwordConfirm": "secret12",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	payload := decode(t, rec)
	require.Equal(t, "success", payload["status"])
	require.NotEmpty(t, payload["token"])

	user := payload["data"].(map[string]interface{})["user"].(map[string]interface{})
	_, hasPassword := user["password"]
	require.False(t, hasPassword, "password never serialized")
	_, hasHash := user["passwordHash"]
	require.False(t, hasHash)
	require.Equal(t, "a@x.com", user["email"])

	rec = env.post(t, "/api/v1/users/login", map[string]interface{}{
		"email": "a@x.com", "password": "secret12",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	payload = decode(t, rec)
	token, _ := payload["token"].(string)
	require.NotEmpty(t, token)
	subject, err := env.issuer.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, user["id"], subject, "token decodes to the user's id")

	rec = env.post(t, "/api/v1/users/login", map[string]interface{}{
		"email": "a@x.com", "password": "wrong-secret",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	payload = decode(t, rec)
	require.Equal(t, "fail", payload["status"])
	require.Nil(t, payload["token"], "no token on bad credentials")
}

func TestLoginMissingFieldsRespond404(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/api/v1/users/login", map[string]interface{}{"email": "a@x.com"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignupDuplicateRespond409(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]interface{}{
		"name": "A", "email": "a@x.com", "password": "secret12", "passwordConfirm": "secret12",
	}
	require.Equal(t, http.StatusCreated, env.post(t, "/api/v1/users/signup", body).Code)
	require.Equal(t, http.StatusConflict, env.post(t, "/api/v1/users/signup", body).Code)
}

func TestSignupMissingFieldsRespond400(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/api/v1/users/signup", map[string]interface{}{"email": "a@x.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForgotAndResetPasswordFlow(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.post(t, "/api/v1/users/signup", map[string]interface{}{
		"name": "A", "email": "a@x.com", "password": "secret12", "passwordConfirm": "secret12",
	}).Code)

	rec := env.post(t, "/api/v1/users/forgotPassword", map[string]interface{}{"email": "nobody@x.com"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, env.mailer.sent)

	rec = env.post(t, "/api/v1/users/forgotPassword", map[string]interface{}{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.mailer.sent, 1)
	code := extractCode(t, env.mailer.sent[0])

	rec = env.post(t, "/api/v1/users/resetPassword", map[string]interface{}{
		"email": "a@x.com", "code": "000000", "password": "newpass12", "passwordConfirm": "newpass12",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.post(t, "/api/v1/users/resetPassword", map[string]interface{}{
		"email": "a@x.com", "code": code, "password": "newpass12", "passwordConfirm": "newpass12",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, decode(t, rec)["token"])

	rec = env.post(t, "/api/v1/users/login", map[string]interface{}{
		"email": "a@x.com", "password": "newpass12",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func extractCode(t *testing.T, body string) string {
	t.Helper()
	for i := 0; i+6 <= len(body); i++ {
		candidate := body[i : i+6]
		digits := true
		for _, ch := range candidate {
			if ch < '0' || ch > '9' {
				digits = false
				break
			}
		}
		if digits {
			return candidate
		}
	}
	t.Fatalf("no 6-digit code in mail body: %q", body)
	return ""
}

func TestCreateAndListCards(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/api/v1/cards", map[string]interface{}{
		"projectName": "Project 1", "cardTitle": "Example Card", "description": "This is an example card.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	payload := decode(t, rec)
	require.Equal(t, "success", payload["status"])
	created := payload["data"].(map[string]interface{})
	require.Equal(t, "backlog", created["status"])
	require.Equal(t, "Example Card", created["cardTitle"])

	rec = env.get(t, "/api/v1/cards")
	require.Equal(t, http.StatusOK, rec.Code)
	payload = decode(t, rec)
	data := payload["data"].(map[string]interface{})
	require.Len(t, data["backlog"], 1)
	require.Empty(t, data["todo"])
	require.Empty(t, data["inProgress"])
	require.Empty(t, data["done"])
}

func TestCreateCardMissingTitle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.post(t, "/api/v1/cards", map[string]interface{}{"projectName": "Project 1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, env.cardsR.cards, "nothing persisted")
}

func TestListCardsExcludesUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	env.cardsR.cards = []*domain.Card{
		{ID: domain.CardID{}, Title: "odd", Status: domain.CardStatus("archived"), CreatedAt: time.Now()},
	}

	rec := env.get(t, "/api/v1/cards")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]interface{})
	for _, group := range []string{"backlog", "todo", "inProgress", "done"} {
		require.Empty(t, data[group])
	}
}
