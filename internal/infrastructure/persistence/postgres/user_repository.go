package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kanbanhq/cardboard/internal/application/ports"
	"github.com/kanbanhq/cardboard/internal/domain"
	domerrors "github.com/kanbanhq/cardboard/internal/domain/errors"
)

const (
	createUserSQL = `INSERT INTO users (id, name, email, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	getUserByEmailSQL = `SELECT id, name, email, role, password_hash, reset_code_hash, reset_code_expires_at, created_at, updated_at
		FROM users WHERE email = $1`
	getUserByIDSQL = `SELECT id, name, email, role, password_hash, reset_code_hash, reset_code_expires_at, created_at, updated_at
		FROM users WHERE id = $1`
	setResetCodeSQL = `UPDATE users SET reset_code_hash = $1, reset_code_expires_at = $2, updated_at = NOW() WHERE id = $3`
	// Clears the code hash only; reset_code_expires_at is left as-is.
	updatePasswordSQL = `UPDATE users SET password_hash = $1, reset_code_hash = NULL, updated_at = NOW() WHERE id = $2`
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// UserRepository implements ports.UserRepository on Postgres.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, createUserSQL,
		user.ID.UUID, user.Name, user.Email, user.Role, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domerrors.Conflict("a user with that email already exists")
	}
	if err != nil {
		return domerrors.Store(err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, getUserByEmailSQL, email)
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	return r.getOne(ctx, getUserByIDSQL, userID.UUID)
}

func (r *UserRepository) getOne(ctx context.Context, sql string, arg any) (*domain.User, error) {
	var (
		u         domain.User
		codeHash  *string
		expiresAt *time.Time
	)
	err := r.pool.QueryRow(ctx, sql, arg).Scan(
		&u.ID.UUID, &u.Name, &u.Email, &u.Role, &u.PasswordHash,
		&codeHash, &expiresAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.ResetCodeHash = codeHash
	u.ResetCodeExpiresAt = expiresAt
	return &u, nil
}

func (r *UserRepository) SetResetCode(ctx context.Context, userID domain.UserID, codeHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, setResetCodeSQL, codeHash, expiresAt, userID.UUID)
	if err != nil {
		return domerrors.Store(err)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID domain.UserID, passwordHash string) error {
	_, err := r.pool.Exec(ctx, updatePasswordSQL, passwordHash, userID.UUID)
	if err != nil {
		return domerrors.Store(err)
	}
	return nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
