package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kanbanhq/cardboard/internal/application/ports"
	"github.com/kanbanhq/cardboard/internal/domain"
	domerrors "github.com/kanbanhq/cardboard/internal/domain/errors"
)

const (
	createCardSQL = `INSERT INTO cards (id, title, description, project_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	listCardsSQL = `SELECT id, title, description, project_name, status, created_at
		FROM cards ORDER BY created_at`
)

// CardRepository implements ports.CardRepository on Postgres.
type CardRepository struct {
	pool *pgxpool.Pool
}

func NewCardRepository(pool *pgxpool.Pool) *CardRepository {
	return &CardRepository{pool: pool}
}

func (r *CardRepository) Create(ctx context.Context, card *domain.Card) error {
	_, err := r.pool.Exec(ctx, createCardSQL,
		card.ID.UUID, card.Title, card.Description, card.ProjectName, string(card.Status), card.CreatedAt)
	if err != nil {
		return domerrors.Store(err)
	}
	return nil
}

func (r *CardRepository) List(ctx context.Context) ([]*domain.Card, error) {
	rows, err := r.pool.Query(ctx, listCardsSQL)
	if err != nil {
		return nil, domerrors.Store(err)
	}
	defer rows.Close()

	var cards []*domain.Card
	for rows.Next() {
		var (
			c      domain.Card
			status string
		)
		if err := rows.Scan(&c.ID.UUID, &c.Title, &c.Description, &c.ProjectName, &status, &c.CreatedAt); err != nil {
			return nil, domerrors.Store(err)
		}
		c.Status = domain.CardStatus(status)
		cards = append(cards, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, domerrors.Store(err)
	}
	return cards, nil
}

var _ ports.CardRepository = (*CardRepository)(nil)
