package cards

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kanbanhq/cardboard/internal/application/ports"
	"github.com/kanbanhq/cardboard/internal/domain"
	domerrors "github.com/kanbanhq/cardboard/internal/domain/errors"
)

type CreateCardInput struct {
	ProjectName string
	Title       string
	Description string
}

type CreateCardResult struct {
	Card *domain.Card
}

// CreateCard persists a new card in the backlog column.
type CreateCard struct {
	cards ports.CardRepository
}

func NewCreateCard(cards ports.CardRepository) *CreateCard {
	return &CreateCard{cards: cards}
}

func (uc *CreateCard) Execute(ctx context.Context, input CreateCardInput) (*CreateCardResult, error) {
	if input.Title == "" {
		return nil, domerrors.Validation("please fill your title")
	}
	card := &domain.Card{
		ID:          domain.NewCardID(uuid.New()),
		Title:       input.Title,
		Description: input.Description,
		ProjectName: input.ProjectName,
		Status:      domain.StatusBacklog,
		CreatedAt:   time.Now(),
	}
	if err := uc.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return &CreateCardResult{Card: card}, nil
}
