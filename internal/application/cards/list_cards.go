package cards

import (
	"context"

	"github.com/kanbanhq/cardboard/internal/application/ports"
	"github.com/kanbanhq/cardboard/internal/domain"
)

type ListCardsResult struct {
	Board *domain.Board
}

// ListCards retrieves every card and partitions it into the four board
// columns. Cards carrying an unrecognized status are excluded from all
// columns rather than failing the listing.
type ListCards struct {
	cards ports.CardRepository
}

func NewListCards(cards ports.CardRepository) *ListCards {
	return &ListCards{cards: cards}
}

func (uc *ListCards) Execute(ctx context.Context) (*ListCardsResult, error) {
	all, err := uc.cards.List(ctx)
	if err != nil {
		return nil, err
	}
	board := &domain.Board{
		Backlog:    []*domain.Card{},
		Todo:       []*domain.Card{},
		InProgress: []*domain.Card{},
		Done:       []*domain.Card{},
	}
	for _, card := range all {
		board.Add(card)
	}
	return &ListCardsResult{Board: board}, nil
}
