package domain

import (
	"time"

	"github.com/google/uuid"
)

// CardID is a value object for card identity.
type CardID struct{ uuid.UUID }

// NewCardID creates a new CardID from uuid.
func NewCardID(id uuid.UUID) CardID { return CardID{UUID: id} }

// String returns the canonical string form.
func (c CardID) String() string { return c.UUID.String() }

// CardStatus is one of the four board columns.
type CardStatus string

const (
	StatusBacklog    CardStatus = "backlog"
	StatusTodo       CardStatus = "todo"
	StatusInProgress CardStatus = "inProgress"
	StatusDone       CardStatus = "done"
)

// Card is a unit of work on the board, owned by a project, in exactly one
// status column. New cards default to backlog.
type Card struct {
	ID          CardID
	Title       string
	Description string
	ProjectName string
	Status      CardStatus
	CreatedAt   time.Time
}

// Board holds cards partitioned by status, in retrieval order. A card whose
// status is not one of the four known columns lands in no bucket.
type Board struct {
	Backlog    []*Card
	Todo       []*Card
	InProgress []*Card
	Done       []*Card
}

// Add places the card in its status bucket. Unknown statuses are dropped.
func (b *Board) Add(card *Card) {
	switch card.Status {
	case StatusBacklog:
		b.Backlog = append(b.Backlog, card)
	case StatusTodo:
		b.Todo = append(b.Todo, card)
	case StatusInProgress:
		b.InProgress = append(b.InProgress, card)
	case StatusDone:
		b.Done = append(b.Done, card)
	}
}
