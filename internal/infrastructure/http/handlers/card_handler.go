package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/kanbanhq/cardboard/internal/application/cards"
)

type CardHandler struct {
	create   *cards.CreateCard
	list     *cards.ListCards
	validate *validator.Validate
	log      zerolog.Logger
}

func NewCardHandler(create *cards.CreateCard, list *cards.ListCards, log zerolog.Logger) *CardHandler {
	return &CardHandler{
		create:   create,
		list:     list,
		validate: validator.New(),
		log:      log,
	}
}

func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProjectName string `json:"projectName"`
		CardTitle   string `json:"cardTitle" validate:"required"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeFail(w, http.StatusBadRequest, "please fill your title")
		return
	}
	result, err := h.create.Execute(r.Context(), cards.CreateCardInput{
		ProjectName: body.ProjectName,
		Title:       body.CardTitle,
		Description: body.Description,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	writeSuccess(w, http.StatusCreated, map[string]interface{}{
		"data": serializeCard(result.Card),
	})
}

func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.list.Execute(r.Context())
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"backlog":    serializeCards(result.Board.Backlog),
			"todo":       serializeCards(result.Board.Todo),
			"inProgress": serializeCards(result.Board.InProgress),
			"done":       serializeCards(result.Board.Done),
		},
	})
}
