package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kanbanhq/cardboard/internal/domain"
)

// userPayload is the serialized user. The password hash has no field here,
// so it can never leak into a response.
type userPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func serializeUser(u *domain.User) userPayload {
	return userPayload{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// cardPayload is the serialized card.
type cardPayload struct {
	ID          string    `json:"id"`
	CardTitle   string    `json:"cardTitle"`
	Description string    `json:"description"`
	ProjectName string    `json:"projectName"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func serializeCard(c *domain.Card) cardPayload {
	return cardPayload{
		ID:          c.ID.String(),
		CardTitle:   c.Title,
		Description: c.Description,
		ProjectName: c.ProjectName,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
	}
}

func serializeCards(cards []*domain.Card) []cardPayload {
	out := make([]cardPayload, 0, len(cards))
	for _, c := range cards {
		out = append(out, serializeCard(c))
	}
	return out
}

// writeSuccess sends {"status":"success", ...fields}.
func writeSuccess(w http.ResponseWriter, code int, fields map[string]interface{}) {
	payload := map[string]interface{}{"status": "success"}
	for k, v := range fields {
		payload[k] = v
	}
	writeJSON(w, code, payload)
}

// writeFail sends {"status":"fail","message":message}.
func writeFail(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"status": "fail", "message": message})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
