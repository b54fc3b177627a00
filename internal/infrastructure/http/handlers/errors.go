package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	domerrors "github.com/kanbanhq/cardboard/internal/domain/errors"
)

// respondError maps a tagged domain error to its status and message.
// Anything untagged is logged and surfaced as a bare 500; internals never
// reach the client.
func respondError(w http.ResponseWriter, log zerolog.Logger, err error) {
	var e *domerrors.Error
	if errors.As(err, &e) {
		if e.Kind == domerrors.KindStore {
			log.Error().Err(e.Unwrap()).Msg("store failure")
		}
		writeFail(w, e.Status, e.Message)
		return
	}
	log.Error().Err(err).Msg("unhandled error")
	writeFail(w, http.StatusInternalServerError, "internal error")
}
