package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kanbanhq/cardboard/internal/application/ports"
)

// LogMailer logs instead of sending. Used when SMTP is not configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("email (log only; configure SMTP for real delivery)")
	return nil
}

var _ ports.Mailer = (*LogMailer)(nil)
