// Package queue routes email delivery through Asynq when Redis is
// configured. The enqueuer satisfies ports.Mailer, so callers never know
// whether mail goes out directly or through the worker.
package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/kanbanhq/cardboard/internal/application/ports"
)

const TypeSendEmail = "email:send"

type emailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Enqueuer implements ports.Mailer by enqueuing a send task.
type Enqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *Enqueuer) Close() error {
	return q.client.Close()
}

func (q *Enqueuer) Send(ctx context.Context, to, subject, body string) error {
	payload, _ := json.Marshal(emailPayload{To: to, Subject: subject, Body: body})
	task := asynq.NewTask(TypeSendEmail, payload)
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("to", to).Msg("enqueue email failed")
		return err
	}
	return nil
}

var _ ports.Mailer = (*Enqueuer)(nil)
