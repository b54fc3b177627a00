package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/kanbanhq/cardboard/internal/application/ports"
)

// Worker consumes email tasks and delivers them with the given mailer.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	mailer ports.Mailer
	log    zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, mailer ports.Mailer, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, mailer: mailer, log: log}
	mux.HandleFunc(TypeSendEmail, w.handleSendEmail)
	return w
}

func (w *Worker) handleSendEmail(ctx context.Context, t *asynq.Task) error {
	var p emailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("email task payload invalid")
		return err
	}
	if err := w.mailer.Send(ctx, p.To, p.Subject, p.Body); err != nil {
		w.log.Warn().Err(err).Str("to", p.To).Msg("email delivery failed")
		return err
	}
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
