package ports

import "context"

// Mailer delivers a plaintext email. Implementations may send directly over
// SMTP, enqueue for a background worker, or just log in development; callers
// treat delivery as fire-and-forget either way.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
