// Package mail provides Mailer implementations: direct SMTP delivery and a
// log-only mailer for development.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/kanbanhq/cardboard/internal/application/ports"
)

// SMTPConfig holds the mail-account credentials.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends plaintext mail over authenticated SMTP.
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}

var _ ports.Mailer = (*SMTPMailer)(nil)
