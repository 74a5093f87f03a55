// Package mail delivers transactional email. The only message the platform
// sends is the organization invitation notice.
package mail

import (
	"context"
	"log/slog"
)

// Mailer sends a single message to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// LogMailer writes messages to the log instead of delivering them. Used in
// development and whenever no SMTP host is configured, so invitation flows
// stay testable without a mail server.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a log-only mailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, to, subject, _, textBody string) error {
	m.logger.Info("email suppressed (no SMTP configured)",
		"to", to,
		"subject", subject,
		"body", textBody,
	)
	return nil
}
