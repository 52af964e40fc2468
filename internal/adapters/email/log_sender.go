package email

import (
	"context"
	"log/slog"

	"github.com/payzen/payzen_backend/internal/core/domain"
)

// LogSender writes emails to the log instead of sending them. Used when SMTP is not configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg domain.EmailMessage) error {
	attachments := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		attachments = append(attachments, a.Filename)
	}
	s.logger.InfoContext(ctx, "Email not sent, SMTP disabled",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.TextBody),
		slog.Any("attachments", attachments),
	)
	return nil
}
