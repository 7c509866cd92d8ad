package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// LogSender records the intent to send and delivers nothing.
type LogSender struct {
	logger     *slog.Logger
	serviceID  string
	templateID string
}

func NewLogSender(logger *slog.Logger, serviceID, templateID string) *LogSender {
	return &LogSender{logger: logger, serviceID: serviceID, templateID: templateID}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Deliver(_ context.Context, msg Message) (Delivery, error) {
	s.logger.Warn("checklist email not delivered, intent recorded",
		"to", msg.To,
		"subject", msg.Subject,
		"service_id", s.serviceID,
		"template_id", s.templateID,
	)
	return Delivery{
		Transport:  s.Name(),
		MessageID:  fmt.Sprintf("log-%d", time.Now().UnixNano()),
		BestEffort: true,
		SentAt:     time.Now(),
	}, nil
}
