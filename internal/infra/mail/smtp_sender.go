package mail

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender is the real secondary transport.
type SMTPSender struct {
	Host   string
	Port   int
	dialer dialer
}

func NewSMTPSender(host string, port int, user, password string) *SMTPSender {
	return &SMTPSender{
		Host:   host,
		Port:   port,
		dialer: gomail.NewDialer(host, port, user, password),
	}
}

func (s *SMTPSender) Name() string { return "smtp" }

// Deliver ignores ctx: gomail dials synchronously without cancellation.
func (s *SMTPSender) Deliver(_ context.Context, msg Message) (Delivery, error) {
	if s.Host == "" {
		return Delivery{}, fmt.Errorf("smtp: %w", ErrTransportNotConfigured)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return Delivery{}, fmt.Errorf("smtp send failed: %w", err)
	}

	return Delivery{
		Transport: s.Name(),
		MessageID: fmt.Sprintf("smtp-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
