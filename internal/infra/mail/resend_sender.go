package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers through the Resend API.
type ResendSender struct {
	client *resend.Client
	apiKey string
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		apiKey: apiKey,
	}
}

func (s *ResendSender) Name() string { return "resend" }

func (s *ResendSender) Deliver(ctx context.Context, msg Message) (Delivery, error) {
	if s.apiKey == "" {
		return Delivery{}, fmt.Errorf("resend: %w", ErrTransportNotConfigured)
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return Delivery{}, fmt.Errorf("resend send failed: %w", err)
	}

	return Delivery{
		Transport: s.Name(),
		MessageID: sent.Id,
		SentAt:    time.Now(),
	}, nil
}
