package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Transport is one way of getting a rendered message out.
type Transport interface {
	Name() string
	Deliver(ctx context.Context, msg Message) (Delivery, error)
}

// FallbackSender renders the checklist email and hands it to each transport in
// turn until one accepts it.
type FallbackSender struct {
	renderer   *Renderer
	transports []Transport
	logger     *slog.Logger
}

func NewFallbackSender(renderer *Renderer, logger *slog.Logger, transports ...Transport) *FallbackSender {
	return &FallbackSender{renderer: renderer, transports: transports, logger: logger}
}

// Transports lists the configured transport names in order.
func (s *FallbackSender) Transports() []string {
	names := make([]string, 0, len(s.transports))
	for _, t := range s.transports {
		names = append(names, t.Name())
	}
	return names
}

func (s *FallbackSender) Send(ctx context.Context, to, firstName string) (Delivery, error) {
	msg, err := s.renderer.Render(to, firstName)
	if err != nil {
		return Delivery{}, err
	}

	var errs []error
	for _, t := range s.transports {
		delivery, err := t.Deliver(ctx, msg)
		if err == nil {
			return delivery, nil
		}
		if errors.Is(err, ErrTransportNotConfigured) {
			s.logger.Debug("mail transport skipped", "transport", t.Name())
		} else {
			s.logger.Error("mail transport failed, trying next", "transport", t.Name(), "error", err)
		}
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return Delivery{}, ErrNotificationFailed
	}
	return Delivery{}, fmt.Errorf("%w: %w", ErrNotificationFailed, errors.Join(errs...))
}
