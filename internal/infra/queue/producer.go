package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ChecklistSentEvent is published once a subscriber has been sent the offer.
type ChecklistSentEvent struct {
	SubscriberID string    `json:"subscriber_id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Transport    string    `json:"transport"`
	BestEffort   bool      `json:"best_effort"`
	SentAt       time.Time `json:"sent_at"`
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Producer struct {
	ch       publisher
	exchange string
}

func NewProducer(ch *amqp.Channel, exchange string) *Producer {
	return &Producer{ch: ch, exchange: exchange}
}

func (p *Producer) PublishChecklistSent(ctx context.Context, event ChecklistSentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.SubscriberID,
			Timestamp:    event.SentAt,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to rabbitmq: %w", err)
	}

	return nil
}
