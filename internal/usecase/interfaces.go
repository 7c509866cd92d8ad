package usecase

import (
	"context"
	"log/slog"

	"github.com/lhomangroup/voyageur-malin/internal/entity"
	"github.com/lhomangroup/voyageur-malin/internal/infra/mail"
	"github.com/lhomangroup/voyageur-malin/internal/infra/queue"
)

type SubscriberRepository = entity.SubscriberRepositoryInterface

// Notifier delivers the checklist email.
type Notifier interface {
	Send(ctx context.Context, to, firstName string) (mail.Delivery, error)
}

type EventPublisher interface {
	PublishChecklistSent(ctx context.Context, event queue.ChecklistSentEvent) error
}

// Metrics receives the outcome of each submission.
type Metrics interface {
	RecordSubmission(outcome string)
	RecordDelivery(transport string, bestEffort bool)
}

type SendChecklistUseCase struct {
	Repo      SubscriberRepository
	Notifier  Notifier
	Publisher EventPublisher
	Metrics   Metrics
	Logger    *slog.Logger
}
