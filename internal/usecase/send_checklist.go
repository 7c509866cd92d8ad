package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/lhomangroup/voyageur-malin/internal/entity"
	"github.com/lhomangroup/voyageur-malin/internal/infra/queue"
)

const (
	MsgChecklistSent = "Offre envoyée avec succès ! Vérifiez votre boîte email (et vos spams)."
	MsgAlreadySent   = "Vous avez déjà reçu l'offre à cette adresse email"
	MsgStoreFailed   = "Erreur lors de l'enregistrement"
	MsgSendFailed    = "Erreur lors de l'envoi de l'email"
)

// Submission outcomes reported to Metrics.
const (
	OutcomeSent        = "sent"
	OutcomeAlreadySent = "already_sent"
	OutcomeInvalid     = "invalid"
	OutcomeStoreError  = "store_error"
	OutcomeSendError   = "send_error"
)

// NewSendChecklistUseCase wires the submission flow. publisher and metrics may be nil.
func NewSendChecklistUseCase(
	repo SubscriberRepository,
	notifier Notifier,
	publisher EventPublisher,
	metrics Metrics,
	logger *slog.Logger,
) *SendChecklistUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SendChecklistUseCase{
		Repo:      repo,
		Notifier:  notifier,
		Publisher: publisher,
		Metrics:   metrics,
		Logger:    logger,
	}
}

// Execute validates the submission, stores the subscriber, sends the checklist
// and marks it sent. A subscriber who already received it is answered without
// any write.
func (uc *SendChecklistUseCase) Execute(ctx context.Context, input SendChecklistInput) (*SendChecklistOutput, error) {
	input = NormalizeInput(input)

	if errs := ValidateSubmission(input); len(errs) > 0 {
		uc.record(OutcomeInvalid)
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: validationMessage(errs),
			Details: validationDetails(errs),
		}
	}

	log := uc.Logger.With("email", input.Email)

	existing, err := uc.Repo.FindByEmail(ctx, input.Email)
	if err != nil {
		// the upsert below still guarantees a single row per email
		log.Warn("subscriber lookup failed, continuing", "error", err)
	}
	if existing != nil && existing.ChecklistSent {
		uc.record(OutcomeAlreadySent)
		return &SendChecklistOutput{
			Message:     MsgAlreadySent,
			AlreadySent: true,
		}, nil
	}

	subscriber := &entity.Subscriber{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		GDPRConsent: input.GDPRConsent,
	}
	if err := uc.Repo.Upsert(ctx, subscriber); err != nil {
		uc.record(OutcomeStoreError)
		return nil, &TechnicalError{Code: CodeDatabase, Message: MsgStoreFailed, Err: err}
	}
	log = log.With("subscriber_id", subscriber.ID)

	// the stored flag wins when the lookup failed or a concurrent request marked it
	if subscriber.ChecklistSent {
		uc.record(OutcomeAlreadySent)
		return &SendChecklistOutput{
			Message:     MsgAlreadySent,
			AlreadySent: true,
		}, nil
	}

	delivery, err := uc.Notifier.Send(ctx, subscriber.Email, subscriber.FirstName)
	if err != nil {
		uc.record(OutcomeSendError)
		return nil, &TechnicalError{Code: CodeNotification, Message: MsgSendFailed, Err: err}
	}
	if uc.Metrics != nil {
		uc.Metrics.RecordDelivery(delivery.Transport, delivery.BestEffort)
	}

	if err := uc.Repo.MarkSent(ctx, subscriber.ID); err != nil {
		log.Error("checklist sent but subscriber not marked", "error", err)
	} else {
		subscriber.ChecklistSent = true
	}

	if uc.Publisher != nil {
		event := queue.ChecklistSentEvent{
			SubscriberID: subscriber.ID,
			Email:        subscriber.Email,
			FirstName:    subscriber.FirstName,
			LastName:     subscriber.LastName,
			Transport:    delivery.Transport,
			BestEffort:   delivery.BestEffort,
			SentAt:       time.Now().UTC(),
		}
		if err := uc.Publisher.PublishChecklistSent(ctx, event); err != nil {
			log.Error("checklist sent but event not published", "error", err)
		}
	}

	uc.record(OutcomeSent)
	log.Info("checklist sent", "transport", delivery.Transport, "best_effort", delivery.BestEffort)

	return &SendChecklistOutput{
		Message:      MsgChecklistSent,
		SubscriberID: subscriber.ID,
		Fallback:     delivery.BestEffort,
	}, nil
}

func (uc *SendChecklistUseCase) record(outcome string) {
	if uc.Metrics != nil {
		uc.Metrics.RecordSubmission(outcome)
	}
}
