package entity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrSubscriberConflict = errors.New("subscriber conflicts with an existing row")
	ErrStore              = errors.New("subscriber store failure")
)

// Subscriber is a person who submitted the lead form, identified by email.
type Subscriber struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	GDPRConsent   bool      `json:"gdpr_consent"`
	ChecklistSent bool      `json:"checklist_sent"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SubscriberRepositoryInterface is the store capability used by the submission flow.
type SubscriberRepositoryInterface interface {
	// FindByEmail returns (nil, nil) when no subscriber has this email.
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)

	// Upsert inserts or refreshes the row matched by email and fills the
	// generated fields back into s. ChecklistSent is never reset on conflict.
	Upsert(ctx context.Context, s *Subscriber) error

	MarkSent(ctx context.Context, id string) error
}
