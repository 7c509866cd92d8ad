package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/lhomangroup/voyageur-malin/internal/entity"
)

const uniqueViolation = "23505"

type SubscriberRepository struct {
	DB *sql.DB
}

func NewSubscriberRepository(db *sql.DB) *SubscriberRepository {
	return &SubscriberRepository{DB: db}
}

func (r *SubscriberRepository) FindByEmail(ctx context.Context, email string) (*entity.Subscriber, error) {
	query := `
		SELECT id, first_name, last_name, email, gdpr_consent, checklist_sent, created_at, updated_at
		FROM subscribers
		WHERE email = $1
	`

	var s entity.Subscriber
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.Email,
		&s.GDPRConsent,
		&s.ChecklistSent,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}

	return &s, nil
}

// Upsert refreshes name and consent on conflict; checklist_sent is left alone
// so a concurrent submission can never reset it.
func (r *SubscriberRepository) Upsert(ctx context.Context, s *entity.Subscriber) error {
	query := `
		INSERT INTO subscribers (first_name, last_name, email, gdpr_consent, checklist_sent, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			gdpr_consent = EXCLUDED.gdpr_consent,
			updated_at = NOW()
		RETURNING id, checklist_sent, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		s.FirstName,
		s.LastName,
		s.Email,
		s.GDPRConsent,
	).Scan(
		&s.ID,
		&s.ChecklistSent,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return classify(err)
	}

	return nil
}

func (r *SubscriberRepository) MarkSent(ctx context.Context, id string) error {
	query := `UPDATE subscribers SET checklist_sent = TRUE, updated_at = NOW() WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return classify(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return classify(err)
	}
	if n == 0 {
		return entity.ErrSubscriberNotFound
	}

	return nil
}

// classify maps driver errors of both registered drivers onto entity errors.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", entity.ErrSubscriberConflict, pgErr.Message)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return fmt.Errorf("%w: %s", entity.ErrSubscriberConflict, pqErr.Message)
	}

	return fmt.Errorf("%w: %w", entity.ErrStore, err)
}
