package database

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lhomangroup/voyageur-malin/internal/entity"
)

// MemorySubscriberRepository keeps subscribers in process, keyed by email.
type MemorySubscriberRepository struct {
	mu      sync.Mutex
	byEmail map[string]*entity.Subscriber
	now     func() time.Time
}

func NewMemorySubscriberRepository() *MemorySubscriberRepository {
	return &MemorySubscriberRepository{
		byEmail: make(map[string]*entity.Subscriber),
		now:     time.Now,
	}
}

func (r *MemorySubscriberRepository) FindByEmail(_ context.Context, email string) (*entity.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *MemorySubscriberRepository) Upsert(_ context.Context, s *entity.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored, ok := r.byEmail[s.Email]
	if !ok {
		stored = &entity.Subscriber{
			ID:        uuid.New().String(),
			Email:     s.Email,
			CreatedAt: now,
		}
		r.byEmail[s.Email] = stored
	}
	stored.FirstName = s.FirstName
	stored.LastName = s.LastName
	stored.GDPRConsent = s.GDPRConsent
	stored.UpdatedAt = now

	*s = *stored
	return nil
}

func (r *MemorySubscriberRepository) MarkSent(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.byEmail {
		if s.ID == id {
			s.ChecklistSent = true
			s.UpdatedAt = r.now()
			return nil
		}
	}
	return entity.ErrSubscriberNotFound
}

// Count returns the number of stored subscribers.
func (r *MemorySubscriberRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byEmail)
}

// PingContext satisfies the health check.
func (r *MemorySubscriberRepository) PingContext(context.Context) error {
	return nil
}
