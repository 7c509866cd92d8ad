package database

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhomangroup/voyageur-malin/internal/entity"
)

func TestMemorySubscriberRepository_UpsertIsKeyedByEmail(t *testing.T) {
	repo := NewMemorySubscriberRepository()
	ctx := context.Background()

	first := &entity.Subscriber{FirstName: "Awa", LastName: "K.", Email: "awa@example.com", GDPRConsent: true}
	require.NoError(t, repo.Upsert(ctx, first))
	require.NotEmpty(t, first.ID)

	second := &entity.Subscriber{FirstName: "Awa Marie", LastName: "Koné", Email: "awa@example.com", GDPRConsent: true}
	require.NoError(t, repo.Upsert(ctx, second))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.Count())

	got, err := repo.FindByEmail(ctx, "awa@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Awa Marie", got.FirstName)
	assert.Equal(t, "Koné", got.LastName)
}

func TestMemorySubscriberRepository_ChecklistSentNeverReverts(t *testing.T) {
	repo := NewMemorySubscriberRepository()
	ctx := context.Background()

	s := &entity.Subscriber{FirstName: "Awa", LastName: "K.", Email: "awa@example.com", GDPRConsent: true}
	require.NoError(t, repo.Upsert(ctx, s))
	require.NoError(t, repo.MarkSent(ctx, s.ID))

	again := &entity.Subscriber{FirstName: "Awa", LastName: "K.", Email: "awa@example.com", GDPRConsent: true}
	require.NoError(t, repo.Upsert(ctx, again))

	assert.True(t, again.ChecklistSent)
}

func TestMemorySubscriberRepository_FindByEmailMissing(t *testing.T) {
	repo := NewMemorySubscriberRepository()

	got, err := repo.FindByEmail(context.Background(), "nobody@example.com")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySubscriberRepository_MarkSentUnknown(t *testing.T) {
	repo := NewMemorySubscriberRepository()

	err := repo.MarkSent(context.Background(), "missing")

	assert.ErrorIs(t, err, entity.ErrSubscriberNotFound)
}

func TestMemorySubscriberRepository_ConcurrentUpserts(t *testing.T) {
	repo := NewMemorySubscriberRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Upsert(ctx, &entity.Subscriber{
				FirstName: fmt.Sprintf("Awa-%d", i), LastName: "K.", Email: "awa@example.com", GDPRConsent: true,
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, repo.Count())
}
