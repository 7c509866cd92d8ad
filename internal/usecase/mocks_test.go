package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lhomangroup/voyageur-malin/internal/entity"
	"github.com/lhomangroup/voyageur-malin/internal/infra/mail"
	"github.com/lhomangroup/voyageur-malin/internal/infra/queue"
)

type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) FindByEmail(ctx context.Context, email string) (*entity.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) Upsert(ctx context.Context, s *entity.Subscriber) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSubscriberRepository) MarkSent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, to, firstName string) (mail.Delivery, error) {
	args := m.Called(ctx, to, firstName)
	return args.Get(0).(mail.Delivery), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishChecklistSent(ctx context.Context, event queue.ChecklistSentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordSubmission(outcome string) {
	m.Called(outcome)
}

func (m *MockMetrics) RecordDelivery(transport string, bestEffort bool) {
	m.Called(transport, bestEffort)
}
