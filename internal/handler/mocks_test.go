package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/uowclimb/society-seats/internal/model"
)

type mockEventStore struct {
	mock.Mock
}

func (m *mockEventStore) List(ctx context.Context) ([]model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *mockEventStore) GetByID(ctx context.Context, id int) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *mockEventStore) Create(ctx context.Context, e *model.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEventStore) Update(ctx context.Context, e *model.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEventStore) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockParticipantStore struct {
	mock.Mock
}

func (m *mockParticipantStore) ListByEvent(ctx context.Context, eventID int) ([]model.Participant, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Participant), args.Error(1)
}

func (m *mockParticipantStore) Register(ctx context.Context, p *model.Participant) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockParticipantStore) Delete(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}
