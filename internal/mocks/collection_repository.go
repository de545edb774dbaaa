package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portfolio/internal/domain"
)

type CollectionRepository struct {
	mock.Mock
}

func (m *CollectionRepository) Create(ctx context.Context, collection *domain.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *CollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CollectionWithCover, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionWithCover), args.Error(1)
}

func (m *CollectionRepository) GetDefault(ctx context.Context) (*domain.Collection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *CollectionRepository) Update(ctx context.Context, id uuid.UUID, changes domain.CollectionChanges) (*domain.Collection, error) {
	args := m.Called(ctx, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *CollectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CollectionRepository) List(ctx context.Context, withCounts bool) ([]domain.CollectionWithCover, error) {
	args := m.Called(ctx, withCounts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CollectionWithCover), args.Error(1)
}
