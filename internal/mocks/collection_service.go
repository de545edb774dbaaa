package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portfolio/internal/domain"
)

type CollectionService struct {
	mock.Mock
}

func (m *CollectionService) Create(ctx context.Context, input domain.CreateCollectionInput) (*domain.Collection, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *CollectionService) Update(ctx context.Context, id uuid.UUID, input domain.UpdateCollectionInput) (*domain.Collection, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *CollectionService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CollectionService) Get(ctx context.Context, id uuid.UUID) (*domain.CollectionWithCover, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionWithCover), args.Error(1)
}

func (m *CollectionService) List(ctx context.Context, includePhotoCounts bool) ([]domain.CollectionWithCover, error) {
	args := m.Called(ctx, includePhotoCounts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CollectionWithCover), args.Error(1)
}

func (m *CollectionService) GetGalleryCollections(ctx context.Context) ([]domain.CollectionWithCover, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CollectionWithCover), args.Error(1)
}

func (m *CollectionService) GetPhotosByCollection(ctx context.Context, id uuid.UUID) ([]domain.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *CollectionService) GetFeaturedPhotos(ctx context.Context) ([]domain.Photo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}
