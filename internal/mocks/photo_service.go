package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portfolio/internal/domain"
)

type PhotoService struct {
	mock.Mock
}

func (m *PhotoService) Create(ctx context.Context, input domain.CreatePhotoInput) domain.ActionResult[domain.Photo] {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.ActionResult[domain.Photo])
}

func (m *PhotoService) Upload(ctx context.Context, file domain.UploadFile) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *PhotoService) UploadBatch(ctx context.Context, files []domain.UploadFile, collectionIDs []uuid.UUID) (*domain.BatchUploadResult, error) {
	args := m.Called(ctx, files, collectionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchUploadResult), args.Error(1)
}

func (m *PhotoService) List(ctx context.Context, params domain.PhotoListParams) ([]domain.Photo, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Photo), args.Error(1)
}

func (m *PhotoService) UpdateCamera(ctx context.Context, id uuid.UUID, input domain.UpdatePhotoInput) (*domain.Photo, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *PhotoService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PhotoService) RemoveFromCollection(ctx context.Context, photoID, collectionID uuid.UUID) error {
	args := m.Called(ctx, photoID, collectionID)
	return args.Error(0)
}
