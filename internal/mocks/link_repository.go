package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portfolio/internal/domain"
)

type LinkRepository struct {
	mock.Mock
}

func (m *LinkRepository) CreateLinks(ctx context.Context, links []domain.PhotoCollectionLink) error {
	args := m.Called(ctx, links)
	return args.Error(0)
}

func (m *LinkRepository) Delete(ctx context.Context, photoID, collectionID uuid.UUID) error {
	args := m.Called(ctx, photoID, collectionID)
	return args.Error(0)
}
