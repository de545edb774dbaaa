package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"portfolio/internal/domain"
)

type ProjectService struct {
	mock.Mock
}

func (m *ProjectService) Create(ctx context.Context, input domain.CreateProjectInput) domain.ActionResult[domain.Project] {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.ActionResult[domain.Project])
}

func (m *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *ProjectService) Get(ctx context.Context, id uuid.UUID) (*domain.ProjectDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectDetail), args.Error(1)
}

func (m *ProjectService) UpdateImageCaption(ctx context.Context, input domain.UpdateCaptionInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}
