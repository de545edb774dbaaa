package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portfolio/internal/domain"
)

type SkillRepository struct {
	mock.Mock
}

func (m *SkillRepository) GetByName(ctx context.Context, name string) (*domain.Skill, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *SkillRepository) Create(ctx context.Context, skill *domain.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *SkillRepository) CreateProjectLinks(ctx context.Context, links []domain.ProjectSkillLink) error {
	args := m.Called(ctx, links)
	return args.Error(0)
}
