package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"portfolio/internal/domain"
)

type SkillRepository interface {
	// GetByName matches the name exactly, case included. It returns nil, nil
	// when no skill has that name.
	GetByName(ctx context.Context, name string) (*domain.Skill, error)
	Create(ctx context.Context, skill *domain.Skill) error
	CreateProjectLinks(ctx context.Context, links []domain.ProjectSkillLink) error
}

type skillRepository struct {
	db *sqlx.DB
}

func NewSkillRepository(db *sqlx.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) GetByName(ctx context.Context, name string) (*domain.Skill, error) {
	var skill domain.Skill
	err := r.db.GetContext(ctx, &skill, `SELECT id, name FROM skill WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *skillRepository) Create(ctx context.Context, skill *domain.Skill) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO skill (id, name) VALUES ($1, $2)`, skill.ID, skill.Name)
	return err
}

func (r *skillRepository) CreateProjectLinks(ctx context.Context, links []domain.ProjectSkillLink) error {
	if len(links) == 0 {
		return nil
	}
	query := `
		INSERT INTO project_skill_link (project_id, skill_id)
		VALUES (:project_id, :skill_id)
		ON CONFLICT DO NOTHING`
	_, err := r.db.NamedExecContext(ctx, query, links)
	return err
}
