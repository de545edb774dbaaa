package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"portfolio/internal/domain"
)

const projectColumns = `p.id, p.title, p.description, to_char(p.project_end_date, 'YYYY-MM-DD') AS project_end_date,
	p.skills, p.images, p.created_at, p.updated_at`

// ProjectTx holds the writes that must land together when a project is
// created: the project row, its image links and its image rows.
type ProjectTx interface {
	CreateProject(ctx context.Context, project *domain.Project) error
	CreateImageLinks(ctx context.Context, links []domain.ProjectImageLink) error
	CreateImages(ctx context.Context, images []domain.ProjectImage) error
}

type ProjectRepository interface {
	// WithinTx runs fn in one transaction, rolling back every write when fn
	// returns an error.
	WithinTx(ctx context.Context, fn func(tx ProjectTx) error) error
	List(ctx context.Context) ([]domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectDetail, error)
	UpdateImageCaption(ctx context.Context, imageID uuid.UUID, caption *string) error
}

type projectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &projectRepository{db: db}
}

type projectTx struct {
	tx *sqlx.Tx
}

func (r *projectRepository) WithinTx(ctx context.Context, fn func(tx ProjectTx) error) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(&projectTx{tx: tx})
	})
}

func (t *projectTx) CreateProject(ctx context.Context, project *domain.Project) error {
	query := `
		INSERT INTO project (id, title, description, project_end_date, skills, images)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	if project.Skills == nil {
		project.Skills = pq.StringArray{}
	}
	if project.Images == nil {
		project.Images = pq.StringArray{}
	}

	return t.tx.QueryRowxContext(ctx, query,
		project.ID, project.Title, project.Description, project.ProjectEndDate,
		project.Skills, project.Images,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
}

func (t *projectTx) CreateImageLinks(ctx context.Context, links []domain.ProjectImageLink) error {
	if len(links) == 0 {
		return nil
	}
	query := `INSERT INTO project_image_link (project_id, image_id) VALUES (:project_id, :image_id)`
	_, err := t.tx.NamedExecContext(ctx, query, links)
	return err
}

func (t *projectTx) CreateImages(ctx context.Context, images []domain.ProjectImage) error {
	if len(images) == 0 {
		return nil
	}
	query := `INSERT INTO project_image (id, caption, blob_url) VALUES (:id, :caption, :blob_url)`
	_, err := t.tx.NamedExecContext(ctx, query, images)
	return err
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project p
		ORDER BY p.project_end_date DESC NULLS FIRST, p.created_at DESC`

	projects := []domain.Project{}
	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectDetail, error) {
	var detail domain.ProjectDetail
	err := r.db.GetContext(ctx, &detail.Project, `SELECT `+projectColumns+` FROM project p WHERE p.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	detail.ImageRecords = []domain.ProjectImage{}
	imagesQuery := `
		SELECT i.id, i.caption, i.blob_url, i.created_at
		FROM project_image_link l
		JOIN project_image i ON i.id = l.image_id
		WHERE l.project_id = $1
		ORDER BY i.created_at ASC`
	if err := r.db.SelectContext(ctx, &detail.ImageRecords, imagesQuery, id); err != nil {
		return nil, err
	}

	detail.SkillRecords = []domain.Skill{}
	skillsQuery := `
		SELECT s.id, s.name
		FROM project_skill_link l
		JOIN skill s ON s.id = l.skill_id
		WHERE l.project_id = $1
		ORDER BY s.name ASC`
	if err := r.db.SelectContext(ctx, &detail.SkillRecords, skillsQuery, id); err != nil {
		return nil, err
	}

	return &detail, nil
}

func (r *projectRepository) UpdateImageCaption(ctx context.Context, imageID uuid.UUID, caption *string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE project_image SET caption = $1 WHERE id = $2`, caption, imageID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}
