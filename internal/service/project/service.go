package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"portfolio/internal/domain"
	"portfolio/internal/repository"
	"portfolio/internal/storage"
)

const (
	minTitleLength       = 3
	maxTitleLength       = 255
	minDescriptionLength = 20
	maxSkillLength       = 50
	maxCaptionLength     = 255
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type Service interface {
	Create(ctx context.Context, input domain.CreateProjectInput) domain.ActionResult[domain.Project]
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.ProjectDetail, error)
	UpdateImageCaption(ctx context.Context, input domain.UpdateCaptionInput) error
}

type service struct {
	projectRepo repository.ProjectRepository
	skillRepo   repository.SkillRepository
	blobs       storage.BlobStore
	logger      *slog.Logger
}

func NewService(projectRepo repository.ProjectRepository, skillRepo repository.SkillRepository, blobs storage.BlobStore) Service {
	return &service{
		projectRepo: projectRepo,
		skillRepo:   skillRepo,
		blobs:       blobs,
		logger:      slog.Default().With(slog.String("component", "project_service")),
	}
}

// stageError records which write of the project transaction failed so the
// caller gets a message naming the stage without the database detail.
type stageError struct {
	message string
	err     error
}

func (e *stageError) Error() string { return e.message + ": " + e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

type validatedProject struct {
	title       string
	description string
	endDate     *string
	skills      []string
	images      []domain.ProjectImage
}

// Create writes the project, its image links and its images in one
// transaction. Skills are resolved afterwards; a skill that cannot be found,
// created or linked is logged and skipped.
func (s *service) Create(ctx context.Context, input domain.CreateProjectInput) domain.ActionResult[domain.Project] {
	v, errs := s.validate(input)
	if errs.HasErrors() {
		return domain.Failed[domain.Project]("Validation failed", errs)
	}

	project := &domain.Project{
		ID:             uuid.New(),
		Title:          v.title,
		Description:    v.description,
		ProjectEndDate: v.endDate,
		Skills:         pq.StringArray{},
		Images:         pq.StringArray{},
	}
	project.Skills = append(project.Skills, v.skills...)
	links := make([]domain.ProjectImageLink, 0, len(v.images))
	for _, img := range v.images {
		project.Images = append(project.Images, img.ID.String())
		links = append(links, domain.ProjectImageLink{ProjectID: project.ID, ImageID: img.ID})
	}

	err := s.projectRepo.WithinTx(ctx, func(tx repository.ProjectTx) error {
		if err := tx.CreateProject(ctx, project); err != nil {
			return &stageError{message: "Failed to create project", err: err}
		}
		if err := tx.CreateImageLinks(ctx, links); err != nil {
			return &stageError{message: "Failed to create project image links", err: err}
		}
		if err := tx.CreateImages(ctx, v.images); err != nil {
			return &stageError{message: "Failed to create project images", err: err}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("project creation rolled back", slog.String("project_id", project.ID.String()), slog.Any("error", err))
		var se *stageError
		if errors.As(err, &se) {
			return domain.Failed[domain.Project](se.message, nil)
		}
		return domain.Failed[domain.Project]("An unexpected error occurred while creating the project", nil)
	}

	s.logger.Info("created project",
		slog.String("project_id", project.ID.String()), slog.Int("images", len(v.images)))

	s.linkSkills(ctx, project.ID, v.skills)

	return domain.Succeeded("Project created successfully!", project)
}

func (s *service) linkSkills(ctx context.Context, projectID uuid.UUID, names []string) {
	if len(names) == 0 {
		return
	}

	links := make([]domain.ProjectSkillLink, 0, len(names))
	for _, name := range names {
		skill, err := s.resolveSkill(ctx, name)
		if err != nil {
			s.logger.Warn("skipping skill", slog.String("skill", name), slog.Any("error", err))
			continue
		}
		links = append(links, domain.ProjectSkillLink{ProjectID: projectID, SkillID: skill.ID})
	}

	if err := s.skillRepo.CreateProjectLinks(ctx, links); err != nil {
		s.logger.Warn("failed to link project skills",
			slog.String("project_id", projectID.String()), slog.Any("error", err))
	}
}

func (s *service) resolveSkill(ctx context.Context, name string) (*domain.Skill, error) {
	skill, err := s.skillRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}
	if skill != nil {
		return skill, nil
	}

	skill = &domain.Skill{ID: uuid.New(), Name: name}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	return skill, nil
}

func (s *service) validate(input domain.CreateProjectInput) (validatedProject, domain.ValidationErrors) {
	var (
		errs domain.ValidationErrors
		v    validatedProject
	)

	v.title = strings.TrimSpace(input.Title)
	switch n := utf8.RuneCountInString(v.title); {
	case n == 0:
		errs.Add("title", "Project title is required")
	case n < minTitleLength:
		errs.Addf("title", "Title must be at least %d characters long", minTitleLength)
	case n > maxTitleLength:
		errs.Addf("title", "Title must be %d characters or less", maxTitleLength)
	}

	v.description = strings.TrimSpace(input.Description)
	switch n := utf8.RuneCountInString(v.description); {
	case n == 0:
		errs.Add("description", "Project description is required")
	case n < minDescriptionLength:
		errs.Addf("description", "Description must be at least %d characters long", minDescriptionLength)
	}

	if input.ProjectEndDate != nil {
		if d := strings.TrimSpace(*input.ProjectEndDate); d != "" {
			if !validDate(d) {
				errs.Add("project_end_date", "Invalid date format")
			} else {
				v.endDate = &d
			}
		}
	}

	seen := make(map[string]struct{}, len(input.Skills))
	for _, raw := range input.Skills {
		skill := strings.TrimSpace(raw)
		if utf8.RuneCountInString(skill) > maxSkillLength {
			errs.Addf("skills", "Skill %q must be %d characters or less", skill, maxSkillLength)
			continue
		}
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		v.skills = append(v.skills, skill)
	}

	for i, img := range input.ImageData {
		pos := i + 1
		id, err := uuid.Parse(img.ID)
		switch {
		case err != nil:
			errs.Addf("images", "Invalid UUID at position %d", pos)
		case img.BlobURL == "" || !s.blobs.Owns(img.BlobURL):
			errs.Addf("images", "Invalid blob URL at position %d", pos)
		case img.Caption != nil && utf8.RuneCountInString(*img.Caption) > maxCaptionLength:
			errs.Addf("images", "Caption at position %d must be %d characters or less", pos, maxCaptionLength)
		default:
			v.images = append(v.images, domain.ProjectImage{
				ID:      id,
				Caption: img.Caption,
				BlobURL: img.BlobURL,
			})
		}
	}

	return v, errs
}

func validDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func (s *service) List(ctx context.Context) ([]domain.Project, error) {
	return s.projectRepo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.ProjectDetail, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *service) UpdateImageCaption(ctx context.Context, input domain.UpdateCaptionInput) error {
	var errs domain.ValidationErrors

	imageID, err := uuid.Parse(strings.TrimSpace(input.ImageID))
	if err != nil {
		errs.Add("imageId", "Image ID is required")
	}
	if input.Caption != nil && utf8.RuneCountInString(*input.Caption) > maxCaptionLength {
		errs.Addf("caption", "Caption must be %d characters or less", maxCaptionLength)
	}
	if errs.HasErrors() {
		return errs
	}

	return s.projectRepo.UpdateImageCaption(ctx, imageID, input.Caption)
}
