package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Project keeps a denormalized copy of its skill names and image ids next to
// the normalized link tables.
type Project struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	Title          string         `json:"title" db:"title"`
	Description    string         `json:"description" db:"description"`
	ProjectEndDate *string        `json:"project_end_date" db:"project_end_date"`
	Skills         pq.StringArray `json:"skills" db:"skills"`
	Images         pq.StringArray `json:"images" db:"images"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

type ProjectImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Caption   *string   `json:"caption" db:"caption"`
	BlobURL   string    `json:"blob_url" db:"blob_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type ProjectImageLink struct {
	ProjectID uuid.UUID `db:"project_id"`
	ImageID   uuid.UUID `db:"image_id"`
}

type Skill struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

type ProjectSkillLink struct {
	ProjectID uuid.UUID `db:"project_id"`
	SkillID   uuid.UUID `db:"skill_id"`
}

type ProjectDetail struct {
	Project
	ImageRecords []ProjectImage `json:"image_records"`
	SkillRecords []Skill        `json:"skill_records"`
}

// ProjectImageInput describes an image already uploaded to the blob store.
// The id is generated by the client before the project is submitted.
type ProjectImageInput struct {
	ID      string  `json:"id"`
	Caption *string `json:"caption"`
	BlobURL string  `json:"blobUrl"`
}

type CreateProjectInput struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	ProjectEndDate *string             `json:"project_end_date"`
	Skills         []string            `json:"skills"`
	ImageData      []ProjectImageInput `json:"imageData"`
}

type UpdateCaptionInput struct {
	ImageID string  `json:"imageId"`
	Caption *string `json:"caption"`
}
