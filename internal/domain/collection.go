package domain

import (
	"time"

	"github.com/google/uuid"
)

type Collection struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Description  *string    `json:"description" db:"description"`
	CoverPhotoID *uuid.UUID `json:"cover_photo_id" db:"cover_photo_id"`
	// IsDefault marks the collection shown as the gallery's featured view.
	IsDefault bool      `json:"is_default" db:"is_default"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CollectionWithCover is a collection with its cover photo resolved. A
// cover pointing at a deleted photo reads as nil.
type CollectionWithCover struct {
	Collection
	CoverPhoto *PhotoSummary `json:"cover_photo"`
	PhotoCount *int64        `json:"photo_count,omitempty"`
}

type CreateCollectionInput struct {
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	CoverPhotoID *uuid.UUID `json:"cover_photo_id,omitempty"`
	IsDefault    bool       `json:"is_default,omitempty"`
}

// UpdateCollectionInput is a partial update: only fields present in the
// request body are written.
type UpdateCollectionInput struct {
	Name         NullableString `json:"name"`
	Description  NullableString `json:"description"`
	CoverPhotoID NullableUUID   `json:"cover_photo_id"`
	IsDefault    NullableBool   `json:"is_default"`
}

func (in UpdateCollectionInput) IsEmpty() bool {
	return !in.Name.Set && !in.Description.Set && !in.CoverPhotoID.Set && !in.IsDefault.Set
}

// CollectionChanges is the validated form of UpdateCollectionInput handed to
// the repository. Nil pointers are left untouched.
type CollectionChanges struct {
	Name             *string
	Description      *string
	ClearDescription bool
	CoverPhotoID     *uuid.UUID
	ClearCover       bool
	IsDefault        *bool
}
