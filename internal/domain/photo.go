package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Photo is a gallery photo. BlobURL is owned exclusively by this row.
type Photo struct {
	ID           uuid.UUID `json:"id" db:"id"`
	BlobURL      string    `json:"blob_url" db:"blob_url"`
	Filename     string    `json:"filename" db:"filename"`
	PhotoName    *string   `json:"photo_name" db:"photo_name"`
	Caption      *string   `json:"caption" db:"caption"`
	FStop        *float64  `json:"f_stop" db:"f_stop"`
	ISO          *int      `json:"iso" db:"iso"`
	ShutterSpeed *string   `json:"shutter_speed" db:"shutter_speed"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// PhotoSummary is the slice of a photo embedded as a collection cover.
type PhotoSummary struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Filename string    `json:"filename" db:"filename"`
	BlobURL  string    `json:"blob_url" db:"blob_url"`
}

// CameraSettings are the EXIF fields persisted on a photo.
type CameraSettings struct {
	FStop        *float64 `json:"f_stop,omitempty"`
	ISO          *int     `json:"iso,omitempty"`
	ShutterSpeed *string  `json:"shutter_speed,omitempty"`
}

func (c *CameraSettings) Empty() bool {
	return c == nil || (c.FStop == nil && c.ISO == nil && c.ShutterSpeed == nil)
}

type CreatePhotoInput struct {
	BlobURL       string      `json:"blob_url"`
	Filename      string      `json:"filename,omitempty"`
	PhotoName     *string     `json:"photo_name,omitempty"`
	Caption       *string     `json:"caption,omitempty"`
	CollectionIDs []uuid.UUID `json:"collection_ids,omitempty"`
}

// UpdatePhotoInput only carries the camera fields; everything else on a
// photo is immutable after ingest.
type UpdatePhotoInput struct {
	FStop        NullableFloat  `json:"f_stop"`
	ISO          NullableInt    `json:"iso"`
	ShutterSpeed NullableString `json:"shutter_speed"`
}

func (in UpdatePhotoInput) IsEmpty() bool {
	return !in.FStop.Set && !in.ISO.Set && !in.ShutterSpeed.Set
}

type PhotoCollectionLink struct {
	PhotoID      uuid.UUID `json:"photo_id" db:"photo_id"`
	CollectionID uuid.UUID `json:"collection_id" db:"collection_id"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// UploadFile is one file of a batch upload as received from the client.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// BatchUploadResult reports every created photo and every file that failed,
// in the order the files were submitted.
type BatchUploadResult struct {
	Photos []Photo        `json:"photos"`
	Errors []BatchFailure `json:"errors"`
}

type BatchFailure struct {
	Index    int    `json:"index"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}
