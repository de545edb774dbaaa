package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portfolio/internal/domain"
)

const photoColumns = `p.id, p.blob_url, p.filename, p.photo_name, p.caption, p.f_stop, p.iso, p.shutter_speed, p.created_at, p.updated_at`

type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error)
	List(ctx context.Context, params domain.PhotoListParams) ([]domain.Photo, error)
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]domain.Photo, error)
	UpdateCamera(ctx context.Context, id uuid.UUID, input domain.UpdatePhotoInput) (*domain.Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO gallery_photo (id, blob_url, filename, photo_name, caption, f_stop, iso, shutter_speed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		photo.ID, photo.BlobURL, photo.Filename, photo.PhotoName, photo.Caption,
		photo.FStop, photo.ISO, photo.ShutterSpeed,
	).Scan(&photo.CreatedAt, &photo.UpdatedAt)
}

func (r *photoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Photo, error) {
	var photo domain.Photo
	query := `SELECT ` + photoColumns + ` FROM gallery_photo p WHERE p.id = $1`

	err := r.db.GetContext(ctx, &photo, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) List(ctx context.Context, params domain.PhotoListParams) ([]domain.Photo, error) {
	params.Validate()

	var (
		sb   strings.Builder
		args []interface{}
	)
	sb.WriteString(`SELECT ` + photoColumns + ` FROM gallery_photo p`)
	if params.CollectionID != nil {
		args = append(args, *params.CollectionID)
		sb.WriteString(fmt.Sprintf(`
			JOIN gallery_photo_collection_link l ON l.photo_id = p.id
			WHERE l.collection_id = $%d`, len(args)))
	}
	sb.WriteString(` ORDER BY p.created_at DESC`)
	if params.Limit > 0 {
		args = append(args, params.Limit, params.Offset)
		sb.WriteString(fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args)))
	} else if params.Offset > 0 {
		args = append(args, params.Offset)
		sb.WriteString(fmt.Sprintf(` OFFSET $%d`, len(args)))
	}

	photos := []domain.Photo{}
	if err := r.db.SelectContext(ctx, &photos, sb.String(), args...); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *photoRepository) ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]domain.Photo, error) {
	query := `
		SELECT ` + photoColumns + `
		FROM gallery_photo_collection_link l
		JOIN gallery_photo p ON p.id = l.photo_id
		WHERE l.collection_id = $1
		ORDER BY l.display_order ASC, p.created_at DESC`

	photos := []domain.Photo{}
	if err := r.db.SelectContext(ctx, &photos, query, collectionID); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *photoRepository) UpdateCamera(ctx context.Context, id uuid.UUID, input domain.UpdatePhotoInput) (*domain.Photo, error) {
	if input.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	var (
		sets []string
		args []interface{}
	)
	if input.FStop.Set {
		args = append(args, input.FStop.Value)
		sets = append(sets, fmt.Sprintf("f_stop = $%d", len(args)))
	}
	if input.ISO.Set {
		args = append(args, input.ISO.Value)
		sets = append(sets, fmt.Sprintf("iso = $%d", len(args)))
	}
	if input.ShutterSpeed.Set {
		args = append(args, input.ShutterSpeed.Value)
		sets = append(sets, fmt.Sprintf("shutter_speed = $%d", len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE gallery_photo p SET %s
		WHERE p.id = $%d
		RETURNING %s`, strings.Join(sets, ", "), len(args), photoColumns)

	var photo domain.Photo
	err := r.db.GetContext(ctx, &photo, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// Delete removes the photo, its collection links (by cascade) and any cover
// references to it in the same transaction.
func (r *photoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE gallery_collection SET cover_photo_id = NULL, updated_at = NOW() WHERE cover_photo_id = $1`, id,
		); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM gallery_photo WHERE id = $1`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrPhotoNotFound
		}
		return nil
	})
}
