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

const (
	collectionColumns = `c.id, c.name, c.description, c.cover_photo_id, c.is_default, c.created_at, c.updated_at`

	collectionNameConstraint = "gallery_collection_name_key"

	// Cover columns come from a LEFT JOIN so a dangling cover reads as NULL.
	collectionWithCoverSelect = `
		SELECT ` + collectionColumns + `,
			p.id AS cover_id, p.filename AS cover_filename, p.blob_url AS cover_blob_url`
)

type CollectionRepository interface {
	Create(ctx context.Context, collection *domain.Collection) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CollectionWithCover, error)
	GetDefault(ctx context.Context) (*domain.Collection, error)
	Update(ctx context.Context, id uuid.UUID, changes domain.CollectionChanges) (*domain.Collection, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, withCounts bool) ([]domain.CollectionWithCover, error)
}

type collectionRepository struct {
	db *sqlx.DB
}

func NewCollectionRepository(db *sqlx.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

type collectionRow struct {
	domain.Collection
	CoverID       *uuid.UUID `db:"cover_id"`
	CoverFilename *string    `db:"cover_filename"`
	CoverBlobURL  *string    `db:"cover_blob_url"`
	PhotoCount    *int64     `db:"photo_count"`
}

func (row collectionRow) toDomain() domain.CollectionWithCover {
	out := domain.CollectionWithCover{
		Collection: row.Collection,
		PhotoCount: row.PhotoCount,
	}
	if row.CoverID != nil && row.CoverFilename != nil && row.CoverBlobURL != nil {
		out.CoverPhoto = &domain.PhotoSummary{
			ID:       *row.CoverID,
			Filename: *row.CoverFilename,
			BlobURL:  *row.CoverBlobURL,
		}
	}
	return out
}

func (r *collectionRepository) Create(ctx context.Context, collection *domain.Collection) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if collection.IsDefault {
			if err := clearDefault(ctx, tx, collection.ID); err != nil {
				return err
			}
		}

		query := `
			INSERT INTO gallery_collection (id, name, description, cover_photo_id, is_default)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at`

		return tx.QueryRowxContext(ctx, query,
			collection.ID, collection.Name, collection.Description, collection.CoverPhotoID, collection.IsDefault,
		).Scan(&collection.CreatedAt, &collection.UpdatedAt)
	})
	return translateCollectionErr(err)
}

func (r *collectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CollectionWithCover, error) {
	var row collectionRow
	query := collectionWithCoverSelect + `, NULL::bigint AS photo_count
		FROM gallery_collection c
		LEFT JOIN gallery_photo p ON p.id = c.cover_photo_id
		WHERE c.id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCollectionNotFound
	}
	if err != nil {
		return nil, err
	}
	out := row.toDomain()
	return &out, nil
}

func (r *collectionRepository) GetDefault(ctx context.Context) (*domain.Collection, error) {
	var collection domain.Collection
	query := `SELECT ` + collectionColumns + ` FROM gallery_collection c WHERE c.is_default LIMIT 1`

	err := r.db.GetContext(ctx, &collection, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCollectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) Update(ctx context.Context, id uuid.UUID, changes domain.CollectionChanges) (*domain.Collection, error) {
	var (
		sets []string
		args []interface{}
	)
	if changes.Name != nil {
		args = append(args, *changes.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if changes.Description != nil || changes.ClearDescription {
		args = append(args, changes.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if changes.CoverPhotoID != nil || changes.ClearCover {
		args = append(args, changes.CoverPhotoID)
		sets = append(sets, fmt.Sprintf("cover_photo_id = $%d", len(args)))
	}
	if changes.IsDefault != nil {
		args = append(args, *changes.IsDefault)
		sets = append(sets, fmt.Sprintf("is_default = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil, domain.ErrNoFieldsToUpdate
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE gallery_collection c SET %s
		WHERE c.id = $%d
		RETURNING %s`, strings.Join(sets, ", "), len(args), collectionColumns)

	var collection domain.Collection
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if changes.IsDefault != nil && *changes.IsDefault {
			if err := clearDefault(ctx, tx, id); err != nil {
				return err
			}
		}
		err := tx.GetContext(ctx, &collection, query, args...)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrCollectionNotFound
		}
		return err
	})
	if err != nil {
		return nil, translateCollectionErr(err)
	}
	return &collection, nil
}

// Delete relies on the link table's ON DELETE CASCADE.
func (r *collectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gallery_collection WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCollectionNotFound
	}
	return nil
}

// List returns every collection newest first. With counts, the photo count
// of all collections comes from a single grouped subquery.
func (r *collectionRepository) List(ctx context.Context, withCounts bool) ([]domain.CollectionWithCover, error) {
	query := collectionWithCoverSelect + `, NULL::bigint AS photo_count
		FROM gallery_collection c
		LEFT JOIN gallery_photo p ON p.id = c.cover_photo_id
		ORDER BY c.created_at DESC`
	if withCounts {
		query = collectionWithCoverSelect + `, COALESCE(cnt.photo_count, 0) AS photo_count
			FROM gallery_collection c
			LEFT JOIN gallery_photo p ON p.id = c.cover_photo_id
			LEFT JOIN (
				SELECT collection_id, COUNT(*) AS photo_count
				FROM gallery_photo_collection_link
				GROUP BY collection_id
			) cnt ON cnt.collection_id = c.id
			ORDER BY c.created_at DESC`
	}

	var rows []collectionRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	collections := make([]domain.CollectionWithCover, 0, len(rows))
	for _, row := range rows {
		collections = append(collections, row.toDomain())
	}
	return collections, nil
}

func clearDefault(ctx context.Context, tx *sqlx.Tx, keep uuid.UUID) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE gallery_collection SET is_default = FALSE, updated_at = NOW() WHERE is_default AND id <> $1`, keep)
	return err
}

func translateCollectionErr(err error) error {
	if constraint, ok := uniqueViolation(err); ok && constraint == collectionNameConstraint {
		return domain.ErrCollectionNameTaken
	}
	return err
}
