package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portfolio/internal/domain"
)

type LinkRepository interface {
	CreateLinks(ctx context.Context, links []domain.PhotoCollectionLink) error
	Delete(ctx context.Context, photoID, collectionID uuid.UUID) error
}

type linkRepository struct {
	db *sqlx.DB
}

func NewLinkRepository(db *sqlx.DB) LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) CreateLinks(ctx context.Context, links []domain.PhotoCollectionLink) error {
	if len(links) == 0 {
		return nil
	}
	query := `
		INSERT INTO gallery_photo_collection_link (photo_id, collection_id, display_order)
		VALUES (:photo_id, :collection_id, :display_order)
		ON CONFLICT (photo_id, collection_id) DO NOTHING`

	_, err := r.db.NamedExecContext(ctx, query, links)
	return err
}

func (r *linkRepository) Delete(ctx context.Context, photoID, collectionID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM gallery_photo_collection_link WHERE photo_id = $1 AND collection_id = $2`,
		photoID, collectionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrLinkNotFound
	}
	return nil
}
