package collection

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"portfolio/internal/cache"
	"portfolio/internal/domain"
	"portfolio/internal/repository"
)

const (
	maxNameLength        = 255
	maxDescriptionLength = 1000
)

type Service interface {
	Create(ctx context.Context, input domain.CreateCollectionInput) (*domain.Collection, error)
	Update(ctx context.Context, id uuid.UUID, input domain.UpdateCollectionInput) (*domain.Collection, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*domain.CollectionWithCover, error)
	List(ctx context.Context, includePhotoCounts bool) ([]domain.CollectionWithCover, error)

	GetGalleryCollections(ctx context.Context) ([]domain.CollectionWithCover, error)
	GetPhotosByCollection(ctx context.Context, id uuid.UUID) ([]domain.Photo, error)
	GetFeaturedPhotos(ctx context.Context) ([]domain.Photo, error)
}

type service struct {
	collectionRepo repository.CollectionRepository
	photoRepo      repository.PhotoRepository
	cache          *cache.Gallery
	logger         *slog.Logger
}

func NewService(
	collectionRepo repository.CollectionRepository,
	photoRepo repository.PhotoRepository,
	gallery *cache.Gallery,
) Service {
	return &service{
		collectionRepo: collectionRepo,
		photoRepo:      photoRepo,
		cache:          gallery,
		logger:         slog.Default().With(slog.String("component", "collection_service")),
	}
}

// Create relies on the unique constraint on the name; a duplicate comes back
// from the repository as ErrCollectionNameTaken.
func (s *service) Create(ctx context.Context, input domain.CreateCollectionInput) (*domain.Collection, error) {
	var errs domain.ValidationErrors

	name := strings.TrimSpace(input.Name)
	validateName(&errs, name, "Collection name is required")
	description := normalizeDescription(&errs, input.Description)

	if input.CoverPhotoID != nil && *input.CoverPhotoID != uuid.Nil {
		s.validateCover(ctx, &errs, *input.CoverPhotoID)
	}
	if errs.HasErrors() {
		return nil, errs
	}

	collection := &domain.Collection{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		IsDefault:   input.IsDefault,
	}
	if input.CoverPhotoID != nil && *input.CoverPhotoID != uuid.Nil {
		collection.CoverPhotoID = input.CoverPhotoID
	}

	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("created collection", slog.String("collection_id", collection.ID.String()), slog.String("name", name))
	return collection, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.UpdateCollectionInput) (*domain.Collection, error) {
	if input.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	var (
		errs    domain.ValidationErrors
		changes domain.CollectionChanges
	)

	if input.Name.Set {
		name := ""
		if input.Name.Value != nil {
			name = strings.TrimSpace(*input.Name.Value)
		}
		validateName(&errs, name, "Collection name must be a non-empty string")
		changes.Name = &name
	}

	if input.Description.Set {
		changes.Description = normalizeDescription(&errs, input.Description.Value)
		changes.ClearDescription = changes.Description == nil
	}

	if input.CoverPhotoID.Set {
		if input.CoverPhotoID.Value == nil || *input.CoverPhotoID.Value == uuid.Nil {
			changes.ClearCover = true
		} else {
			s.validateCover(ctx, &errs, *input.CoverPhotoID.Value)
			changes.CoverPhotoID = input.CoverPhotoID.Value
		}
	}

	if input.IsDefault.Set && input.IsDefault.Value != nil {
		changes.IsDefault = input.IsDefault.Value
	}

	if errs.HasErrors() {
		return nil, errs
	}

	collection, err := s.collectionRepo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return collection, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.collectionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	s.logger.Info("deleted collection", slog.String("collection_id", id.String()))
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.CollectionWithCover, error) {
	return s.collectionRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, includePhotoCounts bool) ([]domain.CollectionWithCover, error) {
	return s.collectionRepo.List(ctx, includePhotoCounts)
}

// GetGalleryCollections is the public gallery index: every collection with
// its cover and photo count.
func (s *service) GetGalleryCollections(ctx context.Context) ([]domain.CollectionWithCover, error) {
	var collections []domain.CollectionWithCover
	if s.cache.Get(ctx, cache.KeyCollections, &collections) {
		return collections, nil
	}

	collections, err := s.collectionRepo.List(ctx, true)
	if err != nil {
		s.logger.Error("failed to load gallery collections", slog.Any("error", err))
		return nil, err
	}

	s.cache.Set(ctx, cache.KeyCollections, collections)
	return collections, nil
}

// GetPhotosByCollection returns an empty list for an empty or unknown
// collection.
func (s *service) GetPhotosByCollection(ctx context.Context, id uuid.UUID) ([]domain.Photo, error) {
	key := cache.KeyCollectionPhotos(id)

	var photos []domain.Photo
	if s.cache.Get(ctx, key, &photos) {
		return photos, nil
	}

	photos, err := s.photoRepo.ListByCollection(ctx, id)
	if err != nil {
		s.logger.Error("failed to load collection photos", slog.String("collection_id", id.String()), slog.Any("error", err))
		return nil, err
	}
	if photos == nil {
		photos = []domain.Photo{}
	}

	s.cache.Set(ctx, key, photos)
	return photos, nil
}

// GetFeaturedPhotos returns the photos of the default collection, or an
// empty list when no collection is flagged as default.
func (s *service) GetFeaturedPhotos(ctx context.Context) ([]domain.Photo, error) {
	var photos []domain.Photo
	if s.cache.Get(ctx, cache.KeyFeatured, &photos) {
		return photos, nil
	}

	featured, err := s.collectionRepo.GetDefault(ctx)
	if errors.Is(err, domain.ErrCollectionNotFound) {
		s.logger.Info("no default collection configured")
		return []domain.Photo{}, nil
	}
	if err != nil {
		return nil, err
	}

	photos, err = s.GetPhotosByCollection(ctx, featured.ID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cache.KeyFeatured, photos)
	return photos, nil
}

func (s *service) validateCover(ctx context.Context, errs *domain.ValidationErrors, photoID uuid.UUID) {
	_, err := s.photoRepo.GetByID(ctx, photoID)
	if errors.Is(err, domain.ErrPhotoNotFound) {
		errs.Add("cover_photo_id", "Cover photo not found")
		return
	}
	if err != nil {
		s.logger.Warn("could not verify cover photo", slog.String("photo_id", photoID.String()), slog.Any("error", err))
	}
}

func validateName(errs *domain.ValidationErrors, name, requiredMessage string) {
	if name == "" {
		errs.Add("name", requiredMessage)
		return
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		errs.Addf("name", "Collection name must be %d characters or less", maxNameLength)
	}
}

func normalizeDescription(errs *domain.ValidationErrors, description *string) *string {
	if description == nil {
		return nil
	}
	d := strings.TrimSpace(*description)
	if d == "" {
		return nil
	}
	if utf8.RuneCountInString(d) > maxDescriptionLength {
		errs.Addf("description", "Description must be %d characters or less", maxDescriptionLength)
	}
	return &d
}
