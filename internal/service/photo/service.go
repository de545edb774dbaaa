package photo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/metadata"
	"portfolio/internal/repository"
	"portfolio/internal/service/email"
	"portfolio/internal/storage"
)

const (
	maxFilenameLength     = 255
	maxPhotoNameLength    = 255
	maxShutterSpeedLength = 32
)

type Service interface {
	Create(ctx context.Context, input domain.CreatePhotoInput) domain.ActionResult[domain.Photo]
	Upload(ctx context.Context, file domain.UploadFile) (string, error)
	UploadBatch(ctx context.Context, files []domain.UploadFile, collectionIDs []uuid.UUID) (*domain.BatchUploadResult, error)
	List(ctx context.Context, params domain.PhotoListParams) ([]domain.Photo, error)
	UpdateCamera(ctx context.Context, id uuid.UUID, input domain.UpdatePhotoInput) (*domain.Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RemoveFromCollection(ctx context.Context, photoID, collectionID uuid.UUID) error
}

type service struct {
	photoRepo repository.PhotoRepository
	linkRepo  repository.LinkRepository
	blobs     storage.BlobStore
	extractor metadata.Extractor
	notifier  email.Service
	cache     *cache.Gallery
	cfg       *config.Config
	logger    *slog.Logger
}

func NewService(
	photoRepo repository.PhotoRepository,
	linkRepo repository.LinkRepository,
	blobs storage.BlobStore,
	extractor metadata.Extractor,
	notifier email.Service,
	gallery *cache.Gallery,
	cfg *config.Config,
) Service {
	return &service{
		photoRepo: photoRepo,
		linkRepo:  linkRepo,
		blobs:     blobs,
		extractor: extractor,
		notifier:  notifier,
		cache:     gallery,
		cfg:       cfg,
		logger:    slog.Default().With(slog.String("component", "photo_service")),
	}
}

// Create persists a photo whose bytes are already in the blob store. Only a
// failed photo insert fails the call: missing EXIF and failed collection
// links are logged and the photo is still reported as created.
func (s *service) Create(ctx context.Context, input domain.CreatePhotoInput) domain.ActionResult[domain.Photo] {
	if errs := s.validateCreate(input); errs.HasErrors() {
		return domain.Failed[domain.Photo]("Validation failed", errs)
	}

	blobURL := strings.TrimSpace(input.BlobURL)
	photo := &domain.Photo{
		ID:        uuid.New(),
		BlobURL:   blobURL,
		Filename:  filenameFor(input.Filename, blobURL),
		PhotoName: trimmedOrNil(input.PhotoName),
		Caption:   trimmedOrNil(input.Caption),
	}

	if settings := s.readCameraSettings(ctx, blobURL); !settings.Empty() {
		photo.FStop = settings.FStop
		photo.ISO = settings.ISO
		photo.ShutterSpeed = settings.ShutterSpeed
	}

	if err := s.photoRepo.Create(ctx, photo); err != nil {
		s.logger.Error("failed to save photo", slog.String("blob_url", blobURL), slog.Any("error", err))
		return domain.Failed[domain.Photo]("Failed to save photo to database", nil)
	}

	if ids := uniqueIDs(input.CollectionIDs); len(ids) > 0 {
		links := make([]domain.PhotoCollectionLink, 0, len(ids))
		for _, collectionID := range ids {
			links = append(links, domain.PhotoCollectionLink{
				PhotoID:      photo.ID,
				CollectionID: collectionID,
				DisplayOrder: 0,
			})
		}
		if err := s.linkRepo.CreateLinks(ctx, links); err != nil {
			s.logger.Warn("photo saved but linking to collections failed",
				slog.String("photo_id", photo.ID.String()), slog.Any("error", err))
		}
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("created gallery photo", slog.String("photo_id", photo.ID.String()))

	return domain.Succeeded("Photo created successfully!", photo)
}

func (s *service) validateCreate(input domain.CreatePhotoInput) domain.ValidationErrors {
	var errs domain.ValidationErrors

	blobURL := strings.TrimSpace(input.BlobURL)
	if blobURL == "" {
		errs.Add("blob_url", "Blob URL is required and must be a valid string")
	} else if u, err := url.Parse(blobURL); err != nil || u.Host == "" {
		errs.Add("blob_url", "Invalid blob URL format")
	} else if !s.blobs.Owns(blobURL) {
		errs.Add("blob_url", "Invalid blob URL - must be from the configured blob storage")
	}

	if utf8.RuneCountInString(input.Filename) > maxFilenameLength {
		errs.Addf("filename", "Filename must be %d characters or less", maxFilenameLength)
	}

	if input.PhotoName != nil && utf8.RuneCountInString(*input.PhotoName) > maxPhotoNameLength {
		errs.Addf("photo_name", "Photo name must be %d characters or less", maxPhotoNameLength)
	}

	return errs
}

// readCameraSettings never fails; the photo is stored without camera
// fields when the blob cannot be read or carries no EXIF.
func (s *service) readCameraSettings(ctx context.Context, blobURL string) *domain.CameraSettings {
	rc, err := s.blobs.Open(ctx, blobURL)
	if err != nil {
		s.logger.Warn("could not fetch blob for exif", slog.String("blob_url", blobURL), slog.Any("error", err))
		return nil
	}
	defer rc.Close()

	settings, err := s.extractor.Extract(rc)
	if err != nil {
		s.logger.Warn("could not extract exif data", slog.String("blob_url", blobURL), slog.Any("error", err))
		return nil
	}
	return settings
}

func (s *service) Upload(ctx context.Context, file domain.UploadFile) (string, error) {
	if s.cfg.MaxUploadBytes > 0 && file.Size > s.cfg.MaxUploadBytes {
		return "", domain.ErrFileTooLarge
	}
	if file.ContentType != "" && !strings.HasPrefix(file.ContentType, "image/") {
		return "", domain.ErrUnsupportedMedia
	}

	r, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", file.Filename, err)
	}
	defer r.Close()

	return s.blobs.Put(ctx, storage.NewObjectKey(storage.GalleryPrefix, file.Filename), r, file.Size, file.ContentType)
}

type uploadOutcome struct {
	url string
	err error
}

// UploadBatch uploads every file concurrently and waits for all of them to
// settle. Each successful upload then becomes a photo; failures are reported
// per file without affecting the rest of the batch.
func (s *service) UploadBatch(ctx context.Context, files []domain.UploadFile, collectionIDs []uuid.UUID) (*domain.BatchUploadResult, error) {
	if len(files) == 0 {
		return nil, domain.ValidationErrors{{Field: "files", Message: "Please select at least one photo to upload"}}
	}

	outcomes := make([]uploadOutcome, len(files))

	var g errgroup.Group
	if s.cfg.UploadConcurrency > 0 {
		g.SetLimit(s.cfg.UploadConcurrency)
	}
	for i, file := range files {
		g.Go(func() error {
			u, err := s.Upload(ctx, file)
			outcomes[i] = uploadOutcome{url: u, err: err}
			// never abort siblings: every upload settles on its own
			return nil
		})
	}
	_ = g.Wait()

	result := &domain.BatchUploadResult{
		Photos: []domain.Photo{},
		Errors: []domain.BatchFailure{},
	}

	for i, outcome := range outcomes {
		file := files[i]
		if outcome.err != nil {
			s.logger.Warn("batch upload failed", slog.String("filename", file.Filename), slog.Any("error", outcome.err))
			result.Errors = append(result.Errors, domain.BatchFailure{
				Index:    i,
				Filename: file.Filename,
				Message:  uploadFailureMessage(outcome.err),
			})
			continue
		}

		created := s.Create(ctx, domain.CreatePhotoInput{
			BlobURL:       outcome.url,
			Filename:      file.Filename,
			CollectionIDs: collectionIDs,
		})
		if !created.Success {
			if err := s.blobs.Delete(ctx, outcome.url); err != nil {
				s.logger.Warn("failed to remove orphaned blob", slog.String("blob_url", outcome.url), slog.Any("error", err))
			}
			result.Errors = append(result.Errors, domain.BatchFailure{
				Index:    i,
				Filename: file.Filename,
				Message:  created.Message,
			})
			continue
		}
		result.Photos = append(result.Photos, *created.Data)
	}

	if len(result.Errors) > 0 && s.notifier != nil {
		report := email.IngestReport{Created: result.Photos, Failures: result.Errors}
		go func() {
			if err := s.notifier.SendIngestReport(context.Background(), report); err != nil {
				s.logger.Warn("failed to send ingest report", slog.Any("error", err))
			}
		}()
	}

	return result, nil
}

func (s *service) List(ctx context.Context, params domain.PhotoListParams) ([]domain.Photo, error) {
	return s.photoRepo.List(ctx, params)
}

func (s *service) UpdateCamera(ctx context.Context, id uuid.UUID, input domain.UpdatePhotoInput) (*domain.Photo, error) {
	if input.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	var errs domain.ValidationErrors
	if input.FStop.Value != nil && *input.FStop.Value <= 0 {
		errs.Add("f_stop", "F-stop must be a positive number")
	}
	if input.ISO.Value != nil && *input.ISO.Value <= 0 {
		errs.Add("iso", "ISO must be a positive integer")
	}
	if input.ShutterSpeed.Value != nil && utf8.RuneCountInString(*input.ShutterSpeed.Value) > maxShutterSpeedLength {
		errs.Addf("shutter_speed", "Shutter speed must be %d characters or less", maxShutterSpeedLength)
	}
	if errs.HasErrors() {
		return nil, errs
	}

	photo, err := s.photoRepo.UpdateCamera(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return photo, nil
}

// Delete removes the photo row first; the blob is deleted afterwards on a
// best-effort basis since the row no longer references it.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	photo, err := s.photoRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.photoRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, photo.BlobURL); err != nil {
		s.logger.Warn("failed to delete photo blob", slog.String("blob_url", photo.BlobURL), slog.Any("error", err))
	}

	s.cache.Invalidate(ctx)
	return nil
}

func (s *service) RemoveFromCollection(ctx context.Context, photoID, collectionID uuid.UUID) error {
	if err := s.linkRepo.Delete(ctx, photoID, collectionID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func filenameFor(filename, blobURL string) string {
	if name := strings.TrimSpace(filename); name != "" {
		return name
	}
	if u, err := url.Parse(blobURL); err == nil {
		if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
			return base
		}
	}
	return "unknown"
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func uploadFailureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrFileTooLarge):
		return "File exceeds the maximum upload size"
	case errors.Is(err, domain.ErrUnsupportedMedia):
		return "Only image files can be uploaded"
	default:
		return "Upload failed"
	}
}
