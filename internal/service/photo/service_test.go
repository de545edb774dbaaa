package photo_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/mocks"
	"portfolio/internal/service/email"
	"portfolio/internal/service/photo"
)

const blobBase = "http://blob.example.com/portfolio/gallery/2024/05/"

type fixture struct {
	photoRepo *mocks.PhotoRepository
	linkRepo  *mocks.LinkRepository
	blobs     *mocks.BlobStore
	extractor *mocks.Extractor
	notifier  *mocks.EmailService
	svc       photo.Service
}

func newFixture() *fixture {
	f := &fixture{
		photoRepo: new(mocks.PhotoRepository),
		linkRepo:  new(mocks.LinkRepository),
		blobs:     new(mocks.BlobStore),
		extractor: new(mocks.Extractor),
		notifier:  new(mocks.EmailService),
	}
	cfg := &config.Config{MaxUploadBytes: 1 << 20, UploadConcurrency: 2}
	f.svc = photo.NewService(f.photoRepo, f.linkRepo, f.blobs, f.extractor, f.notifier, nil, cfg)
	return f
}

func blobReader() io.ReadCloser {
	return io.NopCloser(strings.NewReader("jpeg bytes"))
}

func TestPhotoService_Create(t *testing.T) {
	ctx := context.Background()
	url := blobBase + "sunset.jpg"

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		collectionID := uuid.New()
		fStop := 2.8
		iso := 200
		shutter := "1/250"

		f.blobs.On("Owns", url).Return(true)
		f.blobs.On("Open", ctx, url).Return(blobReader(), nil).Once()
		f.extractor.On("Extract", mock.Anything).Return(&domain.CameraSettings{
			FStop: &fStop, ISO: &iso, ShutterSpeed: &shutter,
		}, nil).Once()
		f.photoRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Photo) bool {
			return p.BlobURL == url && p.Filename == "sunset.jpg" && p.FStop != nil && *p.FStop == fStop
		})).Return(nil).Once()
		f.linkRepo.On("CreateLinks", ctx, mock.MatchedBy(func(links []domain.PhotoCollectionLink) bool {
			return len(links) == 1 && links[0].CollectionID == collectionID && links[0].DisplayOrder == 0
		})).Return(nil).Once()

		result := f.svc.Create(ctx, domain.CreatePhotoInput{
			BlobURL:       url,
			CollectionIDs: []uuid.UUID{collectionID, collectionID},
		})

		require.True(t, result.Success)
		assert.Equal(t, "Photo created successfully!", result.Message)
		require.NotNil(t, result.Data)
		assert.Equal(t, url, result.Data.BlobURL)
		assert.Equal(t, "1/250", *result.Data.ShutterSpeed)
		f.photoRepo.AssertExpectations(t)
		f.linkRepo.AssertExpectations(t)
	})

	t.Run("Foreign Blob URL", func(t *testing.T) {
		f := newFixture()
		foreign := "https://evil.example.net/photo.jpg"
		f.blobs.On("Owns", foreign).Return(false)

		result := f.svc.Create(ctx, domain.CreatePhotoInput{BlobURL: foreign})

		assert.False(t, result.Success)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "blob_url", result.Errors[0].Field)
		f.photoRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Validation Errors Accumulate", func(t *testing.T) {
		f := newFixture()
		longName := strings.Repeat("n", 256)

		result := f.svc.Create(ctx, domain.CreatePhotoInput{
			BlobURL:   "",
			Filename:  strings.Repeat("f", 256),
			PhotoName: &longName,
		})

		assert.False(t, result.Success)
		assert.Equal(t, "Validation failed", result.Message)
		require.Len(t, result.Errors, 3)
		assert.Equal(t, "blob_url", result.Errors[0].Field)
		assert.Equal(t, "filename", result.Errors[1].Field)
		assert.Equal(t, "photo_name", result.Errors[2].Field)
	})

	t.Run("Metadata Failure Is Soft", func(t *testing.T) {
		f := newFixture()
		f.blobs.On("Owns", url).Return(true)
		f.blobs.On("Open", ctx, url).Return(nil, errors.New("connection reset")).Once()
		f.photoRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Photo) bool {
			return p.FStop == nil && p.ISO == nil && p.ShutterSpeed == nil
		})).Return(nil).Once()

		result := f.svc.Create(ctx, domain.CreatePhotoInput{BlobURL: url, Filename: "custom.jpg"})

		require.True(t, result.Success)
		assert.Equal(t, "custom.jpg", result.Data.Filename)
		f.extractor.AssertNotCalled(t, "Extract", mock.Anything)
	})

	t.Run("Link Failure Still Succeeds", func(t *testing.T) {
		f := newFixture()
		f.blobs.On("Owns", url).Return(true)
		f.blobs.On("Open", ctx, url).Return(nil, errors.New("unavailable")).Once()
		f.photoRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.linkRepo.On("CreateLinks", ctx, mock.Anything).Return(errors.New("fk violation")).Once()

		result := f.svc.Create(ctx, domain.CreatePhotoInput{BlobURL: url, CollectionIDs: []uuid.UUID{uuid.New()}})

		assert.True(t, result.Success)
		f.linkRepo.AssertExpectations(t)
	})

	t.Run("Insert Failure", func(t *testing.T) {
		f := newFixture()
		f.blobs.On("Owns", url).Return(true)
		f.blobs.On("Open", ctx, url).Return(nil, errors.New("unavailable")).Once()
		f.photoRepo.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()

		result := f.svc.Create(ctx, domain.CreatePhotoInput{BlobURL: url, CollectionIDs: []uuid.UUID{uuid.New()}})

		assert.False(t, result.Success)
		assert.Equal(t, "Failed to save photo to database", result.Message)
		assert.Empty(t, result.Errors)
		f.linkRepo.AssertNotCalled(t, "CreateLinks", mock.Anything, mock.Anything)
	})
}

func uploadFile(name, contentType string, size int64) domain.UploadFile {
	return domain.UploadFile{
		Filename:    name,
		ContentType: contentType,
		Size:        size,
		Open: func() (io.ReadCloser, error) {
			return blobReader(), nil
		},
	}
}

func TestPhotoService_UploadBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("One Of Three Fails", func(t *testing.T) {
		f := newFixture()
		collectionID := uuid.New()
		jpgURL := blobBase + "a.jpg"
		pngURL := blobBase + "c.png"

		f.blobs.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasSuffix(key, ".jpg")
		}), mock.Anything, int64(10), "image/jpeg").Return(jpgURL, nil).Once()
		f.blobs.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
			return strings.HasSuffix(key, ".png")
		}), mock.Anything, int64(20), "image/png").Return(pngURL, nil).Once()
		f.blobs.On("Owns", mock.Anything).Return(true)
		f.blobs.On("Open", mock.Anything, mock.Anything).Return(nil, errors.New("skip exif"))
		f.photoRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()
		f.linkRepo.On("CreateLinks", mock.Anything, mock.Anything).Return(nil).Twice()

		reported := make(chan email.IngestReport, 1)
		f.notifier.On("SendIngestReport", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				reported <- args.Get(1).(email.IngestReport)
			}).Return(nil).Once()

		files := []domain.UploadFile{
			uploadFile("a.jpg", "image/jpeg", 10),
			uploadFile("b.jpg", "image/jpeg", 2<<20),
			uploadFile("c.png", "image/png", 20),
		}

		result, err := f.svc.UploadBatch(ctx, files, []uuid.UUID{collectionID})

		require.NoError(t, err)
		require.Len(t, result.Photos, 2)
		assert.Equal(t, jpgURL, result.Photos[0].BlobURL)
		assert.Equal(t, pngURL, result.Photos[1].BlobURL)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 1, result.Errors[0].Index)
		assert.Equal(t, "b.jpg", result.Errors[0].Filename)

		select {
		case report := <-reported:
			assert.Len(t, report.Created, 2)
			assert.Len(t, report.Failures, 1)
		case <-time.After(2 * time.Second):
			t.Fatal("ingest report was not sent")
		}
		f.photoRepo.AssertExpectations(t)
	})

	t.Run("Orphaned Blob Is Removed", func(t *testing.T) {
		f := newFixture()
		url := blobBase + "a.jpg"

		f.blobs.On("Put", mock.Anything, mock.Anything, mock.Anything, int64(10), "image/jpeg").Return(url, nil).Once()
		f.blobs.On("Owns", url).Return(true)
		f.blobs.On("Open", mock.Anything, url).Return(nil, errors.New("skip exif"))
		f.photoRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
		f.blobs.On("Delete", mock.Anything, url).Return(nil).Once()
		f.notifier.On("SendIngestReport", mock.Anything, mock.Anything).Return(nil).Maybe()

		result, err := f.svc.UploadBatch(ctx, []domain.UploadFile{uploadFile("a.jpg", "image/jpeg", 10)}, nil)

		require.NoError(t, err)
		assert.Empty(t, result.Photos)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "Failed to save photo to database", result.Errors[0].Message)
		f.blobs.AssertCalled(t, "Delete", mock.Anything, url)
	})

	t.Run("No Files", func(t *testing.T) {
		f := newFixture()

		result, err := f.svc.UploadBatch(ctx, nil, nil)

		assert.Nil(t, result)
		var verrs domain.ValidationErrors
		assert.True(t, errors.As(err, &verrs))
	})
}

func TestPhotoService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects Non Image", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Upload(ctx, uploadFile("notes.txt", "text/plain", 10))

		assert.ErrorIs(t, err, domain.ErrUnsupportedMedia)
		f.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Rejects Oversized File", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Upload(ctx, uploadFile("huge.jpg", "image/jpeg", 2<<20))

		assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	})
}

func TestPhotoService_UpdateCamera(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("No Fields", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.UpdateCamera(ctx, id, domain.UpdatePhotoInput{})

		assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
	})

	t.Run("Rejects Non Positive ISO", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.UpdateCamera(ctx, id, domain.UpdatePhotoInput{ISO: domain.Some(0)})

		var verrs domain.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "iso", verrs[0].Field)
	})

	t.Run("Not Found", func(t *testing.T) {
		f := newFixture()
		input := domain.UpdatePhotoInput{FStop: domain.Some(4.0)}
		f.photoRepo.On("UpdateCamera", ctx, id, input).Return(nil, domain.ErrPhotoNotFound).Once()

		_, err := f.svc.UpdateCamera(ctx, id, input)

		assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
	})
}

func TestPhotoService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	url := blobBase + "a.jpg"

	t.Run("Blob Delete Failure Is Soft", func(t *testing.T) {
		f := newFixture()
		f.photoRepo.On("GetByID", ctx, id).Return(&domain.Photo{ID: id, BlobURL: url}, nil).Once()
		f.photoRepo.On("Delete", ctx, id).Return(nil).Once()
		f.blobs.On("Delete", ctx, url).Return(errors.New("timeout")).Once()

		err := f.svc.Delete(ctx, id)

		assert.NoError(t, err)
		f.photoRepo.AssertExpectations(t)
		f.blobs.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		f := newFixture()
		f.photoRepo.On("GetByID", ctx, id).Return(nil, domain.ErrPhotoNotFound).Once()

		err := f.svc.Delete(ctx, id)

		assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
		f.blobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestPhotoService_RemoveFromCollection(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	photoID, collectionID := uuid.New(), uuid.New()
	f.linkRepo.On("Delete", ctx, photoID, collectionID).Return(domain.ErrLinkNotFound).Once()

	err := f.svc.RemoveFromCollection(ctx, photoID, collectionID)

	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}
