package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolio/internal/domain"
	"portfolio/internal/handler"
	"portfolio/internal/middleware"
	"portfolio/internal/mocks"
	"portfolio/internal/service"
	"portfolio/internal/service/auth"
	"portfolio/internal/service/blog"
)

const adminToken = "valid-token"

type testApp struct {
	app         *fiber.App
	auth        *mocks.AuthService
	photos      *mocks.PhotoService
	collections *mocks.CollectionService
	projects    *mocks.ProjectService
}

func newTestApp() *testApp {
	ta := &testApp{
		auth:        new(mocks.AuthService),
		photos:      new(mocks.PhotoService),
		collections: new(mocks.CollectionService),
		projects:    new(mocks.ProjectService),
	}
	ta.auth.On("Validate", mock.Anything, adminToken).Return(&auth.Claims{Email: "admin@example.com"}, nil)
	ta.auth.On("Validate", mock.Anything, mock.Anything).Return(nil, domain.ErrUnauthorized)

	services := &service.Services{
		Auth:       ta.auth,
		Photo:      ta.photos,
		Collection: ta.collections,
		Project:    ta.projects,
		Blog: blog.NewServiceFS(fstest.MapFS{
			"hello.md": {Data: []byte("---\ntitle: Hello\ndate: 2024-01-01\n---\nHi\n")},
		}),
	}

	ta.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	handler.RegisterRoutes(ta.app, handler.NewHandlers(services), services.Auth)
	return ta
}

func jsonRequest(method, target string, body any, token string) *http.Request {
	var r io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	}
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	ta := newTestApp()

	resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, resp)["status"])
}

func TestAdminRoutesRequireSession(t *testing.T) {
	ta := newTestApp()

	resp, err := ta.app.Test(jsonRequest(http.MethodPost, "/api/gallery/collection", map[string]string{"name": "Trips"}, ""))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized: Admin access required", decode(t, resp)["error"])
	ta.collections.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBearerTokenAccepted(t *testing.T) {
	ta := newTestApp()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := ta.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin@example.com", decode(t, resp)["email"])
}

func TestCreatePhoto(t *testing.T) {
	blobURL := "http://blob.example.com/portfolio/gallery/a.jpg"

	t.Run("Unauthenticated Envelope", func(t *testing.T) {
		ta := newTestApp()

		resp, err := ta.app.Test(jsonRequest(http.MethodPost, "/api/gallery/photo", map[string]string{"blob_url": blobURL}, ""))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		body := decode(t, resp)
		assert.Equal(t, false, body["success"])
		errs := body["errors"].([]any)
		assert.Equal(t, "auth", errs[0].(map[string]any)["field"])
	})

	t.Run("Success", func(t *testing.T) {
		ta := newTestApp()
		created := &domain.Photo{ID: uuid.New(), BlobURL: blobURL, Filename: "a.jpg"}
		ta.photos.On("Create", mock.Anything, mock.MatchedBy(func(in domain.CreatePhotoInput) bool {
			return in.BlobURL == blobURL
		})).Return(domain.Succeeded("Photo created successfully!", created)).Once()

		resp, err := ta.app.Test(jsonRequest(http.MethodPost, "/api/gallery/photo", map[string]string{"blob_url": blobURL}, adminToken))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decode(t, resp)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, blobURL, body["data"].(map[string]any)["blob_url"])
	})

	t.Run("Validation Failure", func(t *testing.T) {
		ta := newTestApp()
		var errs domain.ValidationErrors
		errs.Add("blob_url", "Invalid blob URL format")
		ta.photos.On("Create", mock.Anything, mock.Anything).
			Return(domain.Failed[domain.Photo]("Validation failed", errs)).Once()

		resp, err := ta.app.Test(jsonRequest(http.MethodPost, "/api/gallery/photo", map[string]string{"blob_url": "nope"}, adminToken))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Persistence Failure", func(t *testing.T) {
		ta := newTestApp()
		ta.photos.On("Create", mock.Anything, mock.Anything).
			Return(domain.Failed[domain.Photo]("Failed to save photo to database", nil)).Once()

		resp, err := ta.app.Test(jsonRequest(http.MethodPost, "/api/gallery/photo", map[string]string{"blob_url": blobURL}, adminToken))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}

func TestCollectionRoutes(t *testing.T) {
	t.Run("Create Conflict", func(t *testing.T) {
		ta := newTestApp()
		ta.collections.On("Create", mock.Anything, domain.CreateCollectionInput{Name: "Trips"}).
			Return(nil, domain.ErrCollectionNameTaken).Once()

		resp, err := ta.app.Test(jsonRequest(http.MethodPost, "/api/gallery/collection", map[string]string{"name": "Trips"}, adminToken))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "A collection with this name already exists", decode(t, resp)["error"])
	})

	t.Run("Create", func(t *testing.T) {
		ta := newTestApp()
		ta.collections.On("Create", mock.Anything, mock.Anything).
			Return(&domain.Collection{ID: uuid.New(), Name: "Trips"}, nil).Once()

		resp, err := ta.app.Test(jsonRequest(http.MethodPost, "/api/gallery/collection", map[string]string{"name": "Trips"}, adminToken))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, "Collection created successfully", decode(t, resp)["message"])
	})

	t.Run("Validation Message", func(t *testing.T) {
		ta := newTestApp()
		var errs domain.ValidationErrors
		errs.Add("name", "Collection name is required")
		ta.collections.On("Create", mock.Anything, mock.Anything).Return(nil, errs).Once()

		resp, err := ta.app.Test(jsonRequest(http.MethodPost, "/api/gallery/collection", map[string]string{"name": ""}, adminToken))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Collection name is required", decode(t, resp)["error"])
	})

	t.Run("Get Not Found", func(t *testing.T) {
		ta := newTestApp()
		id := uuid.New()
		ta.collections.On("Get", mock.Anything, id).Return(nil, domain.ErrCollectionNotFound).Once()

		resp, err := ta.app.Test(jsonRequest(http.MethodGet, "/api/gallery/collection/"+id.String(), nil, ""))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("Admin List With Counts", func(t *testing.T) {
		ta := newTestApp()
		ta.collections.On("List", mock.Anything, true).Return([]domain.CollectionWithCover{}, nil).Once()

		resp, err := ta.app.Test(jsonRequest(http.MethodGet, "/api/gallery/collection?include_photo_counts=true", nil, adminToken))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		ta.collections.AssertExpectations(t)
	})

	t.Run("Unexpected Error Is Not Leaked", func(t *testing.T) {
		ta := newTestApp()
		id := uuid.New()
		ta.collections.On("Delete", mock.Anything, id).Return(assert.AnError).Once()

		resp, err := ta.app.Test(jsonRequest(http.MethodDelete, "/api/gallery/collection/"+id.String(), nil, adminToken))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "An unexpected error occurred", decode(t, resp)["error"])
	})
}

func TestGalleryReads(t *testing.T) {
	t.Run("Collection Photos Empty", func(t *testing.T) {
		ta := newTestApp()
		id := uuid.New()
		ta.collections.On("GetPhotosByCollection", mock.Anything, id).Return([]domain.Photo{}, nil).Once()

		resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/gallery/collection/"+id.String()+"/photos", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, []any{}, decode(t, resp)["photos"])
	})

	t.Run("Featured", func(t *testing.T) {
		ta := newTestApp()
		ta.collections.On("GetFeaturedPhotos", mock.Anything).Return([]domain.Photo{{ID: uuid.New()}}, nil).Once()

		resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/gallery/featured", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, decode(t, resp)["photos"], 1)
	})

	t.Run("Photo List Rejects Bad Collection ID", func(t *testing.T) {
		ta := newTestApp()

		resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/gallery/photo?collection_id=xyz", nil))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestPhotoRoutes(t *testing.T) {
	t.Run("Update Without Fields", func(t *testing.T) {
		ta := newTestApp()
		id := uuid.New()
		ta.photos.On("UpdateCamera", mock.Anything, id, domain.UpdatePhotoInput{}).Return(nil, domain.ErrNoFieldsToUpdate).Once()

		resp, err := ta.app.Test(jsonRequest(http.MethodPut, "/api/gallery/photo/"+id.String(), map[string]any{}, adminToken))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "No valid fields provided for update", decode(t, resp)["error"])
	})

	t.Run("Unlink Not Linked", func(t *testing.T) {
		ta := newTestApp()
		photoID, collectionID := uuid.New(), uuid.New()
		ta.photos.On("RemoveFromCollection", mock.Anything, photoID, collectionID).Return(domain.ErrLinkNotFound).Once()

		target := "/api/gallery/photo/" + photoID.String() + "/collection/" + collectionID.String()
		resp, err := ta.app.Test(jsonRequest(http.MethodDelete, target, nil, adminToken))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Photo is not in this collection", decode(t, resp)["error"])
	})

	t.Run("Batch Upload", func(t *testing.T) {
		ta := newTestApp()
		collectionID := uuid.New()

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for _, name := range []string{"a.jpg", "b.jpg"} {
			part, err := w.CreateFormFile("files", name)
			require.NoError(t, err)
			_, _ = part.Write([]byte("image"))
		}
		require.NoError(t, w.WriteField("collection_id", collectionID.String()))
		require.NoError(t, w.Close())

		ta.photos.On("UploadBatch", mock.Anything, mock.MatchedBy(func(files []domain.UploadFile) bool {
			return len(files) == 2 && files[0].Filename == "a.jpg"
		}), []uuid.UUID{collectionID}).Return(&domain.BatchUploadResult{
			Photos: []domain.Photo{{ID: uuid.New()}},
			Errors: []domain.BatchFailure{{Index: 1, Filename: "b.jpg", Message: "Upload failed"}},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/gallery/photo/batch", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: adminToken})

		resp, err := ta.app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decode(t, resp)
		assert.Len(t, body["photos"], 1)
		assert.Len(t, body["errors"], 1)
	})
}

func TestProjectRoutes(t *testing.T) {
	t.Run("Create Envelope", func(t *testing.T) {
		ta := newTestApp()
		ta.projects.On("Create", mock.Anything, mock.Anything).
			Return(domain.Failed[domain.Project]("Failed to create project images", nil)).Once()

		resp, err := ta.app.Test(jsonRequest(http.MethodPost, "/api/projects", map[string]any{"title": "Example"}, adminToken))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Failed to create project images", decode(t, resp)["message"])
	})

	t.Run("Update Caption", func(t *testing.T) {
		ta := newTestApp()
		imageID := uuid.NewString()
		ta.projects.On("UpdateImageCaption", mock.Anything, mock.MatchedBy(func(in domain.UpdateCaptionInput) bool {
			return in.ImageID == imageID
		})).Return(nil).Once()

		resp, err := ta.app.Test(jsonRequest(http.MethodPost, "/api/images/update-caption",
			map[string]any{"imageId": imageID, "caption": "New"}, adminToken))

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, decode(t, resp)["success"])
	})
}

func TestBlogRoutes(t *testing.T) {
	ta := newTestApp()

	resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/blog/hello", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello", decode(t, resp)["post"].(map[string]any)["title"])

	resp, err = ta.app.Test(httptest.NewRequest(http.MethodGet, "/api/blog/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	ta := newTestApp()
	ta.auth.On("Login", mock.Anything, domain.LoginInput{Email: "admin@example.com", Password: "pw"}).
		Return(&domain.Session{Token: "signed", Email: "admin@example.com", ExpiresAt: 1893456000}, nil).Once()
	ta.auth.On("Login", mock.Anything, mock.Anything).Return(nil, auth.ErrInvalidCredentials)

	resp, err := ta.app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
		map[string]string{"email": "admin@example.com", "password": "pw"}, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, "signed", cookie.Value)
	assert.True(t, cookie.HttpOnly)

	resp, err = ta.app.Test(jsonRequest(http.MethodPost, "/api/auth/login",
		map[string]string{"email": "admin@example.com", "password": "bad"}, ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
