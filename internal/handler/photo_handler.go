package handler

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"portfolio/internal/domain"
	"portfolio/internal/middleware"
	"portfolio/internal/service/photo"
)

type PhotoHandler struct {
	photoService photo.Service
}

func NewPhotoHandler(photoService photo.Service) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

func (h *PhotoHandler) List(c *fiber.Ctx) error {
	params := domain.PhotoListParams{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	if raw := c.Query("collection_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.BadRequest("Invalid collection ID")
		}
		params.CollectionID = &id
	}
	params.Validate()

	photos, err := h.photoService.List(c.UserContext(), params)
	if err != nil {
		return middleware.Internal("Failed to fetch photos")
	}
	if photos == nil {
		photos = []domain.Photo{}
	}

	return c.JSON(fiber.Map{"photos": photos})
}

func (h *PhotoHandler) Create(c *fiber.Ctx) error {
	var input domain.CreatePhotoInput
	if err := c.BodyParser(&input); err != nil {
		var errs domain.ValidationErrors
		errs.Add("body", "Invalid request body")
		return writeAction(c, domain.Failed[domain.Photo]("Validation failed", errs))
	}

	return writeAction(c, h.photoService.Create(c.UserContext(), input))
}

func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	url, err := h.photoService.Upload(c.UserContext(), uploadFile(fh))
	if err != nil {
		return uploadError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

func (h *PhotoHandler) UploadBatch(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return middleware.BadRequest("Invalid multipart form")
	}

	var headers []*multipart.FileHeader
	headers = append(headers, form.File["files"]...)
	headers = append(headers, form.File["files[]"]...)

	files := make([]domain.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, uploadFile(fh))
	}

	var collectionIDs []uuid.UUID
	for _, key := range []string{"collection_id", "collection_id[]", "collection_ids"} {
		for _, raw := range form.Value[key] {
			id, err := uuid.Parse(raw)
			if err != nil {
				return middleware.BadRequest("Invalid collection ID")
			}
			collectionIDs = append(collectionIDs, id)
		}
	}

	result, err := h.photoService.UploadBatch(c.UserContext(), files, collectionIDs)
	if err != nil {
		return validationError(err)
	}

	return c.JSON(result)
}

func (h *PhotoHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id", "Photo ID is required")
	if err != nil {
		return err
	}

	var input domain.UpdatePhotoInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.photoService.UpdateCamera(c.UserContext(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoFieldsToUpdate):
			return middleware.BadRequest("No valid fields provided for update")
		case errors.Is(err, domain.ErrPhotoNotFound):
			return middleware.NotFound("Photo not found")
		}
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			return validationError(err)
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Photo updated successfully",
		"photo":   updated,
	})
}

func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id", "Photo ID is required")
	if err != nil {
		return err
	}

	if err := h.photoService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			return middleware.NotFound("Photo not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"message": "Photo deleted successfully"})
}

func (h *PhotoHandler) RemoveFromCollection(c *fiber.Ctx) error {
	photoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Photo ID and Collection ID are required")
	}
	collectionID, err := uuid.Parse(c.Params("collectionId"))
	if err != nil {
		return middleware.BadRequest("Photo ID and Collection ID are required")
	}

	if err := h.photoService.RemoveFromCollection(c.UserContext(), photoID, collectionID); err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return middleware.NotFound("Photo is not in this collection")
		}
		return err
	}

	return c.JSON(fiber.Map{"message": "Photo removed from collection successfully"})
}

func uploadFile(fh *multipart.FileHeader) domain.UploadFile {
	return domain.UploadFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func uploadError(err error) error {
	switch {
	case errors.Is(err, domain.ErrFileTooLarge):
		return middleware.RequestEntityTooLarge("File exceeds the maximum upload size")
	case errors.Is(err, domain.ErrUnsupportedMedia):
		return middleware.UnsupportedMediaType("Only image files can be uploaded")
	default:
		return err
	}
}
