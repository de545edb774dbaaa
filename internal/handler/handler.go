package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"portfolio/internal/domain"
	"portfolio/internal/middleware"
	"portfolio/internal/service"
)

type Handlers struct {
	Auth       *AuthHandler
	Photo      *PhotoHandler
	Collection *CollectionHandler
	Gallery    *GalleryHandler
	Project    *ProjectHandler
	Blog       *BlogHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(services.Auth),
		Photo:      NewPhotoHandler(services.Photo),
		Collection: NewCollectionHandler(services.Collection),
		Gallery:    NewGalleryHandler(services.Collection),
		Project:    NewProjectHandler(services.Project),
		Blog:       NewBlogHandler(services.Blog),
	}
}

func parseUUIDParam(c *fiber.Ctx, name, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest(message)
	}
	return id, nil
}

// validationError turns accumulated field errors into a 400 carrying the
// first message. Other errors pass through unchanged.
func validationError(err error) error {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return middleware.BadRequest(verrs[0].Message)
	}
	return err
}

// writeAction answers an ingest endpoint: 200 on success, 400 when the
// input failed validation, 500 when persistence failed.
func writeAction[T any](c *fiber.Ctx, result domain.ActionResult[T]) error {
	status := fiber.StatusOK
	if !result.Success {
		status = fiber.StatusInternalServerError
		if result.Errors.HasErrors() {
			status = fiber.StatusBadRequest
		}
	}
	return c.Status(status).JSON(result)
}
