package handler

import (
	"github.com/gofiber/fiber/v2"

	"portfolio/internal/service/collection"
)

// GalleryHandler serves the public, unauthenticated gallery reads.
type GalleryHandler struct {
	collectionService collection.Service
}

func NewGalleryHandler(collectionService collection.Service) *GalleryHandler {
	return &GalleryHandler{collectionService: collectionService}
}

func (h *GalleryHandler) GetCollections(c *fiber.Ctx) error {
	collections, err := h.collectionService.GetGalleryCollections(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch collections")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"collections": collections})
}

func (h *GalleryHandler) GetCollectionPhotos(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id", "Invalid collection ID")
	if err != nil {
		return err
	}

	photos, err := h.collectionService.GetPhotosByCollection(c.UserContext(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch photos")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"photos": photos})
}

func (h *GalleryHandler) GetFeatured(c *fiber.Ctx) error {
	photos, err := h.collectionService.GetFeaturedPhotos(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch photos")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"photos": photos})
}
