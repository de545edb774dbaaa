package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"portfolio/internal/domain"
	"portfolio/internal/middleware"
	"portfolio/internal/service/collection"
)

type CollectionHandler struct {
	collectionService collection.Service
}

func NewCollectionHandler(collectionService collection.Service) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

func (h *CollectionHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateCollectionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.collectionService.Create(c.UserContext(), input)
	if err != nil {
		return collectionError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Collection created successfully",
		"collection": created,
	})
}

func (h *CollectionHandler) List(c *fiber.Ctx) error {
	includeCounts := c.QueryBool("include_photo_counts", false)

	collections, err := h.collectionService.List(c.UserContext(), includeCounts)
	if err != nil {
		return middleware.Internal("Failed to fetch collections")
	}

	return c.JSON(fiber.Map{"collections": collections})
}

func (h *CollectionHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id", "Collection ID is required")
	if err != nil {
		return err
	}

	found, err := h.collectionService.Get(c.UserContext(), id)
	if err != nil {
		return collectionError(err)
	}

	return c.JSON(fiber.Map{"collection": found})
}

func (h *CollectionHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id", "Collection ID is required")
	if err != nil {
		return err
	}

	var input domain.UpdateCollectionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.collectionService.Update(c.UserContext(), id, input)
	if err != nil {
		return collectionError(err)
	}

	return c.JSON(fiber.Map{
		"message":    "Collection updated successfully",
		"collection": updated,
	})
}

func (h *CollectionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id", "Collection ID is required")
	if err != nil {
		return err
	}

	if err := h.collectionService.Delete(c.UserContext(), id); err != nil {
		return collectionError(err)
	}

	return c.JSON(fiber.Map{"message": "Collection deleted successfully"})
}

func collectionError(err error) error {
	switch {
	case errors.Is(err, domain.ErrCollectionNameTaken):
		return middleware.Conflict("A collection with this name already exists")
	case errors.Is(err, domain.ErrCollectionNotFound):
		return middleware.NotFound("Collection not found")
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		return middleware.BadRequest("No valid fields provided for update")
	default:
		return validationError(err)
	}
}
