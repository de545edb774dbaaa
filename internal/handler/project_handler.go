package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"portfolio/internal/domain"
	"portfolio/internal/middleware"
	"portfolio/internal/service/project"
)

type ProjectHandler struct {
	projectService project.Service
}

func NewProjectHandler(projectService project.Service) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.projectService.List(c.UserContext())
	if err != nil {
		return middleware.Internal("Failed to fetch projects")
	}

	return c.JSON(fiber.Map{"projects": projects})
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id", "Invalid project ID")
	if err != nil {
		return err
	}

	detail, err := h.projectService.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return middleware.NotFound("Project not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"project": detail})
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateProjectInput
	if err := c.BodyParser(&input); err != nil {
		var errs domain.ValidationErrors
		errs.Add("body", "Invalid request body")
		return writeAction(c, domain.Failed[domain.Project]("Validation failed", errs))
	}

	return writeAction(c, h.projectService.Create(c.UserContext(), input))
}

func (h *ProjectHandler) UpdateImageCaption(c *fiber.Ctx) error {
	var input domain.UpdateCaptionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.projectService.UpdateImageCaption(c.UserContext(), input); err != nil {
		if errors.Is(err, domain.ErrImageNotFound) {
			return middleware.NotFound("Image not found")
		}
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			return validationError(err)
		}
		return middleware.Internal("Failed to update image caption")
	}

	return c.JSON(fiber.Map{"success": true})
}
