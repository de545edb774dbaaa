package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"portfolio/internal/domain"
	"portfolio/internal/middleware"
	"portfolio/internal/service/blog"
)

type BlogHandler struct {
	blogService blog.Service
}

func NewBlogHandler(blogService blog.Service) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) List(c *fiber.Ctx) error {
	posts, err := h.blogService.List()
	if err != nil {
		return middleware.Internal("Failed to load posts")
	}

	return c.JSON(fiber.Map{"posts": posts})
}

func (h *BlogHandler) Get(c *fiber.Ctx) error {
	post, err := h.blogService.Get(c.Params("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return middleware.NotFound("Post not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"post": post})
}
