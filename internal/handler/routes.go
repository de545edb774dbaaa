package handler

import (
	"github.com/gofiber/fiber/v2"

	"portfolio/internal/middleware"
	"portfolio/internal/service/auth"
)

func RegisterRoutes(app *fiber.App, h *Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	admin := middleware.AdminRequired(authService)
	action := middleware.AdminAction(authService)

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/logout", admin, h.Auth.Logout)
	authRoutes.Get("/me", admin, h.Auth.Me)

	api.Post("/upload", admin, h.Photo.Upload)

	gallery := api.Group("/gallery")
	gallery.Get("/photo", h.Photo.List)
	gallery.Post("/photo", action, h.Photo.Create)
	gallery.Post("/photo/batch", admin, h.Photo.UploadBatch)
	gallery.Put("/photo/:id", admin, h.Photo.Update)
	gallery.Delete("/photo/:id", admin, h.Photo.Delete)
	gallery.Delete("/photo/:id/collection/:collectionId", admin, h.Photo.RemoveFromCollection)

	gallery.Post("/collection", admin, h.Collection.Create)
	gallery.Get("/collection", admin, h.Collection.List)
	gallery.Get("/collection/:id", h.Collection.Get)
	gallery.Put("/collection/:id", admin, h.Collection.Update)
	gallery.Delete("/collection/:id", admin, h.Collection.Delete)
	gallery.Get("/collection/:id/photos", h.Gallery.GetCollectionPhotos)
	gallery.Get("/collections", h.Gallery.GetCollections)
	gallery.Get("/featured", h.Gallery.GetFeatured)

	projects := api.Group("/projects")
	projects.Get("/", h.Project.List)
	projects.Post("/", action, h.Project.Create)
	projects.Get("/:id", h.Project.Get)

	api.Post("/images/update-caption", admin, h.Project.UpdateImageCaption)

	blog := api.Group("/blog")
	blog.Get("/", h.Blog.List)
	blog.Get("/:slug", h.Blog.Get)
}
