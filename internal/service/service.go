package service

import (
	"github.com/redis/go-redis/v9"

	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/metadata"
	"portfolio/internal/repository"
	"portfolio/internal/service/auth"
	"portfolio/internal/service/blog"
	"portfolio/internal/service/collection"
	"portfolio/internal/service/email"
	"portfolio/internal/service/photo"
	"portfolio/internal/service/project"
	"portfolio/internal/storage"
)

type Services struct {
	Auth       auth.Service
	Photo      photo.Service
	Collection collection.Service
	Project    project.Service
	Blog       blog.Service
	Email      email.Service
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, blobs storage.BlobStore, cfg *config.Config) *Services {
	gallery := cache.NewGallery(rdb, cfg.CacheTTL)
	emailService := email.NewService(cfg)

	return &Services{
		Auth: auth.NewService(rdb, cfg),
		Photo: photo.NewService(
			repos.Photo,
			repos.Link,
			blobs,
			metadata.NewExtractor(),
			emailService,
			gallery,
			cfg,
		),
		Collection: collection.NewService(repos.Collection, repos.Photo, gallery),
		Project:    project.NewService(repos.Project, repos.Skill, blobs),
		Blog:       blog.NewService(cfg.PostsDir),
		Email:      emailService,
	}
}
