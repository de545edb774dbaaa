package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"portfolio/internal/config"
	"portfolio/internal/handler"
	"portfolio/internal/middleware"
	"portfolio/internal/repository"
	"portfolio/internal/service"
	"portfolio/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	setupLogger(cfg)

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		slog.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := config.NewRedisClient(cfg)
	if err != nil {
		slog.Warn("Redis unavailable, gallery cache and session revocation disabled", slog.Any("error", err))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		slog.Error("Failed to connect to blob storage", slog.Any("error", err))
		os.Exit(1)
	}
	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = storage.EnsureBucket(bootCtx, minioClient, cfg.MinIOBucket)
	cancel()
	if err != nil {
		slog.Error("Failed to prepare blob bucket", slog.Any("error", err))
		os.Exit(1)
	}
	blobs := storage.NewMinioStore(minioClient, cfg)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, blobs, cfg)
	handlers := handler.NewHandlers(services)
	handlers.Auth.WithSecureCookie(cfg.IsProduction())

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    cfg.RequestBodyLimit(),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	handler.RegisterRoutes(app, handlers, services.Auth)

	slog.Info("Server starting", slog.String("port", cfg.Port), slog.String("env", cfg.Environment))
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("Failed to start server", slog.Any("error", err))
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) {
	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(h))
}
