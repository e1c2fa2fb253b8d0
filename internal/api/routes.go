package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sakmpar/newsforge/internal/cache"
	"github.com/sakmpar/newsforge/internal/config"
	"github.com/sakmpar/newsforge/internal/database"
	"github.com/sakmpar/newsforge/internal/generator"
	"github.com/sakmpar/newsforge/internal/middleware"
	"github.com/sakmpar/newsforge/internal/publish"
	"github.com/sakmpar/newsforge/internal/scheduler"
)

// SetupRoutes configures all the routes for the application.
func SetupRoutes(app *fiber.App, cfg *config.Config, db *database.Database, gen *generator.Generator, sched *scheduler.Scheduler, pub *publish.Publisher, topicCache cache.TopicCache) {
	handlers := NewHandlers(cfg, db, gen, sched, pub, topicCache)

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	api := app.Group("/api/v1")

	api.Get("/health", handlers.HealthCheck)
	api.Get("/stats", handlers.SiteStats)

	auth := api.Group("/auth")
	{
		auth.Post("/register", handlers.Register)
		auth.Post("/login", handlers.Login)
	}
	api.Get("/me", middleware.UserAuth(cfg.JWTSecret), handlers.Me)

	posts := api.Group("/posts")
	{
		posts.Get("", middleware.OptionalUserAuth(cfg.JWTSecret), handlers.ListPosts)
		posts.Get("/:id", middleware.OptionalUserAuth(cfg.JWTSecret), handlers.GetPost)
		posts.Post("", middleware.UserAuth(cfg.JWTSecret), handlers.CreatePost)
		posts.Post("/:id/like", middleware.UserAuth(cfg.JWTSecret), handlers.ToggleLike)
		posts.Post("/:id/comment", middleware.UserAuth(cfg.JWTSecret), handlers.AddComment)
		posts.Get("/:id/comments", handlers.ListComments)
		posts.Post("/:id/share", middleware.UserAuth(cfg.JWTSecret), handlers.SharePost)
		posts.Get("/:id/stats", handlers.PostStats)
	}

	admin := api.Group("/admin", middleware.AdminOnly(cfg.AdminAPIKey))
	{
		admin.Post("/generate", handlers.GenerateContent)
		admin.Post("/republish", handlers.RepublishSite)
		admin.Post("/scheduler/start", handlers.StartScheduler)
		admin.Post("/scheduler/stop", handlers.StopScheduler)
		admin.Get("/scheduler/status", handlers.SchedulerStatus)
		admin.Get("/export", handlers.ExportSite)
		admin.Delete("/cache", handlers.ClearTopicCache)
	}

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
