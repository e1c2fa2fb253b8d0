package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sakmpar/newsforge/internal/api"
	"github.com/sakmpar/newsforge/internal/cache"
	"github.com/sakmpar/newsforge/internal/config"
	"github.com/sakmpar/newsforge/internal/database"
	"github.com/sakmpar/newsforge/internal/generator"
	"github.com/sakmpar/newsforge/internal/images"
	"github.com/sakmpar/newsforge/internal/logger"
	"github.com/sakmpar/newsforge/internal/middleware"
	"github.com/sakmpar/newsforge/internal/publish"
	"github.com/sakmpar/newsforge/internal/render"
	"github.com/sakmpar/newsforge/internal/research"
	"github.com/sakmpar/newsforge/internal/scheduler"
	"github.com/sakmpar/newsforge/internal/seo"
	"github.com/sakmpar/newsforge/internal/trends"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: cfg.Env != "production",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting application...")

	// Social database is optional: without DATABASE_URL the service runs
	// the static pipeline only.
	var db *database.Database
	var store generator.Store
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		admin, err := db.EnsureAdmin("admin", "admin@sakmpar.co.in", cfg.AdminAPIKey)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure admin account")
		}
		db.Posts.SetAutoAuthor(admin.ID)
		store = db.Posts
	} else {
		log.Warn().Msg("DATABASE_URL not set, running without social features")
	}

	// Topic dedup cache: Redis when configured, in-memory otherwise.
	var topicCache cache.TopicCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, cfg.CachePrefix)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory topic cache")
			topicCache = cache.NewMemoryCache()
		} else {
			topicCache = redisCache
		}
	} else {
		topicCache = cache.NewMemoryCache()
	}
	defer func() {
		if err := topicCache.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing topic cache")
		}
	}()

	renderer, err := render.NewTemplateRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load templates")
	}

	publisher, err := publish.NewPublisher(cfg.OutputDir, cfg.SiteName, cfg.SiteDescription, cfg.SiteURL, renderer)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize publisher")
	}

	gen := generator.New(
		cfg,
		trends.NewSource(cfg.TrendsFeeds, cfg.NewsFeeds, cfg.FetchTimeout),
		research.NewResearcher(cfg.FetchTimeout),
		images.NewResolver(cfg.UnsplashAccessKey, cfg.FetchTimeout),
		seo.NewOptimizer(cfg.SiteName),
		renderer,
		publisher,
		store,
		topicCache,
	)

	sched := scheduler.New(gen, cfg.Languages, cfg.SchedulerMinPosts, cfg.SchedulerMaxPosts)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	// Generated site is served straight from the output directory.
	app.Static("/", cfg.OutputDir)
	app.Static("/view-post", cfg.OutputDir)

	api.SetupRoutes(app, cfg, db, gen, sched, publisher, topicCache)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if sched.Running() {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
