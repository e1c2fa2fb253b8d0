package api

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sakmpar/newsforge/internal/cache"
	"github.com/sakmpar/newsforge/internal/config"
	"github.com/sakmpar/newsforge/internal/database"
	"github.com/sakmpar/newsforge/internal/generator"
	"github.com/sakmpar/newsforge/internal/logger"
	"github.com/sakmpar/newsforge/internal/middleware"
	"github.com/sakmpar/newsforge/internal/publish"
	"github.com/sakmpar/newsforge/internal/scheduler"
)

type Handlers struct {
	config     *config.Config
	db         *database.Database
	generator  *generator.Generator
	scheduler  *scheduler.Scheduler
	publisher  *publish.Publisher
	topicCache cache.TopicCache
	validator  *middleware.Validator
}

func NewHandlers(cfg *config.Config, db *database.Database, gen *generator.Generator, sched *scheduler.Scheduler, pub *publish.Publisher, topicCache cache.TopicCache) *Handlers {
	return &Handlers{
		config:     cfg,
		db:         db,
		generator:  gen,
		scheduler:  sched,
		publisher:  pub,
		topicCache: topicCache,
		validator:  middleware.NewValidator(),
	}
}

// HealthCheck handles GET /api/v1/health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// GenerateContent handles POST /api/v1/admin/generate. The run is
// synchronous so the caller gets the produced post list back.
func (h *Handlers) GenerateContent(c *fiber.Ctx) error {
	var req struct {
		Language string `json:"language"`
		Count    int    `json:"count"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body: " + err.Error(),
		})
	}

	if req.Language == "" {
		req.Language = "english"
	}
	if req.Count < 1 || req.Count > 50 {
		req.Count = 5
	}

	logger.Get().Info().
		Str("ip", c.IP()).
		Str("language", req.Language).
		Int("count", req.Count).
		Msg("Received content generation request")

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Minute)
	defer cancel()

	result := h.generator.Generate(ctx, req.Language, req.Count)
	status := fiber.StatusOK
	if !result.Success {
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(result)
}

// RepublishSite handles POST /api/v1/admin/republish
func (h *Handlers) RepublishSite(c *fiber.Ctx) error {
	if err := h.publisher.Republish(); err != nil {
		logger.Get().Error().Err(err).Msg("Error republishing site")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to republish site",
		})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Site artifacts rebuilt"})
}

// StartScheduler handles POST /api/v1/admin/scheduler/start
func (h *Handlers) StartScheduler(c *fiber.Ctx) error {
	var req struct {
		IntervalMinutes int `json:"interval_minutes"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body: " + err.Error(),
		})
	}

	interval := h.config.SchedulerInterval
	if req.IntervalMinutes > 0 {
		interval = time.Duration(req.IntervalMinutes) * time.Minute
	}

	if !h.scheduler.Start(interval) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Scheduler is already running",
		})
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Scheduler started",
		"interval": interval.String(),
	})
}

// StopScheduler handles POST /api/v1/admin/scheduler/stop
func (h *Handlers) StopScheduler(c *fiber.Ctx) error {
	if !h.scheduler.Stop() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Scheduler is not running",
		})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Scheduler stopped"})
}

// SchedulerStatus handles GET /api/v1/admin/scheduler/status
func (h *Handlers) SchedulerStatus(c *fiber.Ctx) error {
	status := fiber.Map{"running": h.scheduler.Running()}
	if h.scheduler.Running() {
		status["interval"] = h.scheduler.Interval().String()
	}
	return c.JSON(status)
}

// ExportSite handles GET /api/v1/admin/export: the whole output directory
// as a ZIP archive.
func (h *Handlers) ExportSite(c *fiber.Ctx) error {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	root := h.config.OutputDir
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if err == nil {
		err = zw.Close()
	}
	if err != nil {
		logger.Get().Error().Err(err).Msg("Error exporting site archive")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export site",
		})
	}

	c.Set("Content-Type", "application/zip")
	c.Set("Content-Disposition", `attachment; filename="site-export.zip"`)
	return c.Send(buf.Bytes())
}

// ClearTopicCache handles DELETE /api/v1/admin/cache
func (h *Handlers) ClearTopicCache(c *fiber.Ctx) error {
	if h.topicCache == nil {
		return c.JSON(fiber.Map{"success": true, "message": "No topic cache configured"})
	}
	if err := h.topicCache.Clear(c.Context()); err != nil {
		logger.Get().Error().Err(err).Msg("Error clearing topic cache")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear topic cache",
		})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Topic cache cleared"})
}
