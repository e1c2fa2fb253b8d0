// Package generator orchestrates one content cycle: trending topics in,
// published posts out.
package generator

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/sakmpar/newsforge/internal/cache"
	"github.com/sakmpar/newsforge/internal/config"
	"github.com/sakmpar/newsforge/internal/images"
	"github.com/sakmpar/newsforge/internal/logger"
	"github.com/sakmpar/newsforge/internal/models"
	"github.com/sakmpar/newsforge/internal/publish"
	"github.com/sakmpar/newsforge/internal/render"
	"github.com/sakmpar/newsforge/internal/research"
	"github.com/sakmpar/newsforge/internal/seo"
	"github.com/sakmpar/newsforge/internal/trends"
	"github.com/sakmpar/newsforge/internal/utils"
)

// Store persists generated posts into the social database. Optional: a nil
// Store means static output only.
type Store interface {
	CreateAutoPost(ctx context.Context, input models.AutoPostInput) error
}

// Result is the envelope returned for a generation run.
type Result struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Posts   []models.GeneratedPost `json:"posts"`
}

type Generator struct {
	cfg       *config.Config
	topics    *trends.Source
	research  *research.Researcher
	images    *images.Resolver
	seo       *seo.Optimizer
	renderer  render.Renderer
	publisher *publish.Publisher
	store     Store
	cache     cache.TopicCache
}

func New(cfg *config.Config, topics *trends.Source, res *research.Researcher, img *images.Resolver, opt *seo.Optimizer, renderer render.Renderer, publisher *publish.Publisher, store Store, topicCache cache.TopicCache) *Generator {
	return &Generator{
		cfg:       cfg,
		topics:    topics,
		research:  res,
		images:    img,
		seo:       opt,
		renderer:  renderer,
		publisher: publisher,
		store:     store,
		cache:     topicCache,
	}
}

// Generate runs one cycle for the given language. A failed topic is logged
// and skipped; the cycle itself only fails when no topics are available at
// all.
func (g *Generator) Generate(ctx context.Context, language string, count int) Result {
	log := logger.Get()
	started := time.Now()

	log.Info().Str("language", language).Int("count", count).Msg("Starting content generation cycle")

	topics := g.topics.TrendingTopics(ctx, language, count)
	if len(topics) == 0 {
		return Result{Success: false, Message: "No trending topics found"}
	}

	var generated []models.GeneratedPost
	for _, topic := range topics {
		if g.seenBefore(ctx, topic.Title) {
			log.Debug().Str("topic", topic.Title).Msg("Skipping recently covered topic")
			continue
		}

		post, err := g.generatePost(ctx, topic, language)
		if err != nil {
			log.Error().Err(err).Str("topic", topic.Title).Msg("Error generating post")
			continue
		}
		generated = append(generated, post)
		g.markSeen(ctx, topic.Title)
	}

	if err := g.publisher.Republish(); err != nil {
		log.Error().Err(err).Msg("Error republishing site artifacts")
	}

	log.Info().
		Int("generated", len(generated)).
		Dur("elapsed", time.Since(started)).
		Msg("Content generation cycle finished")

	return Result{
		Success: true,
		Message: fmt.Sprintf("Successfully generated %d blog posts", len(generated)),
		Posts:   generated,
	}
}

func (g *Generator) generatePost(ctx context.Context, topic models.Topic, language string) (models.GeneratedPost, error) {
	sections := g.research.ResearchTopic(ctx, topic.Title, topic.Description)
	image := g.images.Image(ctx, topic.Title)
	meta := g.seo.Metadata(topic.Title, sections, image.URL)

	now := time.Now()
	filename := publish.Filename(topic.Title, now)
	meta.CanonicalURL = g.cfg.SiteURL + "/" + filename

	html, err := g.renderer.Render("blog.html", map[string]any{
		"title":            topic.Title,
		"seo_title":        meta.SeoTitle,
		"meta_description": meta.MetaDescription,
		"keywords":         meta.Keywords,
		"robots":           meta.Robots,
		"og_tags":          template.HTML(meta.OGTags),
		"twitter_tags":     template.HTML(meta.TwitterTags),
		"schema_markup":    template.JS(meta.SchemaMarkup),
		"canonical_url":    meta.CanonicalURL,
		"site_name":        g.cfg.SiteName,
		"site_url":         g.cfg.SiteURL,
		"author":           g.cfg.AuthorName,
		"published_date":   now.Format("January 2, 2006"),
		"reading_time":     meta.ReadingTime,
		"image_url":        image.URL,
		"image_alt":        image.Alt,
		"image_author":     image.Author,
		"image_author_url": image.AuthorURL,
		"sections":         sections,
		"source_link":      topic.Link,
		"language":         language,
	})
	if err != nil {
		return models.GeneratedPost{}, fmt.Errorf("failed to render post: %w", err)
	}

	savedName, err := g.publisher.SavePost(topic.Title, html, models.PostRecord{
		Title:       topic.Title,
		Description: meta.MetaDescription,
		ImageURL:    image.URL,
		Language:    language,
		PublishedAt: now,
	})
	if err != nil {
		return models.GeneratedPost{}, fmt.Errorf("failed to save post: %w", err)
	}

	g.persistPost(ctx, topic.Title, meta, image, html)

	return models.GeneratedPost{
		Title:    topic.Title,
		Filename: savedName,
		URL:      "/view-post/" + savedName,
	}, nil
}

// persistPost mirrors the post into the social database when a store is
// wired. Database failures never fail the static pipeline.
func (g *Generator) persistPost(ctx context.Context, title string, meta models.SeoMetadata, image models.ImageRef, html string) {
	if g.store == nil {
		return
	}
	err := g.store.CreateAutoPost(ctx, models.AutoPostInput{
		Title:       title,
		HTMLContent: html,
		Description: meta.MetaDescription,
		ImageURL:    image.URL,
		Category:    "Trending",
		Tags:        meta.Keywords,
	})
	if err != nil {
		logger.Get().Error().Err(err).Str("title", title).Msg("Error persisting post to database")
	}
}

func (g *Generator) seenBefore(ctx context.Context, title string) bool {
	if g.cache == nil {
		return false
	}
	seen, err := g.cache.Seen(ctx, utils.Hash(title))
	if err != nil {
		logger.Get().Warn().Err(err).Msg("Topic cache lookup failed")
		return false
	}
	return seen
}

func (g *Generator) markSeen(ctx context.Context, title string) {
	if g.cache == nil {
		return
	}
	if err := g.cache.Mark(ctx, utils.Hash(title), g.cfg.CacheTTL); err != nil {
		logger.Get().Warn().Err(err).Msg("Topic cache mark failed")
	}
}
