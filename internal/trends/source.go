// Package trends fetches candidate topics for content generation from the
// Google Trends RSS feeds, with news feeds and a static list as fallbacks.
package trends

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"github.com/sakmpar/newsforge/internal/logger"
	"github.com/sakmpar/newsforge/internal/models"
)

// ordinalPrefix matches leading numbering like "1. " on trend titles.
var ordinalPrefix = regexp.MustCompile(`^\d+\.\s*`)

// Source fetches trending topics. All feed failures are handled locally:
// TrendingTopics never returns an error.
type Source struct {
	client      *resty.Client
	trendsFeeds map[string]string
	newsFeeds   map[string][]string
}

func NewSource(trendsFeeds map[string]string, newsFeeds map[string][]string, timeout time.Duration) *Source {
	return &Source{
		client:      resty.New().SetTimeout(timeout),
		trendsFeeds: trendsFeeds,
		newsFeeds:   newsFeeds,
	}
}

// TrendingTopics returns up to count topics for the language, preferring the
// trends feed, then the backup news feeds, then the static fallback list.
// The result is exactly min(count, available) topics.
func (s *Source) TrendingTopics(ctx context.Context, language string, count int) []models.Topic {
	log := logger.Get()

	feedURL, ok := s.trendsFeeds[language]
	if !ok {
		feedURL = s.trendsFeeds["english"]
	}

	var topics []models.Topic

	feed, err := s.fetchFeed(ctx, feedURL)
	if err != nil {
		log.Warn().Err(err).Str("url", feedURL).Msg("Error fetching trends feed")
	} else {
		for _, item := range feed.Items {
			topics = append(topics, models.Topic{
				Title:       ordinalPrefix.ReplaceAllString(item.Title, ""),
				Description: item.Description,
				Link:        item.Link,
				Published:   item.Published,
			})
		}
	}

	if len(topics) < count {
		log.Info().
			Int("have", len(topics)).
			Int("want", count).
			Msg("Not enough trends, supplementing from news feeds")
		topics = append(topics, s.newsTopics(ctx, language, count-len(topics))...)
	}

	if len(topics) < count {
		log.Info().Int("have", len(topics)).Msg("Still short, adding fallback topics")
		topics = append(topics, FallbackTopics(count-len(topics))...)
	}

	if len(topics) > count {
		topics = topics[:count]
	}
	return topics
}

// newsTopics pulls up to count topics from the backup news feeds for the
// language, splitting the deficit across the available feeds. Per-feed
// failures yield zero topics from that feed.
func (s *Source) newsTopics(ctx context.Context, language string, count int) []models.Topic {
	log := logger.Get()

	feeds, ok := s.newsFeeds[language]
	if !ok {
		feeds = s.newsFeeds["english"]
	}
	if len(feeds) == 0 || count <= 0 {
		return nil
	}

	perFeed := count/len(feeds) + 1
	var topics []models.Topic

	for _, feedURL := range feeds {
		feed, err := s.fetchFeed(ctx, feedURL)
		if err != nil {
			log.Warn().Err(err).Str("url", feedURL).Msg("Error fetching news feed")
			continue
		}
		for i, item := range feed.Items {
			if i >= perFeed || len(topics) >= count {
				break
			}
			topics = append(topics, models.Topic{
				Title:       item.Title,
				Description: item.Description,
				Link:        item.Link,
				Published:   item.Published,
			})
		}
		if len(topics) >= count {
			break
		}
	}

	return topics
}

func (s *Source) fetchFeed(ctx context.Context, url string) (*gofeed.Feed, error) {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode(), url)
	}

	feed, err := gofeed.NewParser().ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("feed parse failed: %w", err)
	}
	return feed, nil
}

var fallbackTitles = []string{
	"Latest Technology Trends in 2025",
	"Health and Wellness Tips for Modern Life",
	"Digital Marketing Strategies That Work",
	"Sustainable Living Practices",
	"Remote Work Best Practices",
	"Financial Planning and Investment Advice",
	"Top Travel Destinations This Year",
	"Easy Cooking Recipes and Food Tips",
	"Fitness and Exercise Routines",
	"Home Improvement DIY Projects",
	"Artificial Intelligence and Machine Learning",
	"Cybersecurity Best Practices",
	"Electric Vehicles and Green Technology",
	"Social Media Marketing Trends",
	"Mental Health and Mindfulness",
	"Small Business Growth Strategies",
	"Photography Tips and Techniques",
	"Online Education and E-learning",
	"Cryptocurrency and Blockchain News",
	"Environmental Conservation Methods",
}

// FallbackTopics samples count topics without replacement from the static
// list, capped at the list length.
func FallbackTopics(count int) []models.Topic {
	if count > len(fallbackTitles) {
		count = len(fallbackTitles)
	}
	if count <= 0 {
		return nil
	}

	topics := make([]models.Topic, 0, count)
	for _, idx := range rand.Perm(len(fallbackTitles))[:count] {
		title := fallbackTitles[idx]
		topics = append(topics, models.Topic{
			Title:       title,
			Description: fmt.Sprintf("Comprehensive guide and latest updates about %s", strings.ToLower(title)),
		})
	}
	return topics
}
