// Package research enriches a topic with a short encyclopedic summary
// before composition. Enrichment is best-effort: any failure degrades to
// the basic templated article.
package research

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sakmpar/newsforge/internal/compose"
	"github.com/sakmpar/newsforge/internal/logger"
	"github.com/sakmpar/newsforge/internal/models"
)

const extractLimit = 1000

// Researcher looks topics up against the Wikipedia API.
type Researcher struct {
	client  *resty.Client
	baseURL string
}

func NewResearcher(timeout time.Duration) *Researcher {
	return &Researcher{
		client:  resty.New().SetTimeout(timeout),
		baseURL: "https://en.wikipedia.org/w/api.php",
	}
}

// NewResearcherWithBaseURL is used by tests to point at a fake API.
func NewResearcherWithBaseURL(baseURL string, timeout time.Duration) *Researcher {
	r := NewResearcher(timeout)
	r.baseURL = baseURL
	return r
}

// ResearchTopic returns the composed section sequence for the topic. On a
// successful lookup the full six-section structure embeds the extract; on
// any failure it falls back to the basic four-section template.
func (r *Researcher) ResearchTopic(ctx context.Context, title, description string) []models.ContentSection {
	extract, err := r.wikipediaExtract(ctx, title)
	if err != nil || extract == "" {
		if err != nil {
			logger.Get().Warn().Err(err).Str("topic", title).Msg("Topic research failed, using basic content")
		}
		return compose.BasicSections(title, description)
	}
	return compose.Sections(title, description, extract)
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// wikipediaExtract searches for the query, takes the first hit and fetches
// its plain-text intro, capped at extractLimit characters.
func (r *Researcher) wikipediaExtract(ctx context.Context, query string) (string, error) {
	var search searchResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action":   "query",
			"format":   "json",
			"list":     "search",
			"srsearch": query,
			"srlimit":  "3",
		}).
		SetResult(&search).
		Get(r.baseURL)
	if err != nil {
		return "", fmt.Errorf("wikipedia search failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("wikipedia search returned status %d", resp.StatusCode())
	}
	if len(search.Query.Search) == 0 {
		return "", nil
	}

	var extract extractResponse
	resp, err = r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action":          "query",
			"format":          "json",
			"titles":          search.Query.Search[0].Title,
			"prop":            "extracts",
			"exintro":         "true",
			"explaintext":     "true",
			"exsectionformat": "plain",
		}).
		SetResult(&extract).
		Get(r.baseURL)
	if err != nil {
		return "", fmt.Errorf("wikipedia extract failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("wikipedia extract returned status %d", resp.StatusCode())
	}

	for _, page := range extract.Query.Pages {
		if page.Extract != "" {
			if runes := []rune(page.Extract); len(runes) > extractLimit {
				return string(runes[:extractLimit]), nil
			}
			return page.Extract, nil
		}
	}
	return "", nil
}
