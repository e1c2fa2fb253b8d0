// Package images resolves one representative image per topic from the
// Unsplash search API, with a placeholder fallback.
package images

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sakmpar/newsforge/internal/logger"
	"github.com/sakmpar/newsforge/internal/models"
)

const (
	imageWidth  = 800
	imageHeight = 600
)

// Resolver fetches topic images. Image never fails: a placeholder ImageRef
// is returned on any error so downstream renderers can assume presence.
type Resolver struct {
	client    *resty.Client
	accessKey string
	baseURL   string
}

func NewResolver(accessKey string, timeout time.Duration) *Resolver {
	return &Resolver{
		client:    resty.New().SetTimeout(timeout),
		accessKey: accessKey,
		baseURL:   "https://api.unsplash.com/search/photos",
	}
}

// NewResolverWithBaseURL is used by tests to point at a fake API.
func NewResolverWithBaseURL(accessKey, baseURL string, timeout time.Duration) *Resolver {
	r := NewResolver(accessKey, timeout)
	r.baseURL = baseURL
	return r
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
		AltDescription string `json:"alt_description"`
		User           struct {
			Name  string `json:"name"`
			Links struct {
				HTML string `json:"html"`
			} `json:"links"`
		} `json:"user"`
	} `json:"results"`
}

// Image returns the first landscape search result for the query, or the
// placeholder on any failure.
func (r *Resolver) Image(ctx context.Context, query string) models.ImageRef {
	var result searchResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Client-ID "+r.accessKey).
		SetQueryParams(map[string]string{
			"query":       query,
			"per_page":    "1",
			"orientation": "landscape",
		}).
		SetResult(&result).
		Get(r.baseURL)
	if err != nil {
		logger.Get().Warn().Err(err).Str("query", query).Msg("Error fetching Unsplash image")
		return placeholder(query)
	}
	if resp.StatusCode() != http.StatusOK || len(result.Results) == 0 {
		return placeholder(query)
	}

	photo := result.Results[0]
	alt := photo.AltDescription
	if alt == "" {
		alt = query
	}
	return models.ImageRef{
		URL:       photo.URLs.Regular,
		Alt:       alt,
		Author:    photo.User.Name,
		AuthorURL: photo.User.Links.HTML,
	}
}

func placeholder(query string) models.ImageRef {
	return models.ImageRef{
		URL:       fmt.Sprintf("https://via.placeholder.com/%dx%d/4A90E2/FFFFFF?text=%s", imageWidth, imageHeight, url.QueryEscape(query)),
		Alt:       query,
		Author:    "Placeholder",
		AuthorURL: "#",
	}
}
