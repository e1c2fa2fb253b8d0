package render

import (
	"html/template"
	"strings"
	"testing"

	"github.com/sakmpar/newsforge/internal/models"
)

func TestRenderBlogPage(t *testing.T) {
	r, err := NewTemplateRenderer()
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	html, err := r.Render("blog.html", map[string]any{
		"title":            "Test Article",
		"seo_title":        "Test Article",
		"meta_description": "A description.",
		"keywords":         "test, article",
		"robots":           "index, follow",
		"og_tags":          template.HTML(`<meta property="og:type" content="article">`),
		"twitter_tags":     template.HTML(`<meta name="twitter:card" content="summary_large_image">`),
		"schema_markup":    template.JS(`{"@type": "Article"}`),
		"site_name":        "Test Site",
		"author":           "Test Team",
		"published_date":   "January 15, 2025",
		"reading_time":     3,
		"image_url":        "https://images.unsplash.com/photo-1",
		"image_alt":        "alt text",
		"image_author":     "Jane",
		"image_author_url": "https://unsplash.com/@jane",
		"sections": []models.ContentSection{
			{Heading: "Introduction", Body: "Intro body."},
			{Heading: "Conclusion", Body: "Concluding body."},
		},
		"source_link": "https://example.com/source",
		"language":    "english",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{
		"<title>Test Article - Test Site</title>",
		`<meta property="og:type" content="article">`,
		`<meta name="twitter:card"`,
		`src="https://images.unsplash.com/photo-1"`,
		"Intro body.",
		"Concluding body.",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
	if strings.Contains(html, "&lt;meta property=") {
		t.Error("trusted markup was escaped")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewTemplateRenderer()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Render("missing.html", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}
