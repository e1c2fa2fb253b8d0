package models

import "time"

// ContentSection is one named block of article body text. Order is
// meaningful: the composer emits sections in reading order and nothing
// downstream reorders them.
type ContentSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// ImageRef points at the representative image for a post. It is always
// fully populated: a real search result or the placeholder, never absent.
type ImageRef struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	Author    string `json:"author"`
	AuthorURL string `json:"author_url"`
}

// GeneratedPost describes one published artifact; Filename joins the
// filesystem file with any database row created for it.
type GeneratedPost struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// PostRecord is the sidecar index entry written next to each generated HTML
// file so republish cycles don't have to re-parse rendered markup.
type PostRecord struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	Language    string    `json:"language,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}
