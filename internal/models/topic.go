package models

// Topic is a candidate subject for an auto-generated article, produced by
// the trends source and consumed within a single generation cycle.
type Topic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
	Published   string `json:"published,omitempty"`
}
