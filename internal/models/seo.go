package models

// SeoMetadata is derived purely from the title and composed content; it is
// folded into the rendered page and never stored separately.
type SeoMetadata struct {
	SeoTitle        string `json:"seo_title"`
	MetaDescription string `json:"meta_description"`
	Keywords        string `json:"keywords"`
	SchemaMarkup    string `json:"schema_markup"`
	OGTags          string `json:"og_tags"`
	TwitterTags     string `json:"twitter_tags"`
	CanonicalURL    string `json:"canonical_url"`
	Robots          string `json:"robots"`
	ReadingTime     int    `json:"reading_time"`
}
