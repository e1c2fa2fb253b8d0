// Package seo derives search and social metadata from a composed article.
// Everything here is pure string work over the title and section bodies.
package seo

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/sakmpar/newsforge/internal/models"
)

const (
	maxTitleLength       = 60
	maxDescriptionLength = 160
	wordsPerMinute       = 200
	imageWidth           = 800
	imageHeight          = 600
)

var (
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)
	nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`the a an and or but in on at to for of with by
		is are was were be been being have has had do does did
		will would could should may might can this that these those
		i you he she it we they me him her us them my your
		his its our their into from up down out off over
		under again further then once more also very just here there
		when where why how all any both each few most other
		some such only own same so than too`) {
		stopWords[w] = struct{}{}
	}
}

// Optimizer synthesizes SeoMetadata. Metadata never fails: degenerate input
// yields the fixed default bundle.
type Optimizer struct {
	siteName      string
	twitterHandle string
	now           func() time.Time
}

func NewOptimizer(siteName string) *Optimizer {
	return &Optimizer{
		siteName:      siteName,
		twitterHandle: "@sakmpar",
		now:           time.Now,
	}
}

// Metadata derives the full bundle from title, composed sections and an
// optional image URL.
func (o *Optimizer) Metadata(title string, sections []models.ContentSection, imageURL string) models.SeoMetadata {
	content := joinSections(sections)
	if strings.TrimSpace(content) == "" {
		return o.DefaultMetadata(title)
	}

	seoTitle := OptimizeTitle(title)
	description := MetaDescription(content)

	return models.SeoMetadata{
		SeoTitle:        seoTitle,
		MetaDescription: description,
		Keywords:        Keywords(title, content),
		SchemaMarkup:    o.schemaMarkup(seoTitle, description, imageURL),
		OGTags:          o.openGraphTags(seoTitle, description, imageURL),
		TwitterTags:     o.twitterTags(seoTitle, description, imageURL),
		CanonicalURL:    "",
		Robots:          "index, follow",
		ReadingTime:     ReadingTime(content),
	}
}

// DefaultMetadata is the fixed bundle used when derivation has nothing to
// work with.
func (o *Optimizer) DefaultMetadata(title string) models.SeoMetadata {
	return models.SeoMetadata{
		SeoTitle:        truncateRunes(title, maxTitleLength),
		MetaDescription: "Discover insights and information on this important topic.",
		Keywords:        strings.ToLower(title),
		SchemaMarkup:    "{}",
		Robots:          "index, follow",
		ReadingTime:     1,
	}
}

// OptimizeTitle collapses whitespace and bounds the title at 60 characters,
// preferring a word boundary when one falls past 80% of the limit.
func OptimizeTitle(title string) string {
	clean := collapseWhitespace(title)
	runes := []rune(clean)
	if len(runes) <= maxTitleLength {
		return clean
	}

	truncated := string(runes[:maxTitleLength])
	if lastSpace := strings.LastIndex(truncated, " "); float64(lastSpace) > maxTitleLength*0.8 {
		return truncated[:lastSpace]
	}
	return truncated
}

// MetaDescription accumulates content sentences greedily up to 160
// characters. The result always ends with "." or "...".
func MetaDescription(content string) string {
	clean := collapseWhitespace(htmlTagRe.ReplaceAllString(content, ""))

	var description string
	for _, sentence := range strings.Split(clean, ". ") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		test := description + sentence + ". "
		if len(test) > maxDescriptionLength {
			break
		}
		description = test
	}

	if len(description) > maxDescriptionLength {
		description = description[:maxDescriptionLength-3] + "..."
	}

	description = strings.TrimSpace(description)
	if !strings.HasSuffix(description, ".") && !strings.HasSuffix(description, "...") {
		description += "."
	}
	return description
}

// Keywords ranks non-stop-word tokens of the title and content by frequency
// and returns the top 10, comma-joined. Ties keep first-encountered order.
func Keywords(title, content string) string {
	full := strings.ToLower(title + " " + content)
	clean := collapseWhitespace(nonWordRe.ReplaceAllString(full, " "))

	type entry struct {
		word  string
		count int
	}
	var order []entry
	index := map[string]int{}

	for _, word := range strings.Fields(clean) {
		if len([]rune(word)) <= 2 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if i, ok := index[word]; ok {
			order[i].count++
		} else {
			index[word] = len(order)
			order = append(order, entry{word: word, count: 1})
		}
	}

	sort.SliceStable(order, func(i, j int) bool { return order[i].count > order[j].count })
	if len(order) > 10 {
		order = order[:10]
	}

	words := make([]string, len(order))
	for i, e := range order {
		words[i] = e.word
	}
	return strings.Join(words, ", ")
}

// ReadingTime estimates minutes at 200 words per minute, floored at 1.
// Rounding is half-to-even, so 500 words is 2 minutes, not 3.
func ReadingTime(content string) int {
	words := len(strings.Fields(htmlTagRe.ReplaceAllString(content, "")))
	minutes := int(math.RoundToEven(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

func (o *Optimizer) schemaMarkup(title, description, imageURL string) string {
	now := o.now().Format(time.RFC3339)
	schema := map[string]any{
		"@context":      "https://schema.org",
		"@type":         "Article",
		"headline":      title,
		"description":   description,
		"datePublished": now,
		"dateModified":  now,
		"author": map[string]any{
			"@type": "Organization",
			"name":  o.siteName,
		},
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  o.siteName,
		},
	}
	if imageURL != "" {
		schema["image"] = map[string]any{
			"@type":  "ImageObject",
			"url":    imageURL,
			"width":  imageWidth,
			"height": imageHeight,
		}
	}

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}

func (o *Optimizer) openGraphTags(title, description, imageURL string) string {
	tags := []string{
		`<meta property="og:type" content="article">`,
		fmt.Sprintf(`<meta property="og:title" content="%s">`, EscapeHTML(title)),
		fmt.Sprintf(`<meta property="og:description" content="%s">`, EscapeHTML(description)),
		fmt.Sprintf(`<meta property="og:site_name" content="%s">`, EscapeHTML(o.siteName)),
		fmt.Sprintf(`<meta property="article:published_time" content="%s">`, o.now().Format(time.RFC3339)),
		fmt.Sprintf(`<meta property="article:author" content="%s">`, EscapeHTML(o.siteName)),
	}
	if imageURL != "" {
		tags = append(tags,
			fmt.Sprintf(`<meta property="og:image" content="%s">`, imageURL),
			fmt.Sprintf(`<meta property="og:image:width" content="%d">`, imageWidth),
			fmt.Sprintf(`<meta property="og:image:height" content="%d">`, imageHeight),
			fmt.Sprintf(`<meta property="og:image:alt" content="%s">`, EscapeHTML(title)),
		)
	}
	return strings.Join(tags, "\n    ")
}

func (o *Optimizer) twitterTags(title, description, imageURL string) string {
	tags := []string{
		`<meta name="twitter:card" content="summary_large_image">`,
		fmt.Sprintf(`<meta name="twitter:title" content="%s">`, EscapeHTML(title)),
		fmt.Sprintf(`<meta name="twitter:description" content="%s">`, EscapeHTML(description)),
		fmt.Sprintf(`<meta name="twitter:creator" content="%s">`, o.twitterHandle),
	}
	if imageURL != "" {
		tags = append(tags, fmt.Sprintf(`<meta name="twitter:image" content="%s">`, imageURL))
	}
	return strings.Join(tags, "\n    ")
}

// EscapeHTML escapes the five characters significant in HTML attribute
// contexts.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

func joinSections(sections []models.ContentSection) string {
	bodies := make([]string, len(sections))
	for i, s := range sections {
		bodies[i] = s.Body
	}
	return strings.Join(bodies, " ")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
