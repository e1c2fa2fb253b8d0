package seo

import (
	"strings"
	"testing"
	"time"

	"github.com/sakmpar/newsforge/internal/models"
)

func TestOptimizeTitleShortPassesThrough(t *testing.T) {
	title := "Short Title"
	if got := OptimizeTitle(title); got != title {
		t.Errorf("expected %q, got %q", title, got)
	}
}

func TestOptimizeTitleBoundedAt60(t *testing.T) {
	title := strings.Repeat("word ", 30)
	got := OptimizeTitle(title)
	if len([]rune(got)) > 60 {
		t.Errorf("title longer than 60 characters: %q (%d)", got, len([]rune(got)))
	}
}

func TestOptimizeTitleBreaksAtWordBoundary(t *testing.T) {
	// The last space before position 60 falls past the 80% mark, so the
	// cut happens there instead of mid-word.
	title := "This is a fairly long article title that keeps going onwards forever"
	got := OptimizeTitle(title)
	if strings.HasSuffix(got, " ") {
		t.Errorf("trailing space in %q", got)
	}
	if len([]rune(got)) > 60 {
		t.Errorf("title longer than 60: %q", got)
	}
	last := got[strings.LastIndex(got, " ")+1:]
	if !strings.Contains(title, last+" ") && !strings.HasSuffix(title, last) {
		t.Errorf("title appears cut mid-word: %q", got)
	}
}

func TestOptimizeTitleCollapsesWhitespace(t *testing.T) {
	if got := OptimizeTitle("Too   many    spaces"); got != "Too many spaces" {
		t.Errorf("expected collapsed whitespace, got %q", got)
	}
}

func TestMetaDescriptionLengthAndTerminator(t *testing.T) {
	content := strings.Repeat("This is a sentence about the topic. ", 20)
	got := MetaDescription(content)

	if len(got) > 160 {
		t.Errorf("description longer than 160: %d", len(got))
	}
	if !strings.HasSuffix(got, ".") && !strings.HasSuffix(got, "...") {
		t.Errorf("description does not end with terminator: %q", got)
	}
}

func TestMetaDescriptionStripsHTML(t *testing.T) {
	got := MetaDescription("<p>Plain sentence here. </p><b>Another one. </b>")
	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Errorf("HTML leaked into description: %q", got)
	}
}

func TestKeywordsExcludesStopWordsAndShortTokens(t *testing.T) {
	got := Keywords("The Future of AI", "the and or AI technology technology computing")

	for _, kw := range strings.Split(got, ", ") {
		if _, stop := stopWords[kw]; stop {
			t.Errorf("stop word %q in keywords %q", kw, got)
		}
		if len([]rune(kw)) <= 2 {
			t.Errorf("short token %q in keywords %q", kw, got)
		}
	}
	if !strings.Contains(got, "technology") {
		t.Errorf("expected 'technology' in keywords, got %q", got)
	}
}

func TestKeywordsOrderedByFrequency(t *testing.T) {
	got := Keywords("", "zebra apple apple apple banana banana")
	parts := strings.Split(got, ", ")
	if len(parts) != 3 || parts[0] != "apple" || parts[1] != "banana" || parts[2] != "zebra" {
		t.Errorf("unexpected keyword order: %q", got)
	}
}

func TestKeywordsCapAtTen(t *testing.T) {
	content := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima"
	got := Keywords("", content)
	if n := len(strings.Split(got, ", ")); n != 10 {
		t.Errorf("expected 10 keywords, got %d: %q", n, got)
	}
}

func TestReadingTime(t *testing.T) {
	cases := []struct {
		words int
		want  int
	}{
		{0, 1},
		{50, 1},
		{200, 1},
		{500, 2}, // half rounds to even
		{600, 3},
		{700, 4},
		{1000, 5},
	}
	for _, tc := range cases {
		content := strings.TrimSpace(strings.Repeat("word ", tc.words))
		if got := ReadingTime(content); got != tc.want {
			t.Errorf("ReadingTime(%d words) = %d, want %d", tc.words, got, tc.want)
		}
	}
}

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`Tom & Jerry's <"quoted">`)
	want := "Tom &amp; Jerry&#x27;s &lt;&quot;quoted&quot;&gt;"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMetadataFullBundle(t *testing.T) {
	opt := NewOptimizer("Example Site")
	opt.now = func() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC) }

	sections := []models.ContentSection{
		{Heading: "Introduction", Body: "Artificial intelligence transforms industries. It raises new questions. Adoption accelerates every year."},
		{Heading: "Conclusion", Body: "The outlook for artificial intelligence remains strong."},
	}

	meta := opt.Metadata("Artificial Intelligence Today", sections, "https://images.unsplash.com/photo-1")

	if meta.SeoTitle == "" || len([]rune(meta.SeoTitle)) > 60 {
		t.Errorf("bad seo title: %q", meta.SeoTitle)
	}
	if meta.MetaDescription == "" || len(meta.MetaDescription) > 160 {
		t.Errorf("bad meta description: %q", meta.MetaDescription)
	}
	if meta.Robots != "index, follow" {
		t.Errorf("unexpected robots directive: %q", meta.Robots)
	}
	if meta.ReadingTime < 1 {
		t.Errorf("reading time below 1: %d", meta.ReadingTime)
	}
	if !strings.Contains(meta.SchemaMarkup, `"@type": "Article"`) {
		t.Errorf("schema missing Article type: %s", meta.SchemaMarkup)
	}
	if !strings.Contains(meta.SchemaMarkup, "2025-01-15T12:00:00Z") {
		t.Error("schema missing pinned publish date")
	}
	if !strings.Contains(meta.OGTags, `og:image" content="https://images.unsplash.com/photo-1"`) {
		t.Errorf("og tags missing image: %s", meta.OGTags)
	}
	if !strings.Contains(meta.TwitterTags, "summary_large_image") {
		t.Errorf("twitter tags missing card type: %s", meta.TwitterTags)
	}
}

func TestMetadataEmptyContentFallsBack(t *testing.T) {
	opt := NewOptimizer("Example Site")
	meta := opt.Metadata("Some Topic", nil, "")

	if meta.MetaDescription != "Discover insights and information on this important topic." {
		t.Errorf("unexpected default description: %q", meta.MetaDescription)
	}
	if meta.ReadingTime != 1 {
		t.Errorf("expected default reading time 1, got %d", meta.ReadingTime)
	}
}
