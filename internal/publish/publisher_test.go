package publish

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sakmpar/newsforge/internal/models"
	"github.com/sakmpar/newsforge/internal/render"
)

func newTestPublisher(t *testing.T) *Publisher {
	t.Helper()
	renderer, err := render.NewTemplateRenderer()
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}
	pub, err := NewPublisher(t.TempDir(), "Test Site", "A test site", "https://test.example.com", renderer)
	if err != nil {
		t.Fatalf("failed to create publisher: %v", err)
	}
	return pub
}

func TestFilename(t *testing.T) {
	date := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		title string
		want  string
	}{
		{"Breaking: Major Policy Announcement!", "breaking-major-policy-announcement-20250115.html"},
		{"Simple Title", "simple-title-20250115.html"},
		{"  Spaces   Everywhere  ", "spaces-everywhere-20250115.html"},
		{"Symbols @#$% Removed", "symbols-removed-20250115.html"},
	}
	for _, tc := range cases {
		if got := Filename(tc.title, date); got != tc.want {
			t.Errorf("Filename(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestFilenameCharacterSet(t *testing.T) {
	got := Filename("Weird * Title / With ? Chars!", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	slug := strings.TrimSuffix(got, ".html")
	for _, r := range slug {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-' {
			t.Errorf("invalid character %q in filename %q", r, got)
		}
	}
}

func TestFilenameTruncatesSlug(t *testing.T) {
	got := Filename(strings.Repeat("verylongword ", 20), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	slug := strings.TrimSuffix(got, "-20250601.html")
	if len([]rune(slug)) > 50 {
		t.Errorf("slug longer than 50: %q (%d)", slug, len([]rune(slug)))
	}
}

func TestSavePostWritesHTMLAndSidecar(t *testing.T) {
	pub := newTestPublisher(t)

	filename, err := pub.SavePost("My First Post", "<html><body>hello</body></html>", models.PostRecord{
		Title:       "My First Post",
		Description: "A description.",
		ImageURL:    "https://images.unsplash.com/photo-1",
		Language:    "english",
		PublishedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(pub.outputDir, filename)); err != nil {
		t.Errorf("post file missing: %v", err)
	}
	sidecar := strings.TrimSuffix(filename, ".html") + ".json"
	if _, err := os.Stat(filepath.Join(pub.outputDir, sidecar)); err != nil {
		t.Errorf("sidecar file missing: %v", err)
	}
}

func TestRepublishWritesAllArtifacts(t *testing.T) {
	pub := newTestPublisher(t)

	_, err := pub.SavePost("Artifact Test Post", "<html><body>content</body></html>", models.PostRecord{
		Title:       "Artifact Test Post",
		Description: "Checks artifacts.",
		ImageURL:    "https://images.unsplash.com/photo-2",
		PublishedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	if err := pub.Republish(); err != nil {
		t.Fatalf("Republish failed: %v", err)
	}

	for _, name := range []string{"index.html", "sitemap.xml", "robots.txt", "rss.xml", "facebook.html"} {
		if _, err := os.Stat(filepath.Join(pub.outputDir, name)); err != nil {
			t.Errorf("artifact %s missing: %v", name, err)
		}
	}

	index, err := os.ReadFile(filepath.Join(pub.outputDir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), "Artifact Test Post") {
		t.Error("index does not list the post")
	}

	sitemap, _ := os.ReadFile(filepath.Join(pub.outputDir, "sitemap.xml"))
	if !strings.Contains(string(sitemap), "<priority>1.0</priority>") {
		t.Error("sitemap missing homepage entry")
	}
	if !strings.Contains(string(sitemap), "<priority>0.8</priority>") {
		t.Error("sitemap missing post entry")
	}

	robots, _ := os.ReadFile(filepath.Join(pub.outputDir, "robots.txt"))
	if !strings.Contains(string(robots), "Sitemap: https://test.example.com/sitemap.xml") {
		t.Error("robots.txt missing sitemap pointer")
	}

	rss, _ := os.ReadFile(filepath.Join(pub.outputDir, "rss.xml"))
	if !strings.Contains(string(rss), "<![CDATA[Artifact Test Post]]>") {
		t.Error("rss missing post item")
	}

	feed, _ := os.ReadFile(filepath.Join(pub.outputDir, "facebook.html"))
	if strings.Contains(string(feed), "await fetch('/api/posts')") {
		t.Error("standalone feed still contains live fetch call")
	}
	if !strings.Contains(string(feed), "Artifact Test Post") {
		t.Error("standalone feed missing inlined post")
	}
}

func TestRepublishSkipsArtifactsAsPosts(t *testing.T) {
	pub := newTestPublisher(t)

	if _, err := pub.SavePost("Only Post", "<html></html>", models.PostRecord{Title: "Only Post"}); err != nil {
		t.Fatal(err)
	}
	// Two passes: the second must not treat first-pass artifacts as posts.
	if err := pub.Republish(); err != nil {
		t.Fatal(err)
	}
	if err := pub.Republish(); err != nil {
		t.Fatal(err)
	}

	sitemap, _ := os.ReadFile(filepath.Join(pub.outputDir, "sitemap.xml"))
	if got := strings.Count(string(sitemap), "<url>"); got != 2 {
		t.Errorf("expected 2 sitemap entries (home + post), got %d", got)
	}
}

func TestRepublishScansLegacyHTMLWithoutSidecar(t *testing.T) {
	pub := newTestPublisher(t)

	legacy := `<html><head><title>Legacy Post - Test Site</title>` +
		`<meta name="description" content="Legacy description">` +
		`</head><body><img src="https://images.unsplash.com/photo-legacy"></body></html>`
	if err := os.WriteFile(filepath.Join(pub.outputDir, "legacy-post-20240101.html"), []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	if err := pub.Republish(); err != nil {
		t.Fatal(err)
	}

	index, _ := os.ReadFile(filepath.Join(pub.outputDir, "index.html"))
	if !strings.Contains(string(index), "Legacy Post") {
		t.Error("scanned title missing from index")
	}
	if strings.Contains(string(index), "Legacy Post - Test Site") {
		t.Error("site name suffix not stripped from scanned title")
	}
	if !strings.Contains(string(index), "Legacy description") {
		t.Error("scanned description missing from index")
	}

	feed, _ := os.ReadFile(filepath.Join(pub.outputDir, "facebook.html"))
	if !strings.Contains(string(feed), "https://images.unsplash.com/photo-legacy") {
		t.Error("scanned image URL missing from standalone feed")
	}
}

func TestRepublishConcurrent(t *testing.T) {
	pub := newTestPublisher(t)

	for _, title := range []string{"Post One", "Post Two", "Post Three"} {
		if _, err := pub.SavePost(title, "<html></html>", models.PostRecord{Title: title}); err != nil {
			t.Fatal(err)
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := pub.Republish(); err != nil {
				t.Errorf("concurrent republish failed: %v", err)
			}
		}()
	}
	wg.Wait()

	index, _ := os.ReadFile(filepath.Join(pub.outputDir, "index.html"))
	for _, title := range []string{"Post One", "Post Two", "Post Three"} {
		if !strings.Contains(string(index), title) {
			t.Errorf("index missing %q after concurrent republish", title)
		}
	}
}
