// Package publish owns the static output directory: it writes per-post
// HTML files plus a sidecar index record for each, and rebuilds the
// site-wide artifacts (index, sitemap, robots.txt, RSS, standalone feed
// mirror) as complete overwrites on every cycle.
package publish

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sakmpar/newsforge/internal/logger"
	"github.com/sakmpar/newsforge/internal/models"
	"github.com/sakmpar/newsforge/internal/render"
)

const rssFeedLimit = 20

// artifacts are the site-wide files excluded from post scans.
var artifacts = map[string]struct{}{
	"index.html":    {},
	"sitemap.xml":   {},
	"robots.txt":    {},
	"rss.xml":       {},
	"facebook.html": {},
}

var (
	unsafeChars  = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	hyphenRuns   = regexp.MustCompile(`[-\s]+`)
	titleTagRe   = regexp.MustCompile(`<title>(.*?)</title>`)
	metaDescRe   = regexp.MustCompile(`<meta name="description" content="([^"]*)"`)
	unsplashSrc  = `src="https://images.unsplash.com`
	fetchCall    = `await fetch('/api/posts')`
	fetchInlined = `Promise.resolve({ json: () => Promise.resolve({ success: true, posts: %s }) })`
)

// Publisher writes posts and regenerates the site artifacts. The mutex
// scopes one republish at a time so two concurrent cycles cannot interleave
// their rewrites of index/sitemap/RSS.
type Publisher struct {
	outputDir       string
	siteName        string
	siteDescription string
	siteURL         string
	renderer        render.Renderer

	mu sync.Mutex
}

func NewPublisher(outputDir, siteName, siteDescription, siteURL string, renderer render.Renderer) (*Publisher, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Publisher{
		outputDir:       outputDir,
		siteName:        siteName,
		siteDescription: siteDescription,
		siteURL:         siteURL,
		renderer:        renderer,
	}, nil
}

// Filename derives the output filename for a post title on the given date.
// Same-day same-title posts collide and the last writer wins; that is the
// accepted policy, not a bug.
func Filename(title string, date time.Time) string {
	safe := strings.TrimSpace(unsafeChars.ReplaceAllString(title, ""))
	safe = hyphenRuns.ReplaceAllString(safe, "-")
	safe = strings.ToLower(safe)
	if runes := []rune(safe); len(runes) > 50 {
		safe = string(runes[:50])
	}
	return fmt.Sprintf("%s-%s.html", safe, date.Format("20060102"))
}

// SavePost writes the rendered HTML plus its sidecar record and returns the
// filename.
func (p *Publisher) SavePost(title, html string, record models.PostRecord) (string, error) {
	filename := Filename(title, time.Now())
	path := filepath.Join(p.outputDir, filename)

	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("failed to write post file: %w", err)
	}

	sidecar := strings.TrimSuffix(filename, ".html") + ".json"
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal post record: %w", err)
	}
	if err := os.WriteFile(filepath.Join(p.outputDir, sidecar), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write post record: %w", err)
	}

	return filename, nil
}

// postInfo is one scanned post with everything the artifact builders need.
type postInfo struct {
	Filename    string
	Title       string
	Description string
	ImageURL    string
	ModTime     time.Time
}

// Republish rebuilds every site-wide artifact from the output directory's
// current file list. Per-artifact failures are logged and do not abort the
// remaining rebuilds.
func (p *Publisher) Republish() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	log := logger.Get()

	posts, err := p.collectPosts()
	if err != nil {
		return fmt.Errorf("failed to scan output directory: %w", err)
	}

	for name, build := range map[string]func([]postInfo) error{
		"index":      p.writeIndex,
		"sitemap":    p.writeSitemap,
		"robots.txt": p.writeRobots,
		"rss":        p.writeRSS,
		"feed":       p.writeStandaloneFeed,
	} {
		if err := build(posts); err != nil {
			log.Error().Err(err).Str("artifact", name).Msg("Error rebuilding site artifact")
		}
	}

	log.Info().Int("posts", len(posts)).Msg("Republished site artifacts")
	return nil
}

// collectPosts scans the output directory for post files, newest first.
// Each post's metadata comes from its sidecar record when present, from
// scanning the raw HTML otherwise, and from the bare filename as a last
// resort.
func (p *Publisher) collectPosts() ([]postInfo, error) {
	entries, err := os.ReadDir(p.outputDir)
	if err != nil {
		return nil, err
	}

	var posts []postInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".html") {
			continue
		}
		if _, skip := artifacts[name]; skip {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		post := postInfo{
			Filename: name,
			Title:    name,
			ModTime:  info.ModTime(),
		}

		if record, ok := p.readSidecar(name); ok {
			post.Title = record.Title
			post.Description = record.Description
			post.ImageURL = record.ImageURL
		} else if scanned, ok := p.scanHTML(name); ok {
			post.Title = scanned.Title
			post.Description = scanned.Description
			post.ImageURL = scanned.ImageURL
		}

		posts = append(posts, post)
	}

	sort.Slice(posts, func(i, j int) bool { return posts[i].ModTime.After(posts[j].ModTime) })
	return posts, nil
}

func (p *Publisher) readSidecar(filename string) (models.PostRecord, bool) {
	sidecar := strings.TrimSuffix(filename, ".html") + ".json"
	data, err := os.ReadFile(filepath.Join(p.outputDir, sidecar))
	if err != nil {
		return models.PostRecord{}, false
	}
	var record models.PostRecord
	if err := json.Unmarshal(data, &record); err != nil || record.Title == "" {
		return models.PostRecord{}, false
	}
	return record, true
}

// scanHTML extracts title, description and image URL from previously
// rendered markup by direct string search. Best effort only.
func (p *Publisher) scanHTML(filename string) (postInfo, bool) {
	data, err := os.ReadFile(filepath.Join(p.outputDir, filename))
	if err != nil {
		return postInfo{}, false
	}
	content := string(data)

	info := postInfo{Filename: filename, Title: filename}
	if m := titleTagRe.FindStringSubmatch(content); m != nil {
		info.Title = strings.TrimSuffix(m[1], " - "+p.siteName)
	}
	if m := metaDescRe.FindStringSubmatch(content); m != nil {
		info.Description = m[1]
	}
	if start := strings.Index(content, unsplashSrc); start > -1 {
		if end := strings.Index(content[start+5:], `"`); end > -1 {
			info.ImageURL = content[start+5 : start+5+end]
		}
	}
	return info, true
}

type indexEntry struct {
	Title       string
	Filename    string
	Description string
	Modified    string
}

func (p *Publisher) writeIndex(posts []postInfo) error {
	entries := make([]indexEntry, len(posts))
	for i, post := range posts {
		entries[i] = indexEntry{
			Title:       post.Title,
			Filename:    post.Filename,
			Description: post.Description,
			Modified:    post.ModTime.Format("2006-01-02"),
		}
	}

	html, err := p.renderer.Render("index.html", map[string]any{
		"site_name":        p.siteName,
		"site_description": p.siteDescription,
		"site_url":         p.siteURL,
		"posts":            entries,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(p.outputDir, "index.html"), []byte(html), 0644)
}

func (p *Publisher) writeSitemap(posts []postInfo) error {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n")

	b.WriteString("  <url>\n")
	fmt.Fprintf(&b, "    <loc>%s/</loc>\n", p.siteURL)
	fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", time.Now().Format("2006-01-02"))
	b.WriteString("    <changefreq>daily</changefreq>\n")
	b.WriteString("    <priority>1.0</priority>\n")
	b.WriteString("  </url>\n")

	for _, post := range posts {
		b.WriteString("  <url>\n")
		fmt.Fprintf(&b, "    <loc>%s/%s</loc>\n", p.siteURL, post.Filename)
		fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", post.ModTime.Format("2006-01-02"))
		b.WriteString("    <changefreq>weekly</changefreq>\n")
		b.WriteString("    <priority>0.8</priority>\n")
		b.WriteString("  </url>\n")
	}
	b.WriteString("</urlset>")

	return os.WriteFile(filepath.Join(p.outputDir, "sitemap.xml"), []byte(b.String()), 0644)
}

func (p *Publisher) writeRobots([]postInfo) error {
	content := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", p.siteURL)
	return os.WriteFile(filepath.Join(p.outputDir, "robots.txt"), []byte(content), 0644)
}

func (p *Publisher) writeRSS(posts []postInfo) error {
	if len(posts) > rssFeedLimit {
		posts = posts[:rssFeedLimit]
	}

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<rss version=\"2.0\">\n  <channel>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", p.siteName)
	fmt.Fprintf(&b, "    <description>%s</description>\n", p.siteDescription)
	fmt.Fprintf(&b, "    <link>%s</link>\n", p.siteURL)
	b.WriteString("    <language>en-us</language>\n")
	fmt.Fprintf(&b, "    <lastBuildDate>%s</lastBuildDate>\n", time.Now().UTC().Format("Mon, 02 Jan 2006 15:04:05")+" GMT")

	for _, post := range posts {
		b.WriteString("    <item>\n")
		fmt.Fprintf(&b, "      <title><![CDATA[%s]]></title>\n", post.Title)
		fmt.Fprintf(&b, "      <description><![CDATA[%s]]></description>\n", post.Description)
		fmt.Fprintf(&b, "      <link>%s/%s</link>\n", p.siteURL, post.Filename)
		fmt.Fprintf(&b, "      <pubDate>%s</pubDate>\n", post.ModTime.UTC().Format("Mon, 02 Jan 2006 15:04:05")+" GMT")
		b.WriteString("    </item>\n")
	}
	b.WriteString("  </channel>\n</rss>")

	return os.WriteFile(filepath.Join(p.outputDir, "rss.xml"), []byte(b.String()), 0644)
}

// writeStandaloneFeed renders the social-feed template and inlines the post
// list in place of its live fetch call so the file works without a server.
func (p *Publisher) writeStandaloneFeed(posts []postInfo) error {
	type feedPost struct {
		Filename      string `json:"filename"`
		Title         string `json:"title"`
		ImageURL      string `json:"image_url,omitempty"`
		PublishedDate string `json:"published_date"`
		Modified      string `json:"modified"`
	}

	feedPosts := make([]feedPost, len(posts))
	for i, post := range posts {
		feedPosts[i] = feedPost{
			Filename:      post.Filename,
			Title:         post.Title,
			ImageURL:      post.ImageURL,
			PublishedDate: post.ModTime.Format(time.RFC3339),
			Modified:      post.ModTime.Format("2006-01-02 15:04"),
		}
	}

	payload, err := json.Marshal(feedPosts)
	if err != nil {
		return err
	}

	html, err := p.renderer.Render("feed.html", map[string]any{
		"site_name": p.siteName,
	})
	if err != nil {
		return err
	}

	standalone := strings.Replace(html, fetchCall, fmt.Sprintf(fetchInlined, string(payload)), 1)
	return os.WriteFile(filepath.Join(p.outputDir, "facebook.html"), []byte(standalone), 0644)
}
