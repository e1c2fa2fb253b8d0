package images

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestImageFromSearchResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if got := r.URL.Query().Get("orientation"); got != "landscape" {
			t.Errorf("unexpected orientation %q", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "1" {
			t.Errorf("unexpected per_page %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[{"urls":{"regular":"https://images.unsplash.com/photo-abc"},"alt_description":"a city at night","user":{"name":"Jane Doe","links":{"html":"https://unsplash.com/@jane"}}}]}`)
	}))
	defer server.Close()

	resolver := NewResolverWithBaseURL("test-key", server.URL, 5*time.Second)
	image := resolver.Image(context.Background(), "city skyline")

	if image.URL != "https://images.unsplash.com/photo-abc" {
		t.Errorf("unexpected URL %q", image.URL)
	}
	if image.Alt != "a city at night" {
		t.Errorf("unexpected alt %q", image.Alt)
	}
	if image.Author != "Jane Doe" || image.AuthorURL != "https://unsplash.com/@jane" {
		t.Errorf("unexpected attribution %q %q", image.Author, image.AuthorURL)
	}
}

func TestImageAltFallsBackToQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[{"urls":{"regular":"https://images.unsplash.com/photo-x"},"alt_description":"","user":{"name":"A","links":{"html":"https://unsplash.com/@a"}}}]}`)
	}))
	defer server.Close()

	resolver := NewResolverWithBaseURL("k", server.URL, 5*time.Second)
	image := resolver.Image(context.Background(), "mountains")

	if image.Alt != "mountains" {
		t.Errorf("expected query as alt fallback, got %q", image.Alt)
	}
}

func TestImagePlaceholderOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resolver := NewResolverWithBaseURL("k", server.URL, 5*time.Second)
	image := resolver.Image(context.Background(), "rare topic & more")

	if !strings.HasPrefix(image.URL, "https://via.placeholder.com/800x600/") {
		t.Errorf("expected placeholder URL, got %q", image.URL)
	}
	if strings.Contains(image.URL, " ") || strings.Contains(image.URL, "&"+"more") {
		t.Errorf("query not escaped in placeholder URL: %q", image.URL)
	}
	if image.Author != "Placeholder" || image.AuthorURL != "#" {
		t.Errorf("unexpected placeholder attribution %q %q", image.Author, image.AuthorURL)
	}
}

func TestImagePlaceholderOnEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer server.Close()

	resolver := NewResolverWithBaseURL("k", server.URL, 5*time.Second)
	image := resolver.Image(context.Background(), "nothing")

	if !strings.HasPrefix(image.URL, "https://via.placeholder.com/") {
		t.Errorf("expected placeholder URL, got %q", image.URL)
	}
	if image.Alt != "nothing" {
		t.Errorf("expected query as alt, got %q", image.Alt)
	}
}
