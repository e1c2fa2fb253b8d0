package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sakmpar/newsforge/internal/config"
	"github.com/sakmpar/newsforge/internal/middleware"
	"github.com/sakmpar/newsforge/internal/generator"
	"github.com/sakmpar/newsforge/internal/images"
	"github.com/sakmpar/newsforge/internal/publish"
	"github.com/sakmpar/newsforge/internal/render"
	"github.com/sakmpar/newsforge/internal/research"
	"github.com/sakmpar/newsforge/internal/scheduler"
	"github.com/sakmpar/newsforge/internal/seo"
	"github.com/sakmpar/newsforge/internal/trends"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		AdminAPIKey: "admin-key",
		JWTSecret:   "test-secret",
		SiteName:    "Test Site",
		OutputDir:   t.TempDir(),
	}

	renderer, err := render.NewTemplateRenderer()
	if err != nil {
		t.Fatal(err)
	}
	publisher, err := publish.NewPublisher(cfg.OutputDir, cfg.SiteName, "desc", "https://t.example.com", renderer)
	if err != nil {
		t.Fatal(err)
	}

	gen := generator.New(
		cfg,
		trends.NewSource(nil, nil, time.Second),
		research.NewResearcherWithBaseURL("http://127.0.0.1:0", time.Second),
		images.NewResolverWithBaseURL("k", "http://127.0.0.1:0", time.Second),
		seo.NewOptimizer(cfg.SiteName),
		renderer,
		publisher,
		nil,
		nil,
	)
	sched := scheduler.New(gen, []string{"english"}, 1, 1)

	app := fiber.New()
	SetupRoutes(app, cfg, nil, gen, sched, publisher, nil)
	return app
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/health", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected health payload: %v", body)
	}
}

func TestAdminEndpointsRequireAPIKey(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/admin/scheduler/status", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/v1/admin/scheduler/status", nil)
	req.Header.Set("X-API-Key", "wrong")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("expected 403 with wrong key, got %d", resp.StatusCode)
	}
}

func TestSchedulerStatusIdle(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/v1/admin/scheduler/status", nil)
	req.Header.Set("X-API-Key", "admin-key")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["running"] != false {
		t.Errorf("expected idle scheduler, got %v", body)
	}
}

func TestStopSchedulerWhenIdleConflicts(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/admin/scheduler/stop", nil)
	req.Header.Set("X-API-Key", "admin-key")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("expected 409 for idle stop, got %d", resp.StatusCode)
	}
}

func TestRepublishEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/v1/admin/republish", nil)
	req.Header.Set("X-API-Key", "admin-key")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestListPostsWithoutDatabase(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/posts", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool  `json:"success"`
		Total   int64 `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Success || body.Total != 0 {
		t.Errorf("unexpected empty-list payload: %+v", body)
	}
}

// Without DATABASE_URL the social routes stay registered; they must degrade
// to 503, never panic into a 500.
func TestSocialEndpointsWithoutDatabase(t *testing.T) {
	app := newTestApp(t)
	postID := uuid.NewString()
	token, err := middleware.IssueToken("test-secret", uuid.New())
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		method string
		path   string
		authed bool
	}{
		{"GET", "/api/v1/posts/" + postID + "/comments", false},
		{"GET", "/api/v1/posts/" + postID + "/stats", false},
		{"GET", "/api/v1/posts/" + postID, false},
		{"GET", "/api/v1/me", true},
		{"POST", "/api/v1/posts/" + postID + "/like", true},
		{"POST", "/api/v1/posts/" + postID + "/comment", true},
		{"POST", "/api/v1/posts/" + postID + "/share", true},
		{"POST", "/api/v1/posts", true},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.authed {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s %s: %v", tc.method, tc.path, err)
		}
		switch tc.path {
		case "/api/v1/posts/" + postID:
			// GetPost reports the absent row, not a server failure.
			if resp.StatusCode != fiber.StatusNotFound {
				t.Errorf("%s %s: expected 404, got %d", tc.method, tc.path, resp.StatusCode)
			}
		default:
			if resp.StatusCode != fiber.StatusServiceUnavailable {
				t.Errorf("%s %s: expected 503, got %d", tc.method, tc.path, resp.StatusCode)
			}
		}
	}
}

func TestSiteStatsWithoutDatabase(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/stats", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["success"] != true {
		t.Errorf("unexpected stats payload: %v", body)
	}
}

func TestUnknownEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/nope", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}
