package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.SchedulerMinPosts != 15 || cfg.SchedulerMaxPosts != 25 {
		t.Errorf("unexpected scheduler post bounds [%d,%d]", cfg.SchedulerMinPosts, cfg.SchedulerMaxPosts)
	}
	if cfg.SchedulerInterval != 30*time.Minute {
		t.Errorf("unexpected scheduler interval %v", cfg.SchedulerInterval)
	}
	if len(cfg.Languages) != 3 {
		t.Errorf("expected 3 default languages, got %v", cfg.Languages)
	}
	if cfg.TrendsFeeds["english"] == "" || cfg.TrendsFeeds["hindi"] == "" {
		t.Error("default trends feeds missing")
	}
	if len(cfg.NewsFeeds["english"]) == 0 {
		t.Error("default english news feeds missing")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SCHEDULER_INTERVAL", "1h")
	t.Setenv("SCHEDULER_MIN_POSTS", "3")
	t.Setenv("SCHEDULER_MAX_POSTS", "7")
	t.Setenv("LANGUAGES", "english, global")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("env port not applied: %q", cfg.Port)
	}
	if cfg.SchedulerInterval != time.Hour {
		t.Errorf("env interval not applied: %v", cfg.SchedulerInterval)
	}
	if cfg.SchedulerMinPosts != 3 || cfg.SchedulerMaxPosts != 7 {
		t.Errorf("env post bounds not applied: [%d,%d]", cfg.SchedulerMinPosts, cfg.SchedulerMaxPosts)
	}
	if len(cfg.Languages) != 2 || cfg.Languages[1] != "global" {
		t.Errorf("env languages not applied: %v", cfg.Languages)
	}
}

func TestLoadClampsMaxBelowMin(t *testing.T) {
	t.Setenv("SCHEDULER_MIN_POSTS", "10")
	t.Setenv("SCHEDULER_MAX_POSTS", "5")

	cfg := Load()
	if cfg.SchedulerMaxPosts != cfg.SchedulerMinPosts {
		t.Errorf("max %d not clamped to min %d", cfg.SchedulerMaxPosts, cfg.SchedulerMinPosts)
	}
}

func TestGetEnvAsIntInvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	if got := getEnvAsInt("SOME_INT", 42); got != 42 {
		t.Errorf("expected default 42, got %d", got)
	}
}

func TestGetEnvAsSliceTrimsParts(t *testing.T) {
	t.Setenv("SOME_LIST", " a , b ,, c ")
	got := getEnvAsSlice("SOME_LIST", nil)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("unexpected slice %v", got)
	}
}
