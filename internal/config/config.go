package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. Everything is read
// once at startup and treated as immutable afterwards.
type Config struct {
	// Server configuration
	Port            string
	Env             string
	ShutdownTimeout time.Duration
	HTTPTimeout     time.Duration

	// Database / cache
	DatabaseURL string
	RedisURL    string
	CachePrefix string
	CacheTTL    time.Duration

	// Security
	AdminAPIKey string
	JWTSecret   string

	// Site identity, rendered into every generated page
	SiteName        string
	SiteDescription string
	SiteURL         string
	AuthorName      string

	// Content generation
	OutputDir         string
	UnsplashAccessKey string
	FetchTimeout      time.Duration
	Languages         []string
	TrendsFeeds       map[string]string
	NewsFeeds         map[string][]string

	// Scheduler
	SchedulerInterval time.Duration
	SchedulerMinPosts int
	SchedulerMaxPosts int

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables, falling back to
// defaults that match the production deployment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		CachePrefix: getEnv("CACHE_PREFIX", "newsforge:"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", 720*time.Hour), // 30 days

		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
		JWTSecret:   getEnv("JWT_SECRET", "newsforge-dev-secret"),

		SiteName:        getEnv("SITE_NAME", "SAKMPAR News"),
		SiteDescription: getEnv("SITE_DESCRIPTION", "Latest trending topics and news updates"),
		SiteURL:         getEnv("SITE_URL", "https://www.sakmpar.co.in"),
		AuthorName:      getEnv("AUTHOR_NAME", "SAKMPAR Team"),

		OutputDir:         getEnv("OUTPUT_DIR", "./generated"),
		UnsplashAccessKey: getEnv("UNSPLASH_ACCESS_KEY", ""),
		FetchTimeout:      getEnvAsDuration("FETCH_TIMEOUT", 10*time.Second),
		Languages:         getEnvAsSlice("LANGUAGES", []string{"english", "hindi", "global"}),

		TrendsFeeds: map[string]string{
			"english": getEnv("TRENDS_FEED_ENGLISH", "https://trends.google.com/trends/trendingsearches/daily/rss?geo=US"),
			"hindi":   getEnv("TRENDS_FEED_HINDI", "https://trends.google.com/trends/trendingsearches/daily/rss?geo=IN"),
			"global":  getEnv("TRENDS_FEED_GLOBAL", "https://trends.google.com/trends/trendingsearches/daily/rss?geo="),
		},
		NewsFeeds: map[string][]string{
			"english": getEnvAsSlice("NEWS_FEEDS_ENGLISH", []string{
				"https://rss.cnn.com/rss/edition.rss",
				"https://feeds.bbci.co.uk/news/rss.xml",
				"https://rss.reuters.com/reuters/topNews",
			}),
			"hindi": getEnvAsSlice("NEWS_FEEDS_HINDI", []string{
				"https://feeds.abplive.com/abplive/hindi-news/home",
				"https://www.amarujala.com/rss/breaking-news.xml",
			}),
		},

		SchedulerInterval: getEnvAsDuration("SCHEDULER_INTERVAL", 30*time.Minute),
		SchedulerMinPosts: getEnvAsInt("SCHEDULER_MIN_POSTS", 15),
		SchedulerMaxPosts: getEnvAsInt("SCHEDULER_MAX_POSTS", 25),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.SchedulerMaxPosts < cfg.SchedulerMinPosts {
		cfg.SchedulerMaxPosts = cfg.SchedulerMinPosts
	}

	return cfg
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsSlice(name string, defaultVal []string) []string {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
