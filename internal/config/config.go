package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Store settings. Postgres when DATABASE_URL is set, otherwise a JSON
	// file store for local runs.
	DatabaseURL   string
	FileStorePath string

	// Collection settings
	FeedsConfigPath string
	RulesConfigPath string // optional sector rule table override
	URLPatternsPath string // optional URL blacklist/whitelist override
	LookbackHours   int
	RequestTimeout  time.Duration
	MaxItemsPerFeed int

	// Enrichment settings
	GeminiAPIKey      string
	MaxGeminiRequests int // per run, 0 = enrichment disabled

	// Notification settings
	TelegramToken   string
	TelegramChatID  string
	SlackWebhookURL string
	DashboardURL    string

	// Scheduling. Empty = run once and exit.
	CronSchedule string

	// App settings
	Debug         bool
	RetryAttempts int
	RetryDelay    time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		FileStorePath:     "articles.json",
		FeedsConfigPath:   "configs/feeds.yaml",
		LookbackHours:     24,
		RequestTimeout:    30 * time.Second,
		MaxItemsPerFeed:   30,
		MaxGeminiRequests: 20,
		RetryAttempts:     3,
		RetryDelay:        5 * time.Second,
	}

	// Load from environment
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")
	cfg.SlackWebhookURL = os.Getenv("SLACK_WEBHOOK_URL")
	cfg.DashboardURL = os.Getenv("DASHBOARD_URL")
	cfg.CronSchedule = os.Getenv("CRON_SCHEDULE")

	cfg.FileStorePath = getEnvOrDefault("FILE_STORE_PATH", cfg.FileStorePath)
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.RulesConfigPath = os.Getenv("RULES_CONFIG_PATH")
	cfg.URLPatternsPath = os.Getenv("URL_PATTERNS_PATH")

	cfg.LookbackHours = getEnvIntOrDefault("LOOKBACK_HOURS", cfg.LookbackHours)
	cfg.MaxItemsPerFeed = getEnvIntOrDefault("MAX_ITEMS_PER_FEED", cfg.MaxItemsPerFeed)
	cfg.MaxGeminiRequests = getEnvIntOrDefault("MAX_GEMINI_REQUESTS", cfg.MaxGeminiRequests)
	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.LookbackHours <= 0 {
		return fmt.Errorf("LOOKBACK_HOURS must be positive, got %d", c.LookbackHours)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.DatabaseURL == "" && c.FileStorePath == "" {
		return fmt.Errorf("either DATABASE_URL or FILE_STORE_PATH is required")
	}
	return nil
}
