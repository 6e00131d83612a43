// Package app wires configuration, store, collector and the post-run
// collaborators into a runnable application.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"vninfra/internal/classify"
	"vninfra/internal/collector"
	"vninfra/internal/config"
	"vninfra/internal/enrich"
	"vninfra/internal/fetch"
	"vninfra/internal/logger"
	"vninfra/internal/metrics"
	"vninfra/internal/model"
	"vninfra/internal/notify"
	"vninfra/internal/rss"
	"vninfra/internal/store"
	"vninfra/internal/urlfilter"
)

// Store is the full persistence surface the application uses: the
// collector's dedup/insert pair plus the enrichment write-back and the
// digest read.
type Store interface {
	collector.Store
	UpdateEnrichment(ctx context.Context, url string, e model.Enrichment) error
	ListSince(ctx context.Context, since time.Time) ([]model.Article, error)
	Close() error
}

// App holds everything one collection run needs.
type App struct {
	cfg       *config.Config
	store     Store
	collector *collector.Collector
}

// openStore picks PostgreSQL when a DATABASE_URL is configured, otherwise
// the JSON file store. A store that cannot be opened is fatal: collecting
// without persistence would re-ingest everything on the next run.
func openStore(cfg *config.Config) (Store, error) {
	if cfg.DatabaseURL != "" {
		s, err := store.New(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		logger.Info("Using PostgreSQL store")
		return s, nil
	}
	s, err := store.NewFileStore(cfg.FileStorePath)
	if err != nil {
		return nil, fmt.Errorf("open file store: %w", err)
	}
	logger.Info("Using file store", "path", cfg.FileStorePath)
	return s, nil
}

// New builds the application: store, feed sources, URL filter and
// classifier (with optional YAML overrides) and the collector.
func New(cfg *config.Config) (*App, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	sources, err := rss.LoadSources(cfg.FeedsConfigPath)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load feed sources: %w", err)
	}

	filter := urlfilter.New()
	if cfg.URLPatternsPath != "" {
		filter, err = urlfilter.Load(cfg.URLPatternsPath)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("load url patterns: %w", err)
		}
	}

	rules := classify.DefaultRules()
	if cfg.RulesConfigPath != "" {
		rules, err = classify.LoadRules(cfg.RulesConfigPath)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("load sector rules: %w", err)
		}
	}

	col, err := collector.New(collector.Config{
		Sources:    sources,
		Feeds:      rss.NewClient(cfg.RequestTimeout),
		Pages:      fetch.NewHTTPFetcher(cfg.RequestTimeout),
		Filter:     filter,
		Classifier: classify.New(rules),
		Store:      st,
		Metrics:    metrics.Global,
		MaxPerFeed: cfg.MaxItemsPerFeed,
	})
	if err != nil {
		st.Close()
		return nil, err
	}

	logger.Info("Application initialized", "sources", len(sources), "rules", len(rules))
	return &App{cfg: cfg, store: st, collector: col}, nil
}

func (a *App) Close() error {
	return a.store.Close()
}

// Run executes once when no cron schedule is configured, otherwise runs
// as a daemon on the schedule. The daemon form blocks forever.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.CronSchedule == "" {
		return a.runOnce(ctx)
	}

	c := cron.New()
	_, err := c.AddFunc(a.cfg.CronSchedule, func() {
		if err := a.runOnce(ctx); err != nil {
			logger.Error("Scheduled run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("bad cron schedule %q: %w", a.cfg.CronSchedule, err)
	}

	logger.Info("Running on schedule", "cron", a.cfg.CronSchedule)
	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	c.Run()
	return nil
}

func (a *App) runOnce(ctx context.Context) error {
	start := time.Now()
	lookback := time.Duration(a.cfg.LookbackHours) * time.Hour

	inserted, err := a.collector.Collect(ctx, lookback)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("collect: %w", err)
	}

	records := a.collector.NewRecords()
	logSectorBreakdown(records)
	logger.Info("Collection finished",
		"inserted", inserted, "duration", time.Since(start).Round(time.Millisecond))

	if a.cfg.GeminiAPIKey != "" && a.cfg.MaxGeminiRequests > 0 && len(records) > 0 {
		a.enrichRecords(ctx, records)
	}
	a.sendNotifications(ctx, records)

	metrics.Global.RecordRun(time.Since(start))
	return nil
}

func (a *App) enrichRecords(ctx context.Context, records []model.Article) {
	client, err := enrich.NewClient(ctx, a.cfg.GeminiAPIKey, a.cfg.MaxGeminiRequests)
	if err != nil {
		logger.Error("Gemini client unavailable", "error", err)
		return
	}
	defer client.Close()

	n := client.EnrichAll(ctx, records, a.store)
	logger.Info("Enrichment finished", "enriched", n, "total", len(records))
}

// sendNotifications builds the digest from the last week of stored
// records so subscribers see recent context, not just this run.
func (a *App) sendNotifications(ctx context.Context, newRecords []model.Article) {
	if a.cfg.TelegramToken == "" && a.cfg.SlackWebhookURL == "" {
		return
	}
	if len(newRecords) == 0 {
		logger.Info("No new articles, skipping notifications")
		return
	}

	weekly, err := a.store.ListSince(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		logger.Error("Weekly digest query failed", "error", err)
		weekly = newRecords
	}
	message := notify.Digest(newRecords, a.cfg.DashboardURL, time.Now())
	message += fmt.Sprintf("\nThis week: %d articles", len(weekly))

	if a.cfg.TelegramToken != "" && a.cfg.TelegramChatID != "" {
		t := notify.NewTelegram(a.cfg.TelegramToken, a.cfg.TelegramChatID)
		if err := t.Send(ctx, message); err != nil {
			logger.Error("Telegram notification failed", "error", err)
		} else {
			metrics.Global.IncrementNotificationsSent()
		}
	}
	if a.cfg.SlackWebhookURL != "" {
		s := notify.NewSlack(a.cfg.SlackWebhookURL)
		if err := s.Send(ctx, message); err != nil {
			logger.Error("Slack notification failed", "error", err)
		} else {
			metrics.Global.IncrementNotificationsSent()
		}
	}
}

func logSectorBreakdown(records []model.Article) {
	if len(records) == 0 {
		return
	}
	counts := map[string]int{}
	for _, r := range records {
		counts[r.Sector]++
	}
	for sector, n := range counts {
		logger.Info("Sector breakdown", "sector", sector, "count", n)
	}
}
