// Package collector runs the ingestion pipeline: feed discovery, URL
// filtering, deduplication, page extraction, sector classification and
// persistence. One Collect call is one run.
package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"vninfra/internal/classify"
	"vninfra/internal/extract"
	"vninfra/internal/fetch"
	"vninfra/internal/logger"
	"vninfra/internal/metrics"
	"vninfra/internal/model"
	"vninfra/internal/rss"
	"vninfra/internal/store"
	"vninfra/internal/urlfilter"
)

// Store is the persistence surface the collector needs. Both the
// PostgreSQL store and the file store satisfy it.
type Store interface {
	Exists(ctx context.Context, url string) (bool, error)
	Insert(ctx context.Context, a *model.Article) (int64, error)
}

// FeedFetcher retrieves and parses one RSS/Atom feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*gofeed.Feed, error)
}

// Config wires the collector's collaborators. Feeds, Pages, Filter,
// Classifier and Store are required; the rest default in New.
type Config struct {
	Sources    []rss.Source
	Feeds      FeedFetcher
	Pages      fetch.Fetcher
	Filter     *urlfilter.Filter
	Classifier *classify.Classifier
	Store      Store
	Metrics    *metrics.Metrics
	MaxPerFeed int
}

// Collector drives one collection run across all configured sources.
// Sources are processed sequentially; a failing source never stops the
// run, and per-URL failures never stop a source.
type Collector struct {
	cfg        Config
	newRecords []model.Article
}

func New(cfg Config) (*Collector, error) {
	if len(cfg.Sources) == 0 {
		return nil, errors.New("collector: no sources configured")
	}
	if cfg.Feeds == nil || cfg.Pages == nil || cfg.Store == nil {
		return nil, errors.New("collector: feeds, pages and store are required")
	}
	if cfg.Filter == nil {
		cfg.Filter = urlfilter.New()
	}
	if cfg.Classifier == nil {
		cfg.Classifier = classify.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Global
	}
	if cfg.MaxPerFeed <= 0 {
		cfg.MaxPerFeed = 30
	}
	return &Collector{cfg: cfg}, nil
}

// Collect runs the pipeline over every source and returns the number of
// articles inserted. The lookback window drops feed items older than
// now-lookback; items without a publication date pass through.
func (c *Collector) Collect(ctx context.Context, lookback time.Duration) (int, error) {
	c.newRecords = c.newRecords[:0]
	cutoff := time.Now().Add(-lookback)
	inserted := 0

	for _, src := range c.cfg.Sources {
		n, err := c.collectSource(ctx, src, cutoff)
		inserted += n
		if err != nil {
			c.cfg.Metrics.IncrementFeedErrors()
			logger.Error("Feed failed", "source", src.Name, "error", err)
			continue
		}
		logger.Info("Feed processed", "source", src.Name, "inserted", n)
	}
	return inserted, nil
}

func (c *Collector) collectSource(ctx context.Context, src rss.Source, cutoff time.Time) (int, error) {
	feed, err := c.cfg.Feeds.Fetch(ctx, src.URL)
	if err != nil {
		return 0, fmt.Errorf("fetch feed: %w", err)
	}
	c.cfg.Metrics.IncrementFeedsFetched()

	inserted := 0
	seen := 0
	for _, item := range feed.Items {
		if seen >= c.cfg.MaxPerFeed {
			break
		}
		seen++

		if item.PublishedParsed != nil && item.PublishedParsed.Before(cutoff) {
			continue
		}
		ok, err := c.processLink(ctx, src, item)
		if err != nil {
			logger.Warn("Item skipped", "source", src.Name, "url", item.Link, "error", err)
			continue
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

// processLink takes one feed item through filter, dedup, extraction,
// classification and insert. It returns true only when a new record was
// stored. Cheap checks come first: filtered or already-stored URLs are
// dropped before any page fetch.
func (c *Collector) processLink(ctx context.Context, src rss.Source, item *gofeed.Item) (bool, error) {
	url := item.Link
	if url == "" {
		return false, nil
	}
	c.cfg.Metrics.IncrementURLsConsidered()

	if !c.cfg.Filter.IsNewsArticleURL(url) {
		c.cfg.Metrics.IncrementRejectedByFilter()
		return false, nil
	}

	exists, err := c.cfg.Store.Exists(ctx, url)
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	if exists {
		c.cfg.Metrics.IncrementDuplicatesSkipped()
		return false, nil
	}

	body, err := c.cfg.Pages.Fetch(ctx, url)
	if err != nil {
		c.cfg.Metrics.IncrementFetchErrors()
		return false, fmt.Errorf("fetch page: %w", err)
	}

	collectedAt := time.Now()
	result, err := extract.Parse(body)
	if err != nil {
		c.cfg.Metrics.IncrementExtractionFailures()
		return false, fmt.Errorf("parse page: %w", err)
	}
	if result.Title == "" || !extract.LongEnough(result.Content) {
		c.cfg.Metrics.IncrementExtractionFailures()
		logger.Debug("Extraction failed", "url", url, "hasTitle", result.Title != "")
		return false, nil
	}

	sector, area, ok := c.cfg.Classifier.Classify(result.Title, result.Content)
	if !ok {
		// Expected for most general news, so info, not warning.
		c.cfg.Metrics.IncrementClassificationMisses()
		logger.Info("No sector match", "url", url, "title", result.Title)
		return false, nil
	}

	articleDate := result.Published
	if articleDate.IsZero() {
		articleDate = collectedAt
	}
	article := &model.Article{
		URL:         url,
		Title:       result.Title,
		SourceName:  src.Name,
		Sector:      sector,
		Area:        area,
		Province:    classify.Province(result.Title, result.Content),
		CollectedAt: collectedAt,
		ArticleDate: articleDate,
		Excerpt:     result.Content,
	}

	id, err := c.cfg.Store.Insert(ctx, article)
	if errors.Is(err, store.ErrDuplicate) {
		// Lost the race with a concurrent writer. Not a failure.
		c.cfg.Metrics.IncrementDuplicatesSkipped()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert: %w", err)
	}

	article.ID = id
	c.newRecords = append(c.newRecords, *article)
	c.cfg.Metrics.IncrementArticlesInserted()
	logger.Debug("Article stored", "url", url, "sector", sector, "province", article.Province)
	return true, nil
}

// NewRecords returns copies of the records inserted by the most recent
// Collect call, for the enrichment and notification collaborators.
func (c *Collector) NewRecords() []model.Article {
	records := make([]model.Article, len(c.newRecords))
	copy(records, c.newRecords)
	return records
}
