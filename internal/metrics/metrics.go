package metrics

import (
	"sync"
	"time"
)

// Metrics counts per-gate outcomes of the collection pipeline so that
// rejection reasons can be asserted in tests and exposed over /metrics
// without parsing log output.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched         int64
	FeedErrors           int64
	URLsConsidered       int64
	RejectedByFilter     int64
	DuplicatesSkipped    int64
	FetchErrors          int64
	ExtractionFailures   int64
	ClassificationMisses int64
	ArticlesInserted     int64
	EnrichedRecords      int64
	NotificationsSent    int64

	// Timings
	LastRunDuration    time.Duration
	TotalRunDuration   time.Duration
	RunCount           int64
	AverageRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

func New() *Metrics {
	return &Metrics{IsHealthy: true}
}

var Global = New()

func (m *Metrics) IncrementFeedsFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
}

func (m *Metrics) IncrementFeedErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedErrors++
}

func (m *Metrics) IncrementURLsConsidered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.URLsConsidered++
}

func (m *Metrics) IncrementRejectedByFilter() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RejectedByFilter++
}

func (m *Metrics) IncrementDuplicatesSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesSkipped++
}

func (m *Metrics) IncrementFetchErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchErrors++
}

func (m *Metrics) IncrementExtractionFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExtractionFailures++
}

func (m *Metrics) IncrementClassificationMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClassificationMisses++
}

func (m *Metrics) IncrementArticlesInserted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesInserted++
}

func (m *Metrics) IncrementEnrichedRecords() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnrichedRecords++
}

func (m *Metrics) IncrementNotificationsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotificationsSent++
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++
	m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":           m.FeedsFetched,
		"feed_errors":             m.FeedErrors,
		"urls_considered":         m.URLsConsidered,
		"rejected_by_filter":      m.RejectedByFilter,
		"duplicates_skipped":      m.DuplicatesSkipped,
		"fetch_errors":            m.FetchErrors,
		"extraction_failures":     m.ExtractionFailures,
		"classification_misses":   m.ClassificationMisses,
		"articles_inserted":       m.ArticlesInserted,
		"enriched_records":        m.EnrichedRecords,
		"notifications_sent":      m.NotificationsSent,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
