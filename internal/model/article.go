package model

import "time"

// Article is the persisted unit of the pipeline. A record exists in the
// store only for URLs that passed the URL filter, yielded a usable title
// and enough content, and received a sector classification.
type Article struct {
	ID          int64
	URL         string
	Title       string
	SourceName  string
	Sector      string
	Area        string
	Province    string
	CollectedAt time.Time
	ArticleDate time.Time
	Excerpt     string
	Validated   bool

	// Filled in by the enrichment collaborator, nullable in the store.
	TitleKO   string
	TitleEN   string
	TitleVI   string
	SummaryKO string
	SummaryEN string
	SummaryVI string
}

// Enrichment holds the translated titles and summaries the AI collaborator
// writes back to a stored article, keyed by URL.
type Enrichment struct {
	TitleKO   string
	TitleEN   string
	TitleVI   string
	SummaryKO string
	SummaryEN string
	SummaryVI string
}
