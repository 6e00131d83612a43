package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"vninfra/internal/model"
)

// Store persists article records in PostgreSQL. The url column carries a
// unique constraint; that constraint is the dedup gate for the whole
// pipeline.
type Store struct {
	db *sql.DB
}

// New opens the database, verifies the connection and ensures the schema
// exists. Any failure here is fatal for the run: the pipeline never
// collects into a store it cannot write to.
func New(connectionString string) (*Store, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		id SERIAL PRIMARY KEY,
		url TEXT UNIQUE NOT NULL,
		title TEXT NOT NULL,
		title_ko TEXT,
		title_en TEXT,
		title_vi TEXT,
		source_name VARCHAR(100),
		sector VARCHAR(50) NOT NULL,
		area VARCHAR(50) NOT NULL,
		province VARCHAR(100) NOT NULL DEFAULT 'Vietnam',
		collected_at TIMESTAMP NOT NULL DEFAULT NOW(),
		article_date TIMESTAMP,
		summary_ko TEXT,
		summary_en TEXT,
		summary_vi TEXT,
		content_excerpt TEXT,
		validated BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_articles_collected_at ON articles(collected_at);
	CREATE INDEX IF NOT EXISTS idx_articles_sector ON articles(sector);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Exists reports whether an article with this URL is already stored. The
// collector calls it before any fetch or extraction work.
func (s *Store) Exists(ctx context.Context, url string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM articles WHERE url = $1`, url).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check url %s: %w", url, err)
	}
	return count > 0, nil
}

// Insert stores a new article record and returns its id. A uniqueness
// violation on url comes back as ErrDuplicate.
func (s *Store) Insert(ctx context.Context, a *model.Article) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO articles
			(url, title, source_name, sector, area, province, collected_at, article_date, content_excerpt, validated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		a.URL, a.Title, a.SourceName, a.Sector, a.Area, a.Province,
		a.CollectedAt, nullTime(a.ArticleDate), a.Excerpt, a.Validated,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert article %s: %w", a.URL, err)
	}
	return id, nil
}

// UpdateEnrichment writes the collaborator's translated titles and
// summaries onto an existing record, keyed by url.
func (s *Store) UpdateEnrichment(ctx context.Context, url string, e model.Enrichment) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE articles
		SET title_ko = $2, title_en = $3, title_vi = $4,
		    summary_ko = $5, summary_en = $6, summary_vi = $7
		WHERE url = $1`,
		url, e.TitleKO, e.TitleEN, e.TitleVI, e.SummaryKO, e.SummaryEN, e.SummaryVI,
	)
	if err != nil {
		return fmt.Errorf("update enrichment for %s: %w", url, err)
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("no stored article with url %s", url)
	}
	return nil
}

// ListSince returns all records collected after the given time, newest
// first, for the reporting and notification collaborators.
func (s *Store) ListSince(ctx context.Context, since time.Time) ([]model.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, title,
		       COALESCE(title_ko, ''), COALESCE(title_en, ''), COALESCE(title_vi, ''),
		       COALESCE(source_name, ''), sector, area, province,
		       collected_at, article_date,
		       COALESCE(summary_ko, ''), COALESCE(summary_en, ''), COALESCE(summary_vi, ''),
		       COALESCE(content_excerpt, ''), validated
		FROM articles
		WHERE collected_at > $1
		ORDER BY collected_at DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var items []model.Article
	for rows.Next() {
		var a model.Article
		var articleDate sql.NullTime
		err := rows.Scan(
			&a.ID, &a.URL, &a.Title,
			&a.TitleKO, &a.TitleEN, &a.TitleVI,
			&a.SourceName, &a.Sector, &a.Area, &a.Province,
			&a.CollectedAt, &articleDate,
			&a.SummaryKO, &a.SummaryEN, &a.SummaryVI,
			&a.Excerpt, &a.Validated,
		)
		if err != nil {
			return nil, fmt.Errorf("scan article row: %w", err)
		}
		if articleDate.Valid {
			a.ArticleDate = articleDate.Time
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
