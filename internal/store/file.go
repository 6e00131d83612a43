package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"vninfra/internal/model"
)

// FileStore is a JSON-file fallback for runs without a database. It keeps
// the whole record set in memory keyed by URL and rewrites the file on
// every mutation, so it only suits small deployments and tests.
type FileStore struct {
	mu     sync.Mutex
	path   string
	nextID int64
	items  map[string]model.Article
}

// NewFileStore creates a file store rooted at path, loading any existing
// records. The parent directory is created if missing.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	fs := &FileStore{
		path:   path,
		nextID: 1,
		items:  make(map[string]model.Article),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var records []model.Article
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode store file %s: %w", path, err)
	}
	for _, r := range records {
		fs.items[r.URL] = r
		if r.ID >= fs.nextID {
			fs.nextID = r.ID + 1
		}
	}
	return fs, nil
}

func (fs *FileStore) Exists(_ context.Context, url string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	_, ok := fs.items[url]
	return ok, nil
}

func (fs *FileStore) Insert(_ context.Context, a *model.Article) (int64, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.items[a.URL]; ok {
		return 0, ErrDuplicate
	}

	record := *a
	record.ID = fs.nextID
	if record.Province == "" {
		record.Province = "Vietnam"
	}
	fs.nextID++
	fs.items[a.URL] = record

	if err := fs.save(); err != nil {
		delete(fs.items, a.URL)
		fs.nextID--
		return 0, err
	}
	return record.ID, nil
}

func (fs *FileStore) UpdateEnrichment(_ context.Context, url string, e model.Enrichment) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	record, ok := fs.items[url]
	if !ok {
		return fmt.Errorf("no stored article with url %s", url)
	}
	record.TitleKO = e.TitleKO
	record.TitleEN = e.TitleEN
	record.TitleVI = e.TitleVI
	record.SummaryKO = e.SummaryKO
	record.SummaryEN = e.SummaryEN
	record.SummaryVI = e.SummaryVI
	fs.items[url] = record
	return fs.save()
}

func (fs *FileStore) ListSince(_ context.Context, since time.Time) ([]model.Article, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var items []model.Article
	for _, r := range fs.items {
		if r.CollectedAt.After(since) {
			items = append(items, r)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CollectedAt.After(items[j].CollectedAt)
	})
	return items, nil
}

func (fs *FileStore) Close() error {
	return nil
}

// save writes through a temp file so a crash mid-write cannot corrupt the
// record set.
func (fs *FileStore) save() error {
	records := make([]model.Article, 0, len(fs.items))
	for _, r := range fs.items {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	return os.Rename(tmp, fs.path)
}
