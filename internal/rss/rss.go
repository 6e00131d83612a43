package rss

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"
)

// Source is one configured feed: a display name plus the feed URL.
// The feed list is external configuration; this package only consumes it.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// feedsConfig is the YAML config structure
// sources:
//   - name: VnExpress English
//     url: https://...
type feedsConfig struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the feed source list from a YAML file.
func LoadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg feedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode feeds config %s: %w", path, err)
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("no feed sources configured in %s", path)
	}
	for _, s := range cfg.Sources {
		if s.Name == "" || s.URL == "" {
			return nil, fmt.Errorf("feed source with empty name or url in %s", path)
		}
	}
	return cfg.Sources, nil
}

// Several Vietnamese news sites reject the default Go user agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client downloads and parses RSS/Atom feeds with a fixed per-request timeout.
type Client struct {
	parser  *gofeed.Parser
	timeout time.Duration
}

func NewClient(timeout time.Duration) *Client {
	p := gofeed.NewParser()
	p.UserAgent = userAgent
	return &Client{parser: p, timeout: timeout}
}

func (c *Client) Fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	feed, err := c.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}
	return feed, nil
}
