package urlfilter

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Filter decides whether a URL plausibly points at a news article page
// rather than a category, tag, search or static page. The blacklist runs
// first and is authoritative: a blacklist match rejects the URL even when a
// whitelist pattern also matches.
type Filter struct {
	blacklist []*regexp.Regexp
	whitelist []*regexp.Regexp
}

// Default pattern lists. The exact contents are a data-tuning concern and
// can be replaced through the YAML config; only the blacklist-first policy
// is fixed.
var defaultBlacklist = []string{
	// Category, tag and listing pages
	`/category/`, `/tag/`, `/tags/`, `/categories/`,
	`/cooperation-investment$`, `/investment$`, `/business$`,

	// Static and policy pages
	`/about`, `/contact`, `/policy`, `/law`, `/regulation`,
	`/investment-policy`, `/investment-incentive`,
	`/investment-climate`, `/doing-business`,
	`/investment-attraction`,

	// Other non-article pages and assets
	`/search`, `/archive`, `/page/`, `/expertise/`,
	`\.(?:css|js|png|jpe?g|gif|svg|ico)$`,
}

var defaultWhitelist = []string{
	`/\d{4}/\d{1,2}/`, // /2025/01/
	`/news/`, `/article/`, `/post/`, `/story/`,
	`/tin-tuc/`, `/bai-viet/`,
	`-post\d+\.html?$`, // -post112164.html
	`-\d{7,}\.html?$`,  // article-1234567.html
	`/\d{6,}\.html?$`,  // /123456.html
	`\.vnp$`,
}

// New returns a filter built from the default pattern lists.
func New() *Filter {
	f, err := NewFromPatterns(defaultBlacklist, defaultWhitelist)
	if err != nil {
		// Default patterns are compiled-in constants.
		panic(err)
	}
	return f
}

// NewFromPatterns compiles the given pattern lists into a filter.
func NewFromPatterns(blacklist, whitelist []string) (*Filter, error) {
	f := &Filter{}
	for _, p := range blacklist {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("bad blacklist pattern %q: %w", p, err)
		}
		f.blacklist = append(f.blacklist, re)
	}
	for _, p := range whitelist {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("bad whitelist pattern %q: %w", p, err)
		}
		f.whitelist = append(f.whitelist, re)
	}
	return f, nil
}

// patternsConfig is the YAML config structure
// blacklist:
//   - /tag/
// whitelist:
//   - /news/
type patternsConfig struct {
	Blacklist []string `yaml:"blacklist"`
	Whitelist []string `yaml:"whitelist"`
}

// Load reads a pattern override file. Empty lists fall back to the defaults.
func Load(path string) (*Filter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg patternsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode url patterns %s: %w", path, err)
	}
	if len(cfg.Blacklist) == 0 {
		cfg.Blacklist = defaultBlacklist
	}
	if len(cfg.Whitelist) == 0 {
		cfg.Whitelist = defaultWhitelist
	}
	return NewFromPatterns(cfg.Blacklist, cfg.Whitelist)
}

// IsNewsArticleURL reports whether the URL looks like a news article page.
// Matching is case-insensitive; the predicate has no side effects.
func (f *Filter) IsNewsArticleURL(rawURL string) bool {
	u := strings.ToLower(strings.TrimSpace(rawURL))
	if u == "" {
		return false
	}

	for _, re := range f.blacklist {
		if re.MatchString(u) {
			return false
		}
	}
	for _, re := range f.whitelist {
		if re.MatchString(u) {
			return true
		}
	}
	return false
}
