package urlfilter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBlacklistWinsOverWhitelist(t *testing.T) {
	f := New()

	// Matches the whitelist date pattern but sits under a blacklisted
	// category path.
	url := "https://example.vn/category/2025/01/some-article"
	if f.IsNewsArticleURL(url) {
		t.Errorf("expected blacklisted URL to be rejected: %s", url)
	}
}

func TestWhitelistAccepts(t *testing.T) {
	f := New()

	urls := []string{
		"https://e.vnexpress.net/news/business/plant-opens-4700000.html",
		"https://vietnamnews.vn/economy/2025/01/water-plant-starts",
		"https://example.vn/article/wastewater-upgrade",
		"https://tuoitrenews.vn/business/long-an-ip-post112164.html",
		"https://en.vietnamplus.vn/power-plant-comes-online/1234567.html",
		"https://example.vn/tin-tuc/du-an-moi",
		"https://vna.example.vn/photo.vnp",
	}
	for _, url := range urls {
		if !f.IsNewsArticleURL(url) {
			t.Errorf("expected article URL to be accepted: %s", url)
		}
	}
}

func TestRejectsUnmatchedURL(t *testing.T) {
	f := New()

	urls := []string{
		"https://example.vn/",
		"https://example.vn/about",
		"https://example.vn/some-page",
		"https://example.vn/style.css",
		"",
		"   ",
	}
	for _, url := range urls {
		if f.IsNewsArticleURL(url) {
			t.Errorf("expected URL to be rejected: %q", url)
		}
	}
}

func TestMatchingIsCaseInsensitive(t *testing.T) {
	f := New()

	if f.IsNewsArticleURL("https://example.vn/CATEGORY/2025/01/x") {
		t.Error("expected uppercase blacklisted path to be rejected")
	}
	if !f.IsNewsArticleURL("https://example.vn/NEWS/plant-opens") {
		t.Error("expected uppercase whitelisted path to be accepted")
	}
}

func TestPolicyPagesRejected(t *testing.T) {
	f := New()

	urls := []string{
		"https://example.vn/news/investment-policy-update", // blacklist term inside a news path
		"https://example.vn/search?q=wastewater",
		"https://example.vn/tag/infrastructure",
	}
	for _, url := range urls {
		if f.IsNewsArticleURL(url) {
			t.Errorf("expected policy/listing URL to be rejected: %s", url)
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	content := []byte("blacklist:\n  - /blocked/\nwhitelist:\n  - /allowed/\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.IsNewsArticleURL("https://example.vn/blocked/x") {
		t.Error("expected override blacklist to reject")
	}
	if !f.IsNewsArticleURL("https://example.vn/allowed/x") {
		t.Error("expected override whitelist to accept")
	}
	// Default patterns are replaced, not merged.
	if f.IsNewsArticleURL("https://example.vn/news/article") {
		t.Error("expected default whitelist to be inactive after override")
	}
}

func TestLoadBadPattern(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	if err := os.WriteFile(path, []byte("blacklist:\n  - '['\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid regexp")
	}
}
