package notify

import (
	"strings"
	"testing"
	"time"

	"vninfra/internal/model"
)

func TestDigest(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	records := []model.Article{
		{Title: "Wastewater plant opens", Sector: "Waste Water", Area: "Environment"},
		{Title: "Solar farm approved", Sector: "Power", Area: "Energy Development"},
		{Title: "Metro line extended", Sector: "Transport", Area: "Urban Development"},
	}

	msg := Digest(records, "https://dashboard.example.com", now)

	for _, want := range []string{
		"2025-06-01",
		"New articles: 3",
		"Environment: 1",
		"Energy Development: 1",
		"Urban Development: 1",
		"[Waste Water] Wastewater plant opens",
		"Dashboard: https://dashboard.example.com",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("digest missing %q:\n%s", want, msg)
		}
	}
}

func TestDigestTruncatesHeadlines(t *testing.T) {
	var records []model.Article
	for i := 0; i < 8; i++ {
		records = append(records, model.Article{
			Title: "Article", Sector: "Power", Area: "Energy Development",
		})
	}

	msg := Digest(records, "", time.Now())
	if !strings.Contains(msg, "and 3 more") {
		t.Errorf("digest missing overflow line:\n%s", msg)
	}
	if strings.Count(msg, "[Power]") != 5 {
		t.Errorf("expected 5 headlines, got %d", strings.Count(msg, "[Power]"))
	}
}

func TestDigestEmptyRun(t *testing.T) {
	msg := Digest(nil, "", time.Now())
	if !strings.Contains(msg, "New articles: 0") {
		t.Errorf("digest missing zero count:\n%s", msg)
	}
	if strings.Contains(msg, "Dashboard") {
		t.Error("digest must omit dashboard line when URL is empty")
	}
}
