// Package notify delivers run digests to Telegram and Slack. Delivery is
// best-effort; a failed notification never fails the run.
package notify

import (
	"fmt"
	"strings"
	"time"

	"vninfra/internal/classify"
	"vninfra/internal/model"
)

const maxHeadlines = 5

// Digest formats a run summary: total count, breakdown by area, and the
// first few headlines. The message uses Telegram-safe HTML; Slack strips
// the tags on its side.
func Digest(records []model.Article, dashboardURL string, now time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>Vietnam Infrastructure News</b> — %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&sb, "New articles: %d\n", len(records))

	if len(records) > 0 {
		counts := map[string]int{}
		for _, r := range records {
			counts[r.Area]++
		}
		sb.WriteString("\n")
		for _, area := range []string{classify.AreaEnvironment, classify.AreaEnergy, classify.AreaUrban} {
			if counts[area] > 0 {
				fmt.Fprintf(&sb, "• %s: %d\n", area, counts[area])
			}
		}

		sb.WriteString("\n")
		for i, r := range records {
			if i >= maxHeadlines {
				fmt.Fprintf(&sb, "… and %d more\n", len(records)-maxHeadlines)
				break
			}
			fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, r.Sector, r.Title)
		}
	}

	if dashboardURL != "" {
		fmt.Fprintf(&sb, "\nDashboard: %s", dashboardURL)
	}
	return sb.String()
}
