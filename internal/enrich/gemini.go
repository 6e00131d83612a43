// Package enrich adds translated titles and trilingual summaries to
// stored articles using the Gemini API. It runs after collection and is
// strictly best-effort: a failed enrichment leaves the record as
// collected.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"vninfra/internal/logger"
	"vninfra/internal/metrics"
	"vninfra/internal/model"
	"vninfra/internal/ratelimit"
)

// Store is the write-back surface for enrichment results.
type Store interface {
	UpdateEnrichment(ctx context.Context, url string, e model.Enrichment) error
}

const promptTemplate = `You are a translator for a Vietnam infrastructure news service.
Given the article below, produce a Korean, English and Vietnamese title and a 2-3 sentence summary in each language.

Respond in EXACTLY this format, one section per line:
TITLE_KO: <Korean title>
TITLE_EN: <English title>
TITLE_VI: <Vietnamese title>
SUMMARY_KO: <Korean summary>
SUMMARY_EN: <English summary>
SUMMARY_VI: <Vietnamese summary>

Title: %s
Sector: %s
Content:
%s`

// Client wraps the Gemini API for article enrichment.
type Client struct {
	genai   *genai.Client
	limiter *ratelimit.Limiter
}

func NewClient(ctx context.Context, apiKey string, maxRequests int) (*Client, error) {
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{
		genai:   c,
		limiter: ratelimit.New(maxRequests),
	}, nil
}

func (c *Client) Close() error {
	return c.genai.Close()
}

// EnrichAll enriches each record and writes the result back to the store,
// stopping early when the per-run request budget runs out. It returns the
// number of records enriched.
func (c *Client) EnrichAll(ctx context.Context, records []model.Article, st Store) int {
	enriched := 0
	for i := range records {
		if !c.limiter.Allow() {
			logger.Warn("Gemini request budget exhausted",
				"used", c.limiter.Used(), "remaining", len(records)-i)
			break
		}

		e, err := c.summarize(ctx, &records[i])
		if err != nil {
			logger.Error("Enrichment failed", "url", records[i].URL, "error", err)
			continue
		}
		if err := st.UpdateEnrichment(ctx, records[i].URL, e); err != nil {
			logger.Error("Enrichment write failed", "url", records[i].URL, "error", err)
			continue
		}
		enriched++
		metrics.Global.IncrementEnrichedRecords()
	}
	return enriched
}

func (c *Client) summarize(ctx context.Context, a *model.Article) (model.Enrichment, error) {
	gm := c.genai.GenerativeModel("gemini-1.5-flash")
	prompt := fmt.Sprintf(promptTemplate, a.Title, a.Sector, a.Excerpt)

	resp, err := gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return model.Enrichment{}, fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return model.Enrichment{}, fmt.Errorf("empty gemini response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return parseResponse(sb.String())
}

// parseResponse pulls the labeled sections out of the model's reply.
// Unlabeled lines continue the previous section, so multi-line summaries
// survive intact.
func parseResponse(text string) (model.Enrichment, error) {
	sections := map[string]*strings.Builder{
		"TITLE_KO":   {},
		"TITLE_EN":   {},
		"TITLE_VI":   {},
		"SUMMARY_KO": {},
		"SUMMARY_EN": {},
		"SUMMARY_VI": {},
	}

	var current *strings.Builder
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		matched := false
		for label, sb := range sections {
			if rest, ok := strings.CutPrefix(trimmed, label+":"); ok {
				current = sb
				current.WriteString(strings.TrimSpace(rest))
				matched = true
				break
			}
		}
		if !matched && current != nil {
			current.WriteString(" ")
			current.WriteString(trimmed)
		}
	}

	e := model.Enrichment{
		TitleKO:   sections["TITLE_KO"].String(),
		TitleEN:   sections["TITLE_EN"].String(),
		TitleVI:   sections["TITLE_VI"].String(),
		SummaryKO: sections["SUMMARY_KO"].String(),
		SummaryEN: sections["SUMMARY_EN"].String(),
		SummaryVI: sections["SUMMARY_VI"].String(),
	}
	if e.TitleEN == "" && e.SummaryEN == "" {
		return model.Enrichment{}, fmt.Errorf("gemini response missing labeled sections")
	}
	return e, nil
}
