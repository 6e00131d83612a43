package enrich

import (
	"strings"
	"testing"
)

func TestParseResponse(t *testing.T) {
	text := `TITLE_KO: 한국어 제목
TITLE_EN: English title
TITLE_VI: Tiêu đề tiếng Việt
SUMMARY_KO: 한국어 요약.
SUMMARY_EN: English summary sentence one.
SUMMARY_VI: Tóm tắt tiếng Việt.`

	e, err := parseResponse(text)
	if err != nil {
		t.Fatalf("parseResponse: %v", err)
	}
	if e.TitleKO != "한국어 제목" {
		t.Errorf("TitleKO = %q", e.TitleKO)
	}
	if e.TitleEN != "English title" {
		t.Errorf("TitleEN = %q", e.TitleEN)
	}
	if e.TitleVI != "Tiêu đề tiếng Việt" {
		t.Errorf("TitleVI = %q", e.TitleVI)
	}
	if e.SummaryEN != "English summary sentence one." {
		t.Errorf("SummaryEN = %q", e.SummaryEN)
	}
}

func TestParseResponseContinuationLines(t *testing.T) {
	text := `TITLE_EN: English title
SUMMARY_EN: First sentence.
Second sentence on its own line.
SUMMARY_VI: Tóm tắt.`

	e, err := parseResponse(text)
	if err != nil {
		t.Fatalf("parseResponse: %v", err)
	}
	want := "First sentence. Second sentence on its own line."
	if e.SummaryEN != want {
		t.Errorf("SummaryEN = %q, want %q", e.SummaryEN, want)
	}
	if e.SummaryVI != "Tóm tắt." {
		t.Errorf("SummaryVI = %q", e.SummaryVI)
	}
}

func TestParseResponseIgnoresBlankLinesAndWhitespace(t *testing.T) {
	text := "\n  TITLE_EN:   Padded title  \n\n  SUMMARY_EN: Summary.  \n"

	e, err := parseResponse(text)
	if err != nil {
		t.Fatalf("parseResponse: %v", err)
	}
	if e.TitleEN != "Padded title" {
		t.Errorf("TitleEN = %q", e.TitleEN)
	}
	if e.SummaryEN != "Summary." {
		t.Errorf("SummaryEN = %q", e.SummaryEN)
	}
}

func TestParseResponseRejectsUnlabeledText(t *testing.T) {
	if _, err := parseResponse("The model rambled without any labels."); err == nil {
		t.Error("expected error for response without labeled sections")
	}
	if _, err := parseResponse(strings.Repeat("\n", 5)); err == nil {
		t.Error("expected error for empty response")
	}
}
