package classify

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassifySinglePrimaryKeyword(t *testing.T) {
	c := Default()

	// One primary keyword scores exactly at the threshold.
	sector, area, ok := c.Classify("Long An province commissions new WWTP", "")
	if !ok {
		t.Fatal("expected classification")
	}
	if sector != "Waste Water" {
		t.Errorf("sector = %q, want Waste Water", sector)
	}
	if area != AreaEnvironment {
		t.Errorf("area = %q, want %q", area, AreaEnvironment)
	}
}

func TestClassifyBelowThreshold(t *testing.T) {
	c := Default()

	// Two secondary keywords score 2, below the threshold of 3.
	_, _, ok := c.Classify("Report mentions sewage and effluent levels", "")
	if ok {
		t.Error("expected no classification below threshold")
	}
}

func TestClassifyNoKeywords(t *testing.T) {
	c := Default()
	if _, _, ok := c.Classify("Football team wins the national cup", ""); ok {
		t.Error("expected no classification for unrelated text")
	}
}

func TestPolicyFilterSuppresses(t *testing.T) {
	c := Default()

	_, _, ok := c.Classify(
		"Province improves investment climate for industrial park developers", "")
	if ok {
		t.Error("expected policy article to be suppressed")
	}
}

func TestPolicyFilterAllowsConcreteProjects(t *testing.T) {
	c := Default()

	sector, _, ok := c.Classify(
		"Despite a tough investment climate, contract signed for industrial park expansion", "")
	if !ok {
		t.Fatal("expected classification when a project indicator is present")
	}
	if sector != "Industrial Parks" {
		t.Errorf("sector = %q, want Industrial Parks", sector)
	}
}

func TestTieGoesToPriorityOrder(t *testing.T) {
	c := Default()

	// One primary hit each for Oil & Gas (priority 1) and Power
	// (priority 5). Equal scores resolve to the earlier priority.
	sector, area, ok := c.Classify("LNG terminal and power plant planned for Quang Ninh", "")
	if !ok {
		t.Fatal("expected classification")
	}
	if sector != "Oil & Gas" {
		t.Errorf("sector = %q, want Oil & Gas", sector)
	}
	if area != AreaEnergy {
		t.Errorf("area = %q, want %q", area, AreaEnergy)
	}
}

func TestHigherScoreBeatsPriority(t *testing.T) {
	c := Default()

	// Power scores 3+1 while Oil & Gas scores 3; the higher score wins
	// regardless of priority order.
	sector, _, ok := c.Classify(
		"Refinery to get its own power plant generating cheap electricity", "")
	if !ok {
		t.Fatal("expected classification")
	}
	if sector != "Power" {
		t.Errorf("sector = %q, want Power", sector)
	}
}

func TestContentContributesToScore(t *testing.T) {
	c := Default()

	sector, _, ok := c.Classify(
		"Big project announced in Dong Nai",
		"The province approved a new wastewater treatment plant serving three districts.")
	if !ok {
		t.Fatal("expected classification from content keywords")
	}
	if sector != "Waste Water" {
		t.Errorf("sector = %q, want Waste Water", sector)
	}
}

func TestAreaForIsTotal(t *testing.T) {
	c := Default()

	cases := map[string]string{
		"Oil & Gas":             AreaEnergy,
		"Power":                 AreaEnergy,
		"Waste Water":           AreaEnvironment,
		"Solid Waste":           AreaEnvironment,
		"Water Supply/Drainage": AreaEnvironment,
		"Industrial Parks":      AreaUrban,
		"Smart City":            AreaUrban,
		"Transport":             AreaUrban,
		"Construction":          AreaUrban,
		"No Such Sector":        AreaEnvironment,
	}
	for sector, want := range cases {
		if got := c.AreaFor(sector); got != want {
			t.Errorf("AreaFor(%q) = %q, want %q", sector, got, want)
		}
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := []byte(`rules:
  - sector: Power
    priority: 1
    area: Energy Development
    primary: [power plant]
    secondary: [electricity]
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules) != 1 || rules[0].Sector != "Power" {
		t.Errorf("unexpected rules: %+v", rules)
	}

	c := New(rules)
	if _, _, ok := c.Classify("New power plant announced", ""); !ok {
		t.Error("expected classification with loaded rules")
	}
}

func TestLoadRulesRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, []byte("rules: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Error("expected error for empty rule table")
	}
}

func TestProvince(t *testing.T) {
	cases := []struct {
		title, content, want string
	}{
		{"Wastewater plant opens in Binh Duong", "", "Binh Duong"},
		{"New metro line", "The Hanoi metro expansion was approved.", "Hanoi"},
		{"HCMC approves housing project", "", "Ho Chi Minh City"},
		{"Project in Danang port area", "", "Da Nang"},
		{"National water strategy announced", "", CountryWide},
	}
	for _, tc := range cases {
		if got := Province(tc.title, tc.content); got != tc.want {
			t.Errorf("Province(%q, %q) = %q, want %q", tc.title, tc.content, got, tc.want)
		}
	}
}
