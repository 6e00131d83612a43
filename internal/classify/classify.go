package classify

import (
	"sort"
	"strings"
)

const (
	primaryWeight   = 3
	secondaryWeight = 1
	scoreThreshold  = 3
)

// Generic investment-climate phrases. An article matching one of these with
// no concrete project indicator is a macro/policy piece, not project news.
var policyPhrases = []string{
	"investment climate",
	"investment environment",
	"business environment",
	"doing business",
	"investment attraction",
	"investment incentive",
	"investment policy",
	"investment promotion",
}

// Phrases that signal a concrete project rather than policy commentary.
var projectIndicators = []string{
	"construction start",
	"started construction",
	"start construction",
	"begins construction",
	"broke ground",
	"groundbreaking",
	"contract signed",
	"signed a contract",
	"signed contract",
	"signing ceremony",
	"plant opened",
	"inaugurat",
	"commissioned",
	"commercial operation",
	"investment certificate",
	"approved the project",
	"project approval",
}

// Classifier assigns a sector and area to article text using a keyword
// rule table loaded once at startup.
type Classifier struct {
	rules []Rule
}

// New builds a classifier from a rule table. Rules are evaluated in
// ascending Priority order regardless of their order in the slice.
func New(rules []Rule) *Classifier {
	rs := make([]Rule, len(rules))
	copy(rs, rules)
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Priority < rs[j].Priority
	})
	return &Classifier{rules: rs}
}

// Default returns a classifier over the compiled-in rule table.
func Default() *Classifier {
	return New(defaultRules)
}

// Classify scores the combined title and content against the rule table.
// It returns ok=false when the policy filter rejects the text or no sector
// reaches the score threshold. Ties go to the sector earliest in priority
// order: scoring is a single scan and only a strictly higher score
// displaces the current best.
func (c *Classifier) Classify(title, content string) (sector, area string, ok bool) {
	text := strings.ToLower(title + " " + content)

	if containsAny(text, policyPhrases) && !containsAny(text, projectIndicators) {
		return "", "", false
	}

	best := 0
	bestIdx := -1
	for i := range c.rules {
		if score := scoreRule(&c.rules[i], text); score > best {
			best = score
			bestIdx = i
		}
	}
	if bestIdx < 0 || best < scoreThreshold {
		return "", "", false
	}
	return c.rules[bestIdx].Sector, c.AreaFor(c.rules[bestIdx].Sector), true
}

// AreaFor maps a sector to its coarse area. The mapping is total: sectors
// without an explicit area in the rule table map to Environment.
func (c *Classifier) AreaFor(sector string) string {
	for i := range c.rules {
		if c.rules[i].Sector == sector && c.rules[i].Area != "" {
			return c.rules[i].Area
		}
	}
	return AreaEnvironment
}

func scoreRule(r *Rule, text string) int {
	score := 0
	for _, kw := range r.Primary {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			score += primaryWeight
		}
	}
	for _, kw := range r.Secondary {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			score += secondaryWeight
		}
	}
	return score
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
