package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule is one row of the sector classification table. Primary keywords
// score 3 points, secondary keywords 1; rules are evaluated in Priority
// order with the most specific sectors first, which also decides ties.
type Rule struct {
	Sector    string   `yaml:"sector"`
	Priority  int      `yaml:"priority"`
	Area      string   `yaml:"area"`
	Primary   []string `yaml:"primary"`
	Secondary []string `yaml:"secondary"`
}

// The three coarse areas sectors roll up into.
const (
	AreaEnvironment = "Environment"
	AreaEnergy      = "Energy Development"
	AreaUrban       = "Urban Development"
)

// defaultRules is the compiled-in sector table. Keyword contents are a
// data-tuning concern and can be replaced wholesale through a YAML file;
// the scoring and tie-break policy is fixed in the classifier.
var defaultRules = []Rule{
	{
		Sector:   "Oil & Gas",
		Priority: 1,
		Area:     AreaEnergy,
		Primary: []string{
			"oil exploration", "gas field", "lng terminal",
			"refinery", "offshore drilling", "petrochemical",
			"gas pipeline",
		},
		Secondary: []string{"petroleum", "crude oil", "natural gas"},
	},
	{
		Sector:   "Waste Water",
		Priority: 2,
		Area:     AreaEnvironment,
		Primary: []string{
			"wastewater treatment plant", "sewage treatment plant",
			"wwtp", "wastewater treatment system", "sewerage system",
			"wastewater collection", "effluent treatment",
		},
		Secondary: []string{"wastewater", "sewage", "effluent"},
	},
	{
		Sector:   "Solid Waste",
		Priority: 3,
		Area:     AreaEnvironment,
		Primary: []string{
			"waste-to-energy plant", "solid waste treatment",
			"landfill", "incineration plant", "recycling facility",
			"waste management",
		},
		Secondary: []string{"solid waste", "waste treatment", "recycling"},
	},
	{
		Sector:   "Water Supply/Drainage",
		Priority: 4,
		Area:     AreaEnvironment,
		Primary: []string{
			"water supply project", "water supply system",
			"clean water plant", "water treatment plant",
			"drinking water", "water supply infrastructure",
		},
		Secondary: []string{"water supply", "clean water", "potable water"},
	},
	{
		Sector:   "Power",
		Priority: 5,
		Area:     AreaEnergy,
		Primary: []string{
			"power plant", "solar farm", "wind farm",
			"lng power", "thermal power", "hydropower plant",
			"offshore wind",
		},
		Secondary: []string{"electricity", "power generation", "megawatt"},
	},
	{
		Sector:   "Industrial Parks",
		Priority: 6,
		Area:     AreaUrban,
		Primary: []string{
			"industrial park", "industrial zone", "economic zone",
			"export processing zone",
		},
		Secondary: []string{"fdi", "factory"},
	},
	{
		Sector:   "Smart City",
		Priority: 7,
		Area:     AreaUrban,
		Primary: []string{
			"smart city project", "smart city", "urban development",
			"digital transformation",
		},
		Secondary: []string{"urban area"},
	},
	{
		Sector:   "Transport",
		Priority: 8,
		Area:     AreaUrban,
		Primary: []string{
			"railway project", "metro construction", "airport",
			"highway", "expressway", "port development",
		},
		Secondary: []string{"transport"},
	},
	{
		Sector:   "Construction",
		Priority: 9,
		Area:     AreaUrban,
		Primary: []string{
			"construction project", "real estate", "housing project",
		},
		Secondary: []string{"construction", "building"},
	},
}

// DefaultRules returns a copy of the compiled-in sector table.
func DefaultRules() []Rule {
	rules := make([]Rule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}

// rulesConfig is the YAML config structure
// rules:
//   - sector: Waste Water
//     priority: 2
//     area: Environment
//     primary: [...]
//     secondary: [...]
type rulesConfig struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads a sector rule table from a YAML file.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg rulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode rules %s: %w", path, err)
	}
	if len(cfg.Rules) == 0 {
		return nil, fmt.Errorf("no rules in %s", path)
	}
	for _, r := range cfg.Rules {
		if r.Sector == "" {
			return nil, fmt.Errorf("rule with empty sector in %s", path)
		}
		if len(r.Primary) == 0 && len(r.Secondary) == 0 {
			return nil, fmt.Errorf("rule %q has no keywords in %s", r.Sector, path)
		}
	}
	return cfg.Rules, nil
}
