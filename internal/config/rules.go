package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"cardsheets/internal/classify"
	"cardsheets/internal/core"
)

// rulesFile is the YAML schema for a rules file. Thresholds are strings so
// they parse as exact decimals, never floats. A file replaces the built-in
// rules wholesale, except that omitted thresholds keep their defaults.
type rulesFile struct {
	Ignore    []string `yaml:"ignore"`
	Overrides []struct {
		Match    string `yaml:"match"`
		Category string `yaml:"category"`
	} `yaml:"overrides"`
	FoodMerchants  []string `yaml:"food_merchants"`
	FoodExclusions []string `yaml:"food_exclusions"`
	LargeAmount    string   `yaml:"large_amount"`
	SmallAmount    string   `yaml:"small_amount"`
}

// LoadRules returns the classification rule set. With an empty path the
// built-in defaults are used; otherwise the YAML file at path replaces
// them. The returned rule set is always validated, so the classifier never
// has to re-check it.
func LoadRules(path string) (classify.RuleSet, error) {
	if path == "" {
		return classify.DefaultRuleSet(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return classify.RuleSet{}, fmt.Errorf("read rules file: %w", err)
	}

	var rf rulesFile
	if err := yaml.Unmarshal(b, &rf); err != nil {
		return classify.RuleSet{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	rules, err := rf.toRuleSet()
	if err != nil {
		return classify.RuleSet{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return classify.RuleSet{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

func (rf rulesFile) toRuleSet() (classify.RuleSet, error) {
	defaults := classify.DefaultRuleSet()

	rules := classify.RuleSet{
		Ignore:         rf.Ignore,
		FoodMerchants:  rf.FoodMerchants,
		FoodExclusions: rf.FoodExclusions,
		LargeAmount:    defaults.LargeAmount,
		SmallAmount:    defaults.SmallAmount,
	}
	for _, o := range rf.Overrides {
		rules.Overrides = append(rules.Overrides, classify.Override{
			Match:    o.Match,
			Category: core.Category(o.Category),
		})
	}

	if rf.LargeAmount != "" {
		d, err := decimal.NewFromString(rf.LargeAmount)
		if err != nil {
			return classify.RuleSet{}, fmt.Errorf("large_amount %q: %w", rf.LargeAmount, err)
		}
		rules.LargeAmount = d
	}
	if rf.SmallAmount != "" {
		d, err := decimal.NewFromString(rf.SmallAmount)
		if err != nil {
			return classify.RuleSet{}, fmt.Errorf("small_amount %q: %w", rf.SmallAmount, err)
		}
		rules.SmallAmount = d
	}

	return rules, nil
}
