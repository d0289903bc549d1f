package classify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"cardsheets/internal/core"
)

// Override maps a merchant substring to a fixed category. Overrides are
// tried in declaration order and the first match wins; the order of the
// slice is part of the contract, which is why this is a slice and not a map.
type Override struct {
	Match    string
	Category core.Category
}

// RuleSet is the full classification configuration: ignore patterns, the
// ordered override table, food-merchant fragments with their exclusions,
// and the two fallback thresholds. A RuleSet must be validated before it is
// handed to NewChain; the chain itself does not re-validate.
type RuleSet struct {
	Ignore         []string
	Overrides      []Override
	FoodMerchants  []string
	FoodExclusions []string

	// LargeAmount and up classifies as school; SmallAmount and below as
	// groceries. Both bounds are inclusive.
	LargeAmount decimal.Decimal
	SmallAmount decimal.Decimal
}

// DefaultRuleSet returns the built-in rules. A YAML rules file replaces
// them wholesale; there is no per-field merging.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Ignore: []string{
			"PAYMENT",
			"THANK YOU",
			"PAIEMENT",
			"BALANCE",
			"INTEREST",
			"FEE",
		},
		Overrides: []Override{
			{Match: "PRESTO", Category: core.CategoryPresto},
			{Match: "FLYWIRE", Category: core.CategoryPersonal},
			{Match: "OCAS", Category: core.CategoryPersonal},
			{Match: "OPENAI", Category: core.CategoryPersonal},
			{Match: "CU* RM FINANCE", Category: core.CategorySchool},
			{Match: "WAL-MART", Category: core.CategoryGroceries},
			{Match: "WALMART", Category: core.CategoryGroceries},
			{Match: "FRESHCO", Category: core.CategoryGroceries},
			{Match: "FORTINOS", Category: core.CategoryGroceries},
			{Match: "DOLLARAMA", Category: core.CategoryGroceries},
			{Match: "SHOPPERS", Category: core.CategoryGroceries},
			{Match: "SPOTIFY", Category: core.CategoryOther},
			{Match: "CITY OF", Category: core.CategoryOther},
		},
		FoodMerchants: []string{
			"MCDONALD",
			"KFC",
			"TACO",
			"BURRITO",
			"SUB",
			"PIZZA",
			"SHELBYS",
			"TIM HORTONS",
			"STARBUCKS",
			"COFFEE",
			"CAFE",
			"RESTAURANT",
			"DINER",
			"GRILL",
			"BISTRO",
			"KITCHEN",
			"UBER EATS",
			"UBEREATS",
			"DOORDASH",
			"SKIP",
		},
		FoodExclusions: []string{
			"FRESHCO",
			"FORTINOS",
			"LOBLAWS",
			"WAL-MART",
			"WALMART",
			"DOLLARAMA",
			"SHOPPERS",
			"SUPERCENTER",
		},
		LargeAmount: decimal.NewFromInt(100),
		SmallAmount: decimal.NewFromInt(10),
	}
}

// Validate checks the rule set for configuration errors: empty patterns,
// unknown categories, and inconsistent thresholds. All problems are
// reported at once.
func (r RuleSet) Validate() error {
	var problems []string

	for i, p := range r.Ignore {
		if strings.TrimSpace(p) == "" {
			problems = append(problems, fmt.Sprintf("ignore[%d]: empty pattern", i))
		}
	}
	for i, o := range r.Overrides {
		if strings.TrimSpace(o.Match) == "" {
			problems = append(problems, fmt.Sprintf("overrides[%d]: empty match pattern", i))
		}
		if !o.Category.Valid() {
			problems = append(problems, fmt.Sprintf("overrides[%d]: unknown category %q", i, o.Category))
		}
	}
	for i, p := range r.FoodMerchants {
		if strings.TrimSpace(p) == "" {
			problems = append(problems, fmt.Sprintf("food_merchants[%d]: empty pattern", i))
		}
	}
	for i, p := range r.FoodExclusions {
		if strings.TrimSpace(p) == "" {
			problems = append(problems, fmt.Sprintf("food_exclusions[%d]: empty pattern", i))
		}
	}

	if !r.LargeAmount.IsPositive() {
		problems = append(problems, fmt.Sprintf("large_amount %s: must be positive", r.LargeAmount))
	}
	if !r.SmallAmount.IsPositive() {
		problems = append(problems, fmt.Sprintf("small_amount %s: must be positive", r.SmallAmount))
	}
	if r.LargeAmount.LessThanOrEqual(r.SmallAmount) {
		problems = append(problems, fmt.Sprintf(
			"large_amount %s must be greater than small_amount %s", r.LargeAmount, r.SmallAmount))
	}

	if len(problems) > 0 {
		return fmt.Errorf("rule set validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
