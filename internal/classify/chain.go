// Package classify turns one extracted transaction into a classification
// verdict by running an ordered chain of rule stages. The chain is pure:
// the same description, amount, and date always produce the same verdict,
// and no stage can fail.
package classify

import (
	"strings"

	"github.com/shopspring/decimal"

	"cardsheets/internal/core"
)

// Chain applies the rule stages in fixed priority order:
//
//  1. ignore patterns (payments, fees, interest)
//  2. merchant overrides, first declared match wins
//  3. food-merchant fragments, split weekday/weekend
//  4. amount thresholds
//
// The first matching stage wins; stage 4 always matches, so every
// non-ignored transaction gets exactly one category.
type Chain struct {
	ignore         []string
	overrides      []Override
	foodMerchants  []string
	foodExclusions []string
	large          decimal.Decimal
	small          decimal.Decimal
}

// NewChain builds a chain from a validated rule set. All patterns are
// normalized once here with the same function applied to descriptions, so
// punctuation in configured patterns ("WAL-MART", "CU* RM FINANCE") still
// matches normalized descriptions.
func NewChain(rules RuleSet) *Chain {
	c := &Chain{
		ignore:         make([]string, 0, len(rules.Ignore)),
		overrides:      make([]Override, 0, len(rules.Overrides)),
		foodMerchants:  make([]string, 0, len(rules.FoodMerchants)),
		foodExclusions: make([]string, 0, len(rules.FoodExclusions)),
		large:          rules.LargeAmount,
		small:          rules.SmallAmount,
	}
	for _, p := range rules.Ignore {
		c.ignore = append(c.ignore, Normalize(p))
	}
	for _, o := range rules.Overrides {
		c.overrides = append(c.overrides, Override{Match: Normalize(o.Match), Category: o.Category})
	}
	for _, p := range rules.FoodMerchants {
		c.foodMerchants = append(c.foodMerchants, Normalize(p))
	}
	for _, p := range rules.FoodExclusions {
		c.foodExclusions = append(c.foodExclusions, Normalize(p))
	}
	return c
}

// Classify runs the chain over one transaction.
func (c *Chain) Classify(t core.Transaction) core.Verdict {
	desc := Normalize(t.Description)

	if c.shouldIgnore(desc) {
		return core.Ignored()
	}

	if cat, ok := c.override(desc); ok {
		return core.Categorized(cat)
	}

	if c.isFoodMerchant(desc) {
		if t.Date.IsWeekday() {
			return core.Categorized(core.CategorySchoolMeals)
		}
		return core.Categorized(core.CategoryFood)
	}

	switch {
	case t.Amount.GreaterThanOrEqual(c.large):
		return core.Categorized(core.CategorySchool)
	case t.Amount.LessThanOrEqual(c.small):
		return core.Categorized(core.CategoryGroceries)
	default:
		return core.Categorized(core.CategoryOther)
	}
}

func (c *Chain) shouldIgnore(desc string) bool {
	for _, p := range c.ignore {
		if strings.Contains(desc, p) {
			return true
		}
	}
	return false
}

func (c *Chain) override(desc string) (core.Category, bool) {
	for _, o := range c.overrides {
		if strings.Contains(desc, o.Match) {
			return o.Category, true
		}
	}
	return "", false
}

func (c *Chain) isFoodMerchant(desc string) bool {
	for _, p := range c.foodExclusions {
		if strings.Contains(desc, p) {
			return false
		}
	}
	for _, p := range c.foodMerchants {
		if strings.Contains(desc, p) {
			return true
		}
	}
	return false
}
