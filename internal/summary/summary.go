// Package summary folds classification verdicts into per-category totals
// for one statement period and shapes them into the row sequence handed to
// the spreadsheet writer.
package summary

import (
	"github.com/shopspring/decimal"

	"cardsheets/internal/core"
)

// Totals accumulates per-category amounts for a single run. One instance
// per statement; the zero value is not usable, call NewTotals.
type Totals struct {
	byCategory map[core.Category]decimal.Decimal
}

// NewTotals returns totals initialized to zero for every category.
func NewTotals() *Totals {
	byCategory := make(map[core.Category]decimal.Decimal, len(core.Categories()))
	for _, c := range core.Categories() {
		byCategory[c] = decimal.Zero
	}
	return &Totals{byCategory: byCategory}
}

// Add applies one verdict. Ignored verdicts contribute nothing.
func (t *Totals) Add(v core.Verdict, amount decimal.Decimal) {
	cat, ok := v.Category()
	if !ok {
		return
	}
	t.byCategory[cat] = t.byCategory[cat].Add(amount)
}

// Merge folds another set of totals into this one. Used when several
// statements for the same period are processed in one run.
func (t *Totals) Merge(other *Totals) {
	for _, c := range core.Categories() {
		t.byCategory[c] = t.byCategory[c].Add(other.byCategory[c])
	}
}

// Get returns the accumulated total for one category.
func (t *Totals) Get(c core.Category) decimal.Decimal {
	return t.byCategory[c]
}

// Sum returns the grand total across all categories. It equals the sum of
// the amounts of every non-ignored transaction added so far, exactly.
func (t *Totals) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range core.Categories() {
		sum = sum.Add(t.byCategory[c])
	}
	return sum
}

// Rows renders the non-zero totals as output rows for the given period, in
// category declaration order. Categories that accumulated nothing are
// suppressed. The result is deterministic for identical inputs.
func (t *Totals) Rows(period core.Period) []core.Row {
	month := period.Label()
	rows := make([]core.Row, 0, len(t.byCategory))
	for _, c := range core.Categories() {
		amount := t.byCategory[c]
		if amount.IsZero() {
			continue
		}
		rows = append(rows, core.Row{Month: month, Category: c, Amount: amount})
	}
	return rows
}
