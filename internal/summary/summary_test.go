package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cardsheets/internal/core"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTotalsAddAndSum(t *testing.T) {
	totals := NewTotals()
	totals.Add(core.Categorized(core.CategoryFood), amt("12.50"))
	totals.Add(core.Categorized(core.CategoryFood), amt("7.25"))
	totals.Add(core.Categorized(core.CategoryPresto), amt("23.45"))
	totals.Add(core.Ignored(), amt("500.00"))

	if got := totals.Get(core.CategoryFood); !got.Equal(amt("19.75")) {
		t.Errorf("food total = %s, want 19.75", got)
	}
	if got := totals.Get(core.CategoryPresto); !got.Equal(amt("23.45")) {
		t.Errorf("presto total = %s, want 23.45", got)
	}
	if got := totals.Get(core.CategorySchool); !got.IsZero() {
		t.Errorf("school total = %s, want 0", got)
	}

	// Conservation: ignored amounts contribute nothing.
	if got := totals.Sum(); !got.Equal(amt("43.20")) {
		t.Errorf("Sum() = %s, want 43.20", got)
	}
}

func TestTotalsRows(t *testing.T) {
	period := core.Period{Year: 2025, Month: time.December}

	totals := NewTotals()
	totals.Add(core.Categorized(core.CategoryOther), amt("55.00"))
	totals.Add(core.Categorized(core.CategorySchoolMeals), amt("4.58"))
	totals.Add(core.Categorized(core.CategoryGroceries), amt("60.35"))

	rows := totals.Rows(period)

	// Declaration order, zero categories suppressed.
	wantOrder := []core.Category{
		core.CategorySchoolMeals,
		core.CategoryGroceries,
		core.CategoryOther,
	}
	if len(rows) != len(wantOrder) {
		t.Fatalf("got %d rows, want %d: %+v", len(rows), len(wantOrder), rows)
	}
	for i, c := range wantOrder {
		if rows[i].Category != c {
			t.Errorf("rows[%d].Category = %q, want %q", i, rows[i].Category, c)
		}
		if rows[i].Month != "December 2025" {
			t.Errorf("rows[%d].Month = %q, want %q", i, rows[i].Month, "December 2025")
		}
	}
}

func TestTotalsMerge(t *testing.T) {
	a := NewTotals()
	a.Add(core.Categorized(core.CategoryFood), amt("10.00"))
	a.Add(core.Categorized(core.CategoryPresto), amt("23.45"))

	b := NewTotals()
	b.Add(core.Categorized(core.CategoryFood), amt("5.50"))
	b.Add(core.Categorized(core.CategorySchool), amt("150.00"))

	a.Merge(b)

	if got := a.Get(core.CategoryFood); !got.Equal(amt("15.50")) {
		t.Errorf("merged food total = %s, want 15.50", got)
	}
	if got := a.Get(core.CategoryPresto); !got.Equal(amt("23.45")) {
		t.Errorf("merged presto total = %s, want 23.45", got)
	}
	if got := a.Get(core.CategorySchool); !got.Equal(amt("150.00")) {
		t.Errorf("merged school total = %s, want 150.00", got)
	}
	if got := a.Sum(); !got.Equal(amt("188.95")) {
		t.Errorf("merged Sum() = %s, want 188.95", got)
	}
}

func TestTotalsRowsEmpty(t *testing.T) {
	rows := NewTotals().Rows(core.Period{Year: 2025, Month: time.December})
	if len(rows) != 0 {
		t.Errorf("empty totals produced %d rows, want 0", len(rows))
	}
}

func TestTotalsRowsDeterministic(t *testing.T) {
	build := func() []core.Row {
		totals := NewTotals()
		totals.Add(core.Categorized(core.CategoryFood), amt("1.01"))
		totals.Add(core.Categorized(core.CategorySchool), amt("150.00"))
		totals.Add(core.Categorized(core.CategoryPresto), amt("23.45"))
		return totals.Rows(core.Period{Year: 2025, Month: time.December})
	}

	a, b := build(), build()
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Month != b[i].Month || a[i].Category != b[i].Category || !a[i].Amount.Equal(b[i].Amount) {
			t.Errorf("rows[%d] differ between identical runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
