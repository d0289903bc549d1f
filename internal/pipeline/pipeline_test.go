package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cardsheets/internal/classify"
	"cardsheets/internal/core"
	"cardsheets/internal/extract"
)

var december2025 = core.Period{Year: 2025, Month: time.December}

// 12/01 is a Monday in December 2025, 12/06 a Saturday.
const statementText = `
STATEMENT OF ACCOUNT - December 2025

12/01  TIM HORTONS #3456 HAMILTON ON        4.58
12/02  PAYMENT - THANK YOU                -250.00
12/03  PRESTO FARE/AUTOLD TORONTO ON       23.45
12/05  SOME ELECTRONICS STORE             350.00
12/06  PIZZA NOVA 587 HAMILTON ON          24.10
12/08  CORNER VARIETY                       6.50
12/09  UNREMARKABLE MERCHANT               48.00

Total purchases 456.63
`

func newPipeline() *Pipeline {
	return New(classify.NewChain(classify.DefaultRuleSet()), nil)
}

func TestPipelineRun(t *testing.T) {
	res, err := newPipeline().Run(context.Background(), strings.NewReader(statementText), december2025)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if res.Extracted != 6 {
		t.Errorf("Extracted = %d, want 6", res.Extracted)
	}
	if res.Ignored != 0 {
		t.Errorf("Ignored = %d, want 0", res.Ignored)
	}
	// The payment credit line is unparsable as a purchase.
	if res.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", res.Dropped)
	}

	want := map[core.Category]string{
		core.CategorySchoolMeals: "4.58",   // Tim Hortons on a Monday
		core.CategoryFood:        "24.10",  // pizza on a Saturday
		core.CategoryPresto:      "23.45",  // override
		core.CategorySchool:      "350.00", // large fallback
		core.CategoryGroceries:   "6.50",   // small fallback
		core.CategoryOther:       "48.00",  // mid-range fallback
	}
	for cat, amount := range want {
		if got := res.Totals.Get(cat); !got.Equal(decimal.RequireFromString(amount)) {
			t.Errorf("total[%s] = %s, want %s", cat, got, amount)
		}
	}

	// Conservation: rows sum to the sum of all non-ignored amounts.
	rowSum := decimal.Zero
	for _, row := range res.Rows {
		rowSum = rowSum.Add(row.Amount)
	}
	if !rowSum.Equal(res.Totals.Sum()) {
		t.Errorf("row sum %s != totals sum %s", rowSum, res.Totals.Sum())
	}
	if !rowSum.Equal(res.ExtractedTotal) {
		t.Errorf("row sum %s != extracted total %s with nothing ignored", rowSum, res.ExtractedTotal)
	}
}

func TestPipelineIgnoredExcludedFromTotals(t *testing.T) {
	text := `12/01  TIM HORTONS #3456       4.58
12/02  PURCHASE INTEREST CHARGE    3.21
12/03  ANNUAL FEE                120.00`

	res, err := newPipeline().Run(context.Background(), strings.NewReader(text), december2025)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Ignored != 2 {
		t.Errorf("Ignored = %d, want 2", res.Ignored)
	}
	if got := res.Totals.Sum(); !got.Equal(decimal.RequireFromString("4.58")) {
		t.Errorf("totals sum = %s, want 4.58", got)
	}
	if !res.ExtractedTotal.Equal(decimal.RequireFromString("127.79")) {
		t.Errorf("extracted total = %s, want 127.79", res.ExtractedTotal)
	}
}

func TestPipelineDeterminism(t *testing.T) {
	run := func() []core.Row {
		res, err := newPipeline().Run(context.Background(), strings.NewReader(statementText), december2025)
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		return res.Rows
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] && !(a[i].Month == b[i].Month && a[i].Category == b[i].Category && a[i].Amount.Equal(b[i].Amount)) {
			t.Errorf("rows[%d] differ between identical runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPipelineFailsWithoutTransactionRegion(t *testing.T) {
	_, err := newPipeline().Run(context.Background(), strings.NewReader("nothing here"), december2025)
	if !errors.Is(err, extract.ErrNoTransactionRegion) {
		t.Errorf("Run() error = %v, want ErrNoTransactionRegion", err)
	}
}
