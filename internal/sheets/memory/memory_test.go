package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"cardsheets/internal/core"
)

func TestStoreAppendRows(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := []core.Row{
		{Month: "December 2025", Category: core.CategoryPresto, Amount: decimal.RequireFromString("23.45")},
	}
	second := []core.Row{
		{Month: "December 2025", Category: core.CategoryFood, Amount: decimal.RequireFromString("24.10")},
		{Month: "December 2025", Category: core.CategoryOther, Amount: decimal.RequireFromString("48.00")},
	}

	if err := s.AppendRows(ctx, first); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}
	if err := s.AppendRows(ctx, second); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}

	rows := s.Rows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].Category != core.CategoryPresto || rows[1].Category != core.CategoryFood {
		t.Errorf("rows not in arrival order: %+v", rows)
	}

	// Append-only: re-appending the same month duplicates rows.
	if err := s.AppendRows(ctx, first); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}
	if got := len(s.Rows()); got != 4 {
		t.Errorf("got %d rows after duplicate append, want 4", got)
	}

	// Rows returns a copy.
	rows[0].Month = "mutated"
	if s.Rows()[0].Month == "mutated" {
		t.Error("Rows() exposed internal slice")
	}
}

func TestStorePing(t *testing.T) {
	if err := New().Ping(context.Background()); err != nil {
		t.Errorf("Ping() = %v, want nil", err)
	}
}
