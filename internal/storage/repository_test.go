package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"cardsheets/internal/core"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "cardsheets.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad amount %q: %v", s, err)
	}
	return d
}

func TestAppendRowsAndListPending(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rows := []core.Row{
		{Month: "December 2025", Category: core.CategoryFood, Amount: amount(t, "24.10")},
		{Month: "December 2025", Category: core.CategoryPresto, Amount: amount(t, "23.45")},
	}
	if err := repo.AppendRows(ctx, rows); err != nil {
		t.Fatalf("AppendRows() error: %v", err)
	}

	pending, err := repo.ListPending(ctx, 10)
	if err != nil {
		t.Fatalf("ListPending() error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("ListPending() returned %d rows, want 2", len(pending))
	}
	for i, p := range pending {
		if p.Row.Month != rows[i].Month {
			t.Errorf("row %d month = %q, want %q", i, p.Row.Month, rows[i].Month)
		}
		if p.Row.Category != rows[i].Category {
			t.Errorf("row %d category = %q, want %q", i, p.Row.Category, rows[i].Category)
		}
		if !p.Row.Amount.Equal(rows[i].Amount) {
			t.Errorf("row %d amount = %s, want %s", i, p.Row.Amount, rows[i].Amount)
		}
	}
}

func TestAppendRowsEmptyIsNoop(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.AppendRows(ctx, nil); err != nil {
		t.Fatalf("AppendRows(nil) error: %v", err)
	}
	n, err := repo.CountPending(ctx)
	if err != nil {
		t.Fatalf("CountPending() error: %v", err)
	}
	if n != 0 {
		t.Errorf("CountPending() = %d, want 0", n)
	}
}

func TestListPendingRespectsLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	var rows []core.Row
	for i := 0; i < 5; i++ {
		rows = append(rows, core.Row{Month: "December 2025", Category: core.CategoryOther, Amount: amount(t, "1.00")})
	}
	if err := repo.AppendRows(ctx, rows); err != nil {
		t.Fatalf("AppendRows() error: %v", err)
	}

	pending, err := repo.ListPending(ctx, 3)
	if err != nil {
		t.Fatalf("ListPending() error: %v", err)
	}
	if len(pending) != 3 {
		t.Errorf("ListPending(limit=3) returned %d rows, want 3", len(pending))
	}
}

func TestMarkSyncedExcludesFromPending(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rows := []core.Row{
		{Month: "November 2025", Category: core.CategoryGroceries, Amount: amount(t, "6.50")},
		{Month: "December 2025", Category: core.CategorySchool, Amount: amount(t, "350.00")},
		{Month: "December 2025", Category: core.CategoryOther, Amount: amount(t, "48.00")},
	}
	if err := repo.AppendRows(ctx, rows); err != nil {
		t.Fatalf("AppendRows() error: %v", err)
	}

	pending, err := repo.ListPending(ctx, 10)
	if err != nil {
		t.Fatalf("ListPending() error: %v", err)
	}
	if err := repo.MarkSynced(ctx, []int64{pending[0].ID, pending[1].ID}); err != nil {
		t.Fatalf("MarkSynced() error: %v", err)
	}

	remaining, err := repo.ListPending(ctx, 10)
	if err != nil {
		t.Fatalf("ListPending() after sync error: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("ListPending() after sync returned %d rows, want 1", len(remaining))
	}
	if remaining[0].Row.Category != core.CategoryOther {
		t.Errorf("remaining row category = %q, want %q", remaining[0].Row.Category, core.CategoryOther)
	}

	n, err := repo.CountPending(ctx)
	if err != nil {
		t.Fatalf("CountPending() error: %v", err)
	}
	if n != 1 {
		t.Errorf("CountPending() = %d, want 1", n)
	}
}

func TestMarkSyncedEmptyIsNoop(t *testing.T) {
	repo := newTestRepository(t)
	if err := repo.MarkSynced(context.Background(), nil); err != nil {
		t.Errorf("MarkSynced(nil) error: %v", err)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cardsheets.db")
	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("first open error: %v", err)
	}
	repo.Close()

	repo, err = NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("second open error: %v", err)
	}
	repo.Close()
}
