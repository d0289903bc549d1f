// Package storage keeps category-total rows that could not be appended to
// the spreadsheet yet. It is an outbox, not an archive: rows are written
// when the Sheets append fails or when running offline, and marked synced
// once a flush delivers them. No individual transactions are ever stored.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"cardsheets/internal/core"
)

type SQLiteRepository struct {
	db *sql.DB
}

// PendingRow is one outbox entry awaiting delivery.
type PendingRow struct {
	ID  int64
	Row core.Row
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AppendRows implements sheets.RowWriter by queueing the rows in the
// outbox. Amounts are stored as integer cents; statement amounts always
// have exactly two decimal places, so the conversion is exact.
func (r *SQLiteRepository) AppendRows(ctx context.Context, rows []core.Row) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	const q = `INSERT INTO pending_rows (month, category, amount_cents) VALUES (?, ?, ?)`
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, q, row.Month, string(row.Category), core.Cents(row.Amount)); err != nil {
			return fmt.Errorf("insert pending row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit pending rows: %w", err)
	}

	slog.InfoContext(ctx, "Rows queued in outbox", "rows", len(rows))
	return nil
}

// ListPending returns up to limit unsynced rows, oldest first.
func (r *SQLiteRepository) ListPending(ctx context.Context, limit int) ([]PendingRow, error) {
	const q = `SELECT id, month, category, amount_cents
FROM pending_rows
WHERE synced_at IS NULL
ORDER BY id
LIMIT ?`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending rows: %w", err)
	}
	defer rows.Close()

	var out []PendingRow
	for rows.Next() {
		var (
			p        PendingRow
			category string
			cents    int64
		)
		if err := rows.Scan(&p.ID, &p.Row.Month, &category, &cents); err != nil {
			return nil, fmt.Errorf("scan pending row: %w", err)
		}
		p.Row.Category = core.Category(category)
		p.Row.Amount = core.FromCents(cents)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending rows: %w", err)
	}
	return out, nil
}

// MarkSynced stamps the given outbox entries as delivered.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	q := fmt.Sprintf(`UPDATE pending_rows SET synced_at = datetime('now') WHERE id IN (%s)`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("mark rows synced: %w", err)
	}
	return nil
}

// CountPending returns the number of rows still awaiting delivery.
func (r *SQLiteRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_rows WHERE synced_at IS NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending rows: %w", err)
	}
	return n, nil
}
