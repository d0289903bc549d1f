package sheets

import (
	"context"

	"cardsheets/internal/core"
)

// Ports for outbound adapters.
type (
	// RowWriter appends category-total rows for a statement period. The
	// contract is append-only: implementations never update or deduplicate
	// existing rows, so re-running a month intentionally produces
	// duplicate rows downstream.
	RowWriter interface {
		AppendRows(ctx context.Context, rows []core.Row) error
	}

	// Pinger verifies that the destination is reachable and writable
	// before a run commits to it.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)
