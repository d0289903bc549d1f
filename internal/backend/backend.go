// Package backend selects and constructs the row writer the application
// appends category totals to: the Google Sheets client, the SQLite outbox
// or an in-memory store.
package backend

import (
	"context"

	"cardsheets/internal/sheets"
)

type Type string

const (
	SheetsBackend Type = "sheets"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SheetsBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

type CleanupFunc func() error

// Result holds the constructed writer and an optional cleanup function.
type Result struct {
	Writer  sheets.RowWriter
	Cleanup CleanupFunc
}

type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
}

type Factory interface {
	CreateWriter(ctx context.Context, config Config) (*Result, error)
}
