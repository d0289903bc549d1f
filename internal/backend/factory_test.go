package backend

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"cardsheets/internal/core"
)

func TestTypeIsValid(t *testing.T) {
	tests := []struct {
		typ   Type
		valid bool
	}{
		{SheetsBackend, true},
		{SQLiteBackend, true},
		{MemoryBackend, true},
		{Type("postgres"), false},
		{Type(""), false},
	}
	for _, tt := range tests {
		if got := tt.typ.IsValid(); got != tt.valid {
			t.Errorf("Type(%q).IsValid() = %v, want %v", tt.typ, got, tt.valid)
		}
	}
}

func TestCreateWriterInvalidType(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.CreateWriter(context.Background(), Config{Type: "postgres"}); err == nil {
		t.Error("CreateWriter() = nil, want error for invalid type")
	}
}

func TestCreateMemoryWriter(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.CreateWriter(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("CreateWriter() error: %v", err)
	}
	if result.Writer == nil {
		t.Error("memory writer is nil")
	}
	if result.Cleanup != nil {
		t.Error("memory writer should not need cleanup")
	}
}

type unreachableWriter struct{}

func (unreachableWriter) AppendRows(context.Context, []core.Row) error { return nil }
func (unreachableWriter) Ping(context.Context) error {
	return errors.New("spreadsheet not found")
}

type plainWriter struct{}

func (plainWriter) AppendRows(context.Context, []core.Row) error { return nil }

func TestVerifyWriter(t *testing.T) {
	t.Run("fails fast on unreachable destination", func(t *testing.T) {
		err := verifyWriter(context.Background(), unreachableWriter{})
		if err == nil {
			t.Fatal("verifyWriter() = nil, want error when Ping fails")
		}
		if !strings.Contains(err.Error(), "verify writer destination") {
			t.Errorf("verifyWriter() error = %v, want destination verification error", err)
		}
	})

	t.Run("skips writers without a ping", func(t *testing.T) {
		if err := verifyWriter(context.Background(), plainWriter{}); err != nil {
			t.Errorf("verifyWriter() error = %v, want nil for writer without Ping", err)
		}
	})
}

func TestCreateSQLiteWriter(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.CreateWriter(context.Background(), Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "cardsheets.db"),
	})
	if err != nil {
		t.Fatalf("CreateWriter() error: %v", err)
	}
	if result.Writer == nil {
		t.Error("sqlite writer is nil")
	}
	if result.Cleanup == nil {
		t.Fatal("sqlite writer should provide cleanup")
	}
	if err := result.Cleanup(); err != nil {
		t.Errorf("Cleanup() error: %v", err)
	}
}
