package backend

import (
	"context"
	"fmt"
	"log/slog"

	appcfg "cardsheets/internal/config"
	"cardsheets/internal/sheets"
	gsheet "cardsheets/internal/sheets/google"
	"cardsheets/internal/sheets/memory"
	"cardsheets/internal/storage"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateWriter(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	var (
		result *Result
		err    error
	)
	switch config.Type {
	case SheetsBackend:
		result, err = f.createSheetsWriter(ctx, config)
	case SQLiteBackend:
		result, err = f.createSQLiteWriter(config)
	case MemoryBackend:
		result, err = f.createMemoryWriter()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if err := verifyWriter(ctx, result.Writer); err != nil {
		if result.Cleanup != nil {
			result.Cleanup()
		}
		return nil, err
	}
	return result, nil
}

// verifyWriter checks destination reachability before the first append,
// for writers that support it. The sheets client reads the header row
// here, so a wrong spreadsheet ID or unshared sheet fails fast.
func verifyWriter(ctx context.Context, w sheets.RowWriter) error {
	p, ok := w.(sheets.Pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("verify writer destination: %w", err)
	}
	return nil
}

func (f *DefaultFactory) createSheetsWriter(ctx context.Context, config Config) (*Result, error) {
	cli, err := gsheet.NewClient(ctx, gsheet.Config{
		SpreadsheetID:   config.GoogleSpreadsheetID,
		SheetName:       config.GoogleSheetName,
		CredentialsJSON: config.GoogleServiceAccountJSON,
		CredentialsFile: config.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets writer",
		"spreadsheet_id", config.GoogleSpreadsheetID,
		"sheet_name", config.GoogleSheetName)

	return &Result{Writer: cli}, nil
}

func (f *DefaultFactory) createSQLiteWriter(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite writer", "db_path", config.SQLiteDBPath)

	return &Result{Writer: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createMemoryWriter() (*Result, error) {
	f.logger.Info("Initialized in-memory writer")
	return &Result{Writer: memory.New()}, nil
}

// ConfigFromAppConfig maps application configuration onto backend config.
func ConfigFromAppConfig(cfg *appcfg.Config) Config {
	return Config{
		Type:                     Type(cfg.WriterBackend),
		SQLiteDBPath:             cfg.SQLiteDBPath,
		GoogleSpreadsheetID:      cfg.GoogleSpreadsheetID,
		GoogleSheetName:          cfg.GoogleSheetName,
		GoogleServiceAccountJSON: cfg.GoogleServiceAccountJSON,
		GoogleServiceAccountFile: cfg.GoogleServiceAccountFile,
	}
}
