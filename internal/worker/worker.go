// Package worker consumes statement jobs from the queue, runs the
// extraction pipeline over the statement text and appends the resulting
// category totals to the configured writer. Rows that cannot be delivered
// are parked in the SQLite outbox and flushed later.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"cardsheets/internal/amqp"
	"cardsheets/internal/core"
	"cardsheets/internal/pipeline"
	"cardsheets/internal/sheets"
	"cardsheets/internal/storage"
)

type StatementWorker struct {
	pipeline  *pipeline.Pipeline
	writer    sheets.RowWriter
	outbox    *storage.SQLiteRepository
	batchSize int
}

func NewStatementWorker(p *pipeline.Pipeline, writer sheets.RowWriter, outbox *storage.SQLiteRepository, batchSize int) *StatementWorker {
	return &StatementWorker{
		pipeline:  p,
		writer:    writer,
		outbox:    outbox,
		batchSize: batchSize,
	}
}

// HandleStatementJob processes a single statement job from AMQP.
// A delivery failure to the writer parks the rows in the outbox and the
// job is still considered handled; a flush will retry delivery later.
func (w *StatementWorker) HandleStatementJob(ctx context.Context, msg *amqp.StatementJobMessage) error {
	period, err := core.ParsePeriod(msg.Month)
	if err != nil {
		return fmt.Errorf("parse statement month %q: %w", msg.Month, err)
	}

	f, err := os.Open(msg.TextPath)
	if err != nil {
		return fmt.Errorf("open statement text: %w", err)
	}
	defer f.Close()

	result, err := w.pipeline.Run(ctx, f, period)
	if err != nil {
		return fmt.Errorf("process statement %q: %w", msg.TextPath, err)
	}

	if len(result.Rows) == 0 {
		slog.InfoContext(ctx, "Statement produced no rows", "text_path", msg.TextPath, "month", msg.Month)
		return nil
	}

	if err := w.writer.AppendRows(ctx, result.Rows); err != nil {
		slog.ErrorContext(ctx, "Append failed, parking rows in outbox",
			"error", err,
			"month", msg.Month,
			"rows", len(result.Rows))
		if outboxErr := w.outbox.AppendRows(ctx, result.Rows); outboxErr != nil {
			return fmt.Errorf("park rows in outbox: %w", outboxErr)
		}
		return nil
	}

	slog.InfoContext(ctx, "Statement rows appended",
		"month", msg.Month,
		"rows", len(result.Rows),
		"transactions", result.Extracted)
	return nil
}

// FlushPending delivers one batch of parked rows to the writer.
func (w *StatementWorker) FlushPending(ctx context.Context) error {
	return w.flush(ctx, w.batchSize)
}

// StartupFlush drains parked rows left over from previous runs. It uses a
// larger batch than the periodic flush to recover from longer downtime.
func (w *StatementWorker) StartupFlush(ctx context.Context) error {
	for {
		n, err := w.outbox.CountPending(ctx)
		if err != nil {
			return fmt.Errorf("count pending rows: %w", err)
		}
		if n == 0 {
			slog.InfoContext(ctx, "No pending rows found on startup")
			return nil
		}

		slog.InfoContext(ctx, "Found pending rows on startup, flushing", "pending", n)
		if err := w.flush(ctx, w.batchSize*5); err != nil {
			return err
		}
	}
}

func (w *StatementWorker) flush(ctx context.Context, limit int) error {
	pending, err := w.outbox.ListPending(ctx, limit)
	if err != nil {
		return fmt.Errorf("list pending rows: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	rows := make([]core.Row, len(pending))
	ids := make([]int64, len(pending))
	for i, p := range pending {
		rows[i] = p.Row
		ids[i] = p.ID
	}

	if err := w.writer.AppendRows(ctx, rows); err != nil {
		return fmt.Errorf("flush pending rows: %w", err)
	}
	if err := w.outbox.MarkSynced(ctx, ids); err != nil {
		// Rows were delivered, so failing to stamp them risks duplicates
		// on the next flush. Surface loudly.
		slog.ErrorContext(ctx, "Failed to mark rows synced after delivery", "error", err, "rows", len(ids))
		return fmt.Errorf("mark rows synced: %w", err)
	}

	slog.InfoContext(ctx, "Flushed pending rows", "rows", len(rows))
	return nil
}
