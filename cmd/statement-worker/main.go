package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardsheets/internal/amqp"
	"cardsheets/internal/backend"
	"cardsheets/internal/classify"
	"cardsheets/internal/cli"
	"cardsheets/internal/pipeline"
	"cardsheets/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("DEBUG") != "")

	logger.Info("Starting statement-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	rules := cli.LoadRules(logger, cfg.RulesFile)

	// Outbox always lives in SQLite, whatever the writer backend is.
	outbox := cli.InitOutbox(logger, cfg.SQLiteDBPath)
	defer outbox.Close()

	result, err := backend.NewFactory(logger).CreateWriter(context.Background(), backend.ConfigFromAppConfig(cfg))
	if err != nil {
		logger.Error("Failed to initialize writer backend", "error", err, "backend", cfg.WriterBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := pipeline.New(classify.NewChain(rules), nil)
	w := worker.NewStatementWorker(p, result.Writer, outbox, cfg.FlushBatchSize)

	// With the sqlite backend the writer and the outbox are the same
	// database, so flushing would only move rows onto themselves.
	flushEnabled := cfg.WriterBackend != "sqlite"

	if flushEnabled {
		// Drain rows parked while the writer was unreachable.
		logger.Info("Performing startup flush...")
		if err := w.StartupFlush(ctx); err != nil {
			logger.Error("Startup flush failed", "error", err)
			// Don't exit - the periodic flush will retry
		}
	}

	go func() {
		err := amqpClient.ConsumeStatementJobs(ctx, func(msg *amqp.StatementJobMessage) error {
			return w.HandleStatementJob(ctx, msg)
		})
		if err != nil && err != context.Canceled {
			logger.Error("Message consumption failed", "error", err)
		}
		cancel()
	}()

	if flushEnabled {
		ticker := time.NewTicker(cfg.FlushInterval)
		defer ticker.Stop()

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := w.FlushPending(ctx); err != nil {
						logger.Error("Periodic flush failed", "error", err)
					}
				}
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down worker...")
	cancel()

	select {
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown timeout reached")
	case <-time.After(5 * time.Second):
		logger.Info("Worker shutdown complete")
	}
}
