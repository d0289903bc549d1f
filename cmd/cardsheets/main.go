package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"cardsheets/internal/amqp"
	"cardsheets/internal/backend"
	"cardsheets/internal/classify"
	"cardsheets/internal/cli"
	"cardsheets/internal/core"
	"cardsheets/internal/pipeline"
	"cardsheets/internal/summary"
)

type statementList []string

func (s *statementList) String() string {
	return strings.Join(*s, ", ")
}

func (s *statementList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func main() {
	var statements statementList
	flag.Var(&statements, "statement", "path to a statement text file (repeatable)")
	month := flag.String("month", "", "statement month, e.g. \"December 2025\"")
	rulesPath := flag.String("rules", "", "path to a rules YAML file (overrides RULES_FILE)")
	dryRun := flag.Bool("dry-run", false, "print the summary without appending rows")
	enqueue := flag.Bool("enqueue", false, "publish statement jobs to the queue instead of processing locally")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(*debug)

	if len(statements) == 0 {
		fmt.Fprintln(os.Stderr, "at least one -statement is required")
		flag.Usage()
		os.Exit(2)
	}
	if *month == "" {
		fmt.Fprintln(os.Stderr, "-month is required")
		flag.Usage()
		os.Exit(2)
	}

	period, err := core.ParsePeriod(*month)
	if err != nil {
		logger.Error("Invalid month", "error", err, "month", *month)
		os.Exit(1)
	}

	cfg := cli.LoadAndValidateConfigFor(logger, *rulesPath, *dryRun)

	if *enqueue {
		enqueueJobs(logger, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, statements, *month)
		return
	}

	rules := cli.LoadRules(logger, cfg.RulesFile)
	chain := classify.NewChain(rules)

	ctx := context.Background()
	results := make([]*pipeline.Result, len(statements))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range statements {
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open statement %q: %w", path, err)
			}
			defer f.Close()

			result, err := pipeline.New(chain, nil).Run(gctx, f, period)
			if err != nil {
				return fmt.Errorf("process statement %q: %w", path, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Statement processing failed", "error", err)
		os.Exit(1)
	}

	merged := summary.NewTotals()
	extractedTotal := decimal.Zero
	var extracted, ignored, dropped int
	for _, r := range results {
		merged.Merge(r.Totals)
		extractedTotal = extractedTotal.Add(r.ExtractedTotal)
		extracted += r.Extracted
		ignored += r.Ignored
		dropped += r.Dropped
	}
	rows := merged.Rows(period)

	printSummary(os.Stdout, rows, merged, extractedTotal, extracted, ignored, dropped)

	if *dryRun {
		logger.Info("Dry run, no rows appended", "rows", len(rows))
		return
	}
	if len(rows) == 0 {
		logger.Info("No rows to append")
		return
	}

	result, err := backend.NewFactory(logger).CreateWriter(ctx, backend.ConfigFromAppConfig(cfg))
	if err != nil {
		logger.Error("Failed to initialize writer backend", "error", err, "backend", cfg.WriterBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	if err := result.Writer.AppendRows(ctx, rows); err != nil {
		logger.Error("Failed to append rows", "error", err)
		os.Exit(1)
	}
	logger.Info("Rows appended", "rows", len(rows), "month", *month, "backend", cfg.WriterBackend)
}

func enqueueJobs(logger *slog.Logger, url, exchange, queue string, statements []string, month string) {
	client, err := amqp.NewClient(url, exchange, queue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx := context.Background()
	for _, path := range statements {
		if err := client.PublishStatementJob(ctx, path, month); err != nil {
			logger.Error("Failed to publish statement job", "error", err, "statement", path)
			os.Exit(1)
		}
	}
	logger.Info("Statement jobs published", "jobs", len(statements), "queue", queue)
}

func printSummary(out io.Writer, rows []core.Row, totals *summary.Totals, extractedTotal decimal.Decimal, extracted, ignored, dropped int) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tCATEGORY\tAMOUNT")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.Month, row.Category, core.FormatAmount(row.Amount))
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d transactions extracted, %d ignored, %d dropped\n", extracted, ignored, dropped)
	fmt.Fprintf(out, "statement total %s, classified total %s\n",
		core.FormatAmount(extractedTotal), core.FormatAmount(totals.Sum()))
}
