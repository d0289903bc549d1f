// Package pipeline runs the extraction-and-classification pipeline for one
// statement: statement text in, per-category rows out. Each Run builds its
// own totals; a Pipeline holds no cross-run state, so one instance can be
// shared by concurrent runs over different statements.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"cardsheets/internal/classify"
	"cardsheets/internal/core"
	"cardsheets/internal/extract"
	"cardsheets/internal/log"
	"cardsheets/internal/summary"
)

// Result is the outcome of one statement run.
type Result struct {
	Period core.Period
	Totals *summary.Totals
	Rows   []core.Row

	// Extracted counts every transaction the extractor produced, Ignored
	// the subset excluded by the ignore stage, Dropped the statement lines
	// discarded as unparsable.
	Extracted int
	Ignored   int
	Dropped   int

	// ExtractedTotal sums every extracted amount, ignored or not. The
	// classified share is Totals.Sum(); the difference is the ignored
	// share, kept visible for reconciliation against the statement.
	ExtractedTotal decimal.Decimal
}

// Pipeline binds a classification chain to the extractor and aggregator.
type Pipeline struct {
	chain  *classify.Chain
	logger *log.Logger
}

// New returns a pipeline using the given chain. A nil logger gets the
// default configuration.
func New(chain *classify.Chain, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentPipeline)
	}
	return &Pipeline{chain: chain, logger: logger}
}

// Run processes one statement's text for the given period. It either
// returns a complete result or fails atomically when no transaction
// listing can be located; there is no partial result.
func (p *Pipeline) Run(ctx context.Context, r io.Reader, period core.Period) (*Result, error) {
	res := &Result{
		Period:         period,
		Totals:         summary.NewTotals(),
		ExtractedTotal: decimal.Zero,
	}

	sc := extract.NewScanner(r, period)
	for sc.Scan() {
		tx := sc.Transaction()
		res.Extracted++
		res.ExtractedTotal = res.ExtractedTotal.Add(tx.Amount)

		verdict := p.chain.Classify(tx)
		if verdict.IsIgnored() {
			res.Ignored++
			p.logger.DebugContext(ctx, "Transaction ignored",
				log.FieldStatement, tx.Description,
				log.FieldAmount, core.FormatAmount(tx.Amount))
			continue
		}
		res.Totals.Add(verdict, tx.Amount)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("extract transactions: %w", err)
	}
	res.Dropped = sc.Dropped()
	res.Rows = res.Totals.Rows(period)

	p.logger.InfoContext(ctx, "Statement processed",
		log.FieldMonth, period.Label(),
		log.FieldTxCount, res.Extracted,
		log.FieldIgnored, res.Ignored,
		log.FieldDropped, res.Dropped,
		log.FieldRows, len(res.Rows),
		log.FieldAmount, core.FormatAmount(res.Totals.Sum()))

	return res, nil
}
