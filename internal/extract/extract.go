// Package extract turns extracted statement text into a stream of
// transaction records. It is best-effort by design: statement layouts vary
// between pages, so lines that do not match the expected pattern are
// dropped instead of failing the run. The only fatal condition is a
// document with no recognizable transaction listing at all.
package extract

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cardsheets/internal/core"
)

// ErrNoTransactionRegion is returned when not a single line of the input
// looks like a transaction: an empty or wholly unrecognized document.
var ErrNoTransactionRegion = errors.New("no transaction listing found in statement text")

var (
	// Transaction lines start with a numeric date: MM/DD, MM/DD/YY, or
	// MM/DD/YYYY.
	datePattern = regexp.MustCompile(`^\s*(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)

	// The amount is the last column on the line. A trailing sign marks a
	// credit; ParseAmount rejects it and the line is dropped.
	amountPattern = regexp.MustCompile(`(-?\$?-?[\d,]+\.\d{2})\s*$`)
)

// Scanner reads transaction records from statement text one at a time,
// in the style of bufio.Scanner:
//
//	sc := extract.NewScanner(r, period)
//	for sc.Scan() {
//	    tx := sc.Transaction()
//	    ...
//	}
//	if err := sc.Err(); err != nil { ... }
//
// A Scanner is single-pass; to restart, build a new one over the same
// input. It is not safe for concurrent use.
type Scanner struct {
	sc      *bufio.Scanner
	period  core.Period
	tx      core.Transaction
	located bool
	dropped int
	done    bool
	err     error
}

// NewScanner returns a Scanner over the statement text in r. The period is
// the statement month, used to resolve years for MM/DD dates.
func NewScanner(r io.Reader, period core.Period) *Scanner {
	return &Scanner{sc: bufio.NewScanner(r), period: period}
}

// Scan advances to the next parsable transaction line. It returns false at
// end of input or on a read error; Err tells the two apart.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	for s.sc.Scan() {
		line := s.sc.Text()
		dm := datePattern.FindStringSubmatch(line)
		if dm == nil {
			// Header, summary, legal text, or a page furniture line.
			continue
		}
		s.located = true
		tx, ok := s.parseLine(line, dm)
		if !ok {
			s.dropped++
			slog.Debug("Dropped unparsable transaction line", "line", strings.TrimSpace(line))
			continue
		}
		s.tx = tx
		return true
	}
	s.done = true
	if err := s.sc.Err(); err != nil {
		s.err = fmt.Errorf("read statement text: %w", err)
	} else if !s.located {
		s.err = ErrNoTransactionRegion
	}
	return false
}

// Transaction returns the record produced by the last successful Scan.
func (s *Scanner) Transaction() core.Transaction {
	return s.tx
}

// Err returns the first fatal error encountered. Per-line parse failures
// are not errors; see Dropped.
func (s *Scanner) Err() error {
	return s.err
}

// Dropped reports how many date-bearing lines were discarded so far.
func (s *Scanner) Dropped() int {
	return s.dropped
}

func (s *Scanner) parseLine(line string, dateMatch []string) (core.Transaction, bool) {
	month, err := strconv.Atoi(dateMatch[1])
	if err != nil || month < 1 || month > 12 {
		return core.Transaction{}, false
	}
	day, err := strconv.Atoi(dateMatch[2])
	if err != nil || day < 1 || day > 31 {
		return core.Transaction{}, false
	}

	rest := line[len(dateMatch[0]):]
	am := amountPattern.FindStringSubmatchIndex(rest)
	if am == nil {
		return core.Transaction{}, false
	}
	amount, err := core.ParseAmount(rest[am[2]:am[3]])
	if err != nil {
		// Credits and foreign-currency oddities end up here.
		return core.Transaction{}, false
	}

	desc := strings.TrimSpace(rest[:am[0]])
	if desc == "" {
		return core.Transaction{}, false
	}

	var date core.Date
	if dateMatch[3] != "" {
		year, err := strconv.Atoi(dateMatch[3])
		if err != nil {
			return core.Transaction{}, false
		}
		if year < 100 {
			year += 2000
		}
		date = core.NewDate(year, time.Month(month), day)
	} else {
		date = s.period.DateFor(time.Month(month), day)
	}

	tx := core.Transaction{Date: date, Description: desc, Amount: amount}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, false
	}
	return tx, true
}
