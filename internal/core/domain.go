package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is one label from the fixed personal-spending taxonomy.
// The set is closed: classification always resolves to one of these.
type Category string

const (
	CategorySchoolMeals Category = "school_meals"
	CategoryFood        Category = "food"
	CategoryGroceries   Category = "groceries"
	CategoryPresto      Category = "presto"
	CategorySchool      Category = "school"
	CategoryPersonal    Category = "personal"
	CategoryMomStuff    Category = "mom_stuff"
	CategoryOther       Category = "other"
)

// Categories returns all categories in declaration order. Output rows are
// emitted in this order, so it must stay stable.
func Categories() []Category {
	return []Category{
		CategorySchoolMeals,
		CategoryFood,
		CategoryGroceries,
		CategoryPresto,
		CategorySchool,
		CategoryPersonal,
		CategoryMomStuff,
		CategoryOther,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategorySchoolMeals, CategoryFood, CategoryGroceries, CategoryPresto,
		CategorySchool, CategoryPersonal, CategoryMomStuff, CategoryOther:
		return true
	}
	return false
}

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPeriod   = errors.New("invalid statement period")
)

type (
	Date struct {
		time.Time
	}

	// Transaction is one purchase entry as printed on the statement.
	// Immutable once created by the extractor; Amount is always positive.
	Transaction struct {
		Date        Date
		Description string
		Amount      decimal.Decimal
	}

	// Period identifies the statement month, e.g. December 2025. It drives
	// year inference for MM/DD transaction dates and labels output rows.
	Period struct {
		Year  int
		Month time.Month
	}

	// Row is one output triple handed to the spreadsheet writer.
	Row struct {
		Month    string
		Category Category
		Amount   decimal.Decimal
	}
)

// NewDate creates a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// IsWeekday reports whether the date falls on Monday through Friday.
func (d Date) IsWeekday() bool {
	wd := d.Time.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// ParsePeriod parses a statement month label like "December 2025".
func ParsePeriod(label string) (Period, error) {
	t, err := time.Parse("January 2006", strings.TrimSpace(label))
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, label)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// Label formats the period the way it appears in output rows.
func (p Period) Label() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// DateFor resolves a month/day pair from a statement line against the
// statement period. Transaction months later than the period month belong
// to the previous year (a December charge on a January statement).
func (p Period) DateFor(month time.Month, day int) Date {
	year := p.Year
	if month > p.Month {
		year--
	}
	return NewDate(year, month, day)
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return errors.New("transaction date cannot be zero")
	}
	if strings.TrimSpace(t.Description) == "" {
		return errors.New("empty transaction description")
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
