package core

// Verdict is the outcome of classifying one transaction: either ignored or
// assigned exactly one category. The zero value is not meaningful; use
// Ignored or Categorized.
type Verdict struct {
	ignored  bool
	category Category
}

// Ignored returns the verdict for transactions excluded from every total
// (payments, fees, interest).
func Ignored() Verdict {
	return Verdict{ignored: true}
}

// Categorized returns the verdict assigning c to the transaction.
func Categorized(c Category) Verdict {
	return Verdict{category: c}
}

// IsIgnored reports whether the transaction was excluded.
func (v Verdict) IsIgnored() bool {
	return v.ignored
}

// Category returns the assigned category and true, or ("", false) for an
// ignored verdict.
func (v Verdict) Category() (Category, bool) {
	if v.ignored {
		return "", false
	}
	return v.category, true
}
