package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxAmount bounds every budget and expense amount so derived limits and
// percentages stay within int64.
var MaxAmount = decimal.New(1, 12)

// ExpenseRecord is a single logged expense. It has no ID; the ledger
// identifies records by position.
type ExpenseRecord struct {
	Amount   decimal.Decimal `json:"amount"`
	Category Category        `json:"category"`
	Date     string          `json:"date"`
	Note     string          `json:"note"`
}

// ParseDate parses the record date as a calendar date
func (e ExpenseRecord) ParseDate() (time.Time, error) {
	return time.Parse(DateLayout, e.Date)
}

// CategoryTotals maps a category to the amount spent in it.
// Categories with no spend are absent.
type CategoryTotals map[Category]decimal.Decimal

// Sum returns the total across all categories
func (t CategoryTotals) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range t {
		total = total.Add(amount)
	}
	return total
}

// DatePredicate selects records for aggregation
type DatePredicate func(date time.Time) bool
