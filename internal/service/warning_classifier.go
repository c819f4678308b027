package service

import (
	"math"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred    = decimal.NewFromInt(100)
	maxPercent = decimal.NewFromInt(math.MaxInt32)
)

// WarningClassifier flags categories whose spend is at or near their limit
type WarningClassifier struct {
	threshold decimal.Decimal
}

// NewWarningClassifier creates a classifier using threshold as the nearing ratio
func NewWarningClassifier(threshold decimal.Decimal) *WarningClassifier {
	return &WarningClassifier{threshold: threshold}
}

// Classify walks limits in order and emits an entry for every category at
// or above threshold*limit. Categories below it produce nothing, so an empty
// result means either no warnings or no active plan.
func (w *WarningClassifier) Classify(limits []domain.CategoryLimit, spending domain.CategoryTotals) []domain.WarningEntry {
	entries := make([]domain.WarningEntry, 0)
	for _, limit := range limits {
		spent, ok := spending[limit.Category]
		if !ok {
			spent = decimal.Zero
		}
		limitAmount := decimal.NewFromInt(limit.Amount)

		var status domain.WarningStatus
		switch {
		case spent.GreaterThanOrEqual(limitAmount):
			status = domain.WarningExceeded
		case spent.GreaterThanOrEqual(limitAmount.Mul(w.threshold)):
			status = domain.WarningNearing
		default:
			continue
		}

		entries = append(entries, domain.WarningEntry{
			Category:   limit.Category,
			Spent:      spent,
			Limit:      limit.Amount,
			Status:     status,
			Percentage: percentageOf(spent, limitAmount),
		})
	}
	return entries
}

// percentageOf returns round(spent/limit*100), or nil when limit is zero.
// The result saturates at math.MaxInt32.
func percentageOf(spent, limit decimal.Decimal) *int {
	if limit.IsZero() {
		return nil
	}
	pct := int(decimal.Min(spent.Mul(hundred).Div(limit).Round(0), maxPercent).IntPart())
	return &pct
}
