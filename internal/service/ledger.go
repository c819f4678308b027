package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/dafibh/spendsense/spendsense-backend/internal/util"
	"github.com/shopspring/decimal"
)

// Ledger holds expense records in insertion order. Insertion order is the
// display order and the removal index order.
type Ledger struct {
	records []domain.ExpenseRecord
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{records: []domain.ExpenseRecord{}}
}

// ValidateRecord checks amount, category, date and note of a record
func ValidateRecord(record domain.ExpenseRecord) error {
	if !record.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidRecord)
	}
	if record.Amount.GreaterThan(domain.MaxAmount) {
		return fmt.Errorf("%w: amount exceeds %s", domain.ErrInvalidRecord, domain.MaxAmount)
	}
	if !record.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidRecord, record.Category)
	}
	if _, err := record.ParseDate(); err != nil {
		return fmt.Errorf("%w: date %q is not a valid calendar date", domain.ErrInvalidRecord, record.Date)
	}
	if len(record.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", domain.ErrInvalidRecord, domain.MaxNoteLength)
	}
	return nil
}

// Add validates the record and appends it at the tail
func (l *Ledger) Add(record domain.ExpenseRecord) error {
	record.Note = strings.TrimSpace(record.Note)
	if err := ValidateRecord(record); err != nil {
		return err
	}
	l.records = append(l.records, record)
	return nil
}

// RemoveAt removes the record at index. Later records shift down by one.
func (l *Ledger) RemoveAt(index int) (domain.ExpenseRecord, error) {
	if index < 0 || index >= len(l.records) {
		return domain.ExpenseRecord{}, fmt.Errorf("%w: %d not in [0, %d)", domain.ErrIndexOutOfRange, index, len(l.records))
	}
	removed := l.records[index]
	l.records = append(l.records[:index:index], l.records[index+1:]...)
	return removed, nil
}

// Len returns the number of records
func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns a copy of the records in order
func (l *Ledger) Records() []domain.ExpenseRecord {
	out := make([]domain.ExpenseRecord, len(l.records))
	copy(out, l.records)
	return out
}

// TotalSpent sums every record amount
func (l *Ledger) TotalSpent() decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.records {
		total = total.Add(r.Amount)
	}
	return total
}

// CategoryTotals groups amounts by category for the records matching
// predicate. A nil predicate matches every record.
func (l *Ledger) CategoryTotals(predicate domain.DatePredicate) domain.CategoryTotals {
	totals := make(domain.CategoryTotals)
	for _, r := range l.records {
		if predicate != nil {
			date, err := r.ParseDate()
			if err != nil || !predicate(date) {
				continue
			}
		}
		if current, ok := totals[r.Category]; ok {
			totals[r.Category] = current.Add(r.Amount)
		} else {
			totals[r.Category] = r.Amount
		}
	}
	return totals
}

// InMonth returns a predicate matching dates in the same calendar month as
// now(). The clock is read each time the predicate is built.
func InMonth(now func() time.Time) domain.DatePredicate {
	current := now()
	return func(date time.Time) bool {
		return util.IsSameMonth(date, current)
	}
}
