package service

import (
	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Command is a single user action applied to the engine
type Command interface {
	Name() string
}

// AddExpense appends a record to the ledger
type AddExpense struct {
	Record domain.ExpenseRecord
}

// RemoveExpense removes the record at Index
type RemoveExpense struct {
	Index int
}

// SetBudget replaces the total budget
type SetBudget struct {
	Amount decimal.Decimal
}

// SelectPlan selects a plan, or clears it when PlanID is already active
type SelectPlan struct {
	PlanID string
}

// ToggleLock flips one of the lock flags
type ToggleLock struct {
	Target domain.LockTarget
}

// ToggleTheme switches between dark and light
type ToggleTheme struct{}

// RecordVisit updates the daily visit streak
type RecordVisit struct{}

func (AddExpense) Name() string    { return "add_expense" }
func (RemoveExpense) Name() string { return "remove_expense" }
func (SetBudget) Name() string     { return "set_budget" }
func (SelectPlan) Name() string    { return "select_plan" }
func (ToggleLock) Name() string    { return "toggle_lock" }
func (ToggleTheme) Name() string   { return "toggle_theme" }
func (RecordVisit) Name() string   { return "record_visit" }
