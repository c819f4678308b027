package domain

import "github.com/shopspring/decimal"

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// LockTarget names one of the lock flags on the app state
type LockTarget string

const (
	LockBudget  LockTarget = "budget"
	LockExpense LockTarget = "expense"
	LockPlan    LockTarget = "plan"
)

// IsValid reports whether t names a known lock
func (t LockTarget) IsValid() bool {
	switch t {
	case LockBudget, LockExpense, LockPlan:
		return true
	}
	return false
}

// Streak tracks consecutive days the app was opened
type Streak struct {
	Count     int     `json:"count"`
	LastVisit *string `json:"lastVisit"`
}

// BudgetState is the budget and the selected plan, if any
type BudgetState struct {
	TotalBudget    decimal.Decimal
	SelectedPlanID *string
}

// HasBudget reports whether a positive budget is set
func (b BudgetState) HasBudget() bool {
	return b.TotalBudget.IsPositive()
}

// AppState is the full persisted state. Its JSON form is the snapshot
// handed to the persistence layer.
type AppState struct {
	Theme           Theme           `json:"theme"`
	Budget          decimal.Decimal `json:"budget"`
	IsBudgetLocked  bool            `json:"isBudgetLocked"`
	IsExpenseLocked bool            `json:"isExpenseLocked"`
	IsPlanLocked    bool            `json:"isPlanLocked"`
	Expenses        []ExpenseRecord `json:"expenses"`
	SelectedPlanID  *string         `json:"selectedPlan"`
	Streak          Streak          `json:"streak"`
}

// DefaultAppState returns the state used on first start or after a corrupt load
func DefaultAppState() *AppState {
	return &AppState{
		Theme:    ThemeDark,
		Budget:   decimal.Zero,
		Expenses: []ExpenseRecord{},
	}
}

// BudgetState returns the budget portion of the state
func (s *AppState) BudgetState() BudgetState {
	return BudgetState{
		TotalBudget:    s.Budget,
		SelectedPlanID: s.SelectedPlanID,
	}
}

// Locks is the current lock flags
type Locks struct {
	Budget  bool `json:"budget"`
	Expense bool `json:"expense"`
	Plan    bool `json:"plan"`
}
