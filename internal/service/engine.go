package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/dafibh/spendsense/spendsense-backend/internal/util"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Engine owns the app state and recomputes every derived view after each
// command. It is not safe for concurrent use; Dispatcher serializes access.
type Engine struct {
	ledger     *Ledger
	state      domain.AppState
	allocator  *Allocator
	classifier *WarningClassifier
	charts     *ChartBuilder
	now        func() time.Time
	logger     zerolog.Logger
}

// NewEngine builds an engine from a loaded state. Records that fail
// validation are dropped.
func NewEngine(
	state *domain.AppState,
	allocator *Allocator,
	classifier *WarningClassifier,
	charts *ChartBuilder,
	now func() time.Time,
	logger zerolog.Logger,
) *Engine {
	if now == nil {
		now = time.Now
	}

	e := &Engine{
		ledger:     NewLedger(),
		allocator:  allocator,
		classifier: classifier,
		charts:     charts,
		now:        now,
		logger:     logger.With().Str("component", "engine").Logger(),
	}

	if state == nil {
		state = domain.DefaultAppState()
	}
	e.state = *state
	e.state.Expenses = nil

	for i, record := range state.Expenses {
		if err := e.ledger.Add(record); err != nil {
			e.logger.Warn().Err(err).Int("index", i).Msg("Dropping invalid expense from saved state")
		}
	}

	return e
}

// State returns a copy of the full state including the ledger records
func (e *Engine) State() *domain.AppState {
	s := e.state
	s.Expenses = e.ledger.Records()
	if s.SelectedPlanID != nil {
		id := *s.SelectedPlanID
		s.SelectedPlanID = &id
	}
	return &s
}

// Execute applies exactly one mutation and returns the recomputed analysis.
// On error the state is left unchanged, including when the mutation applied
// but the analysis could not be built.
func (e *Engine) Execute(cmd Command) (*domain.Analysis, error) {
	prevState := e.state
	prevRecords := e.ledger.Records()

	if err := e.apply(cmd); err != nil {
		return nil, err
	}

	analysis, err := e.Analyze()
	if err != nil {
		e.state = prevState
		e.ledger.records = prevRecords
		return nil, err
	}
	return analysis, nil
}

func (e *Engine) apply(cmd Command) error {
	switch c := cmd.(type) {
	case AddExpense:
		return e.ledger.Add(c.Record)

	case RemoveExpense:
		if e.state.IsExpenseLocked {
			return fmt.Errorf("%w: expenses", domain.ErrLocked)
		}
		_, err := e.ledger.RemoveAt(c.Index)
		return err

	case SetBudget:
		if e.state.IsBudgetLocked {
			return fmt.Errorf("%w: budget", domain.ErrLocked)
		}
		if !c.Amount.IsPositive() || c.Amount.GreaterThan(domain.MaxAmount) {
			return domain.ErrInvalidBudget
		}
		e.state.Budget = c.Amount
		return nil

	case SelectPlan:
		budget, err := e.allocator.SelectPlan(e.state.BudgetState(), c.PlanID, e.state.IsPlanLocked)
		if err != nil {
			return err
		}
		e.state.SelectedPlanID = budget.SelectedPlanID
		return nil

	case ToggleLock:
		switch c.Target {
		case domain.LockBudget:
			e.state.IsBudgetLocked = !e.state.IsBudgetLocked
		case domain.LockExpense:
			e.state.IsExpenseLocked = !e.state.IsExpenseLocked
		case domain.LockPlan:
			e.state.IsPlanLocked = !e.state.IsPlanLocked
		default:
			return fmt.Errorf("%w: %q", domain.ErrUnknownLockTarget, c.Target)
		}
		return nil

	case ToggleTheme:
		if e.state.Theme == domain.ThemeLight {
			e.state.Theme = domain.ThemeDark
		} else {
			e.state.Theme = domain.ThemeLight
		}
		return nil

	case RecordVisit:
		e.recordVisit()
		return nil
	}

	return fmt.Errorf("%w: %T", domain.ErrUnknownCommand, cmd)
}

// recordVisit extends the streak when the last visit was yesterday,
// keeps it on a same-day visit and restarts it otherwise
func (e *Engine) recordVisit() {
	now := e.now()
	today := util.Today(now)

	streak := e.state.Streak
	switch {
	case streak.LastVisit == nil:
		streak.Count = 1
	case *streak.LastVisit == today:
		return
	default:
		last, err := time.Parse(domain.DateLayout, *streak.LastVisit)
		if err == nil && util.IsPreviousDay(last, now) {
			streak.Count++
		} else {
			streak.Count = 1
		}
	}
	streak.LastVisit = &today
	e.state.Streak = streak
}

// Analyze recomputes every derived view from the current state
func (e *Engine) Analyze() (*domain.Analysis, error) {
	budget := e.state.BudgetState()
	totalSpent := e.ledger.TotalSpent()

	monthly := e.ledger.CategoryTotals(InMonth(e.now))
	overall := e.ledger.CategoryTotals(nil)

	limits, err := e.allocator.CategoryLimits(budget)
	if err != nil {
		if !errors.Is(err, domain.ErrUnknownPlan) {
			return nil, err
		}
		e.logger.Warn().Err(err).Msg("Selected plan no longer exists, skipping limits")
		limits = nil
	}
	if limits == nil {
		limits = []domain.CategoryLimit{}
	}

	monthlySlices, err := e.charts.BuildSlices(monthly)
	if err != nil {
		return nil, err
	}
	overallSlices, err := e.charts.BuildSlices(overall)
	if err != nil {
		return nil, err
	}

	spentPercent, remainingPercent := progress(totalSpent, budget.TotalBudget)
	state := e.State()

	return &domain.Analysis{
		TotalSpent:       totalSpent,
		Budget:           budget.TotalBudget,
		Remaining:        decimal.Max(budget.TotalBudget.Sub(totalSpent), decimal.Zero),
		SpentPercent:     spentPercent,
		RemainingPercent: remainingPercent,
		SelectedPlanID:   state.SelectedPlanID,
		CategoryLimits:   limits,
		Warnings:         e.classifier.Classify(limits, monthly),
		MonthlySlices:    monthlySlices,
		OverallSlices:    overallSlices,
		Expenses:         state.Expenses,
		Theme:            state.Theme,
		Locks: domain.Locks{
			Budget:  state.IsBudgetLocked,
			Expense: state.IsExpenseLocked,
			Plan:    state.IsPlanLocked,
		},
		Streak:      state.Streak,
		GeneratedAt: e.now().UTC(),
	}, nil
}

// progress returns the spent share of the budget capped at 100, and what is left of 100
func progress(spent, budget decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if !budget.IsPositive() {
		return decimal.Zero, decimal.Zero
	}
	spentPct := decimal.Min(spent.Mul(hundred).Div(budget), hundred).Round(2)
	remainingPct := decimal.Max(hundred.Sub(spentPct), decimal.Zero)
	return spentPct, remainingPct
}
