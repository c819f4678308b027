package service

import (
	"fmt"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
)

// Allocator turns a budget and a selected plan into per-category limits
type Allocator struct {
	plans *domain.PlanTable
}

// NewAllocator creates a new Allocator
func NewAllocator(plans *domain.PlanTable) *Allocator {
	return &Allocator{plans: plans}
}

// Plans returns the plan table the allocator resolves against
func (a *Allocator) Plans() *domain.PlanTable {
	return a.plans
}

// CategoryLimits returns nil when no plan is selected or the budget is not
// positive. Otherwise each category in the plan's breakdown gets
// round(budget * ratio), rounded half away from zero, in breakdown order.
func (a *Allocator) CategoryLimits(budget domain.BudgetState) ([]domain.CategoryLimit, error) {
	if budget.SelectedPlanID == nil || !budget.HasBudget() {
		return nil, nil
	}

	plan, ok := a.plans.Get(*budget.SelectedPlanID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPlan, *budget.SelectedPlanID)
	}

	limits := make([]domain.CategoryLimit, 0, len(plan.Breakdown))
	for _, share := range plan.Breakdown {
		limits = append(limits, domain.CategoryLimit{
			Category: share.Category,
			Amount:   budget.TotalBudget.Mul(share.Ratio).Round(0).IntPart(),
		})
	}
	return limits, nil
}

// SelectPlan returns the budget state with planID selected. Selecting the
// plan that is already active clears the selection. When locked is set
// nothing changes and ErrLocked is returned.
func (a *Allocator) SelectPlan(budget domain.BudgetState, planID string, locked bool) (domain.BudgetState, error) {
	if locked {
		return budget, fmt.Errorf("%w: plan selection", domain.ErrLocked)
	}
	if !budget.HasBudget() {
		return budget, domain.ErrBudgetRequired
	}
	if _, ok := a.plans.Get(planID); !ok {
		return budget, fmt.Errorf("%w: %q", domain.ErrUnknownPlan, planID)
	}

	if budget.SelectedPlanID != nil && *budget.SelectedPlanID == planID {
		budget.SelectedPlanID = nil
		return budget, nil
	}

	id := planID
	budget.SelectedPlanID = &id
	return budget, nil
}
