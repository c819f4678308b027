package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PlanShare is the budget ratio a plan assigns to one category
type PlanShare struct {
	Category Category        `json:"category"`
	Ratio    decimal.Decimal `json:"ratio"`
}

// SpendingPlan is a named template that splits the budget across categories.
// Ratios are not normalized and need not sum to one.
type SpendingPlan struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"displayName"`
	Breakdown   []PlanShare `json:"breakdown"`
}

// PlanTable holds the available plans in declaration order
type PlanTable struct {
	plans []*SpendingPlan
	byID  map[string]*SpendingPlan
}

// NewPlanTable builds a table from plans, keeping their order
func NewPlanTable(plans []*SpendingPlan) *PlanTable {
	t := &PlanTable{
		plans: make([]*SpendingPlan, 0, len(plans)),
		byID:  make(map[string]*SpendingPlan, len(plans)),
	}
	for _, p := range plans {
		t.plans = append(t.plans, p)
		t.byID[p.ID] = p
	}
	return t
}

// Get looks up a plan by ID
func (t *PlanTable) Get(id string) (*SpendingPlan, bool) {
	if t == nil {
		return nil, false
	}
	p, ok := t.byID[id]
	return p, ok
}

// All returns the plans in declaration order
func (t *PlanTable) All() []*SpendingPlan {
	if t == nil {
		return nil
	}
	out := make([]*SpendingPlan, len(t.plans))
	copy(out, t.plans)
	return out
}

// Validate checks that every plan has a unique ID, ratios in (0,1],
// and a breakdown that covers the category set exactly once.
func (t *PlanTable) Validate() error {
	if t == nil || len(t.plans) == 0 {
		return fmt.Errorf("%w: no plans defined", ErrInvalidPlanTable)
	}
	if len(t.byID) != len(t.plans) {
		return fmt.Errorf("%w: duplicate plan id", ErrInvalidPlanTable)
	}
	one := decimal.NewFromInt(1)
	for _, p := range t.plans {
		if p.ID == "" {
			return fmt.Errorf("%w: plan id is required", ErrInvalidPlanTable)
		}
		seen := make(map[Category]bool, len(p.Breakdown))
		for _, share := range p.Breakdown {
			if !share.Category.IsValid() {
				return fmt.Errorf("%w: plan %q has unknown category %q", ErrInvalidPlanTable, p.ID, share.Category)
			}
			if seen[share.Category] {
				return fmt.Errorf("%w: plan %q lists %q twice", ErrInvalidPlanTable, p.ID, share.Category)
			}
			seen[share.Category] = true
			if !share.Ratio.IsPositive() || share.Ratio.GreaterThan(one) {
				return fmt.Errorf("%w: plan %q ratio for %q must be in (0,1]", ErrInvalidPlanTable, p.ID, share.Category)
			}
		}
		if len(seen) != len(Categories) {
			return fmt.Errorf("%w: plan %q does not cover every category", ErrInvalidPlanTable, p.ID)
		}
	}
	return nil
}

func share(c Category, ratio string) PlanShare {
	return PlanShare{Category: c, Ratio: decimal.RequireFromString(ratio)}
}

// DefaultPlans returns the built-in plan templates
func DefaultPlans() *PlanTable {
	return NewPlanTable([]*SpendingPlan{
		{
			ID:          "balanced",
			DisplayName: "Balanced",
			Breakdown: []PlanShare{
				share(CategoryFood, "0.30"),
				share(CategoryTravel, "0.20"),
				share(CategorySelfImprovement, "0.20"),
				share(CategoryEntertainment, "0.15"),
				share(CategoryOther, "0.15"),
			},
		},
		{
			ID:          "saver",
			DisplayName: "Saver",
			Breakdown: []PlanShare{
				share(CategoryFood, "0.35"),
				share(CategoryTravel, "0.10"),
				share(CategorySelfImprovement, "0.15"),
				share(CategoryEntertainment, "0.05"),
				share(CategoryOther, "0.10"),
			},
		},
		{
			ID:          "growth",
			DisplayName: "Growth",
			Breakdown: []PlanShare{
				share(CategoryFood, "0.25"),
				share(CategoryTravel, "0.10"),
				share(CategorySelfImprovement, "0.40"),
				share(CategoryEntertainment, "0.10"),
				share(CategoryOther, "0.15"),
			},
		},
		{
			ID:          "explorer",
			DisplayName: "Explorer",
			Breakdown: []PlanShare{
				share(CategoryFood, "0.25"),
				share(CategoryTravel, "0.40"),
				share(CategorySelfImprovement, "0.10"),
				share(CategoryEntertainment, "0.15"),
				share(CategoryOther, "0.10"),
			},
		},
	})
}
