package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func fullBreakdown(ratio string) []PlanShare {
	shares := make([]PlanShare, 0, len(Categories))
	for _, c := range Categories {
		shares = append(shares, share(c, ratio))
	}
	return shares
}

func TestDefaultPlansAreValid(t *testing.T) {
	plans := DefaultPlans()
	if err := plans.Validate(); err != nil {
		t.Fatalf("DefaultPlans().Validate() = %v, want nil", err)
	}

	wantOrder := []string{"balanced", "saver", "growth", "explorer"}
	all := plans.All()
	if len(all) != len(wantOrder) {
		t.Fatalf("got %d plans, want %d", len(all), len(wantOrder))
	}
	for i, id := range wantOrder {
		if all[i].ID != id {
			t.Errorf("plan %d = %s, want %s", i, all[i].ID, id)
		}
	}
}

func TestPlanTable_Get(t *testing.T) {
	plans := DefaultPlans()

	if p, ok := plans.Get("saver"); !ok || p.DisplayName != "Saver" {
		t.Errorf("Get(saver) = %v, %v", p, ok)
	}
	if _, ok := plans.Get("lavish"); ok {
		t.Error("Get(lavish) should not find a plan")
	}

	var nilTable *PlanTable
	if _, ok := nilTable.Get("saver"); ok {
		t.Error("nil table should not find a plan")
	}
}

func TestPlanTable_Validate(t *testing.T) {
	missingOne := fullBreakdown("0.2")[:len(Categories)-1]
	duplicated := append(fullBreakdown("0.2")[:len(Categories)-1], share(CategoryFood, "0.1"))
	unknown := append(fullBreakdown("0.2")[:len(Categories)-1], PlanShare{Category: "Rent", Ratio: decimal.RequireFromString("0.1")})

	tests := []struct {
		name    string
		plans   []*SpendingPlan
		wantErr bool
	}{
		{"valid", []*SpendingPlan{{ID: "even", Breakdown: fullBreakdown("0.2")}}, false},
		{"ratio of one", []*SpendingPlan{{ID: "even", Breakdown: fullBreakdown("1")}}, false},
		{"empty table", nil, true},
		{"missing id", []*SpendingPlan{{Breakdown: fullBreakdown("0.2")}}, true},
		{"duplicate id", []*SpendingPlan{{ID: "a", Breakdown: fullBreakdown("0.2")}, {ID: "a", Breakdown: fullBreakdown("0.2")}}, true},
		{"zero ratio", []*SpendingPlan{{ID: "a", Breakdown: fullBreakdown("0")}}, true},
		{"ratio above one", []*SpendingPlan{{ID: "a", Breakdown: fullBreakdown("1.5")}}, true},
		{"missing category", []*SpendingPlan{{ID: "a", Breakdown: missingOne}}, true},
		{"duplicated category", []*SpendingPlan{{ID: "a", Breakdown: duplicated}}, true},
		{"unknown category", []*SpendingPlan{{ID: "a", Breakdown: unknown}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPlanTable(tt.plans).Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPlanTable) {
					t.Errorf("Validate() = %v, want ErrInvalidPlanTable", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestCategory_IsValid(t *testing.T) {
	for _, c := range Categories {
		if !c.IsValid() {
			t.Errorf("%s should be valid", c)
		}
	}
	for _, c := range []Category{"", "food", "Rent"} {
		if c.IsValid() {
			t.Errorf("%q should not be valid", c)
		}
	}
}

func TestDefaultPalette_Covers(t *testing.T) {
	palette := DefaultPalette()
	if !palette.Covers() {
		t.Error("DefaultPalette should cover every category")
	}

	delete(palette, CategoryOther)
	if palette.Covers() {
		t.Error("palette missing Other should not cover the category set")
	}
}
