package config

import (
	"fmt"
	"os"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// plansFile is the YAML layout of a plan table:
//
//	plans:
//	  - id: balanced
//	    displayName: Balanced
//	    breakdown:
//	      - category: Food
//	        ratio: "0.30"
type plansFile struct {
	Plans []planEntry `yaml:"plans"`
}

type planEntry struct {
	ID          string       `yaml:"id"`
	DisplayName string       `yaml:"displayName"`
	Breakdown   []shareEntry `yaml:"breakdown"`
}

type shareEntry struct {
	Category string `yaml:"category"`
	Ratio    string `yaml:"ratio"`
}

// LoadPlans reads the plan table from path, or returns the built-in plans
// when path is empty. The table is validated against the category set.
func LoadPlans(path string) (*domain.PlanTable, error) {
	if path == "" {
		return domain.DefaultPlans(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plans file: %w", err)
	}
	return ParsePlans(data)
}

// ParsePlans decodes and validates a YAML plan table
func ParsePlans(data []byte) (*domain.PlanTable, error) {
	var f plansFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPlanTable, err)
	}

	plans := make([]*domain.SpendingPlan, 0, len(f.Plans))
	for _, p := range f.Plans {
		plan := &domain.SpendingPlan{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Breakdown:   make([]domain.PlanShare, 0, len(p.Breakdown)),
		}
		if plan.DisplayName == "" {
			plan.DisplayName = p.ID
		}
		for _, s := range p.Breakdown {
			ratio, err := decimal.NewFromString(s.Ratio)
			if err != nil {
				return nil, fmt.Errorf("%w: plan %q ratio %q is not a number", domain.ErrInvalidPlanTable, p.ID, s.Ratio)
			}
			plan.Breakdown = append(plan.Breakdown, domain.PlanShare{
				Category: domain.Category(s.Category),
				Ratio:    ratio,
			})
		}
		plans = append(plans, plan)
	}

	table := domain.NewPlanTable(plans)
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
