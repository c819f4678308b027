package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarningThreshold is the share of a limit at which a category is flagged as nearing it
var WarningThreshold = decimal.RequireFromString("0.8")

// CategoryLimit is the absolute amount a category may spend under the active plan
type CategoryLimit struct {
	Category Category `json:"category"`
	Amount   int64    `json:"amount"`
}

type WarningStatus string

const (
	WarningNearing  WarningStatus = "nearing"
	WarningExceeded WarningStatus = "exceeded"
)

// WarningEntry flags a category at or near its limit.
// Percentage is nil when the limit is zero.
type WarningEntry struct {
	Category   Category        `json:"category"`
	Spent      decimal.Decimal `json:"spent"`
	Limit      int64           `json:"limit"`
	Status     WarningStatus   `json:"status"`
	Percentage *int            `json:"percentage"`
}

// ChartSlice is one donut segment. Angles are in radians, starting at 12 o'clock (-π/2).
type ChartSlice struct {
	Category   Category        `json:"category"`
	Color      string          `json:"color"`
	Value      decimal.Decimal `json:"value"`
	StartAngle float64         `json:"startAngle"`
	SweepAngle float64         `json:"sweepAngle"`
}

// ChartResult is either Empty (render a placeholder ring) or a list of slices covering the circle
type ChartResult struct {
	Empty  bool         `json:"empty"`
	Slices []ChartSlice `json:"slices"`
}

// Analysis is everything a renderer needs after a mutation
type Analysis struct {
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	Budget           decimal.Decimal `json:"budget"`
	Remaining        decimal.Decimal `json:"remaining"`
	SpentPercent     decimal.Decimal `json:"spentPercent"`
	RemainingPercent decimal.Decimal `json:"remainingPercent"`
	SelectedPlanID   *string         `json:"selectedPlan"`
	CategoryLimits   []CategoryLimit `json:"categoryLimits"`
	Warnings         []WarningEntry  `json:"warnings"`
	MonthlySlices    ChartResult     `json:"monthlySlices"`
	OverallSlices    ChartResult     `json:"overallSlices"`
	Expenses         []ExpenseRecord `json:"expenses"`
	Theme            Theme           `json:"theme"`
	Locks            Locks           `json:"locks"`
	Streak           Streak          `json:"streak"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}
