package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
)

const (
	// chartStartAngle is 12 o'clock
	chartStartAngle = -math.Pi / 2
	fullCircle      = 2 * math.Pi
)

// ChartBuilder converts category totals into donut chart slices
type ChartBuilder struct {
	palette domain.Palette
}

// NewChartBuilder creates a ChartBuilder coloring slices from palette
func NewChartBuilder(palette domain.Palette) *ChartBuilder {
	return &ChartBuilder{palette: palette}
}

// Palette returns the category colors in declaration order
func (b *ChartBuilder) Palette() []domain.CategoryInfo {
	infos := make([]domain.CategoryInfo, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		infos = append(infos, domain.CategoryInfo{Name: c, Color: b.palette[c]})
	}
	return infos
}

// BuildSlices lays out one slice per category with spend, in category
// declaration order, starting at -π/2. A zero total yields an Empty result.
// The last slice takes whatever is left up to 3π/2, so rounding never
// leaves a gap.
func (b *ChartBuilder) BuildSlices(totals domain.CategoryTotals) (domain.ChartResult, error) {
	ordered := orderedCategories(totals)

	for _, c := range ordered {
		if _, ok := b.palette[c]; !ok {
			return domain.ChartResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownCategoryColor, c)
		}
	}

	total := totals.Sum()
	if !total.IsPositive() {
		return domain.ChartResult{Empty: true, Slices: []domain.ChartSlice{}}, nil
	}

	totalF := total.InexactFloat64()
	slices := make([]domain.ChartSlice, 0, len(ordered))
	start := chartStartAngle
	for i, c := range ordered {
		value := totals[c]
		sweep := fullCircle * value.InexactFloat64() / totalF
		if i > 0 && i == len(ordered)-1 {
			sweep = chartStartAngle + fullCircle - start
		}
		slices = append(slices, domain.ChartSlice{
			Category:   c,
			Color:      b.palette[c],
			Value:      value,
			StartAngle: start,
			SweepAngle: sweep,
		})
		start += sweep
	}

	return domain.ChartResult{Slices: slices}, nil
}

// orderedCategories returns the categories with a positive amount, declared
// categories first, then any others sorted by name.
func orderedCategories(totals domain.CategoryTotals) []domain.Category {
	ordered := make([]domain.Category, 0, len(totals))
	for _, c := range domain.Categories {
		if amount, ok := totals[c]; ok && amount.IsPositive() {
			ordered = append(ordered, c)
		}
	}

	var extra []domain.Category
	for c, amount := range totals {
		if !c.IsValid() && amount.IsPositive() {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(ordered, extra...)
}
