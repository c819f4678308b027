package domain

// Category is one of the fixed spending categories
type Category string

const (
	CategoryFood            Category = "Food"
	CategoryTravel          Category = "Travel"
	CategorySelfImprovement Category = "Self Improvement"
	CategoryEntertainment   Category = "Entertainment"
	CategoryOther           Category = "Other"
)

// Categories lists every category in declaration order.
// Chart slices and category listings follow this order.
var Categories = []Category{
	CategoryFood,
	CategoryTravel,
	CategorySelfImprovement,
	CategoryEntertainment,
	CategoryOther,
}

// IsValid reports whether c belongs to the category set
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Palette maps each category to its chart color
type Palette map[Category]string

// DefaultPalette returns the standard category colors
func DefaultPalette() Palette {
	return Palette{
		CategoryFood:            "#2ecc71",
		CategoryTravel:          "#3498db",
		CategorySelfImprovement: "#1abc9c",
		CategoryEntertainment:   "#9b59b6",
		CategoryOther:           "#e74c3c",
	}
}

// Covers reports whether the palette has exactly one color for every category and nothing else
func (p Palette) Covers() bool {
	if len(p) != len(Categories) {
		return false
	}
	for _, c := range Categories {
		if _, ok := p[c]; !ok {
			return false
		}
	}
	return true
}

// CategoryInfo is a category with its display color
type CategoryInfo struct {
	Name  Category `json:"name"`
	Color string   `json:"color"`
}
