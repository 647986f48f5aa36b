package models

import "strings"

type BudgetCategory string

const (
	CategoryFood          BudgetCategory = "food"
	CategoryTransport     BudgetCategory = "transport"
	CategoryHousing       BudgetCategory = "housing"
	CategoryUtilities     BudgetCategory = "utilities"
	CategoryHealth        BudgetCategory = "health"
	CategoryEntertainment BudgetCategory = "entertainment"
	CategoryShopping      BudgetCategory = "shopping"
	CategoryOther         BudgetCategory = "other"
)

// Categories lists the fixed category set in display order.
var Categories = []BudgetCategory{
	CategoryFood, CategoryTransport, CategoryHousing, CategoryUtilities,
	CategoryHealth, CategoryEntertainment, CategoryShopping, CategoryOther,
}

// ParseCategory maps free-form input onto the fixed category set.
// Unrecognized input coerces to "other".
func ParseCategory(s string) BudgetCategory {
	c := BudgetCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return known
		}
	}
	return CategoryOther
}

type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
)

// ParsePeriod maps free-form input onto a budget period, defaulting to
// monthly. The period is a display label: CurrentSpent never resets on a
// period boundary.
func ParsePeriod(s string) BudgetPeriod {
	if BudgetPeriod(strings.ToLower(strings.TrimSpace(s))) == PeriodWeekly {
		return PeriodWeekly
	}
	return PeriodMonthly
}

// Budget is a spending limit for one (user, category, currency) triple.
type Budget struct {
	ID           int64
	UserID       int64
	Category     BudgetCategory
	Amount       float64
	Currency     string
	Period       BudgetPeriod
	CurrentSpent float64
}

// SpentPercent returns CurrentSpent as a percentage of the limit, 0 when
// the limit is non-positive.
func (b *Budget) SpentPercent() float64 {
	if b.Amount <= 0 {
		return 0
	}
	return b.CurrentSpent / b.Amount * 100
}
