// Package estimate produces the two independent cost projections: the
// forward estimate (complexity base hours inflated by the tech-debt
// multiplier, priced against regional rate bands) and the historical
// estimate (git commit velocity times team size). Both estimators are total
// functions: absent or degenerate inputs produce low-confidence estimates
// with explicit bounds, never errors.
package estimate

import "repoaudit/internal/classify"

// ActivityBreakdown splits an hour figure into the five activity buckets.
// Total always equals the sum of the buckets.
type ActivityBreakdown struct {
	Analysis      float64 `json:"analysis"`
	Design        float64 `json:"design"`
	Development   float64 `json:"development"`
	QA            float64 `json:"qa"`
	Documentation float64 `json:"documentation"`
	Total         float64 `json:"total"`
}

// CostRange is a money range in a single currency.
type CostRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// ForwardHours holds the three activity breakdowns of a forward estimate.
type ForwardHours struct {
	Min     ActivityBreakdown `json:"min"`
	Typical ActivityBreakdown `json:"typical"`
	Max     ActivityBreakdown `json:"max"`
}

// ForwardCost holds the regional cost ranges of a forward estimate.
type ForwardCost struct {
	EU CostRange `json:"eu"`
	UA CostRange `json:"ua"`
}

// ForwardEstimate is the prospective projection from complexity and debt.
type ForwardEstimate struct {
	Hours              ForwardHours        `json:"hours"`
	Cost               ForwardCost         `json:"cost"`
	Complexity         classify.Complexity `json:"complexity"`
	TechDebtMultiplier float64             `json:"tech_debt_multiplier"`
}

// HourRange is a plain min/max hour band.
type HourRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PersonMonthRange is a min/max band in person-months.
type PersonMonthRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Confidence levels for the historical estimate.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// HistoricalEstimate is the retrospective projection from git activity.
type HistoricalEstimate struct {
	ActiveDays   int              `json:"active_days"`
	Hours        HourRange        `json:"hours"`
	PersonMonths PersonMonthRange `json:"person_months"`
	Cost         ForwardCost      `json:"cost"`
	Confidence   string           `json:"confidence"`
	Note         string           `json:"note"`
}
