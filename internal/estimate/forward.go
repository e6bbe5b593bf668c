package estimate

import (
	"math"

	"repoaudit/internal/classify"
	"repoaudit/internal/config"
	"repoaudit/internal/scoring"
)

// Multiplier growth per point of debt. A repository with a zeroed debt
// score (15 points of debt) estimates at 1.75x base hours.
const debtMultiplierStep = 0.05

// TechDebtMultiplier converts a debt score into the hour inflation factor.
// The multiplier is at least 1.0 and strictly decreasing as the score total
// increases.
func TechDebtMultiplier(debt scoring.TechDebtScore) float64 {
	m := 1.0 + debtMultiplierStep*float64(debt.Debt())
	if m < 1.0 {
		return 1.0
	}
	return m
}

// Forward computes the prospective estimate for the given complexity tier
// and debt score. The multiplier is applied uniformly before the activity
// split, so each breakdown keeps the configured proportions.
func Forward(complexity classify.Complexity, debt scoring.TechDebtScore, cfg *config.Config) ForwardEstimate {
	base := baseHours(complexity, cfg)
	multiplier := TechDebtMultiplier(debt)

	minHours := base.Min * multiplier
	typicalHours := base.Typical * multiplier
	maxHours := base.Max * multiplier

	return ForwardEstimate{
		Hours: ForwardHours{
			Min:     splitActivities(minHours, cfg.Activity),
			Typical: splitActivities(typicalHours, cfg.Activity),
			Max:     splitActivities(maxHours, cfg.Activity),
		},
		Cost: ForwardCost{
			EU: costRange(minHours, maxHours, cfg.Rates.EU),
			UA: costRange(minHours, maxHours, cfg.Rates.UA),
		},
		Complexity:         complexity,
		TechDebtMultiplier: multiplier,
	}
}

// ForwardCalibrated applies a calibration adjustment on top of the debt
// multiplier. An adjustment of 1.0 reproduces Forward exactly.
func ForwardCalibrated(complexity classify.Complexity, debt scoring.TechDebtScore, cfg *config.Config, adjustment float64) ForwardEstimate {
	est := Forward(complexity, debt, cfg)
	if adjustment <= 0 || adjustment == 1.0 {
		return est
	}

	est.Hours.Min = splitActivities(est.Hours.Min.Total*adjustment, cfg.Activity)
	est.Hours.Typical = splitActivities(est.Hours.Typical.Total*adjustment, cfg.Activity)
	est.Hours.Max = splitActivities(est.Hours.Max.Total*adjustment, cfg.Activity)
	est.Cost = ForwardCost{
		EU: costRange(est.Hours.Min.Total, est.Hours.Max.Total, cfg.Rates.EU),
		UA: costRange(est.Hours.Min.Total, est.Hours.Max.Total, cfg.Rates.UA),
	}
	return est
}

func baseHours(complexity classify.Complexity, cfg *config.Config) config.HourTriple {
	switch complexity {
	case classify.Small:
		return cfg.BaseHours.Small
	case classify.Medium:
		return cfg.BaseHours.Medium
	case classify.Large:
		return cfg.BaseHours.Large
	default:
		return cfg.BaseHours.XLarge
	}
}

// splitActivities distributes hours across the five buckets and sets the
// total to the bucket sum, so rounding never breaks the sum invariant.
func splitActivities(hours float64, w config.ActivityWeights) ActivityBreakdown {
	b := ActivityBreakdown{
		Analysis:      round1(hours * w.Analysis),
		Design:        round1(hours * w.Design),
		Development:   round1(hours * w.Development),
		QA:            round1(hours * w.QA),
		Documentation: round1(hours * w.Documentation),
	}
	b.Total = round1(b.Analysis + b.Design + b.Development + b.QA + b.Documentation)
	return b
}

func costRange(minHours, maxHours float64, rate config.RateBand) CostRange {
	return CostRange{
		Min:      math.Round(minHours * rate.Min),
		Max:      math.Round(maxHours * rate.Max),
		Currency: rate.Currency,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
