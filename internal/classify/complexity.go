package classify

import (
	"fmt"

	"repoaudit/internal/facts"
	"repoaudit/internal/scoring"
)

// Complexity is the LOC-driven size tier used to scale estimates.
type Complexity int

const (
	Small Complexity = iota
	Medium
	Large
	XLarge
)

var complexityNames = map[Complexity]string{
	Small:  "small",
	Medium: "medium",
	Large:  "large",
	XLarge: "xlarge",
}

func (c Complexity) String() string {
	if name, ok := complexityNames[c]; ok {
		return name
	}
	return "unknown"
}

// MarshalText makes the tier serialize as its lowercase name.
func (c Complexity) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a serialized tier name.
func (c *Complexity) UnmarshalText(text []byte) error {
	name := string(text)
	for tier, n := range complexityNames {
		if n == name {
			*c = tier
			return nil
		}
	}
	return fmt.Errorf("unknown complexity tier: %q", name)
}

// LOC boundaries for the base tier.
const (
	smallMaxLOC  = 10_000
	mediumMaxLOC = 50_000
	largeMaxLOC  = 100_000
)

// Adjustment thresholds. A very low debt score or a heavy external
// dependency surface bumps the tier up by one, never down.
const (
	debtBumpMax = 3
	depsBumpMin = 40
)

// ClassifyComplexity derives the size tier from total LOC, then applies the
// monotonic upward-only adjustment pass, capped at XLarge.
func ClassifyComplexity(metrics facts.StaticMetrics, health scoring.RepoHealthScore, debt scoring.TechDebtScore) Complexity {
	tier := baseTier(metrics.TotalLOC)

	if debt.Total <= debtBumpMax || metrics.ExternalDepsCount >= depsBumpMin {
		tier = bump(tier)
	}
	return tier
}

func baseTier(loc int) Complexity {
	switch {
	case loc < smallMaxLOC:
		return Small
	case loc < mediumMaxLOC:
		return Medium
	case loc < largeMaxLOC:
		return Large
	default:
		return XLarge
	}
}

func bump(c Complexity) Complexity {
	if c >= XLarge {
		return XLarge
	}
	return c + 1
}
