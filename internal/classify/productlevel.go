// Package classify derives the product maturity tier and the size tier from
// the computed scorecards. Both classifications are total functions: every
// input combination resolves to exactly one tier, first match wins.
package classify

import (
	"fmt"

	"repoaudit/internal/facts"
	"repoaudit/internal/scoring"
)

// ProductLevel is the maturity tier, ordered from least to most mature.
type ProductLevel int

const (
	RndSpike ProductLevel = iota
	Prototype
	InternalTool
	PlatformModule
	NearProduct
)

var productLevelNames = map[ProductLevel]string{
	RndSpike:       "rnd_spike",
	Prototype:      "prototype",
	InternalTool:   "internal_tool",
	PlatformModule: "platform_module",
	NearProduct:    "near_product",
}

var productLevelDescriptions = map[ProductLevel]string{
	RndSpike:       "Exploratory spike: minimal hygiene, not intended to survive",
	Prototype:      "Working prototype: demonstrates the idea, cut corners everywhere",
	InternalTool:   "Internal tool: decent hygiene and infrastructure, limited polish",
	PlatformModule: "Platform module: layered architecture with disciplined structure",
	NearProduct:    "Near-product: high scores across the board with release polish",
}

func (p ProductLevel) String() string {
	if name, ok := productLevelNames[p]; ok {
		return name
	}
	return "unknown"
}

// Description returns the human-readable description for the tier.
func (p ProductLevel) Description() string {
	return productLevelDescriptions[p]
}

// MarshalText makes the tier serialize as its snake_case name.
func (p ProductLevel) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a serialized tier name.
func (p *ProductLevel) UnmarshalText(text []byte) error {
	name := string(text)
	for level, n := range productLevelNames {
		if n == name {
			*p = level
			return nil
		}
	}
	return fmt.Errorf("unknown product level: %q", name)
}

// ClassifyProductLevel resolves the maturity tier. The decision order is
// evaluated high to low and the first matching tier wins.
func ClassifyProductLevel(health scoring.RepoHealthScore, debt scoring.TechDebtScore, structure facts.StructureData) ProductLevel {
	polish := structure.HasVersionFile || structure.HasAPIDocs

	switch {
	case health.Total >= 9 && debt.Total >= 11 && polish:
		return NearProduct
	case debt.Architecture >= 3 && health.Structure >= 3:
		return PlatformModule
	case health.Total >= 6 && debt.Total >= 8 && debt.Infrastructure >= 2:
		return InternalTool
	case health.Total >= 4 && debt.Total >= 5:
		return Prototype
	default:
		return RndSpike
	}
}
