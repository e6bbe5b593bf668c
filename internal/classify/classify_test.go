package classify

import (
	"encoding/json"
	"testing"

	"repoaudit/internal/facts"
	"repoaudit/internal/scoring"
)

func TestClassifyProductLevel(t *testing.T) {
	tests := []struct {
		name      string
		health    scoring.RepoHealthScore
		debt      scoring.TechDebtScore
		structure facts.StructureData
		want      ProductLevel
	}{
		{
			name:   "empty repo is a spike",
			health: scoring.NewRepoHealthScore(0, 0, 0, 0),
			debt:   scoring.NewTechDebtScore(0, 0, 0, 0, 0),
			want:   RndSpike,
		},
		{
			name:   "middling scores make a prototype",
			health: scoring.NewRepoHealthScore(1, 1, 1, 1),
			debt:   scoring.NewTechDebtScore(1, 1, 1, 1, 1),
			want:   Prototype,
		},
		{
			name:   "decent hygiene with infrastructure is an internal tool",
			health: scoring.NewRepoHealthScore(2, 2, 1, 1),
			debt:   scoring.NewTechDebtScore(2, 2, 1, 2, 1),
			want:   InternalTool,
		},
		{
			name:   "max architecture and structure is a platform module",
			health: scoring.NewRepoHealthScore(1, 3, 1, 1),
			debt:   scoring.NewTechDebtScore(3, 1, 1, 1, 1),
			want:   PlatformModule,
		},
		{
			name:      "high scores with polish are near-product",
			health:    scoring.NewRepoHealthScore(3, 3, 2, 2),
			debt:      scoring.NewTechDebtScore(3, 2, 2, 2, 2),
			structure: facts.StructureData{HasVersionFile: true},
			want:      NearProduct,
		},
		{
			name:   "high scores without polish fall through to platform module",
			health: scoring.NewRepoHealthScore(3, 3, 2, 2),
			debt:   scoring.NewTechDebtScore(3, 2, 2, 2, 2),
			want:   PlatformModule,
		},
		{
			name:   "health barely misses prototype",
			health: scoring.NewRepoHealthScore(1, 1, 1, 0),
			debt:   scoring.NewTechDebtScore(2, 2, 1, 0, 0),
			want:   RndSpike,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyProductLevel(tt.health, tt.debt, tt.structure)
			if got != tt.want {
				t.Errorf("ClassifyProductLevel() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyProductLevelIsTotal(t *testing.T) {
	// Every score combination must resolve to a known tier.
	for healthTotal := 0; healthTotal <= 12; healthTotal += 3 {
		for debtTotal := 0; debtTotal <= 15; debtTotal += 3 {
			h := scoring.NewRepoHealthScore(healthTotal/4, healthTotal/4, healthTotal/4, healthTotal/4)
			d := scoring.NewTechDebtScore(debtTotal/5, debtTotal/5, debtTotal/5, debtTotal/5, debtTotal/5)
			level := ClassifyProductLevel(h, d, facts.StructureData{})
			if level.String() == "unknown" {
				t.Errorf("health=%d debt=%d resolved to unknown tier", healthTotal, debtTotal)
			}
			if level.Description() == "" {
				t.Errorf("tier %s has no description", level)
			}
		}
	}
}

func TestClassifyComplexityBaseTiers(t *testing.T) {
	healthyDebt := scoring.NewTechDebtScore(2, 2, 2, 2, 2)

	tests := []struct {
		loc  int
		want Complexity
	}{
		{loc: 0, want: Small},
		{loc: 3000, want: Small},
		{loc: 9999, want: Small},
		{loc: 10000, want: Medium},
		{loc: 20000, want: Medium},
		{loc: 49999, want: Medium},
		{loc: 50000, want: Large},
		{loc: 80000, want: Large},
		{loc: 99999, want: Large},
		{loc: 100000, want: XLarge},
		{loc: 150000, want: XLarge},
	}

	for _, tt := range tests {
		got := ClassifyComplexity(
			facts.StaticMetrics{TotalLOC: tt.loc},
			scoring.RepoHealthScore{},
			healthyDebt,
		)
		if got != tt.want {
			t.Errorf("ClassifyComplexity(loc=%d) = %s, want %s", tt.loc, got, tt.want)
		}
	}
}

func TestClassifyComplexityBumps(t *testing.T) {
	healthyDebt := scoring.NewTechDebtScore(2, 2, 2, 2, 2)
	crushingDebt := scoring.NewTechDebtScore(1, 1, 1, 0, 0)

	tests := []struct {
		name    string
		metrics facts.StaticMetrics
		debt    scoring.TechDebtScore
		want    Complexity
	}{
		{
			name:    "crushing debt bumps small to medium",
			metrics: facts.StaticMetrics{TotalLOC: 3000},
			debt:    crushingDebt,
			want:    Medium,
		},
		{
			name:    "heavy dependency surface bumps medium to large",
			metrics: facts.StaticMetrics{TotalLOC: 20000, ExternalDepsCount: 40},
			debt:    healthyDebt,
			want:    Large,
		},
		{
			name:    "both triggers still bump only once",
			metrics: facts.StaticMetrics{TotalLOC: 20000, ExternalDepsCount: 50},
			debt:    crushingDebt,
			want:    Large,
		},
		{
			name:    "xlarge never bumps past itself",
			metrics: facts.StaticMetrics{TotalLOC: 200000, ExternalDepsCount: 80},
			debt:    crushingDebt,
			want:    XLarge,
		},
		{
			name:    "deps just below threshold do not bump",
			metrics: facts.StaticMetrics{TotalLOC: 20000, ExternalDepsCount: 39},
			debt:    healthyDebt,
			want:    Medium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyComplexity(tt.metrics, scoring.RepoHealthScore{}, tt.debt)
			if got != tt.want {
				t.Errorf("ClassifyComplexity() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComplexityTextRoundTrip(t *testing.T) {
	for _, tier := range []Complexity{Small, Medium, Large, XLarge} {
		data, err := json.Marshal(tier)
		if err != nil {
			t.Fatalf("marshal %s: %v", tier, err)
		}
		var back Complexity
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != tier {
			t.Errorf("round trip changed %s to %s", tier, back)
		}
	}

	var c Complexity
	if err := c.UnmarshalText([]byte("galactic")); err == nil {
		t.Error("expected error for unknown tier name")
	}
}

func TestProductLevelTextRoundTrip(t *testing.T) {
	for _, level := range []ProductLevel{RndSpike, Prototype, InternalTool, PlatformModule, NearProduct} {
		data, err := json.Marshal(level)
		if err != nil {
			t.Fatalf("marshal %s: %v", level, err)
		}
		var back ProductLevel
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != level {
			t.Errorf("round trip changed %s to %s", level, back)
		}
	}

	var p ProductLevel
	if err := p.UnmarshalText([]byte("unicorn")); err == nil {
		t.Error("expected error for unknown level name")
	}
}
