package tasks

import (
	"strings"
	"testing"

	"repoaudit/internal/classify"
	"repoaudit/internal/facts"
	"repoaudit/internal/scoring"
)

func generate(health scoring.RepoHealthScore, debt scoring.TechDebtScore, findings []facts.Finding) []GeneratedTask {
	return NewGenerator().Generate(health, debt, findings,
		facts.StructureData{}, classify.Prototype, classify.Small)
}

func countPriority(list []GeneratedTask, p Priority) int {
	n := 0
	for _, t := range list {
		if t.Priority == p {
			n++
		}
	}
	return n
}

func TestGeneratePerfectScoresEmitNothing(t *testing.T) {
	out := generate(
		scoring.NewRepoHealthScore(3, 3, 3, 3),
		scoring.NewTechDebtScore(3, 3, 3, 3, 3),
		nil,
	)
	if len(out) != 0 {
		t.Errorf("perfect scores generated %d tasks, want 0", len(out))
	}
}

func TestGenerateWreckedRepoFloodsBacklog(t *testing.T) {
	out := generate(
		scoring.NewRepoHealthScore(0, 1, 0, 0),
		scoring.NewTechDebtScore(0, 1, 0, 0, 1),
		nil,
	)

	if len(out) < 5 {
		t.Errorf("wrecked repo generated %d tasks, want at least 5", len(out))
	}
	if p1 := countPriority(out, PriorityP1); p1 < 2 {
		t.Errorf("wrecked repo generated %d P1 tasks, want at least 2", p1)
	}
}

func TestGenerateOrderedByPriority(t *testing.T) {
	out := generate(
		scoring.NewRepoHealthScore(0, 0, 0, 0),
		scoring.NewTechDebtScore(0, 0, 0, 0, 0),
		[]facts.Finding{{Severity: facts.SeverityError, Category: "secrets", Message: "hardcoded key"}},
	)

	prev := 0
	for i, task := range out {
		rank := task.Priority.Rank()
		if rank < prev {
			t.Fatalf("task %d (%s) out of order: rank %d after %d", i, task.Title, rank, prev)
		}
		prev = rank
	}
}

func TestGenerateSecurityTaskAlwaysPresentWithFindings(t *testing.T) {
	tests := []struct {
		name     string
		findings []facts.Finding
		wantP1   bool
	}{
		{
			name: "critical finding emits p1",
			findings: []facts.Finding{
				{Severity: facts.SeverityError, Category: "injection", Message: "sql built from input", Path: "db.py"},
			},
			wantP1: true,
		},
		{
			name: "warnings only emit review task",
			findings: []facts.Finding{
				{Severity: facts.SeverityWarning, Category: "crypto", Message: "weak hash"},
			},
			wantP1: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := generate(
				scoring.NewRepoHealthScore(3, 3, 3, 3),
				scoring.NewTechDebtScore(3, 3, 3, 3, 2),
				tt.findings,
			)

			security := 0
			for _, task := range out {
				if task.Category != CategorySecurity {
					continue
				}
				security++
				if tt.wantP1 && task.Priority != PriorityP1 {
					t.Errorf("critical finding produced %s task, want P1", task.Priority)
				}
				if task.Source != SourceSecurity {
					t.Errorf("security task tagged %s, want %s", task.Source, SourceSecurity)
				}
			}
			if security == 0 {
				t.Error("findings present but no security task generated")
			}
		})
	}
}

func TestGenerateSecurityFindingsCluster(t *testing.T) {
	findings := []facts.Finding{
		{Severity: facts.SeverityError, Category: "secrets", Message: "Hardcoded API key", Path: "a.go"},
		{Severity: facts.SeverityError, Category: "secrets", Message: "hardcoded   api key", Path: "b.go"},
		{Severity: facts.SeverityError, Category: "secrets", Message: "hardcoded api key", Path: "c.go"},
		{Severity: facts.SeverityError, Category: "injection", Message: "sql built from input", Path: "d.go"},
	}

	out := generate(
		scoring.NewRepoHealthScore(3, 3, 3, 3),
		scoring.NewTechDebtScore(3, 3, 3, 3, 0),
		findings,
	)

	security := make([]GeneratedTask, 0, len(out))
	for _, task := range out {
		if task.Category == CategorySecurity {
			security = append(security, task)
		}
	}

	// Three same-shape findings collapse into one task; the injection
	// finding stays separate.
	if len(security) != 2 {
		t.Fatalf("got %d security tasks, want 2", len(security))
	}
	if !strings.Contains(security[0].Description, "3 occurrences") {
		t.Errorf("clustered task does not mention occurrence count: %q", security[0].Description)
	}
	if security[0].EstimateHours != 12 {
		t.Errorf("clustered task hours = %d, want 12", security[0].EstimateHours)
	}
}

func TestGenerateEffortScalesWithComplexity(t *testing.T) {
	health := scoring.NewRepoHealthScore(0, 3, 3, 3)
	debt := scoring.NewTechDebtScore(3, 3, 3, 3, 3)

	small := NewGenerator().Generate(health, debt, nil, facts.StructureData{}, classify.RndSpike, classify.Small)
	xlarge := NewGenerator().Generate(health, debt, nil, facts.StructureData{}, classify.RndSpike, classify.XLarge)

	if len(small) != 1 || len(xlarge) != 1 {
		t.Fatalf("expected exactly one task each, got %d and %d", len(small), len(xlarge))
	}
	if small[0].EstimateHours != 8 {
		t.Errorf("small readme task = %dh, want 8", small[0].EstimateHours)
	}
	if xlarge[0].EstimateHours != 24 {
		t.Errorf("xlarge readme task = %dh, want 24", xlarge[0].EstimateHours)
	}
}

func TestGenerateLabels(t *testing.T) {
	out := NewGenerator().Generate(
		scoring.NewRepoHealthScore(0, 3, 3, 3),
		scoring.NewTechDebtScore(3, 3, 3, 3, 3),
		nil, facts.StructureData{}, classify.InternalTool, classify.Medium,
	)
	if len(out) != 1 {
		t.Fatalf("expected one task, got %d", len(out))
	}

	want := []string{"repoaudit", "level:internal_tool", "size:medium"}
	for _, label := range want {
		found := false
		for _, l := range out[0].Labels {
			if l == label {
				found = true
			}
		}
		if !found {
			t.Errorf("task labels %v missing %q", out[0].Labels, label)
		}
	}
}

func TestGenerateRunabilityUsesDockerSignal(t *testing.T) {
	health := scoring.NewRepoHealthScore(3, 3, 1, 3)
	debt := scoring.NewTechDebtScore(3, 3, 3, 3, 3)

	without := NewGenerator().Generate(health, debt, nil,
		facts.StructureData{}, classify.Prototype, classify.Small)
	with := NewGenerator().Generate(health, debt, nil,
		facts.StructureData{HasDockerfile: true}, classify.Prototype, classify.Small)

	if len(without) != 1 || len(with) != 1 {
		t.Fatalf("expected one task each, got %d and %d", len(without), len(with))
	}
	if !strings.Contains(without[0].Title, "Containerize") {
		t.Errorf("without dockerfile: title %q, want containerization task", without[0].Title)
	}
	if !strings.Contains(with[0].Title, "Document") {
		t.Errorf("with dockerfile: title %q, want documentation task", with[0].Title)
	}
}

func TestFindingSignature(t *testing.T) {
	a := facts.Finding{Category: "secrets", Message: "Hardcoded  API key"}
	b := facts.Finding{Category: "secrets", Message: "hardcoded api KEY"}
	c := facts.Finding{Category: "crypto", Message: "hardcoded api key"}

	if FindingSignature(a) != FindingSignature(b) {
		t.Error("whitespace and case variants should share a signature")
	}
	if FindingSignature(a) == FindingSignature(c) {
		t.Error("different categories should not share a signature")
	}
	if len(FindingSignature(a)) != 16 {
		t.Errorf("signature length = %d, want 16 hex chars", len(FindingSignature(a)))
	}
}
