package tasks

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"

	"repoaudit/internal/classify"
	"repoaudit/internal/facts"
	"repoaudit/internal/scoring"
)

// effortScale inflates task hour estimates for larger codebases: the same
// deficiency costs more to fix in a bigger repository.
var effortScale = map[classify.Complexity]float64{
	classify.Small:  1.0,
	classify.Medium: 1.5,
	classify.Large:  2.0,
	classify.XLarge: 3.0,
}

// Generator emits remediation tasks from a completed scoring pass.
type Generator struct{}

// NewGenerator creates a task generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate runs the rule table and returns the deduplicated backlog,
// stably sorted by priority with ties kept in generation order. Dimensions
// already at their maximum score emit nothing.
func (g *Generator) Generate(
	health scoring.RepoHealthScore,
	debt scoring.TechDebtScore,
	findings []facts.Finding,
	structure facts.StructureData,
	level classify.ProductLevel,
	complexity classify.Complexity,
) []GeneratedTask {
	scale := effortScale[complexity]
	labels := []string{
		"repoaudit",
		"level:" + level.String(),
		"size:" + complexity.String(),
	}

	out := make([]GeneratedTask, 0, 16)
	emit := func(t GeneratedTask) {
		t.EstimateHours = scaleHours(t.EstimateHours, scale)
		t.Labels = append(append([]string(nil), labels...), t.Labels...)
		out = append(out, t)
	}

	g.documentationRules(health, emit)
	g.structureRules(health, emit)
	g.runabilityRules(health, structure, emit)
	g.testingRules(debt, emit)
	g.architectureRules(debt, emit)
	g.codeQualityRules(debt, emit)
	g.infrastructureRules(debt, emit)
	g.securityRules(findings, emit)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

func (g *Generator) documentationRules(health scoring.RepoHealthScore, emit func(GeneratedTask)) {
	switch health.Documentation {
	case 0:
		emit(GeneratedTask{
			Title:         "Write a project README",
			Description:   "The repository has no README. Add one covering purpose, installation, and usage.",
			Category:      CategoryDocumentation,
			Priority:      PriorityP1,
			EstimateHours: 8,
			Source:        SourceRepoHealth,
		})
	case 1:
		emit(GeneratedTask{
			Title:         "Expand the README with usage and install sections",
			Description:   "The README exists but lacks usage or installation instructions.",
			Category:      CategoryDocumentation,
			Priority:      PriorityP2,
			EstimateHours: 4,
			Source:        SourceRepoHealth,
		})
	case 2:
		emit(GeneratedTask{
			Title:         "Add architecture documentation",
			Description:   "Document the system architecture and module boundaries in a docs folder.",
			Category:      CategoryDocumentation,
			Priority:      PriorityP3,
			EstimateHours: 8,
			Source:        SourceRepoHealth,
		})
	}
}

func (g *Generator) structureRules(health scoring.RepoHealthScore, emit func(GeneratedTask)) {
	if health.Structure <= 1 {
		emit(GeneratedTask{
			Title:         "Reorganize the repository layout",
			Description:   "Introduce a conventional directory structure separating source, tests, and configuration.",
			Category:      CategoryRefactoring,
			Priority:      PriorityP2,
			EstimateHours: 16,
			Source:        SourceRepoHealth,
		})
	}
}

func (g *Generator) runabilityRules(health scoring.RepoHealthScore, structure facts.StructureData, emit func(GeneratedTask)) {
	switch health.Runability {
	case 0:
		emit(GeneratedTask{
			Title:         "Add a dependency manifest",
			Description:   "The repository cannot be built reproducibly: no dependency manifest was found.",
			Category:      CategoryInfrastructure,
			Priority:      PriorityP1,
			EstimateHours: 4,
			Source:        SourceRepoHealth,
		})
	case 1:
		title := "Containerize the application"
		desc := "Add a Dockerfile (and compose file) so the project runs the same everywhere."
		if structure.HasDockerfile {
			title = "Document how to run the project"
			desc = "Containerization exists but the README gives no run instructions."
		}
		emit(GeneratedTask{
			Title:         title,
			Description:   desc,
			Category:      CategoryInfrastructure,
			Priority:      PriorityP2,
			EstimateHours: 8,
			Source:        SourceRepoHealth,
		})
	}
}

func (g *Generator) testingRules(debt scoring.TechDebtScore, emit func(GeneratedTask)) {
	switch debt.Testing {
	case 0:
		emit(GeneratedTask{
			Title:         "Add a test suite",
			Description:   "No test files were found. Start with tests for the core business logic.",
			Category:      CategoryTesting,
			Priority:      PriorityP1,
			EstimateHours: 24,
			Source:        SourceTechDebt,
		})
	case 1:
		emit(GeneratedTask{
			Title:         "Raise test coverage",
			Description:   "Tests exist but coverage is thin. Target the highest-risk modules first.",
			Category:      CategoryTesting,
			Priority:      PriorityP2,
			EstimateHours: 16,
			Source:        SourceTechDebt,
		})
	}
}

func (g *Generator) architectureRules(debt scoring.TechDebtScore, emit func(GeneratedTask)) {
	if debt.Architecture <= 1 {
		emit(GeneratedTask{
			Title:         "Split oversized files and introduce layering",
			Description:   "Very large files and missing layer boundaries make changes risky. Break the biggest files apart along responsibility lines.",
			Category:      CategoryRefactoring,
			Priority:      PriorityP2,
			EstimateHours: 24,
			Source:        SourceTechDebt,
		})
	}
}

func (g *Generator) codeQualityRules(debt scoring.TechDebtScore, emit func(GeneratedTask)) {
	if debt.CodeQuality <= 1 {
		emit(GeneratedTask{
			Title:         "Reduce duplication and code smells",
			Description:   "Duplication or smell density is high. Extract shared helpers and simplify the worst offenders.",
			Category:      CategoryRefactoring,
			Priority:      PriorityP2,
			EstimateHours: 16,
			Source:        SourceTechDebt,
		})
	}
}

func (g *Generator) infrastructureRules(debt scoring.TechDebtScore, emit func(GeneratedTask)) {
	switch debt.Infrastructure {
	case 0:
		emit(GeneratedTask{
			Title:         "Add a CI pipeline",
			Description:   "No continuous integration is configured. Add a pipeline that builds the project on every push.",
			Category:      CategoryInfrastructure,
			Priority:      PriorityP2,
			EstimateHours: 8,
			Source:        SourceTechDebt,
		})
	case 1:
		emit(GeneratedTask{
			Title:         "Run the test suite in CI",
			Description:   "CI exists but does not gate on tests, containerization, or deploy config. Close the gaps.",
			Category:      CategoryInfrastructure,
			Priority:      PriorityP3,
			EstimateHours: 4,
			Source:        SourceTechDebt,
		})
	}
}

// securityRules clusters ERROR findings by message signature and emits one
// P1 task per cluster. Repeated findings of the same shape across many
// files collapse into a single task.
func (g *Generator) securityRules(findings []facts.Finding, emit func(GeneratedTask)) {
	type cluster struct {
		finding facts.Finding
		count   int
	}

	order := make([]string, 0, 8)
	clusters := make(map[string]*cluster, 8)
	for _, f := range facts.FilterBySeverity(findings, facts.SeverityError) {
		sig := FindingSignature(f)
		if c, ok := clusters[sig]; ok {
			c.count++
			continue
		}
		clusters[sig] = &cluster{finding: f, count: 1}
		order = append(order, sig)
	}

	// Non-critical findings still warrant one review task, so a scan that
	// produced any findings always surfaces in the backlog.
	if len(order) == 0 && len(findings) > 0 {
		emit(GeneratedTask{
			Title:         "Review security scanner warnings",
			Description:   fmt.Sprintf("The scanner reported %d non-critical finding(s). Triage and fix or suppress them.", len(findings)),
			Category:      CategorySecurity,
			Priority:      PriorityP2,
			EstimateHours: 4,
			Source:        SourceSecurity,
		})
		return
	}

	for _, sig := range order {
		c := clusters[sig]
		desc := fmt.Sprintf("Security scanner reported: %s (first seen in %s).", c.finding.Message, c.finding.Path)
		if c.count > 1 {
			desc = fmt.Sprintf("Security scanner reported %d occurrences: %s (first seen in %s).",
				c.count, c.finding.Message, c.finding.Path)
		}
		emit(GeneratedTask{
			Title:         "Fix security finding: " + truncate(c.finding.Message, 80),
			Description:   desc,
			Category:      CategorySecurity,
			Priority:      PriorityP1,
			EstimateHours: 4 * c.count,
			Labels:        []string{"finding:" + c.finding.Category},
			Source:        SourceSecurity,
		})
	}
}

// FindingSignature hashes the normalized finding message and category into
// a stable cluster key. Paths are excluded so the same defect reported in
// many files dedupes to one task.
func FindingSignature(f facts.Finding) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(f.Message), " "))
	sum := blake2b.Sum256([]byte(f.Category + "|" + normalized))
	return fmt.Sprintf("%x", sum[:8])
}

func scaleHours(base int, scale float64) int {
	if scale <= 0 {
		scale = 1
	}
	scaled := int(math.Round(float64(base) * scale))
	if scaled < 1 {
		return 1
	}
	return scaled
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
