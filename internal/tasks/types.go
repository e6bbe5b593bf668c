// Package tasks generates the prioritized remediation backlog from the
// scoring breakdown and raw security findings. Tasks are ephemeral: they are
// regenerated on every analysis, never mutated afterwards, and persisted only
// as a flat list.
package tasks

// Category classifies what kind of remediation a task is.
type Category string

const (
	CategoryDocumentation  Category = "documentation"
	CategoryTesting        Category = "testing"
	CategoryRefactoring    Category = "refactoring"
	CategoryInfrastructure Category = "infrastructure"
	CategorySecurity       Category = "security"
)

// Priority orders tasks: P1 is the most urgent.
type Priority string

const (
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
)

// Rank returns a sortable weight: lower ranks sort first.
func (p Priority) Rank() int {
	switch p {
	case PriorityP1:
		return 1
	case PriorityP2:
		return 2
	case PriorityP3:
		return 3
	default:
		return 4
	}
}

// Source tags identifying which rule family emitted a task.
const (
	SourceRepoHealth = "repo_health"
	SourceTechDebt   = "tech_debt"
	SourceSecurity   = "security_scan"
)

// GeneratedTask is one remediation backlog entry.
type GeneratedTask struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      Category `json:"category"`
	Priority      Priority `json:"priority"`
	EstimateHours int      `json:"estimate_hours"`
	Labels        []string `json:"labels"`
	Source        string   `json:"source"`
}
