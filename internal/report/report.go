// Package report assembles one full analysis result: scorecards,
// classifications, both cost estimates, and the generated backlog.
package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"repoaudit/internal/classify"
	"repoaudit/internal/config"
	"repoaudit/internal/estimate"
	"repoaudit/internal/facts"
	"repoaudit/internal/scoring"
	"repoaudit/internal/tasks"
)

// Summary aggregates backlog counts for quick triage.
type Summary struct {
	TaskCount        int `json:"task_count"`
	P1Count          int `json:"p1_count"`
	SecurityTasks    int `json:"security_tasks"`
	CriticalFindings int `json:"critical_findings"`
}

// Report is the complete output of one analysis.
type Report struct {
	AnalysisID   string                      `json:"analysis_id"`
	Repo         string                      `json:"repo"`
	AnalyzedAt   time.Time                   `json:"analyzed_at"`
	RepoHealth   scoring.RepoHealthScore     `json:"repo_health"`
	TechDebt     scoring.TechDebtScore       `json:"tech_debt"`
	ProductLevel classify.ProductLevel       `json:"product_level"`
	LevelNote    string                      `json:"product_level_description"`
	Complexity   classify.Complexity         `json:"complexity"`
	Forward      estimate.ForwardEstimate    `json:"forward_estimate"`
	Historical   estimate.HistoricalEstimate `json:"historical_estimate"`
	Tasks        []tasks.GeneratedTask       `json:"tasks"`
	Summary      Summary                     `json:"summary"`
}

// Options tune report assembly.
type Options struct {
	// Repo overrides the repository name from the facts file.
	Repo string
	// CalibrationAdjustment scales the forward estimate; 1.0 (or 0) is
	// neutral.
	CalibrationAdjustment float64
}

// Build runs the full scoring pipeline over one facts snapshot. The
// pipeline is pure and total: Build never fails on any facts content.
func Build(f *facts.Facts, cfg *config.Config, opts Options) *Report {
	health := scoring.CalculateRepoHealth(f.StructureData)
	debt := scoring.CalculateTechDebt(f.StaticMetrics, f.Findings)
	level := classify.ClassifyProductLevel(health, debt, f.StructureData)
	complexity := classify.ClassifyComplexity(f.StaticMetrics, health, debt)

	adjustment := opts.CalibrationAdjustment
	if adjustment <= 0 {
		adjustment = 1.0
	}
	forward := estimate.ForwardCalibrated(complexity, debt, cfg, adjustment)
	historical := estimate.Historical(f.StructureData, cfg)

	backlog := tasks.NewGenerator().Generate(health, debt, f.Findings, f.StructureData, level, complexity)

	repo := opts.Repo
	if repo == "" {
		repo = f.Repo
	}

	r := &Report{
		AnalysisID:   uuid.New().String(),
		Repo:         repo,
		AnalyzedAt:   time.Now().UTC(),
		RepoHealth:   health,
		TechDebt:     debt,
		ProductLevel: level,
		LevelNote:    level.Description(),
		Complexity:   complexity,
		Forward:      forward,
		Historical:   historical,
		Tasks:        backlog,
	}
	r.Summary = summarize(r, f)
	return r
}

func summarize(r *Report, f *facts.Facts) Summary {
	s := Summary{
		TaskCount:        len(r.Tasks),
		CriticalFindings: len(f.CriticalFindings()),
	}
	for _, t := range r.Tasks {
		if t.Priority == tasks.PriorityP1 {
			s.P1Count++
		}
		if t.Category == tasks.CategorySecurity {
			s.SecurityTasks++
		}
	}
	return s
}

// ToJSON serializes the report as indented JSON.
func (r *Report) ToJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}

// ToYAML serializes the report for human-oriented pipelines.
func (r *Report) ToYAML() (string, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}
