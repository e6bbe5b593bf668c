package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"repoaudit/internal/calibration"
	"repoaudit/internal/errors"
	"repoaudit/internal/estimate"
	"repoaudit/internal/report"
	"repoaudit/internal/tasks"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", errors.New(errors.FormatInvalid,
			fmt.Sprintf("unsupported format: %s", format), nil)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *report.Report:
		return formatReportHuman(v), nil
	case []tasks.GeneratedTask:
		return formatTasksHuman(v), nil
	case *estimatesResponse:
		return formatEstimatesHuman(v), nil
	case []calibration.Adjustment:
		return formatAdjustmentsHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatReportHuman(r *report.Report) string {
	var b strings.Builder

	title := "Repository Audit"
	if r.Repo != "" {
		title += ": " + r.Repo
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString(fmt.Sprintf("Analysis: %s (%s)\n\n", r.AnalysisID, r.AnalyzedAt.Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("Repo Health: %d/%d\n", r.RepoHealth.Total, r.RepoHealth.MaxPossible))
	b.WriteString(fmt.Sprintf("  Documentation:  %d/3\n", r.RepoHealth.Documentation))
	b.WriteString(fmt.Sprintf("  Structure:      %d/3\n", r.RepoHealth.Structure))
	b.WriteString(fmt.Sprintf("  Runability:     %d/3\n", r.RepoHealth.Runability))
	b.WriteString(fmt.Sprintf("  Commit History: %d/3\n\n", r.RepoHealth.CommitHistory))

	b.WriteString(fmt.Sprintf("Tech Debt: %d/%d\n", r.TechDebt.Total, r.TechDebt.MaxPossible))
	b.WriteString(fmt.Sprintf("  Architecture:   %d/3\n", r.TechDebt.Architecture))
	b.WriteString(fmt.Sprintf("  Code Quality:   %d/3\n", r.TechDebt.CodeQuality))
	b.WriteString(fmt.Sprintf("  Testing:        %d/3\n", r.TechDebt.Testing))
	b.WriteString(fmt.Sprintf("  Infrastructure: %d/3\n", r.TechDebt.Infrastructure))
	b.WriteString(fmt.Sprintf("  Security/Deps:  %d/3\n\n", r.TechDebt.SecurityDeps))

	b.WriteString(fmt.Sprintf("Product Level: %s\n", r.ProductLevel))
	b.WriteString(fmt.Sprintf("  %s\n", r.LevelNote))
	b.WriteString(fmt.Sprintf("Complexity: %s\n\n", r.Complexity))

	b.WriteString(formatForwardHuman(&r.Forward))
	b.WriteString(formatHistoricalHuman(&r.Historical))

	b.WriteString(fmt.Sprintf("Backlog: %d tasks (%d P1, %d security)\n",
		r.Summary.TaskCount, r.Summary.P1Count, r.Summary.SecurityTasks))
	for _, t := range r.Tasks {
		b.WriteString(fmt.Sprintf("  [%s] %s (%s, ~%dh)\n", t.Priority, t.Title, t.Category, t.EstimateHours))
	}

	return b.String()
}

func formatForwardHuman(f *estimate.ForwardEstimate) string {
	var b strings.Builder
	b.WriteString("Forward Estimate:\n")
	b.WriteString(fmt.Sprintf("  Hours: %.0f / %.0f / %.0f (min/typical/max, debt multiplier %.2f)\n",
		f.Hours.Min.Total, f.Hours.Typical.Total, f.Hours.Max.Total, f.TechDebtMultiplier))
	b.WriteString(fmt.Sprintf("  Cost EU: %.0f-%.0f %s\n", f.Cost.EU.Min, f.Cost.EU.Max, f.Cost.EU.Currency))
	b.WriteString(fmt.Sprintf("  Cost UA: %.0f-%.0f %s\n\n", f.Cost.UA.Min, f.Cost.UA.Max, f.Cost.UA.Currency))
	return b.String()
}

func formatHistoricalHuman(h *estimate.HistoricalEstimate) string {
	var b strings.Builder
	b.WriteString("Historical Estimate:\n")
	b.WriteString(fmt.Sprintf("  Active Days: %d\n", h.ActiveDays))
	b.WriteString(fmt.Sprintf("  Hours: %.0f-%.0f (%.1f-%.1f person-months)\n",
		h.Hours.Min, h.Hours.Max, h.PersonMonths.Min, h.PersonMonths.Max))
	b.WriteString(fmt.Sprintf("  Confidence: %s\n", h.Confidence))
	b.WriteString(fmt.Sprintf("  Note: %s\n\n", h.Note))
	return b.String()
}

func formatTasksHuman(list []tasks.GeneratedTask) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Remediation Backlog (%d tasks)\n", len(list)))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for i, t := range list {
		b.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, t.Priority, t.Title))
		b.WriteString(fmt.Sprintf("   Category: %s, Estimate: %dh\n", t.Category, t.EstimateHours))
		b.WriteString(fmt.Sprintf("   %s\n", t.Description))
		if len(t.Labels) > 0 {
			b.WriteString(fmt.Sprintf("   Labels: %s\n", strings.Join(t.Labels, ", ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatEstimatesHuman(e *estimatesResponse) string {
	var b strings.Builder
	b.WriteString("Cost Estimates\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Complexity: %s\n\n", e.Complexity))
	b.WriteString(formatForwardHuman(&e.Forward))
	b.WriteString(formatHistoricalHuman(&e.Historical))
	return b.String()
}

func formatAdjustmentsHuman(adjs []calibration.Adjustment) string {
	var b strings.Builder
	b.WriteString("Calibration Adjustments\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if len(adjs) == 0 {
		b.WriteString("No calibration samples recorded yet.\n")
		return b.String()
	}
	for _, a := range adjs {
		b.WriteString(fmt.Sprintf("  %-8s x%.2f (%d samples)\n", a.Complexity, a.Multiplier, a.Samples))
	}
	return b.String()
}
