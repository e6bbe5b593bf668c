// Package facts defines the input contracts produced by the fact extractors.
// The scoring core consumes these structures as-is; extraction (cloning,
// static-analysis tooling, git mining) happens upstream and is out of scope.
package facts

import (
	"encoding/json"
	"fmt"
	"os"
)

// Severity levels reported by the security scanner.
const (
	SeverityError   = "ERROR"
	SeverityWarning = "WARNING"
	SeverityInfo    = "INFO"
)

// StructureData describes repository hygiene signals gathered from the
// working tree and git history. Extractors may omit any signal they could
// not detect; absent keys decode to zero values.
type StructureData struct {
	HasReadme           bool     `json:"has_readme"`
	ReadmeHasUsage      bool     `json:"readme_has_usage"`
	ReadmeHasInstall    bool     `json:"readme_has_install"`
	HasDocsFolder       bool     `json:"has_docs_folder"`
	HasArchitectureDocs bool     `json:"has_architecture_docs"`
	DirectoryStructure  []string `json:"directory_structure"`
	DependencyFiles     []string `json:"dependency_files"`
	HasDockerfile       bool     `json:"has_dockerfile"`
	HasDockerCompose    bool     `json:"has_docker_compose"`
	HasRunInstructions  bool     `json:"has_run_instructions"`
	CommitsTotal        int      `json:"commits_total"`
	AuthorsCount        int      `json:"authors_count"`
	RecentCommits       int      `json:"recent_commits"`
	HasVersionFile      bool     `json:"has_version_file"`
	HasAPIDocs          bool     `json:"has_api_docs"`
}

// StaticMetrics describes measurements from the static-analysis pass.
// HasDockerfile is mirrored from the structure scan so the infrastructure
// gate can score containerization without reaching into StructureData.
type StaticMetrics struct {
	TotalLOC             int     `json:"total_loc"`
	FilesCount           int     `json:"files_count"`
	TestFilesCount       int     `json:"test_files_count"`
	MaxFileLines         int     `json:"max_file_lines"`
	MaxFunctionLines     int     `json:"max_function_lines"`
	HasClearLayers       bool    `json:"has_clear_layers"`
	DuplicationPercent   float64 `json:"duplication_percent"`
	CyclomaticComplexity float64 `json:"cyclomatic_complexity_avg"`
	CodeSmellsPerKloc    float64 `json:"code_smells_per_kloc"`
	TestCoverage         float64 `json:"test_coverage"`
	HasDockerfile        bool    `json:"has_dockerfile"`
	HasCI                bool    `json:"has_ci"`
	CIHasTests           bool    `json:"ci_has_tests"`
	HasDeployConfig      bool    `json:"has_deploy_config"`
	ExternalDepsCount    int     `json:"external_deps_count"`
}

// Finding is a single security-scanner result.
type Finding struct {
	Severity string `json:"severity"`
	Category string `json:"category"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

// Facts bundles one completed extraction snapshot for a repository.
type Facts struct {
	Repo          string        `json:"repo,omitempty"`
	StructureData StructureData `json:"structure_data"`
	StaticMetrics StaticMetrics `json:"static_metrics"`
	Findings      []Finding     `json:"semgrep_findings"`
}

// Load reads a facts snapshot from a JSON file written by the extractors.
// Unknown keys are ignored and missing keys default to zero values so that
// older or partial extractor output still scores.
func Load(path string) (*Facts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read facts file: %w", err)
	}

	var f Facts
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse facts file: %w", err)
	}
	return &f, nil
}

// CriticalFindings returns the findings with ERROR severity.
func (f *Facts) CriticalFindings() []Finding {
	return FilterBySeverity(f.Findings, SeverityError)
}

// FilterBySeverity returns the findings matching the given severity.
func FilterBySeverity(findings []Finding, severity string) []Finding {
	out := make([]Finding, 0, len(findings))
	for _, fd := range findings {
		if fd.Severity == severity {
			out = append(out, fd)
		}
	}
	return out
}
