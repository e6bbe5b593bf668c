package export

import (
	"path/filepath"
	"strings"
	"testing"

	"repoaudit/internal/config"
	"repoaudit/internal/facts"
	"repoaudit/internal/report"
)

func sampleAnalysis() (*report.Report, *facts.Facts) {
	f := &facts.Facts{
		Repo: "billing-service",
		StructureData: facts.StructureData{
			HasReadme:    true,
			CommitsTotal: 120,
			AuthorsCount: 2,
		},
		StaticMetrics: facts.StaticMetrics{
			TotalLOC:       18000,
			FilesCount:     150,
			TestFilesCount: 20,
		},
		Findings: []facts.Finding{
			{Severity: facts.SeverityError, Category: "secrets", Message: "hardcoded key", Path: "cfg.py"},
		},
	}
	return report.Build(f, config.Default(), report.Options{}), f
}

func TestBundleRoundTrip(t *testing.T) {
	r, f := sampleAnalysis()
	path := filepath.Join(t.TempDir(), "audit.tar.zst")

	if err := Bundle(r, f, path); err != nil {
		t.Fatalf("Bundle() failed: %v", err)
	}

	gotReport, gotFacts, err := ReadBundle(path)
	if err != nil {
		t.Fatalf("ReadBundle() failed: %v", err)
	}

	if gotReport.AnalysisID != r.AnalysisID {
		t.Errorf("AnalysisID = %q, want %q", gotReport.AnalysisID, r.AnalysisID)
	}
	if gotReport.ProductLevel != r.ProductLevel || gotReport.Complexity != r.Complexity {
		t.Errorf("classifications changed: %s/%s, want %s/%s",
			gotReport.ProductLevel, gotReport.Complexity, r.ProductLevel, r.Complexity)
	}
	if gotReport.RepoHealth.Total != r.RepoHealth.Total {
		t.Errorf("health total = %d, want %d", gotReport.RepoHealth.Total, r.RepoHealth.Total)
	}
	if len(gotReport.Tasks) != len(r.Tasks) {
		t.Errorf("task count = %d, want %d", len(gotReport.Tasks), len(r.Tasks))
	}

	if gotFacts == nil {
		t.Fatal("bundle lost the facts snapshot")
	}
	if gotFacts.Repo != f.Repo || gotFacts.StaticMetrics.TotalLOC != f.StaticMetrics.TotalLOC {
		t.Errorf("facts changed: %+v", gotFacts)
	}
	if len(gotFacts.Findings) != 1 {
		t.Errorf("findings count = %d, want 1", len(gotFacts.Findings))
	}
}

func TestReadBundleErrors(t *testing.T) {
	if _, _, err := ReadBundle(filepath.Join(t.TempDir(), "missing.tar.zst")); err == nil {
		t.Error("expected error for missing bundle")
	}
}

func TestDefaultBundleName(t *testing.T) {
	r, _ := sampleAnalysis()
	name := DefaultBundleName(r)

	if !strings.HasPrefix(name, "billing-service-") {
		t.Errorf("bundle name %q does not start with repo name", name)
	}
	if !strings.HasSuffix(name, ".repoaudit.tar.zst") {
		t.Errorf("bundle name %q has wrong suffix", name)
	}

	r.Repo = ""
	if !strings.HasPrefix(DefaultBundleName(r), "analysis-") {
		t.Errorf("anonymous bundle name %q lacks fallback prefix", DefaultBundleName(r))
	}
}
