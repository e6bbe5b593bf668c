package scoring

import (
	"path"
	"strings"

	"repoaudit/internal/facts"
)

// Directory-name buckets counted as recognized architectural patterns.
// Each bucket contributes at most one point of evidence.
var structurePatterns = map[string][]string{
	"source":  {"src", "lib", "app", "internal", "pkg", "cmd"},
	"tests":   {"test", "tests", "spec", "specs", "__tests__"},
	"config":  {"config", "configs", "conf", "settings"},
	"docs":    {"docs", "doc", "documentation"},
	"scripts": {"scripts", "tools", "bin"},
}

// CalculateRepoHealth maps structure facts to the 4-dimension hygiene score.
func CalculateRepoHealth(structure facts.StructureData) RepoHealthScore {
	return NewRepoHealthScore(
		scoreDocumentation(structure),
		scoreStructure(structure),
		scoreRunability(structure),
		scoreCommitHistory(structure),
	)
}

// scoreDocumentation applies additive evidence gates: every tier requires
// strictly more evidence than the previous one.
func scoreDocumentation(s facts.StructureData) int {
	if !s.HasReadme {
		return 0
	}
	if s.HasDocsFolder && s.HasArchitectureDocs {
		return 3
	}
	if s.ReadmeHasUsage || s.ReadmeHasInstall || s.HasDocsFolder {
		return 2
	}
	return 1
}

// scoreStructure counts distinct recognized directory patterns in the
// top-level listing: 0, 1, 2, or 3-and-above points.
func scoreStructure(s facts.StructureData) int {
	matched := make(map[string]bool, len(structurePatterns))
	for _, dir := range s.DirectoryStructure {
		name := strings.ToLower(path.Base(strings.Trim(dir, "/")))
		for bucket, names := range structurePatterns {
			for _, n := range names {
				if name == n {
					matched[bucket] = true
				}
			}
		}
	}
	if len(matched) > SubScoreMax {
		return SubScoreMax
	}
	return len(matched)
}

func scoreRunability(s facts.StructureData) int {
	if len(s.DependencyFiles) == 0 {
		return 0
	}
	if s.HasDockerfile && s.HasDockerCompose && s.HasRunInstructions {
		return 3
	}
	if s.HasDockerfile || s.HasDockerCompose {
		return 2
	}
	return 1
}

// scoreCommitHistory buckets on volume, recency, and contributor spread.
// Boundaries: <10 commits never scores; hundreds of commits with sustained
// recent multi-author activity earns the maximum.
func scoreCommitHistory(s facts.StructureData) int {
	switch {
	case s.CommitsTotal < 10:
		return 0
	case s.CommitsTotal < 100:
		if s.RecentCommits > 0 && s.AuthorsCount >= 1 {
			return 2
		}
		return 1
	default:
		if s.RecentCommits >= 10 && s.AuthorsCount >= 2 {
			return 3
		}
		return 2
	}
}
