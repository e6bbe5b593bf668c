package scoring

import (
	"repoaudit/internal/facts"
)

// CalculateTechDebt maps static-analysis metrics and security findings to the
// 5-dimension debt score. Higher is healthier.
func CalculateTechDebt(metrics facts.StaticMetrics, findings []facts.Finding) TechDebtScore {
	return NewTechDebtScore(
		scoreArchitecture(metrics),
		scoreCodeQuality(metrics),
		scoreTesting(metrics),
		scoreInfrastructure(metrics),
		scoreSecurityDeps(findings),
	)
}

// scoreArchitecture penalizes oversized files and functions, rewards detected
// layering. A >1000-line file with no layering is an automatic zero.
func scoreArchitecture(m facts.StaticMetrics) int {
	if m.MaxFileLines > 1000 && !m.HasClearLayers {
		return 0
	}

	score := 0
	if m.HasClearLayers {
		score++
	}
	if m.MaxFileLines > 0 && m.MaxFileLines < 300 {
		score++
	}
	if m.MaxFunctionLines > 0 && m.MaxFunctionLines <= 60 {
		score++
	}
	return score
}

// scoreCodeQuality is an inverse function of duplication and smell density.
// Duplication at or above 20% is an automatic zero regardless of other signals.
func scoreCodeQuality(m facts.StaticMetrics) int {
	if m.DuplicationPercent >= 20 {
		return 0
	}

	switch {
	case m.DuplicationPercent < 3 && m.CodeSmellsPerKloc < 5 && m.CyclomaticComplexity < 10:
		return 3
	case m.DuplicationPercent < 10 && m.CodeSmellsPerKloc < 15:
		return 2
	default:
		return 1
	}
}

func scoreTesting(m facts.StaticMetrics) int {
	if m.TestFilesCount == 0 {
		return 0
	}

	ratio := 0.0
	if m.FilesCount > 0 {
		ratio = float64(m.TestFilesCount) / float64(m.FilesCount)
	}

	switch {
	case m.TestCoverage >= 70 && ratio >= 0.2:
		return 3
	case m.TestCoverage >= 40 || ratio >= 0.2:
		return 2
	default:
		return 1
	}
}

// scoreInfrastructure is an additive gate over four signals: CI configured,
// CI running tests, containerization, deploy config.
func scoreInfrastructure(m facts.StaticMetrics) int {
	present := 0
	if m.HasCI {
		present++
	}
	if m.CIHasTests {
		present++
	}
	if m.HasDockerfile {
		present++
	}
	if m.HasDeployConfig {
		present++
	}

	switch present {
	case 4:
		return 3
	case 3:
		return 2
	case 2, 1:
		return 1
	default:
		return 0
	}
}

// scoreSecurityDeps is an inverse function of ERROR-severity finding count.
func scoreSecurityDeps(findings []facts.Finding) int {
	critical := len(facts.FilterBySeverity(findings, facts.SeverityError))
	switch {
	case critical == 0:
		return 3
	case critical <= 2:
		return 2
	case critical <= 4:
		return 1
	default:
		return 0
	}
}
