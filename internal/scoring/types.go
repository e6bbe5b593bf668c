// Package scoring computes the bounded repository health and technical debt
// scores. Both calculators are pure functions over extractor facts: missing
// signals default to zero and every sub-score clamps to [0,3] at computation
// time, so scoring never fails.
package scoring

// Sub-score bounds shared by both scorecards.
const (
	SubScoreMax = 3

	RepoHealthMax = 12
	TechDebtMax   = 15
)

// RepoHealthScore is the 4-dimension repository hygiene score, bounded [0,12].
type RepoHealthScore struct {
	Documentation int `json:"documentation"`
	Structure     int `json:"structure"`
	Runability    int `json:"runability"`
	CommitHistory int `json:"commit_history"`
	Total         int `json:"total"`
	MaxPossible   int `json:"max_possible"`
}

// NewRepoHealthScore clamps each sub-score and fills the derived fields.
func NewRepoHealthScore(documentation, structure, runability, commitHistory int) RepoHealthScore {
	s := RepoHealthScore{
		Documentation: clampSubScore(documentation),
		Structure:     clampSubScore(structure),
		Runability:    clampSubScore(runability),
		CommitHistory: clampSubScore(commitHistory),
		MaxPossible:   RepoHealthMax,
	}
	s.Total = s.Documentation + s.Structure + s.Runability + s.CommitHistory
	return s
}

// TechDebtScore is the 5-dimension debt score, bounded [0,15].
// Higher means healthier: it measures the absence of debt.
type TechDebtScore struct {
	Architecture   int `json:"architecture"`
	CodeQuality    int `json:"code_quality"`
	Testing        int `json:"testing"`
	Infrastructure int `json:"infrastructure"`
	SecurityDeps   int `json:"security_deps"`
	Total          int `json:"total"`
	MaxPossible    int `json:"max_possible"`
}

// NewTechDebtScore clamps each sub-score and fills the derived fields.
func NewTechDebtScore(architecture, codeQuality, testing, infrastructure, securityDeps int) TechDebtScore {
	s := TechDebtScore{
		Architecture:   clampSubScore(architecture),
		CodeQuality:    clampSubScore(codeQuality),
		Testing:        clampSubScore(testing),
		Infrastructure: clampSubScore(infrastructure),
		SecurityDeps:   clampSubScore(securityDeps),
		MaxPossible:    TechDebtMax,
	}
	s.Total = s.Architecture + s.CodeQuality + s.Testing + s.Infrastructure + s.SecurityDeps
	return s
}

// Debt returns the inverse of the score: points lost to debt, in [0,15].
func (s TechDebtScore) Debt() int {
	return TechDebtMax - s.Total
}

func clampSubScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > SubScoreMax {
		return SubScoreMax
	}
	return v
}
