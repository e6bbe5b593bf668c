package estimate

import (
	"fmt"
	"math"

	"repoaudit/internal/config"
	"repoaudit/internal/facts"
)

// Historical derives a retrospective cost estimate from commit velocity.
// It never fails: a repository with no usable history yields a
// low-confidence estimate with zero bounds and an explanatory note.
func Historical(structure facts.StructureData, cfg *config.Config) HistoricalEstimate {
	h := cfg.Historical

	commits := structure.CommitsTotal
	authors := structure.AuthorsCount
	if authors < 1 {
		authors = 1
	}

	activeDays := 0
	if commits > 0 {
		activeDays = int(math.Ceil(float64(commits) / h.CommitsPerActiveDay))
	}

	team := float64(authors)
	hours := HourRange{
		Min: float64(activeDays) * h.HoursPerDayMin * team,
		Max: float64(activeDays) * h.HoursPerDayMax * team,
	}
	personMonths := PersonMonthRange{
		Min: round1(hours.Min / h.HoursPerPersonMonth),
		Max: round1(hours.Max / h.HoursPerPersonMonth),
	}

	// Cost uses the band edges: minimum hours at the low rate, maximum
	// hours at the high rate.
	cost := ForwardCost{
		EU: costRange(hours.Min, hours.Max, cfg.Rates.EU),
		UA: costRange(hours.Min, hours.Max, cfg.Rates.UA),
	}

	confidence := historicalConfidence(commits, structure.AuthorsCount, h)

	return HistoricalEstimate{
		ActiveDays:   activeDays,
		Hours:        hours,
		PersonMonths: personMonths,
		Cost:         cost,
		Confidence:   confidence,
		Note:         historicalNote(commits, structure.AuthorsCount, confidence),
	}
}

// historicalConfidence gates on minimum commit and author thresholds:
// a thin history can only ever be a rough guess.
func historicalConfidence(commits, authors int, h config.HistoricalConfig) string {
	switch {
	case commits < h.MinCommits || authors <= 1:
		return ConfidenceLow
	case commits >= h.HighCommits && authors >= h.HighAuthors:
		return ConfidenceHigh
	default:
		return ConfidenceMedium
	}
}

func historicalNote(commits, authors int, confidence string) string {
	if commits == 0 {
		return "No commit history available; the historical estimate is a placeholder."
	}
	return fmt.Sprintf(
		"Derived from %d commits by %d author(s); confidence is %s. "+
			"Commit cadence approximates effort and ignores uncommitted work.",
		commits, authors, confidence)
}
