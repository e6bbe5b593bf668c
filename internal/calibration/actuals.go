package calibration

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// ActualsFile is the TOML format for bulk-importing observed outcomes.
//
//	[[sample]]
//	analysis_id = "..."
//	complexity = "medium"
//	predicted_hours = 420
//	actual_hours = 510
type ActualsFile struct {
	Samples []ActualEntry `toml:"sample"`
}

// ActualEntry is one row of an actuals file.
type ActualEntry struct {
	AnalysisID     string  `toml:"analysis_id"`
	Complexity     string  `toml:"complexity"`
	PredictedHours float64 `toml:"predicted_hours"`
	ActualHours    float64 `toml:"actual_hours"`
}

// ImportActuals reads a TOML actuals file and records every entry.
// Returns the number of samples recorded.
func (s *Service) ImportActuals(path string) (int, error) {
	var file ActualsFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return 0, fmt.Errorf("failed to parse actuals file: %w", err)
	}

	recorded := 0
	for i, entry := range file.Samples {
		if entry.Complexity == "" || entry.ActualHours <= 0 {
			return recorded, fmt.Errorf("actuals entry %d: complexity and actual_hours are required", i+1)
		}
		err := s.Record(Sample{
			AnalysisID:     entry.AnalysisID,
			Complexity:     entry.Complexity,
			PredictedHours: entry.PredictedHours,
			ActualHours:    entry.ActualHours,
			RecordedAt:     time.Now().UTC(),
		})
		if err != nil {
			return recorded, err
		}
		recorded++
	}
	return recorded, nil
}
