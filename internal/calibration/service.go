// Package calibration implements the feedback loop that adjusts forward
// estimates using historical actuals. The service is the only stateful part
// of the scoring core: samples accumulate in an append-only list guarded by
// a single mutex and are persisted after every mutation, so adjustment reads
// always see either the pre- or post-update state, never a torn one.
package calibration

import (
	"fmt"
	"sync"
	"time"

	"repoaudit/internal/config"
	"repoaudit/internal/logging"
	"repoaudit/internal/storage"
)

// Sample is one observed outcome: what the forward estimator predicted for
// an analysis versus what the work actually took.
type Sample struct {
	AnalysisID     string    `json:"analysis_id"`
	Complexity     string    `json:"complexity"`
	PredictedHours float64   `json:"predicted_hours"`
	ActualHours    float64   `json:"actual_hours"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// Ratio returns actual/predicted, the per-sample correction factor.
func (s Sample) Ratio() float64 {
	if s.PredictedHours <= 0 {
		return 1.0
	}
	return s.ActualHours / s.PredictedHours
}

// Adjustment is the multiplier derived for one complexity tier.
type Adjustment struct {
	Complexity string  `json:"complexity"`
	Multiplier float64 `json:"multiplier"`
	Samples    int     `json:"samples"`
}

// Service accumulates calibration samples and serves adjustments.
type Service struct {
	mu      sync.Mutex
	samples []Sample

	db     *storage.DB
	cfg    config.CalibrationConfig
	logger *logging.Logger
}

// NewService creates a calibration service backed by the given store and
// loads any previously persisted samples.
func NewService(db *storage.DB, cfg config.CalibrationConfig, logger *logging.Logger) (*Service, error) {
	s := &Service{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
	if err := s.loadSamples(); err != nil {
		return nil, err
	}
	return s, nil
}

// Record appends a sample and persists it before returning. The sample list
// is append-only; recorded samples are never mutated.
func (s *Service) Record(sample Sample) error {
	if sample.RecordedAt.IsZero() {
		sample.RecordedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(sample); err != nil {
		return err
	}
	s.samples = append(s.samples, sample)

	s.logger.Debug("Recorded calibration sample", map[string]interface{}{
		"analysisId": sample.AnalysisID,
		"complexity": sample.Complexity,
		"ratio":      sample.Ratio(),
	})
	return nil
}

// AdjustmentFor returns the multiplier for a complexity tier: the mean of
// actual/predicted over that tier's samples, clamped to the configured
// bounds. Below the minimum sample count the multiplier is a neutral 1.0.
func (s *Service) AdjustmentFor(complexity string) Adjustment {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum float64
	count := 0
	for _, sample := range s.samples {
		if sample.Complexity == complexity {
			sum += sample.Ratio()
			count++
		}
	}

	adj := Adjustment{Complexity: complexity, Multiplier: 1.0, Samples: count}
	if count < s.cfg.MinSamples {
		return adj
	}

	m := sum / float64(count)
	if m < s.cfg.MinAdjustment {
		m = s.cfg.MinAdjustment
	}
	if m > s.cfg.MaxAdjustment {
		m = s.cfg.MaxAdjustment
	}
	adj.Multiplier = m
	return adj
}

// Adjustments returns the adjustment for every tier that has samples.
func (s *Service) Adjustments() []Adjustment {
	s.mu.Lock()
	tiers := make(map[string]bool)
	for _, sample := range s.samples {
		tiers[sample.Complexity] = true
	}
	s.mu.Unlock()

	out := make([]Adjustment, 0, len(tiers))
	for _, tier := range []string{"small", "medium", "large", "xlarge"} {
		if tiers[tier] {
			out = append(out, s.AdjustmentFor(tier))
		}
	}
	return out
}

func (s *Service) persist(sample Sample) error {
	_, err := s.db.Exec(`
		INSERT INTO calibration_samples (analysis_id, complexity, predicted_hours, actual_hours, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`, sample.AnalysisID, sample.Complexity, sample.PredictedHours, sample.ActualHours,
		sample.RecordedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to persist calibration sample: %w", err)
	}
	return nil
}

func (s *Service) loadSamples() error {
	rows, err := s.db.Query(`
		SELECT analysis_id, complexity, predicted_hours, actual_hours, recorded_at
		FROM calibration_samples ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to load calibration samples: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sample Sample
		var recordedAt string
		if err := rows.Scan(&sample.AnalysisID, &sample.Complexity,
			&sample.PredictedHours, &sample.ActualHours, &recordedAt); err != nil {
			return fmt.Errorf("failed to scan calibration sample: %w", err)
		}
		sample.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
		s.samples = append(s.samples, sample)
	}
	return rows.Err()
}
