package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// ReportRecord is one archived analysis, stored as its serialized report.
type ReportRecord struct {
	AnalysisID string    `json:"analysis_id"`
	Repo       string    `json:"repo"`
	AnalyzedAt time.Time `json:"analyzed_at"`
	ReportJSON string    `json:"-"`
}

// SaveReport archives a completed analysis.
func (db *DB) SaveReport(rec ReportRecord) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO reports (analysis_id, repo, analyzed_at, report_json)
		VALUES (?, ?, ?, ?)
	`, rec.AnalysisID, rec.Repo, rec.AnalyzedAt.UTC().Format(time.RFC3339), rec.ReportJSON)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// GetReport loads one archived analysis by ID. Returns found=false when the
// ID is unknown.
func (db *DB) GetReport(analysisID string) (ReportRecord, bool, error) {
	var rec ReportRecord
	var analyzedAt string

	err := db.QueryRow(`
		SELECT analysis_id, repo, analyzed_at, report_json
		FROM reports WHERE analysis_id = ?
	`, analysisID).Scan(&rec.AnalysisID, &rec.Repo, &analyzedAt, &rec.ReportJSON)
	if err == sql.ErrNoRows {
		return ReportRecord{}, false, nil
	}
	if err != nil {
		return ReportRecord{}, false, fmt.Errorf("failed to load report: %w", err)
	}

	rec.AnalyzedAt, err = time.Parse(time.RFC3339, analyzedAt)
	if err != nil {
		return ReportRecord{}, false, fmt.Errorf("invalid analyzed_at in store: %w", err)
	}
	return rec, true, nil
}

// ListReports returns archived analyses for a repo, newest first. An empty
// repo lists everything.
func (db *DB) ListReports(repo string, limit int) ([]ReportRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT analysis_id, repo, analyzed_at, report_json
		FROM reports
	`
	args := []interface{}{}
	if repo != "" {
		query += " WHERE repo = ?"
		args = append(args, repo)
	}
	query += " ORDER BY analyzed_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var out []ReportRecord
	for rows.Next() {
		var rec ReportRecord
		var analyzedAt string
		if err := rows.Scan(&rec.AnalysisID, &rec.Repo, &analyzedAt, &rec.ReportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		rec.AnalyzedAt, _ = time.Parse(time.RFC3339, analyzedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}
