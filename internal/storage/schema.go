package storage

// Schema is created with IF NOT EXISTS so Open is idempotent across runs.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS calibration_samples (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	analysis_id     TEXT NOT NULL,
	complexity      TEXT NOT NULL,
	predicted_hours REAL NOT NULL,
	actual_hours    REAL NOT NULL,
	recorded_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calibration_complexity
	ON calibration_samples(complexity);

CREATE TABLE IF NOT EXISTS reports (
	analysis_id TEXT PRIMARY KEY,
	repo        TEXT NOT NULL,
	analyzed_at TEXT NOT NULL,
	report_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_repo
	ON reports(repo, analyzed_at);
`

func (db *DB) initializeSchema() error {
	_, err := db.conn.Exec(schemaSQL)
	return err
}
