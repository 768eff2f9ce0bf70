// Package store persists calibration results and finalized measurement
// documents to SQLite. It is the storage collaborator for the measurement
// core: the core itself performs no I/O.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle for measurement persistence.
type DB struct {
	*sql.DB
}

// NewDB opens (creating if necessary) the measurement database at path and
// ensures the baseline schema exists. Schema changes beyond the baseline go
// through MigrateUp.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open measurement db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS calibrations (
			calibration_id     INTEGER PRIMARY KEY AUTOINCREMENT,
			pixels_per_meter   DOUBLE NOT NULL,
			quality_score      DOUBLE NOT NULL,
			valid              BOOLEAN NOT NULL,
			reference_json     TEXT NOT NULL,
			captured_at_ns     BIGINT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS measurements (
			measurement_id     TEXT PRIMARY KEY,
			session_id         TEXT NOT NULL,
			operator_id        TEXT NOT NULL,
			total_area_m2      DOUBLE NOT NULL,
			quality_score      DOUBLE NOT NULL,
			surfaces_json      TEXT NOT NULL,
			errors_json        TEXT NOT NULL,
			warnings_json      TEXT NOT NULL,
			created_at_ns      BIGINT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_measurements_session
			ON measurements(session_id);
	`)
	if err != nil {
		return nil, fmt.Errorf("create measurement schema: %w", err)
	}

	return &DB{db}, nil
}
