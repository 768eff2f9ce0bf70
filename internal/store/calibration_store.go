package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roofscope/measure/internal/calibration"
)

// SaveCalibration persists a calibration result. The reference is stored as
// JSON so the full capture context round-trips.
func (db *DB) SaveCalibration(r *calibration.Result) error {
	referenceJSON, err := json.Marshal(r.Reference)
	if err != nil {
		return fmt.Errorf("encode calibration reference: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO calibrations (pixels_per_meter, quality_score, valid, reference_json, captured_at_ns)
		VALUES (?, ?, ?, ?, ?)`,
		r.PixelsPerMeter,
		r.QualityScore,
		r.Valid,
		string(referenceJSON),
		r.Reference.CapturedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert calibration: %w", err)
	}
	return nil
}

// LatestCalibration returns the most recently captured calibration, or
// (nil, nil) if none has been saved yet.
func (db *DB) LatestCalibration() (*calibration.Result, error) {
	var (
		result        calibration.Result
		referenceJSON string
	)
	err := db.QueryRow(`
		SELECT pixels_per_meter, quality_score, valid, reference_json
		FROM calibrations
		ORDER BY captured_at_ns DESC
		LIMIT 1`,
	).Scan(&result.PixelsPerMeter, &result.QualityScore, &result.Valid, &referenceJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest calibration: %w", err)
	}

	if err := json.Unmarshal([]byte(referenceJSON), &result.Reference); err != nil {
		return nil, fmt.Errorf("decode calibration reference: %w", err)
	}
	return &result, nil
}
