package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roofscope/measure/internal/report"
	"github.com/roofscope/measure/internal/surface"
)

// SaveDocument persists a finalized measurement document. Documents are
// immutable, so saving the same ID twice is an error.
func (db *DB) SaveDocument(doc *report.Document) error {
	surfacesJSON, err := json.Marshal(doc.Surfaces)
	if err != nil {
		return fmt.Errorf("encode surfaces: %w", err)
	}
	errorsJSON, err := json.Marshal(doc.Errors)
	if err != nil {
		return fmt.Errorf("encode errors: %w", err)
	}
	warningsJSON, err := json.Marshal(doc.Warnings)
	if err != nil {
		return fmt.Errorf("encode warnings: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO measurements (
			measurement_id, session_id, operator_id, total_area_m2,
			quality_score, surfaces_json, errors_json, warnings_json, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID,
		doc.SessionID,
		doc.OperatorID,
		doc.TotalArea,
		doc.QualityScore,
		string(surfacesJSON),
		string(errorsJSON),
		string(warningsJSON),
		doc.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert measurement %s: %w", doc.ID, err)
	}
	return nil
}

// GetDocument retrieves one measurement document by ID.
func (db *DB) GetDocument(id string) (*report.Document, error) {
	row := db.QueryRow(`
		SELECT measurement_id, session_id, operator_id, total_area_m2,
		       quality_score, surfaces_json, errors_json, warnings_json, created_at_ns
		FROM measurements
		WHERE measurement_id = ?`, id)

	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("measurement not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get measurement %s: %w", id, err)
	}
	return doc, nil
}

// ListDocuments returns all documents for a session, most recent first. An
// empty session ID lists every stored document.
func (db *DB) ListDocuments(sessionID string) ([]*report.Document, error) {
	query := `
		SELECT measurement_id, session_id, operator_id, total_area_m2,
		       quality_score, surfaces_json, errors_json, warnings_json, created_at_ns
		FROM measurements`
	args := []any{}
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY created_at_ns DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	defer rows.Close()

	var docs []*report.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	return docs, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*report.Document, error) {
	var (
		doc           report.Document
		surfacesJSON  string
		errorsJSON    string
		warningsJSON  string
		createdAtNano int64
	)
	err := row.Scan(
		&doc.ID,
		&doc.SessionID,
		&doc.OperatorID,
		&doc.TotalArea,
		&doc.QualityScore,
		&surfacesJSON,
		&errorsJSON,
		&warningsJSON,
		&createdAtNano,
	)
	if err != nil {
		return nil, err
	}

	doc.CreatedAt = time.Unix(0, createdAtNano).UTC()
	doc.Surfaces = []surface.Plane{}
	if err := json.Unmarshal([]byte(surfacesJSON), &doc.Surfaces); err != nil {
		return nil, fmt.Errorf("decode surfaces: %w", err)
	}
	if err := json.Unmarshal([]byte(errorsJSON), &doc.Errors); err != nil {
		return nil, fmt.Errorf("decode errors: %w", err)
	}
	if err := json.Unmarshal([]byte(warningsJSON), &doc.Warnings); err != nil {
		return nil, fmt.Errorf("decode warnings: %w", err)
	}
	return &doc, nil
}
