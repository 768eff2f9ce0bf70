// Package report aggregates a session's validated surfaces into the final
// measurement document used for quoting, and renders summary charts for the
// review collaborator.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/roofscope/measure/internal/surface"
)

// ErrEmptyMeasurement indicates finalize was attempted with no surfaces.
var ErrEmptyMeasurement = errors.New("measurement requires at least one surface")

const (
	// minIncludedConfidence is the confidence floor below which a surface
	// needs an explicit operator override to be included.
	minIncludedConfidence = 0.5
	// minDocumentQuality is the overall quality below which the document
	// carries a warning.
	minDocumentQuality = 0.7
)

// Issue is one validation finding. Errors make the document unfit for
// quoting; warnings are advisory.
type Issue struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SurfaceID string `json:"surface_id,omitempty"`
}

// PropertyType feeds the expected-surface-count heuristic.
type PropertyType string

const (
	PropertyGable   PropertyType = "gable"
	PropertyHip     PropertyType = "hip"
	PropertyComplex PropertyType = "complex"
)

// expectedSurfaces returns how many roof faces a property of the given type
// typically has. Unknown types expect a single surface.
func expectedSurfaces(pt PropertyType) int {
	switch pt {
	case PropertyGable:
		return 2
	case PropertyHip:
		return 4
	case PropertyComplex:
		return 6
	default:
		return 1
	}
}

// Options tunes finalization.
type Options struct {
	// AllowLowConfidence downgrades the low-confidence inclusion error when
	// the operator explicitly vouches for the surfaces.
	AllowLowConfidence bool `json:"allow_low_confidence"`
	// PropertyType drives the expected-surface-count warning heuristic.
	PropertyType PropertyType `json:"property_type,omitempty"`
}

// Document is the immutable record of one completed measurement session.
// Corrections require finalizing a new document from an updated surface set.
type Document struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	OperatorID string    `json:"operator_id"`
	CreatedAt  time.Time `json:"created_at"`

	Surfaces     []surface.Plane `json:"surfaces"`
	TotalArea    float64         `json:"total_area_m2"`
	QualityScore float64         `json:"quality_score"`

	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Usable reports whether the document passed validation without blocking
// errors.
func (d *Document) Usable() bool {
	return len(d.Errors) == 0
}

// Finalize combines validated surfaces into one measurement document. The
// total area is the sum of projected areas, and the quality score is the
// confidence mean weighted by each surface's share of the total area, so
// larger surfaces influence it more. Surfaces are snapshotted: later edits
// in the processor do not alter the document.
func Finalize(surfaces []*surface.Plane, sessionID, operatorID string, opts Options) (*Document, error) {
	if len(surfaces) == 0 {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrEmptyMeasurement)
	}

	doc := &Document{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		OperatorID: operatorID,
		CreatedAt:  time.Now().UTC(),
	}

	confidences := make([]float64, len(surfaces))
	weights := make([]float64, len(surfaces))
	for i, s := range surfaces {
		doc.Surfaces = append(doc.Surfaces, clonePlane(s))
		doc.TotalArea += s.ProjectedArea

		confidences[i] = s.Confidence
		weights[i] = s.Area

		if s.Area <= 0 {
			doc.Errors = append(doc.Errors, Issue{
				Code:      "zero_area",
				Message:   fmt.Sprintf("surface has non-positive area %.3f m²", s.Area),
				SurfaceID: s.ID,
			})
		}
		if s.Confidence < minIncludedConfidence && !opts.AllowLowConfidence {
			doc.Errors = append(doc.Errors, Issue{
				Code:      "low_confidence",
				Message:   fmt.Sprintf("surface confidence %.2f is below %.2f and no operator override was given", s.Confidence, minIncludedConfidence),
				SurfaceID: s.ID,
			})
		}
	}

	if totalWeight := sum(weights); totalWeight > 0 {
		doc.QualityScore = stat.Mean(confidences, weights)
	}

	if doc.QualityScore < minDocumentQuality {
		doc.Warnings = append(doc.Warnings, Issue{
			Code:    "low_quality",
			Message: fmt.Sprintf("document quality %.2f is below %.2f", doc.QualityScore, minDocumentQuality),
		})
	}
	if expected := expectedSurfaces(opts.PropertyType); len(surfaces) < expected {
		doc.Warnings = append(doc.Warnings, Issue{
			Code:    "few_surfaces",
			Message: fmt.Sprintf("measured %d surfaces but a %s property typically has %d", len(surfaces), opts.PropertyType, expected),
		})
	}

	return doc, nil
}

func clonePlane(p *surface.Plane) surface.Plane {
	clone := *p
	clone.Boundary = append(clone.Boundary[:0:0], clone.Boundary...)
	return clone
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
