// Package surface turns raw candidate planes from the capture layer into the
// validated, angle-annotated surface set for a measurement session, and
// supports the manual edits (add, reshape, merge, remove) an operator makes
// during review.
package surface

import (
	"math"

	"github.com/roofscope/measure/internal/geom"
)

// Type classifies what part of the roof a surface is.
type Type string

const (
	TypePrimary   Type = "primary"
	TypeSecondary Type = "secondary"
	TypeDormer    Type = "dormer"
	TypeHip       Type = "hip"
	TypeChimney   Type = "chimney"
	TypeOther     Type = "other"
)

// Material identifies the roofing material of a surface.
type Material string

const (
	MaterialShingle Material = "shingle"
	MaterialTile    Material = "tile"
	MaterialMetal   Material = "metal"
	MaterialFlat    Material = "flat"
	MaterialUnknown Material = "unknown"
)

// Plane is one measured roof surface. The boundary is an ordered loop of
// points in metres; X/Z span the ground plane and Y carries elevation.
type Plane struct {
	ID            string         `json:"id"`
	Boundary      []geom.Vector3 `json:"boundary"`
	Normal        geom.Vector3   `json:"normal"`
	PitchDeg      float64        `json:"pitch_deg"`
	AzimuthDeg    float64        `json:"azimuth_deg"`
	Area          float64        `json:"area_m2"`
	ProjectedArea float64        `json:"projected_area_m2"`
	Type          Type           `json:"surface_type"`
	Material      Material       `json:"material"`
	Confidence    float64        `json:"confidence"`
}

// projectedArea returns the surface's footprint as seen from directly above.
func projectedArea(area, pitchDeg float64) float64 {
	return area * math.Cos(pitchDeg*math.Pi/180)
}

// Candidate is a raw detected plane handed over by the capture/AR layer.
type Candidate struct {
	Boundary   []geom.Vector3 `json:"boundary"`
	Normal     geom.Vector3   `json:"normal"`
	Confidence float64        `json:"confidence"`
	Distance   float64        `json:"distance_m"`
	Area       float64        `json:"area_m2"`
}

// Classifier assigns a surface type from plane metrics. The default is a
// simple area-threshold heuristic; injecting a different Classifier swaps the
// policy without touching the processor contract.
type Classifier func(areaM2, pitchDeg float64) Type

// DefaultClassifier applies the provisional area thresholds: large surfaces
// are primary roof faces, mid-sized ones secondary.
func DefaultClassifier(areaM2, pitchDeg float64) Type {
	switch {
	case areaM2 > 50:
		return TypePrimary
	case areaM2 > 10:
		return TypeSecondary
	default:
		return TypeOther
	}
}

// FilterParams holds the acceptance thresholds applied to raw candidates.
type FilterParams struct {
	// MinPlaneArea rejects planes smaller than this many square metres.
	MinPlaneArea float64 `json:"min_plane_area_m2"`
	// MinConfidence rejects planes the detector is unsure about.
	MinConfidence float64 `json:"min_confidence"`
	// MaxDistance rejects planes detected too far from the sensor.
	MaxDistance float64 `json:"max_distance_m"`
}

// DefaultFilterParams returns production-default candidate filtering
// thresholds.
func DefaultFilterParams() FilterParams {
	return FilterParams{
		MinPlaneArea:  1.0,
		MinConfidence: 0.7,
		MaxDistance:   50.0,
	}
}
