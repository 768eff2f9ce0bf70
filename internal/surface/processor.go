package surface

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/roofscope/measure/internal/geom"
)

var (
	// ErrInsufficientPoints indicates a boundary with fewer than 3 points.
	ErrInsufficientPoints = errors.New("boundary requires at least 3 points")
	// ErrInsufficientSources indicates a merge with fewer than 2 distinct
	// surfaces.
	ErrInsufficientSources = errors.New("merge requires at least 2 surfaces")
	// ErrNotFound indicates an unknown surface ID.
	ErrNotFound = errors.New("surface not found")
)

// Scaler converts pixel measurements to metres. *calibration.Engine
// satisfies it.
type Scaler interface {
	PixelsToMeters(pixels float64) (float64, error)
}

// Processor owns the surface set for one measurement session. It is
// single-writer by design: concurrent sessions each construct their own
// Processor.
type Processor struct {
	params   FilterParams
	classify Classifier
	surfaces map[string]*Plane
	order    []string
}

// NewProcessor creates a Processor with the given filter thresholds. A nil
// classifier falls back to DefaultClassifier.
func NewProcessor(params FilterParams, classify Classifier) *Processor {
	if classify == nil {
		classify = DefaultClassifier
	}
	return &Processor{
		params:   params,
		classify: classify,
		surfaces: make(map[string]*Plane),
	}
}

// Ingest filters raw candidates and converts the survivors into validated
// surfaces. Candidates are rejected, in order, for an unusable boundary, for
// being too small, too uncertain, or too distant. A candidate with a
// degenerate normal aborts the whole batch before any state change so the
// caller can drop it and retry.
func (p *Processor) Ingest(candidates []Candidate) ([]*Plane, error) {
	var accepted []*Plane
	for i, c := range candidates {
		if len(c.Boundary) < 3 {
			continue
		}
		if c.Area < p.params.MinPlaneArea {
			continue
		}
		if c.Confidence < p.params.MinConfidence {
			continue
		}
		if c.Distance > p.params.MaxDistance {
			continue
		}

		pitch, err := geom.PitchAngleFromNormal(c.Normal)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}

		plane := &Plane{
			ID:            uuid.New().String(),
			Boundary:      append([]geom.Vector3(nil), c.Boundary...),
			Normal:        c.Normal,
			PitchDeg:      pitch,
			AzimuthDeg:    geom.AzimuthAngleFromNormal(c.Normal),
			Area:          c.Area,
			ProjectedArea: projectedArea(c.Area, pitch),
			Material:      MaterialUnknown,
			Confidence:    c.Confidence,
		}
		plane.Type = p.classify(plane.Area, plane.PitchDeg)
		accepted = append(accepted, plane)
	}

	for _, plane := range accepted {
		p.insert(plane)
	}
	return accepted, nil
}

// AddManual creates a surface from operator-confirmed boundary points in
// metres. Manual surfaces carry confidence 1.0: operator-verified data is
// treated as maximally trustworthy. The normal defaults to vertical, so the
// boundary is read as a flat plan outline until edited.
func (p *Processor) AddManual(boundary []geom.Vector3, surfaceType Type, material Material) (*Plane, error) {
	if len(boundary) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientPoints, len(boundary))
	}

	area := geom.BoundaryArea(boundary)
	plane := &Plane{
		ID:            uuid.New().String(),
		Boundary:      append([]geom.Vector3(nil), boundary...),
		Normal:        geom.Vector3{Y: 1},
		PitchDeg:      0,
		AzimuthDeg:    0,
		Area:          area,
		ProjectedArea: area,
		Type:          surfaceType,
		Material:      material,
		Confidence:    1.0,
	}
	p.insert(plane)
	return plane, nil
}

// AddManualPixels converts pixel-space taps to metres through the given
// scaler and adds the resulting surface. It fails before any state change if
// no valid calibration is active.
func (p *Processor) AddManualPixels(taps []geom.Point2D, scaler Scaler, surfaceType Type, material Material) (*Plane, error) {
	if len(taps) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientPoints, len(taps))
	}
	boundary := make([]geom.Vector3, len(taps))
	for i, tap := range taps {
		x, err := scaler.PixelsToMeters(tap.X)
		if err != nil {
			return nil, fmt.Errorf("convert tap %d: %w", i, err)
		}
		z, err := scaler.PixelsToMeters(tap.Y)
		if err != nil {
			return nil, fmt.Errorf("convert tap %d: %w", i, err)
		}
		boundary[i] = geom.Vector3{X: x, Z: z}
	}
	return p.AddManual(boundary, surfaceType, material)
}

// EditBoundary replaces a surface's boundary and recomputes its areas. The
// surface's normal and angles are unchanged; reshaping the outline does not
// re-aim the plane.
func (p *Processor) EditBoundary(id string, boundary []geom.Vector3) (*Plane, error) {
	plane, ok := p.surfaces[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if len(boundary) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientPoints, len(boundary))
	}

	plane.Boundary = append([]geom.Vector3(nil), boundary...)
	plane.Area = geom.BoundaryArea(plane.Boundary)
	plane.ProjectedArea = projectedArea(plane.Area, plane.PitchDeg)
	return plane, nil
}

// Merge combines two or more surfaces into a new one and removes the
// sources. The merged boundary is the concatenation of the source boundaries
// for display only; it is not a valid simple polygon, so areas are the sums
// of the source areas rather than recomputed. Confidence is the minimum
// across sources, and type/material follow the first source given.
func (p *Processor) Merge(ids []string) (*Plane, error) {
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientSources, len(ids))
	}
	seen := make(map[string]bool, len(ids))
	var sources []*Plane
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		plane, ok := p.surfaces[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		sources = append(sources, plane)
	}
	if len(sources) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientSources, len(sources))
	}

	normals := make([]geom.Vector3, len(sources))
	for i, s := range sources {
		normals[i] = s.Normal
	}
	normal, err := geom.AverageVectors(normals)
	if err != nil {
		return nil, fmt.Errorf("merge normals: %w", err)
	}
	pitch, err := geom.PitchAngleFromNormal(normal)
	if err != nil {
		return nil, fmt.Errorf("merge normals: %w", err)
	}

	merged := &Plane{
		ID:         uuid.New().String(),
		Normal:     normal,
		PitchDeg:   pitch,
		AzimuthDeg: geom.AzimuthAngleFromNormal(normal),
		Type:       sources[0].Type,
		Material:   sources[0].Material,
		Confidence: sources[0].Confidence,
	}
	for _, s := range sources {
		merged.Boundary = append(merged.Boundary, s.Boundary...)
		merged.Area += s.Area
		merged.ProjectedArea += s.ProjectedArea
		if s.Confidence < merged.Confidence {
			merged.Confidence = s.Confidence
		}
	}

	for _, s := range sources {
		p.delete(s.ID)
	}
	p.insert(merged)
	return merged, nil
}

// Remove deletes a surface from the session.
func (p *Processor) Remove(id string) error {
	if _, ok := p.surfaces[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	p.delete(id)
	return nil
}

// Get returns the surface with the given ID.
func (p *Processor) Get(id string) (*Plane, error) {
	plane, ok := p.surfaces[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return plane, nil
}

// Surfaces returns the session's surfaces in insertion order.
func (p *Processor) Surfaces() []*Plane {
	out := make([]*Plane, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.surfaces[id])
	}
	return out
}

// Reset discards the whole surface set, ending the session.
func (p *Processor) Reset() {
	p.surfaces = make(map[string]*Plane)
	p.order = nil
}

func (p *Processor) insert(plane *Plane) {
	p.surfaces[plane.ID] = plane
	p.order = append(p.order, plane.ID)
}

func (p *Processor) delete(id string) {
	delete(p.surfaces, id)
	for i, existing := range p.order {
		if existing == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}
