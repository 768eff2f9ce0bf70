// Package mesh converts validated roof surfaces into watertight 3D solids
// and serializes them to interchange formats for the review and export
// collaborators.
package mesh

import (
	"errors"

	"github.com/roofscope/measure/internal/geom"
)

var (
	// ErrUnsupportedFormat indicates an export/import format this system
	// does not implement.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrInvalidGeometry indicates geometry that fails structural
	// validation and must not be exported.
	ErrInvalidGeometry = errors.New("invalid geometry")
)

// Face references 3 or 4 vertices of the owning geometry by index, plus the
// material applied to it.
type Face struct {
	Indices  []int `json:"indices"`
	Material int   `json:"material"`
}

// Geometry is one exportable 3D solid: a vertex list, the faces over it, the
// material palette, and the axis-aligned bounds. Face indices are 0-based
// internally; 1-based conversion happens only at the OBJ/PLY serialization
// boundary.
type Geometry struct {
	PlaneID   string           `json:"plane_id,omitempty"`
	Vertices  []geom.Vector3   `json:"vertices"`
	Faces     []Face           `json:"faces"`
	Materials []string         `json:"materials"`
	Bounds    geom.BoundingBox `json:"bounds"`
}

// Transform positions a model in a viewer scene. The zero value is not
// meaningful; use identityTransform.
type Transform struct {
	Translation geom.Vector3 `json:"translation"`
	RotationDeg geom.Vector3 `json:"rotation_deg"`
	Scale       float64      `json:"scale"`
}

func identityTransform() Transform {
	return Transform{Scale: 1}
}

// Model groups the solids for a whole measurement session. Each geometry
// belongs to exactly one model.
type Model struct {
	Name          string      `json:"name"`
	Geometries    []*Geometry `json:"geometries"`
	TotalVertices int         `json:"total_vertices"`
	TotalFaces    int         `json:"total_faces"`
	Transform     Transform   `json:"transform"`
}

// Validate reports whether the geometry is structurally sound: at least 3
// vertices, at least 1 face, and every face index within the vertex list.
func Validate(g *Geometry) bool {
	if g == nil || len(g.Vertices) < 3 || len(g.Faces) < 1 {
		return false
	}
	for _, face := range g.Faces {
		for _, idx := range face.Indices {
			if idx < 0 || idx >= len(g.Vertices) {
				return false
			}
		}
	}
	return true
}
