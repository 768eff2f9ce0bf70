package mesh

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects an interchange format. JSON round-trips; OBJ and PLY are
// write-only targets.
type Format string

const (
	FormatJSON Format = "json"
	FormatOBJ  Format = "obj"
	FormatPLY  Format = "ply"
)

// Export serializes a geometry. The output is deterministic: exporting the
// same geometry twice yields identical bytes.
func Export(g *Geometry, format Format) ([]byte, error) {
	if !Validate(g) {
		return nil, fmt.Errorf("export: %w", ErrInvalidGeometry)
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(g, "", "  ")
	case FormatOBJ:
		var buf bytes.Buffer
		writeOBJGeometry(&buf, g, "surface", 0)
		return buf.Bytes(), nil
	case FormatPLY:
		return exportPLY(g)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ExportModel serializes a whole model. OBJ output carries one named object
// per geometry with a shared vertex index space.
func ExportModel(m *Model, format Format) ([]byte, error) {
	for i, g := range m.Geometries {
		if !Validate(g) {
			return nil, fmt.Errorf("export model %q geometry %d: %w", m.Name, i, ErrInvalidGeometry)
		}
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(m, "", "  ")
	case FormatOBJ:
		var buf bytes.Buffer
		offset := 0
		for i, g := range m.Geometries {
			writeOBJGeometry(&buf, g, objectName(m.Name, i), offset)
			offset += len(g.Vertices)
		}
		return buf.Bytes(), nil
	case FormatPLY:
		merged := mergeGeometries(m.Geometries)
		return exportPLY(merged)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Import deserializes a geometry. Only JSON is readable; OBJ and PLY are
// write-only interchange targets in this system.
func Import(data []byte, format Format) (*Geometry, error) {
	if format != FormatJSON {
		return nil, fmt.Errorf("import: %w: %q", ErrUnsupportedFormat, format)
	}
	var g Geometry
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("import geometry: %w", err)
	}
	if !Validate(&g) {
		return nil, fmt.Errorf("import: %w", ErrInvalidGeometry)
	}
	return &g, nil
}

// ImportModel deserializes a model from JSON.
func ImportModel(data []byte, format Format) (*Model, error) {
	if format != FormatJSON {
		return nil, fmt.Errorf("import: %w: %q", ErrUnsupportedFormat, format)
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("import model: %w", err)
	}
	for i, g := range m.Geometries {
		if !Validate(g) {
			return nil, fmt.Errorf("import model geometry %d: %w", i, ErrInvalidGeometry)
		}
	}
	return &m, nil
}

// writeOBJGeometry appends one OBJ object. OBJ uses 1-based vertex indices,
// applied here and nowhere else.
func writeOBJGeometry(buf *bytes.Buffer, g *Geometry, name string, offset int) {
	fmt.Fprintf(buf, "o %s\n", name)
	for _, v := range g.Vertices {
		fmt.Fprintf(buf, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, face := range g.Faces {
		buf.WriteString("f")
		for _, idx := range face.Indices {
			fmt.Fprintf(buf, " %d", idx+offset+1)
		}
		buf.WriteByte('\n')
	}
}

func objectName(base string, i int) string {
	base = strings.ReplaceAll(strings.TrimSpace(base), " ", "_")
	if base == "" {
		base = "model"
	}
	return fmt.Sprintf("%s_%d", base, i)
}

// exportPLY writes ASCII PLY. Unlike OBJ, PLY vertex_indices lists are
// 0-based per the format definition, and viewers parse them that way;
// emitting 1-based indices here would shift every face off by one vertex.
// Indices are therefore written as-is after the offset merge.
func exportPLY(g *Geometry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("ply\n")
	buf.WriteString("format ascii 1.0\n")
	fmt.Fprintf(&buf, "element vertex %d\n", len(g.Vertices))
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	fmt.Fprintf(&buf, "element face %d\n", len(g.Faces))
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	for _, v := range g.Vertices {
		fmt.Fprintf(&buf, "%g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, face := range g.Faces {
		fmt.Fprintf(&buf, "%d", len(face.Indices))
		for _, idx := range face.Indices {
			fmt.Fprintf(&buf, " %d", idx)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// mergeGeometries flattens a model's geometries into one geometry with
// re-offset face indices, used for single-object PLY export.
func mergeGeometries(geometries []*Geometry) *Geometry {
	merged := &Geometry{}
	for _, g := range geometries {
		offset := len(merged.Vertices)
		merged.Vertices = append(merged.Vertices, g.Vertices...)
		for _, face := range g.Faces {
			indices := make([]int, len(face.Indices))
			for i, idx := range face.Indices {
				indices[i] = idx + offset
			}
			merged.Faces = append(merged.Faces, Face{Indices: indices, Material: face.Material})
		}
	}
	return merged
}
