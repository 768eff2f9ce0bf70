package mesh

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roofscope/measure/internal/surface"
)

func buildTestGeometry(t *testing.T) *Geometry {
	t.Helper()
	g, err := NewBuilder().BuildGeometry(testPlane("plane-1", 4), BuildOptions{})
	require.NoError(t, err)
	return g
}

func TestExport_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	g := buildTestGeometry(t)

	data, err := Export(g, FormatJSON)
	require.NoError(t, err)

	imported, err := Import(data, FormatJSON)
	require.NoError(t, err)

	if diff := cmp.Diff(g, imported); diff != "" {
		t.Errorf("geometry changed across JSON round trip (-want +got):\n%s", diff)
	}
}

func TestExport_Deterministic(t *testing.T) {
	t.Parallel()

	g := buildTestGeometry(t)
	for _, format := range []Format{FormatJSON, FormatOBJ, FormatPLY} {
		first, err := Export(g, format)
		require.NoError(t, err, "format %s", format)
		second, err := Export(g, format)
		require.NoError(t, err, "format %s", format)
		assert.Equal(t, first, second, "format %s output must be byte-identical", format)
	}
}

func TestExport_OBJ(t *testing.T) {
	t.Parallel()

	g := buildTestGeometry(t)
	data, err := Export(g, FormatOBJ)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Equal(t, "o surface", lines[0])

	var vertexLines, faceLines []string
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "v "):
			vertexLines = append(vertexLines, line)
		case strings.HasPrefix(line, "f "):
			faceLines = append(faceLines, line)
		}
	}
	assert.Len(t, vertexLines, 8)
	assert.Len(t, faceLines, 6)

	// OBJ indices are 1-based: the top cap references vertices 5..8.
	assert.Equal(t, "f 5 6 7 8", faceLines[0])
	assert.Equal(t, "f 4 3 2 1", faceLines[1])
	for _, line := range faceLines {
		assert.NotContains(t, line, " 0", "face indices are 1-based")
	}
}

func TestExport_PLY(t *testing.T) {
	t.Parallel()

	g := buildTestGeometry(t)
	data, err := Export(g, FormatPLY)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "ply\nformat ascii 1.0\n"))
	assert.Contains(t, text, "element vertex 8\n")
	assert.Contains(t, text, "element face 6\n")
	assert.Contains(t, text, "property list uchar int vertex_indices\n")

	body := strings.SplitN(text, "end_header\n", 2)[1]
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	assert.Len(t, lines, 8+6)
	// First face line: the 4-vertex top cap.
	assert.Equal(t, "4 4 5 6 7", lines[8])
}

func TestExport_Rejections(t *testing.T) {
	t.Parallel()

	g := buildTestGeometry(t)

	_, err := Export(g, Format("stl"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Export(&Geometry{}, FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidGeometry)

	_, err = Import([]byte("x"), FormatOBJ)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = Import([]byte("x"), FormatPLY)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Import([]byte("{invalid"), FormatJSON)
	assert.Error(t, err)

	_, err = Import([]byte(`{"vertices":[],"faces":[]}`), FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestExportModel(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	model, err := b.BuildModel([]*surface.Plane{testPlane("a", 4), testPlane("b", 3)}, "two roofs", BuildOptions{})
	require.NoError(t, err)

	t.Run("json round trip", func(t *testing.T) {
		t.Parallel()
		data, err := ExportModel(model, FormatJSON)
		require.NoError(t, err)
		imported, err := ImportModel(data, FormatJSON)
		require.NoError(t, err)
		if diff := cmp.Diff(model, imported); diff != "" {
			t.Errorf("model changed across JSON round trip (-want +got):\n%s", diff)
		}
	})

	t.Run("obj offsets second object", func(t *testing.T) {
		t.Parallel()
		data, err := ExportModel(model, FormatOBJ)
		require.NoError(t, err)
		text := string(data)
		assert.Contains(t, text, "o two_roofs_0\n")
		assert.Contains(t, text, "o two_roofs_1\n")
		// The second geometry's top cap starts after the first one's 8
		// vertices: indices 9..11 + the 1-based offset.
		assert.Contains(t, text, "f 12 13 14\n")
	})

	t.Run("ply merges into one element set", func(t *testing.T) {
		t.Parallel()
		data, err := ExportModel(model, FormatPLY)
		require.NoError(t, err)
		assert.Contains(t, string(data), "element vertex 14\n")
		assert.Contains(t, string(data), "element face 11\n")
	})

	t.Run("unsupported format", func(t *testing.T) {
		t.Parallel()
		_, err := ExportModel(model, Format("gltf"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		_, err = ImportModel(nil, FormatPLY)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}
