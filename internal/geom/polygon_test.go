package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolygonArea(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		points []Point2D
		want   float64
	}{
		{
			name:   "unit square",
			points: []Point2D{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
			want:   1.0,
		},
		{
			name:   "right triangle",
			points: []Point2D{{0, 0}, {4, 0}, {0, 3}},
			want:   6.0,
		},
		{
			name:   "empty",
			points: nil,
			want:   0,
		},
		{
			name:   "single point",
			points: []Point2D{{1, 1}},
			want:   0,
		},
		{
			name:   "two points",
			points: []Point2D{{0, 0}, {5, 5}},
			want:   0,
		},
		{
			name:   "collinear points",
			points: []Point2D{{0, 0}, {1, 1}, {2, 2}},
			want:   0,
		},
		{
			name:   "rectangle offset from origin",
			points: []Point2D{{2, 3}, {12, 3}, {12, 11}, {2, 11}},
			want:   80.0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.want, PolygonArea(tc.points), 1e-12)
		})
	}
}

func TestPolygonArea_WindingInvariance(t *testing.T) {
	t.Parallel()

	points := []Point2D{{0, 0}, {7, 1}, {9, 6}, {3, 8}, {-1, 4}}
	reversed := make([]Point2D, len(points))
	for i, p := range points {
		reversed[len(points)-1-i] = p
	}

	assert.InDelta(t, PolygonArea(points), PolygonArea(reversed), 1e-12)
}

func TestBoundaryArea(t *testing.T) {
	t.Parallel()

	// A 10x8 rectangle in the ground plane, with elevation ignored.
	boundary := []Vector3{
		{X: 0, Y: 2, Z: 0},
		{X: 10, Y: 2, Z: 0},
		{X: 10, Y: 2, Z: 8},
		{X: 0, Y: 2, Z: 8},
	}
	assert.InDelta(t, 80.0, BoundaryArea(boundary), 1e-12)

	assert.Zero(t, BoundaryArea(boundary[:2]))
}
