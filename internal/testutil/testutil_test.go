package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roofscope/measure/internal/geom"
)

func TestFixtureAreas(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 80.0, geom.BoundaryArea(RectBoundary(10, 8)), 1e-12)
	assert.InDelta(t, 6.0, geom.BoundaryArea(TriangleBoundary(4, 3)), 1e-12)
	assert.Greater(t, geom.BoundaryArea(PentagonBoundary()), 0.0)
	assert.Len(t, PentagonBoundary(), 5)
}
