// Package testutil provides shared test fixtures for the measurement
// packages.
//
// This package centralises common boundary shapes to reduce duplication
// across test files and improve test maintainability.
package testutil

import "github.com/roofscope/measure/internal/geom"

// RectBoundary returns a width x depth rectangle in the ground plane,
// anchored at the origin.
func RectBoundary(width, depth float64) []geom.Vector3 {
	return []geom.Vector3{
		{X: 0, Z: 0},
		{X: width, Z: 0},
		{X: width, Z: depth},
		{X: 0, Z: depth},
	}
}

// TriangleBoundary returns a right triangle with the given legs in the
// ground plane.
func TriangleBoundary(base, height float64) []geom.Vector3 {
	return []geom.Vector3{
		{X: 0, Z: 0},
		{X: base, Z: 0},
		{X: 0, Z: height},
	}
}

// PentagonBoundary returns an irregular 5-point boundary for tests that
// need a non-quad outline.
func PentagonBoundary() []geom.Vector3 {
	return []geom.Vector3{
		{X: 0, Z: 0},
		{X: 4, Z: 0},
		{X: 6, Z: 3},
		{X: 2, Z: 6},
		{X: -1, Z: 3},
	}
}
