package geom

import "math"

// BoundingBox is an axis-aligned box covering a set of points.
type BoundingBox struct {
	Min Vector3 `json:"min"`
	Max Vector3 `json:"max"`
}

// NewBoundingBox returns an empty bounding box ready to be extended. An
// unextended box has inverted bounds so the first Extend sets both corners.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: Vector3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// Extend grows the box to include the given point.
func (b *BoundingBox) Extend(p Vector3) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

// Size returns the extents of the box along each axis.
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Vector3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// BoundsOf computes the bounding box over a point set. An empty set returns
// the empty (inverted) box.
func BoundsOf(points []Vector3) BoundingBox {
	box := NewBoundingBox()
	for _, p := range points {
		box.Extend(p)
	}
	return box
}
