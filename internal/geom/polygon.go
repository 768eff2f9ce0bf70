package geom

import "math"

// Point2D is a point in a planar coordinate system, used for polygon area
// computation. Units follow the caller (pixels before calibration, metres
// after).
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PolygonArea computes the area of a simple polygon using the shoelace
// formula. The point sequence is treated as a closed loop (the last point
// implicitly connects back to the first) and winding direction does not
// matter. Fewer than 3 points describe no area and return 0.
func PolygonArea(points []Point2D) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return math.Abs(sum) / 2
}

// BoundaryArea computes the planar area of a 3D boundary by dropping the
// vertical (Y) component and applying the shoelace formula to the remaining
// plan coordinates. This matches how captured boundaries are laid out: X/Z
// span the ground plane and Y carries elevation.
func BoundaryArea(boundary []Vector3) float64 {
	if len(boundary) < 3 {
		return 0
	}
	points := make([]Point2D, len(boundary))
	for i, p := range boundary {
		points[i] = Point2D{X: p.X, Y: p.Z}
	}
	return PolygonArea(points)
}
