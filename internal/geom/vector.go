// Package geom provides the numeric primitives shared by the measurement
// core: 3D vector math, planar polygon area, surface angle derivation, and
// axis-aligned bounding boxes. Everything here is pure computation over
// IEEE-754 doubles with no hidden rounding.
package geom

import (
	"errors"
	"math"
)

// degenerateEpsilon is the minimum vector magnitude considered non-zero for
// angle derivation. Magnitudes below this are treated as degenerate.
const degenerateEpsilon = 1e-9

var (
	// ErrDegenerateVector indicates a vector with near-zero magnitude was
	// passed where a direction is required.
	ErrDegenerateVector = errors.New("degenerate vector: near-zero magnitude")
	// ErrEmptyInput indicates an aggregate operation received no elements.
	ErrEmptyInput = errors.New("empty input")
)

// Vector3 represents a 3D point or direction. Units are whatever the caller
// assigns; the measurement core uses metres once calibration is applied.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the sum of two vectors.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns the difference between two vectors.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale multiplies the vector by a scalar.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of two vectors.
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector in the same direction, or an error for a
// near-zero vector.
func (v Vector3) Normalize() (Vector3, error) {
	length := v.Length()
	if length < degenerateEpsilon {
		return Vector3{}, ErrDegenerateVector
	}
	return v.Scale(1 / length), nil
}

// AverageVectors returns the componentwise mean of the given vectors.
func AverageVectors(vectors []Vector3) (Vector3, error) {
	if len(vectors) == 0 {
		return Vector3{}, ErrEmptyInput
	}
	var sum Vector3
	for _, v := range vectors {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(vectors))), nil
}

// PitchAngleFromNormal returns the angle in degrees between a surface normal
// and the vertical (Y) axis, clamped to [0, 90] by taking the absolute value
// of the vertical component. 0 means a flat surface, 90 a vertical one.
func PitchAngleFromNormal(normal Vector3) (float64, error) {
	length := normal.Length()
	if length < degenerateEpsilon {
		return 0, ErrDegenerateVector
	}
	cos := math.Abs(normal.Y) / length
	// Guard against cos slightly exceeding 1 from floating-point error.
	if cos > 1 {
		cos = 1
	}
	return math.Acos(cos) * 180 / math.Pi, nil
}

// AzimuthAngleFromNormal returns the compass direction of the normal's
// horizontal projection in degrees, in (-180, 180]. A zero horizontal
// projection yields 0.
func AzimuthAngleFromNormal(normal Vector3) float64 {
	return math.Atan2(normal.X, normal.Z) * 180 / math.Pi
}
