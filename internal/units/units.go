// Package units provides shared constants and conversion for area units
// used in quote output.
package units

// Unit constants
const (
	SquareMeters = "m2"
	SquareFeet   = "ft2"
	Squares      = "squares" // roofing square = 100 sq ft
)

// ValidUnits contains all valid area unit values.
var ValidUnits = []string{SquareMeters, SquareFeet, Squares}

// IsValid checks if the given unit is in the list of valid units.
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages.
func GetValidUnitsString() string {
	return "m2, ft2, squares"
}

const sqFeetPerSqMeter = 10.7639104167

// ConvertArea converts an area from square metres to the target units.
// Measurement documents store areas in square metres.
func ConvertArea(areaM2 float64, targetUnits string) float64 {
	switch targetUnits {
	case SquareFeet:
		return areaM2 * sqFeetPerSqMeter
	case Squares:
		return areaM2 * sqFeetPerSqMeter / 100
	case SquareMeters:
		return areaM2
	default:
		return areaM2 // default to m² if unknown unit
	}
}
