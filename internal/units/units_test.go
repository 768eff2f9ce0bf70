package units

import (
	"math"
	"testing"
)

func TestConvertArea(t *testing.T) {
	tests := []struct {
		name     string
		areaM2   float64
		units    string
		expected float64
	}{
		{"10 m2 to ft2", 10.0, SquareFeet, 107.639},
		{"10 m2 to squares", 10.0, Squares, 1.07639},
		{"10 m2 to m2", 10.0, SquareMeters, 10.0},
		{"unknown units default to m2", 10.0, "unknown", 10.0},
		{"0 m2 to ft2", 0.0, SquareFeet, 0.0},
		{"typical roof 185 m2 to squares", 185.0, Squares, 19.9132}, // ~20 squares
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertArea(tt.areaM2, tt.units)
			if math.Abs(result-tt.expected) > 0.01 { // Allow small floating point differences
				t.Errorf("ConvertArea(%f, %s) = %f, want %f", tt.areaM2, tt.units, result, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	for _, unit := range ValidUnits {
		if !IsValid(unit) {
			t.Errorf("IsValid(%s) = false, want true", unit)
		}
	}
	if IsValid("acres") {
		t.Error("IsValid(acres) = true, want false")
	}
	if IsValid("") {
		t.Error("IsValid(\"\") = true, want false")
	}
}

func TestGetValidUnitsString(t *testing.T) {
	if got := GetValidUnitsString(); got != "m2, ft2, squares" {
		t.Errorf("GetValidUnitsString() = %q", got)
	}
}
