// Package calibration derives and holds the pixel-to-metre scale for a
// measurement session. A calibration is produced from a reference object of
// known physical size photographed alongside the roof; aspect-ratio
// consistency between the measured and real dimensions is the acceptance
// signal.
package calibration

import "time"

// ReferenceKind identifies the physical object used as the scale reference.
type ReferenceKind string

const (
	// ReferenceBusinessCard is an ISO 7810-adjacent US business card.
	ReferenceBusinessCard ReferenceKind = "business_card"
	// ReferenceCreditCard is an ISO/IEC 7810 ID-1 card.
	ReferenceCreditCard ReferenceKind = "credit_card"
	// ReferenceCoin is a US quarter.
	ReferenceCoin ReferenceKind = "coin"
	// ReferencePhone is a typical large-format smartphone.
	ReferencePhone ReferenceKind = "phone"
	// ReferenceRuler is a standard 12-inch ruler.
	ReferenceRuler ReferenceKind = "ruler"
	// ReferenceCustom is a caller-measured object; the real-world size must
	// be supplied explicitly.
	ReferenceCustom ReferenceKind = "custom"
)

// Size holds a width/height pair. Units depend on context: metres for
// real-world sizes, pixels for measured sizes.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// referenceSizes maps standard reference kinds to their real-world
// dimensions in metres.
var referenceSizes = map[ReferenceKind]Size{
	ReferenceBusinessCard: {Width: 0.0889, Height: 0.0508},
	ReferenceCreditCard:   {Width: 0.0856, Height: 0.0539},
	ReferenceCoin:         {Width: 0.0243, Height: 0.0243},
	ReferencePhone:        {Width: 0.1467, Height: 0.0716},
	ReferenceRuler:        {Width: 0.3048, Height: 0.0254},
}

// Reference records the object and measurements a calibration was derived
// from. One reference is active at a time; a newer successful calibration
// supersedes it.
type Reference struct {
	Kind              ReferenceKind `json:"kind"`
	RealWorldSize     Size          `json:"real_world_size"`
	MeasuredPixelSize Size          `json:"measured_pixel_size"`
	Confidence        float64       `json:"confidence"`
	CapturedAt        time.Time     `json:"captured_at"`
}
