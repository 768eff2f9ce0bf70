package calibration

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// MinQualityScore is the acceptance threshold for a calibration attempt.
	MinQualityScore = 0.7
	// MaxAge is how long a calibration is trusted before being reported as
	// stale. Staleness is advisory: conversions still work, but Status
	// reports uncalibrated so callers can prompt for recapture.
	MaxAge = 24 * time.Hour
)

var (
	// ErrUnknownReference indicates an unrecognized reference kind with no
	// custom size supplied.
	ErrUnknownReference = errors.New("unknown calibration reference")
	// ErrInvalidMeasurement indicates a non-positive pixel or real-world
	// dimension.
	ErrInvalidMeasurement = errors.New("invalid calibration measurement")
	// ErrNoActiveCalibration indicates a conversion was attempted before a
	// valid calibration was established.
	ErrNoActiveCalibration = errors.New("no active calibration")
)

// Request carries one calibration attempt's inputs.
type Request struct {
	Kind ReferenceKind `json:"kind"`
	// CustomSize supplies the real-world dimensions in metres for
	// ReferenceCustom; ignored for standard kinds.
	CustomSize        *Size   `json:"custom_size,omitempty"`
	MeasuredPixelSize Size    `json:"measured_pixel_size"`
	CaptureDistance   float64 `json:"capture_distance_m,omitempty"`
}

// Result is the outcome of a calibration attempt. Once computed it is never
// mutated; a new attempt produces a new Result.
type Result struct {
	PixelsPerMeter float64   `json:"pixels_per_meter"`
	QualityScore   float64   `json:"quality_score"`
	Valid          bool      `json:"valid"`
	Reference      Reference `json:"reference"`
	// Reason explains a rejected calibration for the capture UI.
	Reason string `json:"reason,omitempty"`
}

// Store persists the active calibration across sessions. Implementations
// must round-trip a Result exactly.
type Store interface {
	SaveCalibration(r *Result) error
	// LatestCalibration returns the most recent persisted result, or
	// (nil, nil) if none has been saved.
	LatestCalibration() (*Result, error)
}

// Engine holds the single active pixel-to-metre conversion for one
// measurement session. It is not safe for concurrent use; each session owns
// its own Engine.
type Engine struct {
	active *Result
	store  Store
	now    func() time.Time
}

// NewEngine creates an Engine. The store may be nil, in which case
// calibrations are held in memory only.
func NewEngine(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// Calibrate computes a scale factor from a measured reference object. A
// result with a quality score at or above MinQualityScore becomes the new
// active calibration and is persisted; a rejected result leaves the prior
// calibration untouched and carries an explanatory Reason.
func (e *Engine) Calibrate(req Request) (*Result, error) {
	real, ok := referenceSizes[req.Kind]
	if !ok {
		if req.CustomSize == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownReference, req.Kind)
		}
		real = *req.CustomSize
	}
	if real.Width <= 0 || real.Height <= 0 {
		return nil, fmt.Errorf("%w: real-world size %.4fx%.4f m", ErrInvalidMeasurement, real.Width, real.Height)
	}
	measured := req.MeasuredPixelSize
	if measured.Width <= 0 || measured.Height <= 0 {
		return nil, fmt.Errorf("%w: pixel size %.1fx%.1f px", ErrInvalidMeasurement, measured.Width, measured.Height)
	}

	pixelsPerMeter := measured.Width / real.Width

	// Aspect-ratio consistency is the sole acceptance signal: an off-angle
	// or cropped reference shows up as a skewed aspect ratio.
	pixelAspect := measured.Width / measured.Height
	realAspect := real.Width / real.Height
	quality := 1 - (math.Abs(pixelAspect-realAspect) / realAspect)
	if quality < 0 {
		quality = 0
	}

	result := &Result{
		PixelsPerMeter: pixelsPerMeter,
		QualityScore:   quality,
		Valid:          quality >= MinQualityScore,
		Reference: Reference{
			Kind:              req.Kind,
			RealWorldSize:     real,
			MeasuredPixelSize: measured,
			Confidence:        quality,
			CapturedAt:        e.now(),
		},
	}

	if !result.Valid {
		result.Reason = fmt.Sprintf(
			"reference aspect ratio mismatch: measured %.3f vs expected %.3f (quality %.2f, need %.2f)",
			pixelAspect, realAspect, quality, MinQualityScore)
		return result, nil
	}

	e.active = result
	if e.store != nil {
		if err := e.store.SaveCalibration(result); err != nil {
			return result, fmt.Errorf("persist calibration: %w", err)
		}
	}
	return result, nil
}

// Restore loads the most recently persisted calibration into the engine.
// A stale result is still restored; Status reports its age.
func (e *Engine) Restore() error {
	if e.store == nil {
		return nil
	}
	result, err := e.store.LatestCalibration()
	if err != nil {
		return fmt.Errorf("restore calibration: %w", err)
	}
	if result != nil && result.Valid {
		e.active = result
	}
	return nil
}

// Active returns the current valid calibration, or nil.
func (e *Engine) Active() *Result {
	return e.active
}

// PixelsToMeters converts a pixel distance to metres.
func (e *Engine) PixelsToMeters(pixels float64) (float64, error) {
	if e.active == nil {
		return 0, ErrNoActiveCalibration
	}
	return pixels / e.active.PixelsPerMeter, nil
}

// MetersToPixels converts a metric distance to pixels.
func (e *Engine) MetersToPixels(meters float64) (float64, error) {
	if e.active == nil {
		return 0, ErrNoActiveCalibration
	}
	return meters * e.active.PixelsPerMeter, nil
}

// PixelAreaToSquareMeters converts a pixel area to square metres.
func (e *Engine) PixelAreaToSquareMeters(pixelArea float64) (float64, error) {
	if e.active == nil {
		return 0, ErrNoActiveCalibration
	}
	ppm := e.active.PixelsPerMeter
	return pixelArea / (ppm * ppm), nil
}

// Status describes the engine's calibration state for the capture UI.
type Status struct {
	Calibrated bool    `json:"calibrated"`
	Quality    float64 `json:"quality"`
	AgeHours   float64 `json:"age_hours"`
}

// GetStatus reports whether a usable calibration is active. A calibration
// older than MaxAge reports Calibrated=false even though it was never
// explicitly cleared.
func (e *Engine) GetStatus() Status {
	if e.active == nil {
		return Status{}
	}
	age := e.now().Sub(e.active.Reference.CapturedAt)
	return Status{
		Calibrated: age <= MaxAge,
		Quality:    e.active.QualityScore,
		AgeHours:   age.Hours(),
	}
}

// Clear discards the active calibration.
func (e *Engine) Clear() {
	e.active = nil
}
