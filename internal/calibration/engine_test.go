package calibration

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	saved   []*Result
	saveErr error
}

func (m *memStore) SaveCalibration(r *Result) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, r)
	return nil
}

func (m *memStore) LatestCalibration() (*Result, error) {
	if len(m.saved) == 0 {
		return nil, nil
	}
	return m.saved[len(m.saved)-1], nil
}

func TestCalibrate_ProportionalMeasurementIsPerfect(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	// Business card at exactly k=5000 pixels per metre.
	result, err := e.Calibrate(Request{
		Kind:              ReferenceBusinessCard,
		MeasuredPixelSize: Size{Width: 444.5, Height: 254},
	})
	require.NoError(t, err)

	assert.InDelta(t, 5000.0, result.PixelsPerMeter, 1e-9)
	assert.InDelta(t, 1.0, result.QualityScore, 1e-9)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Reason)
	assert.Same(t, result, e.Active())
}

func TestCalibrate_SkewedAspectRejected(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)

	good, err := e.Calibrate(Request{
		Kind:              ReferenceCreditCard,
		MeasuredPixelSize: Size{Width: 856, Height: 539},
	})
	require.NoError(t, err)
	require.True(t, good.Valid)

	// Aspect ratio off by ~50%: measured nearly square instead of 1.588.
	bad, err := e.Calibrate(Request{
		Kind:              ReferenceCreditCard,
		MeasuredPixelSize: Size{Width: 500, Height: 600},
	})
	require.NoError(t, err)

	assert.False(t, bad.Valid)
	assert.Less(t, bad.QualityScore, MinQualityScore)
	assert.NotEmpty(t, bad.Reason)

	// The prior calibration survives a rejected attempt.
	assert.Same(t, good, e.Active())
}

func TestCalibrate_InputValidation(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)

	t.Run("unknown kind without custom size", func(t *testing.T) {
		t.Parallel()
		_, err := e.Calibrate(Request{
			Kind:              ReferenceKind("postage_stamp"),
			MeasuredPixelSize: Size{Width: 100, Height: 100},
		})
		assert.ErrorIs(t, err, ErrUnknownReference)
	})

	t.Run("custom kind with size accepted", func(t *testing.T) {
		t.Parallel()
		custom := Size{Width: 0.2, Height: 0.1}
		result, err := NewEngine(nil).Calibrate(Request{
			Kind:              ReferenceCustom,
			CustomSize:        &custom,
			MeasuredPixelSize: Size{Width: 400, Height: 200},
		})
		require.NoError(t, err)
		assert.InDelta(t, 2000.0, result.PixelsPerMeter, 1e-9)
		assert.True(t, result.Valid)
	})

	t.Run("zero pixel dimension", func(t *testing.T) {
		t.Parallel()
		_, err := e.Calibrate(Request{
			Kind:              ReferenceCoin,
			MeasuredPixelSize: Size{Width: 120, Height: 0},
		})
		assert.ErrorIs(t, err, ErrInvalidMeasurement)
	})

	t.Run("negative custom size", func(t *testing.T) {
		t.Parallel()
		custom := Size{Width: -1, Height: 0.1}
		_, err := e.Calibrate(Request{
			Kind:              ReferenceCustom,
			CustomSize:        &custom,
			MeasuredPixelSize: Size{Width: 100, Height: 50},
		})
		assert.ErrorIs(t, err, ErrInvalidMeasurement)
	})
}

func TestConversions(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)

	_, err := e.PixelsToMeters(100)
	assert.ErrorIs(t, err, ErrNoActiveCalibration)
	_, err = e.MetersToPixels(1)
	assert.ErrorIs(t, err, ErrNoActiveCalibration)
	_, err = e.PixelAreaToSquareMeters(100)
	assert.ErrorIs(t, err, ErrNoActiveCalibration)

	_, err = e.Calibrate(Request{
		Kind:              ReferenceBusinessCard,
		MeasuredPixelSize: Size{Width: 444.5, Height: 254},
	})
	require.NoError(t, err)

	meters, err := e.PixelsToMeters(5000)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, meters, 1e-9)

	pixels, err := e.MetersToPixels(2)
	require.NoError(t, err)
	assert.InDelta(t, 10000.0, pixels, 1e-9)

	area, err := e.PixelAreaToSquareMeters(5000 * 5000)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, area, 1e-9)
}

func TestGetStatus_Staleness(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	assert.False(t, e.GetStatus().Calibrated)

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return now }

	_, err := e.Calibrate(Request{
		Kind:              ReferenceBusinessCard,
		MeasuredPixelSize: Size{Width: 444.5, Height: 254},
	})
	require.NoError(t, err)

	status := e.GetStatus()
	assert.True(t, status.Calibrated)
	assert.InDelta(t, 0.0, status.AgeHours, 1e-9)
	assert.InDelta(t, 1.0, status.Quality, 1e-9)

	// 25 hours later the calibration is stale but still present.
	e.now = func() time.Time { return now.Add(25 * time.Hour) }
	status = e.GetStatus()
	assert.False(t, status.Calibrated)
	assert.InDelta(t, 25.0, status.AgeHours, 1e-9)
	assert.NotNil(t, e.Active())

	// Conversions remain available; staleness is advisory.
	_, err = e.PixelsToMeters(10)
	assert.NoError(t, err)

	e.Clear()
	assert.Nil(t, e.Active())
	assert.False(t, e.GetStatus().Calibrated)
}

func TestStorePersistence(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	e := NewEngine(store)

	result, err := e.Calibrate(Request{
		Kind:              ReferenceBusinessCard,
		MeasuredPixelSize: Size{Width: 444.5, Height: 254},
	})
	require.NoError(t, err)
	require.Len(t, store.saved, 1)
	assert.Same(t, result, store.saved[0])

	// A rejected attempt is not persisted.
	_, err = e.Calibrate(Request{
		Kind:              ReferenceBusinessCard,
		MeasuredPixelSize: Size{Width: 500, Height: 500},
	})
	require.NoError(t, err)
	assert.Len(t, store.saved, 1)

	// A fresh engine restores the persisted calibration.
	restored := NewEngine(store)
	require.NoError(t, restored.Restore())
	require.NotNil(t, restored.Active())
	assert.InDelta(t, 5000.0, restored.Active().PixelsPerMeter, 1e-9)

	// Store failures surface to the caller.
	failing := NewEngine(&memStore{saveErr: errors.New("disk full")})
	_, err = failing.Calibrate(Request{
		Kind:              ReferenceBusinessCard,
		MeasuredPixelSize: Size{Width: 444.5, Height: 254},
	})
	assert.ErrorContains(t, err, "persist calibration")
}
