// Package config loads optional JSON overrides for the measurement core's
// tuning parameters. Fields omitted from the file keep their defaults, so
// partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roofscope/measure/internal/surface"
)

// TuningConfig holds optional overrides for the measurement pipeline.
// Pointer fields distinguish "not set" from an explicit zero.
type TuningConfig struct {
	// Candidate filter params
	MinPlaneArea  *float64 `json:"min_plane_area_m2,omitempty"`
	MinConfidence *float64 `json:"min_confidence,omitempty"`
	MaxDistance   *float64 `json:"max_distance_m,omitempty"`

	// Mesh params
	ExtrusionHeight *float64 `json:"extrusion_height_m,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads overrides from a JSON file. The file must have a
// .json extension and stay under the size cap.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that any set values are usable.
func (c *TuningConfig) Validate() error {
	if c.MinPlaneArea != nil && *c.MinPlaneArea < 0 {
		return fmt.Errorf("min_plane_area_m2 must be non-negative, got %f", *c.MinPlaneArea)
	}
	if c.MinConfidence != nil && (*c.MinConfidence < 0 || *c.MinConfidence > 1) {
		return fmt.Errorf("min_confidence must be between 0 and 1, got %f", *c.MinConfidence)
	}
	if c.MaxDistance != nil && *c.MaxDistance <= 0 {
		return fmt.Errorf("max_distance_m must be positive, got %f", *c.MaxDistance)
	}
	if c.ExtrusionHeight != nil && *c.ExtrusionHeight <= 0 {
		return fmt.Errorf("extrusion_height_m must be positive, got %f", *c.ExtrusionHeight)
	}
	return nil
}

// FilterParams returns the candidate filter thresholds with any overrides
// applied on top of the defaults.
func (c *TuningConfig) FilterParams() surface.FilterParams {
	params := surface.DefaultFilterParams()
	if c.MinPlaneArea != nil {
		params.MinPlaneArea = *c.MinPlaneArea
	}
	if c.MinConfidence != nil {
		params.MinConfidence = *c.MinConfidence
	}
	if c.MaxDistance != nil {
		params.MaxDistance = *c.MaxDistance
	}
	return params
}

// GetExtrusionHeight returns the extrusion height override or the mesh
// default of 0.1 metres.
func (c *TuningConfig) GetExtrusionHeight() float64 {
	if c.ExtrusionHeight == nil {
		return 0.1
	}
	return *c.ExtrusionHeight
}
