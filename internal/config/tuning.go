// Package config loads smoothing and contouring tuning parameters from
// JSON files with explicit defaults for anything left unset.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tremor-data/intensity.report/internal/contour"
	"github.com/tremor-data/intensity.report/internal/smooth"
)

// TuningConfig represents the tuning parameters for one contouring run.
// All fields are optional; the Get* methods provide defaults for anything
// not present in the JSON, so partial config files are safe.
type TuningConfig struct {
	// Smoothing params
	SmoothingMethod *string  `json:"smoothing_method,omitempty"` // "none" or "gaussian"
	SmoothingSigma  *float64 `json:"smoothing_sigma,omitempty"`
	KernelTruncate  *float64 `json:"kernel_truncate,omitempty"`
	Workers         *int     `json:"workers,omitempty"`

	// Contour level params
	ContourInterval *float64 `json:"contour_interval,omitempty"`
	ContourBase     *float64 `json:"contour_base,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must
// have a .json extension and stay under the size cap. Fields omitted from
// the file fall back to defaults via the Get* methods.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
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
	if c.SmoothingMethod != nil {
		if _, err := contour.ParseSmoothingMethod(*c.SmoothingMethod); err != nil {
			return err
		}
	}
	if c.SmoothingSigma != nil && *c.SmoothingSigma <= 0 {
		return fmt.Errorf("smoothing_sigma must be positive, got %f", *c.SmoothingSigma)
	}
	if c.KernelTruncate != nil && *c.KernelTruncate <= 0 {
		return fmt.Errorf("kernel_truncate must be positive, got %f", *c.KernelTruncate)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.ContourInterval != nil && *c.ContourInterval <= 0 {
		return fmt.Errorf("contour_interval must be positive, got %f", *c.ContourInterval)
	}
	return nil
}

// GetSmoothingMethod returns the configured method or the gaussian default.
func (c *TuningConfig) GetSmoothingMethod() contour.SmoothingMethod {
	if c.SmoothingMethod == nil {
		return contour.SmoothingGaussian
	}
	m, err := contour.ParseSmoothingMethod(*c.SmoothingMethod)
	if err != nil {
		return contour.SmoothingGaussian
	}
	return m
}

// GetSmoothingSigma returns the configured sigma or the shakemap default.
func (c *TuningConfig) GetSmoothingSigma() float64 {
	if c.SmoothingSigma == nil {
		return contour.DefaultSigma
	}
	return *c.SmoothingSigma
}

// GetKernelTruncate returns the configured truncation or the default.
func (c *TuningConfig) GetKernelTruncate() float64 {
	if c.KernelTruncate == nil {
		return smooth.DefaultTruncate
	}
	return *c.KernelTruncate
}

// GetWorkers returns the configured worker count, 1 (serial) by default.
func (c *TuningConfig) GetWorkers() int {
	if c.Workers == nil {
		return 1
	}
	return *c.Workers
}

// GetContourInterval returns the configured interval or the default.
func (c *TuningConfig) GetContourInterval() float64 {
	if c.ContourInterval == nil {
		return contour.DefaultContourInterval
	}
	return *c.ContourInterval
}

// GetContourBase returns the configured base level or the default.
func (c *TuningConfig) GetContourBase() float64 {
	if c.ContourBase == nil {
		return contour.DefaultContourBase
	}
	return *c.ContourBase
}

// SmoothingParams resolves the config into pipeline smoothing parameters.
func (c *TuningConfig) SmoothingParams() contour.SmoothingParams {
	return contour.SmoothingParams{
		Method:   c.GetSmoothingMethod(),
		Sigma:    c.GetSmoothingSigma(),
		Truncate: c.GetKernelTruncate(),
		Workers:  c.GetWorkers(),
	}
}

// LevelParams resolves the config into contour level parameters.
func (c *TuningConfig) LevelParams() contour.LevelParams {
	return contour.LevelParams{
		Interval: c.GetContourInterval(),
		Base:     c.GetContourBase(),
	}
}
