// Package config loads the detection defaults the MCP server falls back to
// when a tool call omits a parameter.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/subpixel-edges-mcp/internal/gradient"
	"github.com/ironsheep/subpixel-edges-mcp/internal/subpix"
)

// Default values used when a field is absent.
const (
	DefaultSigma          = 1.0
	DefaultLow            = 10.0
	DefaultHigh           = 40.0
	DefaultLuminance      = gradient.LuminanceLuma
	DefaultSmoother       = gradient.SmootherImaging
	DefaultMinCurvePoints = 0
)

// maxFileSize caps config files at 1MB.
const maxFileSize = 1 * 1024 * 1024

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// DetectionConfig holds optional detection defaults. Nil fields fall back to
// the package defaults through the Get* methods, so partial files are safe.
type DetectionConfig struct {
	Sigma          *float64 `json:"sigma,omitempty"`
	Low            *float64 `json:"low,omitempty"`
	High           *float64 `json:"high,omitempty"`
	Luminance      *string  `json:"luminance,omitempty"`
	Smoother       *string  `json:"smoother,omitempty"`
	MinCurvePoints *int     `json:"min_curve_points,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// DefaultDetectionConfig returns a config with every field set to its default.
func DefaultDetectionConfig() *DetectionConfig {
	return &DetectionConfig{
		Sigma:          ptrFloat64(DefaultSigma),
		Low:            ptrFloat64(DefaultLow),
		High:           ptrFloat64(DefaultHigh),
		Luminance:      ptrString(DefaultLuminance),
		Smoother:       ptrString(DefaultSmoother),
		MinCurvePoints: ptrInt(DefaultMinCurvePoints),
	}
}

// LoadConfig loads a DetectionConfig from a JSON file.
// The file must have a .json extension and be at most 1MB.
func LoadConfig(path string) (*DetectionConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &DetectionConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the effective values, so a file that sets only low must
// keep it at or below the default high.
func (c *DetectionConfig) Validate() error {
	if err := c.Thresholds().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.GradientOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if n := c.GetMinCurvePoints(); n < 0 {
		return fmt.Errorf("%w: min_curve_points must be non-negative, got %d", ErrInvalidConfig, n)
	}
	return nil
}

// GetSigma returns the sigma value or the default.
func (c *DetectionConfig) GetSigma() float64 {
	if c.Sigma == nil {
		return DefaultSigma
	}
	return *c.Sigma
}

// GetLow returns the low threshold or the default.
func (c *DetectionConfig) GetLow() float64 {
	if c.Low == nil {
		return DefaultLow
	}
	return *c.Low
}

// GetHigh returns the high threshold or the default.
func (c *DetectionConfig) GetHigh() float64 {
	if c.High == nil {
		return DefaultHigh
	}
	return *c.High
}

// GetLuminance returns the intensity mode or the default.
func (c *DetectionConfig) GetLuminance() string {
	if c.Luminance == nil || *c.Luminance == "" {
		return DefaultLuminance
	}
	return *c.Luminance
}

// GetSmoother returns the smoothing backend or the default.
func (c *DetectionConfig) GetSmoother() string {
	if c.Smoother == nil || *c.Smoother == "" {
		return DefaultSmoother
	}
	return *c.Smoother
}

// GetMinCurvePoints returns the minimum curve length or the default.
func (c *DetectionConfig) GetMinCurvePoints() int {
	if c.MinCurvePoints == nil {
		return DefaultMinCurvePoints
	}
	return *c.MinCurvePoints
}

// Thresholds returns the hysteresis thresholds.
func (c *DetectionConfig) Thresholds() subpix.Thresholds {
	return subpix.Thresholds{High: c.GetHigh(), Low: c.GetLow()}
}

// GradientOptions returns the options for gradient.Compute.
func (c *DetectionConfig) GradientOptions() gradient.Options {
	return gradient.Options{
		Sigma:     c.GetSigma(),
		Smoother:  c.GetSmoother(),
		Luminance: c.GetLuminance(),
	}
}
