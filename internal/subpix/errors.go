package subpix

import "errors"

// ErrDimensionMismatch indicates that the grids handed to a stage do not share
// the same width and height.
var ErrDimensionMismatch = errors.New("subpix: grid dimensions do not match")

// ErrInvalidThresholds indicates hysteresis thresholds that are negative, NaN,
// or ordered with high below low.
var ErrInvalidThresholds = errors.New("subpix: invalid hysteresis thresholds")

// ErrNilField indicates that a gradient field or one of its grids is nil.
var ErrNilField = errors.New("subpix: nil gradient field")
