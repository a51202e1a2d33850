package subpix

import (
	"fmt"
	"log/slog"
)

// Detect runs the full pipeline on a gradient field: Locate, Link, Hysteresis
// and Extract. Inputs are validated before any work is done; a field with no
// edge points yields an empty, non-nil slice.
func Detect(f *GradientField, th Thresholds) ([]Curve, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("gradient field: %w", err)
	}
	if err := th.Validate(); err != nil {
		return nil, err
	}

	log := Logger()

	em, err := Locate(f)
	if err != nil {
		return nil, err
	}
	log.Debug("subpix: edge points located",
		slog.Int("width", f.Width()), slog.Int("height", f.Height()),
		slog.Int("points", em.Count()))

	g, err := Link(em, f)
	if err != nil {
		return nil, err
	}
	log.Debug("subpix: edge points chained", slog.Int("links", g.Links()))

	if err := g.Hysteresis(f.Mag, th); err != nil {
		return nil, err
	}
	log.Debug("subpix: hysteresis applied",
		slog.Float64("high", th.High), slog.Float64("low", th.Low),
		slog.Int("links", g.Links()))

	curves, err := Extract(g, em, f)
	if err != nil {
		return nil, err
	}
	if curves == nil {
		curves = []Curve{}
	}
	log.Debug("subpix: curves extracted", slog.Int("curves", len(curves)))
	return curves, nil
}
