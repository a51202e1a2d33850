package subpix

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Curve is an ordered chain of sub-pixel edge points. Directions[i] is the
// unit gradient direction at Points[i]; both slices have the same length.
// A closed curve repeats its first point as the last one.
type Curve struct {
	Points     []r2.Vec
	Directions []r2.Vec
}

// Len returns the number of points, counting the repeated point of a closed
// curve.
func (c Curve) Len() int { return len(c.Points) }

// Closed reports whether the first and last points coincide.
func (c Curve) Closed() bool {
	n := len(c.Points)
	return n > 1 && c.Points[0] == c.Points[n-1]
}

// Length returns the polyline arc length in pixels.
func (c Curve) Length() float64 {
	var total float64
	for i := 1; i < len(c.Points); i++ {
		total += r2.Norm(r2.Sub(c.Points[i], c.Points[i-1]))
	}
	return total
}

// Translate returns a copy of c with every point shifted by (dx, dy).
func (c Curve) Translate(dx, dy float64) Curve {
	shift := r2.Vec{X: dx, Y: dy}
	out := Curve{
		Points:     make([]r2.Vec, len(c.Points)),
		Directions: append([]r2.Vec(nil), c.Directions...),
	}
	for i, p := range c.Points {
		out.Points[i] = r2.Add(p, shift)
	}
	return out
}

// FilterShort drops curves with fewer than minPoints points. The input order
// is preserved.
func FilterShort(curves []Curve, minPoints int) []Curve {
	if minPoints <= 0 {
		return curves
	}
	out := curves[:0:0]
	for _, c := range curves {
		if c.Len() >= minPoints {
			out = append(out, c)
		}
	}
	return out
}

// Extract walks the graph into curves, consuming it: every visited node is
// unlinked as it is emitted.
//
// Pixels are scanned in raster order. From the first linked pixel the walk
// goes backward along prev to the start of an open chain; if it comes back to
// the scanned pixel the chain is a cycle and starts there. It then follows
// next, emitting each point. In a cycle the link into the start node is still
// present when the walk reaches it again, so the start point is emitted a
// second time and the curve comes out closed.
//
// Only the graph is consumed. em is left as it was, including points of
// chains that hysteresis rejected; those are unreachable through the graph
// and never reach the output.
func Extract(g *ChainGraph, em *EdgePointMap, f *GradientField) ([]Curve, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if em.width != g.width || em.height != g.height ||
		f.Width() != g.width || f.Height() != g.height {
		return nil, fmt.Errorf("graph is %dx%d, edge map is %dx%d, field is %dx%d: %w",
			g.width, g.height, em.width, em.height, f.Width(), f.Height(), ErrDimensionMismatch)
	}

	var curves []Curve
	for i := range g.next {
		if !g.Linked(i) {
			continue
		}

		start := i
		for {
			p := g.prev[start]
			if p == noLink {
				break
			}
			if p == i {
				start = i
				break
			}
			start = p
		}

		var c Curve
		for k := start; k != noLink; {
			m := f.Mag.data[k]
			c.Points = append(c.Points, em.point(k))
			c.Directions = append(c.Directions, r2.Vec{
				X: f.Gx.data[k] / m,
				Y: f.Gy.data[k] / m,
			})

			n := g.next[k]
			g.next[k] = noLink
			g.prev[k] = noLink
			k = n
		}
		curves = append(curves, c)
	}
	return curves, nil
}
