package subpix

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// margin is the border width, in pixels, that never hosts edge points. The
// linking window reaches two pixels out, so every candidate stays in bounds.
const margin = 2

// epsilon is the float64 machine epsilon.
const epsilon = 0x1p-52

// greaterTolerance absorbs rounding noise between magnitudes that are equal
// in exact arithmetic.
const greaterTolerance = 1000 * epsilon

// greater reports a > b, treating differences below greaterTolerance as equal.
func greater(a, b float64) bool {
	if a <= b {
		return false
	}
	if a-b < greaterTolerance {
		return false
	}
	return true
}

// Locate finds the pixels whose gradient magnitude is a local maximum along
// the dominant gradient axis and refines each one to sub-pixel precision.
//
// A pixel is a horizontal maximum when L < G >= R and |Gx| >= |Gy|, and a
// vertical maximum when D < G >= U and |Gx| <= |Gy|, where D is the row above
// (y-1) and U the row below (y+1). The asymmetric comparison puts the edge on
// the left (or upper) pixel of a two-pixel plateau. The offset along the
// chosen axis is the vertex of the parabola through the three magnitudes and
// always lies in [-0.5, 0.5].
func Locate(f *GradientField) (*EdgePointMap, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	w, h := f.Width(), f.Height()
	em := NewEdgePointMap(w, h)
	mag := f.Mag

	for y := margin; y < h-margin; y++ {
		for x := margin; x < w-margin; x++ {
			mod := mag.At(x, y)
			l := mag.At(x-1, y)
			r := mag.At(x+1, y)
			d := mag.At(x, y-1)
			u := mag.At(x, y+1)
			gx := math.Abs(f.Gx.At(x, y))
			gy := math.Abs(f.Gy.At(x, y))

			var dx, dy int
			switch {
			case greater(mod, l) && !greater(r, mod) && gx >= gy:
				dx = 1
			case greater(mod, d) && !greater(u, mod) && gx <= gy:
				dy = 1
			default:
				continue
			}

			a := mag.At(x-dx, y-dy)
			b := mod
			c := mag.At(x+dx, y+dy)
			offset := 0.5 * (a - c) / (a - b - b + c)

			em.Set(x, y, r2.Vec{
				X: float64(x) + offset*float64(dx),
				Y: float64(y) + offset*float64(dy),
			})
		}
	}
	return em, nil
}
