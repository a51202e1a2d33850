package subpix

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// linkRadius is the Chebyshev radius of the candidate window around an edge
// point.
const linkRadius = 2

// linker scores candidate links between edge points.
type linker struct {
	em *EdgePointMap
	f  *GradientField
}

func (l *linker) gradient(i int) r2.Vec {
	return r2.Vec{X: l.f.Gx.data[i], Y: l.f.Gy.data[i]}
}

// score rates chaining node from to node to:
//
//	0   invalid pairing
//	> 0 forward link from -> to, larger is better
//	< 0 backward link to -> from, smaller is better
//
// The gradient at both ends must be roughly orthogonal to the segment joining
// them; the sign of Gy*dx - Gx*dy gives the direction and must agree at both
// ends. The magnitude is the inverse of the distance so closer points win.
func (l *linker) score(from, to int) float64 {
	if from == to {
		return 0
	}
	if !l.em.hasEdge(from) || !l.em.hasEdge(to) {
		return 0
	}

	d := r2.Sub(l.em.point(to), l.em.point(from))
	fromProj := r2.Cross(d, l.gradient(from))
	toProj := r2.Cross(d, l.gradient(to))
	if fromProj*toProj <= 0 {
		return 0
	}

	dist := r2.Norm(d)
	if fromProj >= 0 {
		return 1 / dist
	}
	return -1 / dist
}

// Link chains every edge point to its best forward and backward neighbour.
//
// Edge points are visited in raster order. For each one the best forward
// candidate (largest positive score) and best backward candidate (most
// negative score) within the 5x5 window are found. A candidate that is
// already linked to a rival keeps the rival unless the new link scores
// better, in which case the rival link is dropped.
//
// The greedy replacement is order dependent when three or more points compete
// for one junction; the raster order pins the result.
func Link(em *EdgePointMap, f *GradientField) (*ChainGraph, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if em.width != f.Width() || em.height != f.Height() {
		return nil, fmt.Errorf("edge map is %dx%d, field is %dx%d: %w",
			em.width, em.height, f.Width(), f.Height(), ErrDimensionMismatch)
	}

	w, h := em.width, em.height
	g := NewChainGraph(w, h)
	l := &linker{em: em, f: f}

	for y := margin; y < h-margin; y++ {
		for x := margin; x < w-margin; x++ {
			from := y*w + x
			if !em.hasEdge(from) {
				continue
			}

			var fwdScore, bckScore float64
			fwd, bck := noLink, noLink
			for i := -linkRadius; i <= linkRadius; i++ {
				for j := -linkRadius; j <= linkRadius; j++ {
					to := (y+j)*w + x + i
					s := l.score(from, to)
					if s > fwdScore {
						fwdScore = s
						fwd = to
					}
					if s < bckScore {
						bckScore = s
						bck = to
					}
				}
			}

			if fwd != noLink && g.next[from] != fwd {
				rival := g.prev[fwd]
				if rival == noLink || l.score(rival, fwd) < fwdScore {
					if n := g.next[from]; n != noLink {
						g.prev[n] = noLink
					}
					g.next[from] = fwd
					if rival != noLink {
						g.next[rival] = noLink
					}
					g.prev[fwd] = from
				}
			}

			if bck != noLink && g.prev[from] != bck {
				rival := g.next[bck]
				if rival == noLink || l.score(rival, bck) > bckScore {
					if rival != noLink {
						g.prev[rival] = noLink
					}
					g.next[bck] = from
					if p := g.prev[from]; p != noLink {
						g.next[p] = noLink
					}
					g.prev[from] = bck
				}
			}
		}
	}
	return g, nil
}
