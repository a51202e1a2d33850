package subpix

import (
	"fmt"
	"math"
)

// Thresholds are the hysteresis limits in gradient magnitude units.
type Thresholds struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

// Validate requires High >= Low >= 0 and no NaN.
func (t Thresholds) Validate() error {
	if math.IsNaN(t.High) || math.IsNaN(t.Low) {
		return fmt.Errorf("NaN threshold: %w", ErrInvalidThresholds)
	}
	if t.Low < 0 {
		return fmt.Errorf("low %g is negative: %w", t.Low, ErrInvalidThresholds)
	}
	if t.High < t.Low {
		return fmt.Errorf("high %g below low %g: %w", t.High, t.Low, ErrInvalidThresholds)
	}
	return nil
}

// Hysteresis prunes the graph in place. Every linked node with magnitude >=
// th.High seeds a walk forward along next and backward along prev; the walk
// marks nodes valid and, on reaching a node below th.Low, severs the link to
// it and stops. Linked nodes never marked valid are then isolated.
//
// Afterwards every linked node is reachable from a seed through nodes whose
// magnitude is at least th.Low.
func (g *ChainGraph) Hysteresis(mag *Grid, th Thresholds) error {
	if mag == nil {
		return ErrNilField
	}
	if mag.width != g.width || mag.height != g.height {
		return fmt.Errorf("magnitude is %dx%d, graph is %dx%d: %w",
			mag.width, mag.height, g.width, g.height, ErrDimensionMismatch)
	}
	if err := th.Validate(); err != nil {
		return err
	}

	valid := make([]bool, len(g.next))
	for i := range g.next {
		if !g.Linked(i) || valid[i] || mag.data[i] < th.High {
			continue
		}
		valid[i] = true

		for cur := i; ; {
			n := g.next[cur]
			if n == noLink || valid[n] {
				break
			}
			if mag.data[n] < th.Low {
				g.cutNext(cur)
				break
			}
			valid[n] = true
			cur = n
		}

		for cur := i; ; {
			p := g.prev[cur]
			if p == noLink || valid[p] {
				break
			}
			if mag.data[p] < th.Low {
				g.cutPrev(cur)
				break
			}
			valid[p] = true
			cur = p
		}
	}

	for i := range g.next {
		if !valid[i] && g.Linked(i) {
			g.isolate(i)
		}
	}
	return nil
}
