package subpix

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

// fieldFromIntensity computes a 3x3 Sobel gradient scaled by 1/4 with
// replicated borders, rows[y][x].
func fieldFromIntensity(t *testing.T, rows [][]float64) *GradientField {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	at := func(x, y int) float64 {
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
		return rows[y][x]
	}
	gx := NewGrid(w, h)
	gy := NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			sy := (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))
			gx.Set(x, y, 0.25*sx)
			gy.Set(x, y, 0.25*sy)
		}
	}
	f, err := NewGradientField(gx, gy)
	require.NoError(t, err)
	return f
}

// fieldFromProfileX builds a field whose Gx varies along x only, Gy = 0.
func fieldFromProfileX(t *testing.T, profile []float64, height int) *GradientField {
	t.Helper()
	gx := NewGrid(len(profile), height)
	gy := NewGrid(len(profile), height)
	for y := 0; y < height; y++ {
		for x, v := range profile {
			gx.Set(x, y, v)
		}
	}
	f, err := NewGradientField(gx, gy)
	require.NoError(t, err)
	return f
}

// fieldFromProfileY builds a field whose Gy varies along y only, Gx = 0.
func fieldFromProfileY(t *testing.T, profile []float64, width int) *GradientField {
	t.Helper()
	gx := NewGrid(width, len(profile))
	gy := NewGrid(width, len(profile))
	for y, v := range profile {
		for x := 0; x < width; x++ {
			gy.Set(x, y, v)
		}
	}
	f, err := NewGradientField(gx, gy)
	require.NoError(t, err)
	return f
}

// randomField fills Gx and Gy with uniform values in [-1, 1).
func randomField(t *testing.T, seed int64, w, h int) *GradientField {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	gx := NewGrid(w, h)
	gy := NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx.Set(x, y, 2*rng.Float64()-1)
			gy.Set(x, y, 2*rng.Float64()-1)
		}
	}
	f, err := NewGradientField(gx, gy)
	require.NoError(t, err)
	return f
}

// shapesImage draws a bright rectangle and a bright disc on a dark background
// with seeded noise.
func shapesImage(seed int64, w, h int, noise float64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]float64, h)
	for y := range rows {
		rows[y] = make([]float64, w)
		for x := range rows[y] {
			v := 20.0
			if x >= w/8 && x < w/2 && y >= h/8 && y < h/2 {
				v = 200
			}
			dx, dy := float64(x-3*w/4), float64(y-3*h/4)
			if dx*dx+dy*dy <= float64(w*w)/64 {
				v = 140
			}
			rows[y][x] = v + noise*(2*rng.Float64()-1)
		}
	}
	return rows
}

// requireSymmetric checks next[a] == b <=> prev[b] == a for every node.
func requireSymmetric(t *testing.T, g *ChainGraph) {
	t.Helper()
	for a := range g.next {
		if b := g.next[a]; b != noLink {
			require.Equalf(t, a, g.prev[b], "next[%d]=%d but prev[%d]=%d", a, b, b, g.prev[b])
		}
		if p := g.prev[a]; p != noLink {
			require.Equalf(t, a, g.next[p], "prev[%d]=%d but next[%d]=%d", a, p, p, g.next[p])
		}
	}
}

// edgeFieldAt returns a field where the listed pixels carry gradient grad and
// every other pixel has zero gradient.
func edgeFieldAt(t *testing.T, w, h int, grad r2.Vec, pixels ...[2]int) *GradientField {
	t.Helper()
	gx := NewGrid(w, h)
	gy := NewGrid(w, h)
	for _, p := range pixels {
		gx.Set(p[0], p[1], grad.X)
		gy.Set(p[0], p[1], grad.Y)
	}
	f, err := NewGradientField(gx, gy)
	require.NoError(t, err)
	return f
}

// uniquePoints returns the set of distinct points over all curves.
func uniquePoints(curves []Curve) map[r2.Vec]struct{} {
	set := make(map[r2.Vec]struct{})
	for _, c := range curves {
		for _, p := range c.Points {
			set[p] = struct{}{}
		}
	}
	return set
}
