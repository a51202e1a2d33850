package subpix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Grid is a dense width x height array of float64 values stored row-major.
type Grid struct {
	width  int
	height int
	data   []float64
}

// NewGrid returns a zero-filled grid. Negative dimensions are treated as zero.
func NewGrid(width, height int) *Grid {
	width = max(width, 0)
	height = max(height, 0)
	return &Grid{
		width:  width,
		height: height,
		data:   make([]float64, width*height),
	}
}

// GridFromRows builds a grid from row slices, rows[y][x]. All rows must have
// the same length.
func GridFromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 {
		return NewGrid(0, 0), nil
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", y, len(row), g.width, ErrDimensionMismatch)
		}
		copy(g.data[y*g.width:], row)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the value at column x, row y.
func (g *Grid) At(x, y int) float64 { return g.data[y*g.width+x] }

// Set stores v at column x, row y.
func (g *Grid) Set(x, y int, v float64) { g.data[y*g.width+x] = v }

func (g *Grid) sameSize(o *Grid) bool {
	return g.width == o.width && g.height == o.height
}

// GradientField bundles the signed gradient components and their magnitude.
// It is read-only to this package.
type GradientField struct {
	Gx  *Grid
	Gy  *Grid
	Mag *Grid
}

// NewGradientField builds a field from the two components and computes
// Mag = sqrt(Gx² + Gy²).
func NewGradientField(gx, gy *Grid) (*GradientField, error) {
	if gx == nil || gy == nil {
		return nil, ErrNilField
	}
	if !gx.sameSize(gy) {
		return nil, fmt.Errorf("gx is %dx%d, gy is %dx%d: %w", gx.width, gx.height, gy.width, gy.height, ErrDimensionMismatch)
	}
	mag := NewGrid(gx.width, gx.height)
	for i := range mag.data {
		dx, dy := gx.data[i], gy.data[i]
		mag.data[i] = math.Sqrt(dx*dx + dy*dy)
	}
	return &GradientField{Gx: gx, Gy: gy, Mag: mag}, nil
}

// NewGradientFieldWithMagnitude builds a field from externally computed
// components and magnitude.
func NewGradientFieldWithMagnitude(gx, gy, mag *Grid) (*GradientField, error) {
	f := &GradientField{Gx: gx, Gy: gy, Mag: mag}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks that all three grids are present and equally sized.
func (f *GradientField) Validate() error {
	if f == nil || f.Gx == nil || f.Gy == nil || f.Mag == nil {
		return ErrNilField
	}
	if !f.Gx.sameSize(f.Gy) || !f.Gx.sameSize(f.Mag) {
		return fmt.Errorf("gx %dx%d, gy %dx%d, mag %dx%d: %w",
			f.Gx.width, f.Gx.height, f.Gy.width, f.Gy.height, f.Mag.width, f.Mag.height,
			ErrDimensionMismatch)
	}
	return nil
}

// Width returns the field width in pixels.
func (f *GradientField) Width() int { return f.Mag.width }

// Height returns the field height in pixels.
func (f *GradientField) Height() int { return f.Mag.height }

// noEdge marks a pixel without an edge point.
var noEdge = r2.Vec{X: -1, Y: -1}

// EdgePointMap holds, per pixel, the sub-pixel position of the edge point it
// hosts or the (-1,-1) sentinel.
type EdgePointMap struct {
	width  int
	height int
	pts    []r2.Vec
}

// NewEdgePointMap returns a map with every pixel set to the sentinel.
func NewEdgePointMap(width, height int) *EdgePointMap {
	width = max(width, 0)
	height = max(height, 0)
	m := &EdgePointMap{
		width:  width,
		height: height,
		pts:    make([]r2.Vec, width*height),
	}
	for i := range m.pts {
		m.pts[i] = noEdge
	}
	return m
}

// Width returns the map width in pixels.
func (m *EdgePointMap) Width() int { return m.width }

// Height returns the map height in pixels.
func (m *EdgePointMap) Height() int { return m.height }

// At returns the sub-pixel position hosted by pixel (x, y) and whether the
// pixel hosts an edge point.
func (m *EdgePointMap) At(x, y int) (r2.Vec, bool) {
	p := m.pts[y*m.width+x]
	return p, isEdge(p)
}

// Set stores an edge point at pixel (x, y).
func (m *EdgePointMap) Set(x, y int, p r2.Vec) { m.pts[y*m.width+x] = p }

// Clear resets pixel (x, y) to the sentinel.
func (m *EdgePointMap) Clear(x, y int) { m.pts[y*m.width+x] = noEdge }

// Count returns the number of edge points in the map.
func (m *EdgePointMap) Count() int {
	n := 0
	for _, p := range m.pts {
		if isEdge(p) {
			n++
		}
	}
	return n
}

func (m *EdgePointMap) point(i int) r2.Vec { return m.pts[i] }

func (m *EdgePointMap) hasEdge(i int) bool { return isEdge(m.pts[i]) }

func isEdge(p r2.Vec) bool { return p.X >= 0 && p.Y >= 0 }

// noLink marks an absent successor or predecessor.
const noLink = -1

// ChainGraph is an arena of per-pixel link records indexed by the linear pixel
// index y*width+x. Every node has at most one successor and one predecessor,
// and next[a] == b holds exactly when prev[b] == a.
type ChainGraph struct {
	width  int
	height int
	next   []int
	prev   []int
}

// NewChainGraph returns a graph with no links.
func NewChainGraph(width, height int) *ChainGraph {
	width = max(width, 0)
	height = max(height, 0)
	g := &ChainGraph{
		width:  width,
		height: height,
		next:   make([]int, width*height),
		prev:   make([]int, width*height),
	}
	for i := range g.next {
		g.next[i] = noLink
		g.prev[i] = noLink
	}
	return g
}

// Width returns the graph width in pixels.
func (g *ChainGraph) Width() int { return g.width }

// Height returns the graph height in pixels.
func (g *ChainGraph) Height() int { return g.height }

// Index returns the linear index of pixel (x, y).
func (g *ChainGraph) Index(x, y int) int { return y*g.width + x }

// Pixel returns the pixel coordinates of linear index i.
func (g *ChainGraph) Pixel(i int) (x, y int) { return i % g.width, i / g.width }

// Next returns the successor of node i, if any.
func (g *ChainGraph) Next(i int) (int, bool) {
	n := g.next[i]
	return n, n != noLink
}

// Prev returns the predecessor of node i, if any.
func (g *ChainGraph) Prev(i int) (int, bool) {
	p := g.prev[i]
	return p, p != noLink
}

// Linked reports whether node i has a successor or a predecessor.
func (g *ChainGraph) Linked(i int) bool {
	return g.next[i] != noLink || g.prev[i] != noLink
}

// Connect installs the link from -> to, dropping any link that previously
// left from or entered to so the graph stays symmetric.
func (g *ChainGraph) Connect(from, to int) {
	if old := g.next[from]; old != noLink {
		g.prev[old] = noLink
	}
	if old := g.prev[to]; old != noLink {
		g.next[old] = noLink
	}
	g.next[from] = to
	g.prev[to] = from
}

// Links returns the number of installed links.
func (g *ChainGraph) Links() int {
	n := 0
	for _, v := range g.next {
		if v != noLink {
			n++
		}
	}
	return n
}

// cutNext severs the link leaving i, on both ends.
func (g *ChainGraph) cutNext(i int) {
	if n := g.next[i]; n != noLink {
		g.prev[n] = noLink
		g.next[i] = noLink
	}
}

// cutPrev severs the link entering i, on both ends.
func (g *ChainGraph) cutPrev(i int) {
	if p := g.prev[i]; p != noLink {
		g.next[p] = noLink
		g.prev[i] = noLink
	}
}

// isolate severs both links of i.
func (g *ChainGraph) isolate(i int) {
	g.cutNext(i)
	g.cutPrev(i)
}
