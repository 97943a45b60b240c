package geom

import "math"

// Grid buckets points into square cells so neighbourhood queries only
// visit nearby points. Iteration order is deterministic: rings outward,
// cells row-major within a ring, points in insertion order within a cell.
type Grid struct {
	bounds  Rect
	cell    float64
	cols    int
	rows    int
	buckets [][]int
	points  []Point
}

// NewGrid covers bounds with square cells of the given side length.
func NewGrid(bounds Rect, cell float64) *Grid {
	if cell <= 0 {
		cell = 1
	}
	cols := int(math.Ceil(bounds.Dx()/cell)) + 1
	rows := int(math.Ceil(bounds.Dy()/cell)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Grid{
		bounds:  bounds,
		cell:    cell,
		cols:    cols,
		rows:    rows,
		buckets: make([][]int, cols*rows),
	}
}

// CellSize returns the side length of one bucket.
func (g *Grid) CellSize() float64 { return g.cell }

// Len returns the number of inserted points.
func (g *Grid) Len() int { return len(g.points) }

// Point returns the i-th inserted point.
func (g *Grid) Point(i int) Point { return g.points[i] }

// Insert adds p and returns its index.
func (g *Grid) Insert(p Point) int {
	idx := len(g.points)
	g.points = append(g.points, p)
	cx, cy := g.cellOf(p)
	b := cy*g.cols + cx
	g.buckets[b] = append(g.buckets[b], idx)
	return idx
}

func (g *Grid) cellOf(p Point) (int, int) {
	cx := int(math.Floor((p.X - g.bounds.Min.X) / g.cell))
	cy := int(math.Floor((p.Y - g.bounds.Min.Y) / g.cell))
	return clampInt(cx, 0, g.cols-1), clampInt(cy, 0, g.rows-1)
}

// MaxRing is the largest ring index that can still contain points.
func (g *Grid) MaxRing() int {
	if g.cols > g.rows {
		return g.cols
	}
	return g.rows
}

// Ring calls fn for every point in the cells at Chebyshev distance r from
// the cell containing p. Points in ring r+1 and beyond are at least
// r*CellSize() away from p.
func (g *Grid) Ring(p Point, r int, fn func(idx int)) {
	cx, cy := g.cellOf(p)
	for y := cy - r; y <= cy+r; y++ {
		if y < 0 || y >= g.rows {
			continue
		}
		for x := cx - r; x <= cx+r; x++ {
			if x < 0 || x >= g.cols {
				continue
			}
			if r > 0 && y != cy-r && y != cy+r && x != cx-r && x != cx+r {
				continue
			}
			for _, idx := range g.buckets[y*g.cols+x] {
				fn(idx)
			}
		}
	}
}

// AnyWithin reports whether some inserted point lies strictly closer than
// radius to p.
func (g *Grid) AnyWithin(p Point, radius float64) bool {
	rings := int(math.Ceil(radius/g.cell)) + 1
	r2 := radius * radius
	found := false
	for r := 0; r <= rings && !found; r++ {
		g.Ring(p, r, func(idx int) {
			if !found && g.points[idx].DistSq(p) < r2 {
				found = true
			}
		})
	}
	return found
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
