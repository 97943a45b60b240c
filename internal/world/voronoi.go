package world

import (
	"math"
	"sort"

	"github.com/talgya/sectormap/internal/geom"
)

// voronoiCell is one clipped cell of a diagram, tagged with the index of
// the site that generated it.
type voronoiCell struct {
	site  int
	point geom.Point
	cell  geom.Cell
}

// diagram is a Voronoi diagram clipped to a rectangle. Cells whose site
// lies outside the rectangle may vanish entirely and are not kept.
type diagram struct {
	cells []voronoiCell
}

// buildDiagram computes the Voronoi cell of every site by clipping the
// bounds rectangle against the bisectors of nearby sites. A bisector with
// a site farther than twice the current cell radius cannot cut the cell,
// so the ring scan stops there.
func buildDiagram(bounds geom.Rect, sites []geom.Point) diagram {
	index := geom.NewGrid(siteBounds(bounds, sites), gridCellSize(bounds, len(sites)))
	for _, p := range sites {
		index.Insert(p)
	}

	var d diagram
	for i, site := range sites {
		cell := geom.NewCell(bounds.Polygon())
		for r := 0; r <= index.MaxRing(); r++ {
			if cell.Empty() {
				break
			}
			if r > 1 && float64(r-1)*index.CellSize() >= 2*cell.MaxDist(site) {
				break
			}
			index.Ring(site, r, func(j int) {
				if j == i || cell.Empty() {
					return
				}
				other := index.Point(j)
				if other == site {
					return
				}
				cell = cell.ClipBisector(site, other, j)
			})
		}
		if cell.Empty() || cell.Verts.Area() < geom.Epsilon {
			continue
		}
		d.cells = append(d.cells, voronoiCell{site: i, point: site, cell: cell})
	}
	return d
}

// centroids returns the area-weighted centroid of each kept cell, in cell
// order. These are the sites of the next Lloyd pass.
func (d diagram) centroids() []geom.Point {
	out := make([]geom.Point, len(d.cells))
	for i, c := range d.cells {
		out[i] = c.cell.Verts.Centroid()
	}
	return out
}

// adjacency returns, for each kept cell, the indexes of kept cells it
// shares an edge with. The relation is made symmetric: if either side
// saw the shared edge, both record it.
func (d diagram) adjacency() [][]int {
	bySite := make(map[int]int, len(d.cells))
	for i, c := range d.cells {
		bySite[c.site] = i
	}

	sets := make([]map[int]bool, len(d.cells))
	for i := range sets {
		sets[i] = make(map[int]bool)
	}
	for i, c := range d.cells {
		for _, label := range c.cell.Labels() {
			j, ok := bySite[label]
			if !ok || j == i {
				continue
			}
			sets[i][j] = true
			sets[j][i] = true
		}
	}

	out := make([][]int, len(d.cells))
	for i, set := range sets {
		adj := make([]int, 0, len(set))
		for j := range set {
			adj = append(adj, j)
		}
		sort.Ints(adj)
		out[i] = adj
	}
	return out
}

// siteBounds is the smallest rectangle holding both bounds and every site.
func siteBounds(bounds geom.Rect, sites []geom.Point) geom.Rect {
	r := bounds
	for _, p := range sites {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// gridCellSize aims for about two sites per bucket.
func gridCellSize(bounds geom.Rect, n int) float64 {
	if n < 1 {
		n = 1
	}
	size := math.Sqrt(2 * bounds.Area() / float64(n))
	if size <= 0 || math.IsNaN(size) {
		return 1
	}
	return size
}
