package geom

import "math"

// Epsilon is the tolerance used when merging nearly coincident vertices.
const Epsilon = 1e-9

// Polygon is a closed ring of vertices; the last vertex connects back to the first.
type Polygon []Point

// SignedArea returns the shoelace area, positive for counter-clockwise winding.
func (p Polygon) SignedArea() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += p[i].Cross(p[(i+1)%n])
	}
	return 0.5 * sum
}

// Area returns the absolute polygon area.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Centroid returns the area-weighted centroid. Polygons without area fall
// back to the vertex mean so callers always get a usable point.
func (p Polygon) Centroid() Point {
	n := len(p)
	if n == 0 {
		return Point{}
	}
	a := p.SignedArea()
	if math.Abs(a) < Epsilon {
		var sum Point
		for _, v := range p {
			sum = sum.Add(v)
		}
		return sum.Scale(1 / float64(n))
	}
	var c Point
	for i := 0; i < n; i++ {
		cur, nxt := p[i], p[(i+1)%n]
		f := cur.Cross(nxt)
		c = c.Add(cur.Add(nxt).Scale(f))
	}
	return c.Scale(1 / (6 * a))
}

// Perimeter returns the length of the closed boundary.
func (p Polygon) Perimeter() float64 {
	n := len(p)
	total := 0.0
	for i := 0; i < n; i++ {
		total += p[i].Dist(p[(i+1)%n])
	}
	return total
}

// Boundary is an edge label for polygon sides that come from the clip
// rectangle rather than from a neighbouring site.
const Boundary = -1

// Cell is a convex polygon whose edges remember what produced them.
// Edges[i] labels the side running from Verts[i] to Verts[(i+1)%len].
type Cell struct {
	Verts Polygon
	Edges []int
}

// NewCell wraps a convex polygon, labelling every side as Boundary.
func NewCell(p Polygon) Cell {
	edges := make([]int, len(p))
	for i := range edges {
		edges[i] = Boundary
	}
	verts := make(Polygon, len(p))
	copy(verts, p)
	return Cell{Verts: verts, Edges: edges}
}

// Empty reports whether clipping has removed the whole cell.
func (c Cell) Empty() bool {
	return len(c.Verts) < 3
}

// ClipBisector keeps the part of the cell closer to site than to other.
// The new side created by the bisector is labelled with label.
func (c Cell) ClipBisector(site, other Point, label int) Cell {
	mid := site.Add(other).Scale(0.5)
	dir := other.Sub(site)
	return c.clip(func(p Point) float64 { return p.Sub(mid).Dot(dir) }, label)
}

// clip is one Sutherland–Hodgman pass against the half-plane side(p) <= 0.
func (c Cell) clip(side func(Point) float64, label int) Cell {
	n := len(c.Verts)
	if n == 0 {
		return c
	}
	outside := false
	for _, v := range c.Verts {
		if side(v) > 0 {
			outside = true
			break
		}
	}
	if !outside {
		return c
	}

	out := Cell{
		Verts: make(Polygon, 0, n+1),
		Edges: make([]int, 0, n+1),
	}
	for i := 0; i < n; i++ {
		cur, nxt := c.Verts[i], c.Verts[(i+1)%n]
		dc, dn := side(cur), side(nxt)
		switch {
		case dc <= 0 && dn <= 0:
			out.push(cur, c.Edges[i])
		case dc <= 0 && dn > 0:
			out.push(cur, c.Edges[i])
			out.push(cur.Lerp(nxt, dc/(dc-dn)), label)
		case dc > 0 && dn <= 0:
			out.push(cur.Lerp(nxt, dc/(dc-dn)), c.Edges[i])
		}
	}
	out.closeRing()
	if len(out.Verts) < 3 {
		return Cell{}
	}
	return out
}

// push appends a vertex, folding it into the previous one when they
// coincide. The surviving vertex takes the later edge label, since the
// zero-length side between them disappears.
func (c *Cell) push(p Point, edge int) {
	if k := len(c.Verts); k > 0 && c.Verts[k-1].DistSq(p) < Epsilon*Epsilon {
		c.Edges[k-1] = edge
		return
	}
	c.Verts = append(c.Verts, p)
	c.Edges = append(c.Edges, edge)
}

func (c *Cell) closeRing() {
	for len(c.Verts) > 1 {
		k := len(c.Verts) - 1
		if c.Verts[k].DistSq(c.Verts[0]) >= Epsilon*Epsilon {
			return
		}
		c.Verts = c.Verts[:k]
		c.Edges = c.Edges[:k]
	}
}

// Labels returns the distinct non-boundary edge labels in ring order.
func (c Cell) Labels() []int {
	var out []int
	seen := make(map[int]bool, len(c.Edges))
	for _, e := range c.Edges {
		if e == Boundary || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// MaxDist returns the largest distance from p to any vertex of the cell.
func (c Cell) MaxDist(p Point) float64 {
	best := 0.0
	for _, v := range c.Verts {
		if d := v.DistSq(p); d > best {
			best = d
		}
	}
	return math.Sqrt(best)
}
