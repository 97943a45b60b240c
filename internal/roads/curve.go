package roads

import (
	"math"
	"sort"

	"github.com/talgya/sectormap/internal/geom"
)

// samplesPerSegment sets the resolution of the arc-length table.
const samplesPerSegment = 16

// Curve is a uniform cubic B-spline. The first and last points are
// repeated three times so the curve starts and ends exactly on them.
// It is parameterised by t in [0, Segments()].
type Curve struct {
	controls []geom.Point
	table    []arcSample
}

// arcSample maps a curve parameter to the arc length travelled so far.
type arcSample struct {
	t float64
	s float64
}

// NewCurve fits a curve through points, which must be in travel order.
func NewCurve(points []geom.Point) *Curve {
	c := &Curve{}
	if len(points) == 0 {
		return c
	}
	first, last := points[0], points[len(points)-1]
	c.controls = make([]geom.Point, 0, len(points)+4)
	c.controls = append(c.controls, first, first)
	c.controls = append(c.controls, points...)
	c.controls = append(c.controls, last, last)

	segs := c.Segments()
	c.table = make([]arcSample, 0, segs*samplesPerSegment+1)
	c.table = append(c.table, arcSample{})
	prev := c.Position(0)
	total := 0.0
	for i := 1; i <= segs*samplesPerSegment; i++ {
		t := float64(i) / samplesPerSegment
		p := c.Position(t)
		total += prev.Dist(p)
		c.table = append(c.table, arcSample{t: t, s: total})
		prev = p
	}
	return c
}

// Segments returns the number of cubic pieces; zero for a single point.
func (c *Curve) Segments() int {
	if len(c.controls) < 4 {
		return 0
	}
	return len(c.controls) - 3
}

// Position evaluates the curve at parameter t, clamped to [0, Segments()].
func (c *Curve) Position(t float64) geom.Point {
	if len(c.controls) == 0 {
		return geom.Point{}
	}
	segs := c.Segments()
	if segs == 0 {
		return c.controls[0]
	}
	t = math.Max(0, math.Min(float64(segs), t))
	i := int(math.Floor(t))
	if i >= segs {
		i = segs - 1
	}
	u := t - float64(i)
	u2 := u * u
	u3 := u2 * u

	b0 := (1 - u) * (1 - u) * (1 - u) / 6
	b1 := (3*u3 - 6*u2 + 4) / 6
	b2 := (-3*u3 + 3*u2 + 3*u + 1) / 6
	b3 := u3 / 6

	p0, p1, p2, p3 := c.controls[i], c.controls[i+1], c.controls[i+2], c.controls[i+3]
	return geom.Point{
		X: b0*p0.X + b1*p1.X + b2*p2.X + b3*p3.X,
		Y: b0*p0.Y + b1*p1.Y + b2*p2.Y + b3*p3.Y,
	}
}

// Start returns the first point of the curve.
func (c *Curve) Start() geom.Point { return c.Position(0) }

// End returns the last point of the curve.
func (c *Curve) End() geom.Point { return c.Position(float64(c.Segments())) }

// Length returns the arc length of the curve.
func (c *Curve) Length() float64 {
	if len(c.table) == 0 {
		return 0
	}
	return c.table[len(c.table)-1].s
}

// Sample returns the point reached after travelling distance along the
// curve from its start, clamped to the ends. Wagons and other movers use
// this to advance at constant speed.
func (c *Curve) Sample(distance float64) geom.Point {
	if len(c.table) < 2 || distance <= 0 {
		return c.Start()
	}
	if distance >= c.Length() {
		return c.End()
	}
	k := sort.Search(len(c.table), func(i int) bool { return c.table[i].s >= distance })
	lo, hi := c.table[k-1], c.table[k]
	t := hi.t
	if span := hi.s - lo.s; span > 0 {
		t = lo.t + (hi.t-lo.t)*(distance-lo.s)/span
	}
	return c.Position(t)
}

// Points returns a polyline approximation with perSegment points per
// cubic piece plus the end point, for renderers.
func (c *Curve) Points(perSegment int) []geom.Point {
	if len(c.controls) == 0 {
		return nil
	}
	segs := c.Segments()
	if segs == 0 {
		return []geom.Point{c.controls[0]}
	}
	if perSegment < 1 {
		perSegment = 1
	}
	out := make([]geom.Point, 0, segs*perSegment+1)
	for i := 0; i <= segs*perSegment; i++ {
		out = append(out, c.Position(float64(i)/float64(perSegment)))
	}
	return out
}
