// Package geom provides the planar geometry used by map generation:
// points, polygons, half-plane clipping and a bucketed spatial index.
package geom

import "math"

// Point is a position on the map plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Lerp interpolates linearly from p (t=0) to q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// DistSq returns the squared Euclidean distance, for comparisons that
// don't need the root.
func (p Point) DistSq(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Rect is an axis-aligned rectangle [Min.X, Max.X] × [Min.Y, Max.Y].
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// R builds a rectangle from its corner coordinates.
func R(x0, y0, x1, y1 float64) Rect {
	return Rect{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Area of the rectangle; zero or negative for degenerate rectangles.
func (r Rect) Area() float64 { return r.Dx() * r.Dy() }

// Empty reports whether the rectangle has no interior.
func (r Rect) Empty() bool { return r.Dx() <= 0 || r.Dy() <= 0 }

// Inset shrinks the rectangle by m on every side (grows it for m < 0).
func (r Rect) Inset(m float64) Rect {
	return Rect{Min: Point{r.Min.X + m, r.Min.Y + m}, Max: Point{r.Max.X - m, r.Max.Y - m}}
}

// StrictlyContains reports whether p lies in the open interior of r.
func (r Rect) StrictlyContains(p Point) bool {
	return p.X > r.Min.X && p.X < r.Max.X && p.Y > r.Min.Y && p.Y < r.Max.Y
}

// Polygon returns the rectangle's corners in counter-clockwise order.
func (r Rect) Polygon() Polygon {
	return Polygon{
		{r.Min.X, r.Min.Y},
		{r.Max.X, r.Min.Y},
		{r.Max.X, r.Max.Y},
		{r.Min.X, r.Max.Y},
	}
}
