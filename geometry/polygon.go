// Package geometry defines the Polygon/Area/FlowField contracts the
// coverage pipeline consumes, plus one concrete adapter for each so the
// pipeline can be exercised end-to-end without a production GIS stack.
//
// SimplePolygon implements miter-join buffering directly on top of
// github.com/golang/geo/r2 rather than binding a polygon-offset engine
// (GEOS, Clipper). It is correct for convex polygons and a best-effort
// approximation for concave ones; callers needing robust concave offsets
// should supply their own Polygon implementation.
package geometry

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

// ErrDegenerate indicates a buffer or intersection operation collapsed the
// polygon to nothing (an empty interior).
var ErrDegenerate = errors.New("geometry: operation produced an empty or degenerate polygon")

const epsilon = 1e-9

// Polygon is the minimal polygon contract the pipeline needs: bounds,
// exterior coordinates, inward/outward buffering with a miter join, and
// line intersection.
type Polygon interface {
	Bounds() (xMin, yMin, xMax, yMax float64)
	// Vertices returns the exterior vertex list, CCW, without a repeated
	// closing vertex.
	Vertices() []r2.Point
	// ExteriorCoords returns the closed ring: first point repeated as last.
	ExteriorCoords() []r2.Point
	// Buffer offsets every edge by distance along its outward normal
	// (positive grows the polygon, negative shrinks it) and re-intersects
	// adjacent offset edges with a miter join. Returns ErrDegenerate if the
	// result collapses.
	Buffer(distance float64) (Polygon, error)
	// Intersects reports whether line crosses or touches the polygon
	// boundary or interior.
	Intersects(line [2]r2.Point) bool
	// Intersection returns the points where line crosses the polygon
	// boundary, sorted along the line's direction.
	Intersection(line [2]r2.Point) ([]r2.Point, bool)
}

// SimplePolygon is a counter-clockwise-oriented simple polygon stored
// without a repeated closing vertex.
type SimplePolygon struct {
	vertices []r2.Point
}

// NewSimplePolygon builds a polygon from a vertex list. If the list repeats
// its closing vertex, the duplicate is dropped. The vertex winding is
// normalized to counter-clockwise.
func NewSimplePolygon(vertices []r2.Point) *SimplePolygon {
	v := append([]r2.Point(nil), vertices...)
	if len(v) > 1 && v[0] == v[len(v)-1] {
		v = v[:len(v)-1]
	}
	if signedArea(v) < 0 {
		v = reversePoints(v)
	}
	return &SimplePolygon{vertices: v}
}

func signedArea(v []r2.Point) float64 {
	n := len(v)
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += v[i].X*v[j].Y - v[j].X*v[i].Y
	}
	return area / 2
}

func reversePoints(v []r2.Point) []r2.Point {
	out := make([]r2.Point, len(v))
	for i, p := range v {
		out[len(v)-1-i] = p
	}
	return out
}

// Vertices returns the polygon's vertex list, CCW, no repeated closing
// vertex.
func (p *SimplePolygon) Vertices() []r2.Point { return append([]r2.Point(nil), p.vertices...) }

// Bounds returns the axis-aligned bounding rectangle.
func (p *SimplePolygon) Bounds() (xMin, yMin, xMax, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, v := range p.vertices {
		xMin = math.Min(xMin, v.X)
		yMin = math.Min(yMin, v.Y)
		xMax = math.Max(xMax, v.X)
		yMax = math.Max(yMax, v.Y)
	}
	return xMin, yMin, xMax, yMax
}

// ExteriorCoords returns the closed ring (first point repeated as last).
func (p *SimplePolygon) ExteriorCoords() []r2.Point {
	return append(p.Vertices(), p.vertices[0])
}

// InteriorAngle returns the interior angle, in degrees, at vertex index i.
func (p *SimplePolygon) InteriorAngle(i int) float64 {
	n := len(p.vertices)
	prev := p.vertices[(i-1+n)%n]
	cur := p.vertices[i]
	next := p.vertices[(i+1)%n]

	toPrev := prev.Sub(cur)
	toNext := next.Sub(cur)

	cosTheta := toPrev.Dot(toNext) / (toPrev.Norm() * toNext.Norm())
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	theta := math.Acos(cosTheta) * 180 / math.Pi

	// Acos gives the unsigned angle between the two edges; if the vertex is
	// reflex (interior angle > 180), the cross product of toPrev, toNext is
	// positive for a CCW polygon.
	if toPrev.Cross(toNext) > 0 {
		theta = 360 - theta
	}
	return theta
}

func rotateCW(v r2.Point) r2.Point { return r2.Point{X: v.Y, Y: -v.X} }

func unit(v r2.Point) r2.Point {
	n := v.Norm()
	if n < epsilon {
		return v
	}
	return v.Mul(1 / n)
}

// Buffer offsets every edge outward (distance > 0) or inward (distance < 0)
// by |distance| along its outward normal and recomputes vertices as the
// miter intersection of consecutive offset edges.
func (p *SimplePolygon) Buffer(distance float64) (Polygon, error) {
	n := len(p.vertices)
	if n < 3 {
		return nil, ErrDegenerate
	}

	// Offset line for edge i (v_i -> v_{i+1}): point + t*direction.
	type line struct {
		point, dir r2.Point
	}
	edges := make([]line, n)
	for i := 0; i < n; i++ {
		a, b := p.vertices[i], p.vertices[(i+1)%n]
		dir := unit(b.Sub(a))
		normal := rotateCW(dir)
		edges[i] = line{point: a.Add(normal.Mul(distance)), dir: dir}
	}

	newVerts := make([]r2.Point, n)
	for i := 0; i < n; i++ {
		prev := edges[(i-1+n)%n]
		cur := edges[i]
		pt, ok := intersectLines(prev.point, prev.dir, cur.point, cur.dir)
		if !ok {
			// Parallel edges (straight run): no miter needed, offset vertex
			// directly.
			normal := rotateCW(cur.dir)
			pt = p.vertices[i].Add(normal.Mul(distance))
		}
		newVerts[i] = pt
	}

	if signedArea(newVerts) <= epsilon {
		return nil, ErrDegenerate
	}

	// A shrink that overruns the polygon's width inverts the winding the
	// miter computation assumes; detect that by checking the offset
	// polygon's bounds didn't grow past the shrink direction.
	if distance < 0 {
		oxMin, oyMin, oxMax, oyMax := p.Bounds()
		nxMin, nyMin, nxMax, nyMax := (&SimplePolygon{vertices: newVerts}).Bounds()
		if nxMax-nxMin <= 0 || nyMax-nyMin <= 0 ||
			nxMin < oxMin-epsilon || nyMin < oyMin-epsilon ||
			nxMax > oxMax+epsilon || nyMax > oyMax+epsilon {
			return nil, ErrDegenerate
		}
	}

	return NewSimplePolygon(newVerts), nil
}

func intersectLines(p1, d1, p2, d2 r2.Point) (r2.Point, bool) {
	denom := d1.Cross(d2)
	if math.Abs(denom) < epsilon {
		return r2.Point{}, false
	}
	diff := p2.Sub(p1)
	t := diff.Cross(d2) / denom
	return p1.Add(d1.Mul(t)), true
}

// Intersects reports whether line crosses or touches the polygon boundary,
// or lies wholly inside the polygon.
func (p *SimplePolygon) Intersects(line [2]r2.Point) bool {
	if pts, ok := p.Intersection(line); ok && len(pts) > 0 {
		return true
	}
	// No boundary crossing: the segment is wholly inside or wholly outside,
	// so an even-odd ray cast from one endpoint decides it.
	inside := false
	q := line[0]
	n := len(p.vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.vertices[i], p.vertices[j]
		if (a.Y > q.Y) != (b.Y > q.Y) && q.X < (b.X-a.X)*(q.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Intersection returns every point where line crosses a polygon edge,
// sorted along the line's direction from line[0] to line[1]. Coincident
// points (within epsilon) are deduplicated.
func (p *SimplePolygon) Intersection(line [2]r2.Point) ([]r2.Point, bool) {
	n := len(p.vertices)
	dir := line[1].Sub(line[0])
	dirLen := dir.Norm()
	if dirLen < epsilon {
		return nil, false
	}

	var pts []r2.Point
	for i := 0; i < n; i++ {
		a, b := p.vertices[i], p.vertices[(i+1)%n]
		if pt, ok := segmentIntersection(line[0], line[1], a, b); ok {
			pts = append(pts, pt)
		}
	}
	if len(pts) == 0 {
		return nil, false
	}

	dedup := make([]r2.Point, 0, len(pts))
	for _, pt := range pts {
		dup := false
		for _, d := range dedup {
			if scalar.EqualWithinAbs(pt.X, d.X, epsilon) && scalar.EqualWithinAbs(pt.Y, d.Y, epsilon) {
				dup = true
				break
			}
		}
		if !dup {
			dedup = append(dedup, pt)
		}
	}

	sortAlong(dedup, line[0], dir)
	return dedup, true
}

func sortAlong(pts []r2.Point, origin, dir r2.Point) {
	keys := make([]float64, len(pts))
	for i, p := range pts {
		keys[i] = p.Sub(origin).Dot(dir)
	}
	for i := 1; i < len(pts); i++ {
		j := i
		for j > 0 && keys[j-1] > keys[j] {
			keys[j-1], keys[j] = keys[j], keys[j-1]
			pts[j-1], pts[j] = pts[j], pts[j-1]
			j--
		}
	}
}

// segmentIntersection returns the intersection of segments [a1,a2] and
// [b1,b2], if any, including touching endpoints.
func segmentIntersection(a1, a2, b1, b2 r2.Point) (r2.Point, bool) {
	d1 := a2.Sub(a1)
	d2 := b2.Sub(b1)
	denom := d1.Cross(d2)
	diff := b1.Sub(a1)

	if math.Abs(denom) < epsilon {
		return r2.Point{}, false
	}

	t := diff.Cross(d2) / denom
	u := diff.Cross(d1) / denom
	if t < -epsilon || t > 1+epsilon || u < -epsilon || u > 1+epsilon {
		return r2.Point{}, false
	}
	return a1.Add(d1.Mul(t)), true
}
