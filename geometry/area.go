package geometry

import "github.com/golang/geo/r2"

// Area is the pipeline's input region: a polygon plus per-vertex interior
// angles and a convenience inward offset.
type Area interface {
	Bounds() (xMin, yMin, xMax, yMax float64)
	Vertices() []r2.Point
	// InteriorAngles maps each vertex to its interior angle in degrees.
	InteriorAngles() map[r2.Point]float64
	Polygon() Polygon
	// OffsetDomain buffers the area's polygon inward by d (d > 0 shrinks it,
	// d < 0 grows it outward by |d|).
	OffsetDomain(d float64) (Polygon, error)
}

// SimpleArea is the concrete Area adapter backed by a SimplePolygon.
type SimpleArea struct {
	polygon *SimplePolygon
}

// NewSimpleArea builds an Area from an exterior vertex list (no repeated
// closing vertex required).
func NewSimpleArea(vertices []r2.Point) *SimpleArea {
	return &SimpleArea{polygon: NewSimplePolygon(vertices)}
}

// Bounds returns the polygon's axis-aligned bounding rectangle.
func (a *SimpleArea) Bounds() (xMin, yMin, xMax, yMax float64) { return a.polygon.Bounds() }

// Vertices returns the ordered exterior vertex list.
func (a *SimpleArea) Vertices() []r2.Point { return a.polygon.Vertices() }

// InteriorAngles maps each vertex to its interior angle in degrees.
func (a *SimpleArea) InteriorAngles() map[r2.Point]float64 {
	verts := a.polygon.Vertices()
	out := make(map[r2.Point]float64, len(verts))
	for i, v := range verts {
		out[v] = a.polygon.InteriorAngle(i)
	}
	return out
}

// Polygon returns the area's polygon handle.
func (a *SimpleArea) Polygon() Polygon { return a.polygon }

// OffsetDomain buffers the area's polygon inward by d (d > 0 shrinks).
func (a *SimpleArea) OffsetDomain(d float64) (Polygon, error) {
	return a.polygon.Buffer(-d)
}

// MinInteriorAngle returns the minimum interior angle, in degrees, over all
// vertices of a. Layouts use it to size the boundary offset so coverage
// holds at the sharpest corner.
func MinInteriorAngle(a Area) float64 {
	min := 360.0
	for _, angle := range a.InteriorAngles() {
		if angle < min {
			min = angle
		}
	}
	return min
}
