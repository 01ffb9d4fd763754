// Package path provides the ConstrainedPath container linkers produce:
// coordinates, per-coordinate thrust ranges, an identifier, and a GeoJSON
// export.
package path

import (
	"encoding/json"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"

	"go.viam.com/coveragepath/constraint"
)

// ConstrainedPath is the final spliced traversal a linker produces: an
// ordered coordinate list plus a per-coordinate thrust range (when the
// upstream refinements populated one).
type ConstrainedPath struct {
	ID     uuid.UUID
	Coords []r2.Point
	Thrust []constraint.ThrustRange
}

// New builds a ConstrainedPath with a fresh identifier.
func New(coords []r2.Point, thrust []constraint.ThrustRange) *ConstrainedPath {
	return &ConstrainedPath{
		ID:     uuid.New(),
		Coords: append([]r2.Point(nil), coords...),
		Thrust: append([]constraint.ThrustRange(nil), thrust...),
	}
}

// Length returns the total Euclidean length of the path's segments.
func (p *ConstrainedPath) Length() float64 {
	var total float64
	for i := 0; i+1 < len(p.Coords); i++ {
		total += p.Coords[i+1].Sub(p.Coords[i]).Norm()
	}
	return total
}

// AddPoint appends p to the coordinate list and a matching zero-value
// thrust range, if thrust ranges are being tracked.
func (p *ConstrainedPath) AddPoint(pt r2.Point) {
	p.Coords = append(p.Coords, pt)
	if len(p.Thrust) > 0 {
		p.Thrust = append(p.Thrust, constraint.ThrustRange{})
	}
}

// Transform returns a new ConstrainedPath with f applied to every
// coordinate; thrust ranges are carried over unchanged.
func (p *ConstrainedPath) Transform(f func(r2.Point) r2.Point) *ConstrainedPath {
	out := New(nil, p.Thrust)
	out.Coords = make([]r2.Point, len(p.Coords))
	for i, c := range p.Coords {
		out.Coords[i] = f(c)
	}
	return out
}

type geoJSONGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type geoJSONFeature struct {
	Type       string          `json:"type"`
	Geometry   geoJSONGeometry `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// Serialize emits the path as a GeoJSON LineString Feature, coordinates in
// (x, y) order and thrust ranges carried as feature properties.
func (p *ConstrainedPath) Serialize() ([]byte, error) {
	coords := make([][]float64, len(p.Coords))
	for i, c := range p.Coords {
		coords[i] = []float64{c.X, c.Y}
	}

	props := map[string]any{"id": p.ID.String()}
	if len(p.Thrust) > 0 {
		props["thrust"] = p.Thrust
	}

	feature := geoJSONFeature{
		Type:       "Feature",
		Geometry:   geoJSONGeometry{Type: "LineString", Coordinates: coords},
		Properties: props,
	}
	return json.Marshal(feature)
}
