// Package constraint defines the shared geometric-constraint data model used
// by the coverage-planning pipeline: an open segment or a closed loop,
// carrying a fixed set of optional parameters (direction, transition,
// thrust) rather than an open attribute bag.
package constraint

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// ErrNotIngressPoint is returned by SelectIngress when the requested point
// is not a member of the constraint's current ingress-point set.
var ErrNotIngressPoint = errors.New("point is not a valid ingress point for this constraint")

// ErrDirectionViolation is returned by Coordinates when the requested
// ingress point contradicts an already-selected direction.
var ErrDirectionViolation = errors.New("requested ingress point violates the constraint's selected direction")

// ThrustRange is an admissible propulsion-fraction range [Low, High] for a
// single waypoint; a Thrust list holds one per emitted coordinate.
type ThrustRange struct {
	Low, High float64
}

// Params is the fixed parameter record every Constraint carries. The
// parameter set is closed: adding a new parameter requires a code change
// here, not a runtime registration.
type Params struct {
	// Direction, if non-nil, is an ordered pair [a,b] with {a,b} == {0,1},
	// a != b: a indexes the ingress endpoint, b the egress endpoint.
	Direction *[2]int
	// Transition, for closed constraints, is the current list of allowed
	// ingress vertices (a subset of the loop's coordinate list).
	Transition []r2.Point
	// Thrust is a per-waypoint admissible thrust-fraction range.
	Thrust []ThrustRange
}

// Clone returns a deep copy of p so mutating the result never aliases p.
func (p Params) Clone() Params {
	out := Params{}
	if p.Direction != nil {
		d := *p.Direction
		out.Direction = &d
	}
	if p.Transition != nil {
		out.Transition = append([]r2.Point(nil), p.Transition...)
	}
	if p.Thrust != nil {
		out.Thrust = append([]ThrustRange(nil), p.Thrust...)
	}
	return out
}

// Constraint is a geometric primitive — an open polyline or a closed loop —
// together with the annotations fixing how a vehicle must traverse it.
type Constraint interface {
	// SelectIngress fixes p as the ingress point for this constraint. Open
	// constraints: installs Direction if unset. Closed constraints:
	// installs or narrows Transition. Returns ErrNotIngressPoint if p is
	// not currently a valid ingress point.
	SelectIngress(p r2.Point) error

	// Coordinates returns the coordinate list for this constraint oriented
	// for traversal starting at ingress (nil means "use whatever ingress is
	// currently selected, or the default"). endpointOffset is honored only
	// by closed constraints.
	Coordinates(ingress *r2.Point, endpointOffset float64) ([]r2.Point, error)

	// IngressPoints is the current set of valid ingress points.
	IngressPoints() []r2.Point

	// EgressPoints is the current set of valid egress points.
	EgressPoints() []r2.Point

	// CoordList is the raw, unoriented coordinate list as laid out.
	CoordList() []r2.Point

	// Params returns a pointer to this constraint's mutable parameter
	// record. Refinements and sequencers mutate through this pointer.
	Params() *Params

	// Closed reports whether this is a closed-loop constraint.
	Closed() bool
}
