package constraint

import (
	"github.com/golang/geo/r2"
	"github.com/samber/lo"
)

// Open is an open constraint: an ordered polyline whose two ingress/egress
// endpoints are its first and last points (or its single point, if the
// coordinate list has length 1).
type Open struct {
	coords    []r2.Point
	endpoints [2]r2.Point
	params    Params
}

// NewOpen builds an open constraint from a coordinate list with no
// parameters constrained. coords must have at least one point.
func NewOpen(coords []r2.Point, params ...Params) *Open {
	cp := append([]r2.Point(nil), coords...)

	first, last := cp[0], cp[0]
	if len(cp) > 1 {
		last = cp[len(cp)-1]
	}

	var p Params
	if len(params) > 0 {
		p = params[0].Clone()
	}

	return &Open{coords: cp, endpoints: [2]r2.Point{first, last}, params: p}
}

// Size is the number of coordinates laid out on this constraint.
func (o *Open) Size() int { return len(o.coords) }

// Endpoints returns the two fixed endpoints of this constraint, regardless
// of any currently selected direction.
func (o *Open) Endpoints() [2]r2.Point { return o.endpoints }

// CoordList returns the raw, unoriented coordinate list.
func (o *Open) CoordList() []r2.Point { return append([]r2.Point(nil), o.coords...) }

// Params returns a pointer to this constraint's mutable parameter record.
func (o *Open) Params() *Params { return &o.params }

// Closed reports false: this is an open constraint.
func (o *Open) Closed() bool { return false }

// IngressPoints returns the single selected ingress endpoint if Direction is
// set, otherwise both endpoints.
func (o *Open) IngressPoints() []r2.Point {
	if o.params.Direction != nil {
		return []r2.Point{o.endpoints[o.params.Direction[0]]}
	}
	return []r2.Point{o.endpoints[0], o.endpoints[1]}
}

// EgressPoints returns the single selected egress endpoint if Direction is
// set, otherwise both endpoints.
func (o *Open) EgressPoints() []r2.Point {
	if o.params.Direction != nil {
		return []r2.Point{o.endpoints[o.params.Direction[1]]}
	}
	return []r2.Point{o.endpoints[0], o.endpoints[1]}
}

// SelectIngress implicitly constrains Direction to [i, 1-i] where i is the
// index of p among the current ingress points, if Direction is not already
// set. A repeat call with the already-selected point is a no-op.
func (o *Open) SelectIngress(p r2.Point) error {
	idx := lo.IndexOf(o.IngressPoints(), p)
	if idx < 0 {
		return ErrNotIngressPoint
	}
	if o.params.Direction == nil {
		endpointIdx := lo.IndexOf(o.endpoints[:], p)
		o.params.Direction = &[2]int{endpointIdx, (endpointIdx + 1) % 2}
	}
	return nil
}

// Coordinates returns the coordinate list oriented for traversal. If
// Direction is set and ingress disagrees with the selected endpoint, it
// fails with ErrDirectionViolation. endpointOffset is ignored for open
// constraints.
func (o *Open) Coordinates(ingress *r2.Point, _ float64) ([]r2.Point, error) {
	if o.params.Direction != nil {
		d := o.params.Direction
		if ingress != nil && *ingress != o.endpoints[d[0]] {
			return nil, ErrDirectionViolation
		}
		if d[0] == 0 {
			return o.CoordList(), nil
		}
		return lo.Reverse(o.CoordList()), nil
	}

	if ingress != nil {
		idx := lo.IndexOf(o.endpoints[:], *ingress)
		if idx < 0 {
			return nil, ErrNotIngressPoint
		}
		if idx == 0 {
			return o.CoordList(), nil
		}
		return lo.Reverse(o.CoordList()), nil
	}

	return o.CoordList(), nil
}
