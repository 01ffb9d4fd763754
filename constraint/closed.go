package constraint

import (
	"github.com/golang/geo/r2"
	"github.com/samber/lo"
)

// Closed is a closed-loop constraint: an ordered list of vertices where
// every vertex is potentially an ingress/egress point, unless narrowed by a
// Transition.
type Closed struct {
	coords []r2.Point
	params Params
}

// NewClosed builds a closed constraint from a vertex list. coords must NOT
// repeat the closing vertex (the loop is implied).
func NewClosed(coords []r2.Point, params ...Params) *Closed {
	cp := append([]r2.Point(nil), coords...)
	var p Params
	if len(params) > 0 {
		p = params[0].Clone()
	}
	return &Closed{coords: cp, params: p}
}

// CoordList returns the raw vertex list, open (no repeated closing vertex).
func (c *Closed) CoordList() []r2.Point { return append([]r2.Point(nil), c.coords...) }

// Params returns a pointer to this constraint's mutable parameter record.
func (c *Closed) Params() *Params { return &c.params }

// Closed reports true: this is a closed-loop constraint.
func (c *Closed) Closed() bool { return true }

// IngressPoints returns Transition if set, otherwise every vertex.
func (c *Closed) IngressPoints() []r2.Point {
	if c.params.Transition != nil {
		return append([]r2.Point(nil), c.params.Transition...)
	}
	return c.CoordList()
}

// EgressPoints mirrors IngressPoints: closed constraints do not distinguish
// an egress set from the ingress set, only a traversal direction.
func (c *Closed) EgressPoints() []r2.Point { return c.IngressPoints() }

// SelectIngress narrows Transition to the single entry at p's position in
// the current ingress-point set. Matching is positional (first value
// match), which keeps the narrowing well-defined when the same point value
// appears more than once in Transition.
func (c *Closed) SelectIngress(p r2.Point) error {
	ingress := c.IngressPoints()
	j := lo.IndexOf(ingress, p)
	if j < 0 {
		return ErrNotIngressPoint
	}
	c.params.Transition = []r2.Point{ingress[j]}
	return nil
}

// Coordinates selects (or reuses) an ingress point, then returns the
// rotation of the vertex list starting there (forward, or reversed if
// Direction is set with Direction[0] == 1), followed by one synthetic final
// point: the ingress vertex shifted endpointOffset back along the unit
// vector from the prior traversal point, so the loop closes short of a full
// overlap with its own start.
func (c *Closed) Coordinates(ingress *r2.Point, endpointOffset float64) ([]r2.Point, error) {
	var ingressPoint r2.Point
	if ingress != nil {
		if err := c.SelectIngress(*ingress); err != nil {
			return nil, err
		}
		ingressPoint = *ingress
	} else {
		ingressPoint = c.IngressPoints()[0]
	}

	n := len(c.coords)
	t := lo.IndexOf(c.coords, ingressPoint)
	if t < 0 {
		return nil, ErrNotIngressPoint
	}

	step := 1
	if c.params.Direction != nil && c.params.Direction[0] != 0 {
		step = -1
	}

	rotation := make([]r2.Point, 0, n+1)
	for i := 0; i < n; i++ {
		idx := ((t+i*step)%n + n) % n
		rotation = append(rotation, c.coords[idx])
	}

	priorIdx := ((t-step)%n + n) % n
	finalSeg := c.coords[t].Sub(c.coords[priorIdx])
	if norm := finalSeg.Norm(); norm > 0 {
		finalSeg = finalSeg.Mul(1.0 / norm)
	}
	endpoint := c.coords[t].Sub(finalSeg.Mul(endpointOffset))

	return append(rotation, endpoint), nil
}
