// Package refinement annotates laid-out constraints with traversal
// directions and thrust policies, optionally informed by a flow field.
package refinement

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/coveragepath/constraint"
	"go.viam.com/coveragepath/heuristic"
)

// ErrMissingDirection is returned by refinements that require every input
// constraint to already carry a Direction.
var ErrMissingDirection = errors.New("refinement: constraint direction is unconstrained")

// DefaultThrust is the full (0,1) thrust-fraction range. Every refinement
// that assigns thrust leaves the first coordinate at this range so any
// thrust may be used to arrive at a constraint's ingress point.
var DefaultThrust = constraint.ThrustRange{Low: 0, High: 1}

// noThrust is the (0,0) "drift, apply nothing" thrust fraction.
var noThrust = constraint.ThrustRange{Low: 0, High: 0}

// Refinement mutates a constraint list's Params in place.
type Refinement interface {
	Refine(constraints []constraint.Constraint) error
}

// AlternatingDirections assigns directions that flip at every constraint,
// optionally anchored at whichever (constraint, endpoint) pair is closest to
// an area ingress point.
type AlternatingDirections struct {
	AreaIngressPoint *r2.Point
}

// Refine implements Refinement.
func (r AlternatingDirections) Refine(constraints []constraint.Constraint) error {
	if len(constraints) == 0 {
		return nil
	}

	startDir := [2]int{0, 1}
	startIdx := 0

	if r.AreaIngressPoint != nil {
		bestDist := math.Inf(1)
		var bestPoint r2.Point
		for i, c := range constraints {
			for _, p := range c.IngressPoints() {
				d := p.Sub(*r.AreaIngressPoint).Norm()
				if d < bestDist {
					bestDist = d
					bestPoint = p
					startIdx = i
				}
			}
		}
		if err := constraints[startIdx].SelectIngress(bestPoint); err != nil {
			return err
		}
		if d := constraints[startIdx].Params().Direction; d != nil {
			startDir = *d
		}
	}

	dir := startDir
	constraints[startIdx].Params().Direction = &[2]int{dir[0], dir[1]}
	for i := startIdx + 1; i < len(constraints); i++ {
		dir = [2]int{dir[1], dir[0]}
		constraints[i].Params().Direction = &[2]int{dir[0], dir[1]}
	}
	dir = startDir
	for i := startIdx - 1; i >= 0; i-- {
		dir = [2]int{dir[1], dir[0]}
		constraints[i].Params().Direction = &[2]int{dir[0], dir[1]}
	}
	return nil
}

// DownstreamDrift assigns a thrust profile that relies on the flow field to
// carry the vehicle when travel direction already follows the flow.
type DownstreamDrift struct {
	Flow heuristic.FlowSampler
}

// Refine implements Refinement. Every constraint must already carry a
// Direction; ErrMissingDirection aborts on the first that doesn't.
func (r DownstreamDrift) Refine(constraints []constraint.Constraint) error {
	for _, c := range constraints {
		if c.Params().Direction == nil {
			return ErrMissingDirection
		}

		oriented, err := c.Coordinates(nil, 0)
		if err != nil {
			return err
		}
		ingress, egress := oriented[0], oriented[len(oriented)-1]

		constraintDir := unit(egress.Sub(ingress))
		flowDir := unit(r.Flow.Sample(ingress))

		// Thrust is per emitted coordinate; closed loops emit one synthetic
		// closing point beyond their vertex list.
		size := len(oriented)
		thrust := make([]constraint.ThrustRange, 0, size)
		thrust = append(thrust, DefaultThrust)

		fill := DefaultThrust
		if constraintDir.Dot(flowDir) > 0 {
			fill = noThrust
		}
		for i := 1; i < size; i++ {
			thrust = append(thrust, fill)
		}
		c.Params().Thrust = thrust
	}
	return nil
}

// MaximizeFlowAlignment ranks constraints by an opposing-flow energy cost and
// sends the cheaper half against the flow (direction [0,1]) and the more
// costly half with it (direction [1,0]), so the vehicle spends more of its
// travel drifting rather than fighting the current.
type MaximizeFlowAlignment struct {
	Flow         heuristic.FlowSampler
	NominalSpeed float64
}

// Refine implements Refinement.
func (r MaximizeFlowAlignment) Refine(constraints []constraint.Constraint) error {
	speed := r.NominalSpeed
	if speed <= 0 {
		speed = 0.5
	}
	h := heuristic.OpposingFlowEnergy{Flow: r.Flow, NominalSpeed: speed}

	costs := make([]float64, len(constraints))
	idx := make([]int, len(constraints))
	for i, c := range constraints {
		coords := c.CoordList()
		var cost float64
		for j := 0; j+1 < len(coords); j++ {
			cost += h.Cost(coords[j], coords[j+1])
		}
		costs[i] = cost
		idx[i] = i
	}

	floats.Argsort(costs, idx)
	splitIndex := int(math.Ceil(float64(len(idx)) / 2))

	for _, i := range idx[splitIndex:] {
		c := constraints[i]
		c.Params().Direction = &[2]int{1, 0}
		c.Params().Thrust = driftThrust(emittedSize(c), noThrust)
	}
	for _, i := range idx[:splitIndex] {
		c := constraints[i]
		c.Params().Direction = &[2]int{0, 1}
		c.Params().Thrust = driftThrust(emittedSize(c), DefaultThrust)
	}
	return nil
}

// emittedSize is the coordinate count Coordinates will produce: closed loops
// emit one synthetic closing point beyond their vertex list.
func emittedSize(c constraint.Constraint) int {
	n := len(c.CoordList())
	if c.Closed() {
		n++
	}
	return n
}

func driftThrust(size int, fill constraint.ThrustRange) []constraint.ThrustRange {
	thrust := make([]constraint.ThrustRange, 0, size)
	thrust = append(thrust, DefaultThrust)
	for i := 1; i < size; i++ {
		thrust = append(thrust, fill)
	}
	return thrust
}

func unit(v r2.Point) r2.Point {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Mul(1 / n)
}
