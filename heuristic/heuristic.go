// Package heuristic provides the move-cost contract sequencers and
// refinements score candidates with, plus two concrete heuristics:
// Euclidean distance and an opposing-flow energy cost.
package heuristic

import (
	"github.com/golang/geo/r2"
)

// Heuristic scores the cost of moving from p to q.
type Heuristic interface {
	Cost(p, q r2.Point) float64
}

// Euclidean is the plain straight-line-distance heuristic.
type Euclidean struct{}

// Cost returns the Euclidean distance between p and q.
func (Euclidean) Cost(p, q r2.Point) float64 { return q.Sub(p).Norm() }

// SpeedAwareHeuristic additionally scores a move given a nominal travel
// speed.
type SpeedAwareHeuristic interface {
	Heuristic
	CostAtSpeed(p, q r2.Point, speed float64) float64
}

// OpposingFlowEnergy costs a move by the component of a flow field opposing
// travel: moving against the current costs more, moving with it costs less.
type OpposingFlowEnergy struct {
	Flow         FlowSampler
	NominalSpeed float64
}

// FlowSampler is the minimal flow-field contract this heuristic needs
// (satisfied by geometry.FlowField).
type FlowSampler interface {
	Sample(p r2.Point) r2.Point
}

// NewOpposingFlowEnergy builds an OpposingFlowEnergy heuristic with the
// default nominal speed of 0.5 m/s.
func NewOpposingFlowEnergy(flow FlowSampler) OpposingFlowEnergy {
	return OpposingFlowEnergy{Flow: flow, NominalSpeed: 0.5}
}

// Cost scores the move p->q at the heuristic's nominal speed.
func (h OpposingFlowEnergy) Cost(p, q r2.Point) float64 {
	return h.CostAtSpeed(p, q, h.NominalSpeed)
}

// CostAtSpeed returns the energy cost of traveling from p to q at speed,
// against a flow sampled at the segment midpoint: travel direction dotted
// against flow direction, scaled so opposing flow (negative dot) costs
// more than following flow (positive dot). The vehicle is assumed to need
// thrust proportional to (speed - flowComponentAlongTravel), floored at a
// small fraction of nominal speed so aligned segments are never free.
func (h OpposingFlowEnergy) CostAtSpeed(p, q r2.Point, speed float64) float64 {
	segment := q.Sub(p)
	dist := segment.Norm()
	if dist == 0 {
		return 0
	}
	travelDir := segment.Mul(1 / dist)

	mid := p.Add(q).Mul(0.5)
	flow := h.Flow.Sample(mid)

	flowAlongTravel := flow.Dot(travelDir)
	requiredThrust := speed - flowAlongTravel
	if requiredThrust < 0.05*speed {
		requiredThrust = 0.05 * speed
	}
	return requiredThrust * dist
}
