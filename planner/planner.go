// Package planner wires a fixed (layout, refinements, sequencer, linker)
// tuple into a coverage planner, plus named presets for the common
// lawnmower, drifting-lawnmower, and energy-efficient configurations.
package planner

import (
	"github.com/golang/geo/r2"
	"go.viam.com/rdk/logging"

	"go.viam.com/coveragepath/geometry"
	"go.viam.com/coveragepath/heuristic"
	"go.viam.com/coveragepath/layout"
	"go.viam.com/coveragepath/link"
	"go.viam.com/coveragepath/path"
	"go.viam.com/coveragepath/refinement"
	"go.viam.com/coveragepath/sequence"
)

// Planner is a fixed (layout, refinements, sequencer, linker) tuple. Plan
// runs the four stages in order with no feedback between them.
type Planner struct {
	VehicleRadius, SensorRadius float64
	Layout                      layout.Generator
	Refinements                 []refinement.Refinement
	Sequencer                   sequence.Sequencer
	Linker                      link.Linker
	Offset                      float64
	Logger                      logging.Logger
}

// Plan runs layout, refinement, sequencing, and linking in order and
// returns the resulting path.
func (p Planner) Plan(area geometry.Area, ingress *r2.Point) (*path.ConstrainedPath, error) {
	logger := p.Logger
	if logger == nil {
		logger = logging.NewLogger("planner")
	}

	constraints, err := p.Layout.LayoutConstraints(area, logger)
	if err != nil {
		if len(constraints) == 0 {
			return nil, err
		}
		// Partial layouts are usable; skipped sweep positions only cost
		// coverage at the margin.
		logger.Warnw("planner: layout reported recoverable errors", "error", err)
	}
	if len(constraints) == 0 {
		logger.Warnw("planner: layout produced no constraints")
		return path.New(nil, nil), nil
	}

	for _, r := range p.Refinements {
		if err := r.Refine(constraints); err != nil {
			return nil, err
		}
	}

	chain, err := p.Sequencer.Sequence(constraints, ingress)
	if err != nil {
		return nil, err
	}

	return p.Linker.Link(chain, ingress, p.Offset, logger)
}

// PlanCoveragePath is Plan plus an optional area egress point appended to
// the end of the planned path.
func (p Planner) PlanCoveragePath(area geometry.Area, ingress, egress *r2.Point) (*path.ConstrainedPath, error) {
	result, err := p.Plan(area, ingress)
	if err != nil {
		return nil, err
	}
	if egress != nil {
		result.AddPoint(*egress)
	}
	return result, nil
}

// NewLawnmower builds the basic coverage planner: oriented boustrophedon
// layout, alternating-directions refinement, greedy sequencing, simple
// linking.
func NewLawnmower(sensorRadius, vehicleRadius float64, sweep r2.Point) Planner {
	return Planner{
		VehicleRadius: vehicleRadius,
		SensorRadius:  sensorRadius,
		Layout:        layout.OrientedBoustrophedon{VehicleRadius: vehicleRadius, SensorRadius: sensorRadius, Sweep: sweep},
		Refinements:   []refinement.Refinement{refinement.AlternatingDirections{}},
		Sequencer:     sequence.Greedy{Heuristic: heuristic.Euclidean{}},
		Linker:        link.Simple{},
	}
}

// NewDriftingLawnmower is NewLawnmower plus a downstream-drift thrust
// refinement driven by flow.
func NewDriftingLawnmower(sensorRadius, vehicleRadius float64, sweep r2.Point, flow geometry.FlowField) Planner {
	return Planner{
		VehicleRadius: vehicleRadius,
		SensorRadius:  sensorRadius,
		Layout:        layout.OrientedBoustrophedon{VehicleRadius: vehicleRadius, SensorRadius: sensorRadius, Sweep: sweep},
		Refinements: []refinement.Refinement{
			refinement.AlternatingDirections{},
			refinement.DownstreamDrift{Flow: flow},
		},
		Sequencer: sequence.Greedy{Heuristic: heuristic.Euclidean{}},
		Linker:    link.Simple{},
	}
}

// NewEnergyEfficientCoverage uses a maximize-flow-alignment refinement and
// sequences with the opposing-flow energy heuristic rather than plain
// distance.
func NewEnergyEfficientCoverage(sensorRadius, vehicleRadius float64, sweep r2.Point, flow geometry.FlowField) Planner {
	energy := heuristic.NewOpposingFlowEnergy(flow)
	return Planner{
		VehicleRadius: vehicleRadius,
		SensorRadius:  sensorRadius,
		Layout:        layout.OrientedBoustrophedon{VehicleRadius: vehicleRadius, SensorRadius: sensorRadius, Sweep: sweep},
		Refinements:   []refinement.Refinement{refinement.MaximizeFlowAlignment{Flow: flow}},
		Sequencer:     sequence.Greedy{Heuristic: energy},
		Linker:        link.Simple{},
	}
}

// NewHorizontal builds a lawnmower plan with horizontal transects: the sweep
// direction runs up the y axis, so each transect is drawn along x.
func NewHorizontal(sensorRadius, vehicleRadius float64) Planner {
	return NewLawnmower(sensorRadius, vehicleRadius, r2.Point{X: 0, Y: 1})
}

// NewVertical builds a lawnmower plan with vertical transects: the sweep
// direction runs along the x axis, so each transect is drawn along y.
func NewVertical(sensorRadius, vehicleRadius float64) Planner {
	return NewLawnmower(sensorRadius, vehicleRadius, r2.Point{X: 1, Y: 0})
}

// NewParallelTo builds a lawnmower plan whose transects are drawn parallel
// to the vector from a to b (typically a side of the area), sweeping
// perpendicular to it.
func NewParallelTo(sensorRadius, vehicleRadius float64, a, b r2.Point) Planner {
	d := lineDirection(a, b)
	return NewLawnmower(sensorRadius, vehicleRadius, r2.Point{X: -d.Y, Y: d.X})
}

// NewPerpendicularTo builds a lawnmower plan whose transects are drawn
// perpendicular to the vector from a to b, sweeping along it.
func NewPerpendicularTo(sensorRadius, vehicleRadius float64, a, b r2.Point) Planner {
	return NewLawnmower(sensorRadius, vehicleRadius, lineDirection(a, b))
}

func lineDirection(a, b r2.Point) r2.Point {
	v := b.Sub(a)
	n := v.Norm()
	if n == 0 {
		return r2.Point{X: 1, Y: 0}
	}
	return v.Mul(1 / n)
}
