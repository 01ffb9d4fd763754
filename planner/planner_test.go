package planner

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/coveragepath/geometry"
)

func square(side float64) geometry.Area {
	return geometry.NewSimpleArea([]r2.Point{
		{X: 0, Y: 0},
		{X: side, Y: 0},
		{X: side, Y: side},
		{X: 0, Y: side},
	})
}

func TestVerticalLawnmowerCoversSquareExactly(t *testing.T) {
	p := NewVertical(0.5, 0.5)
	area := square(10)

	result, err := p.Plan(area, nil)
	test.That(t, err, test.ShouldBeNil)

	// Ten transects of two points each, walked boustrophedon-style: ten
	// 9-unit legs plus nine 1-unit hops between them.
	test.That(t, len(result.Coords), test.ShouldEqual, 20)
	test.That(t, result.Coords[0].X, test.ShouldAlmostEqual, 0.5, 1e-9)
	test.That(t, result.Coords[0].Y, test.ShouldAlmostEqual, 0.5, 1e-9)
	test.That(t, result.Length(), test.ShouldAlmostEqual, 99.0, 1e-6)
}

func TestPlanCoveragePathAppendsEgress(t *testing.T) {
	p := NewVertical(0.5, 0.5)
	area := square(10)

	egress := r2.Point{X: 12, Y: 0}
	result, err := p.PlanCoveragePath(area, nil, &egress)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Coords[len(result.Coords)-1], test.ShouldResemble, egress)
}

func TestLawnmowerPlansNonEmptyPath(t *testing.T) {
	p := NewHorizontal(1, 0.5)
	area := square(20)

	result, err := p.Plan(area, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(result.Coords), test.ShouldBeGreaterThan, 0)
}

func TestDriftingLawnmowerPlansWithThrust(t *testing.T) {
	flow := geometry.ConstantFlowField{Vector: r2.Point{X: 0, Y: 1}}
	p := NewDriftingLawnmower(1, 0.5, r2.Point{X: 1, Y: 0}, flow)
	area := square(20)

	result, err := p.Plan(area, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(result.Thrust), test.ShouldBeGreaterThan, 0)
}

func TestEnergyEfficientCoveragePlans(t *testing.T) {
	flow := geometry.ConstantFlowField{Vector: r2.Point{X: 0, Y: 1}}
	p := NewEnergyEfficientCoverage(1, 0.5, r2.Point{X: 1, Y: 0}, flow)
	area := square(20)

	result, err := p.Plan(area, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(result.Coords), test.ShouldBeGreaterThan, 0)
}

func TestPerpendicularToRotatesSweep(t *testing.T) {
	p := NewPerpendicularTo(1, 0.5, r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0})
	area := square(20)

	result, err := p.Plan(area, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(result.Coords), test.ShouldBeGreaterThan, 0)
}
