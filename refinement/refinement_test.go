package refinement

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"go.viam.com/coveragepath/constraint"
	"go.viam.com/coveragepath/geometry"
)

func openLine(x float64) *constraint.Open {
	return constraint.NewOpen([]r2.Point{{X: x, Y: 0}, {X: x, Y: 10}})
}

func TestAlternatingDirectionsFlips(t *testing.T) {
	constraints := []constraint.Constraint{openLine(0), openLine(1), openLine(2)}
	r := AlternatingDirections{}
	test.That(t, r.Refine(constraints), test.ShouldBeNil)

	test.That(t, *constraints[0].Params().Direction, test.ShouldResemble, [2]int{0, 1})
	test.That(t, *constraints[1].Params().Direction, test.ShouldResemble, [2]int{1, 0})
	test.That(t, *constraints[2].Params().Direction, test.ShouldResemble, [2]int{0, 1})
}

func TestAlternatingDirectionsIdempotentOnRepeat(t *testing.T) {
	c1 := []constraint.Constraint{openLine(0), openLine(1)}
	c2 := []constraint.Constraint{openLine(0), openLine(1)}
	r := AlternatingDirections{}
	test.That(t, r.Refine(c1), test.ShouldBeNil)
	test.That(t, r.Refine(c1), test.ShouldBeNil)
	test.That(t, r.Refine(c2), test.ShouldBeNil)

	for i := range c1 {
		test.That(t, *c1[i].Params().Direction, test.ShouldResemble, *c2[i].Params().Direction)
	}
}

func TestDownstreamDriftRequiresDirection(t *testing.T) {
	constraints := []constraint.Constraint{openLine(0)}
	r := DownstreamDrift{Flow: geometry.ConstantFlowField{Vector: r2.Point{X: 0, Y: 1}}}
	err := r.Refine(constraints)
	test.That(t, err, test.ShouldEqual, ErrMissingDirection)
}

func TestDownstreamDriftAlignedFlowDrifts(t *testing.T) {
	c := openLine(0)
	c.Params().Direction = &[2]int{0, 1}
	constraints := []constraint.Constraint{c}

	r := DownstreamDrift{Flow: geometry.ConstantFlowField{Vector: r2.Point{X: 0, Y: 1}}}
	test.That(t, r.Refine(constraints), test.ShouldBeNil)

	thrust := c.Params().Thrust
	test.That(t, len(thrust), test.ShouldEqual, 2)
	test.That(t, thrust[0], test.ShouldResemble, DefaultThrust)
	test.That(t, thrust[1], test.ShouldResemble, noThrust)
}

func TestDownstreamDriftAgainstFlowKeepsFullThrust(t *testing.T) {
	c := constraint.NewOpen([]r2.Point{{X: 0, Y: 0}, {X: 0, Y: 5}, {X: 0, Y: 10}})
	c.Params().Direction = &[2]int{0, 1}
	constraints := []constraint.Constraint{c}

	r := DownstreamDrift{Flow: geometry.ConstantFlowField{Vector: r2.Point{X: 0, Y: -1}}}
	test.That(t, r.Refine(constraints), test.ShouldBeNil)

	thrust := c.Params().Thrust
	test.That(t, len(thrust), test.ShouldEqual, 3)
	for _, tr := range thrust {
		test.That(t, tr, test.ShouldResemble, DefaultThrust)
	}
}

func TestDownstreamDriftClosedLoopThrustMatchesEmittedCoords(t *testing.T) {
	c := constraint.NewClosed([]r2.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}})
	c.Params().Direction = &[2]int{0, 1}
	constraints := []constraint.Constraint{c}

	r := DownstreamDrift{Flow: geometry.ConstantFlowField{Vector: r2.Point{X: 1, Y: 0}}}
	test.That(t, r.Refine(constraints), test.ShouldBeNil)

	coords, err := c.Coordinates(nil, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(c.Params().Thrust), test.ShouldEqual, len(coords))
}

func TestMaximizeFlowAlignmentSplitsByCost(t *testing.T) {
	constraints := []constraint.Constraint{openLine(0), openLine(1), openLine(2), openLine(3)}
	r := MaximizeFlowAlignment{Flow: geometry.ConstantFlowField{Vector: r2.Point{X: 0, Y: 1}}}
	test.That(t, r.Refine(constraints), test.ShouldBeNil)

	for _, c := range constraints {
		test.That(t, c.Params().Direction, test.ShouldNotBeNil)
		test.That(t, len(c.Params().Thrust), test.ShouldEqual, 2)
	}
}
