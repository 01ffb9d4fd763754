package constraint

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestOpenCoordinatesUnoriented(t *testing.T) {
	o := NewOpen([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}})
	coords, err := o.Coordinates(nil, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, coords[0], test.ShouldResemble, r2.Point{X: 0, Y: 0})
	test.That(t, coords[len(coords)-1], test.ShouldResemble, r2.Point{X: 2, Y: 0})
}

func TestOpenSelectIngressSetsDirection(t *testing.T) {
	o := NewOpen([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}})
	err := o.SelectIngress(r2.Point{X: 1, Y: 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, *o.Params().Direction, test.ShouldResemble, [2]int{1, 0})

	coords, err := o.Coordinates(nil, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, coords[0], test.ShouldResemble, r2.Point{X: 1, Y: 0})
	test.That(t, coords[len(coords)-1], test.ShouldResemble, r2.Point{X: 0, Y: 0})
}

func TestOpenSelectIngressIdempotent(t *testing.T) {
	o := NewOpen([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}})
	test.That(t, o.SelectIngress(r2.Point{X: 0, Y: 0}), test.ShouldBeNil)
	dir1 := *o.Params().Direction
	test.That(t, o.SelectIngress(r2.Point{X: 0, Y: 0}), test.ShouldBeNil)
	dir2 := *o.Params().Direction
	test.That(t, dir1, test.ShouldResemble, dir2)
}

func TestOpenSelectIngressRejectsInvalidPoint(t *testing.T) {
	o := NewOpen([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}})
	err := o.SelectIngress(r2.Point{X: 5, Y: 5})
	test.That(t, err, test.ShouldEqual, ErrNotIngressPoint)
}

func TestOpenCoordinatesDirectionViolation(t *testing.T) {
	o := NewOpen([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}})
	test.That(t, o.SelectIngress(r2.Point{X: 0, Y: 0}), test.ShouldBeNil)

	wrong := r2.Point{X: 1, Y: 0}
	_, err := o.Coordinates(&wrong, 0)
	test.That(t, err, test.ShouldEqual, ErrDirectionViolation)
}

func TestClosedCoordinatesReturnsToNearStart(t *testing.T) {
	c := NewClosed([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
	ingress := r2.Point{X: 1, Y: 0}
	coords, err := c.Coordinates(&ingress, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, coords[0], test.ShouldResemble, ingress)

	last := coords[len(coords)-1]
	dist := last.Sub(ingress).Norm()
	test.That(t, dist, test.ShouldBeLessThan, 1e-9)
}

func TestClosedSelectIngressNarrowsTransition(t *testing.T) {
	c := NewClosed([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}})
	test.That(t, c.SelectIngress(r2.Point{X: 1, Y: 0}), test.ShouldBeNil)
	test.That(t, c.IngressPoints(), test.ShouldResemble, []r2.Point{{X: 1, Y: 0}})
}

func TestClosedCoordinatesEndpointOffsetShortensLoop(t *testing.T) {
	c := NewClosed([]r2.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}})
	ingress := r2.Point{X: 0, Y: 0}
	coords, err := c.Coordinates(&ingress, 1)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, coords[0], test.ShouldResemble, ingress)
	// Traversal arrives at the ingress from (0,4), so the final point backs
	// off one unit along that closing segment.
	last := coords[len(coords)-1]
	test.That(t, last.X, test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, last.Y, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestClosedCoordinatesReversedDirection(t *testing.T) {
	c := NewClosed([]r2.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
		Params{Direction: &[2]int{1, 0}})
	ingress := r2.Point{X: 0, Y: 0}
	coords, err := c.Coordinates(&ingress, 0)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, coords[0], test.ShouldResemble, r2.Point{X: 0, Y: 0})
	test.That(t, coords[1], test.ShouldResemble, r2.Point{X: 0, Y: 4})
	test.That(t, coords[2], test.ShouldResemble, r2.Point{X: 4, Y: 4})
}

func TestClosedSelectIngressRejectsInvalidPoint(t *testing.T) {
	c := NewClosed([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}})
	err := c.SelectIngress(r2.Point{X: 9, Y: 9})
	test.That(t, err, test.ShouldEqual, ErrNotIngressPoint)
}
