// Package layout implements the coverage-pattern generators — oriented
// boustrophedon, spiral, and streamline — all sharing a boundary-offset
// sizing rule that keeps the vehicle's center at least its own radius
// inside the boundary while still covering acute corners.
package layout

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"

	"go.viam.com/coveragepath/constraint"
	"go.viam.com/coveragepath/geometry"
)

// ErrInfeasible indicates the requested layout cannot cover the area at all
// (e.g. the polygon is narrower than the vehicle diameter).
var ErrInfeasible = errors.New("layout: area is geometrically infeasible for the requested footprint")

// Generator produces a list of constraints whose union, thickened by the
// sensor radius, covers an Area. A nil logger gets a default.
type Generator interface {
	LayoutConstraints(area geometry.Area, logger logging.Logger) ([]constraint.Constraint, error)
}

func effectiveLogger(logger logging.Logger) logging.Logger {
	if logger == nil {
		return logging.NewLogger("layout")
	}
	return logger
}

// boundaryOffset computes o = max(rV, b*sin(thetaMin/2)), where b defaults
// to max(rV, rS) when defaultB <= 0. The sine term widens the offset at
// acute corners so the sensor footprint still reaches them.
func boundaryOffset(area geometry.Area, rV, rS, defaultB float64) float64 {
	b := defaultB
	if b <= 0 {
		b = math.Max(rV, rS)
	}
	thetaMin := geometry.MinInteriorAngle(area)
	o := b * math.Sin(thetaMin*math.Pi/180/2)
	return math.Max(rV, o)
}

// offsetPolygon returns the inward buffer of area's polygon by o.
func offsetPolygon(area geometry.Area, o float64) (geometry.Polygon, error) {
	return area.Polygon().Buffer(-o)
}

func round5(v float64) float64 {
	const scale = 1e5
	return math.Round(v*scale) / scale
}

func projectOnto(p, axis r2.Point) float64 { return p.Dot(axis) }

// ortho rotates v by +90 degrees (counter-clockwise).
func ortho(v r2.Point) r2.Point { return r2.Point{X: -v.Y, Y: v.X} }

func unit(v r2.Point) r2.Point {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Mul(1 / n)
}
