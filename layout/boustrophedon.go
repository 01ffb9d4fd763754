package layout

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/rdk/logging"

	"go.viam.com/coveragepath/constraint"
	"go.viam.com/coveragepath/geometry"
)

// maxNudgeAttempts bounds the nudge-and-retry loop for sweep lines that
// miss the polygon, so a degenerate input can't spin forever.
const maxNudgeAttempts = 1000

// degenerateSpan is the intersection extent below which a sweep line is
// treated as grazing a single vertex rather than crossing the polygon.
const degenerateSpan = 1e-5

// OrientedBoustrophedon lays out parallel transects perpendicular to a
// caller-chosen sweep direction.
type OrientedBoustrophedon struct {
	VehicleRadius, SensorRadius float64
	// Sweep is the unit sweep-direction vector ŝ; successive transects are
	// offset along it.
	Sweep r2.Point
	// DefaultB overrides the boundary-offset default b (0 means
	// max(VehicleRadius, SensorRadius)).
	DefaultB float64
}

// LayoutConstraints implements Generator.
func (g OrientedBoustrophedon) LayoutConstraints(
	area geometry.Area, logger logging.Logger,
) ([]constraint.Constraint, error) {
	logger = effectiveLogger(logger)
	sweep := unit(g.Sweep)
	perp := ortho(sweep)

	// Step 1: project every original-polygon vertex onto ŝ⊥ to fix sweep
	// line endpoint positions.
	vMin, vMax := math.Inf(1), math.Inf(-1)
	for _, v := range area.Vertices() {
		p := projectOnto(v, perp)
		vMin = math.Min(vMin, p)
		vMax = math.Max(vMax, p)
	}

	// Step 2: compute offset polygon, project its vertices onto ŝ.
	o := boundaryOffset(area, g.VehicleRadius, g.SensorRadius, g.DefaultB)
	offset, err := offsetPolygon(area, o)
	if err != nil {
		logger.Warnw("oriented boustrophedon: offset polygon is empty", "error", err)
		return nil, nil
	}

	verts := offset.Vertices()
	uMin, uMax := math.Inf(1), math.Inf(-1)
	var vStart, vEnd r2.Point
	for _, v := range verts {
		u := projectOnto(v, sweep)
		if u < uMin {
			uMin = u
			vStart = v
		}
		if u > uMax {
			uMax = u
			vEnd = v
		}
	}

	// Step 3: cell sizing.
	w := uMax - uMin
	if w <= 0 {
		return nil, nil
	}
	if w < 2*g.VehicleRadius {
		logger.Warnw("oriented boustrophedon: cell width is smaller than vehicle diameter",
			"width", w, "error", ErrInfeasible)
		return nil, nil
	}
	nCells := int(math.Ceil(w / (2 * g.SensorRadius)))
	if nCells < 1 {
		nCells = 1
	}
	delta := round5(w / float64(nCells))

	var constraints []constraint.Constraint
	var errs error

	for i := 0; i <= nCells; i++ {
		u0 := uMin + float64(i)*delta

		c, emitted, err := g.emitAt(offset, sweep, perp, vMin, vMax, u0, i, nCells, vStart, vEnd, len(constraints) > 0)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if emitted {
			constraints = append(constraints, c)
		}
	}

	if len(constraints) == 0 {
		logger.Warnw("oriented boustrophedon: no constraints produced")
	}
	return constraints, errs
}

func (g OrientedBoustrophedon) emitAt(
	offset geometry.Polygon,
	sweep, perp r2.Point,
	vMin, vMax, u0 float64,
	i, nCells int,
	vStart, vEnd r2.Point,
	haveEmitted bool,
) (constraint.Constraint, bool, error) {
	nudge := 1e-6
	if haveEmitted {
		nudge = -1e-6
	}

	for attempt := 0; attempt < maxNudgeAttempts; attempt++ {
		a := sweep.Mul(u0).Add(perp.Mul(vMin))
		b := sweep.Mul(u0).Add(perp.Mul(vMax))
		pts, ok := offset.Intersection([2]r2.Point{a, b})
		if !ok || len(pts) == 0 {
			u0 += nudge
			continue
		}

		// Intersection already sorts along the line, i.e. by projection on
		// ŝ⊥. A span below degenerateSpan means the line grazes a vertex
		// (common at the first and last sweep positions once delta rounding
		// lands the line a hair inside the extreme vertex).
		if len(pts) >= 2 && projectOnto(pts[len(pts)-1], perp)-projectOnto(pts[0], perp) > degenerateSpan {
			return constraint.NewOpen(pts), true, nil
		}

		// Degenerate single-point intersection: emit a side-of-polygon
		// constraint instead.
		anchor := vStart
		if i == nCells {
			anchor = vEnd
		} else if i != 0 {
			// Not the first or last position; fall back to whichever
			// anchor vertex is closer in sweep coordinate.
			if math.Abs(u0-projectOnto(vEnd, sweep)) < math.Abs(u0-projectOnto(vStart, sweep)) {
				anchor = vEnd
			}
		}
		edgeA, edgeB := mostAlignedEdge(offset, anchor, perp)
		if projectOnto(edgeB, perp) < projectOnto(edgeA, perp) {
			edgeA, edgeB = edgeB, edgeA
		}
		return constraint.NewOpen([]r2.Point{edgeA, edgeB}), true, nil
	}

	return nil, false, errors.Errorf("sweep line at %f never reached the polygon after %d nudges", u0, maxNudgeAttempts)
}

// mostAlignedEdge returns the endpoints, in original edge order, of whichever
// edge incident to anchor is most aligned with axis.
func mostAlignedEdge(p geometry.Polygon, anchor r2.Point, axis r2.Point) (r2.Point, r2.Point) {
	verts := p.Vertices()
	n := len(verts)
	idx := -1
	for i, v := range verts {
		if v == anchor {
			idx = i
			break
		}
	}
	if idx < 0 {
		return anchor, anchor
	}

	prev := verts[(idx-1+n)%n]
	next := verts[(idx+1)%n]

	prevEdge := anchor.Sub(prev)
	nextEdge := next.Sub(anchor)

	if math.Abs(unit(prevEdge).Dot(axis)) >= math.Abs(unit(nextEdge).Dot(axis)) {
		return prev, anchor
	}
	return anchor, next
}
