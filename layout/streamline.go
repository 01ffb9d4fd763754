package layout

import (
	"math"

	"github.com/golang/geo/r2"
	"go.viam.com/rdk/logging"

	"go.viam.com/coveragepath/constraint"
	"go.viam.com/coveragepath/geometry"
)

// StreamlineBias selects how Streamline distributes transects across a
// cross-section once the full-width ones run out.
type StreamlineBias int

const (
	// BiasNone spreads every transect slot uniformly across the
	// cross-section.
	BiasNone StreamlineBias = iota
	// BiasCenterline fills unused slots at the cross-section's midpoint,
	// then overwrites the trailing slots with backward full-width transects
	// measured from the inner bank; no slot is placed on the inner bank
	// itself.
	BiasCenterline
	// BiasInnerBank collapses every slot past the full-width run straight to
	// the inner bank.
	BiasInnerBank
	// BiasPrunedInnerBank is BiasInnerBank with only the final slot
	// mandated onto the inner bank; intermediate leftover slots still
	// default to the same point, since nothing downstream distinguishes a
	// pruned slot from an inner-bank one.
	BiasPrunedInnerBank
)

// Streamline lays out transects that follow the region's two bounding
// banks, biasing transect placement across each cross-section according to
// Bias.
type Streamline struct {
	VehicleRadius, SensorRadius float64
	DefaultB                    float64
	Bias                        StreamlineBias
}

// LayoutConstraints implements Generator.
func (g Streamline) LayoutConstraints(
	area geometry.Area, logger logging.Logger,
) ([]constraint.Constraint, error) {
	logger = effectiveLogger(logger)

	o := boundaryOffset(area, g.VehicleRadius, g.SensorRadius, g.DefaultB)
	offset, err := offsetPolygon(area, o)
	if err != nil {
		logger.Warnw("streamline: offset polygon is empty", "error", err)
		return nil, nil
	}

	verts := offset.Vertices()
	n := len(verts)
	if n < 4 {
		return nil, nil
	}
	mid := n / 2

	bank1 := verts[:mid]
	bank2 := reverseVerts(verts[mid:])
	sections := mid
	if len(bank2) < sections {
		sections = len(bank2)
	}

	wMax, wMin := math.Inf(-1), math.Inf(1)
	for i := 0; i < sections; i++ {
		l := bank2[i].Sub(bank1[i]).Norm()
		wMax = math.Max(wMax, l)
		wMin = math.Min(wMin, l)
	}
	if math.IsInf(wMax, -1) {
		return nil, nil
	}

	nTransects := int(math.Ceil(wMax/(2*g.SensorRadius) - 1))
	if nTransects < 0 {
		nTransects = 0
	}
	nSlots := nTransects + 2

	slots := make([][]r2.Point, nSlots)
	for i := range slots {
		slots[i] = make([]r2.Point, 0, sections)
	}

	for i := 0; i < sections; i++ {
		pOuter := bank1[i]
		pInner := bank2[i]
		seg := pInner.Sub(pOuter)
		l := seg.Norm()
		if l < 1e-9 {
			for s := 0; s < nSlots; s++ {
				slots[s] = append(slots[s], pOuter)
			}
			continue
		}
		d := seg.Mul(1 / l)

		points := g.crossSectionPoints(pOuter, d, l, nSlots)
		for s := 0; s < nSlots; s++ {
			slots[s] = append(slots[s], points[s])
		}
	}

	constraints := make([]constraint.Constraint, 0, nSlots)
	for _, slot := range slots {
		if len(slot) < 2 {
			continue
		}
		constraints = append(constraints, constraint.NewOpen(slot))
	}

	if len(constraints) == 0 {
		logger.Warnw("streamline: no transects produced")
	}
	return constraints, nil
}

// crossSectionPoints returns nSlots points along the cross-section starting
// at pOuter, direction d, length l, laid out per g.Bias.
func (g Streamline) crossSectionPoints(pOuter, d r2.Point, l float64, nSlots int) []r2.Point {
	pInner := pOuter.Add(d.Mul(l))

	switch g.Bias {
	case BiasCenterline:
		return g.centerlineBias(pOuter, pInner, d, l, nSlots)
	case BiasInnerBank, BiasPrunedInnerBank:
		return g.innerBankBias(pOuter, pInner, d, l, nSlots)
	default:
		points := make([]r2.Point, nSlots)
		spacing := l / float64(nSlots-1)
		for s := 0; s < nSlots; s++ {
			points[s] = pOuter.Add(d.Mul(spacing * float64(s)))
		}
		return points
	}
}

// centerlineBias places transects as a three-pass overwrite:
//  1. forward full-width transects from pOuter, tw = 2*rS apart
//  2. remaining slots filled with the cross-section's centerline point
//  3. the trailing slots overwritten, in decreasing order, with backward
//     full-width transects measured from pInner
//
// Later writes win and nothing is deduplicated.
func (g Streamline) centerlineBias(pOuter, pInner, d r2.Point, l float64, nSlots int) []r2.Point {
	tw := 2 * g.SensorRadius
	points := make([]r2.Point, nSlots)
	centerline := pOuter.Add(d.Mul(l / 2))

	fullCount := int(math.Floor(l/(2*tw))) + 1
	if fullCount > nSlots {
		fullCount = nSlots
	}

	filled := 0
	for s := 0; s < fullCount; s++ {
		points[s] = pOuter.Add(d.Mul(tw * float64(s)))
		filled++
	}

	for s := filled; s < nSlots; s++ {
		points[s] = centerline
	}

	backCount := fullCount - 1
	if backCount > nSlots-filled {
		backCount = nSlots - filled
	}
	for k := 0; k < backCount; k++ {
		s := nSlots - 1 - k
		dist := tw * float64(backCount-k)
		points[s] = pInner.Sub(d.Mul(dist))
	}

	return points
}

// innerBankBias lays full-width transects from pOuter then collapses the
// remainder to pInner. The pruned variant only mandates the final slot land
// on the inner bank, but intermediate leftover slots default to the same
// point, so both biases share this fill.
func (g Streamline) innerBankBias(pOuter, pInner, d r2.Point, l float64, nSlots int) []r2.Point {
	tw := 2 * g.SensorRadius
	points := make([]r2.Point, nSlots)

	fullCount := int(math.Floor(l/tw)) + 1
	if fullCount > nSlots {
		fullCount = nSlots
	}
	for s := 0; s < fullCount; s++ {
		points[s] = pOuter.Add(d.Mul(tw * float64(s)))
	}
	for s := fullCount; s < nSlots; s++ {
		points[s] = pInner
	}
	return points
}

func reverseVerts(v []r2.Point) []r2.Point {
	out := make([]r2.Point, len(v))
	for i, p := range v {
		out[len(v)-1-i] = p
	}
	return out
}
