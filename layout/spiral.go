package layout

import (
	"math"

	"go.viam.com/rdk/logging"

	"go.viam.com/coveragepath/constraint"
	"go.viam.com/coveragepath/geometry"
)

// Spiral lays out concentric inward-offset rings until the area collapses.
type Spiral struct {
	VehicleRadius, SensorRadius float64
	DefaultB                    float64
}

// LayoutConstraints implements Generator.
func (g Spiral) LayoutConstraints(
	area geometry.Area, logger logging.Logger,
) ([]constraint.Constraint, error) {
	logger = effectiveLogger(logger)

	thetaMin := geometry.MinInteriorAngle(area)
	firstOffset := boundaryOffset(area, g.VehicleRadius, g.SensorRadius, g.DefaultB)
	ringOffset := math.Max(g.VehicleRadius, 2*g.SensorRadius*math.Sin(thetaMin*math.Pi/180/2))

	var constraints []constraint.Constraint

	current := area.Polygon()
	offset, err := current.Buffer(-firstOffset)
	if err != nil {
		logger.Warnw("spiral: area too small for even one ring", "error", err)
		return nil, nil
	}

	for {
		constraints = append(constraints, constraint.NewClosed(offset.Vertices()))

		next, err := offset.Buffer(-ringOffset)
		if err != nil {
			break
		}
		offset = next
	}

	if len(constraints) == 0 {
		logger.Warnw("spiral: no rings produced")
	}
	return constraints, nil
}
