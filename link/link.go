// Package link splices a sequenced constraint chain into one concrete
// path, either by direct concatenation or by routing free-space connectors
// between consecutive constraints.
package link

import (
	"github.com/golang/geo/r2"
	"go.uber.org/multierr"
	"go.viam.com/rdk/logging"

	"go.viam.com/coveragepath/astar"
	"go.viam.com/coveragepath/constraint"
	"go.viam.com/coveragepath/path"
	"go.viam.com/coveragepath/refinement"
)

// Linker splices a sequenced constraint chain into a final path.
type Linker interface {
	Link(chain []constraint.Constraint, ingressPoint *r2.Point, offset float64, logger logging.Logger) (*path.ConstrainedPath, error)
}

// Simple connects each constraint's egress directly to the next
// constraint's ingress.
type Simple struct{}

// Link implements Linker.
func (Simple) Link(chain []constraint.Constraint, ingressPoint *r2.Point, offset float64, logger logging.Logger) (*path.ConstrainedPath, error) {
	logger = effectiveLogger(logger)

	var coords []r2.Point
	if ingressPoint != nil {
		coords = append(coords, *ingressPoint)
	}

	var thrust []constraint.ThrustRange
	var errs error

	for _, c := range chain {
		newCoords, err := c.Coordinates(nil, offset)
		if err != nil {
			logger.Warnw("simple linker: could not determine direction on constraint in chain", "error", err)
			errs = multierr.Append(errs, err)
			continue
		}
		coords = append(coords, newCoords...)

		if c.Params().Thrust != nil {
			thrust = append(thrust, c.Params().Thrust...)
		}
	}

	return path.New(coords, thrust), errs
}

// AStarRouted is Simple, but inserts an A*-smoothed route between the
// running list's last coordinate and the next constraint's first
// coordinate whenever the list is already non-empty.
type AStarRouted struct {
	Planner *astar.Planner
}

// Link implements Linker.
func (l AStarRouted) Link(chain []constraint.Constraint, ingressPoint *r2.Point, offset float64, logger logging.Logger) (*path.ConstrainedPath, error) {
	logger = effectiveLogger(logger)

	var coords []r2.Point
	if ingressPoint != nil {
		coords = append(coords, *ingressPoint)
	}

	var thrust []constraint.ThrustRange
	var errs error

	for _, c := range chain {
		newCoords, err := c.Coordinates(nil, offset)
		if err != nil {
			logger.Warnw("astar linker: could not determine direction on constraint in chain", "error", err)
			errs = multierr.Append(errs, err)
			continue
		}

		if len(coords) > 0 && len(newCoords) > 0 {
			route, err := l.Planner.Plan(coords[len(coords)-1], newCoords[0])
			if err != nil {
				logger.Warnw("astar linker: routing failed, falling back to direct link", "error", err)
			} else if len(route) > 2 {
				waypoints := route[1 : len(route)-1]
				coords = append(coords, waypoints...)
				// Pad with the unconstrained range: the zero value is the
				// "apply no thrust" drift sentinel, and a transit leg must
				// not inherit it.
				for range waypoints {
					thrust = append(thrust, refinement.DefaultThrust)
				}
			}
		}

		coords = append(coords, newCoords...)
		if c.Params().Thrust != nil {
			thrust = append(thrust, c.Params().Thrust...)
		}
	}

	return path.New(coords, thrust), errs
}

func effectiveLogger(logger logging.Logger) logging.Logger {
	if logger == nil {
		return logging.NewLogger("link")
	}
	return logger
}
