// Package geoanchor projects a planned local-frame path onto real GPS
// waypoints, for vehicles that ultimately fly or drive the plan against
// global coordinates.
package geoanchor

import (
	"math"

	geo "github.com/kellydunn/golang-geo"

	"go.viam.com/coveragepath/path"
)

// Anchor converts every coordinate of p, treated as (east, north) meter
// offsets from origin, into a GPS point by great-circle distance and
// bearing.
func Anchor(origin *geo.Point, p *path.ConstrainedPath) []*geo.Point {
	points := make([]*geo.Point, len(p.Coords))
	for i, c := range p.Coords {
		dist := math.Hypot(c.X, c.Y)
		if dist == 0 {
			points[i] = geo.NewPoint(origin.Lat(), origin.Lng())
			continue
		}
		bearing := math.Atan2(c.X, c.Y) * 180 / math.Pi
		points[i] = origin.PointAtDistanceAndBearing(dist/1000, bearing)
	}
	return points
}
