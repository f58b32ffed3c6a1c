package layout

import (
	"math"

	"github.com/matzehuels/mieza/pkg/circuit"
)

// RouteTolerance is the gap below which two coordinates count as aligned.
const RouteTolerance = 1.0

// Route connects two points with an orthogonal polyline.
//
// A diagonal connection becomes a three-segment "Z": half the horizontal gap,
// the full vertical gap, then the remaining horizontal half. The first
// waypoint is always from and the last is always to, exactly. Coincident
// endpoints still produce two waypoints.
func Route(from, to circuit.Point) []circuit.Point {
	path := []circuit.Point{from}
	cur := from

	if math.Abs(to.X-cur.X) > RouteTolerance {
		cur = circuit.Point{X: from.X + (to.X-from.X)/2, Y: cur.Y}
		path = append(path, cur)
	}
	if math.Abs(to.Y-cur.Y) > RouteTolerance {
		cur = circuit.Point{X: cur.X, Y: to.Y}
		path = append(path, cur)
	}

	if math.Abs(to.X-cur.X) > RouteTolerance || path[len(path)-1] != to || len(path) == 1 {
		path = append(path, to)
	}
	return path
}
