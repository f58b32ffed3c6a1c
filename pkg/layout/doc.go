// Package layout turns a circuit graph into geometry: an absolute position
// for every component, absolute coordinates for every pin under rotation, and
// an orthogonal polyline for every connection.
//
// # Placement
//
// [Place] is a single deterministic pass. Explicit positions are kept; every
// other component, in declaration order, goes to the mean of its already
// placed neighbors offset by (50, 50), or to the next cell of a 10-column grid
// of 100-unit cells when it has none. The result depends on declaration
// order, and no attempt is made to avoid overlaps.
//
// # Pins
//
// [ResolvePin] adds a rotated template offset to the component position.
// Rotations are quarter turns in screen coordinates: (10, 0) becomes (0, 10)
// at 90°, (-10, 0) at 180°, and (0, -10) at 270°.
//
// # Routing
//
// [Route] draws a three-segment "Z" between two pins: half the horizontal
// gap, the vertical gap, then the other half. Endpoints are exact.
//
// [Compute] runs all three and returns a [Layout] ready for rendering.
package layout
