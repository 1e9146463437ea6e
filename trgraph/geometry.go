package trgraph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// lineLength sums the great-circle length of consecutive segments of ls,
// in meters.
func lineLength(ls orb.LineString) float64 {
	var total float64
	for i := 1; i < len(ls); i++ {
		total += geo.Distance(ls[i-1], ls[i])
	}

	return total
}

// pointsWithinEps reports whether a and b coincide within epsMeters. Edge
// geometry endpoints must coincide with their endpoint nodes' geometry up
// to ≤1e-6 m after any merge.
func pointsWithinEps(a, b orb.Point, epsMeters float64) bool {
	return geo.Distance(a, b) <= epsMeters
}

// bearing returns the initial bearing in degrees (-180..180) from a to b.
func bearing(a, b orb.Point) float64 { return Bearing(a, b) }

// turnAngle returns the angle, in degrees, between the heading of travel
// arriving at a junction (headingIn, bearing from the previous point to
// the junction) and the heading of travel leaving it (headingOut, bearing
// from the junction to the next point). 180 means a straight-through
// continuation; 0 means a full U-turn (hairpin).
func turnAngle(headingIn, headingOut float64) float64 { return TurnAngle(headingIn, headingOut) }

// Bearing returns the initial bearing in degrees from a to b, in the
// -180..180 range orb/geo.Bearing yields (0 is north, 90 east).
// Exported for router's edge-based search, which needs the same turn-angle
// math against its own *Edge geometries.
func Bearing(a, b orb.Point) float64 {
	return geo.Bearing(a, b)
}

// TurnAngle returns the angle, in degrees, between the heading of travel
// arriving at a junction and the heading of travel leaving it. 180 means a
// straight-through continuation; 0 means a full U-turn (hairpin). See
// wouldPreserveHairpin and router.hopSearch for its two call sites.
func TurnAngle(headingIn, headingOut float64) float64 {
	reversedIn := headingIn + 180
	diff := reversedIn - headingOut
	for diff < 0 {
		diff += 360
	}
	for diff >= 360 {
		diff -= 360
	}
	if diff > 180 {
		diff = 360 - diff
	}

	return diff
}
