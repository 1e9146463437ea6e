package shapebuilder

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/katalvlaran/trshaper/feedmodel"
	"github.com/katalvlaran/trshaper/router"
	"github.com/katalvlaran/trshaper/trgraph"
)

const dedupeThresholdMeters = 0.01 // 1 cm

// hopSegment is one hop's contribution to the shape: the points emitted
// for it and its length in meters, i.e. how far dist_traveled advances
// over the hop. stopTimeAssignment sums these lengths into per-stop
// distances.
type hopSegment struct {
	points []orb.Point
	length float64
}

// buildPolyline converts a routed hop list into shape points with
// monotonically increasing dist_traveled, deduplicating points closer
// than 1 cm. graph resolves endpoint node geometry for
// empty-edge hops (no path found; emit the straight segment instead).
func buildPolyline(g *trgraph.Graph, hops []router.Hop) ([]feedmodel.ShapePoint, []hopSegment) {
	var shapePoints []feedmodel.ShapePoint
	segments := make([]hopSegment, len(hops))
	var total float64

	appendPoint := func(p orb.Point) {
		if len(shapePoints) > 0 {
			last := shapePoints[len(shapePoints)-1]
			delta := geo.Distance(orb.Point{last.Lon, last.Lat}, p)
			if delta < dedupeThresholdMeters {
				return
			}
			total += delta
		}
		shapePoints = append(shapePoints, feedmodel.ShapePoint{
			Lat: p[1], Lon: p[0], Sequence: len(shapePoints), DistTraveled: total,
		})
	}

	for hi, hop := range hops {
		segStart := total
		var segPoints []orb.Point

		if hop.Empty() {
			from := nodePoint(g, hop.StartNode)
			to := nodePoint(g, hop.EndNode)
			segPoints = []orb.Point{from, to}
			appendPoint(from)
			appendPoint(to)
		} else {
			// Hop.Edges is stored in reverse traversal order; walk it
			// backwards to recover forward order.
			for i := len(hop.Edges) - 1; i >= 0; i-- {
				e := hop.Edges[i]
				geomPts := edgeForwardGeometry(e)
				segPoints = append(segPoints, geomPts...)
				for _, p := range geomPts {
					appendPoint(p)
				}
			}
		}

		segments[hi] = hopSegment{points: segPoints, length: total - segStart}
	}

	return shapePoints, segments
}

// edgeForwardGeometry returns e's geometry oriented from e.From to e.To,
// reversing the stored points when the edge's Reversed flag says the
// geometry runs the other way.
func edgeForwardGeometry(e *trgraph.Edge) []orb.Point {
	pts := make([]orb.Point, len(e.Geometry))
	copy(pts, e.Geometry)
	if e.Reversed {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}

	return pts
}

func nodePoint(g *trgraph.Graph, nodeID string) orb.Point {
	if n := g.Node(nodeID); n != nil {
		return n.Point
	}

	return orb.Point{}
}
