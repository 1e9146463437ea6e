package shapebuilder

import (
	"sync"

	"github.com/paulmach/orb"
)

// TransitEdge is one graph edge incident to at least one routed trip,
// carrying its geometry plus the sets of trips, routes, and trip short
// names observed traversing it.
type TransitEdge struct {
	Geometry        orb.LineString
	TripIDs         []string
	RouteShortNames []string
	TripShortNames  []string
}

// transitEdgeAccum is the mutable, set-based form of TransitEdge kept
// while a Build run is still recording; Edges() flattens it to the
// public, slice-based TransitEdge.
type transitEdgeAccum struct {
	geometry        orb.LineString
	tripIDs         map[string]struct{}
	routeShortNames map[string]struct{}
	tripShortNames  map[string]struct{}
}

// TransitGraph is the optional edge-to-trip incidence map: for every edge
// used by at least one routed trip, its geometry plus the sets of trip
// ids, route short names, and trip short names that traversed it.
type TransitGraph struct {
	mu    sync.Mutex
	edges map[string]*transitEdgeAccum
}

func newTransitGraph() *TransitGraph {
	return &TransitGraph{edges: make(map[string]*transitEdgeAccum)}
}

// record attaches tripID, routeShortName, and tripShortName to edgeID,
// recording geometry on first sight of the edge. Either short name may be
// empty, meaning the trip (or its route) carries none.
func (tg *TransitGraph) record(edgeID string, geometry orb.LineString, tripID, routeShortName, tripShortName string) {
	tg.mu.Lock()
	defer tg.mu.Unlock()

	acc, ok := tg.edges[edgeID]
	if !ok {
		acc = &transitEdgeAccum{
			geometry:        geometry,
			tripIDs:         make(map[string]struct{}),
			routeShortNames: make(map[string]struct{}),
			tripShortNames:  make(map[string]struct{}),
		}
		tg.edges[edgeID] = acc
	}

	acc.tripIDs[tripID] = struct{}{}
	if routeShortName != "" {
		acc.routeShortNames[routeShortName] = struct{}{}
	}
	if tripShortName != "" {
		acc.tripShortNames[tripShortName] = struct{}{}
	}
}

// Edges returns a snapshot mapping each edge ID to its incident geometry
// and trip/route/trip-short-name sets.
func (tg *TransitGraph) Edges() map[string]TransitEdge {
	tg.mu.Lock()
	defer tg.mu.Unlock()

	out := make(map[string]TransitEdge, len(tg.edges))
	for edgeID, acc := range tg.edges {
		out[edgeID] = TransitEdge{
			Geometry:        acc.geometry,
			TripIDs:         setToSlice(acc.tripIDs),
			RouteShortNames: setToSlice(acc.routeShortNames),
			TripShortNames:  setToSlice(acc.tripShortNames),
		}
	}

	return out
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}

	return out
}
