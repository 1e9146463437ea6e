package feedmodel

import "github.com/katalvlaran/trshaper/trgraph"

// FeedReader is the external collaborator that owns the parsed GTFS-style
// feed. The shape-building engine only reads trips/stops/routes through it
// and writes shapes back into it; parsing feed files from disk is out of
// scope here.
type FeedReader interface {
	Stops() map[string]*Stop
	Routes() map[string]*Route
	Trips() map[string]*Trip
	StopTimes(tripID string) []*StopTime
	Shapes() map[string]*Shape

	// GetModeStops returns the stop set relevant for matching, restricted to
	// the given set of GTFS mode codes. When tripID is non-empty the result
	// is further restricted to stops visited by that trip.
	GetModeStops(modes []int, tripID string) []*Stop

	// PutShape installs shape under shape.ID, replacing any prior shape
	// registered under the same id.
	PutShape(shape *Shape)

	// DeleteShape erases shapeID from the feed. Called once a shape's last
	// referencing trip is moved onto a replacement shape, so superseded
	// shapes do not linger in Shapes().
	DeleteShape(shapeID string)

	// SetTripShape assigns shapeID to trip and updates its stop-times'
	// ShapeDistTraveled (and, when non-nil, arrival/departure times).
	SetTripShape(tripID, shapeID string, distTraveled []float64, arrival, departure []int)
}

// StationGroupRef is an opaque handle to a station group as seen from a
// Stop; it is resolved by MapIngest and consumed by the candidate selector.
type StationGroupRef interface {
	// CandidateGroupFor returns the candidate group recorded for stopID
	// within this station group, or nil if no mapping exists.
	CandidateGroupFor(stopID string) *CandidateGroup
}

// CandidateGroup is the set of graph nodes that may represent a stop, each
// carrying a precomputed penalty (distance, platform mismatch, unmatched
// line, station-group membership, synthetic-node base penalty).
type CandidateGroup struct {
	StopID     string
	Candidates []NodeCandidate
}

// NodeCandidate is one graph node usable for a stop, with its penalty.
type NodeCandidate struct {
	NodeID  string
	Penalty float64
}

// Restrictor answers whether a transition from one edge to another through
// a via-node is forbidden by a turn restriction.
type Restrictor interface {
	IsForbidden(viaNode, fromEdge, toEdge string) bool
}

// MapIngest is the external collaborator that delivers a fully constructed
// routing graph, its spatial indices, a restrictor, and the stop→station
// group linkage. Building the routing graph from raw map data is out of
// scope here; this module only consumes the finished product.
type MapIngest interface {
	// Graph returns the fully built routing graph (component A) that the
	// router matches trips against.
	Graph() *trgraph.Graph

	Restrictor() Restrictor

	// StationGroup resolves the station group a stop belongs to, or nil if
	// the stop has no known physical station.
	StationGroup(stopID string) StationGroupRef
}
