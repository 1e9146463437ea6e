// Package candidate implements the candidate selector: for each stop, it
// resolves the ranked set of nearby graph nodes and their penalties. The
// penalties themselves are precomputed by map ingest, out of scope here;
// the selector's job is purely to look the already-computed group up
// through the stop's station group.
package candidate

import (
	"errors"

	"github.com/katalvlaran/trshaper/feedmodel"
)

// ErrNoStationGroup indicates a stop has no known physical station, so no
// candidate group can be resolved for it.
var ErrNoStationGroup = errors.New("candidate: stop has no station group")

// Selector resolves per-stop candidate groups via map ingest's
// stop-to-station-group linkage.
type Selector struct {
	ingest feedmodel.MapIngest
}

// NewSelector returns a Selector backed by ingest.
func NewSelector(ingest feedmodel.MapIngest) *Selector {
	return &Selector{ingest: ingest}
}

// Select returns the candidate group for stop, or an empty group (never
// nil) if no mapping exists.
func (s *Selector) Select(stop *feedmodel.Stop) *feedmodel.CandidateGroup {
	group := s.ingest.StationGroup(stop.ID)
	if group == nil {
		return &feedmodel.CandidateGroup{StopID: stop.ID}
	}

	cg := group.CandidateGroupFor(stop.ID)
	if cg == nil {
		return &feedmodel.CandidateGroup{StopID: stop.ID}
	}

	return cg
}

// CandidateRoute resolves the candidate group for every stop in order,
// forming the router's input candidate route: an ordered sequence of
// candidate groups, one per stop.
func (s *Selector) CandidateRoute(stops []*feedmodel.Stop) []*feedmodel.CandidateGroup {
	route := make([]*feedmodel.CandidateGroup, len(stops))
	for i, stop := range stops {
		route[i] = s.Select(stop)
	}

	return route
}
