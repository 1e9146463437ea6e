package shapebuilder

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/trshaper/feedmodel"
)

// shapeRegistry holds the single shape mutex: it guards shape-id
// allocation, shape-map insertion/erasure, and (taken by processCluster)
// per-trip shape_id writes. Evaluator appends are not taken under it;
// eval.Report serializes them with its own mutex. One mutex, not a
// partitioned set, since contention here is O(clusters), not
// O(relaxations).
type shapeRegistry struct {
	mu      sync.Mutex
	counter int
	usage   map[string]int // shape_id -> number of trips currently referencing it
	feed    feedmodel.FeedReader
}

// newShapeRegistry seeds the usage table with the number of feed trips
// referencing each pre-existing shape, so release counts those trips too.
func newShapeRegistry(feed feedmodel.FeedReader) *shapeRegistry {
	usage := make(map[string]int)
	for _, t := range feed.Trips() {
		if t.ShapeID != "" {
			usage[t.ShapeID]++
		}
	}

	return &shapeRegistry{usage: usage, feed: feed}
}

// allocateID assigns a globally unique shape id: "shp_<route_id>_<route_
// type>_<counter>" when the representative trip has a route, else
// "shp_<trip_id>_<counter>".
func (s *shapeRegistry) allocateID(routeID string, routeType int, tripID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	if routeID != "" {
		return fmt.Sprintf("shp_%s_%d_%d", routeID, routeType, s.counter)
	}

	return fmt.Sprintf("shp_%s_%d", tripID, s.counter)
}

// install registers shape under the feed and marks it referenced by
// count trips.
func (s *shapeRegistry) install(shape *feedmodel.Shape, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.feed.PutShape(shape)
	s.usage[shape.ID] = count
}

// release decrements a shape's usage count, erasing it from both the
// usage table and the feed on reaching zero. The decrement keys off the
// trip's *previous* shape id, captured by the caller before the trip is
// moved onto a new one, so a shape still referenced by other trips is
// never erased early.
func (s *shapeRegistry) release(previousShapeID string) {
	if previousShapeID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usage[previousShapeID] <= 1 {
		delete(s.usage, previousShapeID)
		s.feed.DeleteShape(previousShapeID)
	} else {
		s.usage[previousShapeID]--
	}
}
