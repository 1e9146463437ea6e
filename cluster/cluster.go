// Package cluster implements the trip clusterer: it groups trips that are
// routing-equivalent so the shape builder only routes one representative
// trip per group.
package cluster

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/katalvlaran/trshaper/feedmodel"
)

// StopTimeKey is the normalized, position-comparable projection of a
// single stop-time used by the routing-equality predicate.
type StopTimeKey struct {
	NormalizedName     string
	NormalizedPlatform string
	Point              orb.Point
}

// TripKey bundles everything routing-equality compares for one trip.
type TripKey struct {
	TripID           string
	ShortName        string
	FromName         string
	ToName           string
	Mode             int
	HasRoute         bool
	HasExistingShape bool
	StopTimes        []StopTimeKey
}

// Options configures clustering.
type Options struct {
	DropShapes bool
	Modes      map[int]struct{} // nil means every mode is accepted
}

// Option is a functional option for Options.
type Option func(*Options)

// WithDropShapes makes trips with a pre-existing shape eligible for
// clustering instead of being skipped.
func WithDropShapes() Option { return func(o *Options) { o.DropShapes = true } }

// WithModes restricts clustering to the given GTFS mode codes.
func WithModes(modes ...int) Option {
	return func(o *Options) {
		o.Modes = make(map[int]struct{}, len(modes))
		for _, m := range modes {
			o.Modes[m] = struct{}{}
		}
	}
}

// Cluster is a group of routing-equivalent trips; the first entry is the
// representative used to build the shape.
type Cluster struct {
	Trips []TripKey
}

// bucketKey is (first_stop_ref, last_stop_ref).
type bucketKey struct {
	first, last string
}

// Build runs an O(T) clustering pass: trips are bucketed by
// (first_stop_ref, last_stop_ref), then linearly scanned within bucket for
// routing equality. Trips with fewer than 2 stop-times, no route, an
// existing shape (unless DropShapes), or an unlisted mode are skipped
// entirely.
func Build(trips []TripKey, opts ...Option) []Cluster {
	cfg := Options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	// buckets holds indices into clusters, not pointers: clusters grows via
	// append and a stored *Cluster would go stale across a reallocation.
	buckets := make(map[bucketKey][]int)
	var clusters []Cluster

	for _, trip := range trips {
		if skip(trip, cfg) {
			continue
		}

		key := bucketKey{first: stopRef(trip.StopTimes[0]), last: stopRef(trip.StopTimes[len(trip.StopTimes)-1])}

		placed := false
		for _, idx := range buckets[key] {
			if routingEqual(clusters[idx].Trips[0], trip) {
				clusters[idx].Trips = append(clusters[idx].Trips, trip)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, Cluster{Trips: []TripKey{trip}})
			buckets[key] = append(buckets[key], len(clusters)-1)
		}
	}

	return clusters
}

func skip(t TripKey, cfg Options) bool {
	if len(t.StopTimes) < 2 {
		return true
	}
	if !t.HasRoute {
		return true
	}
	if t.HasExistingShape && !cfg.DropShapes {
		return true
	}
	if cfg.Modes != nil {
		if _, ok := cfg.Modes[t.Mode]; !ok {
			return true
		}
	}

	return false
}

func stopRef(s StopTimeKey) string {
	return s.NormalizedName + "|" + s.NormalizedPlatform
}

// routingEqual is the pairwise routing-equivalence predicate: normalized
// routing attributes match, equal stop-time list length, and for every
// positional pair equal normalized name, equal normalized platform code,
// and web-Mercator distance <= 1 m.
func routingEqual(a, b TripKey) bool {
	if a.ShortName != b.ShortName || a.FromName != b.FromName || a.ToName != b.ToName {
		return false
	}
	if len(a.StopTimes) != len(b.StopTimes) {
		return false
	}
	for i := range a.StopTimes {
		sa, sb := a.StopTimes[i], b.StopTimes[i]
		if sa.NormalizedName != sb.NormalizedName {
			return false
		}
		if sa.NormalizedPlatform != sb.NormalizedPlatform {
			return false
		}
		if geo.Distance(sa.Point, sb.Point) > 1.0 {
			return false
		}
	}

	return true
}

// RoutingEqual exposes the pairwise predicate used internally by Build,
// for callers (and tests) that want to check two trips directly.
func RoutingEqual(a, b TripKey) bool { return routingEqual(a, b) }

// ForStop adapts a feedmodel.Stop into a StopTimeKey, using the stop's own
// coordinates as its point together with the given normalized name and
// platform; callers build the per-trip []StopTimeKey slice before calling
// Build.
func ForStop(s *feedmodel.Stop, normalizedName, normalizedPlatform string) StopTimeKey {
	return StopTimeKey{
		NormalizedName:     normalizedName,
		NormalizedPlatform: normalizedPlatform,
		Point:              orb.Point{s.Lon, s.Lat},
	}
}
