// Package shapebuilder orchestrates the end-to-end pipeline: cluster
// trips, route one representative per cluster, convert the routed hops
// into a shape polyline, and distribute the result back to every trip in
// the cluster.
//
// The concurrency shape here — a fixed-size sync.WaitGroup of workers
// draining a buffered job channel — is a standard Go worker-pool idiom.
package shapebuilder

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/katalvlaran/trshaper/candidate"
	"github.com/katalvlaran/trshaper/cluster"
	"github.com/katalvlaran/trshaper/feedmodel"
	"github.com/katalvlaran/trshaper/normalizer"
	"github.com/katalvlaran/trshaper/router"
	"github.com/katalvlaran/trshaper/shapebuilder/eval"
)

// Result summarizes a completed Build run.
type Result struct {
	ShapesBuilt  int
	TripsUpdated int
	ClusterFails []ClusterFailure
	Evaluation   *eval.Report
	TransitGraph *TransitGraph
}

// ClusterFailure records a cluster that could not be routed: the cluster
// is skipped with a clear error attached, and the rest of the run
// continues.
type ClusterFailure struct {
	TripIDs []string
	Err     error
}

// Build runs the full shape-building pipeline over every trip feed
// exposes, distributing shapes to feed via FeedReader.PutShape /
// SetTripShape.
func Build(ctx context.Context, feed feedmodel.FeedReader, ingest feedmodel.MapIngest, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	switch cfg.RouterOptions.SolveMethod {
	case router.Global, router.Greedy, router.Greedy2:
	default:
		return nil, fmt.Errorf("shapebuilder: %w", router.ErrUnknownSolveMethod)
	}
	// WithCostOptions always wins over any CostOptions embedded in a
	// WithRouterOptions call, regardless of option order.
	cfg.RouterOptions.CostOptions = cfg.CostOptions

	norm := normalizer.New(normalizer.DefaultRules())
	tripKeys, tripIndex := projectTrips(feed, norm)

	clusters := cluster.Build(tripKeys, cfg.clusterOptions()...)
	shuffle(clusters, cfg.ShuffleSeed)

	registry := newShapeRegistry(feed)
	selector := candidate.NewSelector(ingest)
	r := router.New(ingest.Graph(), ingest.Restrictor())

	var report *eval.Report
	if cfg.Evaluate {
		report = eval.NewReport()
	}
	var transitGraph *TransitGraph
	if cfg.EmitTransitGraph {
		transitGraph = newTransitGraph()
	}

	result := &Result{Evaluation: report, TransitGraph: transitGraph}
	var resultMu sync.Mutex

	jobs := make(chan cluster.Cluster, cfg.Workers)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cl := range jobs {
				select {
				case <-ctx.Done():
					continue
				default:
				}

				built, tripsUpdated, err := processCluster(feed, ingest, selector, r, registry, norm, tripIndex, cl, cfg, report, transitGraph)

				resultMu.Lock()
				if err != nil {
					cfg.Logger.Warn().Err(err).Strs("trips", clusterTripIDs(cl)).Msg("cluster skipped")
					result.ClusterFails = append(result.ClusterFails, ClusterFailure{TripIDs: clusterTripIDs(cl), Err: err})
				} else {
					result.ShapesBuilt += built
					result.TripsUpdated += tripsUpdated
				}
				resultMu.Unlock()
			}
		}()
	}

dispatch:
	for _, cl := range clusters {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- cl:
		}
	}
	close(jobs)
	wg.Wait()

	return result, nil
}

// projectTrips builds the cluster.TripKey projection for every trip in
// feed, keyed for later lookup back to the original *feedmodel.Trip.
func projectTrips(feed feedmodel.FeedReader, norm *normalizer.Normalizer) ([]cluster.TripKey, map[string]*feedmodel.Trip) {
	trips := feed.Trips()
	stops := feed.Stops()
	routes := feed.Routes()

	keys := make([]cluster.TripKey, 0, len(trips))
	index := make(map[string]*feedmodel.Trip, len(trips))

	for id, trip := range trips {
		index[id] = trip

		sts := feed.StopTimes(id)
		stKeys := make([]cluster.StopTimeKey, 0, len(sts))
		for _, st := range sts {
			stop := stops[st.StopID]
			if stop == nil {
				continue
			}
			stKeys = append(stKeys, cluster.ForStop(stop, norm.Normalize(stop.Name), norm.Normalize(stop.PlatformCode)))
		}

		_, hasRoute := routes[trip.RouteID]
		keys = append(keys, cluster.TripKey{
			TripID:           id,
			ShortName:        norm.Normalize(trip.ShortName),
			FromName:         norm.Normalize(trip.FromName),
			ToName:           norm.Normalize(trip.ToName),
			Mode:             trip.Mode,
			HasRoute:         hasRoute,
			HasExistingShape: trip.ShapeID != "",
			StopTimes:        stKeys,
		})
	}

	return keys, index
}

// shuffle randomizes cluster order with a seeded RNG so a fixed seed
// replays deterministically.
func shuffle(clusters []cluster.Cluster, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(clusters), func(i, j int) { clusters[i], clusters[j] = clusters[j], clusters[i] })
}

func clusterTripIDs(cl cluster.Cluster) []string {
	ids := make([]string, len(cl.Trips))
	for i, t := range cl.Trips {
		ids[i] = t.TripID
	}

	return ids
}

func processCluster(
	feed feedmodel.FeedReader,
	ingest feedmodel.MapIngest,
	selector *candidate.Selector,
	r *router.Router,
	registry *shapeRegistry,
	norm *normalizer.Normalizer,
	tripIndex map[string]*feedmodel.Trip,
	cl cluster.Cluster,
	cfg Config,
	report *eval.Report,
	transitGraph *TransitGraph,
) (shapesBuilt, tripsUpdated int, err error) {
	if len(cl.Trips) == 0 {
		return 0, 0, nil
	}

	repKey := cl.Trips[0]
	repTrip := tripIndex[repKey.TripID]
	if repTrip == nil {
		return 0, 0, fmt.Errorf("shapebuilder: representative trip %s not found", repKey.TripID)
	}

	stops := make([]*feedmodel.Stop, 0)
	feedStops := feed.Stops()
	for _, st := range feed.StopTimes(repTrip.ID) {
		if s := feedStops[st.StopID]; s != nil {
			stops = append(stops, s)
		}
	}

	route := selector.CandidateRoute(stops)
	for _, g := range route {
		if len(g.Candidates) == 0 {
			return 0, 0, fmt.Errorf("shapebuilder: stop %s has no candidate nodes", g.StopID)
		}
	}

	attrs := router.RoutingAttrs{ShortName: norm.Normalize(repTrip.ShortName), FromName: norm.Normalize(repTrip.FromName), ToName: norm.Normalize(repTrip.ToName)}
	hops, routeErr := r.Route(route, attrs, cfg.RouterOptions)
	if routeErr != nil {
		return 0, 0, routeErr
	}

	graph := ingest.Graph()
	shapePoints, segments := buildPolyline(graph, hops)

	var routeID, routeShortName string
	var routeType int
	if rt := feed.Routes()[repTrip.RouteID]; rt != nil {
		routeID = rt.ID
		routeType = rt.Type
		routeShortName = rt.ShortName
	}
	shapeID := registry.allocateID(routeID, routeType, repTrip.ID)
	shape := &feedmodel.Shape{ID: shapeID, Points: shapePoints}
	registry.install(shape, len(cl.Trips))

	if transitGraph != nil {
		for _, hop := range hops {
			for _, e := range hop.Edges {
				for _, tripKey := range cl.Trips {
					trip := tripIndex[tripKey.TripID]
					if trip == nil {
						continue
					}
					transitGraph.record(e.ID, e.Geometry, trip.ID, routeShortName, trip.ShortName)
				}
			}
		}
	}

	for _, tripKey := range cl.Trips {
		trip := tripIndex[tripKey.TripID]
		if trip == nil {
			continue
		}
		stopTimes := feed.StopTimes(trip.ID)
		dist, arrival, departure := stopTimeAssignment(stopTimes, hops, segments, cfg.ForceInterpolate)

		previousShapeID := trip.ShapeID
		// The reference shape is read before release can erase it, and the
		// trip's shape_id write is taken under the registry's shape mutex.
		var reference *feedmodel.Shape
		registry.mu.Lock()
		if report != nil && previousShapeID != "" {
			reference = feed.Shapes()[previousShapeID]
		}
		feed.SetTripShape(trip.ID, shapeID, dist, arrival, departure)
		registry.mu.Unlock()
		registry.release(previousShapeID)
		tripsUpdated++

		if reference != nil {
			if scoreErr := report.Score(trip.ID, shapeID, shape, reference); scoreErr != nil {
				return shapesBuilt + 1, tripsUpdated, scoreErr
			}
		}
	}

	return 1, tripsUpdated, nil
}
