// Package trshaper builds GTFS-style transit shapes by map-matching trip
// stop sequences onto a street/rail network graph.
//
// Given a routing graph (trgraph), its spatial indices (spatialindex), a
// per-stop candidate node resolver (candidate), an edge-based routing
// cost model (cost), a turn-aware shortest-path router (router), a trip
// clusterer that avoids routing equivalent trips twice (cluster),
// and a name/platform string normalizer (normalizer), the shapebuilder
// package orchestrates the end-to-end pipeline: cluster trips, route one
// representative per cluster, convert the result into a shape polyline,
// and distribute it back to every trip in the cluster.
//
// feedmodel defines the trip-side entities (stops, routes, trips,
// stop-times, shapes) and the external collaborator interfaces this
// module consumes (a parsed feed, a fully built map) and produces
// (augmented shapes, updated stop-times) through, without owning feed
// parsing or map construction itself.
package trshaper
