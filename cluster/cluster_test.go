package cluster_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trshaper/cluster"
)

func stopTime(name, platform string, lon, lat float64) cluster.StopTimeKey {
	return cluster.StopTimeKey{NormalizedName: name, NormalizedPlatform: platform, Point: orb.Point{lon, lat}}
}

func baseTrip(id string) cluster.TripKey {
	return cluster.TripKey{
		TripID:    id,
		ShortName: "1",
		FromName:  "A",
		ToName:    "B",
		HasRoute:  true,
		StopTimes: []cluster.StopTimeKey{
			stopTime("Alpha", "1", 0, 0),
			stopTime("Beta", "2", 0, 0.01),
		},
	}
}

func TestRoutingEqual_IdenticalTripsMatch(t *testing.T) {
	a, b := baseTrip("a"), baseTrip("b")
	require.True(t, cluster.RoutingEqual(a, b))
}

func TestRoutingEqual_DifferentPlatformFails(t *testing.T) {
	a := baseTrip("a")
	b := baseTrip("b")
	b.StopTimes[0].NormalizedPlatform = "9"
	require.False(t, cluster.RoutingEqual(a, b))
}

func TestRoutingEqual_DistanceBeyondToleranceFails(t *testing.T) {
	a := baseTrip("a")
	b := baseTrip("b")
	b.StopTimes[1].Point = orb.Point{0, 0.02}
	require.False(t, cluster.RoutingEqual(a, b))
}

func TestBuild_GroupsRoutingEquivalentTrips(t *testing.T) {
	trips := []cluster.TripKey{baseTrip("a"), baseTrip("b")}
	clusters := cluster.Build(trips)
	require.Len(t, clusters, 1)
	require.Len(t, clusters[0].Trips, 2)
}

func TestBuild_SkipsTripsWithTooFewStopTimes(t *testing.T) {
	trip := baseTrip("a")
	trip.StopTimes = trip.StopTimes[:1]
	clusters := cluster.Build([]cluster.TripKey{trip})
	require.Empty(t, clusters)
}

func TestBuild_SkipsTripsWithoutRoute(t *testing.T) {
	trip := baseTrip("a")
	trip.HasRoute = false
	clusters := cluster.Build([]cluster.TripKey{trip})
	require.Empty(t, clusters)
}

func TestBuild_SkipsExistingShapeUnlessDropShapes(t *testing.T) {
	trip := baseTrip("a")
	trip.HasExistingShape = true

	require.Empty(t, cluster.Build([]cluster.TripKey{trip}))
	require.Len(t, cluster.Build([]cluster.TripKey{trip}, cluster.WithDropShapes()), 1)
}

func TestBuild_SkipsTripsOutsideConfiguredModes(t *testing.T) {
	trip := baseTrip("a")
	trip.Mode = 3
	clusters := cluster.Build([]cluster.TripKey{trip}, cluster.WithModes(0, 1))
	require.Empty(t, clusters)
}

func TestBuild_DifferentEndpointsGetSeparateClusters(t *testing.T) {
	a := baseTrip("a")
	b := baseTrip("b")
	b.StopTimes[1].NormalizedName = "Gamma"
	clusters := cluster.Build([]cluster.TripKey{a, b})
	require.Len(t, clusters, 2)
}
