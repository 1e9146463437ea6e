package spatialindex_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trshaper/spatialindex"
)

func TestNodeGrid_MatchingNodeRequiresNameSimilarity(t *testing.T) {
	g := spatialindex.NewNodeGrid(200)
	g.Insert(spatialindex.NodeEntry{
		NodeID: "n1", WGS84: orb.Point{13.4, 52.5}, StationName: "Alexanderplatz", IsStationNode: true,
	})
	g.Insert(spatialindex.NodeEntry{
		NodeID: "n2", WGS84: orb.Point{13.40001, 52.50001}, StationName: "Somewhere Else", IsStationNode: true,
	})

	match, ok := g.MatchingNode(orb.Point{13.4, 52.5}, 100, "Alexanderplatz")
	require.True(t, ok)
	require.Equal(t, "n1", match.NodeID)
}

func TestNodeGrid_DistanceMatchingNodeIgnoresName(t *testing.T) {
	g := spatialindex.NewNodeGrid(200)
	g.Insert(spatialindex.NodeEntry{
		NodeID: "n1", WGS84: orb.Point{13.4, 52.5}, StationName: "Whatever", IsStationNode: true,
	})

	match, ok := g.DistanceMatchingNode(orb.Point{13.40001, 52.50001}, 50)
	require.True(t, ok)
	require.Equal(t, "n1", match.NodeID)
}

func TestNodeGrid_MatchingNodesSetRespectsRadius(t *testing.T) {
	g := spatialindex.NewNodeGrid(200)
	g.Insert(spatialindex.NodeEntry{NodeID: "near", WGS84: orb.Point{13.4, 52.5}, StationName: "Central"})
	g.Insert(spatialindex.NodeEntry{NodeID: "far", WGS84: orb.Point{13.5, 52.6}, StationName: "Central"})

	set := g.MatchingNodesSet(orb.Point{13.4, 52.5}, 50, "Central")
	require.Len(t, set, 1)
	require.Equal(t, "near", set[0].NodeID)
}

func TestEdgeGrid_EdgeCandidatesOrderedByDistance(t *testing.T) {
	g := spatialindex.NewEdgeGrid(500)
	g.Insert(spatialindex.EdgeEntry{EdgeID: "e_far", Geometry: orb.LineString{{13.40, 52.50}, {13.401, 52.501}}})
	g.Insert(spatialindex.EdgeEntry{EdgeID: "e_near", Geometry: orb.LineString{{13.4000, 52.5000}, {13.4001, 52.5000}}})

	cands := g.EdgeCandidates(orb.Point{13.40005, 52.50001}, 1000)
	require.GreaterOrEqual(t, len(cands), 1)
	for i := 1; i < len(cands); i++ {
		require.LessOrEqual(t, cands[i-1].DistM, cands[i].DistM)
	}
}
