package trgraph_test

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trshaper/trgraph"
)

func TestCleanup_DeletesOrphanNonStationNode(t *testing.T) {
	g := trgraph.NewGraph()
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "isolated", Point: orb.Point{0, 0}}))

	require.NoError(t, g.Cleanup(context.Background()))

	require.False(t, g.HasNode("isolated"))
}

func TestCleanup_KeepsOrphanStationNode(t *testing.T) {
	g := trgraph.NewGraph()
	require.NoError(t, g.AddNode(&trgraph.Node{
		ID:      "stop1",
		Point:   orb.Point{0, 0},
		Station: &trgraph.StationInfo{Name: "Stop 1", FromMapData: true},
	}))

	require.NoError(t, g.Cleanup(context.Background()))

	require.True(t, g.HasNode("stop1"))
	// Step 7: a station node with no outgoing edges gets a self-edge.
	require.Equal(t, 1, g.OutDegree("stop1"))
}

func TestCleanup_CollapsesDegreeTwoChain(t *testing.T) {
	g := trgraph.NewGraph()
	require.NoError(t, g.AddNode(&trgraph.Node{
		ID: "a", Point: orb.Point{0, 0},
		Station: &trgraph.StationInfo{Name: "A", FromMapData: true},
	}))
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "mid", Point: orb.Point{0, 0.0001}}))
	require.NoError(t, g.AddNode(&trgraph.Node{
		ID: "b", Point: orb.Point{0, 0.0002},
		Station: &trgraph.StationInfo{Name: "B", FromMapData: true},
	}))

	require.NoError(t, g.AddEdge(&trgraph.Edge{
		ID: "e1", From: "a", To: "mid",
		Geometry: orb.LineString{{0, 0}, {0, 0.0001}},
	}))
	require.NoError(t, g.AddEdge(&trgraph.Edge{
		ID: "e2", From: "mid", To: "b",
		Geometry: orb.LineString{{0, 0.0001}, {0, 0.0002}},
	}))

	require.NoError(t, g.Cleanup(context.Background()))

	require.False(t, g.HasNode("mid"))
	require.NotNil(t, g.EdgeBetween("a", "b"))
}

func TestCleanup_AssignsComponents(t *testing.T) {
	g := trgraph.NewGraph()
	require.NoError(t, g.AddNode(&trgraph.Node{
		ID: "a", Point: orb.Point{0, 0},
		Station: &trgraph.StationInfo{Name: "A", FromMapData: true},
	}))
	require.NoError(t, g.AddNode(&trgraph.Node{
		ID: "b", Point: orb.Point{0, 0.001},
		Station: &trgraph.StationInfo{Name: "B", FromMapData: true},
	}))
	require.NoError(t, g.AddEdge(&trgraph.Edge{
		ID: "e1", From: "a", To: "b", Level: 2,
		Geometry: orb.LineString{{0, 0}, {0, 0.001}},
	}))

	require.NoError(t, g.Cleanup(context.Background()))

	na := g.Node("a")
	nb := g.Node("b")
	require.NotNil(t, na)
	require.NotNil(t, nb)
	require.Equal(t, na.ComponentID, nb.ComponentID)
}
