package trgraph_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trshaper/trgraph"
)

func TestGraph_AddNodeRejectsDuplicate(t *testing.T) {
	g := trgraph.NewGraph()
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "a", Point: orb.Point{0, 0}}))

	err := g.AddNode(&trgraph.Node{ID: "a", Point: orb.Point{1, 1}})
	require.ErrorIs(t, err, trgraph.ErrNodeAlreadyExists)
}

func TestGraph_AddEdgeRejectsDuplicateOrderedPair(t *testing.T) {
	g := trgraph.NewGraph()
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "a", Point: orb.Point{0, 0}}))
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "b", Point: orb.Point{0, 0.001}}))

	require.NoError(t, g.AddEdge(&trgraph.Edge{ID: "e1", From: "a", To: "b"}))

	err := g.AddEdge(&trgraph.Edge{ID: "e2", From: "a", To: "b"})
	require.ErrorIs(t, err, trgraph.ErrEdgeAlreadyExists)
}

func TestGraph_RemoveNodeDeletesIncidentEdges(t *testing.T) {
	g := trgraph.NewGraph()
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "a"}))
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "b"}))
	require.NoError(t, g.AddEdge(&trgraph.Edge{ID: "e1", From: "a", To: "b"}))

	require.NoError(t, g.RemoveNode("a"))
	require.Equal(t, 0, g.EdgeCount())
	require.Nil(t, g.EdgeBetween("a", "b"))
}
