package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trshaper/internal/kernel/core"
)

func TestGraph_CombinationGraphShape(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())

	require.NoError(t, g.AddVertex("stopA#n1"))
	require.NoError(t, g.AddVertex("stopB#n1"))
	require.NoError(t, g.AddVertex("stopB#n2"))
	require.NoError(t, g.AddVertex("stopC#n1"))

	_, err := g.AddEdge("stopA#n1", "stopB#n1", 120)
	require.NoError(t, err)
	_, err = g.AddEdge("stopA#n1", "stopB#n2", 340)
	require.NoError(t, err)
	_, err = g.AddEdge("stopB#n1", "stopC#n1", 50)
	require.NoError(t, err)
	_, err = g.AddEdge("stopB#n2", "stopC#n1", 10)
	require.NoError(t, err)

	require.True(t, g.HasVertex("stopB#n2"))
	require.Equal(t, 4, g.VertexCount())
	require.Equal(t, 4, g.EdgeCount())

	neighbors, err := g.Neighbors("stopA#n1")
	require.NoError(t, err)
	require.Len(t, neighbors, 2)
}

func TestGraph_RejectsDuplicateEdge(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	require.NoError(t, g.AddVertex("a"))
	require.NoError(t, g.AddVertex("b"))

	_, err := g.AddEdge("a", "b", 1)
	require.NoError(t, err)

	_, err = g.AddEdge("a", "b", 2)
	require.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed)
}

func TestGraph_CloneEmptyPreservesVertices(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	require.NoError(t, g.AddVertex("a"))
	require.NoError(t, g.AddVertex("b"))
	_, err := g.AddEdge("a", "b", 7)
	require.NoError(t, err)

	empty := g.CloneEmpty()
	require.Equal(t, 2, empty.VertexCount())
	require.Equal(t, 0, empty.EdgeCount())
}
