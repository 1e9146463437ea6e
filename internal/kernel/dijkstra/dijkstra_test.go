package dijkstra_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trshaper/internal/kernel/core"
	"github.com/katalvlaran/trshaper/internal/kernel/dijkstra"
)

func buildCombGraph(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	for _, v := range []string{"A#1", "B#1", "B#2", "C#1"} {
		require.NoError(t, g.AddVertex(v))
	}
	_, err := g.AddEdge("A#1", "B#1", 100)
	require.NoError(t, err)
	_, err = g.AddEdge("A#1", "B#2", 400)
	require.NoError(t, err)
	_, err = g.AddEdge("B#1", "C#1", 50)
	require.NoError(t, err)
	_, err = g.AddEdge("B#2", "C#1", 5)
	require.NoError(t, err)

	return g
}

func TestDijkstra_PicksCheaperCandidateChain(t *testing.T) {
	g := buildCombGraph(t)

	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source("A#1"), dijkstra.WithReturnPath())
	require.NoError(t, err)
	require.Equal(t, int64(150), dist["C#1"])
	require.Equal(t, "B#1", prev["C#1"])
}

func TestDijkstra_UnreachableVertexStaysAtInfinity(t *testing.T) {
	g := buildCombGraph(t)
	require.NoError(t, g.AddVertex("orphan"))

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source("A#1"))
	require.NoError(t, err)
	require.Greater(t, dist["orphan"], int64(1<<40))
}

func TestDijkstra_RejectsUnweightedGraph(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))
	require.NoError(t, g.AddVertex("A"))

	_, _, err := dijkstra.Dijkstra(g, dijkstra.Source("A"))
	require.ErrorIs(t, err, dijkstra.ErrUnweightedGraph)
}
