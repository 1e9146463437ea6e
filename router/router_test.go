package router_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trshaper/cost"
	"github.com/katalvlaran/trshaper/feedmodel"
	"github.com/katalvlaran/trshaper/router"
	"github.com/katalvlaran/trshaper/trgraph"
)

type noRestrictions struct{}

func (noRestrictions) IsForbidden(string, string, string) bool { return false }

func straightLineGraph(t *testing.T) *trgraph.Graph {
	t.Helper()
	g := trgraph.NewGraph()
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "A", Point: orb.Point{0, 0}}))
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "B", Point: orb.Point{0, 0.001}}))
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "C", Point: orb.Point{0, 0.002}}))
	require.NoError(t, g.AddEdge(&trgraph.Edge{
		ID: "AB", From: "A", To: "B", Length: 100, Level: 1,
		Geometry: orb.LineString{{0, 0}, {0, 0.001}},
	}))
	require.NoError(t, g.AddEdge(&trgraph.Edge{
		ID: "BC", From: "B", To: "C", Length: 100, Level: 1,
		Geometry: orb.LineString{{0, 0.001}, {0, 0.002}},
	}))

	return g
}

func oneStopRoute(nodeID string) *feedmodel.CandidateGroup {
	return &feedmodel.CandidateGroup{StopID: nodeID, Candidates: []feedmodel.NodeCandidate{{NodeID: nodeID}}}
}

func TestRoute_GlobalTwoStopDirectEdge(t *testing.T) {
	g := straightLineGraph(t)
	r := router.New(g, noRestrictions{})

	route := []*feedmodel.CandidateGroup{oneStopRoute("A"), oneStopRoute("B")}
	hops, err := r.Route(route, router.RoutingAttrs{}, router.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, hops, 1)
	require.False(t, hops[0].Empty())
	require.Equal(t, "A", hops[0].StartNode)
	require.Equal(t, "B", hops[0].EndNode)
}

func TestRoute_GlobalThreeStopChain(t *testing.T) {
	g := straightLineGraph(t)
	r := router.New(g, noRestrictions{})

	route := []*feedmodel.CandidateGroup{oneStopRoute("A"), oneStopRoute("B"), oneStopRoute("C")}
	hops, err := r.Route(route, router.RoutingAttrs{}, router.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, hops, 2)
	require.Equal(t, "A", hops[0].StartNode)
	require.Equal(t, "C", hops[1].EndNode)
}

func TestRoute_GreedyMatchesDirectEdge(t *testing.T) {
	g := straightLineGraph(t)
	r := router.New(g, noRestrictions{})

	route := []*feedmodel.CandidateGroup{oneStopRoute("A"), oneStopRoute("B")}
	opts := router.DefaultOptions()
	opts.SolveMethod = router.Greedy
	hops, err := r.Route(route, router.RoutingAttrs{}, opts)
	require.NoError(t, err)
	require.Len(t, hops, 1)
	require.False(t, hops[0].Empty())
}

func TestRoute_RejectsEmptyCandidateGroup(t *testing.T) {
	g := straightLineGraph(t)
	r := router.New(g, noRestrictions{})

	route := []*feedmodel.CandidateGroup{
		{StopID: "A", Candidates: []feedmodel.NodeCandidate{{NodeID: "A"}}},
		{StopID: "empty"},
	}
	_, err := r.Route(route, router.RoutingAttrs{}, router.DefaultOptions())
	require.ErrorIs(t, err, router.ErrEmptyCandidateGroup)
}

func TestRoute_UnreachableCandidateYieldsEmptyHop(t *testing.T) {
	g := trgraph.NewGraph()
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "A", Point: orb.Point{0, 0}}))
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "isolated", Point: orb.Point{5, 5}}))
	r := router.New(g, noRestrictions{})

	route := []*feedmodel.CandidateGroup{oneStopRoute("A"), oneStopRoute("isolated")}
	hops, err := r.Route(route, router.RoutingAttrs{}, router.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, hops, 1)
	require.True(t, hops[0].Empty())
}

func TestRoute_OneWayViolationPicksDetour(t *testing.T) {
	g := trgraph.NewGraph()
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "A", Point: orb.Point{0, 0}}))
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "B", Point: orb.Point{0, 0.001}}))
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "D1", Point: orb.Point{0.001, 0}}))
	require.NoError(t, g.AddNode(&trgraph.Node{ID: "D2", Point: orb.Point{0.001, 0.001}}))

	require.NoError(t, g.AddEdge(&trgraph.Edge{
		ID: "wrongway", From: "B", To: "A", Length: 100, OneWay: true, Forward: true,
		Geometry: orb.LineString{{0, 0.001}, {0, 0}},
	}))
	require.NoError(t, g.AddEdge(&trgraph.Edge{ID: "A-D1", From: "A", To: "D1", Length: 100, Geometry: orb.LineString{{0, 0}, {0.001, 0}}}))
	require.NoError(t, g.AddEdge(&trgraph.Edge{ID: "D1-D2", From: "D1", To: "D2", Length: 100, Geometry: orb.LineString{{0.001, 0}, {0.001, 0.001}}}))
	require.NoError(t, g.AddEdge(&trgraph.Edge{ID: "D2-B", From: "D2", To: "B", Length: 100, Geometry: orb.LineString{{0.001, 0.001}, {0, 0.001}}}))

	r := router.New(g, noRestrictions{})
	opts := router.DefaultOptions()
	opts.CostOptions = cost.DefaultRoutingOptions()
	cost.WithOneWayPunishFactor(1000)(&opts.CostOptions)

	route := []*feedmodel.CandidateGroup{oneStopRoute("A"), oneStopRoute("B")}
	hops, err := r.Route(route, router.RoutingAttrs{}, opts)
	require.NoError(t, err)
	require.Len(t, hops, 1)
	require.False(t, hops[0].Empty())
	// The only direct edge between A and B runs B->A, so it never leaves A;
	// the route reaches B through D1 and D2, ending on D2-B.
	require.Equal(t, "D2-B", hops[0].Edges[0].ID)
}
