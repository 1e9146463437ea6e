package router

import (
	"fmt"

	"github.com/katalvlaran/trshaper/cost"
	"github.com/katalvlaran/trshaper/feedmodel"
	"github.com/katalvlaran/trshaper/internal/kernel/core"
	"github.com/katalvlaran/trshaper/internal/kernel/dijkstra"
	"github.com/katalvlaran/trshaper/trgraph"
)

// costScale converts a float64 cost into the int64 weight
// internal/kernel/core.Graph requires, preserving three decimal digits of
// precision.
const costScale = 1000.0

const (
	originVertex = "__origin__"
	destVertex   = "__dest__"
)

func stageVertex(stage int, nodeID string) string {
	return fmt.Sprintf("%d#%s", stage, nodeID)
}

// globalSolve builds a "combination graph" whose vertices are per-stop
// candidates and whose edges are labeled by routed sub-path costs, then
// runs a single vertex-based shortest path over it.
//
// By the time this graph exists, every edge weight already folds in a
// full edge-based hopSearch between two candidates, so a plain Dijkstra
// over vertices is exactly the right tool — see
// github.com/katalvlaran/trshaper/internal/kernel/dijkstra's doc comment
// for why a vertex search suffices here but not for the street network
// itself.
func globalSolve(
	g *trgraph.Graph,
	restrictor feedmodel.Restrictor,
	route []*feedmodel.CandidateGroup,
	attrs RoutingAttrs,
	copts cost.RoutingOptions,
	noSelfHops, popReachEdge bool,
) ([]Hop, error) {
	comb := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	hopOf := make(map[string]Hop)

	if err := comb.AddVertex(originVertex); err != nil {
		return nil, err
	}
	if err := comb.AddVertex(destVertex); err != nil {
		return nil, err
	}

	for stage, group := range route {
		for _, c := range group.Candidates {
			v := stageVertex(stage, c.NodeID)
			if !comb.HasVertex(v) {
				if err := comb.AddVertex(v); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, c := range route[0].Candidates {
		v := stageVertex(0, c.NodeID)
		if _, err := comb.AddEdge(originVertex, v, int64(c.Penalty*costScale)); err != nil {
			return nil, err
		}
	}

	for stage := 0; stage+1 < len(route); stage++ {
		for _, a := range route[stage].Candidates {
			for _, b := range route[stage+1].Candidates {
				hop := hopSearch(g, restrictor, []feedmodel.NodeCandidate{a}, []feedmodel.NodeCandidate{b}, attrs, copts, noSelfHops, popReachEdge)
				if hop.Empty() {
					continue
				}
				from := stageVertex(stage, a.NodeID)
				to := stageVertex(stage+1, b.NodeID)
				if _, err := comb.AddEdge(from, to, int64(hop.Cost*costScale)); err != nil {
					continue // parallel candidate pair already wired; keep the first
				}
				hopOf[from+"->"+to] = hop
			}
		}
	}

	lastStage := len(route) - 1
	for _, c := range route[lastStage].Candidates {
		v := stageVertex(lastStage, c.NodeID)
		if comb.HasVertex(v) {
			_, _ = comb.AddEdge(v, destVertex, 0)
		}
	}

	_, prev, err := dijkstra.Dijkstra(comb, dijkstra.Source(originVertex), dijkstra.WithReturnPath())
	if err != nil {
		return nil, fmt.Errorf("router: global combination graph: %w", err)
	}

	path, ok := reconstructPath(prev, originVertex, destVertex)
	if !ok {
		return nil, nil // no path through the combination graph; caller treats as all-hops failure
	}

	hops := make([]Hop, 0, len(path)-3)
	for i := 1; i+1 < len(path)-1; i++ {
		hop, found := hopOf[path[i]+"->"+path[i+1]]
		if !found {
			return nil, fmt.Errorf("router: global combination graph: missing hop for %s->%s", path[i], path[i+1])
		}
		hops = append(hops, hop)
	}

	return hops, nil
}

// reconstructPath walks prev from dest back to origin and returns the
// vertex sequence in forward order, or ok=false if dest is unreachable.
func reconstructPath(prev map[string]string, origin, dest string) ([]string, bool) {
	if dest == origin {
		return []string{origin}, true
	}
	var reversed []string
	cur := dest
	for cur != "" {
		reversed = append(reversed, cur)
		if cur == origin {
			break
		}
		cur = prev[cur]
	}
	if len(reversed) == 0 || reversed[len(reversed)-1] != origin {
		return nil, false
	}

	path := make([]string, len(reversed))
	for i, v := range reversed {
		path[len(reversed)-1-i] = v
	}

	return path, true
}
