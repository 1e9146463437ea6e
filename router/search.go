package router

import (
	"container/heap"
	"math"

	"github.com/katalvlaran/trshaper/cost"
	"github.com/katalvlaran/trshaper/feedmodel"
	"github.com/katalvlaran/trshaper/trgraph"
)

// hopSearch runs the edge-based Dijkstra variant between one stage's
// candidate group and the next. It seeds the frontier with
// every from-candidate's outgoing edges (cost = candidate penalty + first
// edge cost), relaxes successor edges subject to restriction/self-hop/
// turn-angle rules, and finalizes on the first popped edge that lands on
// a to-candidate node (or, when popReachEdge is false, keeps relaxing
// until the frontier is exhausted and returns the best goal edge found).
func hopSearch(
	g *trgraph.Graph,
	restrictor feedmodel.Restrictor,
	from, to []feedmodel.NodeCandidate,
	attrs RoutingAttrs,
	copts cost.RoutingOptions,
	noSelfHops, popReachEdge bool,
) Hop {
	toPenalty := make(map[string]float64, len(to))
	for _, c := range to {
		toPenalty[c.NodeID] = c.Penalty
	}

	dist := make(map[string]float64)
	prevEdge := make(map[string]string)
	finalized := make(map[string]bool)
	edgeByID := make(map[string]*trgraph.Edge)

	pq := &edgeHeap{}
	heap.Init(pq)

	for _, c := range from {
		for _, e := range g.OutEdges(c.NodeID) {
			m := cost.MeasurementFor(e, attrs.ShortName)
			c0 := c.Penalty + cost.Edge(m, &copts)
			edgeByID[e.ID] = e
			if existing, ok := dist[e.ID]; !ok || c0 < existing {
				dist[e.ID] = c0
				prevEdge[e.ID] = ""
				heap.Push(pq, &edgeHeapItem{edgeID: e.ID, cost: c0})
			}
		}
	}

	var bestGoalEdge string
	bestGoalCost := math.Inf(1)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*edgeHeapItem)
		if finalized[item.edgeID] {
			continue
		}
		if item.cost > dist[item.edgeID] {
			continue
		}
		finalized[item.edgeID] = true
		e := edgeByID[item.edgeID]

		if penalty, isGoal := toPenalty[e.To]; isGoal {
			total := item.cost + penalty
			if total < bestGoalCost {
				bestGoalCost = total
				bestGoalEdge = item.edgeID
			}
			if popReachEdge {
				break
			}
		}

		for _, succ := range g.OutEdges(e.To) {
			if restrictor != nil && restrictor.IsForbidden(e.To, e.ID, succ.ID) {
				continue
			}
			if noSelfHops && succ.ID == e.ID {
				continue
			}

			turnPunish := 0.0
			if headingOK(e, succ) {
				headingIn := edgeExitHeading(e)
				headingOut := edgeEntryHeading(succ)
				if angle := trgraph.TurnAngle(headingIn, headingOut); angle < copts.FullTurnAngleDeg {
					turnPunish = copts.FullTurnPunishFactor
				}
			}

			m := cost.MeasurementFor(succ, attrs.ShortName)
			newCost := item.cost + cost.Edge(m, &copts) + turnPunish

			if existing, ok := dist[succ.ID]; !ok || newCost < existing {
				dist[succ.ID] = newCost
				prevEdge[succ.ID] = e.ID
				edgeByID[succ.ID] = succ
				heap.Push(pq, &edgeHeapItem{edgeID: succ.ID, cost: newCost})
			}
		}
	}

	if bestGoalEdge == "" {
		return Hop{} // no path exists; caller records a straight-segment fallback
	}

	// Backtrack from the goal edge to a seed edge. This walk is naturally
	// in reverse traversal order — Hop.Edges keeps that order rather than
	// re-reversing it.
	var edges []*trgraph.Edge
	cur := bestGoalEdge
	for cur != "" {
		edges = append(edges, edgeByID[cur])
		cur = prevEdge[cur]
	}

	startNode := edges[len(edges)-1].From
	endNode := edges[0].To

	return Hop{Edges: edges, StartNode: startNode, EndNode: endNode, Cost: bestGoalCost}
}

// headingOK reports whether both edges carry enough geometry to compute a
// turn angle.
func headingOK(a, b *trgraph.Edge) bool {
	return len(a.Geometry) >= 2 && len(b.Geometry) >= 2
}

func edgeExitHeading(e *trgraph.Edge) float64 {
	return trgraph.Bearing(e.Geometry[len(e.Geometry)-2], e.Geometry[len(e.Geometry)-1])
}

func edgeEntryHeading(e *trgraph.Edge) float64 {
	return trgraph.Bearing(e.Geometry[0], e.Geometry[1])
}

// edgeHeapItem is a lazy decrease-key priority queue entry, mirroring
// internal/kernel/dijkstra's nodeItem/nodePQ idiom but keyed by edge ID
// instead of vertex ID.
type edgeHeapItem struct {
	edgeID string
	cost   float64
}

type edgeHeap []*edgeHeapItem

func (h edgeHeap) Len() int            { return len(h) }
func (h edgeHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h edgeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *edgeHeap) Push(x interface{}) { *h = append(*h, x.(*edgeHeapItem)) }
func (h *edgeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
