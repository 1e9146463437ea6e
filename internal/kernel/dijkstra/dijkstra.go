// Package dijkstra implements single-source shortest path on a weighted
// graph, processing vertices in order of increasing distance with a
// min-heap and the classic lazy-decrease-key trick: a shorter distance to
// an already-queued vertex is pushed as a new heap entry rather than
// updating the old one in place, and stale entries are skipped on pop via
// a visited set.
//
// Time:  O((V + E) log V)
// Space: O(V + E)
package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/trshaper/internal/kernel/core"
)

// Dijkstra computes shortest distances from cfg.Source to every other
// vertex reachable in g. dist maps vertex ID to distance (math.MaxInt64
// if unreachable); prev is the predecessor map when WithReturnPath is
// set, else nil.
func Dijkstra(g *core.Graph, opts ...Option) (map[string]int64, map[string]string, error) {
	cfg := DefaultOptions("")
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Source == "" {
		return nil, nil, ErrEmptySource
	}
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if !g.Weighted() {
		return nil, nil, ErrUnweightedGraph
	}
	if !g.HasVertex(cfg.Source) {
		return nil, nil, ErrVertexNotFound
	}

	for _, e := range g.Edges() {
		if e.Weight < 0 {
			return nil, nil, fmt.Errorf("%w: edge %s→%s weight=%d", ErrNegativeWeight, e.From, e.To, e.Weight)
		}
	}

	vertices := g.Vertices()
	dist := make(map[string]int64, len(vertices))
	var prev map[string]string
	if cfg.ReturnPath {
		prev = make(map[string]string, len(vertices))
	}
	visited := make(map[string]bool, len(vertices))

	for _, v := range vertices {
		dist[v] = math.MaxInt64
		if prev != nil {
			prev[v] = ""
		}
	}
	dist[cfg.Source] = 0

	pq := make(nodePQ, 0, len(vertices))
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{id: cfg.Source, dist: 0})

	r := &runner{g: g, dist: dist, prev: prev, visited: visited, pq: pq}
	if err := r.process(); err != nil {
		return nil, nil, err
	}

	if !cfg.ReturnPath {
		return r.dist, nil, nil
	}

	return r.dist, r.prev, nil
}

// runner holds the mutable state for one Dijkstra execution.
type runner struct {
	g       *core.Graph
	dist    map[string]int64
	prev    map[string]string
	visited map[string]bool
	pq      nodePQ
}

// process repeatedly pops the closest unvisited vertex and relaxes its
// outgoing edges until the heap is drained.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id
		if r.visited[u] {
			continue
		}
		r.visited[u] = true

		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax examines each edge outgoing from u and pushes a new heap entry
// for any neighbor whose distance strictly improves.
func (r *runner) relax(u string) error {
	neighbors, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get neighbors of %q: %w", u, err)
	}

	for _, e := range neighbors {
		if e.Directed && e.From != u {
			continue
		}

		v, w := e.To, e.Weight
		if w < 0 {
			return fmt.Errorf("%w: edge %s→%s weight=%d", ErrNegativeWeight, u, v, w)
		}

		newDist := r.dist[u] + w
		if newDist >= r.dist[v] {
			continue
		}

		r.dist[v] = newDist
		if r.prev != nil {
			r.prev[v] = u
		}
		heap.Push(&r.pq, &nodeItem{id: v, dist: newDist})
	}

	return nil
}

// nodeItem is one (vertex, distance) entry in the priority queue.
type nodeItem struct {
	id   string
	dist int64
}

// nodePQ is a min-heap of *nodeItem ordered by ascending dist, used with
// the lazy-decrease-key strategy described in the package doc.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
