package trgraph

import "fmt"

// AddNode inserts n into the graph. Returns ErrEmptyNodeID if n.ID is
// empty, or ErrNodeAlreadyExists if a node with that ID is already
// present.
func (g *Graph) AddNode(n *Node) error {
	if n.ID == "" {
		return ErrEmptyNodeID
	}

	g.muVert.Lock()
	defer g.muVert.Unlock()

	if _, ok := g.nodes[n.ID]; ok {
		return fmt.Errorf("%w: %s", ErrNodeAlreadyExists, n.ID)
	}
	g.nodes[n.ID] = n

	return nil
}

// RemoveNode deletes the node id and every incident edge. Returns
// ErrNodeNotFound if it does not exist.
func (g *Graph) RemoveNode(id string) error {
	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, ok := g.nodes[id]; !ok {
		return ErrNodeNotFound
	}

	for to, eid := range g.out[id] {
		delete(g.edges, eid)
		delete(g.in[to], id)
	}
	for from, eid := range g.in[id] {
		delete(g.edges, eid)
		delete(g.out[from], id)
	}
	delete(g.out, id)
	delete(g.in, id)
	delete(g.nodes, id)

	return nil
}

// HasNode reports whether id is present in the graph.
func (g *Graph) HasNode(id string) bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, ok := g.nodes[id]

	return ok
}

// Node returns the node with the given id, or nil if absent.
func (g *Graph) Node(id string) *Node {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.nodes[id]
}

// Nodes returns every node currently in the graph. The returned slice is a
// fresh snapshot, safe to range over without holding any lock.
func (g *Graph) Nodes() []*Node {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}

	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.nodes)
}

// AddEdge inserts e, rejecting duplicates: at most one edge per ordered
// (from,to) pair. Both endpoints must already exist.
func (g *Graph) AddEdge(e *Edge) error {
	g.muVert.RLock()
	_, hasFrom := g.nodes[e.From]
	_, hasTo := g.nodes[e.To]
	g.muVert.RUnlock()
	if !hasFrom {
		return fmt.Errorf("%w: from=%s", ErrNodeNotFound, e.From)
	}
	if !hasTo {
		return fmt.Errorf("%w: to=%s", ErrNodeNotFound, e.To)
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, ok := g.out[e.From][e.To]; ok {
		return fmt.Errorf("%w: %s->%s", ErrEdgeAlreadyExists, e.From, e.To)
	}
	if e.ID == "" {
		e.ID = fmt.Sprintf("e_%s_%s", e.From, e.To)
	}
	g.edges[e.ID] = e
	if g.out[e.From] == nil {
		g.out[e.From] = make(map[string]string)
	}
	g.out[e.From][e.To] = e.ID
	if g.in[e.To] == nil {
		g.in[e.To] = make(map[string]string)
	}
	g.in[e.To][e.From] = e.ID

	return nil
}

// RemoveEdge deletes the edge between from and to, if any.
func (g *Graph) RemoveEdge(from, to string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	eid, ok := g.out[from][to]
	if !ok {
		return ErrEdgeNotFound
	}
	delete(g.edges, eid)
	delete(g.out[from], to)
	delete(g.in[to], from)

	return nil
}

// EdgeBetween looks up the edge from->to, or nil if none exists.
func (g *Graph) EdgeBetween(from, to string) *Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	eid, ok := g.out[from][to]
	if !ok {
		return nil
	}

	return g.edges[eid]
}

// Edge returns the edge with the given id, or nil if absent.
func (g *Graph) Edge(id string) *Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return g.edges[id]
}

// Edges returns every edge currently in the graph.
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}

	return out
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// OutEdges returns every edge leaving node id.
func (g *Graph) OutEdges(id string) []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]*Edge, 0, len(g.out[id]))
	for _, eid := range g.out[id] {
		out = append(out, g.edges[eid])
	}

	return out
}

// InEdges returns every edge arriving at node id.
func (g *Graph) InEdges(id string) []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	in := make([]*Edge, 0, len(g.in[id]))
	for _, eid := range g.in[id] {
		in = append(in, g.edges[eid])
	}

	return in
}

// OutDegree returns the number of edges leaving node id.
func (g *Graph) OutDegree(id string) int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.out[id])
}

// InDegree returns the number of edges arriving at node id.
func (g *Graph) InDegree(id string) int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.in[id])
}
