package core

import "sync/atomic"

// CloneEmpty returns a new Graph with identical configuration and
// vertices, but no edges. nextEdgeID is carried over so future AddEdge
// calls on the clone never collide with the source's edge IDs.
func (g *Graph) CloneEmpty() *Graph {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	opts := []GraphOption{WithDirected(g.directed)}
	if g.weighted {
		opts = append(opts, WithWeighted())
	}
	clone := NewGraph(opts...)
	atomic.StoreUint64(&clone.nextEdgeID, atomic.LoadUint64(&g.nextEdgeID))

	for id := range g.vertices {
		clone.vertices[id] = &Vertex{ID: id}
		clone.adjacencyList[id] = make(map[string]map[string]struct{})
	}

	return clone
}
