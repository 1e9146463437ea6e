package trgraph

import "context"

// assignComponents DFS-labels every node with a shared Component record,
// whose MinEdgeLevel is the minimum level over every edge touched while
// exploring that component.
//
// The traversal style — context-cancellable, explicit Visited tracking,
// iterative stack rather than recursion — is written natively against
// Node/Edge since trgraph's graph is not expressible as the generic
// kernel graph a reusable DFS would expect.
func (g *Graph) assignComponents(ctx context.Context) error {
	visited := make(map[string]bool, len(g.nodes))
	g.components = g.components[:0]

	var nodeIDs []string
	for _, n := range g.Nodes() {
		nodeIDs = append(nodeIDs, n.ID)
	}

	compID := 0
	for _, start := range nodeIDs {
		if visited[start] {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		minLevel := MaxLevel
		stack := []string{start}
		visited[start] = true
		var touched []string

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			touched = append(touched, cur)

			for _, e := range g.OutEdges(cur) {
				if e.Level < minLevel {
					minLevel = e.Level
				}
				if !visited[e.To] {
					visited[e.To] = true
					stack = append(stack, e.To)
				}
			}
			for _, e := range g.InEdges(cur) {
				if e.Level < minLevel {
					minLevel = e.Level
				}
				if !visited[e.From] {
					visited[e.From] = true
					stack = append(stack, e.From)
				}
			}
		}

		g.components = append(g.components, Component{ID: compID, MinEdgeLevel: minLevel})
		g.muVert.Lock()
		for _, id := range touched {
			if n, ok := g.nodes[id]; ok {
				n.ComponentID = compID
			}
		}
		g.muVert.Unlock()
		compID++
	}

	return nil
}

// Components returns a snapshot of every component assigned by the most
// recent Cleanup call.
func (g *Graph) Components() []Component {
	out := make([]Component, len(g.components))
	copy(out, g.components)

	return out
}
