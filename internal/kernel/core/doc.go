// Package core provides the weighted-graph primitive used by router's
// global solver to build and solve per-cluster combination graphs: one
// vertex per candidate node, one edge per routed subpath cost, assembled
// fresh per cluster and thrown away once the shortest path is read off.
//
// The Graph supports:
//
//   - Directed vs. undirected edges (WithDirected) — combination graphs
//     are always directed, since a subpath's cost is not symmetric.
//   - Weighted vs. unweighted edges (WithWeighted) — combination graphs
//     are always weighted, since edge weight IS the routed-subpath cost.
//   - Constant-time edge operations via nested maps:
//     adjacencyList[from][to][edgeID] = struct{}{}
//   - Collision-free atomic Edge.ID generation ("e1", "e2", …)
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency
//     (muEdgeAdj); unused by the single-goroutine combination-graph
//     builder today, but correctness does not depend on that.
//
// Self-loops and parallel edges between the same two candidate nodes are
// always rejected: a combination graph never legitimately has either, and
// a silently-accepted duplicate would make the global solver pick an
// arbitrary one of two routed subpaths between the same candidate pair.
package core
