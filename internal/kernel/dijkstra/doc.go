// Package dijkstra provides the single-source shortest-path routine the
// router's global solver runs over a per-cluster combination graph once
// every candidate-to-candidate subpath has been routed and weighted.
//
// Overview:
//
//   - Computes the minimum-cost path from a single source vertex to all
//     reachable vertices in O((V + E) log V) time, where V = |vertices|
//     and E = |edges| of the combination graph (one vertex per candidate
//     node, one edge per routed hop).
//   - Relies on a min-heap (priority queue) to always expand the
//     next-closest candidate.
//   - Supports path reconstruction (WithReturnPath) so the global solver
//     can read off the winning chain of candidates directly.
//
// Why a generic Dijkstra suffices here: by the time a combination graph
// exists, every transit-specific cost term (level, one-way, line-matching,
// turn, pass-through penalties) has already been folded into each edge's
// scalar weight by the edge-based search that built the combination
// graph. The remaining problem is plain single-source shortest path, so
// this general-purpose Dijkstra is reused rather than re-implemented.
//
// Key features:
//
//   - Functional options allow fine-tuning behavior without changing the API signature.
//   - ReturnPath: if enabled, returns a "predecessor" map, so you can rebuild each path.
//
// Performance and complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
//
// Error handling (sentinel errors):
//
//   - ErrEmptySource, ErrNilGraph, ErrUnweightedGraph, ErrVertexNotFound,
//     ErrNegativeWeight.
//
// API reference:
//
//	func Dijkstra(
//	    g *core.Graph,
//	    opts ...Option,
//	) (dist map[string]int64, prev map[string]string, err error)
//
// Thread safety:
//
//   - Dijkstra itself is not thread-safe if the same *core.Graph is
//     modified concurrently; router builds one combination graph per
//     cluster and never mutates it once Dijkstra starts.
package dijkstra
