package router

import (
	"fmt"

	"github.com/katalvlaran/trshaper/feedmodel"
)

// Route routes a candidate route of K candidate groups (K >= 2) and
// returns K-1 hops, or a straight-segment empty hop for any stage that
// could not be bridged.
func (r *Router) Route(route []*feedmodel.CandidateGroup, attrs RoutingAttrs, opts Options) ([]Hop, error) {
	if len(route) < 2 {
		return nil, ErrTooFewCandidateGroups
	}
	for _, g := range route {
		if len(g.Candidates) == 0 {
			return nil, fmt.Errorf("%w: stop %s", ErrEmptyCandidateGroup, g.StopID)
		}
	}

	switch opts.SolveMethod {
	case Global:
		hops, err := globalSolve(r.graph, r.restrictor, route, attrs, opts.CostOptions, opts.NoSelfHops, opts.PopReachEdge)
		if err != nil {
			return nil, err
		}
		if hops == nil {
			// No path through the combination graph at all; degrade to
			// per-stage empty hops rather than failing the whole trip.
			return r.emptyHops(route), nil
		}

		return hops, nil
	case Greedy:
		return r.greedy(route, attrs, opts, false), nil
	case Greedy2:
		return r.greedy(route, attrs, opts, true), nil
	default:
		return nil, ErrUnknownSolveMethod
	}
}

// RouteCached behaves like Route but consults/populates the router's hop
// cache when opts.UseCaching is set. Only single-candidate-group-to-single
// pairs are cacheable in a way that matches a stable key, so caching only
// applies to the Greedy/Greedy2 paths, which route one hop at a time; the
// Global solver's combination graph already amortizes repeated pair costs
// within a single Route call.
func (r *Router) RouteCached(route []*feedmodel.CandidateGroup, attrs RoutingAttrs, opts Options) ([]Hop, error) {
	if !opts.UseCaching || opts.SolveMethod == Global {
		return r.Route(route, attrs, opts)
	}

	hops := make([]Hop, 0, len(route)-1)
	current := route[0].Candidates
	for stage := 0; stage+1 < len(route); stage++ {
		toGroup := route[stage+1].Candidates

		fromIDs := candidateIDs(current)
		toIDs := candidateIDs(toGroup)
		key := r.cache.key(fromIDs, toIDs, attrs, opts)

		hop, ok := r.cache.get(key)
		if !ok {
			hop = hopSearch(r.graph, r.restrictor, current, toGroup, attrs, opts.CostOptions, opts.NoSelfHops, opts.PopReachEdge)
			r.cache.put(key, hop)
		}

		hops = append(hops, hop)
		current = nextStartCandidates(hop, toGroup)
	}

	return hops, nil
}

func (r *Router) emptyHops(route []*feedmodel.CandidateGroup) []Hop {
	hops := make([]Hop, len(route)-1)
	for i := range hops {
		hops[i] = Hop{StartNode: route[i].Candidates[0].NodeID, EndNode: route[i+1].Candidates[0].NodeID}
	}

	return hops
}

// greedy chains adjacent hops by taking the best end candidate as the next
// hop's sole start. When lookahead is true (greedy2), a dead end one
// stage further triggers re-selection among the current stage's other
// viable end candidates — exactly one candidate level of backtracking.
func (r *Router) greedy(route []*feedmodel.CandidateGroup, attrs RoutingAttrs, opts Options, lookahead bool) []Hop {
	hops := make([]Hop, len(route)-1)
	current := route[0].Candidates

	for stage := 0; stage+1 < len(route); stage++ {
		toGroup := route[stage+1].Candidates
		hop := hopSearch(r.graph, r.restrictor, current, toGroup, attrs, opts.CostOptions, opts.NoSelfHops, opts.PopReachEdge)

		if lookahead && !hop.Empty() && stage+2 < len(route) {
			nextGroup := route[stage+2].Candidates
			chosen := []feedmodel.NodeCandidate{{NodeID: hop.EndNode}}
			lookaheadHop := hopSearch(r.graph, r.restrictor, chosen, nextGroup, attrs, opts.CostOptions, opts.NoSelfHops, opts.PopReachEdge)
			if lookaheadHop.Empty() {
				if alt, ok := r.bestAlternateEnd(toGroup, hop.EndNode, nextGroup, attrs, opts); ok {
					hop = hopSearch(r.graph, r.restrictor, current, []feedmodel.NodeCandidate{alt}, attrs, opts.CostOptions, opts.NoSelfHops, opts.PopReachEdge)
				}
			}
		}

		hops[stage] = hop
		current = nextStartCandidates(hop, toGroup)
	}

	return hops
}

// bestAlternateEnd retries every other candidate in toGroup (besides
// failedEnd) for one that has a viable hop into nextGroup.
func (r *Router) bestAlternateEnd(
	toGroup []feedmodel.NodeCandidate, failedEnd string, nextGroup []feedmodel.NodeCandidate,
	attrs RoutingAttrs, opts Options,
) (feedmodel.NodeCandidate, bool) {
	for _, c := range toGroup {
		if c.NodeID == failedEnd {
			continue
		}
		probe := hopSearch(r.graph, r.restrictor, []feedmodel.NodeCandidate{c}, nextGroup, attrs, opts.CostOptions, opts.NoSelfHops, opts.PopReachEdge)
		if !probe.Empty() {
			return c, true
		}
	}

	return feedmodel.NodeCandidate{}, false
}

// nextStartCandidates narrows the frontier to the hop's chosen end
// candidate, or falls back to the full next group when the hop failed.
func nextStartCandidates(hop Hop, fullGroup []feedmodel.NodeCandidate) []feedmodel.NodeCandidate {
	if hop.Empty() {
		return fullGroup
	}

	return []feedmodel.NodeCandidate{{NodeID: hop.EndNode}}
}

func candidateIDs(cands []feedmodel.NodeCandidate) []string {
	ids := make([]string, len(cands))
	for i, c := range cands {
		ids[i] = c.NodeID
	}

	return ids
}
