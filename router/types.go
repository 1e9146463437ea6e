// Package router implements the shortest-path router: an edge-based
// Dijkstra variant with turn-aware state, restriction enforcement and
// optional hop caching.
//
// The search state is the last traversed edge, not a node — a plain
// vertex-based Dijkstra cannot express "the transition from edge e1 to
// edge e2 through via-node v is forbidden" or "punish a sharp turn
// between the previous edge's heading and this edge's heading," both of
// which depend on which edge you arrived by, not just which node you are
// at. github.com/katalvlaran/trshaper/internal/kernel/dijkstra is a
// vertex search and structurally cannot express this, so the edge-based
// search below is hand-written fresh, in the style of that package
// (functional options, sentinel errors, a lazy decrease-key
// container/heap queue).
//
// The "global" solve method still reuses the kernel: see combgraph.go.
package router

import (
	"errors"

	"github.com/katalvlaran/trshaper/cost"
	"github.com/katalvlaran/trshaper/feedmodel"
	"github.com/katalvlaran/trshaper/trgraph"
)

// SolveMethod selects the router's overall search strategy.
type SolveMethod int

const (
	// Global builds a combination graph over all stages and solves it in
	// one shortest-path pass (fullest optimization, preferred).
	Global SolveMethod = iota
	// Greedy routes each adjacent hop independently, chaining by the best
	// end candidate.
	Greedy
	// Greedy2 is like Greedy but with a one-hop lookahead that allows
	// re-selecting start candidates when a downstream dead end is found.
	Greedy2
)

// Sentinel errors for router operations.
var (
	ErrTooFewCandidateGroups = errors.New("router: candidate route needs at least 2 stops")
	ErrEmptyCandidateGroup   = errors.New("router: a stop has an empty candidate group")
	ErrUnknownSolveMethod    = errors.New("router: unknown solve method")
)

// RoutingAttrs carries the per-trip normalized identifiers used for line
// matching and cache keying.
type RoutingAttrs struct {
	ShortName string
	FromName  string
	ToName    string
}

// Hop is the routing result between two adjacent candidate groups: the
// edge list in reverse traversal order, the chosen start/end nodes, and
// the aggregated cost.
type Hop struct {
	Edges     []*trgraph.Edge // reverse traversal order
	StartNode string
	EndNode   string
	Cost      float64
}

// Empty reports whether h represents a failed hop: no path existed
// between its two candidate groups.
func (h Hop) Empty() bool { return len(h.Edges) == 0 }

// Options configures a single Route call.
type Options struct {
	SolveMethod  SolveMethod
	UseCaching   bool
	CostOptions  cost.RoutingOptions
	NoSelfHops   bool
	PopReachEdge bool
}

// Option is a functional option for Options.
type Option func(*Options)

// WithSolveMethod selects the solver strategy.
func WithSolveMethod(m SolveMethod) Option { return func(o *Options) { o.SolveMethod = m } }

// WithCaching enables the per-(candidate,candidate,attrs,options) hop cache.
func WithCaching() Option { return func(o *Options) { o.UseCaching = true } }

// WithCostOptions sets the routing options used by the cost model.
func WithCostOptions(c cost.RoutingOptions) Option {
	return func(o *Options) { o.CostOptions = c }
}

// WithNoSelfHops rejects relaxations that would hop an edge back to
// itself.
func WithNoSelfHops() Option { return func(o *Options) { o.NoSelfHops = true } }

// WithPopReachEdge terminates a hop search on first pop of a goal
// candidate edge, rather than exhaustively relaxing the whole component.
func WithPopReachEdge() Option { return func(o *Options) { o.PopReachEdge = true } }

// DefaultOptions returns Options with Global solving, no caching, and
// default cost options.
func DefaultOptions() Options {
	return Options{SolveMethod: Global, CostOptions: cost.DefaultRoutingOptions(), PopReachEdge: true}
}

// Router routes candidate routes through a trgraph.Graph.
type Router struct {
	graph      *trgraph.Graph
	restrictor feedmodel.Restrictor
	cache      *hopCache
}

// New returns a Router over graph, enforcing restrictions via restrictor.
func New(graph *trgraph.Graph, restrictor feedmodel.Restrictor) *Router {
	return &Router{graph: graph, restrictor: restrictor, cache: newHopCache()}
}
