package trgraph

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"github.com/rs/zerolog"
)

// CleanupOptions configures the post-ingest Cleanup pipeline.
type CleanupOptions struct {
	SimplifyToleranceMeters float64
	OrphanEdgeRounds        int
	HairpinAngleDeg         float64
	GapFixDistanceMeters    float64
	Logger                  zerolog.Logger
}

// CleanupOption is a functional option for CleanupOptions.
type CleanupOption func(*CleanupOptions)

// WithSimplifyTolerance overrides the Douglas-Peucker tolerance (meters).
func WithSimplifyTolerance(meters float64) CleanupOption {
	return func(o *CleanupOptions) { o.SimplifyToleranceMeters = meters }
}

// WithOrphanEdgeRounds overrides the number of orphan-edge deletion rounds.
func WithOrphanEdgeRounds(rounds int) CleanupOption {
	return func(o *CleanupOptions) { o.OrphanEdgeRounds = rounds }
}

// WithHairpinAngle overrides the angle, in degrees, below which an orphan
// leaf is preserved as a hairpin rather than deleted.
func WithHairpinAngle(deg float64) CleanupOption {
	return func(o *CleanupOptions) { o.HairpinAngleDeg = deg }
}

// WithGapFixDistance overrides the neighborhood radius, in meters, used to
// stitch gaps between degree-1 nodes.
func WithGapFixDistance(meters float64) CleanupOption {
	return func(o *CleanupOptions) { o.GapFixDistanceMeters = meters }
}

// WithCleanupLogger injects a logger for Cleanup's structured progress logs.
func WithCleanupLogger(l zerolog.Logger) CleanupOption {
	return func(o *CleanupOptions) { o.Logger = l }
}

func defaultCleanupOptions() CleanupOptions {
	return CleanupOptions{
		SimplifyToleranceMeters: 0.5,
		OrphanEdgeRounds:        3,
		HairpinAngleDeg:         35,
		GapFixDistanceMeters:    1.0,
		Logger:                  zerolog.Nop(),
	}
}

// Cleanup runs the offline post-ingest pipeline once after construction:
// it materializes geometries, prunes dead structure, merges collapsible
// chains, simplifies geometries, labels connected components, keeps
// isolated stations routable, and stitches small digitization gaps.
func (g *Graph) Cleanup(ctx context.Context, opts ...CleanupOption) error {
	cfg := defaultCleanupOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	g.writeGeometries()
	removed := g.deleteOrphanNodes()
	cfg.Logger.Debug().Int("removed", removed).Msg("trgraph: deleted orphan nodes")

	merged := g.collapseChains()
	cfg.Logger.Debug().Int("merged", merged).Msg("trgraph: collapsed chains")

	g.simplifyGeometries(cfg.SimplifyToleranceMeters)

	for round := 0; round < cfg.OrphanEdgeRounds; round++ {
		n := g.deleteOrphanEdgesRound(cfg.HairpinAngleDeg)
		cfg.Logger.Debug().Int("round", round).Int("removed", n).Msg("trgraph: deleted orphan edges")
		if n == 0 {
			break
		}
	}

	if err := g.assignComponents(ctx); err != nil {
		return fmt.Errorf("trgraph: assigning components: %w", err)
	}

	g.insertSelfEdges()
	g.fixGaps(cfg.GapFixDistanceMeters)

	return nil
}

// writeGeometries materializes any edge lacking an explicit polyline from
// its endpoint node geometries and (re)computes its length (step 1).
func (g *Graph) writeGeometries() {
	for _, e := range g.Edges() {
		from := g.Node(e.From)
		to := g.Node(e.To)
		if from == nil || to == nil {
			continue
		}
		if len(e.Geometry) < 2 {
			e.Geometry = orb.LineString{from.Point, to.Point}
		}
		e.Length = lineLength(e.Geometry)
	}
}

// deleteOrphanNodes removes nodes with in+out degree 0 that are not
// station-group attached (step 2).
func (g *Graph) deleteOrphanNodes() int {
	removed := 0
	for _, n := range g.Nodes() {
		if n.IsStation() {
			continue
		}
		if g.InDegree(n.ID)+g.OutDegree(n.ID) == 0 {
			_ = g.RemoveNode(n.ID)
			removed++
		}
	}

	return removed
}

// collapseChains merges any degree-2 non-station node whose two incident
// edges are similar, concatenating their stored geometries and summing
// lengths; it skips a merge that would create a parallel edge, and a pair
// in which either edge's geometry is flagged Reversed is not merged
// (step 3).
func (g *Graph) collapseChains() int {
	merged := 0
	changed := true
	for changed {
		changed = false
		for _, n := range g.Nodes() {
			if n.IsStation() {
				continue
			}
			if g.InDegree(n.ID) != 1 || g.OutDegree(n.ID) != 1 {
				continue
			}
			inEdges := g.InEdges(n.ID)
			outEdges := g.OutEdges(n.ID)
			if len(inEdges) != 1 || len(outEdges) != 1 {
				continue
			}
			inE, outE := inEdges[0], outEdges[0]
			if inE.From == outE.To {
				continue // would create a self-loop, not a useful collapse
			}
			if !inE.similarTo(outE) {
				continue
			}
			if inE.Reversed || outE.Reversed {
				continue // stored geometry does not run From->To
			}
			if g.EdgeBetween(inE.From, outE.To) != nil {
				continue // would create a parallel edge
			}

			merged1 := &Edge{
				From:     inE.From,
				To:       outE.To,
				Geometry: append(append(orb.LineString{}, inE.Geometry...), outE.Geometry[1:]...),
				Length:   inE.Length + outE.Length,
				Level:    inE.Level,
				OneWay:   inE.OneWay,
				Forward:  inE.Forward,
				MaxSpeed: inE.MaxSpeed,
				Lines:    inE.Lines,
				Restricted: inE.Restricted,
			}

			_ = g.RemoveNode(n.ID)
			if err := g.AddEdge(merged1); err == nil {
				merged++
				changed = true
			}
		}
	}

	return merged
}

// simplifyGeometries applies Douglas-Peucker simplification to every edge
// geometry (step 4). orb's simplifier measures in coordinate units, so the
// tolerance is converted from meters to degrees with the same approximate
// meters-per-degree factor the gap-fix grid uses.
func (g *Graph) simplifyGeometries(toleranceMeters float64) {
	const metersPerDegree = 111_320.0
	simplifier := simplify.DouglasPeucker(toleranceMeters / metersPerDegree)
	for _, e := range g.Edges() {
		if len(e.Geometry) < 3 {
			continue
		}
		e.Geometry = simplifier.Simplify(e.Geometry.Clone()).(orb.LineString)
	}
}

// deleteOrphanEdgesRound removes degree-1 non-station leaves unless
// removing the leaf would produce a sharp full-turn node-2 contraction
// candidate, preserving hairpins (step 5, one round). Returns the number
// of nodes removed.
func (g *Graph) deleteOrphanEdgesRound(hairpinAngleDeg float64) int {
	removed := 0
	for _, n := range g.Nodes() {
		if n.IsStation() {
			continue
		}
		deg := g.InDegree(n.ID) + g.OutDegree(n.ID)
		if deg != 1 {
			continue
		}
		if g.wouldPreserveHairpin(n.ID, hairpinAngleDeg) {
			continue
		}
		_ = g.RemoveNode(n.ID)
		removed++
	}

	return removed
}

// wouldPreserveHairpin reports whether removing leaf would contract its
// remaining neighbor into a degree-2 node whose two surviving edges form a
// sharp turn below hairpinAngleDeg (a hairpin we must not erase).
func (g *Graph) wouldPreserveHairpin(leaf string, hairpinAngleDeg float64) bool {
	var neighbor string
	switch {
	case g.OutDegree(leaf) == 1:
		neighbor = g.OutEdges(leaf)[0].To
	case g.InDegree(leaf) == 1:
		neighbor = g.InEdges(leaf)[0].From
	default:
		return false
	}

	if g.InDegree(neighbor)+g.OutDegree(neighbor) != 3 {
		// after removing leaf's edge the neighbor would not become a
		// simple degree-2 through node, so there's no hairpin to protect.
		return false
	}

	inE := g.InEdges(neighbor)
	outE := g.OutEdges(neighbor)
	var remaining []*Edge
	for _, e := range inE {
		if e.From != leaf {
			remaining = append(remaining, e)
		}
	}
	for _, e := range outE {
		if e.To != leaf {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) != 2 {
		return false
	}

	a, b := remaining[0], remaining[1]
	if len(a.Geometry) < 2 || len(b.Geometry) < 2 {
		return false
	}
	headingIn := bearing(a.Geometry[len(a.Geometry)-2], a.Geometry[len(a.Geometry)-1])
	headingOut := bearing(b.Geometry[0], b.Geometry[1])

	return turnAngle(headingIn, headingOut) < hairpinAngleDeg
}

// insertSelfEdges gives station-info nodes without outgoing edges a
// self-edge so they remain routable (step 7).
func (g *Graph) insertSelfEdges() {
	for _, n := range g.Nodes() {
		if !n.IsStation() {
			continue
		}
		if g.OutDegree(n.ID) > 0 {
			continue
		}
		_ = g.AddEdge(&Edge{
			From:     n.ID,
			To:       n.ID,
			Geometry: orb.LineString{n.Point, n.Point},
			Length:   0,
		})
	}
}

// fixGaps scans a grid-indexed neighborhood around every degree-1 node;
// if another degree-1 non-station node is found within radiusMeters, the
// node's edge is stitched to that partner and the node is deleted (step 8).
// Station nodes are never taken as partners, and when no partner is found
// no edge is added.
func (g *Graph) fixGaps(radiusMeters float64) {
	grid := newGapGrid(g)

	for _, n := range g.Nodes() {
		deg := g.InDegree(n.ID) + g.OutDegree(n.ID)
		if deg != 1 {
			continue
		}

		var partner *Node
		for _, candID := range grid.near(n.ID, n.Point) {
			cand := g.Node(candID)
			if cand == nil || cand.IsStation() {
				continue
			}
			if g.InDegree(cand.ID)+g.OutDegree(cand.ID) != 1 {
				continue
			}
			if !pointsWithinEps(n.Point, cand.Point, radiusMeters) {
				continue
			}
			partner = cand
			break
		}

		if partner != nil {
			g.stitch(n, partner)
		}
		// No partner within radius: the dangling end is a genuine dead
		// end rather than a digitization gap, so nothing is stitched.
	}
}

// stitch re-attaches n's single edge to partner and then removes n, which
// is left without edges, since the two leaves represent the same physical
// gap. n is kept when its edge already ran to partner.
func (g *Graph) stitch(n, partner *Node) {
	if g.OutDegree(n.ID) == 1 {
		e := g.OutEdges(n.ID)[0]
		_ = g.RemoveEdge(e.From, e.To)
		e.To = partner.ID
		e.Geometry = append(e.Geometry[:len(e.Geometry)-1], partner.Point)
		e.Length = lineLength(e.Geometry)
		_ = g.AddEdge(e)
	} else if g.InDegree(n.ID) == 1 {
		e := g.InEdges(n.ID)[0]
		_ = g.RemoveEdge(e.From, e.To)
		e.From = partner.ID
		e.Geometry[0] = partner.Point
		e.Length = lineLength(e.Geometry)
		_ = g.AddEdge(e)
	}
	if g.InDegree(n.ID)+g.OutDegree(n.ID) == 0 {
		_ = g.RemoveNode(n.ID)
	}
}

