// Package spatialindex implements the two grid indices (component B) used
// to bound nearest-neighbor queries during candidate selection: a node
// grid for matching stops to graph nodes, and an edge grid for matching
// query points to nearby edge geometries.
//
// Both grids bucket by web-Mercator projected coordinates (via
// github.com/paulmach/orb/project), so a query touches O(1) cells
// regardless of dataset size, then verify true ground distance with
// github.com/paulmach/orb/geo.Distance before accepting a candidate — the
// projected plane distorts scale away from the equator, so the grid is
// only ever used to bound the candidate set, never to compute the final
// accepted distance.
package spatialindex

import (
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/project"
)

// NodeEntry is one entry tracked by a NodeGrid.
type NodeEntry struct {
	NodeID        string
	WGS84         orb.Point
	StationName   string // empty if the node has no station info
	IsStationNode bool
}

type cellKey [2]int64

// NodeGrid is a uniform grid over web-Mercator projected coordinates,
// indexing nodes for bounded nearest-neighbor queries.
type NodeGrid struct {
	mu         sync.RWMutex
	cellMeters float64
	cells      map[cellKey][]NodeEntry
}

// NewNodeGrid returns an empty NodeGrid with the given cell size in
// projected meters. Cell size should be chosen close to the typical query
// radius so a query touches O(1) cells.
func NewNodeGrid(cellMeters float64) *NodeGrid {
	return &NodeGrid{cellMeters: cellMeters, cells: make(map[cellKey][]NodeEntry)}
}

func (g *NodeGrid) cellOf(p orb.Point) cellKey {
	proj := project.WGS84.ToMercator(p)

	return cellKey{int64(math.Floor(proj[0] / g.cellMeters)), int64(math.Floor(proj[1] / g.cellMeters))}
}

// Insert adds entry to the grid.
func (g *NodeGrid) Insert(entry NodeEntry) {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := g.cellOf(entry.WGS84)
	g.cells[key] = append(g.cells[key], entry)
}

// candidatesNear returns every entry in the 3x3 cell neighborhood of p.
func (g *NodeGrid) candidatesNear(p orb.Point) []NodeEntry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	center := g.cellOf(p)
	var out []NodeEntry
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			key := cellKey{center[0] + dx, center[1] + dy}
			out = append(out, g.cells[key]...)
		}
	}

	return out
}

// MatchingNode returns the nearest node within maxMeters of query whose
// station name similarity to nameQuery exceeds 0.5.
func (g *NodeGrid) MatchingNode(query orb.Point, maxMeters float64, nameQuery string) (NodeEntry, bool) {
	var best NodeEntry
	bestDist := math.Inf(1)
	found := false

	for _, e := range g.candidatesNear(query) {
		if nameSimilarity(e.StationName, nameQuery) <= 0.5 {
			continue
		}
		d := geo.Distance(query, e.WGS84)
		if d > maxMeters {
			continue
		}
		if d < bestDist {
			bestDist = d
			best = e
			found = true
		}
	}

	return best, found
}

// DistanceMatchingNode returns the nearest station node within maxMeters
// of query, ignoring name similarity.
func (g *NodeGrid) DistanceMatchingNode(query orb.Point, maxMeters float64) (NodeEntry, bool) {
	var best NodeEntry
	bestDist := math.Inf(1)
	found := false

	for _, e := range g.candidatesNear(query) {
		if !e.IsStationNode {
			continue
		}
		d := geo.Distance(query, e.WGS84)
		if d > maxMeters {
			continue
		}
		if d < bestDist {
			bestDist = d
			best = e
			found = true
		}
	}

	return best, found
}

// MatchingNodesSet returns every node within maxMeters of query whose
// station name similarity to nameQuery exceeds 0.5.
func (g *NodeGrid) MatchingNodesSet(query orb.Point, maxMeters float64, nameQuery string) []NodeEntry {
	var out []NodeEntry
	for _, e := range g.candidatesNear(query) {
		if nameSimilarity(e.StationName, nameQuery) <= 0.5 {
			continue
		}
		if geo.Distance(query, e.WGS84) > maxMeters {
			continue
		}
		out = append(out, e)
	}

	return out
}
