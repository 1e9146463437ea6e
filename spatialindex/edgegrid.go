package spatialindex

import (
	"container/heap"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// EdgeEntry is one edge tracked by an EdgeGrid.
type EdgeEntry struct {
	EdgeID   string
	Geometry orb.LineString
}

// EdgeGrid is a uniform grid over web-Mercator projected coordinates,
// indexing each edge under the cells that contain its geometry's points,
// so a point query only has to examine edges registered in nearby cells.
type EdgeGrid struct {
	cellMeters float64
	cells      map[cellKey][]EdgeEntry
}

// NewEdgeGrid returns an empty EdgeGrid with the given cell size in
// projected meters.
func NewEdgeGrid(cellMeters float64) *EdgeGrid {
	return &EdgeGrid{cellMeters: cellMeters, cells: make(map[cellKey][]EdgeEntry)}
}

func (g *EdgeGrid) cellOf(p orb.Point) cellKey {
	ng := NodeGrid{cellMeters: g.cellMeters}

	return ng.cellOf(p)
}

// Insert registers entry under the grid cell of every point of its
// geometry. A cell that a segment only crosses between two consecutive
// points is not registered, so a query near the middle of a long segment
// can miss that edge.
func (g *EdgeGrid) Insert(entry EdgeEntry) {
	seen := make(map[cellKey]bool)
	for _, p := range entry.Geometry {
		key := g.cellOf(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		g.cells[key] = append(g.cells[key], entry)
	}
}

// EdgeCandidate is one scored edge returned by EdgeCandidates, which orders
// them by increasing perpendicular distance to the query point.
type EdgeCandidate struct {
	EdgeID   string
	Geometry orb.LineString
	DistM    float64
}

// edgeCandidateItem is a heap element: a max-heap keyed on negative
// distance produces ascending-distance pop order, mirroring the
// lazy-decrease-key container/heap idiom used by
// internal/kernel/dijkstra's nodePQ.
type edgeCandidateItem struct {
	cand EdgeCandidate
}

type edgeCandidateHeap []*edgeCandidateItem

func (h edgeCandidateHeap) Len() int            { return len(h) }
func (h edgeCandidateHeap) Less(i, j int) bool  { return h[i].cand.DistM < h[j].cand.DistM }
func (h edgeCandidateHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *edgeCandidateHeap) Push(x interface{}) { *h = append(*h, x.(*edgeCandidateItem)) }
func (h *edgeCandidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// EdgeCandidates returns every edge registered in the 3x3 cell
// neighborhood of query whose geometry passes within maxMeters of it,
// ordered by increasing perpendicular distance. The candidates are popped
// from a heap whose root is the nearest one (a max-heap over negative
// distance); none is evicted.
func (g *EdgeGrid) EdgeCandidates(query orb.Point, maxMeters float64) []EdgeCandidate {
	center := g.cellOf(query)
	seen := make(map[string]bool)
	h := &edgeCandidateHeap{}
	heap.Init(h)

	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			key := cellKey{center[0] + dx, center[1] + dy}
			for _, e := range g.cells[key] {
				if seen[e.EdgeID] {
					continue
				}
				seen[e.EdgeID] = true

				d := perpendicularDistance(query, e.Geometry)
				if d > maxMeters {
					continue
				}
				heap.Push(h, &edgeCandidateItem{cand: EdgeCandidate{EdgeID: e.EdgeID, Geometry: e.Geometry, DistM: d}})
			}
		}
	}

	out := make([]EdgeCandidate, 0, h.Len())
	for h.Len() > 0 {
		item := heap.Pop(h).(*edgeCandidateItem)
		out = append(out, item.cand)
	}

	return out
}

// perpendicularDistance returns the minimum ground distance, in meters,
// from query to any segment of ls.
func perpendicularDistance(query orb.Point, ls orb.LineString) float64 {
	best := math.Inf(1)
	for i := 1; i < len(ls); i++ {
		d := distanceToSegment(query, ls[i-1], ls[i])
		if d < best {
			best = d
		}
	}

	return best
}

// distanceToSegment approximates the ground distance from p to the
// segment a-b by projecting p onto the segment in equirectangular space
// local to the segment, then measuring the projected closest point's true
// ground distance via orb/geo.
func distanceToSegment(p, a, b orb.Point) float64 {
	// Equirectangular projection local to the segment's latitude keeps the
	// parametric projection numerically well-behaved for short segments.
	lat0 := a[1]
	cosLat := math.Cos(lat0 * math.Pi / 180)

	ax, ay := a[0]*cosLat, a[1]
	bx, by := b[0]*cosLat, b[1]
	px, py := p[0]*cosLat, p[1]

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return geo.Distance(p, a)
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}

	return geo.Distance(p, closest)
}
